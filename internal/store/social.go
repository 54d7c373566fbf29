package store

import (
	"example.com/socialnet/internal/models"
	sqlite3 "modernc.org/sqlite/lib"
)

// --- User operations ---

// ListUsers returns every user, newest first. The id tiebreak keeps
// the order deterministic when created_at values collide within the
// same second.
func (s *Store) ListUsers() ([]models.User, error) {
	users := []models.User{}
	err := s.DB.Select(&users, `
		SELECT id, username, role, created_at
		FROM users
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		logg.Error("store", "Failed to list users", err)
		return nil, err
	}
	return users, nil
}

// CreateUser inserts a new user and re-reads the created row so the
// caller gets the generated id and timestamp. Returns ErrUsernameTaken
// when the username is already present.
func (s *Store) CreateUser(username, role string) (models.User, error) {
	res, err := s.DB.Exec(
		`INSERT INTO users (username, role) VALUES (?, ?)`,
		username, role,
	)
	if err != nil {
		if code := constraintCode(err); code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return models.User{}, ErrUsernameTaken
		}
		logg.Error("store", "Failed to create user", err)
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		logg.Error("store", "Failed to read new user id", err)
		return models.User{}, err
	}

	var user models.User
	if err := s.DB.Get(&user, `
		SELECT id, username, role, created_at
		FROM users WHERE id = ?`, id); err != nil {
		logg.Error("store", "Failed to read back created user", err)
		return models.User{}, err
	}
	return user, nil
}

// --- Post operations ---

// ListPosts returns every post joined with its author's username,
// newest first.
func (s *Store) ListPosts() ([]models.Post, error) {
	posts := []models.Post{}
	err := s.DB.Select(&posts, `
		SELECT p.id, p.title, p.body, p.user_id, p.created_at, u.username
		FROM posts p
		JOIN users u ON p.user_id = u.id
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		logg.Error("store", "Failed to list posts", err)
		return nil, err
	}
	return posts, nil
}

// CreatePost inserts a new post and re-reads it joined with the
// author. The foreign key on posts.user_id is enforced, so a missing
// author surfaces as ErrUserNotFound.
func (s *Store) CreatePost(title, body string, userID int64) (models.Post, error) {
	res, err := s.DB.Exec(
		`INSERT INTO posts (title, body, user_id) VALUES (?, ?, ?)`,
		title, body, userID,
	)
	if err != nil {
		if constraintCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return models.Post{}, ErrUserNotFound
		}
		logg.Error("store", "Failed to create post", err)
		return models.Post{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		logg.Error("store", "Failed to read new post id", err)
		return models.Post{}, err
	}

	var post models.Post
	if err := s.DB.Get(&post, `
		SELECT p.id, p.title, p.body, p.user_id, p.created_at, u.username
		FROM posts p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = ?`, id); err != nil {
		logg.Error("store", "Failed to read back created post", err)
		return models.Post{}, err
	}
	return post, nil
}

// --- Follow operations ---

// ListFollows returns the follow edges. Edges are written only by the
// seed data, so this is a read-only view used to verify initialization.
func (s *Store) ListFollows() ([]models.Follow, error) {
	follows := []models.Follow{}
	err := s.DB.Select(&follows, `
		SELECT following_user_id, followed_user_id, created_at
		FROM follows
		ORDER BY following_user_id, followed_user_id`)
	if err != nil {
		logg.Error("store", "Failed to list follows", err)
		return nil, err
	}
	return follows, nil
}
