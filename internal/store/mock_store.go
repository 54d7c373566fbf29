package store

import (
	"errors"
	"sync"
	"time"

	"example.com/socialnet/internal/models"
)

// MockStore simulates the SQLite store for handler tests.
type MockStore struct {
	mu         sync.Mutex
	users      []models.User
	posts      []models.Post
	nextUserID int64
	nextPostID int64
	ShouldFail bool // flag to simulate failures
}

// NewMock initializes a new empty mock store
func NewMock() *MockStore {
	return &MockStore{
		nextUserID: 1,
		nextPostID: 1,
	}
}

func (m *MockStore) Close() {}

// ListUsers returns users newest first, like the real store.
func (m *MockStore) ListUsers() ([]models.User, error) {
	if m.ShouldFail {
		return nil, errors.New("mock: list users failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.User, 0, len(m.users))
	for i := len(m.users) - 1; i >= 0; i-- {
		out = append(out, m.users[i])
	}
	return out, nil
}

// CreateUser simulates creating a new user, enforcing the unique
// username constraint.
func (m *MockStore) CreateUser(username, role string) (models.User, error) {
	if m.ShouldFail {
		return models.User{}, errors.New("mock: create user failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return models.User{}, ErrUsernameTaken
		}
	}

	user := models.User{
		ID:        m.nextUserID,
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	m.nextUserID++
	m.users = append(m.users, user)
	return user, nil
}

// ListPosts returns posts newest first with the author username joined.
func (m *MockStore) ListPosts() ([]models.Post, error) {
	if m.ShouldFail {
		return nil, errors.New("mock: list posts failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Post, 0, len(m.posts))
	for i := len(m.posts) - 1; i >= 0; i-- {
		out = append(out, m.posts[i])
	}
	return out, nil
}

// CreatePost simulates creating a post, enforcing the user foreign key.
func (m *MockStore) CreatePost(title, body string, userID int64) (models.Post, error) {
	if m.ShouldFail {
		return models.Post{}, errors.New("mock: create post failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var username string
	for _, u := range m.users {
		if u.ID == userID {
			username = u.Username
			break
		}
	}
	if username == "" {
		return models.Post{}, ErrUserNotFound
	}

	post := models.Post{
		ID:        m.nextPostID,
		Title:     title,
		Body:      body,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Username:  username,
	}
	m.nextPostID++
	m.posts = append(m.posts, post)
	return post, nil
}

// MockStoreFail always fails, used to exercise 500 paths.
type MockStoreFail struct{}

func (m *MockStoreFail) ListUsers() ([]models.User, error) {
	return nil, errors.New("mock: store unavailable")
}

func (m *MockStoreFail) CreateUser(username, role string) (models.User, error) {
	return models.User{}, errors.New("mock: store unavailable")
}

func (m *MockStoreFail) ListPosts() ([]models.Post, error) {
	return nil, errors.New("mock: store unavailable")
}

func (m *MockStoreFail) CreatePost(title, body string, userID int64) (models.Post, error) {
	return models.Post{}, errors.New("mock: store unavailable")
}

func (m *MockStoreFail) Close() {}
