package models

import "time"

// User is a row in the users table.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Post is a row in the posts table, flattened with the author's
// username when read back through the users join.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Username  string    `json:"username" db:"username"`
}

// Follow is a directed edge between two users. Edges are written only
// by the seed data; there is no runtime endpoint for them.
type Follow struct {
	FollowingUserID int64     `json:"following_user_id" db:"following_user_id"`
	FollowedUserID  int64     `json:"followed_user_id" db:"followed_user_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
