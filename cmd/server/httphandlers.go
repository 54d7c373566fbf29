package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"example.com/socialnet/internal/store"
)

// --- HTTP Handlers ---

// homeHandler is a simple health check.
// Returns JSON response: {"message": ..., "status": "ok"}
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"message": "Social Network API is running!",
		"status":  "ok",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// listUsersHandler returns every user, newest first.
func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers()
	if err != nil {
		logg.Error("http/users", "Failed to list users", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// createUserHandler handles POST requests to create a new user.
// Expects JSON body: {"username": "example", "role": "admin"} where
// role is optional and defaults to "user".
func (s *Server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/users", "Invalid request body", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(body.Username) == 0 || len(body.Username) > 50 {
		logg.Info("http/users", "Invalid username length")
		http.Error(w, "username must be 1-50 characters", http.StatusBadRequest)
		return
	}

	role := body.Role
	if role == "" {
		role = "user"
	}

	user, err := s.store.CreateUser(body.Username, role)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			logg.Info("http/users", "Duplicate username rejected")
			http.Error(w, "Username already exists", http.StatusBadRequest)
			return
		}
		logg.Error("http/users", "Failed to create user", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	logg.Info("http/users", "User created successfully")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// listPostsHandler returns every post with the author's username,
// newest first.
func (s *Server) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts()
	if err != nil {
		logg.Error("http/posts", "Failed to list posts", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// createPostHandler handles post creation.
// Expects JSON body: {"title": ..., "body": ..., "user_id": 1}
// Returns the created post joined with the author's username.
func (s *Server) createPostHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		Title  string `json:"title"`
		Body   string `json:"body"`
		UserID int64  `json:"user_id"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/posts", "Invalid request body", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(body.Title) == 0 || len(body.Title) > 100 {
		logg.Info("http/posts", "Invalid title length")
		http.Error(w, "title must be 1-100 characters", http.StatusBadRequest)
		return
	}
	if len(body.Body) == 0 {
		logg.Info("http/posts", "Empty post body")
		http.Error(w, "body must not be empty", http.StatusBadRequest)
		return
	}
	if body.UserID <= 0 {
		logg.Info("http/posts", "Missing or invalid user_id")
		http.Error(w, "user_id must be a positive integer", http.StatusBadRequest)
		return
	}

	post, err := s.store.CreatePost(body.Title, body.Body, body.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			logg.Info("http/posts", "Post rejected: user does not exist")
			http.Error(w, "User does not exist", http.StatusBadRequest)
			return
		}
		logg.Error("http/posts", "Failed to create post", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	logg.Info("http/posts", "Post created successfully")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}
