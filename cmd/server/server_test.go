package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"example.com/socialnet/internal/models"
	"example.com/socialnet/internal/store"
)

//
// --- Helpers ---
//

// sendJSONRequest posts a JSON body and asserts the response status.
func sendJSONRequest(t *testing.T, method, url string, body any, expectedStatus int) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != expectedStatus {
		b, _ := io.ReadAll(resp.Body)
		defer resp.Body.Close()
		t.Fatalf("expected %d, got %d: %s", expectedStatus, resp.StatusCode, string(b))
	}
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return out
}

//
// --- Setup test server ---
//

func setupTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := &Server{store: store.NewMock()}
	ts := httptest.NewServer(s.handler())
	t.Cleanup(ts.Close)
	return s, ts
}

//
// --- Tests ---
//

// health check returns the fixed status payload
func TestHome(t *testing.T) {
	_, ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[map[string]string](t, resp)
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %q", body["status"])
	}
	if body["message"] == "" {
		t.Fatal("expected non-empty message")
	}
}

// create a new user with the default role
func TestCreateUser(t *testing.T) {
	_, ts := setupTestServer(t)

	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/users",
		map[string]any{"username": "almaz"}, http.StatusOK)
	user := decodeJSON[models.User](t, resp)

	if user.ID <= 0 {
		t.Fatalf("expected positive user ID, got %d", user.ID)
	}
	if user.Username != "almaz" {
		t.Fatalf("expected username almaz, got %q", user.Username)
	}
	if user.Role != "user" {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
}

// explicit role is preserved
func TestCreateUser_ExplicitRole(t *testing.T) {
	_, ts := setupTestServer(t)

	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/users",
		map[string]any{"username": "root", "role": "admin"}, http.StatusOK)
	user := decodeJSON[models.User](t, resp)

	if user.Role != "admin" {
		t.Fatalf("expected role admin, got %q", user.Role)
	}
}

// duplicate usernames are rejected with 400 and no second row
func TestCreateUser_Duplicate(t *testing.T) {
	s, ts := setupTestServer(t)

	sendJSONRequest(t, http.MethodPost, ts.URL+"/users",
		map[string]any{"username": "almaz"}, http.StatusOK)
	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/users",
		map[string]any{"username": "almaz"}, http.StatusBadRequest)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if got := string(bytes.TrimSpace(b)); got != "Username already exists" {
		t.Fatalf("unexpected error body: %q", got)
	}

	users, _ := s.store.ListUsers()
	if len(users) != 1 {
		t.Fatalf("expected 1 user persisted, got %d", len(users))
	}
}

// missing username is rejected with 400
func TestCreateUser_MissingUsername(t *testing.T) {
	_, ts := setupTestServer(t)

	sendJSONRequest(t, http.MethodPost, ts.URL+"/users",
		map[string]any{"role": "admin"}, http.StatusBadRequest)
}

// invalid JSON for creating user
func TestCreateUser_InvalidJSON(t *testing.T) {
	_, ts := setupTestServer(t)

	body := []byte(`{"username":123}`)
	resp, err := http.Post(ts.URL+"/users", "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("http.Post failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// full flow: create user -> create post -> list posts newest first
func TestCreatePostAndListFlow(t *testing.T) {
	_, ts := setupTestServer(t)

	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/users",
		map[string]any{"username": "nur"}, http.StatusOK)
	user := decodeJSON[models.User](t, resp)

	resp = sendJSONRequest(t, http.MethodPost, ts.URL+"/posts",
		map[string]any{"title": "first", "body": "hello", "user_id": user.ID}, http.StatusOK)
	first := decodeJSON[models.Post](t, resp)

	if first.Username != "nur" {
		t.Fatalf("expected joined username nur, got %q", first.Username)
	}
	if first.ID <= 0 || first.UserID != user.ID {
		t.Fatalf("unexpected created post: %+v", first)
	}

	sendJSONRequest(t, http.MethodPost, ts.URL+"/posts",
		map[string]any{"title": "second", "body": "world", "user_id": user.ID}, http.StatusOK)

	listResp, err := http.Get(ts.URL + "/posts")
	if err != nil {
		t.Fatalf("GET /posts failed: %v", err)
	}
	posts := decodeJSON[[]models.Post](t, listResp)

	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Title != "second" || posts[1].Title != "first" {
		t.Fatalf("expected newest-first order, got [%s, %s]", posts[0].Title, posts[1].Title)
	}
}

// post referencing a nonexistent user is rejected
func TestCreatePost_UnknownUser(t *testing.T) {
	_, ts := setupTestServer(t)

	sendJSONRequest(t, http.MethodPost, ts.URL+"/posts",
		map[string]any{"title": "t", "body": "b", "user_id": 999}, http.StatusBadRequest)
}

// missing required post fields are rejected
func TestCreatePost_MissingFields(t *testing.T) {
	_, ts := setupTestServer(t)

	cases := []map[string]any{
		{"body": "b", "user_id": 1},
		{"title": "t", "user_id": 1},
		{"title": "t", "body": "b"},
	}
	for _, c := range cases {
		sendJSONRequest(t, http.MethodPost, ts.URL+"/posts", c, http.StatusBadRequest)
	}
}

// list users comes back newest first
func TestListUsers_Order(t *testing.T) {
	_, ts := setupTestServer(t)

	sendJSONRequest(t, http.MethodPost, ts.URL+"/users",
		map[string]any{"username": "older"}, http.StatusOK)
	sendJSONRequest(t, http.MethodPost, ts.URL+"/users",
		map[string]any{"username": "newer"}, http.StatusOK)

	resp, err := http.Get(ts.URL + "/users")
	if err != nil {
		t.Fatalf("GET /users failed: %v", err)
	}
	users := decodeJSON[[]models.User](t, resp)

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Username != "newer" || users[1].Username != "older" {
		t.Fatalf("expected newest-first order, got [%s, %s]", users[0].Username, users[1].Username)
	}
}

// every response carries permissive CORS headers and a request id
func TestCORSAndRequestIDHeaders(t *testing.T) {
	_, ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/users")
	if err != nil {
		t.Fatalf("GET /users failed: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS origin, got %q", got)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

// preflight requests are answered without hitting the router
func TestCORSPreflight(t *testing.T) {
	_, ts := setupTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/posts", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "*" {
		t.Fatalf("expected wildcard allowed methods, got %q", got)
	}
}

// store failures surface as 500
func TestStoreFailure(t *testing.T) {
	s, ts := setupTestServer(t)
	s.store = &store.MockStoreFail{}

	resp, err := http.Get(ts.URL + "/users")
	if err != nil {
		t.Fatalf("GET /users failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	sendJSONRequest(t, http.MethodPost, ts.URL+"/users",
		map[string]any{"username": "almaz"}, http.StatusInternalServerError)
}
