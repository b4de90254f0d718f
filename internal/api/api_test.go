package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/folio-hub/folio-server/internal/models"
	"github.com/folio-hub/folio-server/internal/storage"
)

// testServer creates a test server backed by a temp SQLite file.
func testServer(t *testing.T) (*Server, storage.Storage, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "folio-test-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	tmpFile.Close()

	store := storage.NewSQLiteStorage(tmpFile.Name())
	if err := store.Open(); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("open storage: %v", err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		os.Remove(tmpFile.Name())
		t.Fatalf("migrate storage: %v", err)
	}

	cfg := &Config{
		Address:          ":0",
		JWTSecret:        []byte("test-jwt-secret-32-bytes-long!!"),
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  24 * time.Hour,
		RateLimitPerIP:   100,
		LockoutThreshold: 5,
		LockoutDuration:  30 * time.Minute,
		Verbose:          false,
	}

	srv, err := New(cfg, store, nil) // nil dispatcher, notifications not under test
	if err != nil {
		store.Close()
		os.Remove(tmpFile.Name())
		t.Fatalf("create server: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return srv, store, cleanup
}

// createTestUser creates a user in the database for testing.
func createTestUser(t *testing.T, store storage.Storage, username, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           "test-" + username,
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	return user
}

// handler returns the HTTP handler for the server
func handler(srv *Server) http.Handler {
	return srv.server.Handler
}

// login performs a login request and returns the access token.
func login(t *testing.T, srv *Server, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Data.AccessToken
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, cleanup := testServer(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestProjectsPublicRead(t *testing.T) {
	srv, _, cleanup := testServer(t)
	defer cleanup()

	for _, path := range []string{"/api/projects", "/api/projects/featured"} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		handler(srv).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestProjectMutationRequiresAuth(t *testing.T) {
	srv, _, cleanup := testServer(t)
	defer cleanup()

	body := `{"title":"T","category":"web"}`

	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/api/projects"},
		{"PUT", "/api/projects/some-id"},
		{"DELETE", "/api/projects/some-id"},
		{"GET", "/api/contact"},
		{"PUT", "/api/contact/some-id/status"},
	}

	for _, tc := range tests {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewReader([]byte(body)))
		rec := httptest.NewRecorder()
		handler(srv).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want %d", tc.method, tc.path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestProjectMutationForbiddenForNonAdmin(t *testing.T) {
	srv, store, cleanup := testServer(t)
	defer cleanup()

	createTestUser(t, store, "regular", "password123", models.RoleUser)
	token := login(t, srv, "regular@test.com", "password123")

	body := `{"title":"T","category":"web"}`
	req := httptest.NewRequest("POST", "/api/projects", bytes.NewReader([]byte(body)))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestProjectLifecycleAsAdmin(t *testing.T) {
	srv, store, cleanup := testServer(t)
	defer cleanup()

	createTestUser(t, store, "admin", "password123", models.RoleAdmin)
	token := login(t, srv, "admin@test.com", "password123")

	// Create
	body := `{"title":"T","description":"D","technologies":["X"],"images":[],"category":"web"}`
	req := httptest.NewRequest("POST", "/api/projects", bytes.NewReader([]byte(body)))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data *models.Project `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Data.ID == "" {
		t.Fatal("created project should have an id")
	}

	// Fetch it back
	req = httptest.NewRequest("GET", "/api/projects/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var fetched struct {
		Data *models.Project `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.Data.Title != "T" || fetched.Data.Category != models.CategoryWeb {
		t.Errorf("fetched project = %+v, want title T category web", fetched.Data)
	}
	if len(fetched.Data.Technologies) != 1 || fetched.Data.Technologies[0] != "X" {
		t.Errorf("technologies = %v, want [X]", fetched.Data.Technologies)
	}

	// Delete, then fetch returns 404
	req = httptest.NewRequest("DELETE", "/api/projects/"+created.Data.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/projects/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestContactSubmissionVisibleToAdmin(t *testing.T) {
	srv, store, cleanup := testServer(t)
	defer cleanup()

	createTestUser(t, store, "admin", "password123", models.RoleAdmin)

	// Public submission
	body := `{"name":"A","email":"a@b.com","subject":"S","message":"M"}`
	req := httptest.NewRequest("POST", "/api/contact", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("contact status = %d, body: %s", rec.Code, rec.Body.String())
	}

	// Admin sees it with status unread
	token := login(t, srv, "admin@test.com", "password123")
	req = httptest.NewRequest("GET", "/api/contact", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var resp struct {
		Data []*models.ContactMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("messages = %d, want 1", len(resp.Data))
	}
	if resp.Data[0].Status != models.StatusUnread {
		t.Errorf("status = %q, want unread", resp.Data[0].Status)
	}
}

func TestLoginWrongPasswordGeneric(t *testing.T) {
	srv, store, cleanup := testServer(t)
	defer cleanup()

	createTestUser(t, store, "someone", "password123", models.RoleUser)

	for _, email := range []string{"someone@test.com", "nobody@test.com"} {
		body, _ := json.Marshal(map[string]string{"email": email, "password": "wrong-password"})
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler(srv).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("login %s: status = %d, want %d", email, rec.Code, http.StatusUnauthorized)
		}
		// Same generic message whether the account exists or not
		if !bytes.Contains(rec.Body.Bytes(), []byte("invalid credentials")) {
			t.Errorf("login %s: body should carry the generic message, got %s", email, rec.Body.String())
		}
	}
}

func TestAuthMe(t *testing.T) {
	srv, store, cleanup := testServer(t)
	defer cleanup()

	createTestUser(t, store, "someone", "password123", models.RoleUser)
	token := login(t, srv, "someone@test.com", "password123")

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Role     string `json:"role"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if resp.Data.Username != "someone" || resp.Data.Role != "user" {
		t.Errorf("me = %+v, want username someone role user", resp.Data)
	}

	// Without token
	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	rec = httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("me without token status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	srv, _, cleanup := testServer(t)
	defer cleanup()

	body := `{"username":"newuser","email":"new@test.com","password":"secret1"}`
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body: %s", rec.Code, rec.Body.String())
	}

	token := login(t, srv, "new@test.com", "secret1")
	if token == "" {
		t.Fatal("expected access token after login")
	}
}

func TestRegisterValidation(t *testing.T) {
	srv, _, cleanup := testServer(t)
	defer cleanup()

	tests := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"ab","email":"a@b.com","password":"secret1"}`},
		{"bad email", `{"username":"someone","email":"nope","password":"secret1"}`},
		{"short password", `{"username":"someone","email":"a@b.com","password":"abc"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader([]byte(tc.body)))
			rec := httptest.NewRecorder()
			handler(srv).ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	srv, _, cleanup := testServer(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/api/nope", nil)
	rec := httptest.NewRecorder()
	handler(srv).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("NOT_FOUND")) {
		t.Errorf("body = %s, want NOT_FOUND envelope", rec.Body.String())
	}
}
