package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/folio-hub/folio-server/internal/models"
	"github.com/folio-hub/folio-server/internal/notifier"
	"github.com/folio-hub/folio-server/internal/storage"
)

// Mock repositories
type mockMessageRepository struct {
	messages    []*models.ContactMessage
	createError error
	listError   error
	updateError error
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if m.createError != nil {
		return m.createError
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return nil, nil
}

func (m *mockMessageRepository) List(ctx context.Context) ([]*models.ContactMessage, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.messages, nil
}

func (m *mockMessageRepository) UpdateStatus(ctx context.Context, id string, status models.MessageStatus) (*models.ContactMessage, error) {
	if m.updateError != nil {
		return nil, m.updateError
	}
	for _, msg := range m.messages {
		if msg.ID == id {
			msg.Status = status
			return msg, nil
		}
	}
	return nil, nil
}

func (m *mockMessageRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.messages)), nil
}

type mockStorage struct {
	messageRepo *mockMessageRepository
}

func (m *mockStorage) Open() error                         { return nil }
func (m *mockStorage) Close() error                        { return nil }
func (m *mockStorage) Migrate() error                      { return nil }
func (m *mockStorage) EnsureAdminUser() error              { return nil }
func (m *mockStorage) Users() storage.UserRepository       { return nil }
func (m *mockStorage) Projects() storage.ProjectRepository { return nil }
func (m *mockStorage) Messages() storage.MessageRepository { return m.messageRepo }
func (m *mockStorage) Tokens() storage.TokenRepository     { return nil }

func newMockStorage() (*mockStorage, *mockMessageRepository) {
	messageRepo := &mockMessageRepository{}
	return &mockStorage{messageRepo: messageRepo}, messageRepo
}

// failingNotifier always errors on send.
type failingNotifier struct{}

func (f *failingNotifier) Name() string { return "failing" }
func (f *failingNotifier) Send(ctx context.Context, msg *models.ContactMessage) error {
	return context.DeadlineExceeded
}
func (f *failingNotifier) Close() error { return nil }

func TestSend_Success(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	handler := NewHandler(mockStore, nil)

	body := `{"name":"A","email":"a@b.com","subject":"S","message":"M"}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Send(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	if len(mockRepo.messages) != 1 {
		t.Fatalf("persisted messages = %d, want 1", len(mockRepo.messages))
	}

	msg := mockRepo.messages[0]
	if msg.Status != models.StatusUnread {
		t.Errorf("status = %q, want unread", msg.Status)
	}
	if msg.ID == "" {
		t.Error("id should be generated")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("createdAt should be set")
	}
}

func TestSend_InvalidEmailNotPersisted(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	handler := NewHandler(mockStore, nil)

	body := `{"name":"A","email":"not-an-email","subject":"S","message":"M"}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Send(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if len(mockRepo.messages) != 0 {
		t.Errorf("persisted messages = %d, want 0", len(mockRepo.messages))
	}
}

func TestSend_Validation(t *testing.T) {
	mockStore, _ := newMockStorage()
	handler := NewHandler(mockStore, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","subject":"S","message":"M"}`},
		{"missing subject", `{"name":"A","email":"a@b.com","message":"M"}`},
		{"missing message", `{"name":"A","email":"a@b.com","subject":"S"}`},
		{"blank message", `{"name":"A","email":"a@b.com","subject":"S","message":"   "}`},
		{"malformed body", `{name}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.Send(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestSend_NotifierFailureStillCreated(t *testing.T) {
	mockStore, mockRepo := newMockStorage()

	d := notifier.NewDispatcher(4, 0)
	d.Register(&failingNotifier{})
	defer d.Close(time.Second)

	handler := NewHandler(mockStore, d)

	body := `{"name":"A","email":"a@b.com","subject":"S","message":"M"}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Send(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d (delivery failure must not fail submission)", rec.Code, http.StatusCreated)
	}
	if len(mockRepo.messages) != 1 {
		t.Errorf("persisted messages = %d, want 1", len(mockRepo.messages))
	}
}

func TestList(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	now := time.Now()
	mockRepo.messages = []*models.ContactMessage{
		{ID: "msg-1", Name: "A", Email: "a@b.com", Subject: "S1", Message: "M1", Status: models.StatusUnread, CreatedAt: now},
		{ID: "msg-2", Name: "B", Email: "b@c.com", Subject: "S2", Message: "M2", Status: models.StatusRead, CreatedAt: now},
	}

	handler := NewHandler(mockStore, nil)
	req := httptest.NewRequest("GET", "/api/contact", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data []*models.ContactMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("items count = %d, want 2", len(resp.Data))
	}
}

func TestList_Empty(t *testing.T) {
	mockStore, _ := newMockStorage()
	handler := NewHandler(mockStore, nil)

	req := httptest.NewRequest("GET", "/api/contact", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want data to be []", rec.Body.String())
	}
}

func TestUpdateStatus(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	mockRepo.messages = []*models.ContactMessage{
		{ID: "msg-1", Name: "A", Email: "a@b.com", Subject: "S", Message: "M", Status: models.StatusUnread, CreatedAt: time.Now()},
	}

	handler := NewHandler(mockStore, nil)

	router := chi.NewRouter()
	router.Put("/api/contact/{id}/status", handler.UpdateStatus)

	req := httptest.NewRequest("PUT", "/api/contact/msg-1/status", strings.NewReader(`{"status":"read"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Data *models.ContactMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Status != models.StatusRead {
		t.Errorf("status = %q, want read", resp.Data.Status)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	mockRepo.messages = []*models.ContactMessage{
		{ID: "msg-1", Status: models.StatusUnread, CreatedAt: time.Now()},
	}

	handler := NewHandler(mockStore, nil)

	router := chi.NewRouter()
	router.Put("/api/contact/{id}/status", handler.UpdateStatus)

	req := httptest.NewRequest("PUT", "/api/contact/msg-1/status", strings.NewReader(`{"status":"archived"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	mockStore, _ := newMockStorage()
	handler := NewHandler(mockStore, nil)

	router := chi.NewRouter()
	router.Put("/api/contact/{id}/status", handler.UpdateStatus)

	req := httptest.NewRequest("PUT", "/api/contact/missing/status", strings.NewReader(`{"status":"read"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
