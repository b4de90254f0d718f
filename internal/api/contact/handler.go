// Package contact exposes the public contact form and its admin inbox.
package contact

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/folio-hub/folio-server/internal/metrics"
	"github.com/folio-hub/folio-server/internal/models"
	"github.com/folio-hub/folio-server/internal/notifier"
	"github.com/folio-hub/folio-server/internal/storage"
)

// Response helpers (same pattern as projects)
type errorResponse struct {
	Error errorBody `json:"error"`
}
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
type dataResponse struct {
	Data any `json:"data"`
}

const (
	errCodeBadRequest       = "BAD_REQUEST"
	errCodeValidationFailed = "VALIDATION_FAILED"
	errCodeNotFound         = "NOT_FOUND"
	errCodeInternalError    = "INTERNAL_ERROR"
)

func jsonError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Code: code, Message: message}})
}

func jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dataResponse{Data: data})
}

func jsonCreated(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dataResponse{Data: data})
}

type Handler struct {
	storage    storage.Storage
	dispatcher *notifier.Dispatcher
}

// NewHandler creates a contact handler. dispatcher may be nil when no
// notification channel is configured.
func NewHandler(store storage.Storage, dispatcher *notifier.Dispatcher) *Handler {
	return &Handler{storage: store, dispatcher: dispatcher}
}

// Request types
type SendRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Send accepts a public contact form submission. The message is persisted
// before notification dispatch; a notification failure never fails the
// submission.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "invalid request body")
		return
	}

	if err := ValidateName(req.Name); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}
	if err := ValidateSubject(req.Subject); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}
	if err := ValidateMessage(req.Message); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}

	msg := models.NewContactMessage(
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Email),
		strings.TrimSpace(req.Subject),
		strings.TrimSpace(req.Message),
	)
	msg.ID = uuid.New().String()

	if err := h.storage.Messages().Create(r.Context(), msg); err != nil {
		log.Printf("create contact message error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	metrics.ContactMessagesTotal.Inc()
	log.Printf("contact message received: %s from %s", msg.ID, msg.Email)

	if h.dispatcher != nil {
		h.dispatcher.Enqueue(msg)
	}

	jsonCreated(w, map[string]string{
		"id":      msg.ID,
		"message": "message received",
	})
}

// List returns all messages, newest first (admin only).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.storage.Messages().List(r.Context())
	if err != nil {
		log.Printf("list contact messages error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	if messages == nil {
		messages = []*models.ContactMessage{}
	}
	jsonOK(w, messages)
}

// UpdateStatus sets a message's status (admin only). Any known status may
// be set at any time; transitions are not ordered.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "message id required")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "invalid request body")
		return
	}

	if !models.ValidMessageStatus(req.Status) {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, "status must be unread, read, or replied")
		return
	}

	msg, err := h.storage.Messages().UpdateStatus(r.Context(), id, models.MessageStatus(req.Status))
	if err != nil {
		log.Printf("update message status error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if msg == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "message not found")
		return
	}

	log.Printf("message %s marked %s", msg.ID, msg.Status)
	jsonOK(w, msg)
}
