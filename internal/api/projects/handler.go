// Package projects exposes the portfolio project CRUD endpoints.
package projects

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/folio-hub/folio-server/internal/models"
	"github.com/folio-hub/folio-server/internal/storage"
)

// FeaturedLimit caps the featured project listing.
const FeaturedLimit = 3

// Response helpers (same pattern as auth)
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
	storage storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

// Request types
type CreateRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Images       []string `json:"images"`
	GithubURL    string   `json:"githubUrl"`
	LiveURL      string   `json:"liveUrl"`
	Featured     bool     `json:"featured"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

// UpdateRequest uses pointers so absent fields are left untouched.
type UpdateRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Technologies *[]string `json:"technologies"`
	Images       *[]string `json:"images"`
	GithubURL    *string   `json:"githubUrl"`
	LiveURL      *string   `json:"liveUrl"`
	Featured     *bool     `json:"featured"`
	Category     *string   `json:"category"`
	Tags         *[]string `json:"tags"`
}

// List returns all projects, newest first. Public.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.storage.Projects().List(r.Context())
	if err != nil {
		log.Printf("list projects error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	if projects == nil {
		projects = []*models.Project{}
	}
	jsonOK(w, projects)
}

// Featured returns up to 3 featured projects, newest first. Public.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	projects, err := h.storage.Projects().ListFeatured(r.Context(), FeaturedLimit)
	if err != nil {
		log.Printf("list featured projects error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	if projects == nil {
		projects = []*models.Project{}
	}
	jsonOK(w, projects)
}

// GetByID returns a project by ID. Public.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "project id required")
		return
	}

	project, err := h.storage.Projects().GetByID(r.Context(), id)
	if err != nil {
		log.Printf("get project error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if project == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "project not found")
		return
	}

	jsonOK(w, project)
}

// Create creates a new project (admin only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "invalid request body")
		return
	}

	if err := ValidateTitle(req.Title); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}
	if err := ValidateCategory(req.Category); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}
	if err := ValidateTechnologies(req.Technologies); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}
	if err := ValidateImages(req.Images); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}

	now := time.Now()
	project := &models.Project{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Technologies: req.Technologies,
		Images:       req.Images,
		GithubURL:    strings.TrimSpace(req.GithubURL),
		LiveURL:      strings.TrimSpace(req.LiveURL),
		Featured:     req.Featured,
		Category:     models.Category(req.Category),
		Tags:         req.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.storage.Projects().Create(r.Context(), project); err != nil {
		log.Printf("create project error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	log.Printf("project created: %s (%s)", project.Title, project.ID)
	jsonCreated(w, project)
}

// Update merges the provided fields into a project (admin only).
// Fields absent from the body keep their prior values.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "project id required")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	project, err := h.storage.Projects().GetByID(ctx, id)
	if err != nil {
		log.Printf("update project error: get: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if project == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "project not found")
		return
	}

	if req.Title != nil {
		if err := ValidateTitle(*req.Title); err != nil {
			jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
			return
		}
		project.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Technologies != nil {
		if err := ValidateTechnologies(*req.Technologies); err != nil {
			jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
			return
		}
		project.Technologies = *req.Technologies
	}
	if req.Images != nil {
		if err := ValidateImages(*req.Images); err != nil {
			jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
			return
		}
		project.Images = *req.Images
	}
	if req.GithubURL != nil {
		project.GithubURL = strings.TrimSpace(*req.GithubURL)
	}
	if req.LiveURL != nil {
		project.LiveURL = strings.TrimSpace(*req.LiveURL)
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}
	if req.Category != nil {
		if err := ValidateCategory(*req.Category); err != nil {
			jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
			return
		}
		project.Category = models.Category(*req.Category)
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}

	// CreatedAt stays as persisted
	project.UpdatedAt = time.Now()

	if err := h.storage.Projects().Update(ctx, project); err != nil {
		log.Printf("update project error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	log.Printf("project updated: %s (%s)", project.Title, project.ID)
	jsonOK(w, project)
}

// Delete removes a project (admin only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "project id required")
		return
	}

	ctx := r.Context()
	project, err := h.storage.Projects().GetByID(ctx, id)
	if err != nil {
		log.Printf("delete project error: get: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if project == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "project not found")
		return
	}

	if err := h.storage.Projects().Delete(ctx, id); err != nil {
		log.Printf("delete project error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	log.Printf("project deleted: %s (%s)", project.Title, project.ID)
	jsonOK(w, map[string]string{"message": "project deleted"})
}
