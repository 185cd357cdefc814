package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"brightlearn-backend/internal/middleware"
	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/repository"
)

// Playground programs are small by nature; anything bigger than this is
// someone using us as file storage.
const maxSnippetBytes = 10 * 1024

type SnippetHandler struct {
	snippetRepo *repository.SnippetRepo
}

func NewSnippetHandler(snippetRepo *repository.SnippetRepo) *SnippetHandler {
	return &SnippetHandler{snippetRepo: snippetRepo}
}

func validateSnippet(title, code string) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "Title is required"
	}
	if len(title) > 100 {
		fields["title"] = "Title must be at most 100 characters"
	}
	if len(code) > maxSnippetBytes {
		fields["code"] = "Code must be at most 10KB"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (h *SnippetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateSnippet(req.Title, req.Code); fields != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	snippet := &models.Snippet{
		UserID: middleware.GetUserID(r.Context()),
		Title:  strings.TrimSpace(req.Title),
		Code:   req.Code,
	}

	if err := h.snippetRepo.Create(r.Context(), snippet); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save snippet", r))
		return
	}

	writeJSON(w, http.StatusCreated, snippet)
}

func (h *SnippetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid snippet ID", r))
		return
	}

	var req struct {
		Title string `json:"title"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateSnippet(req.Title, req.Code); fields != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	snippet, err := h.snippetRepo.GetByID(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Snippet not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load snippet", r))
		return
	}

	snippet.Title = strings.TrimSpace(req.Title)
	snippet.Code = req.Code

	if err := h.snippetRepo.Update(r.Context(), snippet); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save snippet", r))
		return
	}

	writeJSON(w, http.StatusOK, snippet)
}

func (h *SnippetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	snippets, err := h.snippetRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load snippets", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"snippets": snippets})
}

func (h *SnippetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid snippet ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	snippet, err := h.snippetRepo.GetByID(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Snippet not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load snippet", r))
		return
	}

	writeJSON(w, http.StatusOK, snippet)
}

func (h *SnippetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid snippet ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.snippetRepo.Delete(r.Context(), id, userID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete snippet", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Snippet deleted"})
}
