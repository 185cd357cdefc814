package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"brightlearn-backend/internal/middleware"
	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/repository"
)

type ProgressHandler struct {
	progressRepo *repository.ProgressRepo
}

func NewProgressHandler(progressRepo *repository.ProgressRepo) *ProgressHandler {
	return &ProgressHandler{progressRepo: progressRepo}
}

// Upsert records a lesson attempt. One row per (user, lesson); repeat
// attempts overwrite status and score.
func (h *ProgressHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LessonID uuid.UUID `json:"lesson_id"`
		Status   string    `json:"status"`
		Score    *int      `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.LessonID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"lesson_id": "Lesson ID is required"}, r))
		return
	}
	if req.Status != "in_progress" && req.Status != "completed" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"status": "Status must be in_progress or completed"}, r))
		return
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"score": "Score must be between 0 and 100"}, r))
		return
	}

	progress := &models.LessonProgress{
		UserID:   middleware.GetUserID(r.Context()),
		LessonID: req.LessonID,
		Status:   req.Status,
		Score:    req.Score,
	}

	if err := h.progressRepo.Upsert(r.Context(), progress); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save progress", r))
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	progress, err := h.progressRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load progress", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}

func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summary, err := h.progressRepo.Summary(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load summary", r))
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
