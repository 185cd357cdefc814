package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"brightlearn-backend/internal/repository"
)

type LessonHandler struct {
	lessonRepo *repository.LessonRepo
}

func NewLessonHandler(lessonRepo *repository.LessonRepo) *LessonHandler {
	return &LessonHandler{lessonRepo: lessonRepo}
}

// List returns published lessons, optionally filtered by subject.
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("subject")

	lessons, err := h.lessonRepo.ListPublished(r.Context(), subject)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load lessons", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"lessons": lessons})
}

func (h *LessonHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	lesson, err := h.lessonRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Lesson not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load lesson", r))
		return
	}

	if !lesson.Published {
		// Unpublished lessons are invisible outside the admin surface.
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Lesson not found", r))
		return
	}

	writeJSON(w, http.StatusOK, lesson)
}
