package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/repository"
	"brightlearn-backend/internal/services"
)

// Lesson source documents are small; 20MB covers any realistic PDF.
const maxImportBytes = 20 * 1024 * 1024

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var lessonSubjects = map[string]bool{
	"coding":  true,
	"math":    true,
	"science": true,
	"art":     true,
}

var lessonDifficulties = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

type AdminHandler struct {
	lessonRepo     *repository.LessonRepo
	moderationRepo *repository.ModerationRepo
	videoService   *services.VideoService
	fileExtract    *services.FileExtractService
}

func NewAdminHandler(lessonRepo *repository.LessonRepo, moderationRepo *repository.ModerationRepo,
	videoService *services.VideoService, fileExtract *services.FileExtractService) *AdminHandler {
	return &AdminHandler{
		lessonRepo:     lessonRepo,
		moderationRepo: moderationRepo,
		videoService:   videoService,
		fileExtract:    fileExtract,
	}
}

type lessonRequest struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	Difficulty string `json:"difficulty"`
	Content    string `json:"content"`
	SortOrder  int    `json:"sort_order"`
}

func validateLessonRequest(req lessonRequest) map[string]string {
	fields := map[string]string{}
	if !slugPattern.MatchString(req.Slug) {
		fields["slug"] = "Slug must be lowercase letters, digits and hyphens"
	}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "Title is required"
	}
	if !lessonSubjects[req.Subject] {
		fields["subject"] = "Subject must be coding, math, science or art"
	}
	if !lessonDifficulties[req.Difficulty] {
		fields["difficulty"] = "Difficulty must be beginner, intermediate or advanced"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (h *AdminHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessonRepo.ListAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load lessons", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"lessons": lessons})
}

func (h *AdminHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateLessonRequest(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	lesson := &models.Lesson{
		Slug:       req.Slug,
		Title:      strings.TrimSpace(req.Title),
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		Content:    req.Content,
		SortOrder:  req.SortOrder,
	}

	if err := h.lessonRepo.Create(r.Context(), lesson); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create lesson", r))
		return
	}

	writeJSON(w, http.StatusCreated, lesson)
}

func (h *AdminHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid lesson ID", r))
		return
	}

	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateLessonRequest(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	lesson, err := h.lessonRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Lesson not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load lesson", r))
		return
	}

	lesson.Slug = req.Slug
	lesson.Title = strings.TrimSpace(req.Title)
	lesson.Subject = req.Subject
	lesson.Difficulty = req.Difficulty
	lesson.Content = req.Content
	lesson.SortOrder = req.SortOrder

	if err := h.lessonRepo.Update(r.Context(), lesson); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update lesson", r))
		return
	}

	writeJSON(w, http.StatusOK, lesson)
}

func (h *AdminHandler) SetPublished(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid lesson ID", r))
		return
	}

	var req struct {
		Published bool `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.lessonRepo.SetPublished(r.Context(), id, req.Published); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update lesson", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"published": req.Published})
}

func (h *AdminHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid lesson ID", r))
		return
	}

	if err := h.lessonRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete lesson", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Lesson deleted"})
}

// ImportContent extracts plain text from an uploaded document so admins
// can paste a draft into the lesson editor instead of retyping it.
func (h *AdminHandler) ImportContent(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxImportBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds 20MB limit", r))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".txt", ".md", ".pdf", ".docx":
	default:
		writeJSON(w, http.StatusUnsupportedMediaType, errorResp("UNSUPPORTED_FORMAT", "File type not supported", r))
		return
	}

	// The extractors work on paths, so spool the upload to a temp file.
	tmp, err := os.CreateTemp("", "lesson-import-*"+ext)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to process upload", r))
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to process upload", r))
		return
	}
	tmp.Close()

	text, err := h.fileExtract.ExtractTextFromPath(tmp.Name())
	if err != nil {
		log.Printf("admin: content extraction failed for %s: %v", header.Filename, err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("EXTRACTION_FAILED", "Could not extract text from the file", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": text})
}

// AttachVideo validates a YouTube URL, fetches the video metadata and
// its transcript, and stores both on the lesson. A missing transcript
// is tolerated; the video still attaches.
func (h *AdminHandler) AttachVideo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid lesson ID", r))
		return
	}

	var req struct {
		VideoURL string `json:"video_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	videoID, err := services.ParseVideoID(req.VideoURL)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	info, err := h.videoService.Lookup(videoID)
	if err != nil {
		log.Printf("admin: video lookup failed for %s: %v", videoID, err)
		writeJSON(w, http.StatusBadGateway, errorResp("VIDEO_LOOKUP_FAILED", "Could not fetch video metadata", r))
		return
	}

	transcript, err := h.videoService.GetTranscript(videoID)
	if err != nil {
		log.Printf("admin: transcript fetch failed for %s: %v", videoID, err)
		transcript = ""
	}

	if err := h.lessonRepo.AttachVideo(r.Context(), id, info, transcript); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to attach video", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"video":          info,
		"has_transcript": transcript != "",
	})
}

// ListModerationEvents returns recent moderation pipeline outcomes for
// the admin review page.
func (h *AdminHandler) ListModerationEvents(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	if action != "" && action != "allow" && action != "warn" && action != "block" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"action": "Action must be allow, warn or block"}, r))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	events, err := h.moderationRepo.ListRecent(r.Context(), action, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load moderation events", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}
