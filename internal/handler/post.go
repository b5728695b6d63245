package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pulsehub/pulsehub/internal/handler/dto"
	"github.com/pulsehub/pulsehub/internal/repository"
	"github.com/pulsehub/pulsehub/internal/service"
)

// PostHandler handles HTTP requests for feed post operations.
type PostHandler struct {
	svc    *service.PostService
	logger *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	post, err := h.svc.CreatePost(r.Context(), req.Content, req.Likes, req.Dislikes)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_created", "post_id", post.ID)

	writeSuccess(w, http.StatusCreated, post)
}

// List handles GET /posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, posts)
}

// Update handles PUT /posts/{id}. Absent fields keep their stored values.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), id, repository.PostUpdate{
		Content:  req.Content,
		Likes:    req.Likes,
		Dislikes: req.Dislikes,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_updated", "post_id", post.ID)

	writeSuccess(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeletePost(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_deleted", "post_id", id)

	writeSuccess(w, http.StatusOK, map[string]int64{"id": id})
}

func parsePostID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Post ID must be an integer")
		return 0, false
	}
	return id, true
}

// handleServiceError maps post service errors to HTTP responses.
func (h *PostHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
	case errors.Is(err, service.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, "EMPTY_CONTENT", "Content must not be empty")
	case errors.Is(err, service.ErrNoPostFields):
		writeError(w, http.StatusBadRequest, "NO_FIELDS", "No fields provided to update")
	case errors.Is(err, service.ErrNegativeCount):
		writeError(w, http.StatusBadRequest, "NEGATIVE_COUNT", "Reaction counts must not be negative")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
