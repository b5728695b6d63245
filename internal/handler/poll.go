package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pulsehub/pulsehub/internal/auth"
	"github.com/pulsehub/pulsehub/internal/handler/dto"
	"github.com/pulsehub/pulsehub/internal/service"
)

// PollHandler handles HTTP requests for poll operations.
type PollHandler struct {
	svc    *service.PollService
	logger *slog.Logger
}

// NewPollHandler creates a new PollHandler.
func NewPollHandler(svc *service.PollService, logger *slog.Logger) *PollHandler {
	return &PollHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /polls.
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	voterID := auth.VoterFromContext(r.Context())
	if voterID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing session token")
		return
	}

	var req dto.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	options := make([]string, len(req.Options))
	for i, opt := range req.Options {
		options[i] = opt.Text
	}

	poll, err := h.svc.CreatePoll(r.Context(), service.CreatePollInput{
		Question: req.Question,
		Options:  options,
		OwnerID:  voterID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("poll_created",
		"poll_id", poll.ID,
		"owner_id", poll.UserID,
		"option_count", len(poll.Options),
	)

	writeSuccess(w, http.StatusCreated, poll)
}

// List handles GET /polls.
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	polls, err := h.svc.ListPolls(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, polls)
}

// ListMine handles GET /polls/mine, returning the polls created by the
// authenticated user.
func (h *PollHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	voterID := auth.VoterFromContext(r.Context())
	if voterID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing session token")
		return
	}

	polls, err := h.svc.ListUserPolls(r.Context(), voterID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, polls)
}

// Vote handles POST /polls/vote/{pollID}/{optionID}.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	voterID := auth.VoterFromContext(r.Context())
	if voterID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing session token")
		return
	}

	pollID := chi.URLParam(r, "pollID")
	if pollID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_POLL_ID", "Poll ID is required")
		return
	}

	optionID, err := strconv.Atoi(chi.URLParam(r, "optionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_OPTION", "Option ID must be an integer")
		return
	}

	options, err := h.svc.CastVote(r.Context(), pollID, optionID, voterID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("vote_recorded",
		"poll_id", pollID,
		"option_id", optionID,
		"voter_id", voterID,
	)

	// Vote responses are not enveloped; clients read the updated tallies
	// directly from the body.
	writeJSON(w, http.StatusOK, dto.VoteResponse{
		PollID:   pollID,
		OptionID: optionID,
		Options:  options,
	})
}

// handleServiceError maps poll service errors to HTTP responses.
func (h *PollHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateVote):
		writeError(w, http.StatusForbidden, "ALREADY_VOTED", "You have already voted on this poll")
	case errors.Is(err, service.ErrPollNotFound):
		writeError(w, http.StatusNotFound, "POLL_NOT_FOUND", "Poll not found")
	case errors.Is(err, service.ErrInvalidOption):
		writeError(w, http.StatusBadRequest, "INVALID_OPTION", "Option does not exist in this poll")
	case errors.Is(err, service.ErrVoterNotFound):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists")
	case errors.Is(err, service.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, "EMPTY_QUESTION", "Question must not be empty")
	case errors.Is(err, service.ErrTooFewOptions):
		writeError(w, http.StatusBadRequest, "TOO_FEW_OPTIONS", "Poll needs at least two options")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
