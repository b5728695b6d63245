package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pulsehub/pulsehub/internal/auth"
	"github.com/pulsehub/pulsehub/internal/handler/dto"
	"github.com/pulsehub/pulsehub/internal/middleware"
	"github.com/pulsehub/pulsehub/internal/service"
)

// AccountHandler handles sign-up and sign-in requests.
type AccountHandler struct {
	svc          *service.AccountService
	logger       *slog.Logger
	secureCookie bool
}

// NewAccountHandler creates a new AccountHandler. secureCookie should be
// true outside development so the session cookie is HTTPS-only.
func NewAccountHandler(svc *service.AccountService, logger *slog.Logger, secureCookie bool) *AccountHandler {
	return &AccountHandler{
		svc:          svc,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// SignUp handles POST /polls/sign-up.
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("account_registered", "user_id", user.ID)

	writeSuccess(w, http.StatusCreated, user)
}

// SignIn handles POST /polls/sign-in. A successful sign-in sets the session
// cookie and also returns the token for clients that prefer bearer auth.
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.svc.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("account_signed_in", "user_id", user.ID)

	writeSuccess(w, http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

// Me handles GET /polls/user, returning the authenticated account.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	voterID := auth.VoterFromContext(r.Context())
	if voterID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing session token")
		return
	}

	user, err := h.svc.GetUser(r.Context(), voterID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "Account no longer exists")
			return
		}
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}

// handleServiceError maps account service errors to HTTP responses.
func (h *AccountHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Invalid email address")
	case errors.Is(err, service.ErrPasswordTooWeak):
		writeError(w, http.StatusBadRequest, "PASSWORD_TOO_WEAK", "Password must be at least 8 characters")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User doesn't exist. Sign up instead")
	case errors.Is(err, service.ErrWrongPassword):
		writeError(w, http.StatusUnauthorized, "WRONG_PASSWORD", "Wrong password")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
