package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/termbase/termbase/internal/auth"
	"github.com/termbase/termbase/internal/handler/dto"
	"github.com/termbase/termbase/internal/service"
)

// AccountHandler handles the auth endpoints.
type AccountHandler struct {
	svc    *service.AccountService
	logger *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, logger: logger}
}

// SignUp handles POST /api/v1/auth/signup.
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	info, err := h.svc.SignUp(r.Context(), service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, clientInfo(r))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_signed_up", "user_id", info.User.ID)

	writeJSON(w, http.StatusCreated, dto.SessionResponse{
		Token:     info.Token,
		ExpiresAt: info.ExpiresAt,
		User:      dto.ToUserResponse(info.User),
	})
}

// SignIn handles POST /api/v1/auth/signin.
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	info, err := h.svc.SignIn(r.Context(), service.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	}, clientInfo(r))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_signed_in", "user_id", info.User.ID)

	writeJSON(w, http.StatusOK, dto.SessionResponse{
		Token:     info.Token,
		ExpiresAt: info.ExpiresAt,
		User:      dto.ToUserResponse(info.User),
	})
}

// SignOut handles POST /api/v1/auth/signout.
func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if err := h.svc.SignOut(r.Context(), token); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DeleteResponse{Success: true})
}

// Me handles GET /api/v1/auth/me.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())
	if caller == nil {
		respondServiceError(w, h.logger, service.ErrUnauthenticated)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToIdentityResponse(caller))
}

// bearerToken extracts the raw session token for sign-out.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// clientInfo captures transport metadata stored with new sessions.
func clientInfo(r *http.Request) service.ClientInfo {
	return service.ClientInfo{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
