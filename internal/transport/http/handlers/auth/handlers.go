package authhandler

import (
	"context"
	"net/http"

	"hrportal/internal/domain/auth"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
	Me(ctx context.Context, userID string) (auth.Profile, error)
}

type Handler struct {
	Service AuthService
}

func NewHandler(service AuthService) *Handler {
	return &Handler{Service: service}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}

	result, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      map[string]string{"id": result.UserID, "role": result.Role},
	}, requestID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	profile, err := h.Service.Me(r.Context(), user.UserID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, profile, requestID)
}
