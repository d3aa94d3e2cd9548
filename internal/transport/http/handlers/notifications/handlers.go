package notificationshandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/notifications"
	"hrportal/internal/platform/listing"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type NotificationService interface {
	List(ctx context.Context, userID string, params listing.Params) ([]notifications.Notification, listing.Meta, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}

type Handler struct {
	Service NotificationService
}

func NewHandler(service NotificationService) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/notifications", h.handleList)
	r.Post("/notifications/{notificationID}/read", h.handleMarkRead)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	items, meta, err := h.Service.List(r.Context(), user.UserID, shared.ParseListParams(r))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	notificationID, ok := shared.PathID(w, r, "notificationID", requestID)
	if !ok {
		return
	}
	if err := h.Service.MarkRead(r.Context(), user.UserID, notificationID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"id": notificationID, "read": true}, requestID)
}
