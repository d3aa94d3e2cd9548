package audithandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/listing"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type AuditService interface {
	List(ctx context.Context, params listing.Params, filter audit.Filter) ([]audit.Event, listing.Meta, error)
}

type Handler struct {
	Service AuditService
	Perms   middleware.PermissionStore
}

func NewHandler(service AuditService, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAuditRead, h.Perms)).Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actorID, ok := shared.QueryID(w, r, "actorUserId", requestID)
	if !ok {
		return
	}
	query := r.URL.Query()
	filter := audit.Filter{
		Action:         query.Get("action"),
		EntityType:     query.Get("entityType"),
		ActorUser:      actorID,
		IncludeDetails: shared.QueryBool(r, "includeDetails"),
	}
	events, meta, err := h.Service.List(r.Context(), shared.ParseListParams(r), filter)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, events, meta, requestID)
}
