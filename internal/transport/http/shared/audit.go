package shared

import (
	"context"
	"log/slog"
	"net/http"

	"hrportal/internal/platform/requestctx"
)

type Auditor interface {
	Record(ctx context.Context, actorID, action, entityType, entityID, requestID, ip string, before, after any) error
}

// RecordAudit writes an audit event for the request. A failure is logged and
// never reaches the client.
func RecordAudit(r *http.Request, auditor Auditor, actorID, action, entityType, entityID string, before, after any) {
	if auditor == nil {
		return
	}
	requestID := requestctx.GetRequestID(r.Context())
	if err := auditor.Record(r.Context(), actorID, action, entityType, entityID, requestID, ClientIP(r), before, after); err != nil {
		slog.Warn("audit record failed", "err", err, "action", action, "entityType", entityType, "entityId", entityID)
	}
}
