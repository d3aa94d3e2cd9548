package shared

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrportal/internal/transport/http/api"
)

// PathID reads a UUID route parameter. Malformed ids get a 400 and false.
func PathID(w http.ResponseWriter, r *http.Request, name, requestID string) (string, bool) {
	raw := chi.URLParam(r, name)
	parsed, err := uuid.Parse(raw)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid "+name, requestID)
		return "", false
	}
	return parsed.String(), true
}

// QueryID reads an optional UUID query parameter. An absent value is "" and ok.
func QueryID(w http.ResponseWriter, r *http.Request, name, requestID string) (string, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return "", true
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid "+name, requestID)
		return "", false
	}
	return parsed.String(), true
}
