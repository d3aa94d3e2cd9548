package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"hrportal/internal/platform/apperror"
	"hrportal/internal/platform/listing"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool          `json:"success"`
	Data      any           `json:"data,omitempty"`
	Meta      *listing.Meta `json:"meta,omitempty"`
	Error     *Error        `json:"error,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

// Paginated writes a list page. data should be a non-nil slice so that an
// empty page still encodes as [].
func Paginated(w http.ResponseWriter, data any, meta listing.Meta, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Meta: &meta, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailError maps a domain error onto the HTTP status for its code. Untyped
// errors are logged and reported as a generic 500.
func FailError(w http.ResponseWriter, err error, requestID string) {
	switch apperror.GetCode(err) {
	case apperror.CodeValidation:
		Fail(w, http.StatusBadRequest, "validation_error", apperror.Message(err), requestID)
	case apperror.CodeNotFound:
		Fail(w, http.StatusNotFound, "not_found", apperror.Message(err), requestID)
	case apperror.CodeConflict:
		Fail(w, http.StatusConflict, "conflict", apperror.Message(err), requestID)
	case apperror.CodeUnauthorized:
		Fail(w, http.StatusUnauthorized, "unauthorized", apperror.Message(err), requestID)
	default:
		slog.Error("request failed", "err", err, "requestId", requestID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
