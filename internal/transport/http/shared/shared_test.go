package shared

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestParseListParams(t *testing.T) {
	tests := []struct {
		query     string
		page      int
		limit     int
		sortBy    string
		sortOrder string
	}{
		{query: "", page: 1, limit: 10, sortBy: "createdAt", sortOrder: "DESC"},
		{query: "page=3&limit=25&sortBy=lastName&sortOrder=asc", page: 3, limit: 25, sortBy: "lastName", sortOrder: "ASC"},
		{query: "page=abc&limit=-4&sortOrder=sideways", page: 1, limit: 10, sortBy: "createdAt", sortOrder: "DESC"},
		{query: "limit=1000", page: 1, limit: 100, sortBy: "createdAt", sortOrder: "DESC"},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x?"+tc.query, nil)
			p := ParseListParams(req)
			if p.Page != tc.page || p.Limit != tc.limit || p.SortBy != tc.sortBy || p.SortOrder != tc.sortOrder {
				t.Fatalf("unexpected params %+v", p)
			}
		})
	}
}

type createPayload struct {
	Title  string  `json:"title" validate:"required"`
	Status string  `json:"status" validate:"omitempty,oneof=active closed"`
	Weight float64 `json:"weight" validate:"gte=0,lte=100"`
	Items  []struct {
		Name string `json:"name" validate:"required"`
	} `json:"items" validate:"dive"`
}

func TestDecodeAndValidate(t *testing.T) {
	body := `{"status":"paused","weight":120,"items":[{"name":""}]}`
	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	var payload createPayload
	if DecodeAndValidate(rec, req, &payload, "req") {
		t.Fatal("expected validation failure")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range envelope.Error.Details.Fields {
		fields[issue.Field] = true
	}
	for _, want := range []string{"title", "status", "weight", "items[0].name"} {
		if !fields[want] {
			t.Fatalf("missing issue for %s in %+v", want, envelope.Error.Details.Fields)
		}
	}
}

func TestDecodeAndValidateRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	var payload createPayload
	if DecodeAndValidate(rec, req, &payload, "req") || rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", rec.Code)
	}
}

func TestDecodeOptionalAcceptsEmptyBody(t *testing.T) {
	var payload struct {
		IDs []string `json:"ids" validate:"dive,uuid"`
	}
	rec := httptest.NewRecorder()
	if !DecodeOptional(rec, httptest.NewRequest(http.MethodPost, "/x", nil), &payload, "req") {
		t.Fatalf("expected empty body to pass, got %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	if DecodeOptional(rec, httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{"ids":["nope"]}`)), &payload, "req") {
		t.Fatal("expected invalid uuid to be rejected")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	if got := ClientIP(req); got != "10.0.0.5" {
		t.Fatalf("expected socket address, got %q", got)
	}
	req.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}

func TestValidatorDates(t *testing.T) {
	v := NewValidator()
	start := v.Date("startDate", "2024-01-01")
	end := v.OptionalDate("endDate", "")
	if v.HasIssues() || start.IsZero() || end != nil {
		t.Fatalf("unexpected result: %v %v %v", v.Issues(), start, end)
	}
	v.Date("startDate", "01/02/2024")
	v.OptionalDate("endDate", "tomorrow")
	if len(v.Issues()) != 2 || v.Issues()[0].Field != "endDate" {
		t.Fatalf("expected sorted issues, got %v", v.Issues())
	}
}

func TestPathID(t *testing.T) {
	router := chi.NewRouter()
	var got string
	router.Get("/items/{itemID}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := PathID(w, r, "itemID", "req")
		if ok {
			got = id
			w.WriteHeader(http.StatusNoContent)
		}
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/not-a-uuid", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	id := uuid.NewString()
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+strings.ToUpper(id), nil))
	if rec.Code != http.StatusNoContent || got != id {
		t.Fatalf("expected normalized id %s, got %q (%d)", id, got, rec.Code)
	}
}

func TestQueryID(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		query  string
		want   string
		ok     bool
		status int
	}{
		{query: "", want: "", ok: true, status: http.StatusOK},
		{query: "managerId=" + strings.ToUpper(id), want: id, ok: true, status: http.StatusOK},
		{query: "managerId=not-a-uuid", ok: false, status: http.StatusBadRequest},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/employees?"+tc.query, nil)
		got, ok := QueryID(rec, req, "managerId", "req-1")
		if ok != tc.ok || got != tc.want {
			t.Fatalf("query %q: got (%q, %v), want (%q, %v)", tc.query, got, ok, tc.want, tc.ok)
		}
		if rec.Code != tc.status {
			t.Fatalf("query %q: expected status %d, got %d", tc.query, tc.status, rec.Code)
		}
	}
}
