package performancehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/performance"
	"hrportal/internal/transport/http/middleware"
)

type stubService struct {
	PerformanceService
	publishCalls int
	evaluations  map[string]performance.Evaluation
	reportDir    string
}

func (s *stubService) Publish(_ context.Context, input performance.PublishInput) (performance.PublishResult, error) {
	s.publishCalls++
	if input.PublishedBy == "" {
		return performance.PublishResult{}, performance.ErrCycleNotFound
	}
	evaluator := "emp-manager"
	return performance.PublishResult{
		Cycle:              performance.Cycle{ID: input.CycleID, Title: "H1", Status: performance.CycleStatusPublished},
		EvaluationsCreated: 3,
		Evaluations: []performance.Evaluation{
			{EmployeeID: "emp-a", EvaluatorID: "emp-a"},
			{EmployeeID: "emp-b", EvaluatorID: evaluator},
			{EmployeeID: "emp-c", EvaluatorID: evaluator},
		},
	}, nil
}

func (s *stubService) Republish(_ context.Context, _ performance.PublishInput) (performance.PublishResult, error) {
	return performance.PublishResult{}, performance.ErrCycleClosed
}

func (s *stubService) SubmitEvaluation(_ context.Context, id string) (performance.Evaluation, error) {
	ev, ok := s.evaluations[id]
	if !ok {
		return performance.Evaluation{}, performance.ErrEvaluationNotFound
	}
	ev.Status = performance.EvaluationStatusSubmitted
	return ev, nil
}

func (s *stubService) ReviewEvaluation(_ context.Context, id, status string) (performance.Evaluation, error) {
	ev, ok := s.evaluations[id]
	if !ok {
		return performance.Evaluation{}, performance.ErrEvaluationNotFound
	}
	ev.Status = status
	return ev, nil
}

func (s *stubService) GenerateReport(_ context.Context, id, _ string) (string, error) {
	if _, ok := s.evaluations[id]; !ok {
		return "", performance.ErrEvaluationNotFound
	}
	path := filepath.Join(s.reportDir, "evaluation-"+id+".pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.3 stub"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

type recordingNotifier struct {
	sent map[string][]string
}

func (n *recordingNotifier) Broadcast(_ context.Context, userIDs []string, ntype, _, _ string) int {
	n.sent[ntype] = append(n.sent[ntype], userIDs...)
	return len(userIDs)
}

type staticDirectory map[string]string

func (d staticDirectory) UserIDsByEmployee(_ context.Context, ids []string) (map[string]string, error) {
	out := map[string]string{}
	for _, id := range ids {
		if userID, ok := d[id]; ok {
			out[id] = userID
		}
	}
	return out, nil
}

type countingMetrics struct{ published int }

func (m *countingMetrics) RecordPublish(n int) { m.published += n }

type recordingAuditor struct{ actions []string }

func (a *recordingAuditor) Record(_ context.Context, _, action, entityType, _, _, _ string, _, _ any) error {
	a.actions = append(a.actions, action+":"+entityType)
	return nil
}

type memIdempotency struct {
	mu    sync.Mutex
	saved map[string]json.RawMessage
}

func (m *memIdempotency) Check(_ context.Context, userID, endpoint, key, hash string) (json.RawMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.saved[userID+endpoint+key+hash]
	return stored, ok, nil
}

func (m *memIdempotency) Save(_ context.Context, userID, endpoint, key, hash string, response json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[userID+endpoint+key+hash] = response
	return nil
}

type fixture struct {
	svc      *stubService
	notifier *recordingNotifier
	metrics  *countingMetrics
	auditor  *recordingAuditor
	router   http.Handler
}

func newFixture(t *testing.T, role string) *fixture {
	t.Helper()
	f := &fixture{
		svc:      &stubService{evaluations: map[string]performance.Evaluation{}, reportDir: t.TempDir()},
		notifier: &recordingNotifier{sent: map[string][]string{}},
		metrics:  &countingMetrics{},
		auditor:  &recordingAuditor{},
	}
	h := &Handler{
		Service:     f.svc,
		Perms:       auth.StaticPermissions{},
		Audit:       f.auditor,
		Notifier:    f.notifier,
		Directory:   staticDirectory{"emp-a": "user-a", "emp-manager": "user-m", "emp-x": "user-x"},
		Metrics:     f.metrics,
		Idempotency: &memIdempotency{saved: map[string]json.RawMessage{}},
		ReportsDir:  t.TempDir(),
	}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithUser(req.Context(), auth.UserContext{UserID: "actor-1", RoleName: role})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/hr", h.RegisterRoutes)
	f.router = r
	return f
}

func (f *fixture) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestPublishSideEffects(t *testing.T) {
	f := newFixture(t, auth.RoleHR)
	cycleID := uuid.NewString()

	rec := f.do(http.MethodPost, "/hr/performance/cycles/"+cycleID+"/publish", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data struct {
			Cycle              performance.Cycle `json:"cycle"`
			EvaluationsCreated int               `json:"evaluationsCreated"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.EvaluationsCreated != 3 || env.Data.Cycle.Status != performance.CycleStatusPublished {
		t.Fatalf("unexpected publish payload %+v", env.Data)
	}
	if f.metrics.published != 3 {
		t.Fatalf("expected 3 evaluations recorded, got %d", f.metrics.published)
	}
	got := f.notifier.sent[notifications.TypeReviewAssigned]
	if len(got) != 2 || got[0] != "user-a" || got[1] != "user-m" {
		t.Fatalf("expected one notification per distinct evaluator, got %v", got)
	}
	if len(f.auditor.actions) != 1 || f.auditor.actions[0] != "publish:cycle" {
		t.Fatalf("unexpected audit actions %v", f.auditor.actions)
	}
}

func TestPublishIdempotentReplay(t *testing.T) {
	f := newFixture(t, auth.RoleHR)
	path := "/hr/performance/cycles/" + uuid.NewString() + "/publish"
	headers := map[string]string{"Idempotency-Key": "k-1"}

	first := f.do(http.MethodPost, path, `{"targetEmployeeIds":[]}`, headers)
	second := f.do(http.MethodPost, path, `{"targetEmployeeIds":[]}`, headers)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("unexpected statuses %d / %d", first.Code, second.Code)
	}
	if f.svc.publishCalls != 1 {
		t.Fatalf("expected a single publish, got %d", f.svc.publishCalls)
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatal("expected replay header on second response")
	}
}

func TestPublishValidationAndErrors(t *testing.T) {
	f := newFixture(t, auth.RoleHR)
	cycleID := uuid.NewString()

	rec := f.do(http.MethodPost, "/hr/performance/cycles/"+cycleID+"/publish", `{"targetEmployeeIds":["nope"]}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad target id, got %d", rec.Code)
	}
	rec = f.do(http.MethodPost, "/hr/performance/cycles/"+cycleID+"/republish", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected closed cycle rejection, got %d", rec.Code)
	}
	if f.metrics.published != 0 || len(f.auditor.actions) != 0 {
		t.Fatal("failed publishes must not record side effects")
	}

	manager := newFixture(t, auth.RoleManager)
	if rec := manager.do(http.MethodPost, "/hr/performance/cycles/"+cycleID+"/publish", "", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager, got %d", rec.Code)
	}
}

func TestSubmitAndReviewNotify(t *testing.T) {
	f := newFixture(t, auth.RoleManager)
	evID := uuid.NewString()
	f.svc.evaluations[evID] = performance.Evaluation{
		ID: evID, EmployeeID: "emp-x", EvaluatorID: "emp-manager",
		EvaluationType: performance.TypeManager, Status: performance.EvaluationStatusDraft,
	}

	if rec := f.do(http.MethodPost, "/hr/performance/evaluations/"+evID+"/submit", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := f.notifier.sent[notifications.TypeEvaluationSubmitted]; len(got) != 1 || got[0] != "user-x" {
		t.Fatalf("expected the employee notified, got %v", got)
	}

	if rec := f.do(http.MethodPost, "/hr/performance/evaluations/"+evID+"/review", `{"status":"pending"}`, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown review status, got %d", rec.Code)
	}
	if rec := f.do(http.MethodPost, "/hr/performance/evaluations/"+evID+"/review", `{"status":"approved"}`, nil); rec.Code != http.StatusOK {
		t.Fatalf("review: expected 200, got %d", rec.Code)
	}
	if got := f.notifier.sent[notifications.TypeEvaluationReviewed]; len(got) != 1 || got[0] != "user-m" {
		t.Fatalf("expected the evaluator notified, got %v", got)
	}
	if rec := f.do(http.MethodPost, "/hr/performance/evaluations/"+uuid.NewString()+"/submit", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestReportStreamsPDF(t *testing.T) {
	f := newFixture(t, auth.RoleEmployee)
	evID := uuid.NewString()
	f.svc.evaluations[evID] = performance.Evaluation{ID: evID}

	rec := f.do(http.MethodGet, "/hr/performance/evaluations/"+evID+"/report", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected pdf body")
	}
}

func TestCreateCycleValidation(t *testing.T) {
	f := newFixture(t, auth.RoleHR)
	body := `{"title":"H1","templateId":"` + uuid.NewString() + `","startDate":"2024-01-01","endDate":"2024-06-30","evaluationTypes":["SELF","BOSS"]}`
	rec := f.do(http.MethodPost, "/hr/performance/cycles", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown evaluation type, got %d", rec.Code)
	}
}
