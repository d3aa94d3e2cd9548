package performancehandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/performance"
	"hrportal/internal/platform/listing"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type PerformanceService interface {
	Publish(ctx context.Context, input performance.PublishInput) (performance.PublishResult, error)
	Republish(ctx context.Context, input performance.PublishInput) (performance.PublishResult, error)

	ListTemplates(ctx context.Context, params listing.Params) ([]performance.Template, listing.Meta, error)
	GetTemplate(ctx context.Context, templateID string) (performance.Template, error)
	CreateTemplate(ctx context.Context, t performance.Template) (performance.Template, error)
	UpdateTemplate(ctx context.Context, t performance.Template) (performance.Template, error)
	DeleteTemplate(ctx context.Context, templateID string) error

	ListCycles(ctx context.Context, params listing.Params, filter performance.CycleFilter) ([]performance.Cycle, listing.Meta, error)
	GetCycle(ctx context.Context, cycleID string) (performance.Cycle, error)
	CreateCycle(ctx context.Context, c performance.Cycle) (performance.Cycle, error)
	UpdateCycle(ctx context.Context, c performance.Cycle) (performance.Cycle, error)
	CloseCycle(ctx context.Context, cycleID string) (performance.Cycle, error)
	DeleteCycle(ctx context.Context, cycleID string) error
	CycleSummary(ctx context.Context, cycleID string) (performance.CycleSummary, error)

	ListEvaluations(ctx context.Context, params listing.Params, filter performance.EvaluationFilter) ([]performance.Evaluation, listing.Meta, error)
	ListCycleEvaluations(ctx context.Context, cycleID string, params listing.Params) ([]performance.Evaluation, listing.Meta, error)
	GetEvaluation(ctx context.Context, evaluationID string) (performance.Evaluation, error)
	CreateEvaluation(ctx context.Context, input performance.CreateEvaluationInput) (performance.Evaluation, error)
	UpdateEvaluation(ctx context.Context, evaluationID string, categories []performance.Category, comments string) (performance.Evaluation, error)
	SubmitEvaluation(ctx context.Context, evaluationID string) (performance.Evaluation, error)
	ReviewEvaluation(ctx context.Context, evaluationID, status string) (performance.Evaluation, error)
	DeleteEvaluation(ctx context.Context, evaluationID string) error
	GenerateReport(ctx context.Context, evaluationID, dir string) (string, error)

	ListGoals(ctx context.Context, params listing.Params, filter performance.GoalFilter) ([]performance.Goal, listing.Meta, error)
	GetGoal(ctx context.Context, goalID string) (performance.Goal, error)
	CreateGoal(ctx context.Context, g performance.Goal) (performance.Goal, error)
	UpdateGoal(ctx context.Context, g performance.Goal) (performance.Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error
}

// Notifier fans a notification out to user accounts.
type Notifier interface {
	Broadcast(ctx context.Context, userIDs []string, ntype, title, body string) int
}

// UserDirectory maps employee ids to their user account ids.
type UserDirectory interface {
	UserIDsByEmployee(ctx context.Context, employeeIDs []string) (map[string]string, error)
}

type PublishRecorder interface {
	RecordPublish(evaluations int)
}

type Handler struct {
	Service     PerformanceService
	Perms       middleware.PermissionStore
	Audit       shared.Auditor
	Notifier    Notifier
	Directory   UserDirectory
	Metrics     PublishRecorder
	Idempotency middleware.IdempotencyBackend
	ReportsDir  string
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)
	write := middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)
	manage := middleware.RequirePermission(auth.PermPerformancePublish, h.Perms)

	r.Route("/performance", func(r chi.Router) {
		r.With(read).Get("/templates", h.handleListTemplates)
		r.With(manage).Post("/templates", h.handleCreateTemplate)
		r.With(read).Get("/templates/{templateID}", h.handleGetTemplate)
		r.With(manage).Put("/templates/{templateID}", h.handleUpdateTemplate)
		r.With(manage).Delete("/templates/{templateID}", h.handleDeleteTemplate)

		r.With(read).Get("/cycles", h.handleListCycles)
		r.With(manage).Post("/cycles", h.handleCreateCycle)
		r.With(read).Get("/cycles/{cycleID}", h.handleGetCycle)
		r.With(manage).Put("/cycles/{cycleID}", h.handleUpdateCycle)
		r.With(manage).Delete("/cycles/{cycleID}", h.handleDeleteCycle)
		r.With(manage).Post("/cycles/{cycleID}/close", h.handleCloseCycle)
		r.With(manage, middleware.Idempotency(h.Idempotency, "cycle.publish")).Post("/cycles/{cycleID}/publish", h.handlePublish)
		r.With(manage, middleware.Idempotency(h.Idempotency, "cycle.republish")).Post("/cycles/{cycleID}/republish", h.handleRepublish)
		r.With(read).Get("/cycles/{cycleID}/evaluations", h.handleListCycleEvaluations)
		r.With(read).Get("/cycles/{cycleID}/summary", h.handleCycleSummary)

		r.With(read).Get("/evaluations", h.handleListEvaluations)
		r.With(manage).Post("/evaluations", h.handleCreateEvaluation)
		r.With(read).Get("/evaluations/{evaluationID}", h.handleGetEvaluation)
		r.With(write).Put("/evaluations/{evaluationID}", h.handleUpdateEvaluation)
		r.With(manage).Delete("/evaluations/{evaluationID}", h.handleDeleteEvaluation)
		r.With(write).Post("/evaluations/{evaluationID}/submit", h.handleSubmitEvaluation)
		r.With(write).Post("/evaluations/{evaluationID}/review", h.handleReviewEvaluation)
		r.With(read).Get("/evaluations/{evaluationID}/report", h.handleReport)

		r.With(read).Get("/goals", h.handleListGoals)
		r.With(write).Post("/goals", h.handleCreateGoal)
		r.With(read).Get("/goals/{goalID}", h.handleGetGoal)
		r.With(write).Put("/goals/{goalID}", h.handleUpdateGoal)
		r.With(write).Delete("/goals/{goalID}", h.handleDeleteGoal)
	})
}

func actor(r *http.Request) string {
	user, _ := middleware.GetUser(r.Context())
	return user.UserID
}

// notifyEmployees resolves employee ids to user accounts and notifies each.
// Employees without an account are skipped.
func (h *Handler) notifyEmployees(ctx context.Context, employeeIDs []string, ntype, title, body string) {
	if h.Notifier == nil || h.Directory == nil || len(employeeIDs) == 0 {
		return
	}
	users, err := h.Directory.UserIDsByEmployee(ctx, employeeIDs)
	if err != nil {
		slog.Warn("notification recipients lookup failed", "err", err, "type", ntype)
		return
	}
	userIDs := make([]string, 0, len(users))
	for _, employeeID := range employeeIDs {
		if userID, ok := users[employeeID]; ok && userID != "" {
			userIDs = append(userIDs, userID)
		}
	}
	h.Notifier.Broadcast(ctx, userIDs, ntype, title, body)
}
