package performance

import (
	"context"
	"time"

	"hrportal/internal/domain/org"
	"hrportal/internal/platform/listing"
)

type TemplateStore interface {
	GetTemplate(ctx context.Context, templateID string) (Template, error)
	ListTemplates(ctx context.Context, params listing.Params) ([]Template, int, error)
	CreateTemplate(ctx context.Context, t Template) (Template, error)
	// UpdateTemplate replaces the template content and bumps its version.
	UpdateTemplate(ctx context.Context, t Template) (Template, error)
	DeleteTemplate(ctx context.Context, templateID string) error
	TemplateInUse(ctx context.Context, templateID string) (bool, error)
}

type CycleStore interface {
	GetCycle(ctx context.Context, cycleID string) (Cycle, error)
	ListCycles(ctx context.Context, params listing.Params, filter CycleFilter) ([]Cycle, int, error)
	CreateCycle(ctx context.Context, c Cycle) (Cycle, error)
	UpdateCycle(ctx context.Context, c Cycle) (Cycle, error)
	DeleteCycle(ctx context.Context, cycleID string) error
	// ClaimForPublish moves a draft cycle to published in one conditional
	// write and reports whether this caller won the transition.
	ClaimForPublish(ctx context.Context, cycleID, publishedBy string, at time.Time) (bool, error)
	ResetToDraft(ctx context.Context, cycleID string) error
	TransitionStatus(ctx context.Context, cycleID, from, to string) (bool, error)
}

type EvaluationStore interface {
	GetEvaluation(ctx context.Context, evaluationID string) (Evaluation, error)
	ListEvaluations(ctx context.Context, params listing.Params, filter EvaluationFilter) ([]Evaluation, int, error)
	ListEvaluationsByCycle(ctx context.Context, cycleID string) ([]Evaluation, error)
	CreateEvaluation(ctx context.Context, e Evaluation) (Evaluation, error)
	UpdateEvaluation(ctx context.Context, e Evaluation) (Evaluation, error)
	DeleteEvaluation(ctx context.Context, evaluationID string) error
	DeleteByCycle(ctx context.Context, cycleID string) (int, error)
	EvaluationExists(ctx context.Context, employeeID, evaluatorID string, evaluationType EvaluationType, period string) (bool, error)
}

type GoalStore interface {
	GetGoal(ctx context.Context, goalID string) (Goal, error)
	ListGoals(ctx context.Context, params listing.Params, filter GoalFilter) ([]Goal, int, error)
	CreateGoal(ctx context.Context, g Goal) (Goal, error)
	UpdateGoal(ctx context.Context, g Goal) (Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error
}

type StoreAPI interface {
	TemplateStore
	CycleStore
	EvaluationStore
	GoalStore
}

// People is the slice of the employee directory performance reads.
type People interface {
	org.Directory
	ListActiveByIDs(ctx context.Context, employeeIDs []string) ([]org.Employee, error)
}
