package performance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hrportal/internal/domain/org"
)

type PublishInput struct {
	CycleID           string
	TargetEmployeeIDs []string
	PublishedBy       string
}

type PublishResult struct {
	Cycle              Cycle        `json:"cycle"`
	EvaluationsCreated int          `json:"evaluationsCreated"`
	Evaluations        []Evaluation `json:"-"`
}

// Expander turns a draft cycle into concrete evaluation records, one per
// (employee, evaluator, type) pair resolved through the org graph.
type Expander struct {
	cycles      CycleStore
	templates   TemplateStore
	evaluations EvaluationStore
	people      People
	graph       *org.Graph
	now         func() time.Time
}

func NewExpander(store StoreAPI, people People) *Expander {
	return &Expander{
		cycles:      store,
		templates:   store,
		evaluations: store,
		people:      people,
		graph:       org.NewGraph(people),
		now:         time.Now,
	}
}

// Publish expands a draft cycle. The draft to published transition is
// claimed atomically before anything is generated, so of two concurrent
// callers exactly one generates and the other gets ErrCycleAlreadyPublished.
// A failure after the claim leaves the cycle published with the records
// written so far; Republish is the recovery path.
func (e *Expander) Publish(ctx context.Context, input PublishInput) (PublishResult, error) {
	cycle, err := e.cycles.GetCycle(ctx, input.CycleID)
	if err != nil {
		return PublishResult{}, err
	}
	if err := publishable(cycle.Status); err != nil {
		return PublishResult{}, err
	}
	template, err := e.templates.GetTemplate(ctx, cycle.TemplateID)
	if err != nil {
		return PublishResult{}, err
	}
	targets, err := e.resolveTargets(ctx, input.TargetEmployeeIDs)
	if err != nil {
		return PublishResult{}, err
	}

	at := e.now().UTC()
	claimed, err := e.cycles.ClaimForPublish(ctx, cycle.ID, input.PublishedBy, at)
	if err != nil {
		return PublishResult{}, err
	}
	if !claimed {
		return PublishResult{}, e.lostClaim(ctx, cycle.ID)
	}
	cycle.Status = CycleStatusPublished
	cycle.PublishedAt = &at
	cycle.PublishedByID = input.PublishedBy

	result := PublishResult{Cycle: cycle, Evaluations: []Evaluation{}}
	period := Period(cycle.StartDate, cycle.EndDate)
	for _, employee := range targets {
		for _, evaluationType := range cycle.EvaluationTypes {
			evaluators, err := e.evaluatorsFor(ctx, employee, evaluationType)
			if err != nil {
				return result, fmt.Errorf("resolve %s evaluators for %s: %w", evaluationType, employee.ID, err)
			}
			for _, evaluatorID := range evaluators {
				created, err := e.evaluations.CreateEvaluation(ctx, Evaluation{
					CycleID:        cycle.ID,
					EmployeeID:     employee.ID,
					EvaluatorID:    evaluatorID,
					EvaluationType: evaluationType,
					Period:         period,
					StartDate:      cycle.StartDate,
					EndDate:        cycle.EndDate,
					Categories:     CloneCategories(template.Categories),
					Status:         EvaluationStatusDraft,
				})
				if err != nil {
					return result, fmt.Errorf("create %s evaluation for %s: %w", evaluationType, employee.ID, err)
				}
				result.Evaluations = append(result.Evaluations, created)
				result.EvaluationsCreated++
			}
		}
	}

	if fresh, err := e.cycles.GetCycle(ctx, cycle.ID); err == nil {
		result.Cycle = fresh
	} else {
		slog.Warn("reload published cycle failed", "cycleId", cycle.ID, "err", err)
	}
	return result, nil
}

// Republish discards every evaluation of the cycle, whatever its status,
// returns the cycle to draft and publishes it again.
func (e *Expander) Republish(ctx context.Context, input PublishInput) (PublishResult, error) {
	cycle, err := e.cycles.GetCycle(ctx, input.CycleID)
	if err != nil {
		return PublishResult{}, err
	}
	if _, err := e.templates.GetTemplate(ctx, cycle.TemplateID); err != nil {
		return PublishResult{}, err
	}
	removed, err := e.evaluations.DeleteByCycle(ctx, cycle.ID)
	if err != nil {
		return PublishResult{}, err
	}
	if err := e.cycles.ResetToDraft(ctx, cycle.ID); err != nil {
		return PublishResult{}, err
	}
	slog.Info("cycle reset for republish", "cycleId", cycle.ID, "evaluationsRemoved", removed)
	return e.Publish(ctx, input)
}

func publishable(status string) error {
	switch status {
	case CycleStatusPublished:
		return ErrCycleAlreadyPublished
	case CycleStatusClosed:
		return ErrCycleClosed
	}
	return nil
}

// lostClaim explains why the conditional update matched no row.
func (e *Expander) lostClaim(ctx context.Context, cycleID string) error {
	current, err := e.cycles.GetCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	if err := publishable(current.Status); err != nil {
		return err
	}
	return ErrCycleAlreadyPublished
}

func (e *Expander) resolveTargets(ctx context.Context, employeeIDs []string) ([]org.Employee, error) {
	if len(employeeIDs) == 0 {
		return e.graph.EmployeesUnderHierarchy(ctx, "")
	}
	seen := make(map[string]struct{}, len(employeeIDs))
	unique := make([]string, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return e.people.ListActiveByIDs(ctx, unique)
}

// evaluatorsFor returns the evaluator ids for one employee and type. CLIENT
// evaluations are created by hand and resolve to nobody here.
func (e *Expander) evaluatorsFor(ctx context.Context, employee org.Employee, evaluationType EvaluationType) ([]string, error) {
	switch evaluationType {
	case TypeSelf:
		return []string{employee.ID}, nil
	case TypeManager:
		if !employee.HasManager() {
			return nil, nil
		}
		return []string{employee.ManagerID}, nil
	case TypeSubordinate:
		reports, err := e.graph.SubordinatesOf(ctx, employee.ID)
		return employeeIDs(reports), err
	case TypePeer:
		peers, err := e.graph.PeersOf(ctx, employee.ID)
		return employeeIDs(peers), err
	}
	return nil, nil
}

func employeeIDs(emps []org.Employee) []string {
	out := make([]string, 0, len(emps))
	for _, emp := range emps {
		out = append(out, emp.ID)
	}
	return out
}

// DistinctEvaluators lists each evaluator once, in first-seen order.
func DistinctEvaluators(evaluations []Evaluation) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, evaluation := range evaluations {
		if _, ok := seen[evaluation.EvaluatorID]; ok {
			continue
		}
		seen[evaluation.EvaluatorID] = struct{}{}
		out = append(out, evaluation.EvaluatorID)
	}
	return out
}

