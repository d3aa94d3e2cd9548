package performance

import (
	"context"
	"slices"
	"time"

	"hrportal/internal/platform/listing"
)

// CreateEvaluationInput describes a hand-made evaluation. Inside a cycle only
// CLIENT evaluations can be added, and the dates and categories come from the
// cycle and its template; otherwise dates are required and TemplateID is
// optional.
type CreateEvaluationInput struct {
	CycleID        string
	TemplateID     string
	EmployeeID     string
	EvaluatorID    string
	EvaluationType EvaluationType
	StartDate      *time.Time
	EndDate        *time.Time
	Comments       string
}

func (s *Service) ListEvaluations(ctx context.Context, params listing.Params, filter EvaluationFilter) ([]Evaluation, listing.Meta, error) {
	params = params.Normalize()
	items, total, err := s.store.ListEvaluations(ctx, params, filter)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return items, listing.NewMeta(params, total), nil
}

func (s *Service) ListCycleEvaluations(ctx context.Context, cycleID string, params listing.Params) ([]Evaluation, listing.Meta, error) {
	if _, err := s.store.GetCycle(ctx, cycleID); err != nil {
		return nil, listing.Meta{}, err
	}
	return s.ListEvaluations(ctx, params, EvaluationFilter{CycleID: cycleID})
}

func (s *Service) GetEvaluation(ctx context.Context, evaluationID string) (Evaluation, error) {
	return s.store.GetEvaluation(ctx, evaluationID)
}

func (s *Service) CreateEvaluation(ctx context.Context, input CreateEvaluationInput) (Evaluation, error) {
	if !input.EvaluationType.Valid() {
		return Evaluation{}, ErrInvalidEvaluationType
	}
	if input.CycleID != "" && input.EvaluationType != TypeClient {
		return Evaluation{}, ErrCycleTypeGenerated
	}
	if _, err := s.people.GetEmployee(ctx, input.EmployeeID); err != nil {
		return Evaluation{}, err
	}
	if _, err := s.people.GetEmployee(ctx, input.EvaluatorID); err != nil {
		return Evaluation{}, err
	}

	evaluation := Evaluation{
		CycleID:        input.CycleID,
		EmployeeID:     input.EmployeeID,
		EvaluatorID:    input.EvaluatorID,
		EvaluationType: input.EvaluationType,
		Categories:     []Category{},
		Status:         EvaluationStatusDraft,
		Comments:       input.Comments,
	}
	templateID := input.TemplateID
	if input.CycleID != "" {
		cycle, err := s.store.GetCycle(ctx, input.CycleID)
		if err != nil {
			return Evaluation{}, err
		}
		if cycle.Status == CycleStatusClosed {
			return Evaluation{}, ErrCycleClosedForAdds
		}
		evaluation.StartDate = cycle.StartDate
		evaluation.EndDate = cycle.EndDate
		templateID = cycle.TemplateID
	} else {
		if input.StartDate == nil || input.EndDate == nil {
			return Evaluation{}, ErrEvaluationDatesNeeded
		}
		if input.StartDate.After(*input.EndDate) {
			return Evaluation{}, ErrInvalidDateRange
		}
		evaluation.StartDate = *input.StartDate
		evaluation.EndDate = *input.EndDate
	}
	if templateID != "" {
		template, err := s.store.GetTemplate(ctx, templateID)
		if err != nil {
			return Evaluation{}, err
		}
		evaluation.Categories = CloneCategories(template.Categories)
	}
	evaluation.Period = Period(evaluation.StartDate, evaluation.EndDate)

	exists, err := s.store.EvaluationExists(ctx, evaluation.EmployeeID, evaluation.EvaluatorID, evaluation.EvaluationType, evaluation.Period)
	if err != nil {
		return Evaluation{}, err
	}
	if exists {
		return Evaluation{}, ErrEvaluationExists
	}
	return s.store.CreateEvaluation(ctx, evaluation)
}

// UpdateEvaluation records the evaluator's answers on a draft evaluation.
// Only ratings and comments change; the copied structure is kept.
func (s *Service) UpdateEvaluation(ctx context.Context, evaluationID string, categories []Category, comments string) (Evaluation, error) {
	evaluation, err := s.store.GetEvaluation(ctx, evaluationID)
	if err != nil {
		return Evaluation{}, err
	}
	if evaluation.Status != EvaluationStatusDraft {
		return Evaluation{}, ErrEvaluationNotDraft
	}
	if categories != nil {
		answered, err := applyAnswers(evaluation.Categories, categories)
		if err != nil {
			return Evaluation{}, err
		}
		evaluation.Categories = answered
	}
	evaluation.Comments = comments
	return s.store.UpdateEvaluation(ctx, evaluation)
}

func (s *Service) SubmitEvaluation(ctx context.Context, evaluationID string) (Evaluation, error) {
	evaluation, err := s.store.GetEvaluation(ctx, evaluationID)
	if err != nil {
		return Evaluation{}, err
	}
	if evaluation.Status != EvaluationStatusDraft {
		return Evaluation{}, ErrEvaluationNotDraft
	}
	at := s.now().UTC()
	evaluation.Status = EvaluationStatusSubmitted
	evaluation.SubmittedAt = &at
	evaluation.OverallRating = OverallRating(evaluation.Categories)
	return s.store.UpdateEvaluation(ctx, evaluation)
}

func (s *Service) ReviewEvaluation(ctx context.Context, evaluationID, status string) (Evaluation, error) {
	evaluation, err := s.store.GetEvaluation(ctx, evaluationID)
	if err != nil {
		return Evaluation{}, err
	}
	if !slices.Contains(reviewTransitions[evaluation.Status], status) {
		return Evaluation{}, ErrInvalidTransition
	}
	at := s.now().UTC()
	evaluation.Status = status
	evaluation.ReviewedAt = &at
	return s.store.UpdateEvaluation(ctx, evaluation)
}

func (s *Service) DeleteEvaluation(ctx context.Context, evaluationID string) error {
	return s.store.DeleteEvaluation(ctx, evaluationID)
}
