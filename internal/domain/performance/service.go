package performance

import (
	"context"
	"slices"
	"time"

	"hrportal/internal/platform/listing"
)

type Service struct {
	store    StoreAPI
	people   People
	Expander *Expander
	now      func() time.Time
}

func NewService(store StoreAPI, people People) *Service {
	return &Service{
		store:    store,
		people:   people,
		Expander: NewExpander(store, people),
		now:      time.Now,
	}
}

func (s *Service) Publish(ctx context.Context, input PublishInput) (PublishResult, error) {
	return s.Expander.Publish(ctx, input)
}

func (s *Service) Republish(ctx context.Context, input PublishInput) (PublishResult, error) {
	return s.Expander.Republish(ctx, input)
}

func (s *Service) ListTemplates(ctx context.Context, params listing.Params) ([]Template, listing.Meta, error) {
	params = params.Normalize()
	items, total, err := s.store.ListTemplates(ctx, params)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return items, listing.NewMeta(params, total), nil
}

func (s *Service) GetTemplate(ctx context.Context, templateID string) (Template, error) {
	return s.store.GetTemplate(ctx, templateID)
}

func (s *Service) CreateTemplate(ctx context.Context, t Template) (Template, error) {
	categories, err := ValidateCategories(t.Categories)
	if err != nil {
		return Template{}, err
	}
	t.Categories = categories
	t.Version = 1
	return s.store.CreateTemplate(ctx, t)
}

// UpdateTemplate edits the template in place. Evaluations generated earlier
// hold their own copy of the categories and are unaffected.
func (s *Service) UpdateTemplate(ctx context.Context, t Template) (Template, error) {
	if _, err := s.store.GetTemplate(ctx, t.ID); err != nil {
		return Template{}, err
	}
	categories, err := ValidateCategories(t.Categories)
	if err != nil {
		return Template{}, err
	}
	t.Categories = categories
	return s.store.UpdateTemplate(ctx, t)
}

func (s *Service) DeleteTemplate(ctx context.Context, templateID string) error {
	if _, err := s.store.GetTemplate(ctx, templateID); err != nil {
		return err
	}
	inUse, err := s.store.TemplateInUse(ctx, templateID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrTemplateInUse
	}
	return s.store.DeleteTemplate(ctx, templateID)
}

func (s *Service) ListCycles(ctx context.Context, params listing.Params, filter CycleFilter) ([]Cycle, listing.Meta, error) {
	params = params.Normalize()
	items, total, err := s.store.ListCycles(ctx, params, filter)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return items, listing.NewMeta(params, total), nil
}

func (s *Service) GetCycle(ctx context.Context, cycleID string) (Cycle, error) {
	return s.store.GetCycle(ctx, cycleID)
}

func (s *Service) CreateCycle(ctx context.Context, c Cycle) (Cycle, error) {
	if err := s.checkCycle(ctx, &c); err != nil {
		return Cycle{}, err
	}
	c.Status = CycleStatusDraft
	c.PublishedAt = nil
	c.PublishedByID = ""
	return s.store.CreateCycle(ctx, c)
}

func (s *Service) UpdateCycle(ctx context.Context, c Cycle) (Cycle, error) {
	existing, err := s.store.GetCycle(ctx, c.ID)
	if err != nil {
		return Cycle{}, err
	}
	if existing.Status != CycleStatusDraft {
		return Cycle{}, ErrCycleNotDraft
	}
	if err := s.checkCycle(ctx, &c); err != nil {
		return Cycle{}, err
	}
	return s.store.UpdateCycle(ctx, c)
}

func (s *Service) CloseCycle(ctx context.Context, cycleID string) (Cycle, error) {
	existing, err := s.store.GetCycle(ctx, cycleID)
	if err != nil {
		return Cycle{}, err
	}
	if existing.Status != CycleStatusPublished {
		return Cycle{}, ErrCycleNotPublished
	}
	moved, err := s.store.TransitionStatus(ctx, cycleID, CycleStatusPublished, CycleStatusClosed)
	if err != nil {
		return Cycle{}, err
	}
	if !moved {
		return Cycle{}, ErrCycleNotPublished
	}
	return s.store.GetCycle(ctx, cycleID)
}

// DeleteCycle removes the cycle together with every evaluation it owns.
func (s *Service) DeleteCycle(ctx context.Context, cycleID string) error {
	if _, err := s.store.GetCycle(ctx, cycleID); err != nil {
		return err
	}
	if _, err := s.store.DeleteByCycle(ctx, cycleID); err != nil {
		return err
	}
	return s.store.DeleteCycle(ctx, cycleID)
}

func (s *Service) checkCycle(ctx context.Context, c *Cycle) error {
	if c.StartDate.After(c.EndDate) {
		return ErrInvalidDateRange
	}
	if c.SubmissionDeadline != nil && c.SubmissionDeadline.Before(c.StartDate) {
		return ErrInvalidDeadline
	}
	types, err := normalizeTypes(c.EvaluationTypes)
	if err != nil {
		return err
	}
	c.EvaluationTypes = types
	if _, err := s.store.GetTemplate(ctx, c.TemplateID); err != nil {
		return err
	}
	return nil
}

// normalizeTypes validates the configured types and drops repeats, keeping
// the order the caller gave.
func normalizeTypes(types []EvaluationType) ([]EvaluationType, error) {
	out := make([]EvaluationType, 0, len(types))
	for _, t := range types {
		if !t.Valid() {
			return nil, ErrInvalidEvaluationType
		}
		if slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, ErrNoEvaluationTypes
	}
	return out, nil
}

func (s *Service) CycleSummary(ctx context.Context, cycleID string) (CycleSummary, error) {
	if _, err := s.store.GetCycle(ctx, cycleID); err != nil {
		return CycleSummary{}, err
	}
	evaluations, err := s.store.ListEvaluationsByCycle(ctx, cycleID)
	if err != nil {
		return CycleSummary{}, err
	}
	return buildCycleSummary(cycleID, evaluations), nil
}
