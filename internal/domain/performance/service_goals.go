package performance

import (
	"context"

	"hrportal/internal/platform/listing"
)

func (s *Service) ListGoals(ctx context.Context, params listing.Params, filter GoalFilter) ([]Goal, listing.Meta, error) {
	params = params.Normalize()
	items, total, err := s.store.ListGoals(ctx, params, filter)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return items, listing.NewMeta(params, total), nil
}

func (s *Service) GetGoal(ctx context.Context, goalID string) (Goal, error) {
	return s.store.GetGoal(ctx, goalID)
}

func (s *Service) CreateGoal(ctx context.Context, g Goal) (Goal, error) {
	if g.Status == "" {
		g.Status = GoalStatusActive
	}
	if err := s.checkGoal(ctx, g); err != nil {
		return Goal{}, err
	}
	return s.store.CreateGoal(ctx, g)
}

func (s *Service) UpdateGoal(ctx context.Context, g Goal) (Goal, error) {
	existing, err := s.store.GetGoal(ctx, g.ID)
	if err != nil {
		return Goal{}, err
	}
	g.EmployeeID = existing.EmployeeID
	if g.Status == "" {
		g.Status = existing.Status
	}
	if err := s.checkGoal(ctx, g); err != nil {
		return Goal{}, err
	}
	return s.store.UpdateGoal(ctx, g)
}

func (s *Service) DeleteGoal(ctx context.Context, goalID string) error {
	return s.store.DeleteGoal(ctx, goalID)
}

func (s *Service) checkGoal(ctx context.Context, g Goal) error {
	if !validGoalStatus(g.Status) {
		return ErrInvalidGoalStatus
	}
	if g.Progress < 0 || g.Progress > 100 {
		return ErrInvalidProgress
	}
	if g.Weight < 0 {
		return ErrInvalidWeight
	}
	if _, err := s.people.GetEmployee(ctx, g.EmployeeID); err != nil {
		return err
	}
	if g.CycleID != "" {
		if _, err := s.store.GetCycle(ctx, g.CycleID); err != nil {
			return err
		}
	}
	return nil
}
