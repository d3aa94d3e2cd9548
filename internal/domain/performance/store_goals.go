package performance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/listing"
	"hrportal/internal/platform/pgerr"
)

const goalColumns = `
    id::text, employee_id::text, COALESCE(cycle_id::text, ''), title, description,
    weight, progress, status, due_date, created_at, updated_at`

var goalSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"dueDate":   "due_date",
	"progress":  "progress",
	"status":    "status",
}

var goalSearchFields = []string{"title", "description"}

func scanGoal(row pgx.Row) (Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.EmployeeID, &g.CycleID, &g.Title, &g.Description, &g.Weight, &g.Progress, &g.Status, &g.DueDate, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (s *Store) GetGoal(ctx context.Context, goalID string) (Goal, error) {
	g, err := scanGoal(s.DB.QueryRow(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = $1", goalID))
	if pgerr.IsNoRows(err) {
		return Goal{}, ErrGoalNotFound
	}
	return g, err
}

func (s *Store) ListGoals(ctx context.Context, params listing.Params, filter GoalFilter) ([]Goal, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.CycleID != "" {
		args = append(args, filter.CycleID)
		where += fmt.Sprintf(" AND cycle_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if params.Search != "" {
		args = append(args, params.Search)
		where += params.SearchClause(goalSearchFields, len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM goals"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + goalColumns + " FROM goals" + where + params.OrderBy(goalSortColumns) + params.LimitClause(len(args)+1)
	args = append(args, params.Normalize().Limit, params.Offset())
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, rows.Err()
}

func (s *Store) CreateGoal(ctx context.Context, g Goal) (Goal, error) {
	return scanGoal(s.DB.QueryRow(ctx, `
    INSERT INTO goals (employee_id, cycle_id, title, description, weight, progress, status, due_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING `+goalColumns,
		g.EmployeeID, pgerr.NullIfEmpty(g.CycleID), g.Title, g.Description, g.Weight, g.Progress, g.Status, g.DueDate))
}

func (s *Store) UpdateGoal(ctx context.Context, g Goal) (Goal, error) {
	updated, err := scanGoal(s.DB.QueryRow(ctx, `
    UPDATE goals
    SET cycle_id = $2, title = $3, description = $4, weight = $5, progress = $6,
        status = $7, due_date = $8, updated_at = now()
    WHERE id = $1
    RETURNING `+goalColumns,
		g.ID, pgerr.NullIfEmpty(g.CycleID), g.Title, g.Description, g.Weight, g.Progress, g.Status, g.DueDate))
	if pgerr.IsNoRows(err) {
		return Goal{}, ErrGoalNotFound
	}
	return updated, err
}

func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM goals WHERE id = $1", goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

var _ StoreAPI = (*Store)(nil)
