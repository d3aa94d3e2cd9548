package performance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/listing"
	"hrportal/internal/platform/pgerr"
)

const evaluationColumns = `
    e.id::text, COALESCE(e.cycle_id::text, ''), e.employee_id::text, e.evaluator_id::text,
    e.evaluation_type, e.period, e.start_date, e.end_date, e.categories, e.status,
    e.overall_rating, e.comments, e.submitted_at, e.reviewed_at, e.created_at, e.updated_at`

var evaluationSortColumns = map[string]string{
	"id":             "e.id",
	"createdAt":      "e.created_at",
	"updatedAt":      "e.updated_at",
	"status":         "e.status",
	"evaluationType": "e.evaluation_type",
	"period":         "e.period",
	"overallRating":  "e.overall_rating",
}

var evaluationSearchFields = []string{"emp.first_name", "emp.last_name", "e.period"}

func scanEvaluation(row pgx.Row) (Evaluation, error) {
	var e Evaluation
	var evaluationType string
	var raw []byte
	if err := row.Scan(
		&e.ID, &e.CycleID, &e.EmployeeID, &e.EvaluatorID,
		&evaluationType, &e.Period, &e.StartDate, &e.EndDate, &raw, &e.Status,
		&e.OverallRating, &e.Comments, &e.SubmittedAt, &e.ReviewedAt, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return Evaluation{}, err
	}
	e.EvaluationType = EvaluationType(evaluationType)
	categories, err := decodeCategories(raw)
	if err != nil {
		return Evaluation{}, err
	}
	e.Categories = categories
	return e, nil
}

func collectEvaluations(rows pgx.Rows) ([]Evaluation, error) {
	defer rows.Close()
	out := []Evaluation{}
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetEvaluation(ctx context.Context, evaluationID string) (Evaluation, error) {
	e, err := scanEvaluation(s.DB.QueryRow(ctx, "SELECT "+evaluationColumns+" FROM performance_evaluations e WHERE e.id = $1", evaluationID))
	if pgerr.IsNoRows(err) {
		return Evaluation{}, ErrEvaluationNotFound
	}
	return e, err
}

func (s *Store) ListEvaluations(ctx context.Context, params listing.Params, filter EvaluationFilter) ([]Evaluation, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	add := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}
	if filter.CycleID != "" {
		add(" AND e.cycle_id = $%d", filter.CycleID)
	}
	if filter.EmployeeID != "" {
		add(" AND e.employee_id = $%d", filter.EmployeeID)
	}
	if filter.EvaluatorID != "" {
		add(" AND e.evaluator_id = $%d", filter.EvaluatorID)
	}
	if filter.EvaluationType != "" {
		add(" AND e.evaluation_type = $%d", string(filter.EvaluationType))
	}
	if filter.Status != "" {
		add(" AND e.status = $%d", filter.Status)
	}
	if params.Search != "" {
		args = append(args, params.Search)
		where += params.SearchClause(evaluationSearchFields, len(args))
	}
	from := " FROM performance_evaluations e JOIN employees emp ON emp.id = e.employee_id"

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1)"+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + evaluationColumns + from + where + params.OrderBy(evaluationSortColumns) + params.LimitClause(len(args)+1)
	args = append(args, params.Normalize().Limit, params.Offset())
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := collectEvaluations(rows)
	return out, total, err
}

func (s *Store) ListEvaluationsByCycle(ctx context.Context, cycleID string) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+evaluationColumns+" FROM performance_evaluations e WHERE e.cycle_id = $1 ORDER BY e.created_at", cycleID)
	if err != nil {
		return nil, err
	}
	return collectEvaluations(rows)
}

func (s *Store) CreateEvaluation(ctx context.Context, ev Evaluation) (Evaluation, error) {
	raw, err := encodeCategories(ev.Categories)
	if err != nil {
		return Evaluation{}, err
	}
	return scanEvaluation(s.DB.QueryRow(ctx, `
    INSERT INTO performance_evaluations AS e
      (cycle_id, employee_id, evaluator_id, evaluation_type, period, start_date, end_date, categories, status, comments)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING `+evaluationColumns,
		pgerr.NullIfEmpty(ev.CycleID), ev.EmployeeID, ev.EvaluatorID, string(ev.EvaluationType), ev.Period,
		ev.StartDate, ev.EndDate, raw, ev.Status, ev.Comments))
}

func (s *Store) UpdateEvaluation(ctx context.Context, ev Evaluation) (Evaluation, error) {
	raw, err := encodeCategories(ev.Categories)
	if err != nil {
		return Evaluation{}, err
	}
	updated, err := scanEvaluation(s.DB.QueryRow(ctx, `
    UPDATE performance_evaluations AS e
    SET categories = $2, status = $3, overall_rating = $4, comments = $5,
        submitted_at = $6, reviewed_at = $7, updated_at = now()
    WHERE e.id = $1
    RETURNING `+evaluationColumns,
		ev.ID, raw, ev.Status, ev.OverallRating, ev.Comments, ev.SubmittedAt, ev.ReviewedAt))
	if pgerr.IsNoRows(err) {
		return Evaluation{}, ErrEvaluationNotFound
	}
	return updated, err
}

func (s *Store) DeleteEvaluation(ctx context.Context, evaluationID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM performance_evaluations WHERE id = $1", evaluationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEvaluationNotFound
	}
	return nil
}

func (s *Store) DeleteByCycle(ctx context.Context, cycleID string) (int, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM performance_evaluations WHERE cycle_id = $1", cycleID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) EvaluationExists(ctx context.Context, employeeID, evaluatorID string, evaluationType EvaluationType, period string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM performance_evaluations
    WHERE employee_id = $1 AND evaluator_id = $2 AND evaluation_type = $3 AND period = $4
  `, employeeID, evaluatorID, string(evaluationType), period).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
