package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/listing"
	"hrportal/internal/platform/pgerr"
)

const cycleSelect = `
    SELECT c.id::text, c.title, c.description, c.template_id::text,
           COALESCE(t.title, ''), COALESCE(t.version, 0),
           c.start_date, c.end_date, c.submission_deadline, c.evaluation_types, c.status,
           c.published_at, COALESCE(c.published_by::text, ''), COALESCE(u.email, ''),
           c.created_at, c.updated_at
    FROM evaluation_cycles c
    LEFT JOIN evaluation_templates t ON t.id = c.template_id
    LEFT JOIN users u ON u.id = c.published_by`

var cycleSortColumns = map[string]string{
	"id":        "c.id",
	"createdAt": "c.created_at",
	"updatedAt": "c.updated_at",
	"title":     "c.title",
	"startDate": "c.start_date",
	"endDate":   "c.end_date",
	"status":    "c.status",
}

var cycleSearchFields = []string{"c.title", "c.description"}

func scanCycle(row pgx.Row) (Cycle, error) {
	var c Cycle
	var templateTitle, publisherEmail string
	var templateVersion int
	var types []string
	if err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.TemplateID,
		&templateTitle, &templateVersion,
		&c.StartDate, &c.EndDate, &c.SubmissionDeadline, &types, &c.Status,
		&c.PublishedAt, &c.PublishedByID, &publisherEmail,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return Cycle{}, err
	}
	c.EvaluationTypes = make([]EvaluationType, 0, len(types))
	for _, t := range types {
		c.EvaluationTypes = append(c.EvaluationTypes, EvaluationType(t))
	}
	if templateTitle != "" {
		c.Template = &TemplateSummary{ID: c.TemplateID, Title: templateTitle, Version: templateVersion}
	}
	if c.PublishedByID != "" {
		c.PublishedBy = &UserSummary{ID: c.PublishedByID, Email: publisherEmail}
	}
	return c, nil
}

func typeStrings(types []EvaluationType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func (s *Store) GetCycle(ctx context.Context, cycleID string) (Cycle, error) {
	c, err := scanCycle(s.DB.QueryRow(ctx, cycleSelect+" WHERE c.id = $1", cycleID))
	if pgerr.IsNoRows(err) {
		return Cycle{}, ErrCycleNotFound
	}
	return c, err
}

func (s *Store) ListCycles(ctx context.Context, params listing.Params, filter CycleFilter) ([]Cycle, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	if params.Search != "" {
		args = append(args, params.Search)
		where += params.SearchClause(cycleSearchFields, len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM evaluation_cycles c"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := cycleSelect + where + params.OrderBy(cycleSortColumns) + params.LimitClause(len(args)+1)
	args = append(args, params.Normalize().Limit, params.Offset())
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Cycle{}
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (s *Store) CreateCycle(ctx context.Context, c Cycle) (Cycle, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluation_cycles (title, description, template_id, start_date, end_date, submission_deadline, evaluation_types, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id::text
  `, c.Title, c.Description, c.TemplateID, c.StartDate, c.EndDate, c.SubmissionDeadline, typeStrings(c.EvaluationTypes), c.Status).Scan(&id); err != nil {
		return Cycle{}, cycleWriteError(err)
	}
	return s.GetCycle(ctx, id)
}

func cycleWriteError(err error) error {
	switch {
	case pgerr.IsForeignKeyViolation(err):
		return ErrTemplateNotFound
	case pgerr.IsCheckViolation(err):
		return ErrInvalidDateRange
	}
	return err
}

func (s *Store) UpdateCycle(ctx context.Context, c Cycle) (Cycle, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluation_cycles
    SET title = $2, description = $3, template_id = $4, start_date = $5, end_date = $6,
        submission_deadline = $7, evaluation_types = $8, updated_at = now()
    WHERE id = $1 AND status = $9
  `, c.ID, c.Title, c.Description, c.TemplateID, c.StartDate, c.EndDate, c.SubmissionDeadline, typeStrings(c.EvaluationTypes), CycleStatusDraft)
	if err != nil {
		return Cycle{}, cycleWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetCycle(ctx, c.ID); err != nil {
			return Cycle{}, err
		}
		return Cycle{}, ErrCycleNotDraft
	}
	return s.GetCycle(ctx, c.ID)
}

func (s *Store) DeleteCycle(ctx context.Context, cycleID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM evaluation_cycles WHERE id = $1", cycleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) ClaimForPublish(ctx context.Context, cycleID, publishedBy string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluation_cycles
    SET status = $2, published_at = $3, published_by = $4, updated_at = now()
    WHERE id = $1 AND status = $5
  `, cycleID, CycleStatusPublished, at, pgerr.NullIfEmpty(publishedBy), CycleStatusDraft)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) ResetToDraft(ctx context.Context, cycleID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluation_cycles
    SET status = $2, published_at = NULL, published_by = NULL, updated_at = now()
    WHERE id = $1
  `, cycleID, CycleStatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) TransitionStatus(ctx context.Context, cycleID, from, to string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluation_cycles
    SET status = $3, updated_at = now()
    WHERE id = $1 AND status = $2
  `, cycleID, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
