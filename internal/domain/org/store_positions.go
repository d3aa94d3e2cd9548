package org

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/listing"
	"hrportal/internal/platform/pgerr"
)

const positionColumns = `id::text, title, COALESCE(department_id::text, ''), level, is_active, created_at, updated_at`

var positionSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"level":     "level",
}

func scanPosition(row pgx.Row) (Position, error) {
	var pos Position
	err := row.Scan(&pos.ID, &pos.Title, &pos.DepartmentID, &pos.Level, &pos.IsActive, &pos.CreatedAt, &pos.UpdatedAt)
	return pos, err
}

func (s *Store) GetPosition(ctx context.Context, positionID string) (Position, error) {
	pos, err := scanPosition(s.DB.QueryRow(ctx, "SELECT "+positionColumns+" FROM positions WHERE id = $1", positionID))
	if pgerr.IsNoRows(err) {
		return Position{}, ErrPositionNotFound
	}
	return pos, err
}

func (s *Store) ListPositions(ctx context.Context, params listing.Params, departmentID string) ([]Position, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if departmentID != "" {
		args = append(args, departmentID)
		where += fmt.Sprintf(" AND department_id = $%d", len(args))
	}
	if params.Search != "" {
		args = append(args, params.Search)
		where += params.SearchClause([]string{"title"}, len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM positions"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + positionColumns + " FROM positions" + where + params.OrderBy(positionSortColumns) + params.LimitClause(len(args)+1)
	args = append(args, params.Normalize().Limit, params.Offset())
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Position{}
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, pos)
	}
	return out, total, rows.Err()
}

func (s *Store) CreatePosition(ctx context.Context, pos Position) (Position, error) {
	return scanPosition(s.DB.QueryRow(ctx, `
    INSERT INTO positions (title, department_id, level, is_active)
    VALUES ($1,$2,$3,$4)
    RETURNING `+positionColumns,
		pos.Title, pgerr.NullIfEmpty(pos.DepartmentID), pos.Level, pos.IsActive))
}

func (s *Store) UpdatePosition(ctx context.Context, pos Position) (Position, error) {
	updated, err := scanPosition(s.DB.QueryRow(ctx, `
    UPDATE positions
    SET title = $2, department_id = $3, level = $4, is_active = $5, updated_at = now()
    WHERE id = $1
    RETURNING `+positionColumns,
		pos.ID, pos.Title, pgerr.NullIfEmpty(pos.DepartmentID), pos.Level, pos.IsActive))
	if pgerr.IsNoRows(err) {
		return Position{}, ErrPositionNotFound
	}
	return updated, err
}

func (s *Store) DeletePosition(ctx context.Context, positionID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM positions WHERE id = $1", positionID)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrPositionInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPositionNotFound
	}
	return nil
}

func (s *Store) PositionInUse(ctx context.Context, positionID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT (SELECT COUNT(1) FROM employees WHERE position_id = $1)
         + (SELECT COUNT(1) FROM assignments WHERE position_id = $1)
  `, positionID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
