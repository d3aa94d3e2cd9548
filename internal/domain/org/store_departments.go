package org

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/listing"
	"hrportal/internal/platform/pgerr"
)

const departmentColumns = `id::text, name, COALESCE(parent_id::text, ''), COALESCE(head_employee_id::text, ''), created_at, updated_at`

var departmentSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
}

func scanDepartment(row pgx.Row) (Department, error) {
	var dep Department
	err := row.Scan(&dep.ID, &dep.Name, &dep.ParentID, &dep.HeadEmployeeID, &dep.CreatedAt, &dep.UpdatedAt)
	return dep, err
}

func (s *Store) GetDepartment(ctx context.Context, departmentID string) (Department, error) {
	dep, err := scanDepartment(s.DB.QueryRow(ctx, "SELECT "+departmentColumns+" FROM departments WHERE id = $1", departmentID))
	if pgerr.IsNoRows(err) {
		return Department{}, ErrDepartmentNotFound
	}
	return dep, err
}

func (s *Store) ListDepartments(ctx context.Context, params listing.Params) ([]Department, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if params.Search != "" {
		args = append(args, params.Search)
		where += params.SearchClause([]string{"name"}, len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM departments"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + departmentColumns + " FROM departments" + where + params.OrderBy(departmentSortColumns) + params.LimitClause(len(args)+1)
	args = append(args, params.Normalize().Limit, params.Offset())
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Department{}
	for rows.Next() {
		dep, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, dep)
	}
	return out, total, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, dep Department) (Department, error) {
	return scanDepartment(s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, parent_id, head_employee_id)
    VALUES ($1,$2,$3)
    RETURNING `+departmentColumns,
		dep.Name, pgerr.NullIfEmpty(dep.ParentID), pgerr.NullIfEmpty(dep.HeadEmployeeID)))
}

func (s *Store) UpdateDepartment(ctx context.Context, dep Department) (Department, error) {
	updated, err := scanDepartment(s.DB.QueryRow(ctx, `
    UPDATE departments
    SET name = $2, parent_id = $3, head_employee_id = $4, updated_at = now()
    WHERE id = $1
    RETURNING `+departmentColumns,
		dep.ID, dep.Name, pgerr.NullIfEmpty(dep.ParentID), pgerr.NullIfEmpty(dep.HeadEmployeeID)))
	if pgerr.IsNoRows(err) {
		return Department{}, ErrDepartmentNotFound
	}
	return updated, err
}

func (s *Store) DeleteDepartment(ctx context.Context, departmentID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", departmentID)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrDepartmentInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) DepartmentInUse(ctx context.Context, departmentID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT (SELECT COUNT(1) FROM employees WHERE department_id = $1)
         + (SELECT COUNT(1) FROM departments WHERE parent_id = $1)
  `, departmentID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
