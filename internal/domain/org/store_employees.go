package org

import (
	"context"
	"fmt"

	"hrportal/internal/platform/listing"
	"hrportal/internal/platform/pgerr"
)

var employeeSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"hireDate":  "hire_date",
}

var employeeSearchFields = []string{"first_name", "last_name", "email"}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", employeeID))
	if pgerr.IsNoRows(err) {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) ListByManager(ctx context.Context, managerID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees WHERE manager_id = $1 ORDER BY created_at, id", managerID)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (s *Store) ListActive(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees WHERE is_active ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (s *Store) ListAll(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (s *Store) ListActiveByIDs(ctx context.Context, employeeIDs []string) ([]Employee, error) {
	if len(employeeIDs) == 0 {
		return []Employee{}, nil
	}
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE is_active AND id = ANY($1::uuid[])
    ORDER BY created_at ASC, id ASC
  `, employeeIDs)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (s *Store) ListEmployees(ctx context.Context, params listing.Params, filter EmployeeFilter) ([]Employee, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		where += fmt.Sprintf(" AND department_id = $%d", len(args))
	}
	if filter.ManagerID != "" {
		args = append(args, filter.ManagerID)
		where += fmt.Sprintf(" AND manager_id = $%d", len(args))
	}
	if filter.ActiveOnly {
		where += " AND is_active"
	}
	if params.Search != "" {
		args = append(args, params.Search)
		where += params.SearchClause(employeeSearchFields, len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + employeeColumns + " FROM employees" + where + params.OrderBy(employeeSortColumns) + params.LimitClause(len(args)+1)
	args = append(args, params.Normalize().Limit, params.Offset())
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := collectEmployees(rows)
	return out, total, err
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	created, err := scanEmployee(s.DB.QueryRow(ctx, `
    INSERT INTO employees (user_id, first_name, last_name, email, national_id, department_id, position_id, manager_id, is_active, hire_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING `+employeeColumns,
		pgerr.NullIfEmpty(emp.UserID), emp.FirstName, emp.LastName, emp.Email, pgerr.NullIfEmpty(emp.NationalID),
		pgerr.NullIfEmpty(emp.DepartmentID), pgerr.NullIfEmpty(emp.PositionID), pgerr.NullIfEmpty(emp.ManagerID),
		emp.IsActive, emp.HireDate,
	))
	return created, mapEmployeeWriteError(err)
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	updated, err := scanEmployee(s.DB.QueryRow(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, email = $4, national_id = $5, department_id = $6,
        position_id = $7, manager_id = $8, is_active = $9, hire_date = $10, updated_at = now()
    WHERE id = $1
    RETURNING `+employeeColumns,
		emp.ID, emp.FirstName, emp.LastName, emp.Email, pgerr.NullIfEmpty(emp.NationalID),
		pgerr.NullIfEmpty(emp.DepartmentID), pgerr.NullIfEmpty(emp.PositionID), pgerr.NullIfEmpty(emp.ManagerID),
		emp.IsActive, emp.HireDate,
	))
	if pgerr.IsNoRows(err) {
		return Employee{}, ErrEmployeeNotFound
	}
	return updated, mapEmployeeWriteError(err)
}

func (s *Store) DeactivateEmployee(ctx context.Context, employeeID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET is_active = false, updated_at = now() WHERE id = $1", employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) NationalIDTaken(ctx context.Context, nationalID, excludeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE national_id = $1 AND id <> $2
  `, nationalID, excludeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE lower(email) = lower($1) AND id <> $2
  `, email, excludeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UserIDsByEmployee(ctx context.Context, employeeIDs []string) (map[string]string, error) {
	out := map[string]string{}
	if len(employeeIDs) == 0 {
		return out, nil
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id::text, user_id::text
    FROM employees
    WHERE id = ANY($1::uuid[]) AND user_id IS NOT NULL
  `, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var employeeID, userID string
		if err := rows.Scan(&employeeID, &userID); err != nil {
			return nil, err
		}
		out[employeeID] = userID
	}
	return out, rows.Err()
}

func mapEmployeeWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case pgerr.IsUniqueViolation(err, "employees_national_id_key"):
		return ErrDuplicateNationalID
	case pgerr.IsUniqueViolation(err, "employees_email_key"):
		return ErrDuplicateEmail
	case pgerr.IsForeignKeyViolation(err):
		return fmt.Errorf("employee references unknown record: %w", err)
	}
	return err
}
