package org

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id::text,
    COALESCE(user_id::text, ''),
    first_name, last_name, email,
    COALESCE(national_id, ''),
    COALESCE(department_id::text, ''),
    COALESCE(position_id::text, ''),
    COALESCE(manager_id::text, ''),
    is_active, hire_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.NationalID, &emp.DepartmentID, &emp.PositionID, &emp.ManagerID,
		&emp.IsActive, &emp.HireDate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func collectEmployees(rows pgx.Rows) ([]Employee, error) {
	defer rows.Close()
	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

var _ StoreAPI = (*Store)(nil)
