package org

import (
	"context"

	"hrportal/internal/platform/listing"
)

// Directory is the read-only view of the employee directory the hierarchy
// queries run against. GetEmployee returns ErrEmployeeNotFound for unknown ids.
type Directory interface {
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)
	ListByManager(ctx context.Context, managerID string) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	ListAll(ctx context.Context) ([]Employee, error)
}

type StoreAPI interface {
	Directory

	ListEmployees(ctx context.Context, params listing.Params, filter EmployeeFilter) ([]Employee, int, error)
	ListActiveByIDs(ctx context.Context, employeeIDs []string) ([]Employee, error)
	CreateEmployee(ctx context.Context, emp Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, emp Employee) (Employee, error)
	DeactivateEmployee(ctx context.Context, employeeID string) error
	NationalIDTaken(ctx context.Context, nationalID, excludeID string) (bool, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	UserIDsByEmployee(ctx context.Context, employeeIDs []string) (map[string]string, error)

	GetDepartment(ctx context.Context, departmentID string) (Department, error)
	ListDepartments(ctx context.Context, params listing.Params) ([]Department, int, error)
	CreateDepartment(ctx context.Context, dep Department) (Department, error)
	UpdateDepartment(ctx context.Context, dep Department) (Department, error)
	DeleteDepartment(ctx context.Context, departmentID string) error
	DepartmentInUse(ctx context.Context, departmentID string) (bool, error)

	GetPosition(ctx context.Context, positionID string) (Position, error)
	ListPositions(ctx context.Context, params listing.Params, departmentID string) ([]Position, int, error)
	CreatePosition(ctx context.Context, pos Position) (Position, error)
	UpdatePosition(ctx context.Context, pos Position) (Position, error)
	DeletePosition(ctx context.Context, positionID string) error
	PositionInUse(ctx context.Context, positionID string) (bool, error)
}
