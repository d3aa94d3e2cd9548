package org

import (
	"context"
	"errors"
	"strings"

	"hrportal/internal/platform/listing"
)

type Service struct {
	store StoreAPI
	Graph *Graph
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, Graph: NewGraph(store)}
}

// Directory exposes the read side other domains resolve employees through.
func (s *Service) Directory() StoreAPI {
	return s.store
}

func (s *Service) ListEmployees(ctx context.Context, params listing.Params, filter EmployeeFilter) ([]Employee, listing.Meta, error) {
	params = params.Normalize()
	items, total, err := s.store.ListEmployees(ctx, params, filter)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return items, listing.NewMeta(params, total), nil
}

func (s *Service) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	return s.store.GetEmployee(ctx, employeeID)
}

func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	emp.Email = strings.ToLower(strings.TrimSpace(emp.Email))
	if err := s.checkEmployee(ctx, emp); err != nil {
		return Employee{}, err
	}
	return s.store.CreateEmployee(ctx, emp)
}

func (s *Service) UpdateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	if _, err := s.store.GetEmployee(ctx, emp.ID); err != nil {
		return Employee{}, err
	}
	emp.Email = strings.ToLower(strings.TrimSpace(emp.Email))
	if err := s.checkEmployee(ctx, emp); err != nil {
		return Employee{}, err
	}
	return s.store.UpdateEmployee(ctx, emp)
}

func (s *Service) DeactivateEmployee(ctx context.Context, employeeID string) error {
	return s.store.DeactivateEmployee(ctx, employeeID)
}

func (s *Service) checkEmployee(ctx context.Context, emp Employee) error {
	if emp.ManagerID != "" {
		if emp.ManagerID == emp.ID {
			return ErrSelfManager
		}
		if _, err := s.store.GetEmployee(ctx, emp.ManagerID); err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return ErrManagerNotFound
			}
			return err
		}
	}
	if emp.DepartmentID != "" {
		if _, err := s.store.GetDepartment(ctx, emp.DepartmentID); err != nil {
			return err
		}
	}
	if emp.PositionID != "" {
		if _, err := s.store.GetPosition(ctx, emp.PositionID); err != nil {
			return err
		}
	}
	if emp.NationalID != "" {
		taken, err := s.store.NationalIDTaken(ctx, emp.NationalID, emp.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateNationalID
		}
	}
	taken, err := s.store.EmailTaken(ctx, emp.Email, emp.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}
	return nil
}

// Subordinates returns direct reports, or every transitive report when
// recursive is set. Unknown employees have none.
func (s *Service) Subordinates(ctx context.Context, employeeID string, recursive bool) ([]Employee, error) {
	if recursive {
		return s.Graph.AllSubordinatesRecursive(ctx, employeeID)
	}
	return s.Graph.SubordinatesOf(ctx, employeeID)
}

func (s *Service) Peers(ctx context.Context, employeeID string) ([]Employee, error) {
	return s.Graph.PeersOf(ctx, employeeID)
}

func (s *Service) Chart(ctx context.Context, rootID string) ([]ChartNode, error) {
	if rootID != "" {
		if _, err := s.store.GetEmployee(ctx, rootID); err != nil {
			return nil, err
		}
	}
	return s.Graph.Chart(ctx, rootID)
}

func (s *Service) ManagerCycles(ctx context.Context) ([][]string, error) {
	return s.Graph.ManagerCycles(ctx)
}

func (s *Service) ListDepartments(ctx context.Context, params listing.Params) ([]Department, listing.Meta, error) {
	params = params.Normalize()
	items, total, err := s.store.ListDepartments(ctx, params)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return items, listing.NewMeta(params, total), nil
}

func (s *Service) GetDepartment(ctx context.Context, departmentID string) (Department, error) {
	return s.store.GetDepartment(ctx, departmentID)
}

func (s *Service) CreateDepartment(ctx context.Context, dep Department) (Department, error) {
	if err := s.checkDepartmentRefs(ctx, dep); err != nil {
		return Department{}, err
	}
	return s.store.CreateDepartment(ctx, dep)
}

func (s *Service) UpdateDepartment(ctx context.Context, dep Department) (Department, error) {
	if _, err := s.store.GetDepartment(ctx, dep.ID); err != nil {
		return Department{}, err
	}
	if dep.ParentID != "" {
		if dep.ParentID == dep.ID {
			return Department{}, ErrSelfParent
		}
		cycle, err := s.wouldCreateCycle(ctx, dep.ID, dep.ParentID)
		if err != nil {
			return Department{}, err
		}
		if cycle {
			return Department{}, ErrDepartmentCycle
		}
	}
	if err := s.checkDepartmentRefs(ctx, dep); err != nil {
		return Department{}, err
	}
	return s.store.UpdateDepartment(ctx, dep)
}

func (s *Service) DeleteDepartment(ctx context.Context, departmentID string) error {
	if _, err := s.store.GetDepartment(ctx, departmentID); err != nil {
		return err
	}
	inUse, err := s.store.DepartmentInUse(ctx, departmentID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrDepartmentInUse
	}
	return s.store.DeleteDepartment(ctx, departmentID)
}

func (s *Service) checkDepartmentRefs(ctx context.Context, dep Department) error {
	if dep.ParentID != "" {
		if _, err := s.store.GetDepartment(ctx, dep.ParentID); err != nil {
			return err
		}
	}
	if dep.HeadEmployeeID != "" {
		if _, err := s.store.GetEmployee(ctx, dep.HeadEmployeeID); err != nil {
			return err
		}
	}
	return nil
}

// wouldCreateCycle walks up from newParentID and reports whether it reaches
// departmentID.
func (s *Service) wouldCreateCycle(ctx context.Context, departmentID, newParentID string) (bool, error) {
	seen := map[string]struct{}{}
	current := newParentID
	for current != "" {
		if current == departmentID {
			return true, nil
		}
		if _, ok := seen[current]; ok {
			return true, nil
		}
		seen[current] = struct{}{}
		parent, err := s.store.GetDepartment(ctx, current)
		if errors.Is(err, ErrDepartmentNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		current = parent.ParentID
	}
	return false, nil
}

func (s *Service) ListPositions(ctx context.Context, params listing.Params, departmentID string) ([]Position, listing.Meta, error) {
	params = params.Normalize()
	items, total, err := s.store.ListPositions(ctx, params, departmentID)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return items, listing.NewMeta(params, total), nil
}

func (s *Service) GetPosition(ctx context.Context, positionID string) (Position, error) {
	return s.store.GetPosition(ctx, positionID)
}

func (s *Service) CreatePosition(ctx context.Context, pos Position) (Position, error) {
	if pos.DepartmentID != "" {
		if _, err := s.store.GetDepartment(ctx, pos.DepartmentID); err != nil {
			return Position{}, err
		}
	}
	return s.store.CreatePosition(ctx, pos)
}

func (s *Service) UpdatePosition(ctx context.Context, pos Position) (Position, error) {
	if _, err := s.store.GetPosition(ctx, pos.ID); err != nil {
		return Position{}, err
	}
	if pos.DepartmentID != "" {
		if _, err := s.store.GetDepartment(ctx, pos.DepartmentID); err != nil {
			return Position{}, err
		}
	}
	return s.store.UpdatePosition(ctx, pos)
}

func (s *Service) DeletePosition(ctx context.Context, positionID string) error {
	if _, err := s.store.GetPosition(ctx, positionID); err != nil {
		return err
	}
	inUse, err := s.store.PositionInUse(ctx, positionID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrPositionInUse
	}
	return s.store.DeletePosition(ctx, positionID)
}
