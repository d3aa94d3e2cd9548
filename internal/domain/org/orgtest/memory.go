// Package orgtest provides an in-memory org.StoreAPI for tests.
package orgtest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hrportal/internal/domain/org"
	"hrportal/internal/platform/listing"
)

type Memory struct {
	mu          sync.Mutex
	seq         int
	clock       time.Time
	employees   []org.Employee
	departments []org.Department
	positions   []org.Position
}

func NewMemory() *Memory {
	return &Memory{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *Memory) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// tick hands out strictly increasing timestamps so creation order is stable.
func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// Add inserts an employee as-is, assigning an id and timestamps when missing.
func (m *Memory) Add(emp org.Employee) org.Employee {
	m.mu.Lock()
	defer m.mu.Unlock()
	if emp.ID == "" {
		emp.ID = m.nextID("emp")
	}
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = m.tick()
	}
	emp.UpdatedAt = emp.CreatedAt
	m.employees = append(m.employees, emp)
	return emp
}

// SetManager rewires a manager link without validation, for building
// deliberately broken hierarchies.
func (m *Memory) SetManager(employeeID, managerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.employees {
		if m.employees[i].ID == employeeID {
			m.employees[i].ManagerID = managerID
		}
	}
}

func (m *Memory) GetEmployee(_ context.Context, employeeID string) (org.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, emp := range m.employees {
		if emp.ID == employeeID {
			return emp, nil
		}
	}
	return org.Employee{}, org.ErrEmployeeNotFound
}

func (m *Memory) ListByManager(_ context.Context, managerID string) ([]org.Employee, error) {
	return m.filter(func(e org.Employee) bool { return e.ManagerID == managerID }), nil
}

func (m *Memory) ListActive(_ context.Context) ([]org.Employee, error) {
	return m.filter(func(e org.Employee) bool { return e.IsActive }), nil
}

func (m *Memory) ListAll(_ context.Context) ([]org.Employee, error) {
	return m.filter(func(org.Employee) bool { return true }), nil
}

func (m *Memory) ListActiveByIDs(_ context.Context, employeeIDs []string) ([]org.Employee, error) {
	wanted := map[string]struct{}{}
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}
	return m.filter(func(e org.Employee) bool {
		_, ok := wanted[e.ID]
		return ok && e.IsActive
	}), nil
}

func (m *Memory) filter(keep func(org.Employee) bool) []org.Employee {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []org.Employee{}
	for _, emp := range m.employees {
		if keep(emp) {
			out = append(out, emp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *Memory) ListEmployees(_ context.Context, params listing.Params, filter org.EmployeeFilter) ([]org.Employee, int, error) {
	items := m.filter(func(e org.Employee) bool {
		if filter.DepartmentID != "" && e.DepartmentID != filter.DepartmentID {
			return false
		}
		if filter.ManagerID != "" && e.ManagerID != filter.ManagerID {
			return false
		}
		if filter.ActiveOnly && !e.IsActive {
			return false
		}
		return matches(params.Search, e.FirstName, e.LastName, e.Email)
	})
	if params.Normalize().SortOrder == listing.SortDesc {
		reverse(items)
	}
	page, meta := listing.Page(items, params)
	return page, meta.Total, nil
}

func (m *Memory) CreateEmployee(_ context.Context, emp org.Employee) (org.Employee, error) {
	return m.Add(emp), nil
}

func (m *Memory) UpdateEmployee(_ context.Context, emp org.Employee) (org.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.employees {
		if m.employees[i].ID == emp.ID {
			emp.CreatedAt = m.employees[i].CreatedAt
			emp.UpdatedAt = m.tick()
			m.employees[i] = emp
			return emp, nil
		}
	}
	return org.Employee{}, org.ErrEmployeeNotFound
}

func (m *Memory) DeactivateEmployee(_ context.Context, employeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.employees {
		if m.employees[i].ID == employeeID {
			m.employees[i].IsActive = false
			return nil
		}
	}
	return org.ErrEmployeeNotFound
}

func (m *Memory) NationalIDTaken(_ context.Context, nationalID, excludeID string) (bool, error) {
	found := m.filter(func(e org.Employee) bool { return e.NationalID == nationalID && e.ID != excludeID })
	return len(found) > 0, nil
}

func (m *Memory) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	found := m.filter(func(e org.Employee) bool { return strings.EqualFold(e.Email, email) && e.ID != excludeID })
	return len(found) > 0, nil
}

func (m *Memory) UserIDsByEmployee(_ context.Context, employeeIDs []string) (map[string]string, error) {
	wanted := map[string]struct{}{}
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}
	out := map[string]string{}
	for _, emp := range m.filter(func(e org.Employee) bool { return e.UserID != "" }) {
		if _, ok := wanted[emp.ID]; ok {
			out[emp.ID] = emp.UserID
		}
	}
	return out, nil
}

func (m *Memory) GetDepartment(_ context.Context, departmentID string) (org.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, dep := range m.departments {
		if dep.ID == departmentID {
			return dep, nil
		}
	}
	return org.Department{}, org.ErrDepartmentNotFound
}

func (m *Memory) ListDepartments(_ context.Context, params listing.Params) ([]org.Department, int, error) {
	m.mu.Lock()
	items := []org.Department{}
	for _, dep := range m.departments {
		if matches(params.Search, dep.Name) {
			items = append(items, dep)
		}
	}
	m.mu.Unlock()
	if params.Normalize().SortOrder == listing.SortDesc {
		reverse(items)
	}
	page, meta := listing.Page(items, params)
	return page, meta.Total, nil
}

func (m *Memory) CreateDepartment(_ context.Context, dep org.Department) (org.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dep.ID = m.nextID("dep")
	dep.CreatedAt = m.tick()
	dep.UpdatedAt = dep.CreatedAt
	m.departments = append(m.departments, dep)
	return dep, nil
}

func (m *Memory) UpdateDepartment(_ context.Context, dep org.Department) (org.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.departments {
		if m.departments[i].ID == dep.ID {
			dep.CreatedAt = m.departments[i].CreatedAt
			dep.UpdatedAt = m.tick()
			m.departments[i] = dep
			return dep, nil
		}
	}
	return org.Department{}, org.ErrDepartmentNotFound
}

func (m *Memory) DeleteDepartment(_ context.Context, departmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.departments {
		if m.departments[i].ID == departmentID {
			m.departments = append(m.departments[:i], m.departments[i+1:]...)
			return nil
		}
	}
	return org.ErrDepartmentNotFound
}

func (m *Memory) DepartmentInUse(_ context.Context, departmentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, dep := range m.departments {
		if dep.ParentID == departmentID {
			return true, nil
		}
	}
	for _, emp := range m.employees {
		if emp.DepartmentID == departmentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) GetPosition(_ context.Context, positionID string) (org.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pos := range m.positions {
		if pos.ID == positionID {
			return pos, nil
		}
	}
	return org.Position{}, org.ErrPositionNotFound
}

func (m *Memory) ListPositions(_ context.Context, params listing.Params, departmentID string) ([]org.Position, int, error) {
	m.mu.Lock()
	items := []org.Position{}
	for _, pos := range m.positions {
		if departmentID != "" && pos.DepartmentID != departmentID {
			continue
		}
		if matches(params.Search, pos.Title) {
			items = append(items, pos)
		}
	}
	m.mu.Unlock()
	if params.Normalize().SortOrder == listing.SortDesc {
		reverse(items)
	}
	page, meta := listing.Page(items, params)
	return page, meta.Total, nil
}

func (m *Memory) CreatePosition(_ context.Context, pos org.Position) (org.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos.ID = m.nextID("pos")
	pos.CreatedAt = m.tick()
	pos.UpdatedAt = pos.CreatedAt
	m.positions = append(m.positions, pos)
	return pos, nil
}

func (m *Memory) UpdatePosition(_ context.Context, pos org.Position) (org.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.positions {
		if m.positions[i].ID == pos.ID {
			pos.CreatedAt = m.positions[i].CreatedAt
			pos.UpdatedAt = m.tick()
			m.positions[i] = pos
			return pos, nil
		}
	}
	return org.Position{}, org.ErrPositionNotFound
}

func (m *Memory) DeletePosition(_ context.Context, positionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.positions {
		if m.positions[i].ID == positionID {
			m.positions = append(m.positions[:i], m.positions[i+1:]...)
			return nil
		}
	}
	return org.ErrPositionNotFound
}

func (m *Memory) PositionInUse(_ context.Context, positionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, emp := range m.employees {
		if emp.PositionID == positionID {
			return true, nil
		}
	}
	return false, nil
}

// matches mirrors the SQL strpos search: case-sensitive substring on any field.
func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(field, search) {
			return true
		}
	}
	return false
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

var _ org.StoreAPI = (*Memory)(nil)
