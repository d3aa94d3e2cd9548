package contracts

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"hrportal/internal/domain/org"
	"hrportal/internal/platform/listing"
)

// References resolves the org records contracts and assignments point at.
type References interface {
	GetEmployee(ctx context.Context, employeeID string) (org.Employee, error)
	GetPosition(ctx context.Context, positionID string) (org.Position, error)
}

type Service struct {
	store StoreAPI
	refs  References
}

func NewService(store StoreAPI, refs References) *Service {
	return &Service{store: store, refs: refs}
}

func (s *Service) ListContracts(ctx context.Context, params listing.Params, filter ContractFilter) ([]Contract, listing.Meta, error) {
	params = params.Normalize()
	items, total, err := s.store.ListContracts(ctx, params, filter)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return items, listing.NewMeta(params, total), nil
}

func (s *Service) GetContract(ctx context.Context, contractID string) (Contract, error) {
	return s.store.GetContract(ctx, contractID)
}

func (s *Service) CreateContract(ctx context.Context, c Contract) (Contract, error) {
	if c.Status == "" {
		c.Status = StatusActive
	}
	if err := normalizeContract(&c); err != nil {
		return Contract{}, err
	}
	if _, err := s.refs.GetEmployee(ctx, c.EmployeeID); err != nil {
		return Contract{}, err
	}
	return s.store.CreateContract(ctx, c)
}

func (s *Service) UpdateContract(ctx context.Context, c Contract) (Contract, error) {
	existing, err := s.store.GetContract(ctx, c.ID)
	if err != nil {
		return Contract{}, err
	}
	c.EmployeeID = existing.EmployeeID
	if c.Status == "" {
		c.Status = existing.Status
	}
	if err := normalizeContract(&c); err != nil {
		return Contract{}, err
	}
	return s.store.UpdateContract(ctx, c)
}

func (s *Service) DeleteContract(ctx context.Context, contractID string) error {
	return s.store.DeleteContract(ctx, contractID)
}

func normalizeContract(c *Contract) error {
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if !ValidType(c.ContractType) {
		return ErrInvalidContractType
	}
	if !ValidStatus(c.Status) {
		return ErrInvalidStatus
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return ErrInvalidDateRange
	}
	if c.Salary.IsNegative() {
		return ErrNegativeSalary
	}
	return nil
}

func (s *Service) ListAssignments(ctx context.Context, contractID string) ([]Assignment, error) {
	if _, err := s.store.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	return s.store.ListAssignments(ctx, contractID)
}

func (s *Service) GetAssignment(ctx context.Context, assignmentID string) (Assignment, error) {
	return s.store.GetAssignment(ctx, assignmentID)
}

func (s *Service) CreateAssignment(ctx context.Context, a Assignment) (Assignment, error) {
	a.ID = ""
	return s.saveAssignment(ctx, a)
}

func (s *Service) UpdateAssignment(ctx context.Context, a Assignment) (Assignment, error) {
	existing, err := s.store.GetAssignment(ctx, a.ID)
	if err != nil {
		return Assignment{}, err
	}
	a.ContractID = existing.ContractID
	return s.saveAssignment(ctx, a)
}

func (s *Service) saveAssignment(ctx context.Context, a Assignment) (Assignment, error) {
	contract, err := s.store.GetContract(ctx, a.ContractID)
	if err != nil {
		return Assignment{}, err
	}
	if _, err := s.refs.GetPosition(ctx, a.PositionID); err != nil {
		return Assignment{}, err
	}
	if a.EndDate != nil && a.EndDate.Before(a.StartDate) {
		return Assignment{}, ErrInvalidDateRange
	}
	if a.StartDate.Before(contract.StartDate) || (contract.EndDate != nil && a.StartDate.After(*contract.EndDate)) {
		return Assignment{}, ErrOutsideContract
	}
	requested := a.WorkloadPercentage
	if err := CheckWorkload(decimal.Zero, requested); err != nil {
		return Assignment{}, err
	}
	return s.store.SaveAssignment(ctx, a, func(current decimal.Decimal) error {
		return CheckWorkload(current, requested)
	})
}

func (s *Service) DeleteAssignment(ctx context.Context, assignmentID string) error {
	return s.store.DeleteAssignment(ctx, assignmentID)
}
