package contracts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"hrportal/internal/platform/listing"
	"hrportal/internal/platform/pgerr"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const contractColumns = `
    c.id::text, c.employee_id::text, c.contract_type, c.start_date, c.end_date,
    c.salary::text, c.currency, c.status, c.created_at, c.updated_at`

const assignmentColumns = `
    id::text, contract_id::text, position_id::text, workload_percentage::text,
    start_date, end_date, created_at, updated_at`

var contractSortColumns = map[string]string{
	"id":           "c.id",
	"createdAt":    "c.created_at",
	"updatedAt":    "c.updated_at",
	"startDate":    "c.start_date",
	"endDate":      "c.end_date",
	"contractType": "c.contract_type",
	"status":       "c.status",
}

var contractSearchFields = []string{"c.contract_type", "c.status", "e.first_name", "e.last_name"}

func scanContract(row pgx.Row) (Contract, error) {
	var c Contract
	var salary string
	if err := row.Scan(&c.ID, &c.EmployeeID, &c.ContractType, &c.StartDate, &c.EndDate, &salary, &c.Currency, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Contract{}, err
	}
	parsed, err := decimal.NewFromString(salary)
	if err != nil {
		return Contract{}, fmt.Errorf("parse salary: %w", err)
	}
	c.Salary = parsed
	return c, nil
}

func scanAssignment(row pgx.Row) (Assignment, error) {
	var a Assignment
	var workload string
	if err := row.Scan(&a.ID, &a.ContractID, &a.PositionID, &workload, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return Assignment{}, err
	}
	parsed, err := decimal.NewFromString(workload)
	if err != nil {
		return Assignment{}, fmt.Errorf("parse workload: %w", err)
	}
	a.WorkloadPercentage = parsed
	return a, nil
}

func (s *Store) GetContract(ctx context.Context, contractID string) (Contract, error) {
	c, err := scanContract(s.DB.QueryRow(ctx, "SELECT "+contractColumns+" FROM contracts c WHERE c.id = $1", contractID))
	if pgerr.IsNoRows(err) {
		return Contract{}, ErrContractNotFound
	}
	return c, err
}

func (s *Store) ListContracts(ctx context.Context, params listing.Params, filter ContractFilter) ([]Contract, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND c.employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	if params.Search != "" {
		args = append(args, params.Search)
		where += params.SearchClause(contractSearchFields, len(args))
	}
	from := " FROM contracts c JOIN employees e ON e.id = c.employee_id"

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1)"+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + contractColumns + from + where + params.OrderBy(contractSortColumns) + params.LimitClause(len(args)+1)
	args = append(args, params.Normalize().Limit, params.Offset())
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (s *Store) CreateContract(ctx context.Context, c Contract) (Contract, error) {
	return scanContract(s.DB.QueryRow(ctx, `
    INSERT INTO contracts AS c (employee_id, contract_type, start_date, end_date, salary, currency, status)
    VALUES ($1,$2,$3,$4,$5::numeric,$6,$7)
    RETURNING `+contractColumns,
		c.EmployeeID, c.ContractType, c.StartDate, c.EndDate, c.Salary.String(), c.Currency, c.Status))
}

func (s *Store) UpdateContract(ctx context.Context, c Contract) (Contract, error) {
	updated, err := scanContract(s.DB.QueryRow(ctx, `
    UPDATE contracts AS c
    SET contract_type = $2, start_date = $3, end_date = $4, salary = $5::numeric,
        currency = $6, status = $7, updated_at = now()
    WHERE c.id = $1
    RETURNING `+contractColumns,
		c.ID, c.ContractType, c.StartDate, c.EndDate, c.Salary.String(), c.Currency, c.Status))
	if pgerr.IsNoRows(err) {
		return Contract{}, ErrContractNotFound
	}
	return updated, err
}

func (s *Store) DeleteContract(ctx context.Context, contractID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM contracts WHERE id = $1", contractID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (s *Store) GetAssignment(ctx context.Context, assignmentID string) (Assignment, error) {
	a, err := scanAssignment(s.DB.QueryRow(ctx, "SELECT "+assignmentColumns+" FROM assignments WHERE id = $1", assignmentID))
	if pgerr.IsNoRows(err) {
		return Assignment{}, ErrAssignmentNotFound
	}
	return a, err
}

func (s *Store) ListAssignments(ctx context.Context, contractID string) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+assignmentColumns+" FROM assignments WHERE contract_id = $1 ORDER BY start_date, created_at", contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) SaveAssignment(ctx context.Context, a Assignment, guard WorkloadGuard) (Assignment, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Assignment{}, err
	}
	defer tx.Rollback(ctx)

	var locked string
	if err := tx.QueryRow(ctx, "SELECT id::text FROM contracts WHERE id = $1 FOR UPDATE", a.ContractID).Scan(&locked); err != nil {
		if pgerr.IsNoRows(err) {
			return Assignment{}, ErrContractNotFound
		}
		return Assignment{}, err
	}

	var current string
	if err := tx.QueryRow(ctx, `
    SELECT COALESCE(SUM(workload_percentage), 0)::text
    FROM assignments
    WHERE contract_id = $1 AND id IS DISTINCT FROM NULLIF($2::text, '')::uuid
  `, a.ContractID, a.ID).Scan(&current); err != nil {
		return Assignment{}, err
	}
	committed, err := decimal.NewFromString(current)
	if err != nil {
		return Assignment{}, fmt.Errorf("parse workload total: %w", err)
	}
	if guard != nil {
		if err := guard(committed); err != nil {
			return Assignment{}, err
		}
	}

	var saved Assignment
	if a.ID == "" {
		saved, err = scanAssignment(tx.QueryRow(ctx, `
      INSERT INTO assignments (contract_id, position_id, workload_percentage, start_date, end_date)
      VALUES ($1,$2,$3::numeric,$4,$5)
      RETURNING `+assignmentColumns,
			a.ContractID, a.PositionID, a.WorkloadPercentage.String(), a.StartDate, a.EndDate))
	} else {
		saved, err = scanAssignment(tx.QueryRow(ctx, `
      UPDATE assignments
      SET position_id = $2, workload_percentage = $3::numeric, start_date = $4, end_date = $5, updated_at = now()
      WHERE id = $1
      RETURNING `+assignmentColumns,
			a.ID, a.PositionID, a.WorkloadPercentage.String(), a.StartDate, a.EndDate))
		if pgerr.IsNoRows(err) {
			return Assignment{}, ErrAssignmentNotFound
		}
	}
	if err != nil {
		return Assignment{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Assignment{}, err
	}
	return saved, nil
}

func (s *Store) DeleteAssignment(ctx context.Context, assignmentID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM assignments WHERE id = $1", assignmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

var _ StoreAPI = (*Store)(nil)
