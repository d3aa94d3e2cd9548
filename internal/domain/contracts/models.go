package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

type Contract struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employeeId"`
	ContractType string          `json:"contractType"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      *time.Time      `json:"endDate,omitempty"`
	Salary       decimal.Decimal `json:"salary"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type ContractFilter struct {
	EmployeeID string
	Status     string
}

type Assignment struct {
	ID                 string          `json:"id"`
	ContractID         string          `json:"contractId"`
	PositionID         string          `json:"positionId"`
	WorkloadPercentage decimal.Decimal `json:"workloadPercentage"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            *time.Time      `json:"endDate,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// WorkloadGuard inspects the contract's committed workload, excluding the
// assignment being written, before the write goes through.
type WorkloadGuard func(current decimal.Decimal) error
