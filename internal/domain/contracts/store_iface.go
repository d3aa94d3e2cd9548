package contracts

import (
	"context"

	"hrportal/internal/platform/listing"
)

type StoreAPI interface {
	GetContract(ctx context.Context, contractID string) (Contract, error)
	ListContracts(ctx context.Context, params listing.Params, filter ContractFilter) ([]Contract, int, error)
	CreateContract(ctx context.Context, c Contract) (Contract, error)
	UpdateContract(ctx context.Context, c Contract) (Contract, error)
	DeleteContract(ctx context.Context, contractID string) error

	GetAssignment(ctx context.Context, assignmentID string) (Assignment, error)
	ListAssignments(ctx context.Context, contractID string) ([]Assignment, error)
	// SaveAssignment inserts a (ID == "") or updates the assignment. guard
	// runs with the contract locked against concurrent assignment writes.
	SaveAssignment(ctx context.Context, a Assignment, guard WorkloadGuard) (Assignment, error)
	DeleteAssignment(ctx context.Context, assignmentID string) error
}
