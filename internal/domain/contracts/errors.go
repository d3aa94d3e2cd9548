package contracts

import "hrportal/internal/platform/apperror"

var (
	ErrContractNotFound   = apperror.NotFound("contract not found")
	ErrAssignmentNotFound = apperror.NotFound("assignment not found")

	ErrInvalidContractType = apperror.Validation("invalid contract type")
	ErrInvalidStatus       = apperror.Validation("invalid contract status")
	ErrInvalidDateRange    = apperror.Validation("endDate must not be before startDate")
	ErrNegativeSalary      = apperror.Validation("salary must not be negative")
	ErrInvalidWorkload     = apperror.Validation("workloadPercentage must be greater than 0 and at most 100")
	ErrWorkloadExceeded    = apperror.Validation("total workload would exceed 100%")
	ErrOutsideContract     = apperror.Validation("assignment dates must fall within the contract")
)
