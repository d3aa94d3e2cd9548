package contracts

import (
	"github.com/shopspring/decimal"

	"hrportal/internal/platform/apperror"
)

// CheckWorkload applies the contract capacity rule: the committed workload
// plus the requested share may reach MaxWorkload but never exceed it.
func CheckWorkload(current, requested decimal.Decimal) error {
	if !requested.IsPositive() || requested.GreaterThan(MaxWorkload) {
		return ErrInvalidWorkload
	}
	if current.Add(requested).GreaterThan(MaxWorkload) {
		return apperror.Newf(ErrWorkloadExceeded, "total workload would exceed 100%% (current %s%%, requested %s%%)", current.String(), requested.String())
	}
	return nil
}
