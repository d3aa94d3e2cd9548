package contracts

import "github.com/shopspring/decimal"

const (
	TypePermanent  = "permanent"
	TypeFixedTerm  = "fixed_term"
	TypePartTime   = "part_time"
	TypeInternship = "internship"
)

const (
	StatusActive     = "active"
	StatusTerminated = "terminated"
	StatusExpired    = "expired"
)

const DefaultCurrency = "EUR"

// MaxWorkload is the capacity of a single contract, in percent.
var MaxWorkload = decimal.NewFromInt(100)

func ValidType(value string) bool {
	switch value {
	case TypePermanent, TypeFixedTerm, TypePartTime, TypeInternship:
		return true
	}
	return false
}

func ValidStatus(value string) bool {
	switch value {
	case StatusActive, StatusTerminated, StatusExpired:
		return true
	}
	return false
}
