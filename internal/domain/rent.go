package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrMonthlyRentNegative = errors.New("monthly rent must not be negative")
	ErrOccupancyRateRange  = errors.New("occupancy rate must be between 0 and 100")
)

// RentOccupancy holds gross rent and occupancy assumptions.
// EffectiveMonthlyRent is derived, never entered directly.
type RentOccupancy struct {
	MonthlyRent   decimal.Decimal `json:"monthlyRent"`
	OccupancyRate decimal.Decimal `json:"occupancyRate"`

	// Derived
	EffectiveMonthlyRent decimal.Decimal `json:"effectiveMonthlyRent"`
}

func (r *RentOccupancy) Validate() error {
	if r.MonthlyRent.IsNegative() {
		return ErrMonthlyRentNegative
	}
	if r.OccupancyRate.IsNegative() || r.OccupancyRate.GreaterThan(decimal.NewFromInt(100)) {
		return ErrOccupancyRateRange
	}
	return nil
}
