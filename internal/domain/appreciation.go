package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrAppreciationRateRange    = errors.New("annual appreciation rate must be between -10 and 30")
	ErrRentGrowthRateRange      = errors.New("annual rent growth rate must be between -10 and 20")
	ErrExpenseIncreaseRateRange = errors.New("annual expense increase rate must be between 0 and 20")
	ErrHoldingPeriodInvalid     = errors.New("holding period must be at least 1 year")
)

// AppreciationAssumptions drives the multi-year ROI projection. All rates
// compound year-over-year.
type AppreciationAssumptions struct {
	AnnualAppreciationRate    decimal.Decimal `json:"annualAppreciationRate"`
	AnnualRentGrowthRate      decimal.Decimal `json:"annualRentGrowthRate"`
	AnnualExpenseIncreaseRate decimal.Decimal `json:"annualExpenseIncreaseRate"`
	HoldingPeriodYears        int             `json:"holdingPeriodYears"`
}

func (a *AppreciationAssumptions) Validate() error {
	if a.AnnualAppreciationRate.LessThan(decimal.NewFromInt(-10)) || a.AnnualAppreciationRate.GreaterThan(decimal.NewFromInt(30)) {
		return ErrAppreciationRateRange
	}
	if a.AnnualRentGrowthRate.LessThan(decimal.NewFromInt(-10)) || a.AnnualRentGrowthRate.GreaterThan(decimal.NewFromInt(20)) {
		return ErrRentGrowthRateRange
	}
	if a.AnnualExpenseIncreaseRate.IsNegative() || a.AnnualExpenseIncreaseRate.GreaterThan(decimal.NewFromInt(20)) {
		return ErrExpenseIncreaseRateRange
	}
	if a.HoldingPeriodYears < 1 {
		return ErrHoldingPeriodInvalid
	}
	return nil
}
