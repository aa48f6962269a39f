package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInterestRateRange   = errors.New("interest rate must be between 0 and 30")
	ErrLoanTermRange       = errors.New("loan term must be between 1 and 40 years")
	ErrDownPaymentRange    = errors.New("down payment percent must be between 0 and 100")
	ErrFinancePercentRange = errors.New("finance percent of ARV must be between 0 and 100")
)

// Mortgage holds the financing terms entered by the analyst plus the
// derived loan figures. LoanAmount and MonthlyPayment are never entered
// directly; the engine recomputes them whenever any raw field (or the
// purchase price) changes.
type Mortgage struct {
	FinancePercentOfARV decimal.Decimal `json:"financePercentOfARV"`
	InterestRate        decimal.Decimal `json:"interestRate"`
	LoanTermYears       int             `json:"loanTermYears"`
	DownPaymentPercent  decimal.Decimal `json:"downPaymentPercent"`

	// Derived
	LoanAmount     decimal.Decimal `json:"loanAmount"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
}

func (m *Mortgage) Validate() error {
	if m.InterestRate.IsNegative() || m.InterestRate.GreaterThan(decimal.NewFromInt(30)) {
		return ErrInterestRateRange
	}
	if m.LoanTermYears < 1 || m.LoanTermYears > 40 {
		return ErrLoanTermRange
	}
	if m.DownPaymentPercent.IsNegative() || m.DownPaymentPercent.GreaterThan(decimal.NewFromInt(100)) {
		return ErrDownPaymentRange
	}
	if m.FinancePercentOfARV.IsNegative() || m.FinancePercentOfARV.GreaterThan(decimal.NewFromInt(100)) {
		return ErrFinancePercentRange
	}
	return nil
}
