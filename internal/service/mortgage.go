package service

import (
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// ComputeMortgage derives the loan amount and fixed monthly payment from
// the purchase price and the entered financing terms. The down payment
// percent is clamped to [0,100] for the derivation so an out-of-range value
// can never produce a negative loan or one above the purchase price; the
// raw field is left as entered so callers can still see it.
func ComputeMortgage(purchasePrice decimal.Decimal, m domain.Mortgage) domain.Mortgage {
	down := m.DownPaymentPercent
	if down.IsNegative() {
		down = decimal.Zero
	} else if down.GreaterThan(hundred) {
		down = hundred
	}

	m.LoanAmount = purchasePrice.Sub(purchasePrice.Mul(down).Div(hundred))
	m.MonthlyPayment = CalculateMonthlyPayment(m.LoanAmount, m.InterestRate, m.LoanTermYears*12)
	return m
}

// CalculateMonthlyPayment computes the fixed payment of a fully amortizing
// loan: loan * (r * (1+r)^n) / ((1+r)^n - 1) with r the monthly rate and n
// the number of payments. A zero rate or zero term is a degenerate
// amortization and yields a zero payment rather than a division by zero.
func CalculateMonthlyPayment(loanAmount, annualRate decimal.Decimal, numMonths int) decimal.Decimal {
	if numMonths <= 0 || annualRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	monthlyRate := annualRate.Div(hundred).Div(twelve)
	compound := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(numMonths)))
	denominator := compound.Sub(one)
	if denominator.IsZero() {
		return decimal.Zero
	}

	return loanAmount.Mul(monthlyRate.Mul(compound)).Div(denominator).Round(2)
}

// EffectiveMonthlyRent applies the occupancy rate to the gross rent. The
// rate is used as entered, without clamping, so out-of-range inputs remain
// observable in the result.
func EffectiveMonthlyRent(monthlyRent, occupancyRate decimal.Decimal) decimal.Decimal {
	return monthlyRent.Mul(occupancyRate).Div(hundred)
}
