package service

import (
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeROI derives total invested capital, cap rate, cash-on-cash return
// and the year-indexed cash-flow and equity projections. It returns nil
// when the underlying DSCR inputs are incomplete or when the contingency,
// purchase-cost or mortgage section is still missing.
//
// Without appreciation assumptions the cash-flow series holds only the
// year-zero outlay and the equity series is empty; that partial result is
// valid and simply means the projection step has not been reached.
func ComputeROI(
	rent *domain.RentOccupancy,
	expenses *domain.OperatingExpenses,
	mortgage *domain.Mortgage,
	contingency *domain.ContingencyPurchase,
	purchaseCosts *domain.PurchaseCosts,
	appreciation *domain.AppreciationAssumptions,
) *domain.ROIResult {
	if contingency == nil || purchaseCosts == nil || mortgage == nil {
		return nil
	}

	dscr := ComputeDSCR(rent, expenses, mortgage,
		mortgage.DownPaymentPercent, contingency.PurchasePrice, purchaseCosts.TotalAcquisitionCost)
	if dscr == nil {
		return nil
	}

	totalInvestment := contingency.PurchasePrice.
		Mul(mortgage.DownPaymentPercent).Div(hundred).
		Add(purchaseCosts.TotalAcquisitionCost)

	capRate := decimal.Zero
	if contingency.PurchasePrice.IsPositive() {
		capRate = dscr.NetOperatingIncome.Div(contingency.PurchasePrice).Mul(hundred)
	}

	// Year 0 is the capital outlay.
	cashFlows := []decimal.Decimal{totalInvestment.Neg()}
	equity := []decimal.Decimal{}

	if appreciation != nil {
		valueGrowth := one.Add(appreciation.AnnualAppreciationRate.Div(hundred))
		rentGrowth := one.Add(appreciation.AnnualRentGrowthRate.Div(hundred))
		expenseGrowth := one.Add(appreciation.AnnualExpenseIncreaseRate.Div(hundred))

		// The simulation starts from the after-repair value, not the
		// purchase price.
		currentValue := contingency.AfterRepairValue
		currentRent := rent.EffectiveMonthlyRent
		currentExpenses := expenses.Total
		remainingLoan := mortgage.LoanAmount

		annualPayment := mortgage.MonthlyPayment.Mul(twelve)
		annualRate := mortgage.InterestRate.Div(hundred)

		for year := 1; year <= appreciation.HoldingPeriodYears; year++ {
			currentValue = currentValue.Mul(valueGrowth)
			currentRent = currentRent.Mul(rentGrowth)
			currentExpenses = currentExpenses.Mul(expenseGrowth)

			yearNOI := currentRent.Mul(twelve).Sub(currentExpenses.Mul(twelve))
			yearCashFlow := yearNOI.Sub(annualPayment)

			// Approximate amortization: the stated annual rate is charged
			// against the current balance once per year instead of running
			// a monthly schedule. The reported numbers depend on this
			// simplification, so it stays.
			principalPayment := annualPayment.Sub(remainingLoan.Mul(annualRate))
			remainingLoan = remainingLoan.Sub(principalPayment)
			if remainingLoan.IsNegative() {
				remainingLoan = decimal.Zero
			}

			cashFlows = append(cashFlows, yearCashFlow)
			equity = append(equity, currentValue.Sub(remainingLoan))
		}
	}

	return &domain.ROIResult{
		TotalInvestment:    totalInvestment,
		YearOneNOI:         dscr.NetOperatingIncome,
		YearOneCashFlow:    dscr.CashFlow,
		CapRate:            capRate,
		CashOnCashReturn:   dscr.CashOnCashReturn,
		ProjectedCashFlows: cashFlows,
		ProjectedEquity:    equity,
	}
}
