package service

import (
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeDSCR combines effective income, operating expenses and the
// mortgage payment into the year-one coverage figures. It returns nil when
// any of the three section inputs is still missing: that models an
// incomplete questionnaire, not a fault.
//
// A zero debt service (all-cash purchase) yields DSCR 0 rather than an
// infinite ratio. That understates the safety of an all-cash deal, but it
// is the convention the reporting layer has always shown, so it is kept.
func ComputeDSCR(
	rent *domain.RentOccupancy,
	expenses *domain.OperatingExpenses,
	mortgage *domain.Mortgage,
	downPaymentPercent decimal.Decimal,
	purchasePrice decimal.Decimal,
	totalAcquisitionCost decimal.Decimal,
) *domain.DSCRResult {
	if rent == nil || expenses == nil || mortgage == nil {
		return nil
	}

	annualRent := rent.EffectiveMonthlyRent.Mul(twelve)
	annualExpenses := expenses.Total.Mul(twelve)
	noi := annualRent.Sub(annualExpenses)

	debtService := mortgage.MonthlyPayment.Mul(twelve)
	dscr := decimal.Zero
	if debtService.IsPositive() {
		dscr = noi.Div(debtService)
	}

	cashFlow := noi.Sub(debtService)

	totalInvestment := purchasePrice.Mul(downPaymentPercent).Div(hundred).Add(totalAcquisitionCost)
	cashOnCash := decimal.Zero
	if totalInvestment.IsPositive() {
		cashOnCash = cashFlow.Div(totalInvestment).Mul(hundred)
	}

	return &domain.DSCRResult{
		NetOperatingIncome: noi,
		DebtService:        debtService,
		DSCR:               dscr,
		CashFlow:           cashFlow,
		CashOnCashReturn:   cashOnCash,
	}
}
