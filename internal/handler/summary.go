package handler

import (
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/util"
)

// SummaryResponse is the dashboard-facing digest of an analysis: headline
// figures pre-formatted for display plus the raw projection series.
type SummaryResponse struct {
	ID             int32    `json:"id"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	CurrentStep    string   `json:"currentStep"`
	CompletedSteps []string `json:"completedSteps"`

	PurchasePrice   *string `json:"purchasePrice,omitempty"`
	LoanAmount      *string `json:"loanAmount,omitempty"`
	MonthlyPayment  *string `json:"monthlyPayment,omitempty"`
	EffectiveRent   *string `json:"effectiveRent,omitempty"`
	MonthlyExpenses *string `json:"monthlyExpenses,omitempty"`

	DSCR               *string `json:"dscr,omitempty"`
	NetOperatingIncome *string `json:"netOperatingIncome,omitempty"`
	CashFlow           *string `json:"cashFlow,omitempty"`
	CapRate            *string `json:"capRate,omitempty"`
	CashOnCashReturn   *string `json:"cashOnCashReturn,omitempty"`
	TotalInvestment    *string `json:"totalInvestment,omitempty"`

	ProjectedCashFlows []string `json:"projectedCashFlows,omitempty"`
	ProjectedEquity    []string `json:"projectedEquity,omitempty"`
}

func strPtr(s string) *string { return &s }

// toSummaryResponse flattens an analysis into its display summary
func toSummaryResponse(a *domain.Analysis) SummaryResponse {
	resp := SummaryResponse{
		ID:          a.ID,
		Name:        a.Name,
		Status:      string(a.Status),
		CurrentStep: a.Workflow.CurrentStep.String(),
	}
	for _, s := range a.Workflow.CompletedList() {
		resp.CompletedSteps = append(resp.CompletedSteps, s.String())
	}
	if resp.CompletedSteps == nil {
		resp.CompletedSteps = []string{}
	}

	if a.Contingency != nil {
		resp.PurchasePrice = strPtr(util.FormatUSD(a.Contingency.PurchasePrice))
	}
	if a.Mortgage != nil {
		resp.LoanAmount = strPtr(util.FormatUSD(a.Mortgage.LoanAmount))
		resp.MonthlyPayment = strPtr(util.FormatUSD(a.Mortgage.MonthlyPayment))
	}
	if a.RentOccupancy != nil {
		resp.EffectiveRent = strPtr(util.FormatUSD(a.RentOccupancy.EffectiveMonthlyRent))
	}
	if a.OperatingExpenses != nil {
		resp.MonthlyExpenses = strPtr(util.FormatUSD(a.OperatingExpenses.Total))
	}

	if a.DSCR != nil {
		resp.DSCR = strPtr(util.FormatRatio(a.DSCR.DSCR))
		resp.NetOperatingIncome = strPtr(util.FormatUSD(a.DSCR.NetOperatingIncome))
		resp.CashFlow = strPtr(util.FormatUSD(a.DSCR.CashFlow))
	}
	if a.ROI != nil {
		resp.CapRate = strPtr(util.FormatPercent(a.ROI.CapRate))
		resp.CashOnCashReturn = strPtr(util.FormatPercent(a.ROI.CashOnCashReturn))
		resp.TotalInvestment = strPtr(util.FormatUSD(a.ROI.TotalInvestment))
		for _, v := range a.ROI.ProjectedCashFlows {
			resp.ProjectedCashFlows = append(resp.ProjectedCashFlows, v.StringFixed(2))
		}
		for _, v := range a.ROI.ProjectedEquity {
			resp.ProjectedEquity = append(resp.ProjectedEquity, v.StringFixed(2))
		}
	}

	return resp
}
