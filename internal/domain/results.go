package domain

import "github.com/shopspring/decimal"

// DSCRResult holds the debt-service coverage figures for year one.
// A nil *DSCRResult means the workflow has not yet supplied every input the
// calculation needs; that is a routine state, not a fault.
type DSCRResult struct {
	NetOperatingIncome decimal.Decimal `json:"netOperatingIncome"`
	DebtService        decimal.Decimal `json:"debtService"`
	DSCR               decimal.Decimal `json:"dscr"`
	CashFlow           decimal.Decimal `json:"cashFlow"`
	CashOnCashReturn   decimal.Decimal `json:"cashOnCashReturn"`
}

// ROIResult holds the return metrics and the year-indexed projection
// series. ProjectedCashFlows[0] is always the negative total investment
// (the year-zero capital outlay). Without appreciation assumptions the
// series stops at that seed and ProjectedEquity is empty; that is a valid,
// deliberately partial result.
type ROIResult struct {
	TotalInvestment    decimal.Decimal   `json:"totalInvestment"`
	YearOneNOI         decimal.Decimal   `json:"yearOneNOI"`
	YearOneCashFlow    decimal.Decimal   `json:"yearOneCashFlow"`
	CapRate            decimal.Decimal   `json:"capRate"`
	CashOnCashReturn   decimal.Decimal   `json:"cashOnCashReturn"`
	ProjectedCashFlows []decimal.Decimal `json:"projectedCashFlows"`
	ProjectedEquity    []decimal.Decimal `json:"projectedEquity"`
}
