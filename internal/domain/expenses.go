package domain

import "github.com/shopspring/decimal"

// OperatingExpenses is the fixed set of monthly operating expense
// categories. The field set is closed: aggregation sums every field, so a
// zero-valued category never changes the total. Total is derived.
type OperatingExpenses struct {
	Advertising     decimal.Decimal `json:"advertising"`
	Insurance       decimal.Decimal `json:"insurance"`
	CPA             decimal.Decimal `json:"cpa"`
	Legal           decimal.Decimal `json:"legal"`
	Maintenance     decimal.Decimal `json:"maintenance"`
	Taxes           decimal.Decimal `json:"taxes"`
	Gas             decimal.Decimal `json:"gas"`
	Electric        decimal.Decimal `json:"electric"`
	WaterSewerTrash decimal.Decimal `json:"waterSewerTrash"`
	Landscaping     decimal.Decimal `json:"landscaping"`
	Turnovers       decimal.Decimal `json:"turnovers"`
	Reserves        decimal.Decimal `json:"reserves"`
	Miscellaneous   decimal.Decimal `json:"miscellaneous"`

	// Derived
	Total decimal.Decimal `json:"total"`
}

// Categories returns the expense amounts in declaration order.
func (e *OperatingExpenses) Categories() []decimal.Decimal {
	return []decimal.Decimal{
		e.Advertising,
		e.Insurance,
		e.CPA,
		e.Legal,
		e.Maintenance,
		e.Taxes,
		e.Gas,
		e.Electric,
		e.WaterSewerTrash,
		e.Landscaping,
		e.Turnovers,
		e.Reserves,
		e.Miscellaneous,
	}
}
