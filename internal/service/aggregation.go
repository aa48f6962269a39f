package service

import (
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SumOperatingExpenses returns a copy of e with Total set to the sum of
// every expense category. The field set is fixed, so the sum is
// order-independent and a zero-valued category never changes the total.
func SumOperatingExpenses(e domain.OperatingExpenses) domain.OperatingExpenses {
	total := decimal.Zero
	for _, amount := range e.Categories() {
		total = total.Add(amount)
	}
	e.Total = total
	return e
}

// SumPurchaseCosts returns a copy of p with TotalAcquisitionCost set to the
// sum of every one-time and holding cost category.
func SumPurchaseCosts(p domain.PurchaseCosts) domain.PurchaseCosts {
	total := decimal.Zero
	for _, amount := range p.Categories() {
		total = total.Add(amount)
	}
	p.TotalAcquisitionCost = total
	return p
}

// AggregateCapitalExpenditures totals capital improvement items per MACRS
// category and overall. Each item's TotalCost is recomputed from
// UnitCost x Quantity so an inconsistently constructed item cannot skew the
// totals. The returned aggregate always carries all six category keys and
// fully replaces any previous aggregate.
func AggregateCapitalExpenditures(items []domain.CapexItem) domain.CapitalExpenditures {
	totals := make(map[domain.MACRSCategory]decimal.Decimal, len(domain.MACRSCategories))
	for _, c := range domain.MACRSCategories {
		totals[c] = decimal.Zero
	}

	grand := decimal.Zero
	normalized := make([]domain.CapexItem, len(items))
	for i, item := range items {
		item.TotalCost = item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		normalized[i] = item

		totals[item.Category] = totals[item.Category].Add(item.TotalCost)
		grand = grand.Add(item.TotalCost)
	}

	return domain.CapitalExpenditures{
		Items:           normalized,
		TotalByCategory: totals,
		GrandTotal:      grand,
	}
}
