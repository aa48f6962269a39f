package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrCapexDescriptionEmpty = errors.New("capital expenditure description is required")
	ErrCapexUnitCostNegative = errors.New("unit cost must not be negative")
	ErrCapexQuantityInvalid  = errors.New("quantity must be at least 1")
	ErrCapexCategoryInvalid  = errors.New("invalid MACRS category")
)

// MACRSCategory is a depreciation cost-recovery class. The enumeration is
// closed at six values; aggregation reports a total for every category even
// when no items fall into it.
type MACRSCategory string

const (
	MACRS27Half MACRSCategory = "27.5-year"
	MACRS15Year MACRSCategory = "15-year"
	MACRS7Year  MACRSCategory = "7-year"
	MACRS5Year  MACRSCategory = "5-year"
	MACRS3Year  MACRSCategory = "3-year"
	MACRS1Year  MACRSCategory = "1-year"
)

// MACRSCategories lists every category in display order.
var MACRSCategories = []MACRSCategory{
	MACRS27Half,
	MACRS15Year,
	MACRS7Year,
	MACRS5Year,
	MACRS3Year,
	MACRS1Year,
}

// Valid reports whether c is one of the six recognized categories.
func (c MACRSCategory) Valid() bool {
	switch c {
	case MACRS27Half, MACRS15Year, MACRS7Year, MACRS5Year, MACRS3Year, MACRS1Year:
		return true
	}
	return false
}

// CapexItem is a single capital improvement line. TotalCost is always
// recomputed as UnitCost x Quantity during aggregation, never trusted as
// entered.
type CapexItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    int             `json:"quantity"`
	Category    MACRSCategory   `json:"category"`
	TotalCost   decimal.Decimal `json:"totalCost"`
}

func (i *CapexItem) Validate() error {
	if i.Description == "" {
		return ErrCapexDescriptionEmpty
	}
	if i.UnitCost.IsNegative() {
		return ErrCapexUnitCostNegative
	}
	if i.Quantity < 1 {
		return ErrCapexQuantityInvalid
	}
	if !i.Category.Valid() {
		return ErrCapexCategoryInvalid
	}
	return nil
}

// CapitalExpenditures is the aggregated view over a collection of items.
// TotalByCategory carries an entry for all six categories.
type CapitalExpenditures struct {
	Items           []CapexItem                       `json:"items"`
	TotalByCategory map[MACRSCategory]decimal.Decimal `json:"totalByCategory"`
	GrandTotal      decimal.Decimal                   `json:"grandTotal"`
}
