package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrPurchasePriceNegative    = errors.New("purchase price must not be negative")
	ErrContingencyPercentRange  = errors.New("contingency percent must be between 0 and 50")
	ErrAfterRepairValueNegative = errors.New("after repair value must not be negative")
)

// PurchaseCosts is the fixed set of one-time and holding costs incurred
// before stabilized operation. TotalAcquisitionCost is derived.
type PurchaseCosts struct {
	ClosingCost                 decimal.Decimal `json:"closingCost"`
	HoldingCostsLoanWhileVacant decimal.Decimal `json:"holdingCostsLoanWhileVacant"`
	UtilitiesWhileVacant        decimal.Decimal `json:"utilitiesWhileVacant"`
	LeaseUpFee                  decimal.Decimal `json:"leaseUpFee"`
	GrassCuttingFeeWhileVacant  decimal.Decimal `json:"grassCuttingFeeWhileVacant"`
	InsuranceWhileVacant        decimal.Decimal `json:"insuranceWhileVacant"`
	PropertyTaxesWhileVacant    decimal.Decimal `json:"propertyTaxesWhileVacant"`

	// Derived
	TotalAcquisitionCost decimal.Decimal `json:"totalAcquisitionCost"`
}

// Categories returns the cost amounts in declaration order.
func (p *PurchaseCosts) Categories() []decimal.Decimal {
	return []decimal.Decimal{
		p.ClosingCost,
		p.HoldingCostsLoanWhileVacant,
		p.UtilitiesWhileVacant,
		p.LeaseUpFee,
		p.GrassCuttingFeeWhileVacant,
		p.InsuranceWhileVacant,
		p.PropertyTaxesWhileVacant,
	}
}

// ContingencyPurchase holds the negotiated price, the ARV estimate and the
// contingency reserve percentage. ContingencyAmount is derived.
type ContingencyPurchase struct {
	PurchasePrice      decimal.Decimal `json:"purchasePrice"`
	ContingencyPercent decimal.Decimal `json:"contingencyPercent"`
	AfterRepairValue   decimal.Decimal `json:"afterRepairValue"`

	// Derived
	ContingencyAmount decimal.Decimal `json:"contingencyAmount"`
}

func (c *ContingencyPurchase) Validate() error {
	if c.PurchasePrice.IsNegative() {
		return ErrPurchasePriceNegative
	}
	if c.ContingencyPercent.IsNegative() || c.ContingencyPercent.GreaterThan(decimal.NewFromInt(50)) {
		return ErrContingencyPercentRange
	}
	if c.AfterRepairValue.IsNegative() {
		return ErrAfterRepairValueNegative
	}
	return nil
}
