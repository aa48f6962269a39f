package service

import (
	"testing"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealContingency() *domain.ContingencyPurchase {
	return &domain.ContingencyPurchase{
		PurchasePrice:      decimal.NewFromInt(450000),
		ContingencyPercent: decimal.NewFromInt(10),
		AfterRepairValue:   decimal.NewFromInt(520000),
	}
}

func acquisitionCosts(total int64) *domain.PurchaseCosts {
	p := SumPurchaseCosts(domain.PurchaseCosts{ClosingCost: decimal.NewFromInt(total)})
	return &p
}

func growthAssumptions(years int) *domain.AppreciationAssumptions {
	return &domain.AppreciationAssumptions{
		AnnualAppreciationRate:    decimal.NewFromInt(3),
		AnnualRentGrowthRate:      decimal.NewFromInt(2),
		AnnualExpenseIncreaseRate: decimal.NewFromInt(2),
		HoldingPeriodYears:        years,
	}
}

func TestComputeROI(t *testing.T) {
	result := ComputeROI(occupiedRent(), monthlyExpenses(600), financedMortgage(),
		dealContingency(), acquisitionCosts(5000), growthAssumptions(5))

	require.NotNil(t, result)

	assert.Equal(t, "95000.00", result.TotalInvestment.StringFixed(2))
	assert.Equal(t, "21300.00", result.YearOneNOI.StringFixed(2))
	// Cap rate = 21300/450000*100
	assert.InDelta(t, 4.7333, result.CapRate.InexactFloat64(), 0.001)

	// Year 0 seed plus five projected years
	require.Len(t, result.ProjectedCashFlows, 6)
	require.Len(t, result.ProjectedEquity, 5)
	assert.Equal(t, "-95000.00", result.ProjectedCashFlows[0].StringFixed(2))
}

func TestComputeROI_NilOnIncompleteInput(t *testing.T) {
	rent := occupiedRent()
	expenses := monthlyExpenses(600)
	mortgage := financedMortgage()
	contingency := dealContingency()
	costs := acquisitionCosts(5000)
	appreciation := growthAssumptions(5)

	assert.Nil(t, ComputeROI(rent, expenses, mortgage, nil, costs, appreciation))
	assert.Nil(t, ComputeROI(rent, expenses, mortgage, contingency, nil, appreciation))
	assert.Nil(t, ComputeROI(rent, expenses, nil, contingency, costs, appreciation))
	// Incomplete DSCR inputs propagate
	assert.Nil(t, ComputeROI(nil, expenses, mortgage, contingency, costs, appreciation))
}

func TestComputeROI_WithoutAppreciation(t *testing.T) {
	result := ComputeROI(occupiedRent(), monthlyExpenses(600), financedMortgage(),
		dealContingency(), acquisitionCosts(5000), nil)

	require.NotNil(t, result)
	require.Len(t, result.ProjectedCashFlows, 1)
	assert.Equal(t, "-95000.00", result.ProjectedCashFlows[0].StringFixed(2))
	assert.Empty(t, result.ProjectedEquity)
}

func TestComputeROI_SeedIsNegativeTotalInvestment(t *testing.T) {
	for _, years := range []int{1, 5, 30} {
		result := ComputeROI(occupiedRent(), monthlyExpenses(600), financedMortgage(),
			dealContingency(), acquisitionCosts(5000), growthAssumptions(years))
		require.NotNil(t, result)
		assert.True(t, result.ProjectedCashFlows[0].Equal(result.TotalInvestment.Neg()),
			"expected seed -totalInvestment for %d years", years)
	}
}

func TestComputeROI_Deterministic(t *testing.T) {
	first := ComputeROI(occupiedRent(), monthlyExpenses(600), financedMortgage(),
		dealContingency(), acquisitionCosts(5000), growthAssumptions(10))
	second := ComputeROI(occupiedRent(), monthlyExpenses(600), financedMortgage(),
		dealContingency(), acquisitionCosts(5000), growthAssumptions(10))

	require.NotNil(t, first)
	require.NotNil(t, second)
	require.Len(t, second.ProjectedCashFlows, len(first.ProjectedCashFlows))
	require.Len(t, second.ProjectedEquity, len(first.ProjectedEquity))

	for i := range first.ProjectedCashFlows {
		assert.True(t, first.ProjectedCashFlows[i].Equal(second.ProjectedCashFlows[i]),
			"cash flow year %d differs", i)
	}
	for i := range first.ProjectedEquity {
		assert.True(t, first.ProjectedEquity[i].Equal(second.ProjectedEquity[i]),
			"equity year %d differs", i)
	}
}

func TestComputeROI_MultiplicativeCompounding(t *testing.T) {
	// All-cash deal with no loan so year-5 equity is the property value
	mortgage := &domain.Mortgage{DownPaymentPercent: decimal.NewFromInt(100)}
	appreciation := &domain.AppreciationAssumptions{
		AnnualAppreciationRate:    decimal.NewFromInt(3),
		AnnualRentGrowthRate:      decimal.Zero,
		AnnualExpenseIncreaseRate: decimal.Zero,
		HoldingPeriodYears:        5,
	}

	result := ComputeROI(occupiedRent(), monthlyExpenses(600), mortgage,
		dealContingency(), acquisitionCosts(0), appreciation)

	require.NotNil(t, result)
	require.Len(t, result.ProjectedEquity, 5)

	// 520000 * 1.03^5, not 520000 * 1.15
	expected := decimal.NewFromInt(520000).Mul(decimal.NewFromFloat(1.03).Pow(decimal.NewFromInt(5)))
	assert.InDelta(t, expected.InexactFloat64(), result.ProjectedEquity[4].InexactFloat64(), 0.01)
}

func TestComputeROI_RemainingLoanClampedAtZero(t *testing.T) {
	// Tiny loan with a huge payment pays off immediately; equity must not
	// exceed the property value
	mortgage := &domain.Mortgage{
		InterestRate:       decimal.NewFromInt(5),
		LoanTermYears:      1,
		DownPaymentPercent: decimal.NewFromInt(99),
		LoanAmount:         decimal.NewFromInt(4500),
		MonthlyPayment:     decimal.NewFromInt(1000),
	}

	result := ComputeROI(occupiedRent(), monthlyExpenses(600), mortgage,
		dealContingency(), acquisitionCosts(0), growthAssumptions(3))

	require.NotNil(t, result)
	value := dealContingency().AfterRepairValue.Mul(decimal.NewFromFloat(1.03))
	assert.True(t, result.ProjectedEquity[0].LessThanOrEqual(value),
		"equity %s exceeds property value %s", result.ProjectedEquity[0].String(), value.String())
}
