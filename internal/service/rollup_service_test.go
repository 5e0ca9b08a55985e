package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics-web/internal/models"
)

func TestClassifyAdvance(t *testing.T) {
	s := NewRollupService("TRY")

	tests := []struct {
		name   string
		taken  float64
		repaid float64
		want   string
	}{
		{"nothing taken", 0, 0, models.AdvanceSummaryPaidOff},
		{"taken, nothing repaid", 100, 0, models.AdvanceSummaryOwing},
		{"partially repaid", 100, 40, models.AdvanceSummaryPartial},
		{"fully repaid", 100, 100, models.AdvanceSummaryPaidOff},
		{"overpaid", 100, 150, models.AdvanceSummaryPaidOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ClassifyAdvance(tt.taken, tt.repaid))
		})
	}
}

func TestBuildAdvanceSummaries(t *testing.T) {
	s := NewRollupService("TRY")

	employees := []models.Employee{
		{ID: 1, Name: "Ali"},
		{ID: 2, Name: "Ayşe"},
		{ID: 3, Name: "Mehmet"},
	}
	advances := []models.AdvanceRecord{
		{EmployeeID: 1, Amount: 500, Status: models.AdvanceStatusApproved},
		{EmployeeID: 1, Amount: 300, Status: models.AdvanceStatusPending},
		{EmployeeID: 1, Amount: 1000, Status: models.AdvanceStatusRejected},
		{EmployeeID: 2, Amount: 200, Status: models.AdvanceStatusApproved},
	}
	payrolls := []models.PayrollRecord{
		{EmployeeID: 1, AdvanceDeduction: 300},
		{EmployeeID: 2, AdvanceDeduction: 250},
	}

	summaries := s.BuildAdvanceSummaries(employees, advances, payrolls)
	require.Len(t, summaries, 3)

	// Rejected advance excluded: 500 + 300 taken, 300 repaid.
	assert.Equal(t, "Ali", summaries[0].EmployeeName)
	assert.Equal(t, 800.0, summaries[0].TotalTaken)
	assert.Equal(t, 300.0, summaries[0].TotalRepaid)
	assert.Equal(t, 500.0, summaries[0].Remaining)
	assert.Equal(t, models.AdvanceSummaryPartial, summaries[0].Status)

	// Overpaid: remaining clamps at zero.
	assert.Equal(t, 0.0, summaries[1].Remaining)
	assert.Equal(t, models.AdvanceSummaryPaidOff, summaries[1].Status)

	// No advances at all.
	assert.Equal(t, models.AdvanceSummaryPaidOff, summaries[2].Status)
}

func TestBuildAdvanceSummariesIncludesStrayEmployees(t *testing.T) {
	s := NewRollupService("TRY")

	advances := []models.AdvanceRecord{
		{EmployeeID: 99, Amount: 400, Status: models.AdvanceStatusApproved},
	}

	summaries := s.BuildAdvanceSummaries(nil, advances, nil)
	require.Len(t, summaries, 1)
	assert.Equal(t, 99, summaries[0].EmployeeID)
	assert.Equal(t, models.AdvanceSummaryOwing, summaries[0].Status)
}

func TestRollupLedgerGroupsByCurrency(t *testing.T) {
	s := NewRollupService("TRY")

	entries := []models.CurrencyLedgerEntry{
		{Type: models.LedgerTypeIncome, Amount: 1000, Currency: "USD"},
		{Type: models.LedgerTypeExpense, Amount: 400, Currency: "USD"},
		{Type: models.LedgerTypeIncome, Amount: 250, Currency: "EUR"},
		{Type: models.LedgerTypeExpense, Amount: 75, Currency: ""}, // falls to base
	}

	rollup := s.RollupLedger(entries)
	require.Len(t, rollup.Currencies, 3)
	assert.Equal(t, 0, rollup.Unclassified)

	// Sorted by currency code.
	assert.Equal(t, "EUR", rollup.Currencies[0].Currency)
	assert.Equal(t, 250.0, rollup.Currencies[0].Net)

	assert.Equal(t, "TRY", rollup.Currencies[1].Currency)
	assert.Equal(t, -75.0, rollup.Currencies[1].Net)

	assert.Equal(t, "USD", rollup.Currencies[2].Currency)
	assert.Equal(t, 1000.0, rollup.Currencies[2].Income)
	assert.Equal(t, 400.0, rollup.Currencies[2].Expense)
	assert.Equal(t, 600.0, rollup.Currencies[2].Net)
}

func TestRollupLedgerCountsUnknownTypes(t *testing.T) {
	s := NewRollupService("TRY")

	entries := []models.CurrencyLedgerEntry{
		{Type: models.LedgerTypeIncome, Amount: 100, Currency: "TRY"},
		{Type: "transfer", Amount: 50, Currency: "TRY"},
		{Type: "", Amount: 10, Currency: "USD"},
	}

	rollup := s.RollupLedger(entries)
	assert.Equal(t, 2, rollup.Unclassified)

	// The unknown entries contribute nothing to any net.
	for _, net := range rollup.Currencies {
		if net.Currency == "TRY" {
			assert.Equal(t, 100.0, net.Net)
		}
		if net.Currency == "USD" {
			assert.Equal(t, 0.0, net.Net)
		}
	}
}

func TestEstimateInBaseIsAlwaysApproximate(t *testing.T) {
	s := NewRollupService("TRY")

	rollup := models.LedgerRollup{
		Currencies: []models.CurrencyNet{
			{Currency: "TRY", Net: 1000},
			{Currency: "USD", Net: 10},
		},
	}

	estimate := s.EstimateInBase(rollup)
	assert.True(t, estimate.Approximate)
	assert.Equal(t, "TRY", estimate.Currency)
	assert.InDelta(t, 1000+10*41.0, estimate.Total, 0.001)
}

func TestEstimateInBaseUnknownCurrencyParity(t *testing.T) {
	s := NewRollupService("TRY")

	rollup := models.LedgerRollup{
		Currencies: []models.CurrencyNet{
			{Currency: "CHF", Net: 500}, // no listed rate
		},
	}

	estimate := s.EstimateInBase(rollup)
	assert.InDelta(t, 500.0, estimate.Total, 0.001)
	assert.True(t, estimate.Approximate)
}

func TestRollupServiceDefaultsBaseCurrency(t *testing.T) {
	s := NewRollupService("")

	rollup := s.RollupLedger([]models.CurrencyLedgerEntry{
		{Type: models.LedgerTypeIncome, Amount: 5, Currency: ""},
	})
	require.Len(t, rollup.Currencies, 1)
	assert.Equal(t, "TRY", rollup.Currencies[0].Currency)
}
