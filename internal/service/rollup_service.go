package service

import (
	"sort"

	"logistics-web/internal/models"
)

// Fixed illustrative TRY rates used only by the labeled estimate. Never a
// source of authoritative numbers.
var approximateRates = map[string]float64{
	"TRY": 1,
	"USD": 41.0,
	"EUR": 44.5,
	"GBP": 52.0,
}

// RollupService computes the derived financial aggregates: per-employee
// advance positions and per-currency ledger nets. Everything here is a pure
// recomputation over persisted records; nothing is stored back.
type RollupService struct {
	baseCurrency string
}

func NewRollupService(baseCurrency string) *RollupService {
	if baseCurrency == "" {
		baseCurrency = "TRY"
	}
	return &RollupService{baseCurrency: baseCurrency}
}

// ClassifyAdvance maps every (taken, repaid) pair to exactly one status.
// Remaining debt is clamped at zero, so overpayment is still "Bitti".
func (s *RollupService) ClassifyAdvance(totalTaken, totalRepaid float64) string {
	remaining := totalTaken - totalRepaid
	if remaining <= 0 {
		return models.AdvanceSummaryPaidOff
	}
	if totalRepaid > 0 {
		return models.AdvanceSummaryPartial
	}
	return models.AdvanceSummaryOwing
}

// BuildAdvanceSummaries nets advances given against payroll deductions per
// employee. Rejected advances never count toward debt.
func (s *RollupService) BuildAdvanceSummaries(
	employees []models.Employee,
	advances []models.AdvanceRecord,
	payrolls []models.PayrollRecord,
) []models.EmployeeAdvanceSummary {
	taken := make(map[int]float64)
	for _, adv := range advances {
		if adv.Status == models.AdvanceStatusRejected {
			continue
		}
		taken[adv.EmployeeID] += adv.Amount
	}

	repaid := make(map[int]float64)
	for _, p := range payrolls {
		repaid[p.EmployeeID] += p.AdvanceDeduction
	}

	names := make(map[int]string, len(employees))
	order := make([]int, 0, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.Name
		order = append(order, emp.ID)
	}
	// Advances for employees missing from the roster still show up.
	strays := []int{}
	for id := range taken {
		if _, ok := names[id]; !ok {
			names[id] = ""
			strays = append(strays, id)
		}
	}
	sort.Ints(strays)
	order = append(order, strays...)

	summaries := make([]models.EmployeeAdvanceSummary, 0, len(order))
	for _, id := range order {
		t, r := taken[id], repaid[id]
		remaining := t - r
		if remaining < 0 {
			remaining = 0
		}
		summaries = append(summaries, models.EmployeeAdvanceSummary{
			EmployeeID:   id,
			EmployeeName: names[id],
			TotalTaken:   t,
			TotalRepaid:  r,
			Remaining:    remaining,
			Status:       s.ClassifyAdvance(t, r),
		})
	}
	return summaries
}

// RollupLedger groups entries by exact currency; no cross-currency math
// happens here. Entries without a currency fall into the base currency.
// Entries with an unknown type are counted, never silently dropped.
func (s *RollupService) RollupLedger(entries []models.CurrencyLedgerEntry) models.LedgerRollup {
	byCurrency := make(map[string]*models.CurrencyNet)
	unclassified := 0

	for _, entry := range entries {
		currency := entry.Currency
		if currency == "" {
			currency = s.baseCurrency
		}

		net, ok := byCurrency[currency]
		if !ok {
			net = &models.CurrencyNet{Currency: currency}
			byCurrency[currency] = net
		}

		switch entry.Type {
		case models.LedgerTypeIncome:
			net.Income += entry.Amount
		case models.LedgerTypeExpense:
			net.Expense += entry.Amount
		default:
			unclassified++
			continue
		}
		net.Net = net.Income - net.Expense
	}

	currencies := make([]models.CurrencyNet, 0, len(byCurrency))
	for _, net := range byCurrency {
		currencies = append(currencies, *net)
	}
	sort.Slice(currencies, func(i, j int) bool {
		return currencies[i].Currency < currencies[j].Currency
	})

	return models.LedgerRollup{Currencies: currencies, Unclassified: unclassified}
}

// EstimateInBase converts all per-currency nets into the base currency with
// fixed illustrative rates. The result is always labeled approximate;
// currencies without a listed rate fall back to parity.
func (s *RollupService) EstimateInBase(rollup models.LedgerRollup) models.BaseEstimate {
	baseRate, ok := approximateRates[s.baseCurrency]
	if !ok {
		baseRate = 1
	}

	total := 0.0
	for _, net := range rollup.Currencies {
		rate, ok := approximateRates[net.Currency]
		if !ok {
			rate = baseRate
		}
		total += net.Net * rate / baseRate
	}

	return models.BaseEstimate{
		Currency:    s.baseCurrency,
		Total:       total,
		Approximate: true,
	}
}
