package models

import "time"

// Ledger entry types and sources.
const (
	LedgerTypeIncome  = "income"
	LedgerTypeExpense = "expense"

	LedgerSourceOffice       = "office"
	LedgerSourceShipmentFile = "shipment-file"
)

type CurrencyLedgerEntry struct {
	ID          int       `db:"id" json:"id"`
	Type        string    `db:"type" json:"type"`
	Amount      float64   `db:"amount" json:"amount"`
	Currency    string    `db:"currency" json:"currency"`
	Source      string    `db:"source" json:"source"`
	Description string    `db:"description" json:"description"`
	EntryDate   time.Time `db:"entry_date" json:"entry_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type LedgerEntryRequest struct {
	Type        string  `json:"type" validate:"required"`
	Amount      float64 `json:"amount" validate:"required"`
	Currency    string  `json:"currency"`
	Source      string  `json:"source"`
	Description string  `json:"description"`
	EntryDate   string  `json:"entry_date"`
}

// CurrencyNet is the rollup for one currency. Nets of different currencies
// are never summed together outside the labeled estimate.
type CurrencyNet struct {
	Currency string  `json:"currency"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Net      float64 `json:"net"`
}

// LedgerRollup is the display-ready aggregate for the finance page.
// Unclassified counts entries whose type is neither income nor expense.
type LedgerRollup struct {
	Currencies   []CurrencyNet `json:"currencies"`
	Unclassified int           `json:"unclassified"`
}

// BaseEstimate is an explicitly approximate conversion of all per-currency
// nets into the base currency using fixed illustrative rates.
type BaseEstimate struct {
	Currency    string  `json:"currency"`
	Total       float64 `json:"total"`
	Approximate bool    `json:"approximate"`
}
