package models

import "time"

// Advance statuses. Rejected advances never count toward an employee's debt.
const (
	AdvanceStatusApproved = "approved"
	AdvanceStatusPending  = "pending"
	AdvanceStatusRejected = "rejected"
)

// Repayment statuses shown on the advances page.
const (
	AdvanceSummaryPaidOff = "Bitti"
	AdvanceSummaryPartial = "Kısmi"
	AdvanceSummaryOwing   = "Borçlu"
)

type AdvanceRecord struct {
	ID         int       `db:"id" json:"id"`
	EmployeeID int       `db:"employee_id" json:"employee_id"`
	Amount     float64   `db:"amount" json:"amount"`
	Currency   string    `db:"currency" json:"currency"`
	Date       time.Time `db:"date" json:"date"`
	Status     string    `db:"status" json:"status"`
	Note       string    `db:"note" json:"note"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type AdvanceRequest struct {
	EmployeeID int     `json:"employee_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required"`
	Currency   string  `json:"currency"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Note       string  `json:"note"`
}

// PayrollRecord is one employee's pay for one period. AdvanceDeduction is
// the slice of salary withheld against outstanding advances.
type PayrollRecord struct {
	ID               int       `db:"id" json:"id"`
	EmployeeID       int       `db:"employee_id" json:"employee_id"`
	Period           string    `db:"period" json:"period"` // YYYY-MM
	GrossSalary      float64   `db:"gross_salary" json:"gross_salary"`
	AdvanceDeduction float64   `db:"advance_deduction" json:"advance_deduction"`
	NetPaid          float64   `db:"net_paid" json:"net_paid"`
	Currency         string    `db:"currency" json:"currency"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type PayrollRequest struct {
	EmployeeID       int     `json:"employee_id" validate:"required"`
	Period           string  `json:"period" validate:"required"`
	GrossSalary      float64 `json:"gross_salary"`
	AdvanceDeduction float64 `json:"advance_deduction"`
	Currency         string  `json:"currency"`
}

// EmployeeAdvanceSummary is derived on every load, never persisted.
type EmployeeAdvanceSummary struct {
	EmployeeID   int     `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	TotalTaken   float64 `json:"total_taken"`
	TotalRepaid  float64 `json:"total_repaid"`
	Remaining    float64 `json:"remaining"`
	Status       string  `json:"status"`
}
