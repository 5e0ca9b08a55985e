package repository

import (
	"github.com/jmoiron/sqlx"

	"logistics-web/internal/models"
)

type PayrollRepository struct {
	db *sqlx.DB
}

func NewPayrollRepository(db *sqlx.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

func (r *PayrollRepository) FindAll() ([]models.PayrollRecord, error) {
	var payrolls []models.PayrollRecord
	query := "SELECT * FROM payrolls ORDER BY period DESC, employee_id"
	err := r.db.Select(&payrolls, query)
	if err != nil {
		return nil, err
	}
	return payrolls, nil
}

func (r *PayrollRepository) FindByPeriod(period string) ([]models.PayrollRecord, error) {
	var payrolls []models.PayrollRecord
	query := "SELECT * FROM payrolls WHERE period = ? ORDER BY employee_id"
	err := r.db.Select(&payrolls, query, period)
	if err != nil {
		return nil, err
	}
	return payrolls, nil
}

func (r *PayrollRepository) Create(payroll *models.PayrollRecord) error {
	query := `INSERT INTO payrolls (employee_id, period, gross_salary, advance_deduction, net_paid, currency)
	          VALUES (:employee_id, :period, :gross_salary, :advance_deduction, :net_paid, :currency)`
	result, err := r.db.NamedExec(query, payroll)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	payroll.ID = int(id)
	return nil
}
