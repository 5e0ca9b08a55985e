package repository

import (
	"github.com/jmoiron/sqlx"

	"logistics-web/internal/models"
)

type AdvanceRepository struct {
	db *sqlx.DB
}

func NewAdvanceRepository(db *sqlx.DB) *AdvanceRepository {
	return &AdvanceRepository{db: db}
}

func (r *AdvanceRepository) FindAll() ([]models.AdvanceRecord, error) {
	var advances []models.AdvanceRecord
	query := "SELECT * FROM advances ORDER BY date DESC, id DESC"
	err := r.db.Select(&advances, query)
	if err != nil {
		return nil, err
	}
	return advances, nil
}

func (r *AdvanceRepository) FindByEmployee(employeeID int) ([]models.AdvanceRecord, error) {
	var advances []models.AdvanceRecord
	query := "SELECT * FROM advances WHERE employee_id = ? ORDER BY date DESC"
	err := r.db.Select(&advances, query, employeeID)
	if err != nil {
		return nil, err
	}
	return advances, nil
}

func (r *AdvanceRepository) Create(advance *models.AdvanceRecord) error {
	query := `INSERT INTO advances (employee_id, amount, currency, date, status, note)
	          VALUES (:employee_id, :amount, :currency, :date, :status, :note)`
	result, err := r.db.NamedExec(query, advance)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	advance.ID = int(id)
	return nil
}

// Advances are immutable once persisted except for deletion.
func (r *AdvanceRepository) Delete(id int) error {
	query := "DELETE FROM advances WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}
