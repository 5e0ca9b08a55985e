package repository

import (
	"github.com/jmoiron/sqlx"

	"logistics-web/internal/models"
)

type EmployeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) FindAllActive() ([]models.Employee, error) {
	var employees []models.Employee
	query := "SELECT * FROM employees WHERE is_active = 1 ORDER BY name"
	err := r.db.Select(&employees, query)
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) FindByID(id int) (*models.Employee, error) {
	var employee models.Employee
	query := "SELECT * FROM employees WHERE id = ? LIMIT 1"
	err := r.db.Get(&employee, query, id)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) Create(employee *models.Employee) error {
	query := `INSERT INTO employees (name, position, salary, currency, is_active)
	          VALUES (:name, :position, :salary, :currency, :is_active)`
	result, err := r.db.NamedExec(query, employee)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	employee.ID = int(id)
	return nil
}
