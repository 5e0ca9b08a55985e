package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"logistics-web/internal/models"
)

type CustomerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FindByNormalizedName looks up a customer by the normalized form of its
// name. Callers normalize first so bulk import and shipment import share one
// dedup policy. Returns (nil, nil) when no customer exists.
func (r *CustomerRepository) FindByNormalizedName(nameNormalized string) (*models.Customer, error) {
	var customer models.Customer
	query := "SELECT * FROM customers WHERE name_normalized = ? LIMIT 1"
	err := r.db.Get(&customer, query, nameNormalized)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) FindByID(id int) (*models.Customer, error) {
	var customer models.Customer
	query := "SELECT * FROM customers WHERE id = ? LIMIT 1"
	err := r.db.Get(&customer, query, id)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) FindAll(limit, offset int, search string) ([]models.Customer, int, error) {
	var customers []models.Customer
	var total int

	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE name LIKE ? OR email LIKE ?"
		searchPattern := "%" + search + "%"
		args = append(args, searchPattern, searchPattern)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customers %s", whereClause)
	err := r.db.Get(&total, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT * FROM customers %s ORDER BY name LIMIT ? OFFSET ?", whereClause)
	args = append(args, limit, offset)
	err = r.db.Select(&customers, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *CustomerRepository) Create(customer *models.Customer) error {
	query := `INSERT INTO customers (name, name_normalized, email, phone, address, tax_no)
	          VALUES (:name, :name_normalized, :email, :phone, :address, :tax_no)`
	result, err := r.db.NamedExec(query, customer)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	customer.ID = int(id)
	return nil
}

func (r *CustomerRepository) Update(customer *models.Customer) error {
	query := `UPDATE customers SET name = :name, name_normalized = :name_normalized,
	          email = :email, phone = :phone, address = :address, tax_no = :tax_no
	          WHERE id = :id`
	_, err := r.db.NamedExec(query, customer)
	return err
}

func (r *CustomerRepository) Delete(id int) error {
	query := "DELETE FROM customers WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}
