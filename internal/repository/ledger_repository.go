package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"logistics-web/internal/models"
)

type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) FindAll(source string) ([]models.CurrencyLedgerEntry, error) {
	var entries []models.CurrencyLedgerEntry

	whereClause := ""
	args := []interface{}{}
	if source != "" {
		whereClause = "WHERE source = ?"
		args = append(args, source)
	}

	query := fmt.Sprintf("SELECT * FROM ledger_entries %s ORDER BY entry_date DESC, id DESC", whereClause)
	err := r.db.Select(&entries, query, args...)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *LedgerRepository) Create(entry *models.CurrencyLedgerEntry) error {
	query := `INSERT INTO ledger_entries (type, amount, currency, source, description, entry_date)
	          VALUES (:type, :amount, :currency, :source, :description, :entry_date)`
	result, err := r.db.NamedExec(query, entry)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	entry.ID = int(id)
	return nil
}

func (r *LedgerRepository) Delete(id int) error {
	query := "DELETE FROM ledger_entries WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}
