package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"logistics-web/internal/models"
)

type ShipmentRepository struct {
	db *sqlx.DB
}

func NewShipmentRepository(db *sqlx.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// FindByReference looks up a shipment by its tracking reference.
// Returns (nil, nil) when no shipment exists; not-found is a normal outcome
// for the import reconciler, not an error.
func (r *ShipmentRepository) FindByReference(ref string) (*models.Shipment, error) {
	var shipment models.Shipment
	query := "SELECT * FROM shipments WHERE reference_no = ? LIMIT 1"
	err := r.db.Get(&shipment, query, ref)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *ShipmentRepository) FindByID(id int) (*models.Shipment, error) {
	var shipment models.Shipment
	query := "SELECT * FROM shipments WHERE id = ? LIMIT 1"
	err := r.db.Get(&shipment, query, id)
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *ShipmentRepository) FindAll(limit, offset int, search string) ([]models.Shipment, int, error) {
	var shipments []models.Shipment
	var total int

	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE reference_no LIKE ? OR container_no LIKE ? OR booking_no LIKE ?"
		searchPattern := "%" + search + "%"
		args = append(args, searchPattern, searchPattern, searchPattern)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM shipments %s", whereClause)
	err := r.db.Get(&total, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT * FROM shipments %s ORDER BY created_at DESC LIMIT ? OFFSET ?", whereClause)
	args = append(args, limit, offset)
	err = r.db.Select(&shipments, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return shipments, total, nil
}

func (r *ShipmentRepository) Create(shipment *models.Shipment) error {
	query := `INSERT INTO shipments (reference_no, container_no, customer_id, origin, destination,
	          carrier_name, vessel_name, booking_no, status, eta, description)
	          VALUES (:reference_no, :container_no, :customer_id, :origin, :destination,
	          :carrier_name, :vessel_name, :booking_no, :status, :eta, :description)`
	result, err := r.db.NamedExec(query, shipment)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	shipment.ID = int(id)
	return nil
}

func (r *ShipmentRepository) Update(shipment *models.Shipment) error {
	query := `UPDATE shipments SET container_no = :container_no, customer_id = :customer_id,
	          origin = :origin, destination = :destination, carrier_name = :carrier_name,
	          vessel_name = :vessel_name, booking_no = :booking_no, status = :status,
	          eta = :eta, description = :description
	          WHERE id = :id`
	_, err := r.db.NamedExec(query, shipment)
	return err
}

func (r *ShipmentRepository) UpdateStatus(id int, status string) error {
	query := "UPDATE shipments SET status = ? WHERE id = ?"
	_, err := r.db.Exec(query, status, id)
	return err
}

func (r *ShipmentRepository) Delete(id int) error {
	query := "DELETE FROM shipments WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}

// AppendEvent adds a history line to a shipment's tracking timeline.
func (r *ShipmentRepository) AppendEvent(shipmentID int, event, location string) error {
	query := "INSERT INTO shipment_events (shipment_id, event, location) VALUES (?, ?, ?)"
	_, err := r.db.Exec(query, shipmentID, event, location)
	return err
}

func (r *ShipmentRepository) GetEvents(shipmentID int) ([]models.ShipmentEvent, error) {
	var events []models.ShipmentEvent
	query := "SELECT * FROM shipment_events WHERE shipment_id = ? ORDER BY created_at ASC, id ASC"
	err := r.db.Select(&events, query, shipmentID)
	if err != nil {
		return nil, err
	}
	return events, nil
}
