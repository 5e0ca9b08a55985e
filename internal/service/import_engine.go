package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"logistics-web/internal/models"
	"logistics-web/internal/utils"
)

// ShipmentStore is the slice of persistence the import engine needs.
// Lookups return (nil, nil) for not-found.
type ShipmentStore interface {
	FindByReference(ref string) (*models.Shipment, error)
	Create(shipment *models.Shipment) error
	Update(shipment *models.Shipment) error
	UpdateStatus(id int, status string) error
	AppendEvent(shipmentID int, event, location string) error
}

type CustomerStore interface {
	FindByNormalizedName(nameNormalized string) (*models.Customer, error)
	Create(customer *models.Customer) error
}

// ImportEngine reconciles one uploaded tracking sheet against the shipment
// and customer tables. Rows are processed strictly in input order, one at a
// time; a failure on one row never aborts the run.
type ImportEngine struct {
	shipments     ShipmentStore
	customers     CustomerStore
	logger        *logrus.Logger
	progressEvery int
}

func NewImportEngine(shipments ShipmentStore, customers CustomerStore, logger *logrus.Logger) *ImportEngine {
	return &ImportEngine{
		shipments:     shipments,
		customers:     customers,
		logger:        logger,
		progressEvery: 5,
	}
}

// SetProgressInterval overrides the default five-row progress cadence.
func (e *ImportEngine) SetProgressInterval(n int) {
	if n > 0 {
		e.progressEvery = n
	}
}

// Run processes every row under the given mode. The progress callback (may
// be nil) fires every fifth row and once at the end; it is observational
// only. Cancellation is honored between rows; the partial result is returned
// alongside ctx.Err().
func (e *ImportEngine) Run(ctx context.Context, mode models.ImportMode, rows []models.ImportRow, progress func(percent float64)) (*models.ImportResult, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown import mode %q", mode)
	}

	result := &models.ImportResult{Total: len(rows)}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		normalized := NormalizeRow(row)

		switch mode {
		case models.ModeShipments:
			e.applyShipments(normalized, result)
		case models.ModeGateIn:
			e.applyGateIn(normalized, result)
		case models.ModeGateOut:
			e.applyGateOut(normalized, result)
		case models.ModeWaiting:
			e.applyWaiting(normalized, result)
		}

		if progress != nil && e.progressEvery > 0 && (i+1)%e.progressEvery == 0 {
			progress(float64(i+1) / float64(len(rows)) * 100)
		}
	}

	if progress != nil && len(rows) > 0 {
		progress(100)
	}
	return result, nil
}

// applyShipments creates or updates a shipment keyed by reference number,
// resolving (or creating) the customer first on the create path.
func (e *ImportEngine) applyShipments(row NormalizedRow, result *models.ImportResult) {
	ref := row.Reference()
	if ref == "" {
		e.errorf(result, "row skipped: missing reference number")
		return
	}

	existing, err := e.shipments.FindByReference(ref)
	if err != nil {
		e.errorf(result, "%s: lookup failed: %v", ref, err)
		return
	}

	if existing != nil {
		applyRowFields(existing, row)
		if err := e.shipments.Update(existing); err != nil {
			e.errorf(result, "%s: update failed: %v", ref, err)
			return
		}
		result.Updated++
		e.logf(result, "U", "%s updated", ref)
		return
	}

	customerID, err := e.findOrCreateCustomer(row.CustomerName(), result)
	if err != nil {
		e.errorf(result, "%s: customer resolution failed: %v", ref, err)
		return
	}

	shipment := &models.Shipment{
		ReferenceNo: ref,
		ContainerNo: row.ContainerNo(),
		CustomerID:  customerID,
		Origin:      row.Origin(),
		Destination: row.Destination(),
		CarrierName: row.CarrierName(),
		VesselName:  row.VesselName(),
		BookingNo:   row.BookingNo(),
		Status:      models.ShipmentStatusInTransit,
		ETA:         row.ETA(),
	}
	if err := e.shipments.Create(shipment); err != nil {
		e.errorf(result, "%s: create failed: %v", ref, err)
		return
	}
	result.Created++
	e.logf(result, "+", "%s created (%s -> %s)", ref, shipment.Origin, shipment.Destination)
}

// applyGateOut marks a shipment delivered. A missing shipment is an error
// here, unlike gate_in.
func (e *ImportEngine) applyGateOut(row NormalizedRow, result *models.ImportResult) {
	ref := row.Reference()
	if ref == "" {
		e.errorf(result, "row skipped: missing reference number")
		return
	}

	shipment, err := e.shipments.FindByReference(ref)
	if err != nil {
		e.errorf(result, "%s: lookup failed: %v", ref, err)
		return
	}
	if shipment == nil {
		e.errorf(result, "%s not found", ref)
		return
	}

	if err := e.shipments.UpdateStatus(shipment.ID, models.ShipmentStatusDelivered); err != nil {
		e.errorf(result, "%s: status update failed: %v", ref, err)
		return
	}
	if err := e.shipments.AppendEvent(shipment.ID, "Gate Out", shipment.Destination); err != nil {
		e.errorf(result, "%s: history append failed: %v", ref, err)
		return
	}
	result.Updated++
	e.logf(result, "OK", "%s delivered", ref)
}

// applyWaiting only reports; it performs no existence check and no persisted
// mutation. Requires both reference and container number.
func (e *ImportEngine) applyWaiting(row NormalizedRow, result *models.ImportResult) {
	ref := row.Reference()
	container := row.ContainerNo()
	if ref == "" || container == "" {
		e.errorf(result, "row skipped: waiting rows need reference and container number")
		return
	}

	if days := row.WaitingDays(); days > 7 {
		e.logf(result, "WARN", "%s (%s) waiting %d days", ref, container, days)
	}
	result.Updated++
}

// applyGateIn appends a gate-in event, or applies a reroute when the row
// carries a reroute marker. No-match and missing-reference rows are skipped
// silently; only persistence failures count as errors.
func (e *ImportEngine) applyGateIn(row NormalizedRow, result *models.ImportResult) {
	ref := row.Reference()
	if ref == "" {
		return
	}

	shipment, err := e.shipments.FindByReference(ref)
	if err != nil {
		e.errorf(result, "%s: lookup failed: %v", ref, err)
		return
	}
	if shipment == nil {
		return
	}

	if rerouted, newPod := row.Rerouted(); rerouted {
		if newPod != "" {
			shipment.Destination = newPod
		}
		shipment.Description = appendMarker(shipment.Description, "ROTA DEĞİŞTİ")
		if err := e.shipments.Update(shipment); err != nil {
			e.errorf(result, "%s: reroute failed: %v", ref, err)
			return
		}
		result.Updated++
		e.logf(result, "ROUTE", "%s rerouted to %s", ref, shipment.Destination)
		return
	}

	if err := e.shipments.AppendEvent(shipment.ID, "Gate In", shipment.Origin); err != nil {
		e.errorf(result, "%s: history append failed: %v", ref, err)
		return
	}
	result.Updated++
	e.logf(result, "IN", "%s gate in", ref)
}

// findOrCreateCustomer resolves by normalized name, creating a bare record
// when absent. Deduplication is exact on the normalized name only.
func (e *ImportEngine) findOrCreateCustomer(name string, result *models.ImportResult) (int, error) {
	normalized := utils.NormalizeName(name)

	customer, err := e.customers.FindByNormalizedName(normalized)
	if err != nil {
		return 0, err
	}
	if customer != nil {
		return customer.ID, nil
	}

	customer = &models.Customer{Name: name, NameNormalized: normalized}
	if err := e.customers.Create(customer); err != nil {
		return 0, err
	}
	e.logf(result, "C", "created customer %q", name)
	return customer.ID, nil
}

func applyRowFields(shipment *models.Shipment, row NormalizedRow) {
	if v := row.Origin(); v != "" {
		shipment.Origin = v
	}
	if v := row.Destination(); v != "" {
		shipment.Destination = v
	}
	if v := row.CarrierName(); v != "" {
		shipment.CarrierName = v
	}
	if v := row.VesselName(); v != "" {
		shipment.VesselName = v
	}
	if v := row.BookingNo(); v != "" {
		shipment.BookingNo = v
	}
	if v := row.ContainerNo(); v != "" {
		shipment.ContainerNo = v
	}
	if eta := row.ETA(); eta != nil {
		shipment.ETA = eta
	}
}

func appendMarker(description, marker string) string {
	if description == "" {
		return marker
	}
	return description + " | " + marker
}

func (e *ImportEngine) logf(result *models.ImportResult, tag, format string, args ...interface{}) {
	result.Log = append(result.Log, fmt.Sprintf("[%s] ", tag)+fmt.Sprintf(format, args...))
}

func (e *ImportEngine) errorf(result *models.ImportResult, format string, args ...interface{}) {
	result.Errors++
	e.logf(result, "!", format, args...)
	if e.logger != nil {
		e.logger.Warnf("import: "+format, args...)
	}
}
