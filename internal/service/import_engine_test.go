package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics-web/internal/models"
)

type fakeShipmentStore struct {
	byRef  map[string]*models.Shipment
	events map[int][]string
	nextID int

	findErr   error
	createErr error
	updateErr error
}

func newFakeShipmentStore() *fakeShipmentStore {
	return &fakeShipmentStore{
		byRef:  make(map[string]*models.Shipment),
		events: make(map[int][]string),
	}
}

func (f *fakeShipmentStore) FindByReference(ref string) (*models.Shipment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byRef[ref], nil
}

func (f *fakeShipmentStore) Create(shipment *models.Shipment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	shipment.ID = f.nextID
	f.byRef[shipment.ReferenceNo] = shipment
	return nil
}

func (f *fakeShipmentStore) Update(shipment *models.Shipment) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.byRef[shipment.ReferenceNo] = shipment
	return nil
}

func (f *fakeShipmentStore) UpdateStatus(id int, status string) error {
	for _, s := range f.byRef {
		if s.ID == id {
			s.Status = status
		}
	}
	return nil
}

func (f *fakeShipmentStore) AppendEvent(shipmentID int, event, location string) error {
	f.events[shipmentID] = append(f.events[shipmentID], event)
	return nil
}

type fakeCustomerStore struct {
	byName    map[string]*models.Customer
	nextID    int
	createErr error
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{byName: make(map[string]*models.Customer)}
}

func (f *fakeCustomerStore) FindByNormalizedName(name string) (*models.Customer, error) {
	return f.byName[name], nil
}

func (f *fakeCustomerStore) Create(customer *models.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	customer.ID = f.nextID
	f.byName[customer.NameNormalized] = customer
	return nil
}

func newTestEngine() (*ImportEngine, *fakeShipmentStore, *fakeCustomerStore) {
	shipments := newFakeShipmentStore()
	customers := newFakeCustomerStore()
	return NewImportEngine(shipments, customers, nil), shipments, customers
}

func scenarioRow() models.ImportRow {
	return models.ImportRow{
		"reference_no":  "LOG-2025-0001",
		"pol":           "Mersin",
		"pod":           "Magusa",
		"customer_name": "Acme Ltd",
	}
}

func TestShipmentsModeCreatesShipmentAndCustomer(t *testing.T) {
	engine, shipments, customers := newTestEngine()

	result, err := engine.Run(context.Background(), models.ModeShipments, []models.ImportRow{scenarioRow()}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Errors)

	shipment := shipments.byRef["LOG-2025-0001"]
	require.NotNil(t, shipment)
	assert.Equal(t, "Mersin", shipment.Origin)
	assert.Equal(t, "Magusa", shipment.Destination)
	assert.Equal(t, models.ShipmentStatusInTransit, shipment.Status)

	customer := customers.byName["acme ltd"]
	require.NotNil(t, customer)
	assert.Equal(t, "Acme Ltd", customer.Name)
	assert.Equal(t, customer.ID, shipment.CustomerID)
}

func TestShipmentsModeSecondRunUpdates(t *testing.T) {
	engine, _, _ := newTestEngine()
	rows := []models.ImportRow{scenarioRow()}

	first, err := engine.Run(context.Background(), models.ModeShipments, rows, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	second, err := engine.Run(context.Background(), models.ModeShipments, rows, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Updated)
	assert.Equal(t, 0, second.Errors)
}

func TestShipmentsModeMissingReference(t *testing.T) {
	engine, _, _ := newTestEngine()

	result, err := engine.Run(context.Background(), models.ModeShipments, []models.ImportRow{
		{"customer_name": "Acme Ltd"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Updated)
	require.Len(t, result.Log, 1)
	assert.Contains(t, result.Log[0], "[!]")
}

func TestShipmentsModeReusesExistingCustomer(t *testing.T) {
	engine, _, customers := newTestEngine()
	customers.byName["acme ltd"] = &models.Customer{ID: 42, Name: "Acme Ltd", NameNormalized: "acme ltd"}

	// Different casing and spacing still dedupes to the same customer.
	row := scenarioRow()
	row["customer_name"] = "  ACME   LTD "
	result, err := engine.Run(context.Background(), models.ModeShipments, []models.ImportRow{row}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, customers.nextID, "no new customer should be created")
}

func TestGateOutDeliversShipment(t *testing.T) {
	engine, shipments, _ := newTestEngine()

	_, err := engine.Run(context.Background(), models.ModeShipments, []models.ImportRow{scenarioRow()}, nil)
	require.NoError(t, err)

	result, err := engine.Run(context.Background(), models.ModeGateOut, []models.ImportRow{scenarioRow()}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Errors)

	shipment := shipments.byRef["LOG-2025-0001"]
	assert.Equal(t, models.ShipmentStatusDelivered, shipment.Status)
	require.Len(t, shipments.events[shipment.ID], 1)
	assert.Equal(t, "Gate Out", shipments.events[shipment.ID][0])
}

func TestGateOutNotFoundCountsError(t *testing.T) {
	engine, _, _ := newTestEngine()

	result, err := engine.Run(context.Background(), models.ModeGateOut, []models.ImportRow{
		{"reference_no": "MISSING-1"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 0, result.Updated)
	require.Len(t, result.Log, 1)
	assert.Contains(t, result.Log[0], "not found")
}

func TestGateInNoMatchIsSilent(t *testing.T) {
	engine, _, _ := newTestEngine()

	result, err := engine.Run(context.Background(), models.ModeGateIn, []models.ImportRow{
		{"reference_no": "MISSING-1"},
		{}, // no reference at all
	}, nil)
	require.NoError(t, err)

	// Silent skips: no counters, no log lines, conservation is strict.
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Errors)
	assert.Empty(t, result.Log)
}

func TestGateInAppendsEvent(t *testing.T) {
	engine, shipments, _ := newTestEngine()

	_, err := engine.Run(context.Background(), models.ModeShipments, []models.ImportRow{scenarioRow()}, nil)
	require.NoError(t, err)

	result, err := engine.Run(context.Background(), models.ModeGateIn, []models.ImportRow{scenarioRow()}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	shipment := shipments.byRef["LOG-2025-0001"]
	require.Len(t, shipments.events[shipment.ID], 1)
	assert.Equal(t, "Gate In", shipments.events[shipment.ID][0])
}

func TestGateInRerouteUpdatesDestination(t *testing.T) {
	engine, shipments, _ := newTestEngine()

	_, err := engine.Run(context.Background(), models.ModeShipments, []models.ImportRow{scenarioRow()}, nil)
	require.NoError(t, err)

	row := scenarioRow()
	row["new_pod"] = "Girne"
	result, err := engine.Run(context.Background(), models.ModeGateIn, []models.ImportRow{row}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	require.Len(t, result.Log, 1)
	assert.Contains(t, result.Log[0], "[ROUTE]")

	shipment := shipments.byRef["LOG-2025-0001"]
	assert.Equal(t, "Girne", shipment.Destination)
	assert.Contains(t, shipment.Description, "ROTA DEĞİŞTİ")
}

func TestWaitingWarnsPastThreshold(t *testing.T) {
	engine, _, _ := newTestEngine()

	result, err := engine.Run(context.Background(), models.ModeWaiting, []models.ImportRow{
		{"reference_no": "LOG-1", "container_no": "MSKU1", "waiting_days": "12"},
		{"reference_no": "LOG-2", "container_no": "MSKU2", "waiting_days": "3"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Updated)
	require.Len(t, result.Log, 1)
	assert.Contains(t, result.Log[0], "[WARN]")
	assert.Contains(t, result.Log[0], "12 days")
}

func TestWaitingRequiresReferenceAndContainer(t *testing.T) {
	engine, _, _ := newTestEngine()

	result, err := engine.Run(context.Background(), models.ModeWaiting, []models.ImportRow{
		{"reference_no": "LOG-1"},  // container missing
		{"container_no": "MSKU1"},  // reference missing
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Errors)
	assert.Equal(t, 0, result.Updated)
}

func TestPersistenceFailureDoesNotAbortRun(t *testing.T) {
	engine, shipments, _ := newTestEngine()
	shipments.createErr = errors.New("connection reset")

	rows := []models.ImportRow{scenarioRow()}
	row2 := scenarioRow()
	row2["reference_no"] = "LOG-2025-0002"
	rows = append(rows, row2)

	result, err := engine.Run(context.Background(), models.ModeShipments, rows, nil)
	require.NoError(t, err)

	// Both rows fail to create, both are counted, the run completes.
	assert.Equal(t, 2, result.Errors)
	assert.Equal(t, 0, result.Created)
	assert.Contains(t, result.Log[0], "connection reset")
}

func TestConservationInequality(t *testing.T) {
	engine, _, _ := newTestEngine()

	rows := []models.ImportRow{
		scenarioRow(),
		{},                           // error in shipments mode
		{"customer_name": "No Ref"},  // error in shipments mode
	}
	result, err := engine.Run(context.Background(), models.ModeShipments, rows, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.Created+result.Updated+result.Errors, result.Total)
	assert.Equal(t, 3, result.Created+result.Updated+result.Errors)
}

func TestProgressEveryFifthRow(t *testing.T) {
	engine, _, _ := newTestEngine()

	rows := make([]models.ImportRow, 12)
	for i := range rows {
		rows[i] = models.ImportRow{
			"reference_no":  fmt.Sprintf("LOG-%03d", i),
			"customer_name": "Acme Ltd",
		}
	}

	var reported []float64
	_, err := engine.Run(context.Background(), models.ModeShipments, rows, func(percent float64) {
		reported = append(reported, percent)
	})
	require.NoError(t, err)

	// Rows 5 and 10, plus the final 100%.
	require.Len(t, reported, 3)
	assert.InDelta(t, float64(5)/12*100, reported[0], 0.01)
	assert.InDelta(t, float64(10)/12*100, reported[1], 0.01)
	assert.Equal(t, float64(100), reported[2])
}

func TestRunHonorsCancellation(t *testing.T) {
	engine, _, _ := newTestEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Run(ctx, models.ModeShipments, []models.ImportRow{scenarioRow()}, nil)
	require.Error(t, err)
	assert.Equal(t, 0, result.Created)
}

func TestRunRejectsUnknownMode(t *testing.T) {
	engine, _, _ := newTestEngine()

	_, err := engine.Run(context.Background(), models.ImportMode("rerouted"), nil, nil)
	require.Error(t, err)
}
