package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"logistics-web/internal/models"
)

func TestNormalizeRowKeysAndValues(t *testing.T) {
	row := NormalizeRow(models.ImportRow{
		"Reference No": " LOG-1 ",
		"POL":          "Mersin",
	})

	assert.Equal(t, "LOG-1", row["reference_no"])
	assert.Equal(t, "Mersin", row["pol"])
}

func TestReferenceSynonymOrder(t *testing.T) {
	row := NormalizedRow{"booking_no": "BK-1", "reference_no": "LOG-1"}
	assert.Equal(t, "LOG-1", row.Reference())

	// Booking number is the last-resort reference.
	row = NormalizedRow{"booking_no": "BK-1"}
	assert.Equal(t, "BK-1", row.Reference())
}

func TestCustomerNameDefault(t *testing.T) {
	assert.Equal(t, "Unknown Customer", NormalizedRow{}.CustomerName())
	assert.Equal(t, "Acme Ltd", NormalizedRow{"customer_name": "Acme Ltd"}.CustomerName())
	assert.Equal(t, "Notify Co", NormalizedRow{"notify_party": "Notify Co"}.CustomerName())
}

func TestETAParsing(t *testing.T) {
	eta := NormalizedRow{"eta": "2025-09-15"}.ETA()
	if assert.NotNil(t, eta) {
		assert.Equal(t, 2025, eta.Year())
		assert.Equal(t, 15, eta.Day())
	}

	// European layout.
	eta = NormalizedRow{"eta": "15.09.2025"}.ETA()
	if assert.NotNil(t, eta) {
		assert.Equal(t, 9, int(eta.Month()))
	}

	assert.Nil(t, NormalizedRow{"eta": "next tuesday"}.ETA())
	assert.Nil(t, NormalizedRow{}.ETA())
}

func TestWaitingDays(t *testing.T) {
	assert.Equal(t, 12, NormalizedRow{"waiting_days": "12"}.WaitingDays())
	assert.Equal(t, 3, NormalizedRow{"days": "3"}.WaitingDays())
	assert.Equal(t, 0, NormalizedRow{"waiting_days": "soon"}.WaitingDays())
	assert.Equal(t, 0, NormalizedRow{}.WaitingDays())
}

func TestRerouted(t *testing.T) {
	rerouted, pod := NormalizedRow{"new_pod": "Girne"}.Rerouted()
	assert.True(t, rerouted)
	assert.Equal(t, "Girne", pod)

	rerouted, pod = NormalizedRow{"is_rerouted": "evet"}.Rerouted()
	assert.True(t, rerouted)
	assert.Empty(t, pod)

	rerouted, _ = NormalizedRow{"is_rerouted": "no"}.Rerouted()
	assert.False(t, rerouted)

	rerouted, _ = NormalizedRow{}.Rerouted()
	assert.False(t, rerouted)
}
