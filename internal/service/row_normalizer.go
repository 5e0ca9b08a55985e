package service

import (
	"strconv"
	"strings"
	"time"

	"logistics-web/internal/models"
)

// NormalizedRow is an ImportRow with every key lowercased and spaces
// replaced by underscores. Lookups go through ordered synonym lists so the
// importer tolerates the header variants seen in ShipsGo exports.
type NormalizedRow map[string]string

// NormalizeRow never fails; keys that match nothing downstream simply never
// get looked up.
func NormalizeRow(row models.ImportRow) NormalizedRow {
	normalized := make(NormalizedRow, len(row))
	for key, value := range row {
		key = strings.ToLower(strings.TrimSpace(key))
		key = strings.ReplaceAll(key, " ", "_")
		normalized[key] = strings.TrimSpace(value)
	}
	return normalized
}

// First returns the value of the first key with a non-empty value.
func (n NormalizedRow) First(keys ...string) string {
	for _, key := range keys {
		if v := n[key]; v != "" {
			return v
		}
	}
	return ""
}

func (n NormalizedRow) Reference() string {
	return n.First("reference_no", "ref_no", "shipment_ref", "booking_no")
}

func (n NormalizedRow) ContainerNo() string {
	return n.First("container_no", "container_number")
}

// CustomerName falls back to a placeholder so the shipments branch can
// always resolve a customer.
func (n NormalizedRow) CustomerName() string {
	if name := n.First("customer_name", "notify_party"); name != "" {
		return name
	}
	return "Unknown Customer"
}

func (n NormalizedRow) Origin() string {
	return n.First("pol", "origin")
}

func (n NormalizedRow) Destination() string {
	return n.First("pod", "destination")
}

func (n NormalizedRow) CarrierName() string { return n["carrier_name"] }
func (n NormalizedRow) VesselName() string  { return n["vessel_name"] }
func (n NormalizedRow) BookingNo() string   { return n["booking_no"] }

// ETA parses leniently; an invalid or missing date is nil, never fatal.
func (n NormalizedRow) ETA() *time.Time {
	value := n["eta"]
	if value == "" {
		return nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil
	}
	return &t
}

// WaitingDays is 0 when the column is absent or not a number.
func (n NormalizedRow) WaitingDays() int {
	value := n.First("waiting_days", "days_waiting", "days")
	days, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return days
}

// Rerouted reports whether the row carries a reroute marker, and the new
// destination if one was given.
func (n NormalizedRow) Rerouted() (bool, string) {
	newPod := n["new_pod"]
	if newPod != "" {
		return true, newPod
	}
	switch strings.ToLower(n["is_rerouted"]) {
	case "1", "true", "yes", "evet":
		return true, ""
	}
	return false, ""
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"01-02-06",
	time.RFC3339,
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
