package models

import "time"

// Shipment statuses as shown on the tracking page.
const (
	ShipmentStatusInTransit = "IN_TRANSIT"
	ShipmentStatusDelivered = "DELIVERED"
	ShipmentStatusWaiting   = "WAITING"
)

type Shipment struct {
	ID          int        `db:"id" json:"id"`
	ReferenceNo string     `db:"reference_no" json:"reference_no"`
	ContainerNo string     `db:"container_no" json:"container_no"`
	CustomerID  int        `db:"customer_id" json:"customer_id"`
	Origin      string     `db:"origin" json:"origin"`
	Destination string     `db:"destination" json:"destination"`
	CarrierName string     `db:"carrier_name" json:"carrier_name"`
	VesselName  string     `db:"vessel_name" json:"vessel_name"`
	BookingNo   string     `db:"booking_no" json:"booking_no"`
	Status      string     `db:"status" json:"status"`
	ETA         *time.Time `db:"eta" json:"eta"`
	Description string     `db:"description" json:"description"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ShipmentEvent is one line of a shipment's tracking history.
type ShipmentEvent struct {
	ID         int       `db:"id" json:"id"`
	ShipmentID int       `db:"shipment_id" json:"shipment_id"`
	Event      string    `db:"event" json:"event"`
	Location   string    `db:"location" json:"location"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type ShipmentRequest struct {
	ReferenceNo string `json:"reference_no" validate:"required"`
	ContainerNo string `json:"container_no"`
	CustomerID  int    `json:"customer_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	CarrierName string `json:"carrier_name"`
	VesselName  string `json:"vessel_name"`
	BookingNo   string `json:"booking_no"`
	Status      string `json:"status"`
	ETA         string `json:"eta"`
	Description string `json:"description"`
}

// TrackingView is the payload for the public tracking page.
type TrackingView struct {
	Shipment Shipment        `json:"shipment"`
	Events   []ShipmentEvent `json:"events"`
}
