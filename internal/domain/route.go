package domain

import "time"

type RouteStatus string

const (
	RouteStatusPlanned    RouteStatus = "PLANNED"
	RouteStatusInProgress RouteStatus = "IN_PROGRESS"
	RouteStatusCompleted  RouteStatus = "COMPLETED"
)

type StopType string

const (
	StopTypeDelivery StopType = "DELIVERY"
	StopTypeReturn   StopType = "RETURN"
)

type StopStatus string

const (
	StopStatusPending   StopStatus = "PENDING"
	StopStatusCompleted StopStatus = "COMPLETED"
)

type Route struct {
	ID       int32       `json:"id"`
	DriverID int32       `json:"driver_id"`
	Date     string      `json:"date"`
	Status   RouteStatus `json:"status"`
	// Stops are ordered by sequence, a dense 1..N walk unique per route.
	Stops     []RouteStop `json:"stops"`
	CreatedOn string      `json:"created_on"`
	UpdatedOn string      `json:"updated_on"`
}

type RouteStop struct {
	ID       int32      `json:"id"`
	RouteID  int32      `json:"route_id"`
	RentalID int32      `json:"rental_id"`
	Type     StopType   `json:"type"`
	Sequence int32      `json:"sequence"`
	Status   StopStatus `json:"status"`
	// Proof-of-delivery fields, captured on completion.
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	ReceiverName string     `json:"receiver_name"`
	SignatureRef string     `json:"signature_ref"`
}

// Job is a delivery or return obligation implied by a rental's start or end
// date that has not been assigned to any route yet. A same-day rental yields
// one job per leg, each independently assignable.
type Job struct {
	Rental Rental   `json:"rental"`
	Type   StopType `json:"type"`
}
