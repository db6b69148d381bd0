package domain

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable wraps transient store failures. It is the only error
// kind a caller may reasonably retry; every other kind below is terminal for
// the request that produced it.
var ErrStorageUnavailable = errors.New("storage unavailable")

type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

type InsufficientStockError struct {
	EquipmentID int32
	Requested   int32
	Available   int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for equipment %d: requested %d, available %d",
		e.EquipmentID, e.Requested, e.Available)
}

// StopAlreadyAssignedError reports that a rental leg is already covered by a
// stop on some route. A (rental, leg) pair may hold at most one stop at a time.
type StopAlreadyAssignedError struct {
	RentalID int32
	Type     StopType
}

func (e *StopAlreadyAssignedError) Error() string {
	return fmt.Sprintf("rental %d already has a %s stop assigned", e.RentalID, e.Type)
}

type StopAlreadyCompletedError struct {
	StopID int32
}

func (e *StopAlreadyCompletedError) Error() string {
	return fmt.Sprintf("stop %d is already completed", e.StopID)
}

type RouteIncompleteError struct {
	RouteID      int32
	PendingStops int32
}

func (e *RouteIncompleteError) Error() string {
	return fmt.Sprintf("route %d still has %d pending stops", e.RouteID, e.PendingStops)
}

// InvalidTransitionError reports a status change outside the allowed graph
// for rentals or routes.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s status transition: %s -> %s", e.Entity, e.From, e.To)
}
