package repository

import (
	"context"
	"time"

	"rentalops-backend/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	ListIDs(ctx context.Context) ([]int32, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int32) error

	// UpdateRentedQty persists a recomputed committed count. Only the stock
	// ledger calls this.
	UpdateRentedQty(ctx context.Context, id int32, rentedQty int32) error
	CountRentalReferences(ctx context.Context, id int32) (int32, error)
}

type RentalRepository interface {
	// Create inserts the rental and its items atomically.
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	// ReplaceItems swaps the rental's item list atomically.
	ReplaceItems(ctx context.Context, rentalID int32, items []domain.RentalItem) error
	List(ctx context.Context, personID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)

	// SumCommittedQty sums item quantities for one equipment across rentals
	// whose status still occupies stock.
	SumCommittedQty(ctx context.Context, equipmentID int32) (int32, error)
}

type RouteRepository interface {
	// CreateWithStops persists the route, its stops, and the per-leg driver
	// assignment on each rental in a single transaction. A stop-exclusivity
	// conflict surfaces as *domain.StopAlreadyAssignedError and rolls back
	// the whole batch.
	CreateWithStops(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id int32) (*domain.Route, error)
	ListByDate(ctx context.Context, date string) ([]domain.Route, error)
	UpdateStatus(ctx context.Context, routeID int32, status domain.RouteStatus) error

	GetStop(ctx context.Context, stopID int32) (*domain.RouteStop, error)
	// CompleteStop flips a PENDING stop to COMPLETED with its proof fields.
	// Returns *domain.StopAlreadyCompletedError if a concurrent completion won.
	CompleteStop(ctx context.Context, stopID int32, receiverName, signatureRef string, completedAt time.Time) error
	// RemoveStop deletes a pending stop and clears the matching driver field
	// on its rental in one transaction.
	RemoveStop(ctx context.Context, stopID int32) error
	// RemovePendingStopsForRental reverses every still-pending stop of one
	// rental, used when the rental is cancelled. It reports the leg types it
	// removed so the caller clears only those driver assignments; completed
	// stops stay and keep their driver attribution.
	RemovePendingStopsForRental(ctx context.Context, rentalID int32) ([]domain.StopType, error)

	CountPendingStops(ctx context.Context, routeID int32) (int32, error)
	HasStop(ctx context.Context, rentalID int32, stopType domain.StopType) (bool, error)

	// PendingDeliveries lists SCHEDULED rentals starting on date with no
	// DELIVERY stop; PendingReturns lists ACTIVE rentals ending on date with
	// no RETURN stop. Items are loaded so planners see what ships.
	PendingDeliveries(ctx context.Context, date string) ([]domain.Rental, error)
	PendingReturns(ctx context.Context, date string) ([]domain.Rental, error)
}

type DriverRepository interface {
	Create(ctx context.Context, d *domain.Driver) error
	GetByID(ctx context.Context, id int32) (*domain.Driver, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Driver, error)
	Update(ctx context.Context, d *domain.Driver) error
}
