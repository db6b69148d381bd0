package service

import (
	"context"

	"rentalops-backend/internal/domain"
)

// StockService is the stock ledger: the single writer of Equipment.RentedQty.
type StockService interface {
	// Recompute rebuilds the committed count for each distinct equipment id
	// from the rentals that currently hold stock. Idempotent.
	Recompute(ctx context.Context, equipmentIDs ...int32) error
	AvailableQty(ctx context.Context, equipmentID int32) (int32, error)
}

type EquipmentService interface {
	AddEquipment(ctx context.Context, eq *domain.Equipment) error
	GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error)
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	UpdateEquipment(ctx context.Context, eq *domain.Equipment) error
	DeleteEquipment(ctx context.Context, id int32) error
}

type RentalService interface {
	CreateRental(ctx context.Context, personID int32, startDate, endDate, deliveryAddress string, items []domain.RentalItem) (*domain.Rental, error)
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, personID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ReplaceItems(ctx context.Context, rentalID int32, items []domain.RentalItem) (*domain.Rental, error)
	Reschedule(ctx context.Context, rentalID int32, startDate, endDate string) (*domain.Rental, error)
	FinishRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
	CancelRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
}

// StopAssignment is one operator-selected leg to place on a new route.
type StopAssignment struct {
	RentalID int32           `json:"rental_id"`
	Type     domain.StopType `json:"type"`
	Sequence int32           `json:"sequence"`
}

type RouteService interface {
	// AvailableJobs returns the unassigned delivery and return obligations
	// for a date. Read-only.
	AvailableJobs(ctx context.Context, date string) (deliveries, returns []domain.Job, err error)
	CreateRoute(ctx context.Context, date string, driverID int32, stops []StopAssignment) (*domain.Route, error)
	GetRoute(ctx context.Context, id int32) (*domain.Route, error)
	ListRoutes(ctx context.Context, date string) ([]domain.Route, error)
	StartRoute(ctx context.Context, routeID int32) (*domain.Route, error)
	CompleteRoute(ctx context.Context, routeID int32) (*domain.Route, error)
	CompleteStop(ctx context.Context, stopID int32, receiverName, signatureRef string) (*domain.RouteStop, error)
	RemoveStop(ctx context.Context, stopID int32) error
}

type DriverService interface {
	AddDriver(ctx context.Context, d *domain.Driver) error
	GetDriver(ctx context.Context, id int32) (*domain.Driver, error)
	ListDrivers(ctx context.Context, activeOnly bool) ([]domain.Driver, error)
	UpdateDriver(ctx context.Context, d *domain.Driver) error
}

type EmailService interface {
	SendRouteAssignmentNotification(ctx context.Context, driverEmail, driverName, date string, stopCount int) error
	SendReturnReminderNotification(ctx context.Context, driverEmail, driverName, date string, rentalIDs []int32) error
}
