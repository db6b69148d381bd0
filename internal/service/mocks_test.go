package service

import (
	"context"
	"time"

	"rentalops-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}

func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) ListIDs(ctx context.Context) ([]int32, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}

func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}

func (m *MockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEquipmentRepo) UpdateRentedQty(ctx context.Context, id int32, rentedQty int32) error {
	args := m.Called(ctx, id, rentedQty)
	return args.Error(0)
}

func (m *MockEquipmentRepo) CountRentalReferences(ctx context.Context, id int32) (int32, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int32), args.Error(1)
}

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepo) ReplaceItems(ctx context.Context, rentalID int32, items []domain.RentalItem) error {
	args := m.Called(ctx, rentalID, items)
	return args.Error(0)
}

func (m *MockRentalRepo) List(ctx context.Context, personID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, personID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentalRepo) SumCommittedQty(ctx context.Context, equipmentID int32) (int32, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).(int32), args.Error(1)
}

type MockRouteRepo struct {
	mock.Mock
}

func (m *MockRouteRepo) CreateWithStops(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepo) GetByID(ctx context.Context, id int32) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepo) ListByDate(ctx context.Context, date string) ([]domain.Route, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepo) UpdateStatus(ctx context.Context, routeID int32, status domain.RouteStatus) error {
	args := m.Called(ctx, routeID, status)
	return args.Error(0)
}

func (m *MockRouteRepo) GetStop(ctx context.Context, stopID int32) (*domain.RouteStop, error) {
	args := m.Called(ctx, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteStop), args.Error(1)
}

func (m *MockRouteRepo) CompleteStop(ctx context.Context, stopID int32, receiverName, signatureRef string, completedAt time.Time) error {
	args := m.Called(ctx, stopID, receiverName, signatureRef, completedAt)
	return args.Error(0)
}

func (m *MockRouteRepo) RemoveStop(ctx context.Context, stopID int32) error {
	args := m.Called(ctx, stopID)
	return args.Error(0)
}

func (m *MockRouteRepo) RemovePendingStopsForRental(ctx context.Context, rentalID int32) ([]domain.StopType, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StopType), args.Error(1)
}

func (m *MockRouteRepo) CountPendingStops(ctx context.Context, routeID int32) (int32, error) {
	args := m.Called(ctx, routeID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockRouteRepo) HasStop(ctx context.Context, rentalID int32, stopType domain.StopType) (bool, error) {
	args := m.Called(ctx, rentalID, stopType)
	return args.Bool(0), args.Error(1)
}

func (m *MockRouteRepo) PendingDeliveries(ctx context.Context, date string) ([]domain.Rental, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRouteRepo) PendingReturns(ctx context.Context, date string) ([]domain.Rental, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

type MockDriverRepo struct {
	mock.Mock
}

func (m *MockDriverRepo) Create(ctx context.Context, d *domain.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepo) GetByID(ctx context.Context, id int32) (*domain.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverRepo) List(ctx context.Context, activeOnly bool) ([]domain.Driver, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Driver), args.Error(1)
}

func (m *MockDriverRepo) Update(ctx context.Context, d *domain.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) Recompute(ctx context.Context, equipmentIDs ...int32) error {
	args := m.Called(ctx, equipmentIDs)
	return args.Error(0)
}

func (m *MockStockService) AvailableQty(ctx context.Context, equipmentID int32) (int32, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).(int32), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRouteAssignmentNotification(ctx context.Context, driverEmail, driverName, date string, stopCount int) error {
	args := m.Called(ctx, driverEmail, driverName, date, stopCount)
	return args.Error(0)
}

func (m *MockEmailService) SendReturnReminderNotification(ctx context.Context, driverEmail, driverName, date string, rentalIDs []int32) error {
	args := m.Called(ctx, driverEmail, driverName, date, rentalIDs)
	return args.Error(0)
}
