package service

import (
	"context"
	"testing"

	"rentalops-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRentalServiceForTest() (RentalService, *MockRentalRepo, *MockEquipmentRepo, *MockRouteRepo, *MockStockService) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	routeRepo := new(MockRouteRepo)
	stock := new(MockStockService)
	svc := NewRentalService(rentalRepo, equipmentRepo, routeRepo, stock)
	return svc, rentalRepo, equipmentRepo, routeRepo, stock
}

func TestCreateRental(t *testing.T) {
	items := []domain.RentalItem{{EquipmentID: 1, Quantity: 3, UnitPriceCents: 1500}}

	t.Run("success creates a SCHEDULED rental and recomputes stock", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, _, stock := newRentalServiceForTest()

		equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.Equipment{ID: 1, TotalQty: 5, RentedQty: 0}, nil)
		rentalRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusScheduled && len(r.Items) == 1
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Rental).ID = 10
		}).Return(nil)
		stock.On("Recompute", mock.Anything, []int32{1}).Return(nil)

		rental, err := svc.CreateRental(context.Background(), 7, "2026-09-10", "2026-09-12", "12 Harbor Rd", items)

		require.NoError(t, err)
		assert.Equal(t, int32(10), rental.ID)
		assert.Equal(t, domain.RentalStatusScheduled, rental.Status)
		stock.AssertExpectations(t)
	})

	t.Run("oversell is rejected before anything is written", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, _, _ := newRentalServiceForTest()

		equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.Equipment{ID: 1, TotalQty: 5, RentedQty: 3}, nil)

		_, err := svc.CreateRental(context.Background(), 7, "2026-09-10", "2026-09-12", "12 Harbor Rd", items)

		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int32(1), stockErr.EquipmentID)
		assert.Equal(t, int32(3), stockErr.Requested)
		assert.Equal(t, int32(2), stockErr.Available)
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lines for the same equipment are summed before the check", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, _, _ := newRentalServiceForTest()

		// Each line fits on its own; together they exceed stock.
		split := []domain.RentalItem{
			{EquipmentID: 1, Quantity: 3},
			{EquipmentID: 1, Quantity: 3},
		}
		equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.Equipment{ID: 1, TotalQty: 5, RentedQty: 0}, nil)

		_, err := svc.CreateRental(context.Background(), 7, "2026-09-10", "2026-09-12", "12 Harbor Rd", split)

		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int32(6), stockErr.Requested)
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		svc, _, _, _, _ := newRentalServiceForTest()
		_, err := svc.CreateRental(context.Background(), 7, "2026-09-10", "2026-09-12", "12 Harbor Rd", nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc, _, _, _, _ := newRentalServiceForTest()
		bad := []domain.RentalItem{{EquipmentID: 1, Quantity: 0}}
		_, err := svc.CreateRental(context.Background(), 7, "2026-09-10", "2026-09-12", "12 Harbor Rd", bad)
		assert.Error(t, err)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		svc, _, _, _, _ := newRentalServiceForTest()
		_, err := svc.CreateRental(context.Background(), 7, "2026-09-12", "2026-09-10", "12 Harbor Rd", items)
		assert.Error(t, err)
	})
}

func TestReplaceItems(t *testing.T) {
	t.Run("own quantities stay available to the rental", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, _, stock := newRentalServiceForTest()

		// Equipment fully booked by this rental; raising 4 -> 5 still fits.
		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.Rental{
			ID:     10,
			Status: domain.RentalStatusActive,
			Items:  []domain.RentalItem{{EquipmentID: 1, Quantity: 4}},
		}, nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.Equipment{ID: 1, TotalQty: 5, RentedQty: 4}, nil)
		newItems := []domain.RentalItem{{EquipmentID: 1, Quantity: 5}}
		rentalRepo.On("ReplaceItems", mock.Anything, int32(10), newItems).Return(nil)
		stock.On("Recompute", mock.Anything, []int32{1, 1}).Return(nil)

		rental, err := svc.ReplaceItems(context.Background(), 10, newItems)

		require.NoError(t, err)
		assert.Equal(t, newItems, rental.Items)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("dropped equipment is still recomputed", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, _, stock := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.Rental{
			ID:     10,
			Status: domain.RentalStatusScheduled,
			Items:  []domain.RentalItem{{EquipmentID: 1, Quantity: 2}},
		}, nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(2)).Return(&domain.Equipment{ID: 2, TotalQty: 3}, nil)
		newItems := []domain.RentalItem{{EquipmentID: 2, Quantity: 1}}
		rentalRepo.On("ReplaceItems", mock.Anything, int32(10), newItems).Return(nil)
		// Both the released equipment and the newly held one get rebuilt.
		stock.On("Recompute", mock.Anything, []int32{1, 2}).Return(nil)

		_, err := svc.ReplaceItems(context.Background(), 10, newItems)

		require.NoError(t, err)
		stock.AssertExpectations(t)
	})

	t.Run("terminal rental rejects item changes", func(t *testing.T) {
		svc, rentalRepo, _, _, _ := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.Rental{
			ID:     10,
			Status: domain.RentalStatusCompleted,
			Items:  []domain.RentalItem{{EquipmentID: 1, Quantity: 2}},
		}, nil)

		_, err := svc.ReplaceItems(context.Background(), 10, []domain.RentalItem{{EquipmentID: 1, Quantity: 1}})

		assert.Error(t, err)
		rentalRepo.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReschedule(t *testing.T) {
	base := func() *domain.Rental {
		return &domain.Rental{
			ID:        10,
			Status:    domain.RentalStatusScheduled,
			StartDate: "2026-09-10",
			EndDate:   "2026-09-12",
		}
	}

	t.Run("moves dates when no stop covers the changed leg", func(t *testing.T) {
		svc, rentalRepo, _, routeRepo, _ := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(base(), nil)
		routeRepo.On("HasStop", mock.Anything, int32(10), domain.StopTypeDelivery).Return(false, nil)
		routeRepo.On("HasStop", mock.Anything, int32(10), domain.StopTypeReturn).Return(false, nil)
		rentalRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.StartDate == "2026-09-11" && r.EndDate == "2026-09-14"
		})).Return(nil)

		rental, err := svc.Reschedule(context.Background(), 10, "2026-09-11", "2026-09-14")

		require.NoError(t, err)
		assert.Equal(t, "2026-09-11", rental.StartDate)
	})

	t.Run("changed start with an assigned delivery stop is rejected", func(t *testing.T) {
		svc, rentalRepo, _, routeRepo, _ := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(base(), nil)
		routeRepo.On("HasStop", mock.Anything, int32(10), domain.StopTypeDelivery).Return(true, nil)

		_, err := svc.Reschedule(context.Background(), 10, "2026-09-11", "2026-09-12")

		var assigned *domain.StopAlreadyAssignedError
		require.ErrorAs(t, err, &assigned)
		assert.Equal(t, domain.StopTypeDelivery, assigned.Type)
		rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unchanged leg is not checked", func(t *testing.T) {
		svc, rentalRepo, _, routeRepo, _ := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(base(), nil)
		routeRepo.On("HasStop", mock.Anything, int32(10), domain.StopTypeReturn).Return(false, nil)
		rentalRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Reschedule(context.Background(), 10, "2026-09-10", "2026-09-15")

		require.NoError(t, err)
		routeRepo.AssertNotCalled(t, "HasStop", mock.Anything, int32(10), domain.StopTypeDelivery)
	})

	t.Run("terminal rental cannot move", func(t *testing.T) {
		svc, rentalRepo, _, _, _ := newRentalServiceForTest()

		done := base()
		done.Status = domain.RentalStatusCancelled
		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(done, nil)

		_, err := svc.Reschedule(context.Background(), 10, "2026-09-11", "2026-09-12")
		assert.Error(t, err)
	})
}

func TestFinishRental(t *testing.T) {
	t.Run("active rental completes and releases stock", func(t *testing.T) {
		svc, rentalRepo, _, routeRepo, stock := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.Rental{
			ID:     10,
			Status: domain.RentalStatusActive,
			Items:  []domain.RentalItem{{EquipmentID: 1, Quantity: 3}},
		}, nil)
		rentalRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusCompleted
		})).Return(nil)
		stock.On("Recompute", mock.Anything, []int32{1}).Return(nil)

		rental, err := svc.FinishRental(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
		// An explicit finish leaves route history alone.
		routeRepo.AssertNotCalled(t, "RemovePendingStopsForRental", mock.Anything, mock.Anything)
		stock.AssertExpectations(t)
	})

	t.Run("finishing a completed rental is a no-op", func(t *testing.T) {
		svc, rentalRepo, _, _, stock := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.Rental{
			ID:     10,
			Status: domain.RentalStatusCompleted,
		}, nil)

		rental, err := svc.FinishRental(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
		rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		stock.AssertNotCalled(t, "Recompute", mock.Anything, mock.Anything)
	})

	t.Run("cancelled rental cannot finish", func(t *testing.T) {
		svc, rentalRepo, _, _, _ := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.Rental{
			ID:     10,
			Status: domain.RentalStatusCancelled,
		}, nil)

		_, err := svc.FinishRental(context.Background(), 10)

		var invalid *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestCancelRental(t *testing.T) {
	t.Run("cancelling drops pending stops and their driver assignments", func(t *testing.T) {
		svc, rentalRepo, _, routeRepo, stock := newRentalServiceForTest()

		driverID := int32(4)
		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.Rental{
			ID:               10,
			Status:           domain.RentalStatusScheduled,
			DeliveryDriverID: &driverID,
			Items:            []domain.RentalItem{{EquipmentID: 1, Quantity: 3}},
		}, nil)
		routeRepo.On("RemovePendingStopsForRental", mock.Anything, int32(10)).
			Return([]domain.StopType{domain.StopTypeDelivery}, nil)
		rentalRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusCancelled && r.DeliveryDriverID == nil && r.ReturnDriverID == nil
		})).Return(nil)
		stock.On("Recompute", mock.Anything, []int32{1}).Return(nil)

		rental, err := svc.CancelRental(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, rental.Status)
		routeRepo.AssertExpectations(t)
		stock.AssertExpectations(t)
	})

	t.Run("completed delivery keeps its driver attribution across cancel", func(t *testing.T) {
		svc, rentalRepo, _, routeRepo, stock := newRentalServiceForTest()

		// Early off-hire: delivered (delivery stop COMPLETED), return stop
		// still pending. Only the return leg is reversed.
		deliveryDriver := int32(4)
		returnDriver := int32(5)
		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.Rental{
			ID:               10,
			Status:           domain.RentalStatusActive,
			DeliveryDriverID: &deliveryDriver,
			ReturnDriverID:   &returnDriver,
			Items:            []domain.RentalItem{{EquipmentID: 1, Quantity: 3}},
		}, nil)
		routeRepo.On("RemovePendingStopsForRental", mock.Anything, int32(10)).
			Return([]domain.StopType{domain.StopTypeReturn}, nil)
		rentalRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusCancelled &&
				r.DeliveryDriverID != nil && *r.DeliveryDriverID == deliveryDriver &&
				r.ReturnDriverID == nil
		})).Return(nil)
		stock.On("Recompute", mock.Anything, []int32{1}).Return(nil)

		rental, err := svc.CancelRental(context.Background(), 10)

		require.NoError(t, err)
		require.NotNil(t, rental.DeliveryDriverID)
		assert.Equal(t, deliveryDriver, *rental.DeliveryDriverID)
		assert.Nil(t, rental.ReturnDriverID)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("completed rental cannot cancel", func(t *testing.T) {
		svc, rentalRepo, _, _, _ := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.Rental{
			ID:     10,
			Status: domain.RentalStatusCompleted,
		}, nil)

		_, err := svc.CancelRental(context.Background(), 10)

		var invalid *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &invalid)
	})
}
