package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository"
)

type rentalService struct {
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
	routeRepo     repository.RouteRepository
	stock         StockService
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	equipmentRepo repository.EquipmentRepository,
	routeRepo repository.RouteRepository,
	stock StockService,
) RentalService {
	return &rentalService{
		rentalRepo:    rentalRepo,
		equipmentRepo: equipmentRepo,
		routeRepo:     routeRepo,
		stock:         stock,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, personID int32, startDate, endDate, deliveryAddress string, items []domain.RentalItem) (*domain.Rental, error) {
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("rental needs at least one item")
	}
	if err := s.checkStock(ctx, items, nil); err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		PersonID:        personID,
		Status:          domain.RentalStatusScheduled,
		StartDate:       startDate,
		EndDate:         endDate,
		DeliveryAddress: deliveryAddress,
		Items:           items,
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}
	if err := s.stock.Recompute(ctx, rental.EquipmentIDs()...); err != nil {
		return nil, err
	}

	logger.Info("Rental created", "rental_id", rental.ID, "person_id", personID, "items", len(items))
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context, personID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.rentalRepo.List(ctx, personID, status, page, pageSize)
}

func (s *rentalService) ReplaceItems(ctx context.Context, rentalID int32, items []domain.RentalItem) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.Status.ConsumesStock() {
		return nil, fmt.Errorf("rental %d is %s, its items can no longer change", rentalID, rental.Status)
	}
	if len(items) == 0 {
		return nil, errors.New("rental needs at least one item")
	}

	// Quantities this rental already occupies stay available to it.
	own := make(map[int32]int32, len(rental.Items))
	for _, it := range rental.Items {
		own[it.EquipmentID] += it.Quantity
	}
	if err := s.checkStock(ctx, items, own); err != nil {
		return nil, err
	}

	// Recompute both the equipment the rental used to hold and the
	// equipment it holds now; a dropped line must release its stock.
	touched := rental.EquipmentIDs()
	if err := s.rentalRepo.ReplaceItems(ctx, rentalID, items); err != nil {
		return nil, err
	}
	rental.Items = items
	touched = append(touched, rental.EquipmentIDs()...)
	if err := s.stock.Recompute(ctx, touched...); err != nil {
		return nil, err
	}
	return rental, nil
}

// Reschedule moves a rental's date range. A leg that is already covered by a
// stop cannot have its date moved out from under the route; the operator must
// remove the stop first.
func (s *rentalService) Reschedule(ctx context.Context, rentalID int32, startDate, endDate string) (*domain.Rental, error) {
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.Status.ConsumesStock() {
		return nil, fmt.Errorf("rental %d is %s and cannot be rescheduled", rentalID, rental.Status)
	}

	if startDate != rental.StartDate {
		taken, err := s.routeRepo.HasStop(ctx, rentalID, domain.StopTypeDelivery)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.StopAlreadyAssignedError{RentalID: rentalID, Type: domain.StopTypeDelivery}
		}
	}
	if endDate != rental.EndDate {
		taken, err := s.routeRepo.HasStop(ctx, rentalID, domain.StopTypeReturn)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.StopAlreadyAssignedError{RentalID: rentalID, Type: domain.StopTypeReturn}
		}
	}

	rental.StartDate = startDate
	rental.EndDate = endDate
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) FinishRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	return s.transition(ctx, rentalID, domain.RentalStatusCompleted, false)
}

func (s *rentalService) CancelRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	return s.transition(ctx, rentalID, domain.RentalStatusCancelled, true)
}

func (s *rentalService) transition(ctx context.Context, rentalID int32, to domain.RentalStatus, dropPendingStops bool) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status == to {
		return rental, nil
	}
	if !domain.CanTransitionRental(rental.Status, to) {
		return nil, &domain.InvalidTransitionError{Entity: "rental", From: string(rental.Status), To: string(to)}
	}

	if dropPendingStops {
		removed, err := s.routeRepo.RemovePendingStopsForRental(ctx, rentalID)
		if err != nil {
			return nil, err
		}
		// Only the legs whose stops were actually reversed lose their driver;
		// a completed stop is history and keeps its attribution.
		for _, t := range removed {
			switch t {
			case domain.StopTypeDelivery:
				rental.DeliveryDriverID = nil
			case domain.StopTypeReturn:
				rental.ReturnDriverID = nil
			}
		}
	}

	rental.Status = to
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	// Both COMPLETED and CANCELLED leave the consuming set: release stock now.
	if err := s.stock.Recompute(ctx, rental.EquipmentIDs()...); err != nil {
		return nil, err
	}

	logger.Info("Rental transitioned", "rental_id", rentalID, "status", to)
	return rental, nil
}

// checkStock verifies every requested line fits into available stock. Lines
// for the same equipment are summed first so a rental with two lines for one
// item cannot slip past a per-line check. own holds quantities the caller's
// rental already occupies, which remain available to it.
func (s *rentalService) checkStock(ctx context.Context, items []domain.RentalItem, own map[int32]int32) error {
	requested := make(map[int32]int32, len(items))
	var order []int32
	for _, it := range items {
		if it.Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive, got %d for equipment %d", it.Quantity, it.EquipmentID)
		}
		if _, ok := requested[it.EquipmentID]; !ok {
			order = append(order, it.EquipmentID)
		}
		requested[it.EquipmentID] += it.Quantity
	}

	for _, id := range order {
		eq, err := s.equipmentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		available := eq.AvailableQty() + own[id]
		if requested[id] > available {
			return &domain.InsufficientStockError{
				EquipmentID: id,
				Requested:   requested[id],
				Available:   available,
			}
		}
	}
	return nil
}

func validateDateRange(startDate, endDate string) error {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return errors.New("end date must not be before start date")
	}
	return nil
}
