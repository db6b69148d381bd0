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

type routeService struct {
	routeRepo  repository.RouteRepository
	rentalRepo repository.RentalRepository
	driverRepo repository.DriverRepository
	stock      StockService
	emailSvc   EmailService
}

func NewRouteService(
	routeRepo repository.RouteRepository,
	rentalRepo repository.RentalRepository,
	driverRepo repository.DriverRepository,
	stock StockService,
	emailSvc EmailService,
) RouteService {
	return &routeService{
		routeRepo:  routeRepo,
		rentalRepo: rentalRepo,
		driverRepo: driverRepo,
		stock:      stock,
		emailSvc:   emailSvc,
	}
}

func (s *routeService) AvailableJobs(ctx context.Context, date string) ([]domain.Job, []domain.Job, error) {
	if err := validateDate(date); err != nil {
		return nil, nil, err
	}
	deliveries, err := s.routeRepo.PendingDeliveries(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	returns, err := s.routeRepo.PendingReturns(ctx, date)
	if err != nil {
		return nil, nil, err
	}

	dJobs := make([]domain.Job, 0, len(deliveries))
	for _, rt := range deliveries {
		dJobs = append(dJobs, domain.Job{Rental: rt, Type: domain.StopTypeDelivery})
	}
	rJobs := make([]domain.Job, 0, len(returns))
	for _, rt := range returns {
		rJobs = append(rJobs, domain.Job{Rental: rt, Type: domain.StopTypeReturn})
	}
	return dJobs, rJobs, nil
}

func (s *routeService) CreateRoute(ctx context.Context, date string, driverID int32, stops []StopAssignment) (*domain.Route, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, errors.New("route needs at least one stop")
	}
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !driver.Active {
		return nil, fmt.Errorf("driver %d is not active", driverID)
	}

	// Preflight so the common conflicts report the offending rental before a
	// transaction is opened. The unique constraint inside CreateWithStops
	// still closes the race against a concurrent planner.
	for _, a := range stops {
		if a.Type != domain.StopTypeDelivery && a.Type != domain.StopTypeReturn {
			return nil, fmt.Errorf("unknown stop type %q", a.Type)
		}
		if _, err := s.rentalRepo.GetByID(ctx, a.RentalID); err != nil {
			return nil, err
		}
		taken, err := s.routeRepo.HasStop(ctx, a.RentalID, a.Type)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.StopAlreadyAssignedError{RentalID: a.RentalID, Type: a.Type}
		}
	}

	route := &domain.Route{
		DriverID: driverID,
		Date:     date,
		Status:   domain.RouteStatusPlanned,
	}
	for _, a := range normalizeSequences(stops) {
		route.Stops = append(route.Stops, domain.RouteStop{
			RentalID: a.RentalID,
			Type:     a.Type,
			Sequence: a.Sequence,
			Status:   domain.StopStatusPending,
		})
	}
	if err := s.routeRepo.CreateWithStops(ctx, route); err != nil {
		return nil, err
	}
	logger.Info("Route created", "route_id", route.ID, "driver_id", driverID, "date", date, "stops", len(route.Stops))

	if driver.Email != "" {
		if err := s.emailSvc.SendRouteAssignmentNotification(ctx, driver.Email, driver.Name, date, len(route.Stops)); err != nil {
			logger.Warn("Failed to send route assignment email", "driver_id", driverID, "error", err)
		}
	}
	return route, nil
}

// normalizeSequences orders assignments into a dense 1..N walk. A valid 1..N
// permutation is respected; anything else (gaps, duplicates, zeros) falls back
// to input order. Stop order is advisory until execution starts, so a sloppy
// sequence is renumbered rather than rejected.
func normalizeSequences(stops []StopAssignment) []StopAssignment {
	n := len(stops)
	seen := make(map[int32]bool, n)
	valid := true
	for _, a := range stops {
		if a.Sequence < 1 || a.Sequence > int32(n) || seen[a.Sequence] {
			valid = false
			break
		}
		seen[a.Sequence] = true
	}

	out := make([]StopAssignment, n)
	if valid {
		for _, a := range stops {
			out[a.Sequence-1] = a
		}
	} else {
		copy(out, stops)
	}
	for i := range out {
		out[i].Sequence = int32(i + 1)
	}
	return out
}

func (s *routeService) GetRoute(ctx context.Context, id int32) (*domain.Route, error) {
	return s.routeRepo.GetByID(ctx, id)
}

func (s *routeService) ListRoutes(ctx context.Context, date string) ([]domain.Route, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return s.routeRepo.ListByDate(ctx, date)
}

func (s *routeService) StartRoute(ctx context.Context, routeID int32) (*domain.Route, error) {
	return s.transitionRoute(ctx, routeID, domain.RouteStatusInProgress)
}

func (s *routeService) CompleteRoute(ctx context.Context, routeID int32) (*domain.Route, error) {
	return s.transitionRoute(ctx, routeID, domain.RouteStatusCompleted)
}

func (s *routeService) transitionRoute(ctx context.Context, routeID int32, to domain.RouteStatus) (*domain.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionRoute(route.Status, to) {
		return nil, &domain.InvalidTransitionError{Entity: "route", From: string(route.Status), To: string(to)}
	}
	if to == domain.RouteStatusCompleted {
		pending, err := s.routeRepo.CountPendingStops(ctx, routeID)
		if err != nil {
			return nil, err
		}
		if pending > 0 {
			return nil, &domain.RouteIncompleteError{RouteID: routeID, PendingStops: pending}
		}
	}
	if err := s.routeRepo.UpdateStatus(ctx, routeID, to); err != nil {
		return nil, err
	}
	route.Status = to
	logger.Info("Route transitioned", "route_id", routeID, "status", to)
	return route, nil
}

func (s *routeService) CompleteStop(ctx context.Context, stopID int32, receiverName, signatureRef string) (*domain.RouteStop, error) {
	stop, err := s.routeRepo.GetStop(ctx, stopID)
	if err != nil {
		return nil, err
	}
	if stop.Status == domain.StopStatusCompleted {
		return nil, &domain.StopAlreadyCompletedError{StopID: stopID}
	}

	now := time.Now()
	if err := s.routeRepo.CompleteStop(ctx, stopID, receiverName, signatureRef, now); err != nil {
		return nil, err
	}
	stop.Status = domain.StopStatusCompleted
	stop.CompletedAt = &now
	stop.ReceiverName = receiverName
	stop.SignatureRef = signatureRef

	rental, err := s.rentalRepo.GetByID(ctx, stop.RentalID)
	if err != nil {
		return nil, err
	}
	next, ok := domain.NextStatusOnStopCompletion(rental.Status, stop.Type)
	if !ok {
		// The rental moved on by other means; the stop record still closes.
		return stop, nil
	}
	rental.Status = next
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	if next == domain.RentalStatusCompleted {
		// Release stock immediately on return, not lazily.
		if err := s.stock.Recompute(ctx, rental.EquipmentIDs()...); err != nil {
			return nil, err
		}
	}
	logger.Info("Stop completed", "stop_id", stopID, "rental_id", rental.ID, "rental_status", next)
	return stop, nil
}

func (s *routeService) RemoveStop(ctx context.Context, stopID int32) error {
	// Completed history is immutable; the repository rejects non-pending
	// stops and reverses the driver assignment in the same transaction.
	return s.routeRepo.RemoveStop(ctx, stopID)
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	return nil
}
