package service

import (
	"context"
	"errors"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type driverService struct {
	driverRepo repository.DriverRepository
}

func NewDriverService(driverRepo repository.DriverRepository) DriverService {
	return &driverService{driverRepo: driverRepo}
}

func (s *driverService) AddDriver(ctx context.Context, d *domain.Driver) error {
	if d.Name == "" {
		return errors.New("driver name is required")
	}
	d.Active = true
	return s.driverRepo.Create(ctx, d)
}

func (s *driverService) GetDriver(ctx context.Context, id int32) (*domain.Driver, error) {
	return s.driverRepo.GetByID(ctx, id)
}

func (s *driverService) ListDrivers(ctx context.Context, activeOnly bool) ([]domain.Driver, error) {
	return s.driverRepo.List(ctx, activeOnly)
}

func (s *driverService) UpdateDriver(ctx context.Context, d *domain.Driver) error {
	if d.Name == "" {
		return errors.New("driver name is required")
	}
	return s.driverRepo.Update(ctx, d)
}
