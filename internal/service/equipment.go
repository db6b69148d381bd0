package service

import (
	"context"
	"errors"
	"fmt"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func (s *equipmentService) AddEquipment(ctx context.Context, eq *domain.Equipment) error {
	if eq.Name == "" {
		return errors.New("equipment name is required")
	}
	if eq.TotalQty < 0 {
		return fmt.Errorf("total quantity must not be negative, got %d", eq.TotalQty)
	}
	return s.equipmentRepo.Create(ctx, eq)
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipmentRepo.List(ctx)
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	current, err := s.equipmentRepo.GetByID(ctx, eq.ID)
	if err != nil {
		return err
	}
	// Shrinking the fleet below what rentals already hold would make the
	// available count negative.
	if eq.TotalQty < current.RentedQty {
		return fmt.Errorf("total quantity %d is below the %d currently committed to rentals", eq.TotalQty, current.RentedQty)
	}
	return s.equipmentRepo.Update(ctx, eq)
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, id int32) error {
	refs, err := s.equipmentRepo.CountRentalReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("equipment %d is referenced by %d rental items and cannot be deleted", id, refs)
	}
	return s.equipmentRepo.Delete(ctx, id)
}
