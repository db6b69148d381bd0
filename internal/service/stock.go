package service

import (
	"context"

	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository"
)

type stockService struct {
	equipmentRepo repository.EquipmentRepository
	rentalRepo    repository.RentalRepository
}

func NewStockService(equipmentRepo repository.EquipmentRepository, rentalRepo repository.RentalRepository) StockService {
	return &stockService{
		equipmentRepo: equipmentRepo,
		rentalRepo:    rentalRepo,
	}
}

// Recompute is always a full rebuild from the rental items, never an in-place
// adjustment, so concurrent rental mutations cannot drift the count.
func (s *stockService) Recompute(ctx context.Context, equipmentIDs ...int32) error {
	seen := make(map[int32]bool, len(equipmentIDs))
	for _, id := range equipmentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if _, err := s.equipmentRepo.GetByID(ctx, id); err != nil {
			return err
		}
		committed, err := s.rentalRepo.SumCommittedQty(ctx, id)
		if err != nil {
			return err
		}
		if err := s.equipmentRepo.UpdateRentedQty(ctx, id, committed); err != nil {
			return err
		}
		logger.Debug("Recomputed equipment stock", "equipment_id", id, "rented_qty", committed)
	}
	return nil
}

func (s *stockService) AvailableQty(ctx context.Context, equipmentID int32) (int32, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return 0, err
	}
	return eq.AvailableQty(), nil
}
