package postgres

import (
	"database/sql"
	"fmt"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.EquipmentRepository
	repository.RentalRepository
	repository.RouteRepository
	repository.DriverRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		EquipmentRepository: NewEquipmentRepository(db),
		RentalRepository:    NewRentalRepository(db),
		RouteRepository:     NewRouteRepository(db),
		DriverRepository:    NewDriverRepository(db),
	}
}

// storageErr marks a driver-level failure as transient so callers can tell
// infrastructure trouble apart from domain conflicts via errors.Is.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}
