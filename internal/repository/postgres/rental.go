package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"

	"github.com/lib/pq"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, person_id, status, start_date, end_date, delivery_address, delivery_driver_id, return_driver_id, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO rentals (person_id, status, start_date, end_date, delivery_address, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, rt.PersonID, rt.Status, rt.StartDate, rt.EndDate, rt.DeliveryAddress, now, now).Scan(&rt.ID); err != nil {
		return storageErr(err)
	}

	for i := range rt.Items {
		it := &rt.Items[i]
		it.RentalID = rt.ID
		q := `INSERT INTO rental_items (rental_id, equipment_id, quantity, unit_price_cents) VALUES ($1, $2, $3, $4) RETURNING id`
		if err := tx.QueryRowContext(ctx, q, rt.ID, it.EquipmentID, it.Quantity, it.UnitPriceCents).Scan(&it.ID); err != nil {
			return storageErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "rental", ID: id}
	}
	if err != nil {
		return nil, storageErr(err)
	}
	items, err := loadItems(ctx, r.db, []int32{rt.ID})
	if err != nil {
		return nil, err
	}
	rt.Items = items[rt.ID]
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, start_date=$2, end_date=$3, delivery_address=$4,
	          delivery_driver_id=$5, return_driver_id=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, rt.Status, rt.StartDate, rt.EndDate, rt.DeliveryAddress,
		rt.DeliveryDriverID, rt.ReturnDriverID, time.Now(), rt.ID)
	if err != nil {
		return storageErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "rental", ID: rt.ID}
	}
	return nil
}

func (r *rentalRepository) ReplaceItems(ctx context.Context, rentalID int32, items []domain.RentalItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_items WHERE rental_id = $1`, rentalID); err != nil {
		return storageErr(err)
	}
	for i := range items {
		it := &items[i]
		it.RentalID = rentalID
		q := `INSERT INTO rental_items (rental_id, equipment_id, quantity, unit_price_cents) VALUES ($1, $2, $3, $4) RETURNING id`
		if err := tx.QueryRowContext(ctx, q, rentalID, it.EquipmentID, it.Quantity, it.UnitPriceCents).Scan(&it.ID); err != nil {
			return storageErr(err)
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE rentals SET updated_on=$1 WHERE id=$2`, time.Now(), rentalID); err != nil {
		return storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, personID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if personID != 0 {
		query += fmt.Sprintf(" AND person_id = $%d", argIdx)
		args = append(args, personID)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, storageErr(err)
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY start_date DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	defer rows.Close()

	rentals, err := scanRentals(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := attachItems(ctx, r.db, rentals); err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) SumCommittedQty(ctx context.Context, equipmentID int32) (int32, error) {
	query := `SELECT COALESCE(SUM(ri.quantity), 0)
	          FROM rental_items ri
	          JOIN rentals r ON r.id = ri.rental_id
	          WHERE ri.equipment_id = $1 AND r.status IN ('SCHEDULED', 'ACTIVE')`
	var sum int32
	if err := r.db.QueryRowContext(ctx, query, equipmentID).Scan(&sum); err != nil {
		return 0, storageErr(err)
	}
	return sum, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var startDate, endDate, createdOn, updatedOn time.Time
	err := row.Scan(&rt.ID, &rt.PersonID, &rt.Status, &startDate, &endDate, &rt.DeliveryAddress,
		&rt.DeliveryDriverID, &rt.ReturnDriverID, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	rt.StartDate = startDate.Format("2006-01-02")
	rt.EndDate = endDate.Format("2006-01-02")
	rt.CreatedOn = createdOn.Format("2006-01-02")
	rt.UpdatedOn = updatedOn.Format("2006-01-02")
	return rt, nil
}

func scanRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, storageErr(err)
		}
		rentals = append(rentals, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return rentals, nil
}

// loadItems fetches items for a set of rentals in one query, keyed by rental id.
func loadItems(ctx context.Context, db *sql.DB, rentalIDs []int32) (map[int32][]domain.RentalItem, error) {
	out := make(map[int32][]domain.RentalItem, len(rentalIDs))
	if len(rentalIDs) == 0 {
		return out, nil
	}
	query := `SELECT id, rental_id, equipment_id, quantity, unit_price_cents
	          FROM rental_items WHERE rental_id = ANY($1) ORDER BY id`
	rows, err := db.QueryContext(ctx, query, pq.Array(rentalIDs))
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.RentalItem
		if err := rows.Scan(&it.ID, &it.RentalID, &it.EquipmentID, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, storageErr(err)
		}
		out[it.RentalID] = append(out[it.RentalID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

func attachItems(ctx context.Context, db *sql.DB, rentals []domain.Rental) error {
	ids := make([]int32, len(rentals))
	for i := range rentals {
		ids[i] = rentals[i].ID
	}
	items, err := loadItems(ctx, db, ids)
	if err != nil {
		return err
	}
	for i := range rentals {
		rentals[i].Items = items[rentals[i].ID]
	}
	return nil
}
