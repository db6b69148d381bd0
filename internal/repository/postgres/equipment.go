package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (name, category, total_qty, rented_qty, created_on, updated_on)
	          VALUES ($1, $2, $3, 0, $4, $5) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, eq.Name, eq.Category, eq.TotalQty, now, now).Scan(&eq.ID)
	if err != nil {
		return storageErr(err)
	}
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT id, name, category, total_qty, rented_qty, created_on, updated_on FROM equipment WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&eq.ID, &eq.Name, &eq.Category, &eq.TotalQty, &eq.RentedQty, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	if err != nil {
		return nil, storageErr(err)
	}
	eq.CreatedOn = createdOn.Format("2006-01-02")
	eq.UpdatedOn = updatedOn.Format("2006-01-02")
	return eq, nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT id, name, category, total_qty, rented_qty, created_on, updated_on FROM equipment ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var out []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Category, &eq.TotalQty, &eq.RentedQty, &createdOn, &updatedOn); err != nil {
			return nil, storageErr(err)
		}
		eq.CreatedOn = createdOn.Format("2006-01-02")
		eq.UpdatedOn = updatedOn.Format("2006-01-02")
		out = append(out, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

func (r *equipmentRepository) ListIDs(ctx context.Context) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM equipment ORDER BY id`)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return ids, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipment SET name=$1, category=$2, total_qty=$3, updated_on=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, eq.Name, eq.Category, eq.TotalQty, time.Now(), eq.ID)
	if err != nil {
		return storageErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "equipment", ID: eq.ID}
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return storageErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	return nil
}

func (r *equipmentRepository) UpdateRentedQty(ctx context.Context, id int32, rentedQty int32) error {
	query := `UPDATE equipment SET rented_qty=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, rentedQty, time.Now(), id)
	if err != nil {
		return storageErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	return nil
}

func (r *equipmentRepository) CountRentalReferences(ctx context.Context, id int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rental_items WHERE equipment_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}
