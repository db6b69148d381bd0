package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type driverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, d *domain.Driver) error {
	query := `INSERT INTO drivers (name, phone, email, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, d.Name, d.Phone, d.Email, d.Active, now, now).Scan(&d.ID); err != nil {
		return storageErr(err)
	}
	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id int32) (*domain.Driver, error) {
	d := &domain.Driver{}
	var createdOn, updatedOn time.Time
	query := `SELECT id, name, phone, email, active, created_on, updated_on FROM drivers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Phone, &d.Email, &d.Active, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "driver", ID: id}
	}
	if err != nil {
		return nil, storageErr(err)
	}
	d.CreatedOn = createdOn.Format("2006-01-02")
	d.UpdatedOn = updatedOn.Format("2006-01-02")
	return d, nil
}

func (r *driverRepository) List(ctx context.Context, activeOnly bool) ([]domain.Driver, error) {
	query := `SELECT id, name, phone, email, active, created_on, updated_on FROM drivers`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		var d domain.Driver
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Email, &d.Active, &createdOn, &updatedOn); err != nil {
			return nil, storageErr(err)
		}
		d.CreatedOn = createdOn.Format("2006-01-02")
		d.UpdatedOn = updatedOn.Format("2006-01-02")
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return drivers, nil
}

func (r *driverRepository) Update(ctx context.Context, d *domain.Driver) error {
	query := `UPDATE drivers SET name=$1, phone=$2, email=$3, active=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, d.Name, d.Phone, d.Email, d.Active, time.Now(), d.ID)
	if err != nil {
		return storageErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "driver", ID: d.ID}
	}
	return nil
}
