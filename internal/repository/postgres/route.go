package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"

	"github.com/lib/pq"
)

type routeRepository struct {
	db *sql.DB
}

func NewRouteRepository(db *sql.DB) repository.RouteRepository {
	return &routeRepository{db: db}
}

// uniqueViolation is the postgres error code raised by the
// route_stops_rental_leg_key constraint when a leg is assigned twice.
const uniqueViolation = "23505"

func driverColumn(t domain.StopType) string {
	if t == domain.StopTypeReturn {
		return "return_driver_id"
	}
	return "delivery_driver_id"
}

func (r *routeRepository) CreateWithStops(ctx context.Context, rt *domain.Route) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO routes (driver_id, route_date, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, rt.DriverID, rt.Date, rt.Status, now, now).Scan(&rt.ID); err != nil {
		return storageErr(err)
	}

	for i := range rt.Stops {
		st := &rt.Stops[i]
		st.RouteID = rt.ID
		q := `INSERT INTO route_stops (route_id, rental_id, type, sequence, status)
		      VALUES ($1, $2, $3, $4, $5) RETURNING id`
		if err := tx.QueryRowContext(ctx, q, rt.ID, st.RentalID, st.Type, st.Sequence, st.Status).Scan(&st.ID); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return &domain.StopAlreadyAssignedError{RentalID: st.RentalID, Type: st.Type}
			}
			return storageErr(err)
		}

		uq := `UPDATE rentals SET ` + driverColumn(st.Type) + ` = $1, updated_on = $2 WHERE id = $3`
		res, err := tx.ExecContext(ctx, uq, rt.DriverID, now, st.RentalID)
		if err != nil {
			return storageErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return &domain.NotFoundError{Entity: "rental", ID: st.RentalID}
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (r *routeRepository) GetByID(ctx context.Context, id int32) (*domain.Route, error) {
	rt := &domain.Route{}
	var date, createdOn, updatedOn time.Time
	query := `SELECT id, driver_id, route_date, status, created_on, updated_on FROM routes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.DriverID, &date, &rt.Status, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "route", ID: id}
	}
	if err != nil {
		return nil, storageErr(err)
	}
	rt.Date = date.Format("2006-01-02")
	rt.CreatedOn = createdOn.Format("2006-01-02")
	rt.UpdatedOn = updatedOn.Format("2006-01-02")

	stops, err := r.loadStops(ctx, rt.ID)
	if err != nil {
		return nil, err
	}
	rt.Stops = stops
	return rt, nil
}

func (r *routeRepository) loadStops(ctx context.Context, routeID int32) ([]domain.RouteStop, error) {
	query := `SELECT id, route_id, rental_id, type, sequence, status, completed_at,
	          COALESCE(receiver_name, ''), COALESCE(signature_ref, '')
	          FROM route_stops WHERE route_id = $1 ORDER BY sequence`
	rows, err := r.db.QueryContext(ctx, query, routeID)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var stops []domain.RouteStop
	for rows.Next() {
		var st domain.RouteStop
		if err := rows.Scan(&st.ID, &st.RouteID, &st.RentalID, &st.Type, &st.Sequence, &st.Status,
			&st.CompletedAt, &st.ReceiverName, &st.SignatureRef); err != nil {
			return nil, storageErr(err)
		}
		stops = append(stops, st)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return stops, nil
}

func (r *routeRepository) ListByDate(ctx context.Context, date string) ([]domain.Route, error) {
	query := `SELECT id, driver_id, route_date, status, created_on, updated_on
	          FROM routes WHERE route_date = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		var rt domain.Route
		var d, createdOn, updatedOn time.Time
		if err := rows.Scan(&rt.ID, &rt.DriverID, &d, &rt.Status, &createdOn, &updatedOn); err != nil {
			return nil, storageErr(err)
		}
		rt.Date = d.Format("2006-01-02")
		rt.CreatedOn = createdOn.Format("2006-01-02")
		rt.UpdatedOn = updatedOn.Format("2006-01-02")
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}

	for i := range routes {
		stops, err := r.loadStops(ctx, routes[i].ID)
		if err != nil {
			return nil, err
		}
		routes[i].Stops = stops
	}
	return routes, nil
}

func (r *routeRepository) UpdateStatus(ctx context.Context, routeID int32, status domain.RouteStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE routes SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), routeID)
	if err != nil {
		return storageErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "route", ID: routeID}
	}
	return nil
}

func (r *routeRepository) GetStop(ctx context.Context, stopID int32) (*domain.RouteStop, error) {
	st := &domain.RouteStop{}
	query := `SELECT id, route_id, rental_id, type, sequence, status, completed_at,
	          COALESCE(receiver_name, ''), COALESCE(signature_ref, '')
	          FROM route_stops WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, stopID).Scan(&st.ID, &st.RouteID, &st.RentalID, &st.Type,
		&st.Sequence, &st.Status, &st.CompletedAt, &st.ReceiverName, &st.SignatureRef)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "stop", ID: stopID}
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return st, nil
}

func (r *routeRepository) CompleteStop(ctx context.Context, stopID int32, receiverName, signatureRef string, completedAt time.Time) error {
	// Guarded on PENDING so two concurrent completions cannot both win.
	query := `UPDATE route_stops SET status=$1, completed_at=$2, receiver_name=$3, signature_ref=$4
	          WHERE id=$5 AND status=$6`
	res, err := r.db.ExecContext(ctx, query, domain.StopStatusCompleted, completedAt, receiverName, signatureRef,
		stopID, domain.StopStatusPending)
	if err != nil {
		return storageErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr(err)
	}
	if n == 0 {
		if _, err := r.GetStop(ctx, stopID); err != nil {
			return err
		}
		return &domain.StopAlreadyCompletedError{StopID: stopID}
	}
	return nil
}

func (r *routeRepository) RemoveStop(ctx context.Context, stopID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	var rentalID int32
	var stopType domain.StopType
	var status domain.StopStatus
	query := `SELECT rental_id, type, status FROM route_stops WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, stopID).Scan(&rentalID, &stopType, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Entity: "stop", ID: stopID}
	}
	if err != nil {
		return storageErr(err)
	}
	if status == domain.StopStatusCompleted {
		return &domain.StopAlreadyCompletedError{StopID: stopID}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_stops WHERE id = $1`, stopID); err != nil {
		return storageErr(err)
	}
	uq := `UPDATE rentals SET ` + driverColumn(stopType) + ` = NULL, updated_on = $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, uq, time.Now(), rentalID); err != nil {
		return storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (r *routeRepository) RemovePendingStopsForRental(ctx context.Context, rentalID int32) ([]domain.StopType, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	defer tx.Rollback()

	query := `DELETE FROM route_stops WHERE rental_id = $1 AND status = $2 RETURNING type`
	rows, err := tx.QueryContext(ctx, query, rentalID, domain.StopStatusPending)
	if err != nil {
		return nil, storageErr(err)
	}
	var types []domain.StopType
	for rows.Next() {
		var t domain.StopType
		if err := rows.Scan(&t); err != nil {
			rows.Close()
			return nil, storageErr(err)
		}
		types = append(types, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}

	now := time.Now()
	for _, t := range types {
		uq := `UPDATE rentals SET ` + driverColumn(t) + ` = NULL, updated_on = $1 WHERE id = $2`
		if _, err := tx.ExecContext(ctx, uq, now, rentalID); err != nil {
			return nil, storageErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}
	return types, nil
}

func (r *routeRepository) CountPendingStops(ctx context.Context, routeID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM route_stops WHERE route_id = $1 AND status = $2`
	if err := r.db.QueryRowContext(ctx, query, routeID, domain.StopStatusPending).Scan(&count); err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}

func (r *routeRepository) HasStop(ctx context.Context, rentalID int32, stopType domain.StopType) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM route_stops WHERE rental_id = $1 AND type = $2)`
	if err := r.db.QueryRowContext(ctx, query, rentalID, stopType).Scan(&exists); err != nil {
		return false, storageErr(err)
	}
	return exists, nil
}

func (r *routeRepository) PendingDeliveries(ctx context.Context, date string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals r
	          WHERE r.start_date = $1 AND r.status = $2
	            AND NOT EXISTS (SELECT 1 FROM route_stops s WHERE s.rental_id = r.id AND s.type = $3)
	          ORDER BY r.id`
	return r.queryJobs(ctx, query, date, domain.RentalStatusScheduled, domain.StopTypeDelivery)
}

func (r *routeRepository) PendingReturns(ctx context.Context, date string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals r
	          WHERE r.end_date = $1 AND r.status = $2
	            AND NOT EXISTS (SELECT 1 FROM route_stops s WHERE s.rental_id = r.id AND s.type = $3)
	          ORDER BY r.id`
	return r.queryJobs(ctx, query, date, domain.RentalStatusActive, domain.StopTypeReturn)
}

func (r *routeRepository) queryJobs(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	rentals, err := scanRentals(rows)
	if err != nil {
		return nil, err
	}
	if err := attachItems(ctx, r.db, rentals); err != nil {
		return nil, err
	}
	return rentals, nil
}
