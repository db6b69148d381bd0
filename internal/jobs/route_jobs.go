package jobs

import (
	"context"
	"time"

	"rentalops-backend/internal/logger"
)

// SendReturnReminders emails each driver the rentals due for collection on
// their routes tomorrow.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

		query := `
			SELECT d.name, d.email, s.rental_id
			FROM route_stops s
			JOIN routes r ON r.id = s.route_id
			JOIN drivers d ON d.id = r.driver_id
			WHERE r.route_date = $1
			  AND s.type = 'RETURN'
			  AND s.status = 'PENDING'
			  AND d.email <> ''
			ORDER BY d.id, s.sequence
		`

		rows, err := jr.db.QueryContext(ctx, query, tomorrow)
		if err != nil {
			logger.Error("Failed to query pending returns", "error", err)
			return
		}
		defer rows.Close()

		type reminder struct {
			name      string
			rentalIDs []int32
		}
		byEmail := make(map[string]*reminder)
		var order []string

		for rows.Next() {
			var name, email string
			var rentalID int32
			if err := rows.Scan(&name, &email, &rentalID); err != nil {
				logger.Error("Failed to scan pending return", "error", err)
				continue
			}
			r, ok := byEmail[email]
			if !ok {
				r = &reminder{name: name}
				byEmail[email] = r
				order = append(order, email)
			}
			r.rentalIDs = append(r.rentalIDs, rentalID)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating pending returns", "error", err)
			return
		}

		sent := 0
		for _, email := range order {
			r := byEmail[email]
			if err := jr.services.Email.SendReturnReminderNotification(ctx, email, r.name, tomorrow, r.rentalIDs); err != nil {
				logger.Error("Failed to send return reminder", "driver_email", email, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Return reminders sent", "date", tomorrow, "drivers", sent)
	})
}
