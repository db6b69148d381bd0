package jobs

import (
	"context"

	"rentalops-backend/internal/logger"
)

// ReconcileStockCounts recomputes rented_qty for every equipment row. Normal
// operation recomputes on every rental mutation, so this nightly pass is a
// safety net against drift left behind by requests that died mid-flight.
func (jr *JobRunner) ReconcileStockCounts() {
	jr.runWithRecovery("ReconcileStockCounts", func() {
		ctx := context.Background()

		ids, err := jr.store.EquipmentRepository.ListIDs(ctx)
		if err != nil {
			logger.Error("Failed to list equipment for reconciliation", "error", err)
			return
		}
		if err := jr.services.Stock.Recompute(ctx, ids...); err != nil {
			logger.Error("Stock reconciliation failed", "error", err)
			return
		}
		logger.Info("Stock reconciliation finished", "equipment_count", len(ids))
	})
}
