package domain

type RentalStatus string

const (
	RentalStatusScheduled RentalStatus = "SCHEDULED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// ConsumesStock reports whether a rental in this status occupies equipment
// stock. Completed and cancelled rentals release their stock entirely.
func (s RentalStatus) ConsumesStock() bool {
	return s == RentalStatusScheduled || s == RentalStatusActive
}

type RentalItem struct {
	ID             int32 `json:"id"`
	RentalID       int32 `json:"rental_id"`
	EquipmentID    int32 `json:"equipment_id"`
	Quantity       int32 `json:"quantity"`
	UnitPriceCents int32 `json:"unit_price_cents"`
}

type Rental struct {
	ID               int32        `json:"id"`
	PersonID         int32        `json:"person_id"`
	Status           RentalStatus `json:"status"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	DeliveryAddress  string       `json:"delivery_address"`
	DeliveryDriverID *int32       `json:"delivery_driver_id,omitempty"`
	ReturnDriverID   *int32       `json:"return_driver_id,omitempty"`
	Items            []RentalItem `json:"items"`
	CreatedOn        string       `json:"created_on"`
	UpdatedOn        string       `json:"updated_on"`
}

// EquipmentIDs returns the distinct equipment ids referenced by the rental's
// items, in first-seen order. Stock recompute is batched over this set so a
// rental with several lines for the same equipment triggers one write.
func (r *Rental) EquipmentIDs() []int32 {
	seen := make(map[int32]bool, len(r.Items))
	var ids []int32
	for _, it := range r.Items {
		if !seen[it.EquipmentID] {
			seen[it.EquipmentID] = true
			ids = append(ids, it.EquipmentID)
		}
	}
	return ids
}
