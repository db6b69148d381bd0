package domain

type Equipment struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	TotalQty int32  `json:"total_qty"`
	// RentedQty is derived: the sum of item quantities across rentals that
	// currently hold stock. Never written directly, only via stock recompute.
	RentedQty int32  `json:"rented_qty"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// AvailableQty is the quantity not committed to any scheduled or active rental.
func (e *Equipment) AvailableQty() int32 {
	return e.TotalQty - e.RentedQty
}
