package http

import (
	"net/http"
	"strconv"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
}

type rentalItemRequest struct {
	EquipmentID    int32 `json:"equipment_id"`
	Quantity       int32 `json:"quantity"`
	UnitPriceCents int32 `json:"unit_price_cents"`
}

func toItems(reqs []rentalItemRequest) []domain.RentalItem {
	items := make([]domain.RentalItem, len(reqs))
	for i, r := range reqs {
		items[i] = domain.RentalItem{
			EquipmentID:    r.EquipmentID,
			Quantity:       r.Quantity,
			UnitPriceCents: r.UnitPriceCents,
		}
	}
	return items
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID        int32               `json:"person_id"`
		StartDate       string              `json:"start_date"`
		EndDate         string              `json:"end_date"`
		DeliveryAddress string              `json:"delivery_address"`
		Items           []rentalItemRequest `json:"items"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rental, err := h.rentals.CreateRental(r.Context(), req.PersonID, req.StartDate, req.EndDate, req.DeliveryAddress, toItems(req.Items))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rental id"})
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	personID, _ := strconv.ParseInt(q.Get("person_id"), 10, 32)
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)

	rentals, total, err := h.rentals.ListRentals(r.Context(), int32(personID), q.Get("status"), int32(page), int32(pageSize))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rentals": rentals, "total": total})
}

func (h *RentalHandler) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rental id"})
		return
	}
	var req struct {
		Items []rentalItemRequest `json:"items"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rental, err := h.rentals.ReplaceItems(r.Context(), id, toItems(req.Items))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rental id"})
		return
	}
	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rental, err := h.rentals.Reschedule(r.Context(), id, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Finish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rental id"})
		return
	}
	rental, err := h.rentals.FinishRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rental id"})
		return
	}
	rental, err := h.rentals.CancelRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}
