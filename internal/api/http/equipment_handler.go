package http

import (
	"net/http"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

type EquipmentHandler struct {
	equipment service.EquipmentService
	stock     service.StockService
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.ListEquipment(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"equipment": items})
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		TotalQty int32  `json:"total_qty"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	eq := &domain.Equipment{Name: req.Name, Category: req.Category, TotalQty: req.TotalQty}
	if err := h.equipment.AddEquipment(r.Context(), eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid equipment id"})
		return
	}
	eq, err := h.equipment.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid equipment id"})
		return
	}
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		TotalQty int32  `json:"total_qty"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	eq := &domain.Equipment{ID: id, Name: req.Name, Category: req.Category, TotalQty: req.TotalQty}
	if err := h.equipment.UpdateEquipment(r.Context(), eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid equipment id"})
		return
	}
	if err := h.equipment.DeleteEquipment(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// Availability is what rental forms call before accepting a new item line.
func (h *EquipmentHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid equipment id"})
		return
	}
	qty, err := h.stock.AvailableQty(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"equipment_id": id, "available_qty": qty})
}
