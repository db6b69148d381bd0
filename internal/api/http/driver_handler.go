package http

import (
	"net/http"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

type DriverHandler struct {
	drivers service.DriverService
}

func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	drivers, err := h.drivers.ListDrivers(r.Context(), activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"drivers": drivers})
}

func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	d := &domain.Driver{Name: req.Name, Phone: req.Phone, Email: req.Email}
	if err := h.drivers.AddDriver(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid driver id"})
		return
	}
	d, err := h.drivers.GetDriver(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid driver id"})
		return
	}
	var req struct {
		Name   string `json:"name"`
		Phone  string `json:"phone"`
		Email  string `json:"email"`
		Active bool   `json:"active"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	d := &domain.Driver{ID: id, Name: req.Name, Phone: req.Phone, Email: req.Email, Active: req.Active}
	if err := h.drivers.UpdateDriver(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
