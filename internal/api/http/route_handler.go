package http

import (
	"net/http"

	"rentalops-backend/internal/service"
)

type RouteHandler struct {
	routes service.RouteService
}

func (h *RouteHandler) AvailableJobs(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	deliveries, returns, err := h.routes.AvailableJobs(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":       date,
		"deliveries": deliveries,
		"returns":    returns,
	})
}

func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date     string                   `json:"date"`
		DriverID int32                    `json:"driver_id"`
		Stops    []service.StopAssignment `json:"stops"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	route, err := h.routes.CreateRoute(r.Context(), req.Date, req.DriverID, req.Stops)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, route)
}

func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid route id"})
		return
	}
	route, err := h.routes.GetRoute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	routes, err := h.routes.ListRoutes(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"routes": routes})
}

func (h *RouteHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid route id"})
		return
	}
	route, err := h.routes.StartRoute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (h *RouteHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid route id"})
		return
	}
	route, err := h.routes.CompleteRoute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (h *RouteHandler) CompleteStop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stop id"})
		return
	}
	var req struct {
		ReceiverName string `json:"receiver_name"`
		SignatureRef string `json:"signature_ref"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	stop, err := h.routes.CompleteStop(r.Context(), id, req.ReceiverName, req.SignatureRef)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stop)
}

func (h *RouteHandler) RemoveStop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stop id"})
		return
	}
	if err := h.routes.RemoveStop(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
