package http

import (
	"net/http"
	"strconv"

	"rentalops-backend/internal/service"
	"rentalops-backend/internal/storage"

	"github.com/gorilla/mux"
)

// NewRouter assembles the HTTP surface the rental forms and the route planner
// UI call.
func NewRouter(
	equipmentSvc service.EquipmentService,
	stockSvc service.StockService,
	rentalSvc service.RentalService,
	routeSvc service.RouteService,
	driverSvc service.DriverService,
	signatures storage.SignatureStore,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	eh := &EquipmentHandler{equipment: equipmentSvc, stock: stockSvc}
	api.HandleFunc("/equipment", eh.List).Methods("GET")
	api.HandleFunc("/equipment", eh.Create).Methods("POST")
	api.HandleFunc("/equipment/{id}", eh.Get).Methods("GET")
	api.HandleFunc("/equipment/{id}", eh.Update).Methods("PUT")
	api.HandleFunc("/equipment/{id}", eh.Delete).Methods("DELETE")
	api.HandleFunc("/equipment/{id}/availability", eh.Availability).Methods("GET")

	rh := &RentalHandler{rentals: rentalSvc}
	api.HandleFunc("/rentals", rh.List).Methods("GET")
	api.HandleFunc("/rentals", rh.Create).Methods("POST")
	api.HandleFunc("/rentals/{id}", rh.Get).Methods("GET")
	api.HandleFunc("/rentals/{id}/items", rh.ReplaceItems).Methods("PUT")
	api.HandleFunc("/rentals/{id}/reschedule", rh.Reschedule).Methods("POST")
	api.HandleFunc("/rentals/{id}/finish", rh.Finish).Methods("POST")
	api.HandleFunc("/rentals/{id}/cancel", rh.Cancel).Methods("POST")

	th := &RouteHandler{routes: routeSvc}
	api.HandleFunc("/routes/jobs", th.AvailableJobs).Methods("GET")
	api.HandleFunc("/routes", th.List).Methods("GET")
	api.HandleFunc("/routes", th.Create).Methods("POST")
	api.HandleFunc("/routes/{id}", th.Get).Methods("GET")
	api.HandleFunc("/routes/{id}/start", th.Start).Methods("POST")
	api.HandleFunc("/routes/{id}/complete", th.Complete).Methods("POST")
	api.HandleFunc("/stops/{id}/complete", th.CompleteStop).Methods("POST")
	api.HandleFunc("/stops/{id}", th.RemoveStop).Methods("DELETE")

	dh := &DriverHandler{drivers: driverSvc}
	api.HandleFunc("/drivers", dh.List).Methods("GET")
	api.HandleFunc("/drivers", dh.Create).Methods("POST")
	api.HandleFunc("/drivers/{id}", dh.Get).Methods("GET")
	api.HandleFunc("/drivers/{id}", dh.Update).Methods("PUT")

	sh := &SignatureHandler{signatures: signatures}
	api.HandleFunc("/signatures", sh.Upload).Methods("POST")
	api.HandleFunc("/signatures/{ref}", sh.Download).Methods("GET")

	return r
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}
