package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"frontdesk-backend/internal/security"
	"frontdesk-backend/internal/service"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Availability service.AvailabilityService
	Reservation  service.ReservationService
	Payment      service.PaymentService
	Settlement   service.SettlementService
	Room         service.RoomService
}

// NewRouter builds the /api/v1 router. All routes sit behind bearer auth;
// staff-only routes additionally require a role.
func NewRouter(services Services, tm security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tm).Middleware)

	availability := NewAvailabilityHandler(services.Availability)
	api.HandleFunc("/availability", availability.FindAvailable).Methods("GET")
	api.HandleFunc("/reservations", availability.CreateReservation).Methods("POST")

	reservations := NewReservationHandler(services.Reservation)
	api.HandleFunc("/reservations", reservations.List).Methods("GET")
	api.HandleFunc("/reservations/{id}", reservations.Get).Methods("GET")
	api.HandleFunc("/reservations/{id}/cancel", reservations.Cancel).Methods("PATCH")

	payments := NewPaymentHandler(services.Payment)
	api.HandleFunc("/payments", payments.Create).Methods("POST")
	api.HandleFunc("/payments", payments.List).Methods("GET")
	api.HandleFunc("/payments/{id}/proof", payments.SubmitProof).Methods("POST")
	api.HandleFunc("/payments/{id}/approve",
		requireRole(security.RoleFrontdesk, payments.Approve)).Methods("POST")
	api.HandleFunc("/payments/{id}/reject",
		requireRole(security.RoleFrontdesk, payments.Reject)).Methods("POST")

	rooms := NewRoomHandler(services.Room)
	api.HandleFunc("/rooms",
		requireRole(security.RoleManager, rooms.List)).Methods("GET")
	api.HandleFunc("/rooms/{number}/state",
		requireRole(security.RoleManager, rooms.SetState)).Methods("PATCH")
	api.HandleFunc("/rooms/{number}/active",
		requireRole(security.RoleManager, rooms.SetActive)).Methods("PATCH")

	settlement := NewSettlementHandler(services.Settlement)
	api.HandleFunc("/checkin/{reservationID}/validate",
		requireRole(security.RoleFrontdesk, settlement.ValidateCheckin)).Methods("GET")
	api.HandleFunc("/checkin/{reservationID}",
		requireRole(security.RoleFrontdesk, settlement.PerformCheckin)).Methods("POST")
	api.HandleFunc("/checkout/{reservationID}/validate",
		requireRole(security.RoleFrontdesk, settlement.ValidateCheckout)).Methods("GET")
	api.HandleFunc("/checkout/{reservationID}",
		requireRole(security.RoleFrontdesk, settlement.PerformCheckout)).Methods("POST")

	return router
}
