package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/service"
)

type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	rs, err := h.reservations.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rs)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	page, pageSize := parsePaging(r)

	var (
		items []domain.Reservation
		total int32
		err   error
	)
	switch {
	case q.Get("guest_id") != "":
		items, total, err = h.reservations.ListByGuest(r.Context(), q.Get("guest_id"), status, page, pageSize)
	case q.Get("room_number") != "":
		items, total, err = h.reservations.ListByRoom(r.Context(), q.Get("room_number"), status, page, pageSize)
	default:
		respondError(w, domain.NewError(domain.CodeValidationFailed, "guest_id or room_number is required"))
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"reservations": items,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	actor := "guest"
	if claims := claimsFrom(r.Context()); claims != nil {
		actor = "operator:" + claims.OperatorID
	}
	rs, err := h.reservations.Cancel(r.Context(), id, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rs)
}
