package http

import (
	"net/http"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/service"
)

// AvailabilityHandler serves the allocator endpoints: availability lookup
// and reservation creation.
type AvailabilityHandler struct {
	availability service.AvailabilityService
}

func NewAvailabilityHandler(availability service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

func (h *AvailabilityHandler) FindAvailable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roomType := q.Get("room_type")
	if roomType == "" {
		respondError(w, domain.NewError(domain.CodeValidationFailed, "room_type is required"))
		return
	}
	checkin, err := parseDate(q.Get("checkin"), "checkin")
	if err != nil {
		respondError(w, err)
		return
	}
	checkout, err := parseDate(q.Get("checkout"), "checkout")
	if err != nil {
		respondError(w, err)
		return
	}

	rooms, err := h.availability.FindAvailable(r.Context(), roomType, checkin, checkout)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

type createReservationRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
	GuestID    string `json:"guest_id" validate:"required"`
	Checkin    string `json:"checkin" validate:"required"`
	Checkout   string `json:"checkout" validate:"required"`
}

func (h *AvailabilityHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	checkin, err := parseDate(req.Checkin, "checkin")
	if err != nil {
		respondError(w, err)
		return
	}
	checkout, err := parseDate(req.Checkout, "checkout")
	if err != nil {
		respondError(w, err)
		return
	}

	rs, err := h.availability.Reserve(r.Context(), req.RoomNumber, req.GuestID, checkin, checkout)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rs)
}
