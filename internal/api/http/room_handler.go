package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/service"
)

// RoomHandler exposes room administration: inventory listing, maintenance
// state, and the active flag.
type RoomHandler struct {
	rooms service.RoomService
}

func NewRoomHandler(rooms service.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	rooms, total, err := h.rooms.List(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"rooms":     rooms,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

type setRoomStateRequest struct {
	State string `json:"state" validate:"required"`
}

func (h *RoomHandler) SetState(w http.ResponseWriter, r *http.Request) {
	var req setRoomStateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	room, err := h.rooms.SetState(r.Context(), mux.Vars(r)["number"], domain.RoomState(req.State))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}

type setRoomActiveRequest struct {
	// Pointer so that an explicit false passes validation.
	Active *bool `json:"active" validate:"required"`
}

func (h *RoomHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req setRoomActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	room, err := h.rooms.SetActive(r.Context(), mux.Vars(r)["number"], *req.Active)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}
