package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/service"
)

type SettlementHandler struct {
	settlement service.SettlementService
}

func NewSettlementHandler(settlement service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlement: settlement}
}

func (h *SettlementHandler) ValidateCheckin(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["reservationID"])
	if err != nil {
		respondError(w, err)
		return
	}
	v, err := h.settlement.ValidateCheckin(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *SettlementHandler) PerformCheckin(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["reservationID"])
	if err != nil {
		respondError(w, err)
		return
	}
	var details domain.CheckinDetails
	if err := decodeJSON(r, &details); err != nil {
		respondError(w, err)
		return
	}
	claims := claimsFrom(r.Context())
	rec, err := h.settlement.PerformCheckin(r.Context(), id, details, claims.OperatorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (h *SettlementHandler) ValidateCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["reservationID"])
	if err != nil {
		respondError(w, err)
		return
	}
	preview, err := h.settlement.ValidateCheckout(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, preview)
}

func (h *SettlementHandler) PerformCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["reservationID"])
	if err != nil {
		respondError(w, err)
		return
	}
	var instruction domain.CheckoutInstruction
	if err := decodeJSON(r, &instruction); err != nil {
		respondError(w, err)
		return
	}
	claims := claimsFrom(r.Context())
	rec, err := h.settlement.PerformCheckout(r.Context(), id, instruction, claims.OperatorID)
	if err != nil {
		// A repeat checkout is answered with the original settlement, not
		// an error.
		if domain.IsCode(err, domain.CodeAlreadyCheckedOut) && rec != nil {
			respondJSON(w, http.StatusOK, rec)
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}
