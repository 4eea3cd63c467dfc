package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createPaymentRequest struct {
	ReservationID  int64  `json:"reservation_id" validate:"required,gt=0"`
	Method         string `json:"method" validate:"required"`
	AmountCents    int64  `json:"amount_cents" validate:"required,gt=0"`
	IdempotencyKey string `json:"idempotency_key" validate:"required"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	p, err := h.payments.CreatePayment(r.Context(), req.ReservationID,
		domain.PaymentMethod(req.Method), req.AmountCents, req.IdempotencyKey)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	reservationID, err := parseID(r.URL.Query().Get("reservation_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	payments, err := h.payments.ListPayments(r.Context(), reservationID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"payments": payments})
}

type submitProofRequest struct {
	ProofRef string `json:"proof_ref" validate:"required"`
}

func (h *PaymentHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	var req submitProofRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	p, err := h.payments.SubmitProof(r.Context(), mux.Vars(r)["id"], req.ProofRef)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	p, err := h.payments.ApproveProof(r.Context(), mux.Vars(r)["id"], claims.OperatorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

type rejectPaymentRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *PaymentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	claims := claimsFrom(r.Context())
	p, err := h.payments.RejectProof(r.Context(), mux.Vars(r)["id"], claims.OperatorID, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}
