package domain

import "time"

// CheckinDetails is the payload the front desk collects at the counter.
// All three consent flags must be true before a CheckinRecord is created.
type CheckinDetails struct {
	GuestName         string        `json:"guest_name"`
	GuestDocument     string        `json:"guest_document"`
	Adults            int32         `json:"adults"`
	Children          int32         `json:"children"`
	VehiclePlate      string        `json:"vehicle_plate,omitempty"`
	DepositCents      int64         `json:"deposit_cents"`
	DepositMethod     PaymentMethod `json:"deposit_method"`
	DocumentsVerified bool          `json:"documents_verified"`
	PaymentValidated  bool          `json:"payment_validated"`
	TermsAccepted     bool          `json:"terms_accepted"`
}

// CheckinRecord exists at most once per reservation.
type CheckinRecord struct {
	ID            int64         `json:"id"`
	ReservationID int64         `json:"reservation_id"`
	GuestName     string        `json:"guest_name"`
	GuestDocument string        `json:"guest_document"`
	Adults        int32         `json:"adults"`
	Children      int32         `json:"children"`
	VehiclePlate  string        `json:"vehicle_plate,omitempty"`
	DepositCents  int64         `json:"deposit_cents"`
	DepositMethod PaymentMethod `json:"deposit_method"`
	OperatorID    string        `json:"operator_id"`
	CreatedOn     time.Time     `json:"created_on"`
}

// CheckoutInstruction carries the room inspection outcome and incidental
// charges collected at the counter during check-out.
type CheckoutInstruction struct {
	InspectionOK         bool          `json:"inspection_ok"`
	DamageDescription    string        `json:"damage_description,omitempty"`
	DamageCents          int64         `json:"damage_cents"`
	MinibarCents         int64         `json:"minibar_cents"`
	ExtraServicesCents   int64         `json:"extra_services_cents"`
	LateFeeCents         int64         `json:"late_fee_cents"`
	DepositRetainedCents int64         `json:"deposit_retained_cents"`
	RetainReason         string        `json:"retain_reason,omitempty"`
	Rating               int32         `json:"rating"`
	SettlementMethod     PaymentMethod `json:"settlement_method"`
}

// CheckoutRecord is created exactly once per reservation, at check-out.
// FinalBalanceCents is signed: positive means the guest still owes, negative
// means a refund is due.
type CheckoutRecord struct {
	ID                   int64         `json:"id"`
	ReservationID        int64         `json:"reservation_id"`
	InspectionOK         bool          `json:"inspection_ok"`
	DamageDescription    string        `json:"damage_description,omitempty"`
	DamageCents          int64         `json:"damage_cents"`
	MinibarCents         int64         `json:"minibar_cents"`
	ExtraServicesCents   int64         `json:"extra_services_cents"`
	LateFeeCents         int64         `json:"late_fee_cents"`
	DepositReturnedCents int64         `json:"deposit_returned_cents"`
	DepositRetainedCents int64         `json:"deposit_retained_cents"`
	RetainReason         string        `json:"retain_reason,omitempty"`
	Rating               int32         `json:"rating"`
	SettlementMethod     PaymentMethod `json:"settlement_method"`
	FinalBalanceCents    int64         `json:"final_balance_cents"`
	OperatorID           string        `json:"operator_id"`
	CreatedOn            time.Time     `json:"created_on"`
}

// CheckinValidation is the answer to "may this guest check in right now".
type CheckinValidation struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// SettlementPreview is the computed financial position of a stay before the
// checkout record is written.
type SettlementPreview struct {
	ReservationID        int64 `json:"reservation_id"`
	NightsStayed         int32 `json:"nights_stayed"`
	NightlyRateCents     int64 `json:"nightly_rate_cents"`
	StayCostCents        int64 `json:"stay_cost_cents"`
	PaidCents            int64 `json:"paid_cents"`
	IncidentalsCents     int64 `json:"incidentals_cents"`
	DepositCents         int64 `json:"deposit_cents"`
	DepositRetainedCents int64 `json:"deposit_retained_cents"`
	BalanceCents         int64 `json:"balance_cents"`
}
