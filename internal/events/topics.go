package events

// Topic layout: reservation events feed the notification dispatcher, audit
// transitions feed the audit sink. Both consumers are external to the core.
const (
	TopicReservationEvents = "frontdesk.reservation.events"
	TopicAuditTransitions  = "frontdesk.audit.transitions"
)
