package domain

import "time"

type RoomState string

const (
	RoomStateFree        RoomState = "FREE"
	RoomStateOccupied    RoomState = "OCCUPIED"
	RoomStateMaintenance RoomState = "MAINTENANCE"
	RoomStateBlocked     RoomState = "BLOCKED"
)

// Room is a physical room identified by its door number. Rooms are never
// deleted while they carry historical reservations; Active=false disables
// them for new bookings instead.
type Room struct {
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	State     RoomState `json:"state"`
	Active    bool      `json:"active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Bookable reports whether the room may receive new reservations at all.
// Date-range availability is a separate question answered by the allocator.
func (r *Room) Bookable() bool {
	return r.Active && r.State != RoomStateMaintenance && r.State != RoomStateBlocked
}
