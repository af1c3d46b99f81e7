package domain

import "time"

// Booking holds a room for the half-open range [CheckIn, CheckOut).
// Contact fields are captured at booking time and kept denormalized.
type Booking struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"room_id" validate:"required"`
	UserID     int64     `json:"user_id" validate:"required"`
	CheckIn    time.Time `json:"check_in" validate:"required"`
	CheckOut   time.Time `json:"check_out" validate:"required"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	GuestPhone string    `json:"guest_phone"`
	CreatedAt  time.Time `json:"created_at"`

	Room *Room `json:"room,omitempty"`
	User *User `json:"user,omitempty"`
}

// Overlaps reports whether the booking's range intersects [in, out).
// Touching endpoints (one stay's checkout equals another's checkin)
// do not overlap.
func (b *Booking) Overlaps(in, out time.Time) bool {
	return b.CheckIn.Before(out) && b.CheckOut.After(in)
}
