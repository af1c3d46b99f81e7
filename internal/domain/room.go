package domain

import "time"

type RoomCategory string

const (
	CategoryStandard RoomCategory = "Standard"
	CategoryDeluxe   RoomCategory = "Deluxe"
	CategorySuite    RoomCategory = "Suite"
)

// Room is a bookable unit. IsAvailable is a flag flipped by the booking
// engine at creation/cancellation, not recomputed from a range scan.
type Room struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name" validate:"required"`
	Number      int          `json:"number" validate:"required,gt=0"`
	Category    RoomCategory `json:"category" validate:"required,oneof=Standard Deluxe Suite"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price" validate:"required,gt=0"`
	Capacity    int          `json:"capacity" validate:"required,gt=0"`
	Amenities   []string     `json:"amenities,omitempty"`
	IsAvailable bool         `json:"is_available"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
