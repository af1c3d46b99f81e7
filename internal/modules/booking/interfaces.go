package booking

import (
	"context"
	"time"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"
)

// BookingRepository defines the store operations the engine needs
type BookingRepository interface {
	HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
	CreateWithRoomHold(ctx context.Context, b *domain.Booking) error
	DeleteWithRoomRelease(ctx context.Context, bookingID, roomID int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUserWithRooms(ctx context.Context, userID int64) ([]repository.BookingWithRoom, error)
}

// RoomRepository defines the room operations the engine needs
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}
