package catalog

import (
	"context"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"
)

// RoomRepositoryInterface is the room store surface the catalog needs.
// There is no availability mutator here: the flag is flipped only inside
// the booking engine's transactions.
type RoomRepositoryInterface interface {
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListAvailable(ctx context.Context) ([]domain.Room, error)
	ListAll(ctx context.Context) ([]domain.Room, error)
	Count(ctx context.Context) (int64, error)
}

// BookingReaderInterface covers the read-only booking views the admin
// dashboard and booking list need.
type BookingReaderInterface interface {
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]repository.AdminBookingRow, error)
	ListAllWithDetails(ctx context.Context) ([]repository.AdminBookingRow, error)
}

// BookingCanceller routes admin booking deletion through the reservation
// engine so it stays the sole writer of bookings and the room flag.
type BookingCanceller interface {
	CancelBooking(ctx context.Context, requesterID int64, requesterRole domain.UserRole, bookingID int64) error
}
