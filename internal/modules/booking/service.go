package booking

import (
	"context"
	"errors"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"

	"gorm.io/gorm"
)

// Service is the reservation engine. It owns the only write path to
// bookings and to the room availability flag.
type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	locks    *roomLocks
}

func NewService(bookings BookingRepository, rooms RoomRepository) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		locks:    newRoomLocks(),
	}
}

// CreateBooking admits the request iff no existing booking on the room
// intersects [CheckIn, CheckOut). The overlap check and the insert run
// under the room's lock so the check never observes state older than the
// latest committed booking for that room.
func (s *Service) CreateBooking(ctx context.Context, userID int64, cmd CreateBookingCommand) (*domain.Booking, error) {
	if !cmd.CheckOut.After(cmd.CheckIn) {
		return nil, ErrValidation
	}

	if _, err := s.rooms.GetByID(ctx, cmd.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	unlock := s.locks.acquire(cmd.RoomID)
	defer unlock()

	conflict, err := s.bookings.HasOverlap(ctx, cmd.RoomID, cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, storeErr(err)
	}
	if conflict {
		return nil, ErrRoomUnavailable
	}

	b := &domain.Booking{
		RoomID:     cmd.RoomID,
		UserID:     userID,
		CheckIn:    cmd.CheckIn,
		CheckOut:   cmd.CheckOut,
		GuestName:  cmd.Contact.Name,
		GuestEmail: cmd.Contact.Email,
		GuestPhone: cmd.Contact.Phone,
	}

	if err := s.bookings.CreateWithRoomHold(ctx, b); err != nil {
		// DB exclusion constraint; only reachable from another process
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrRoomUnavailable
		}
		return nil, storeErr(err)
	}
	return b, nil
}

// CancelBooking deletes the booking and restores the room flag in one
// transaction. Only the owning user or an admin may cancel. The flag is
// restored unconditionally even if another future booking still holds the
// room; see DESIGN.md, availability flag gap.
func (s *Service) CancelBooking(ctx context.Context, requesterID int64, role domain.UserRole, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}

	if b.UserID != requesterID && role != domain.RoleAdmin {
		return ErrUnauthorized
	}

	unlock := s.locks.acquire(b.RoomID)
	defer unlock()

	if err := s.bookings.DeleteWithRoomRelease(ctx, b.ID, b.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	return nil
}

// ListBookingsForUser is a read-only projection with each booking's room
// resolved. No conflict logic.
func (s *Service) ListBookingsForUser(ctx context.Context, userID int64) ([]repository.BookingWithRoom, error) {
	rows, err := s.bookings.ListByUserWithRooms(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return rows, nil
}

func storeErr(err error) error {
	if errors.Is(err, repository.ErrTimeout) {
		return ErrTransient
	}
	return err
}
