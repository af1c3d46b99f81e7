package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"roomreserve/internal/domain"
	"roomreserve/internal/pkg/validator"
	"roomreserve/internal/repository"
)

// recentBookingLimit is how many bookings the dashboard shows.
const recentBookingLimit = 5

type Service struct {
	rooms    RoomRepositoryInterface
	bookings BookingReaderInterface
}

func NewService(rooms RoomRepositoryInterface, bookings BookingReaderInterface) *Service {
	return &Service{rooms: rooms, bookings: bookings}
}

func (s *Service) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.ListAvailable(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

func (s *Service) ListAllRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	return room, nil
}

// CreateRoom adds a room to the catalog. New rooms start available; the
// flag moves afterwards only through the booking engine.
func (s *Service) CreateRoom(ctx context.Context, req RoomRequest) (*domain.Room, map[string]string, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, fields, ErrValidation
	}

	room := req.toDomain()
	room.IsAvailable = true

	if err := s.rooms.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, nil, fmt.Errorf("number %d: %w", room.Number, ErrDuplicateNumber)
		}
		return nil, nil, storeErr(err)
	}
	return room, nil, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req RoomRequest) (*domain.Room, map[string]string, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, fields, ErrValidation
	}

	room := req.toDomain()
	room.ID = id

	if err := s.rooms.Update(ctx, room); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, nil, fmt.Errorf("number %d: %w", room.Number, ErrDuplicateNumber)
		}
		return nil, nil, storeErr(err)
	}

	updated, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, nil, storeErr(err)
	}
	return updated, nil, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	return nil
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	roomCount, err := s.rooms.Count(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	bookingCount, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	recent, err := s.bookings.ListRecent(ctx, recentBookingLimit)
	if err != nil {
		return nil, storeErr(err)
	}

	return &DashboardResponse{
		RoomCount:      roomCount,
		BookingCount:   bookingCount,
		RecentBookings: toAdminBookingResponses(recent),
	}, nil
}

func (s *Service) ListAllBookings(ctx context.Context) ([]AdminBookingResponse, error) {
	rows, err := s.bookings.ListAllWithDetails(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return toAdminBookingResponses(rows), nil
}

func storeErr(err error) error {
	if errors.Is(err, repository.ErrTimeout) {
		return ErrTransient
	}
	return err
}
