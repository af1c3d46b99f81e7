package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) CreateWithRoomHold(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) DeleteWithRoomRelease(ctx context.Context, bookingID, roomID int64) error {
	args := m.Called(ctx, bookingID, roomID)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUserWithRooms(ctx context.Context, userID int64) ([]repository.BookingWithRoom, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingWithRoom), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCommand(roomID int64, in, out time.Time) CreateBookingCommand {
	return CreateBookingCommand{
		RoomID:   roomID,
		CheckIn:  in,
		CheckOut: out,
		Contact:  Contact{Name: "Alice Smith", Email: "alice@example.com", Phone: "5551234567"},
	}
}

func TestService_CreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	in := date(2026, 10, 1)
	out := date(2026, 10, 5)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10, IsAvailable: true}, nil)
	mockBookings.On("HasOverlap", mock.Anything, int64(10), in, out).Return(false, nil)
	mockBookings.On("CreateWithRoomHold", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockRooms)

	b, err := service.CreateBooking(context.Background(), 7, testCommand(10, in, out))

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, int64(7), b.UserID)
	assert.Equal(t, "Alice Smith", b.GuestName)
	mockBookings.AssertCalled(t, "CreateWithRoomHold", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_Overlap(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	in := date(2026, 10, 3)
	out := date(2026, 10, 7)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10}, nil)
	mockBookings.On("HasOverlap", mock.Anything, int64(10), in, out).Return(true, nil)

	service := NewService(mockBookings, mockRooms)

	_, err := service.CreateBooking(context.Background(), 7, testCommand(10, in, out))

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	mockBookings.AssertNotCalled(t, "CreateWithRoomHold", mock.Anything, mock.Anything)
}

// The DB exclusion constraint firing on insert reads the same as a lost
// overlap race: the caller sees the room as unavailable.
func TestService_CreateBooking_ConstraintBackstop(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	in := date(2026, 10, 1)
	out := date(2026, 10, 5)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10}, nil)
	mockBookings.On("HasOverlap", mock.Anything, int64(10), in, out).Return(false, nil)
	mockBookings.On("CreateWithRoomHold", mock.Anything, mock.Anything).Return(repository.ErrOverlap)

	service := NewService(mockBookings, mockRooms)

	_, err := service.CreateBooking(context.Background(), 7, testCommand(10, in, out))
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestService_CreateBooking_RoomNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockRooms.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockRooms)

	_, err := service.CreateBooking(context.Background(), 7, testCommand(404, date(2026, 10, 1), date(2026, 10, 5)))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CreateBooking_InvalidRange(t *testing.T) {
	service := NewService(new(MockBookingRepository), new(MockRoomRepository))

	// zero-length stay
	d := date(2026, 10, 1)
	_, err := service.CreateBooking(context.Background(), 7, testCommand(10, d, d))
	assert.ErrorIs(t, err, ErrValidation)

	// inverted range
	_, err = service.CreateBooking(context.Background(), 7, testCommand(10, date(2026, 10, 5), date(2026, 10, 1)))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_StoreTimeout(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	in := date(2026, 10, 1)
	out := date(2026, 10, 5)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10}, nil)
	mockBookings.On("HasOverlap", mock.Anything, int64(10), in, out).Return(false, repository.ErrTimeout)

	service := NewService(mockBookings, mockRooms)

	_, err := service.CreateBooking(context.Background(), 7, testCommand(10, in, out))
	assert.ErrorIs(t, err, ErrTransient)
}

func TestService_CancelBooking_Owner(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 5, RoomID: 10, UserID: 7}
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	mockBookings.On("DeleteWithRoomRelease", mock.Anything, int64(5), int64(10)).Return(nil)

	service := NewService(mockBookings, new(MockRoomRepository))

	err := service.CancelBooking(context.Background(), 7, domain.RoleGuest, 5)
	assert.NoError(t, err)
	mockBookings.AssertCalled(t, "DeleteWithRoomRelease", mock.Anything, int64(5), int64(10))
}

func TestService_CancelBooking_AdminOverride(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 5, RoomID: 10, UserID: 7}
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	mockBookings.On("DeleteWithRoomRelease", mock.Anything, int64(5), int64(10)).Return(nil)

	service := NewService(mockBookings, new(MockRoomRepository))

	// requester 42 is not the owner but holds the admin role
	err := service.CancelBooking(context.Background(), 42, domain.RoleAdmin, 5)
	assert.NoError(t, err)
}

func TestService_CancelBooking_Unauthorized(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 5, RoomID: 10, UserID: 7}
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

	service := NewService(mockBookings, new(MockRoomRepository))

	err := service.CancelBooking(context.Background(), 42, domain.RoleGuest, 5)
	assert.ErrorIs(t, err, ErrUnauthorized)
	mockBookings.AssertNotCalled(t, "DeleteWithRoomRelease", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelBooking_NotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, new(MockRoomRepository))

	err := service.CancelBooking(context.Background(), 7, domain.RoleGuest, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBookingRequest_Command_FieldErrors(t *testing.T) {
	req := CreateBookingRequest{
		RoomID:   0,
		CheckIn:  "2026-10-05",
		CheckOut: "2026-10-01",
		Name:     "  ",
		Email:    "not-an-email",
		Phone:    "123",
	}

	_, fields := req.Command()
	assert.Equal(t, "required", fields["room_id"])
	assert.Equal(t, "must be after check_in", fields["check_out"])
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "invalid email", fields["email"])
	assert.Equal(t, "must be 10 digits", fields["phone"])
}

// fakeBookingStore is a thread-safe in-memory implementation with the real
// half-open overlap rule, used to exercise the engine under contention.
type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeBookingStore) HasOverlap(_ context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.RoomID == roomID && b.Overlaps(checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingStore) CreateWithRoomHold(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b.ID = f.nextID
	cp := *b
	f.bookings = append(f.bookings, &cp)
	return nil
}

func (f *fakeBookingStore) DeleteWithRoomRelease(_ context.Context, bookingID, roomID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.bookings {
		if b.ID == bookingID && b.RoomID == roomID {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookingStore) ListByUserWithRooms(_ context.Context, _ int64) ([]repository.BookingWithRoom, error) {
	return nil, nil
}

type fakeRoomStore struct{}

func (fakeRoomStore) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	return &domain.Room{ID: id, IsAvailable: true}, nil
}

// Many goroutines racing on the same room and dates: exactly one wins.
func TestService_CreateBooking_ConcurrentSameRoom(t *testing.T) {
	store := &fakeBookingStore{}
	service := NewService(store, fakeRoomStore{})

	const n = 32
	in := date(2026, 11, 1)
	out := date(2026, 11, 4)

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			_, err := service.CreateBooking(context.Background(), uid, testCommand(1, in, out))
			results <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	var ok, conflict int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrRoomUnavailable):
			conflict++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflict)
	assert.Len(t, store.bookings, 1)
}

// Touching ranges on the same room do not conflict; checkout day and
// check-in day may coincide.
func TestService_CreateBooking_TouchingEndpoints(t *testing.T) {
	store := &fakeBookingStore{}
	service := NewService(store, fakeRoomStore{})

	_, err := service.CreateBooking(context.Background(), 1, testCommand(1, date(2026, 11, 1), date(2026, 11, 4)))
	assert.NoError(t, err)

	// back-to-back: previous check-out equals new check-in
	_, err = service.CreateBooking(context.Background(), 2, testCommand(1, date(2026, 11, 4), date(2026, 11, 7)))
	assert.NoError(t, err)

	// and a stay ending exactly where the first begins
	_, err = service.CreateBooking(context.Background(), 3, testCommand(1, date(2026, 10, 28), date(2026, 11, 1)))
	assert.NoError(t, err)

	assert.Len(t, store.bookings, 3)
}

func TestService_CreateBooking_DifferentRoomsDoNotConflict(t *testing.T) {
	store := &fakeBookingStore{}
	service := NewService(store, fakeRoomStore{})

	in := date(2026, 11, 1)
	out := date(2026, 11, 4)

	_, err := service.CreateBooking(context.Background(), 1, testCommand(1, in, out))
	assert.NoError(t, err)

	_, err = service.CreateBooking(context.Background(), 2, testCommand(2, in, out))
	assert.NoError(t, err)
}
