package repository

import (
	"context"
	"time"

	"roomreserve/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	RoomID     int64     `gorm:"column:room_id;index"`
	UserID     int64     `gorm:"column:user_id;index"`
	CheckIn    time.Time `gorm:"column:check_in"`
	CheckOut   time.Time `gorm:"column:check_out"`
	GuestName  string    `gorm:"column:guest_name"`
	GuestEmail string    `gorm:"column:guest_email"`
	GuestPhone string    `gorm:"column:guest_phone"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:         m.ID,
		RoomID:     m.RoomID,
		UserID:     m.UserID,
		CheckIn:    m.CheckIn,
		CheckOut:   m.CheckOut,
		GuestName:  m.GuestName,
		GuestEmail: m.GuestEmail,
		GuestPhone: m.GuestPhone,
		CreatedAt:  m.CreatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:         b.ID,
		RoomID:     b.RoomID,
		UserID:     b.UserID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		GuestPhone: b.GuestPhone,
		CreatedAt:  b.CreatedAt,
	}
}

// BookingWithRoom is a listing row with the referenced room resolved.
type BookingWithRoom struct {
	ID         int64     `json:"id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	GuestPhone string    `json:"guest_phone"`
	CreatedAt  time.Time `json:"created_at"`

	RoomID       int64   `json:"room_id"`
	RoomName     string  `json:"room_name"`
	RoomNumber   int     `json:"room_number"`
	RoomCategory string  `json:"room_category"`
	RoomPrice    float64 `json:"room_price"`
}

// AdminBookingRow additionally resolves the owning user for admin listings.
type AdminBookingRow struct {
	BookingWithRoom
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// HasOverlap reports whether any booking on the room intersects the
// half-open range [checkIn, checkOut). Touching endpoints do not count.
func (r *BookingRepository) HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE room_id = ?
  AND check_in < ?
  AND check_out > ?
`
	tx := r.db.WithContext(ctx).Raw(q, roomID, checkOut, checkIn).Scan(&cnt)
	if tx.Error != nil {
		return false, translate(tx.Error)
	}
	return cnt > 0, nil
}

// CreateWithRoomHold inserts the booking and marks its room unavailable in
// one transaction, so a failed flag update never leaves a committed booking.
func (r *BookingRepository) CreateWithRoomHold(ctx context.Context, b *domain.Booking) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		res := tx.Model(&roomModel{}).
			Where("id = ?", m.RoomID).
			Update("is_available", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}
	*b = *toDomainBooking(m)
	return nil
}

// DeleteWithRoomRelease removes the booking and marks its room available
// again in one transaction. The flag is restored unconditionally; other
// future bookings on the room are not consulted.
func (r *BookingRepository) DeleteWithRoomRelease(ctx context.Context, bookingID, roomID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&bookingModel{}, bookingID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&roomModel{}).
			Where("id = ?", roomID).
			Update("is_available", true).Error
	})
	return translate(err)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUserWithRooms(ctx context.Context, userID int64) ([]BookingWithRoom, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rows []BookingWithRoom
	q := `
SELECT b.id, b.check_in, b.check_out, b.guest_name, b.guest_email, b.guest_phone, b.created_at,
       r.id AS room_id, r.name AS room_name, r.number AS room_number,
       r.category AS room_category, r.price AS room_price
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.user_id = ?
ORDER BY b.check_in
`
	tx := r.db.WithContext(ctx).Raw(q, userID).Scan(&rows)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return rows, nil
}

func (r *BookingRepository) ListAllWithDetails(ctx context.Context) ([]AdminBookingRow, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rows []AdminBookingRow
	q := `
SELECT b.id, b.check_in, b.check_out, b.guest_name, b.guest_email, b.guest_phone, b.created_at,
       r.id AS room_id, r.name AS room_name, r.number AS room_number,
       r.category AS room_category, r.price AS room_price,
       u.id AS user_id, u.name AS user_name, u.email AS user_email
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users u ON u.id = b.user_id
ORDER BY b.check_in DESC
`
	tx := r.db.WithContext(ctx).Raw(q).Scan(&rows)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return rows, nil
}

func (r *BookingRepository) ListRecent(ctx context.Context, limit int) ([]AdminBookingRow, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rows []AdminBookingRow
	q := `
SELECT b.id, b.check_in, b.check_out, b.guest_name, b.guest_email, b.guest_phone, b.created_at,
       r.id AS room_id, r.name AS room_name, r.number AS room_number,
       r.category AS room_category, r.price AS room_price,
       u.id AS user_id, u.name AS user_name, u.email AS user_email
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users u ON u.id = b.user_id
ORDER BY b.created_at DESC
LIMIT ?
`
	tx := r.db.WithContext(ctx).Raw(q, limit).Scan(&rows)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return rows, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&cnt)
	if tx.Error != nil {
		return 0, translate(tx.Error)
	}
	return cnt, nil
}
