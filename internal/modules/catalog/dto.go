package catalog

import (
	"time"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"
)

type RoomRequest struct {
	Name        string   `json:"name" validate:"required"`
	Number      int      `json:"number" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required,oneof=Standard Deluxe Suite"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Capacity    int      `json:"capacity" validate:"required,gt=0"`
	Amenities   []string `json:"amenities"`
}

func (r RoomRequest) toDomain() *domain.Room {
	return &domain.Room{
		Name:        r.Name,
		Number:      r.Number,
		Category:    domain.RoomCategory(r.Category),
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Amenities:   r.Amenities,
	}
}

type AdminBookingResponse struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"room_id"`
	RoomName   string    `json:"room_name"`
	RoomNumber int       `json:"room_number"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserEmail  string    `json:"user_email"`
	GuestName  string    `json:"guest_name"`
	GuestPhone string    `json:"guest_phone"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	CreatedAt  time.Time `json:"created_at"`
}

type DashboardResponse struct {
	RoomCount      int64                  `json:"room_count"`
	BookingCount   int64                  `json:"booking_count"`
	RecentBookings []AdminBookingResponse `json:"recent_bookings"`
}

func toAdminBookingResponse(row repository.AdminBookingRow) AdminBookingResponse {
	return AdminBookingResponse{
		ID:         row.ID,
		RoomID:     row.RoomID,
		RoomName:   row.RoomName,
		RoomNumber: row.RoomNumber,
		UserID:     row.UserID,
		UserName:   row.UserName,
		UserEmail:  row.UserEmail,
		GuestName:  row.GuestName,
		GuestPhone: row.GuestPhone,
		CheckIn:    row.CheckIn,
		CheckOut:   row.CheckOut,
		CreatedAt:  row.CreatedAt,
	}
}

func toAdminBookingResponses(rows []repository.AdminBookingRow) []AdminBookingResponse {
	out := make([]AdminBookingResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toAdminBookingResponse(row))
	}
	return out
}
