package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"roomreserve/internal/domain"
	"roomreserve/internal/middleware"
	"roomreserve/internal/modules/booking"
	"roomreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service   *Service
	canceller BookingCanceller
}

func NewHandler(service *Service, canceller BookingCanceller) *Handler {
	return &Handler{service: service, canceller: canceller}
}

// RegisterPublicRoutes exposes the guest-facing room catalog.
func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	rooms := public.Group("/rooms")
	{
		rooms.GET("", h.ListAvailable)
		rooms.GET("/:id", h.Get)
	}
}

// RegisterAdminRoutes exposes room management and the dashboard. The group
// is expected to already carry RequireAuth and RequireAdmin.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.Dashboard)

	rooms := admin.Group("/rooms")
	{
		rooms.GET("", h.ListAll)
		rooms.POST("", h.CreateRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.DELETE("/:id", h.DeleteRoom)
	}

	bookings := admin.Group("/bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

func (h *Handler) ListAvailable(c *gin.Context) {
	rooms, err := h.service.ListAvailableRooms(c.Request.Context())
	if err != nil {
		h.storeFail(c, err, "Failed to list rooms")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
			return
		}
		h.storeFail(c, err, "Failed to fetch room")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) ListAll(c *gin.Context) {
	rooms, err := h.service.ListAllRooms(c.Request.Context())
	if err != nil {
		h.storeFail(c, err, "Failed to list rooms")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, fields, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		h.roomWriteFail(c, err, fields, "Failed to create room")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, fields, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		h.roomWriteFail(c, err, fields, "Failed to update room")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
			return
		}
		h.storeFail(c, err, "Failed to delete room")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Room deleted"})
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.storeFail(c, err, "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) ListBookings(c *gin.Context) {
	rows, err := h.service.ListAllBookings(c.Request.Context())
	if err != nil {
		h.storeFail(c, err, "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

// DeleteBooking removes any booking on behalf of an admin. It goes through
// the reservation engine so the room flag is released in the same
// transaction as the delete.
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	userID := c.GetInt64(middleware.ContextUserID)

	if err := h.canceller.CancelBooking(c.Request.Context(), userID, domain.RoleAdmin, id); err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, booking.ErrTransient):
			response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage temporarily unavailable, retry shortly")
		default:
			response.Error(c, http.StatusInternalServerError, "CANCEL_FAILED", "Failed to delete booking")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Booking deleted"})
}

func (h *Handler) roomWriteFail(c *gin.Context, err error, fields map[string]string, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room data", fields)
	case errors.Is(err, ErrDuplicateNumber):
		response.Error(c, http.StatusConflict, "DUPLICATE_KEY", "Room number already taken")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrTransient):
		response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage temporarily unavailable, retry shortly")
	default:
		response.Error(c, http.StatusInternalServerError, "ROOM_WRITE_FAILED", fallback)
	}
}

func (h *Handler) storeFail(c *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrTransient) {
		response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage temporarily unavailable, retry shortly")
		return
	}
	response.Error(c, http.StatusInternalServerError, "STORE_FAILED", fallback)
}
