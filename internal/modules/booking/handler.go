package booking

import (
	"errors"
	"net/http"
	"strconv"

	"roomreserve/internal/domain"
	"roomreserve/internal/middleware"
	"roomreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.ListMine)
		bookings.DELETE("/:id", h.Cancel)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cmd, fields := req.Command()
	if fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request", fields)
		return
	}

	userID := c.GetInt64(middleware.ContextUserID)

	b, err := h.service.CreateBooking(c.Request.Context(), userID, cmd)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoomUnavailable):
			response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", "Room not available for selected dates")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
		case errors.Is(err, ErrTransient):
			response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage temporarily unavailable, retry shortly")
		default:
			response.Error(c, http.StatusInternalServerError, "BOOKING_FAILED", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	rows, err := h.service.ListBookingsForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrTransient) {
			response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage temporarily unavailable, retry shortly")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) Cancel(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	userID := c.GetInt64(middleware.ContextUserID)
	role := domain.UserRole(c.GetString(middleware.ContextRole))

	if err := h.service.CancelBooking(c.Request.Context(), userID, role, bookingID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrUnauthorized):
			response.Error(c, http.StatusForbidden, "UNAUTHORIZED", "You cannot cancel this booking")
		case errors.Is(err, ErrTransient):
			response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage temporarily unavailable, retry shortly")
		default:
			response.Error(c, http.StatusInternalServerError, "CANCEL_FAILED", "Failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Booking cancelled"})
}
