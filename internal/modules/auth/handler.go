package auth

import (
	"errors"
	"net/http"
	"time"

	"roomreserve/internal/domain"
	"roomreserve/internal/middleware"
	"roomreserve/internal/pkg/response"
	"roomreserve/internal/repository"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for registration, login and logout.
type Handler struct {
	service       *Service
	cookieTTL     time.Duration
	secureCookies bool
}

func NewHandler(service *Service, cookieTTL time.Duration, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		cookieTTL:     cookieTTL,
		secureCookies: secureCookies,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/users/me", h.GetMe)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, repository.ErrTimeout):
			response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage temporarily unavailable, retry shortly")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		}
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, http.StatusCreated, gin.H{
		"user":  toPublic(user),
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, repository.ErrTimeout):
			response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage temporarily unavailable, retry shortly")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, http.StatusOK, gin.H{
		"user":  toPublic(user),
		"token": token,
	})
}

// Logout destroys the server-side session regardless of client cooperation
// and always reports success.
func (h *Handler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if err := h.service.Logout(c.Request.Context(), token); err != nil &&
		!errors.Is(err, repository.ErrTimeout) {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": toPublic(user)})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(
		middleware.SessionCookieName,
		token,
		int(h.cookieTTL.Seconds()),
		"/",
		"",
		h.secureCookies,
		true,
	)
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
