package middleware

import (
	"context"
	"net/http"
	"strings"

	"roomreserve/internal/domain"
	"roomreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "sid"
	ContextUserID     = "user_id"
	ContextRole       = "role"

	loginPath = "/login"
)

// SessionValidator resolves an opaque token to a live session.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)
}

// TokenFromRequest pulls the session token from the sid cookie, falling
// back to a bearer Authorization header for API clients.
func TokenFromRequest(c *gin.Context) string {
	if tok, err := c.Cookie(SessionCookieName); err == nil && tok != "" {
		return tok
	}

	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// RequireAuth admits only requests carrying a valid, non-expired session.
// Everything else is bounced to the login entry point with the stale cookie
// cleared; no resource is touched and no error payload leaks.
func RequireAuth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)

		sess, err := sessions.ValidateSession(c.Request.Context(), token)
		if err != nil {
			c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Set(ContextRole, string(sess.Role))
		c.Next()
	}
}

// RequireAdmin rejects authenticated-but-unprivileged callers with 403,
// a distinct outcome from the login redirect. Runs after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch domain.UserRole(c.GetString(ContextRole)) {
		case domain.RoleAdmin:
			c.Next()
		case domain.RoleGuest:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
		default:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
		}
	}
}
