package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/service"
	"go.uber.org/zap"
)

// SessionCookieName carries the session token.
const SessionCookieName = "pikasmart_jwt_tk"

const sessionCookieMaxAge = 24 * 60 * 60

// Context keys set by RequireSession.
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

// SessionAuthenticator resolves a session token to its user.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// sessionToken reads the session cookie, falling back to a bearer header.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireSession rejects requests without a valid session and stores the
// signed-in user in the context.
func RequireSession(auth SessionAuthenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "Authentication token missing")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrTokenExpired):
			abort(c, http.StatusUnauthorized, "Session expired - please sign in again")
			return
		case errors.Is(err, service.ErrTokenInvalid), errors.Is(err, service.ErrTokenMissing):
			abort(c, http.StatusUnauthorized, "Invalid authentication token")
			return
		case errors.Is(err, service.ErrUserNotFound):
			abort(c, http.StatusNotFound, "User not found")
			return
		default:
			log.Error("session lookup failed", zap.Error(err))
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireSession.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// SetSessionCookie stores token in an HTTP-only, same-site strict cookie
// that lives for one day.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, sessionCookieMaxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
