// Package middleware provides gin middleware for the auth feature.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/transport/cookie"
	"auth_backend/internal/feature/auth/transport/http/dto"
)

// ContextAdmin is the gin context key holding the authenticated admin (*entity.User).
const ContextAdmin = "admin"

// SessionResolver resolves a session token to its user.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (*entity.User, error)
}

// RequireAdmin returns a gin middleware that lets a request through only when
// the auth_session_id cookie belongs to a live session of an admin.
// A missing or invalid session is answered with 403, the same as a non-admin.
func RequireAdmin(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookie.Session)
		user, err := sessions.CurrentUser(c.Request.Context(), token)
		if err != nil && !errors.Is(err, domain.ErrUnauthenticated) {
			slog.Error("admin session lookup failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.StatusRes{
				Status:  dto.StatusError,
				Message: "internal server error",
			})
			return
		}
		if err != nil || !user.IsAdmin() {
			slog.Warn("admin access denied", "remote_addr", c.ClientIP(), "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusForbidden, dto.StatusRes{
				Status:  dto.StatusError,
				Message: "requires admin privileges",
			})
			return
		}
		c.Set(ContextAdmin, user)
		c.Next()
	}
}

// AdminFrom returns the admin stored by RequireAdmin.
func AdminFrom(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextAdmin)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}
