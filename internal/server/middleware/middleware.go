// Package middleware holds the gin middlewares shared by pages and the API.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/access"
	"github.com/mamadbah2/procurement/internal/auth"
	"github.com/mamadbah2/procurement/internal/domain/models"
)

// SessionRestorer turns a stored token into a session.
type SessionRestorer interface {
	Restore(token string) (auth.Session, error)
}

// RouteGuard decides whether a role may open a page.
type RouteGuard interface {
	Allowed(role models.Role, path, method string) (bool, error)
}

// Logger logs every completed request.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if user, ok := CurrentUser(c); ok {
			fields = append(fields, zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
		}
		logger.Info("request completed", fields...)
	}
}

// Session restores the caller's session from the cookie or a Bearer header.
// A token that fails to restore is logged and its cookie cleared; the request
// then continues without a session.
func Session(restorer SessionRestorer, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, fromCookie := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := restorer.Restore(token)
		if err != nil {
			logger.Warn("discarding stored session", zap.Error(err), zap.Bool("cookie", fromCookie))
			if fromCookie {
				ClearSessionCookie(c)
			}
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

// RequirePage redirects visitors without a session to the login page and
// refuses pages that belong to another role.
func RequirePage(guard RouteGuard, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, access.LoginPath)
			c.Abort()
			return
		}

		allowed, err := guard.Allowed(user.Role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			logger.Error("route check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authorization check failed"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// RequireSession answers 401 for API calls without a session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the signed-in user attached by Session.
func CurrentUser(c *gin.Context) (models.User, bool) {
	return auth.FromContext(c.Request.Context()).Current()
}

// SetSessionCookie stores the token under the session cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(ttl.Seconds()), "/", "", false, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
}

func sessionToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token), false
		}
	}
	cookie, err := c.Cookie(auth.CookieName)
	if err != nil || cookie == "" {
		return "", false
	}
	return cookie, true
}
