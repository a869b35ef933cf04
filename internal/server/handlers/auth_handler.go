package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/access"
	"github.com/mamadbah2/procurement/internal/auth"
	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/server/middleware"
)

// AuthHandler serves login, logout and the login view.
type AuthHandler struct {
	svc    *auth.Service
	ttl    time.Duration
	logger *zap.Logger
}

// NewAuthHandler constructs the authentication handler.
func NewAuthHandler(svc *auth.Service, ttl time.Duration, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, ttl: ttl, logger: logger}
}

type demoAccount struct {
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Role       models.Role `json:"role"`
	Department string      `json:"department,omitempty"`
}

// LoginView lists the demo accounts. Signed-in users are pointed at their landing page.
func (h *AuthHandler) LoginView(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		if path, ok := access.Landing(user.Role); ok {
			c.Redirect(http.StatusFound, path)
			return
		}
	}

	accounts := h.svc.Accounts()
	out := make([]demoAccount, 0, len(accounts))
	for _, u := range accounts {
		out = append(out, demoAccount{Email: u.Email, Name: u.Name, Role: u.Role, Department: u.Department})
	}
	c.JSON(http.StatusOK, gin.H{
		"view":     "login",
		"action":   "/api/auth/login",
		"accounts": out,
	})
}

// Login checks the demo credentials and stores the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	token, user, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "login", err)
		return
	}

	redirect, ok := access.Landing(user.Role)
	if !ok {
		redirect = access.LoginPath
	}

	middleware.SetSessionCookie(c, token, h.ttl)
	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user, Redirect: redirect})
}

// Logout revokes the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := auth.FromContext(c.Request.Context())
	if _, ok := session.Current(); ok {
		if err := h.svc.Logout(session); err != nil {
			h.logger.Warn("logout without claims", zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"redirect": access.LoginPath})
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	landing, _ := access.Landing(user.Role)
	c.JSON(http.StatusOK, gin.H{"user": user, "landing": landing})
}
