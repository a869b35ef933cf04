package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/access"
	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/server/middleware"
	"github.com/mamadbah2/procurement/internal/service/procurement"
	"github.com/mamadbah2/procurement/internal/service/workflow"
)

// PageHandler renders the role dashboards as JSON views.
type PageHandler struct {
	indents     *workflow.Service
	procurement *procurement.Service
	logger      *zap.Logger
}

// NewPageHandler constructs the page handler.
func NewPageHandler(indents *workflow.Service, desk *procurement.Service, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{indents: indents, procurement: desk, logger: logger}
}

// Home sends visitors to their landing page, or to login.
func (h *PageHandler) Home(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		if path, ok := access.Landing(user.Role); ok {
			c.Redirect(http.StatusFound, path)
			return
		}
	}
	c.Redirect(http.StatusFound, access.LoginPath)
}

// Dashboard shows the caller's indents, counts per status and, for the
// purchase desk and vendors, the open enquiries.
func (h *PageHandler) Dashboard(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	indents, err := h.indents.List(ctx, user, workflow.ListQuery{
		Query:    c.Query("q"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		respondError(c, h.logger, "dashboard", err)
		return
	}

	counts, err := h.indents.Counts(ctx, user)
	if err != nil {
		respondError(c, h.logger, "dashboard", err)
		return
	}

	view := gin.H{
		"view":    string(user.Role) + "/dashboard",
		"user":    user,
		"indents": indents,
		"counts":  counts,
	}

	if user.Role == models.RoleVendor || user.Role == models.RoleCPD {
		enquiries, err := h.procurement.ListEnquiries(ctx, user, models.EnquiryFilter{Status: models.EnquiryPending})
		if err != nil {
			respondError(c, h.logger, "dashboard", err)
			return
		}
		view["enquiries"] = enquiries
	}

	c.JSON(http.StatusOK, view)
}

// NotFound is the catch-all view for unknown paths.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"view":  "not_found",
		"error": "page not found",
		"path":  c.Request.URL.Path,
		"actions": []gin.H{
			{"label": "go back", "action": "back"},
			{"label": "return to login", "href": access.LoginPath},
		},
	})
}
