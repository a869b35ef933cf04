package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/server/middleware"
	"github.com/mamadbah2/procurement/internal/service/reporting"
)

// ReportHandler serves the backlog digest and spend summaries.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the report handler.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Pending returns the per-stage approval backlog.
func (h *ReportHandler) Pending(c *gin.Context) {
	if !h.authorized(c) {
		return
	}

	digest, err := h.svc.PendingDigest(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, h.logger, "pending digest", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"digest": digest, "text": reporting.DigestText(digest)})
}

// Spend totals purchase orders issued between from and to (default: last 7 days).
func (h *ReportHandler) Spend(c *gin.Context) {
	if !h.authorized(c) {
		return
	}

	start, end, err := periodFromQuery(c, 7)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.svc.SpendSummary(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, h.logger, "spend summary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "text": h.svc.SpendText(summary)})
}

func (h *ReportHandler) authorized(c *gin.Context) bool {
	user, _ := middleware.CurrentUser(c)
	switch user.Role {
	case models.RoleAdmin, models.RoleManagement, models.RoleCPD:
		return true
	}
	respondError(c, h.logger, "report", errForbidden)
	return false
}
