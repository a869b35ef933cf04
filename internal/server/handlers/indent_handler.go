package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/server/middleware"
	"github.com/mamadbah2/procurement/internal/service/workflow"
)

// IndentHandler exposes the approval workflow.
type IndentHandler struct {
	svc    *workflow.Service
	logger *zap.Logger
}

// NewIndentHandler constructs the indent handler.
func NewIndentHandler(svc *workflow.Service, logger *zap.Logger) *IndentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IndentHandler{svc: svc, logger: logger}
}

// List returns the caller's indents filtered by q, status, priority and sort.
func (h *IndentHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	indents, err := h.svc.List(c.Request.Context(), user, workflow.ListQuery{
		Query:    c.Query("q"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		respondError(c, h.logger, "list indents", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"indents": indents, "count": len(indents)})
}

// Create stores a new draft.
func (h *IndentHandler) Create(c *gin.Context) {
	var req models.NewIndentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	indent, err := h.svc.Create(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, h.logger, "create indent", err)
		return
	}
	c.JSON(http.StatusCreated, indent)
}

// Get returns one indent.
func (h *IndentHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	indent, err := h.svc.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get indent", err)
		return
	}
	c.JSON(http.StatusOK, indent)
}

// Submit moves a draft to the HOD.
func (h *IndentHandler) Submit(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	h.respondIndent(c, "submit indent")(h.svc.Submit(c.Request.Context(), user, c.Param("id")))
}

// Approve forwards the indent to the next stage.
func (h *IndentHandler) Approve(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	h.respondIndent(c, "approve indent")(h.svc.Approve(c.Request.Context(), user, c.Param("id")))
}

// Reject closes the indent with remarks.
func (h *IndentHandler) Reject(c *gin.Context) {
	var req models.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": workflow.ErrRemarksRequired.Error()})
		return
	}

	user, _ := middleware.CurrentUser(c)
	h.respondIndent(c, "reject indent")(h.svc.Reject(c.Request.Context(), user, c.Param("id"), req.Remarks))
}

// History returns the audit trail, oldest first.
func (h *IndentHandler) History(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	entries, err := h.svc.History(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "indent history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *IndentHandler) respondIndent(c *gin.Context, op string) func(models.Indent, error) {
	return func(indent models.Indent, err error) {
		if err != nil {
			respondError(c, h.logger, op, err)
			return
		}
		c.JSON(http.StatusOK, indent)
	}
}
