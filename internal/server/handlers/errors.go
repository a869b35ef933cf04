package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/auth"
	"github.com/mamadbah2/procurement/internal/document"
	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/repository"
	"github.com/mamadbah2/procurement/internal/service/procurement"
	"github.com/mamadbah2/procurement/internal/service/workflow"
)

var errForbidden = errors.New("not permitted for this role")

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, workflow.ErrForbidden),
		errors.Is(err, procurement.ErrForbidden),
		errors.Is(err, errForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrTransitionNotAllowed),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, procurement.ErrIndentNotReady),
		errors.Is(err, procurement.ErrEnquiryClosed),
		errors.Is(err, procurement.ErrQuoteExpired):
		return http.StatusConflict
	case errors.Is(err, procurement.ErrNoQuote):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrRemarksRequired),
		errors.Is(err, workflow.ErrInvalidInput),
		errors.Is(err, procurement.ErrInvalidInput),
		errors.Is(err, document.ErrNoVendorsSelected):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Server-side failures are logged and
// reported without internal detail.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	status := statusFor(err)
	if status < http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Error(op+" failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
	message := "internal server error"
	if errors.Is(err, document.ErrGenerate) {
		message = document.ErrGenerate.Error()
	}
	c.JSON(status, gin.H{"error": message})
}

// badRequest reports a binding failure.
func badRequest(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
