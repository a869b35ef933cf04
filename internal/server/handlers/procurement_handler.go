package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/document"
	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/server/middleware"
	"github.com/mamadbah2/procurement/internal/service/procurement"
)

// dateParam is the layout of from/to query parameters.
const dateParam = "2006-01-02"

// ProcurementHandler exposes vendors, enquiries, quotes and purchase orders.
type ProcurementHandler struct {
	svc    *procurement.Service
	logger *zap.Logger
}

// NewProcurementHandler constructs the procurement handler.
func NewProcurementHandler(svc *procurement.Service, logger *zap.Logger) *ProcurementHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcurementHandler{svc: svc, logger: logger}
}

// Vendors lists the vendor directory filtered by q and category.
func (h *ProcurementHandler) Vendors(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	vendors, err := h.svc.ListVendors(c.Request.Context(), user, models.VendorFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		respondError(c, h.logger, "list vendors", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

// Enquiries lists enquiries visible to the caller.
func (h *ProcurementHandler) Enquiries(c *gin.Context) {
	var status models.EnquiryStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.ParseEnquiryStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status = parsed
	}

	user, _ := middleware.CurrentUser(c)
	enquiries, err := h.svc.ListEnquiries(c.Request.Context(), user, models.EnquiryFilter{
		Status:   status,
		IndentID: c.Query("indent_id"),
	})
	if err != nil {
		respondError(c, h.logger, "list enquiries", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enquiries": enquiries})
}

// Enquiry returns one enquiry.
func (h *ProcurementHandler) Enquiry(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	enquiry, err := h.svc.GetEnquiry(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get enquiry", err)
		return
	}
	c.JSON(http.StatusOK, enquiry)
}

// SendEnquiry records an enquiry for an indent and downloads the letter.
func (h *ProcurementHandler) SendEnquiry(c *gin.Context) {
	var req models.SendEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	enquiry, doc, err := h.svc.SendEnquiry(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, "send enquiry", err)
		return
	}

	c.Header("X-Enquiry-ID", enquiry.ID)
	attach(c, doc)
}

// SubmitQuote records a vendor quotation.
func (h *ProcurementHandler) SubmitQuote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	quote, err := h.svc.SubmitQuote(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, "submit quote", err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// Quotes lists the quotes on an enquiry, cheapest first.
func (h *ProcurementHandler) Quotes(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	quotes, err := h.svc.ListQuotes(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "list quotes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

// IssuePurchaseOrder raises a PO for an indent and downloads it.
func (h *ProcurementHandler) IssuePurchaseOrder(c *gin.Context) {
	var req models.IssuePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	po, doc, err := h.svc.IssuePurchaseOrder(c.Request.Context(), user, c.Param("id"), req.VendorID)
	if err != nil {
		respondError(c, h.logger, "issue purchase order", err)
		return
	}

	c.Header("X-PO-Number", po.PONumber)
	attach(c, doc)
}

// PurchaseOrders lists orders issued between from and to (default: last 30 days).
func (h *ProcurementHandler) PurchaseOrders(c *gin.Context) {
	start, end, err := periodFromQuery(c, 30)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, _ := middleware.CurrentUser(c)
	orders, err := h.svc.ListPurchaseOrders(c.Request.Context(), user, start, end)
	if err != nil {
		respondError(c, h.logger, "list purchase orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase_orders": orders})
}

func attach(c *gin.Context, doc document.Document) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusCreated, "application/pdf", doc.Content)
}

// periodFromQuery reads from/to as whole days; to is inclusive.
func periodFromQuery(c *gin.Context, defaultDays int) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -defaultDays)

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateParam, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("from must be YYYY-MM-DD")
		}
		start = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateParam, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("to must be YYYY-MM-DD")
		}
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("to is before from")
	}
	return start, end, nil
}
