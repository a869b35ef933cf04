package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is the final procurement document issued to a vendor.
type PurchaseOrder struct {
	PONumber    string          `bson:"_id" json:"po_number"`
	IndentID    string          `bson:"indent_id" json:"indent_id"`
	VendorID    string          `bson:"vendor_id" json:"vendor_id"`
	QuoteID     string          `bson:"quote_id" json:"quote_id"`
	Description string          `bson:"description" json:"description"`
	Quantity    int             `bson:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `bson:"unit_price" json:"unit_price"`
	Total       decimal.Decimal `bson:"total" json:"total"`
	IssuedBy    string          `bson:"issued_by" json:"issued_by"`
	IssuedAt    time.Time       `bson:"issued_at" json:"issued_at"`
}

// IssuePurchaseOrderRequest selects the winning vendor for an indent.
type IssuePurchaseOrderRequest struct {
	VendorID string `json:"vendor_id" binding:"required"`
}

// NewPONumber derives the order number from the indent and the issue instant.
func NewPONumber(indentID string, issuedAt time.Time) string {
	return fmt.Sprintf("PO-%s-%d", indentID, issuedAt.UnixMilli())
}
