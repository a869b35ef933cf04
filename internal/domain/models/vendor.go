package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor is a registered supplier.
type Vendor struct {
	ID              string  `bson:"_id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Category        string  `bson:"category" json:"category"`
	ContactPerson   string  `bson:"contact_person" json:"contact_person"`
	Email           string  `bson:"email" json:"email"`
	Phone           string  `bson:"phone" json:"phone"`
	Location        string  `bson:"location" json:"location"`
	Rating          float64 `bson:"rating" json:"rating"`
	TotalOrders     int     `bson:"total_orders" json:"total_orders"`
	CompletedOrders int     `bson:"completed_orders" json:"completed_orders"`
}

// Enquiry is a vendor-facing request for quotation derived from an indent.
type Enquiry struct {
	ID               string        `bson:"_id" json:"id"`
	IndentID         string        `bson:"indent_id" json:"indent_id"`
	Title            string        `bson:"title" json:"title"`
	Department       string        `bson:"department" json:"department"`
	Quantity         int           `bson:"quantity" json:"quantity"`
	Specification    string        `bson:"specification" json:"specification"`
	VendorCategory   string        `bson:"vendor_category" json:"vendor_category"`
	VendorIDs        []string      `bson:"vendor_ids" json:"vendor_ids"`
	DeliveryTimeline string        `bson:"delivery_timeline" json:"delivery_timeline"`
	Deadline         time.Time     `bson:"deadline" json:"deadline"`
	Status           EnquiryStatus `bson:"status" json:"status"`
	SentBy           string        `bson:"sent_by" json:"sent_by"`
	CreatedAt        time.Time     `bson:"created_at" json:"created_at"`
}

// HasVendor reports whether the enquiry was addressed to the vendor.
func (e Enquiry) HasVendor(vendorID string) bool {
	for _, id := range e.VendorIDs {
		if id == vendorID {
			return true
		}
	}
	return false
}

// SendEnquiryRequest is the payload for dispatching an enquiry.
type SendEnquiryRequest struct {
	VendorIDs        []string  `json:"vendor_ids"`
	VendorCategory   string    `json:"vendor_category"`
	DeliveryTimeline string    `json:"delivery_timeline" binding:"required"`
	Deadline         time.Time `json:"deadline" binding:"required"`
}

// Quote is a vendor's priced response to an enquiry.
type Quote struct {
	ID              string          `bson:"_id" json:"id"`
	EnquiryID       string          `bson:"enquiry_id" json:"enquiry_id"`
	IndentID        string          `bson:"indent_id" json:"indent_id"`
	VendorID        string          `bson:"vendor_id" json:"vendor_id"`
	OriginalPrice   decimal.Decimal `bson:"original_price" json:"original_price"`
	DiscountedPrice decimal.Decimal `bson:"discounted_price" json:"discounted_price"`
	DeliveryTime    string          `bson:"delivery_time" json:"delivery_time"`
	Warranty        string          `bson:"warranty" json:"warranty"`
	Terms           string          `bson:"terms" json:"terms"`
	ValidFrom       time.Time       `bson:"valid_from" json:"valid_from"`
	ValidUntil      time.Time       `bson:"valid_until" json:"valid_until"`
	SubmittedDate   time.Time       `bson:"submitted_date" json:"submitted_date"`
}

// QuoteRequest is the payload a vendor submits.
type QuoteRequest struct {
	VendorID        string          `json:"vendor_id"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	DeliveryTime    string          `json:"delivery_time" binding:"required"`
	Warranty        string          `json:"warranty"`
	Terms           string          `json:"terms"`
	ValidUntil      time.Time       `json:"valid_until" binding:"required"`
}
