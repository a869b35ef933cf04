package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Indent is an internal purchase request raised by a department.
type Indent struct {
	ID            string          `bson:"_id" json:"id"`
	Title         string          `bson:"title" json:"title"`
	Department    string          `bson:"department" json:"department"`
	Quantity      int             `bson:"quantity" json:"quantity"`
	Amount        decimal.Decimal `bson:"amount" json:"amount"`
	Priority      Priority        `bson:"priority" json:"priority"`
	Status        Status          `bson:"status" json:"status"`
	RequestedBy   string          `bson:"requested_by" json:"requested_by"`
	BudgetHead    string          `bson:"budget_head" json:"budget_head"`
	Justification string          `bson:"justification" json:"justification"`
	Items         []IndentItem    `bson:"items" json:"items"`
	ApprovalTrail []Role          `bson:"approval_trail" json:"approval_trail"`
	Remarks       string          `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Version       int             `bson:"version" json:"version"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at" json:"updated_at"`
}

// IndentItem is one requested line.
type IndentItem struct {
	Name             string          `bson:"name" json:"name" binding:"required"`
	Description      string          `bson:"description" json:"description"`
	Quantity         int             `bson:"quantity" json:"quantity" binding:"required,gt=0"`
	Make             string          `bson:"make" json:"make"`
	UnitOfMeasure    string          `bson:"unit_of_measure" json:"unit_of_measure"`
	StockOnHand      int             `bson:"stock_on_hand" json:"stock_on_hand"`
	ApproximateValue decimal.Decimal `bson:"approximate_value" json:"approximate_value"`
	Purpose          string          `bson:"purpose" json:"purpose"`
}

// Specification renders the item list as the free-text block used in enquiry letters.
func (i Indent) Specification() string {
	if len(i.Items) == 0 {
		return i.Justification
	}

	var spec string
	for idx, item := range i.Items {
		if idx > 0 {
			spec += "\n"
		}
		spec += item.Name
		if item.Make != "" {
			spec += " (" + item.Make + ")"
		}
		if item.Description != "" {
			spec += ": " + item.Description
		}
	}
	return spec
}

// Clone returns a copy safe to mutate without touching the original slices.
func (i Indent) Clone() Indent {
	out := i
	out.Items = append([]IndentItem(nil), i.Items...)
	out.ApprovalTrail = append([]Role(nil), i.ApprovalTrail...)
	return out
}

// NewIndentRequest captures the fields an indenter supplies for a draft.
type NewIndentRequest struct {
	Title         string          `json:"title" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount"`
	Priority      string          `json:"priority" binding:"required"`
	BudgetHead    string          `json:"budget_head" binding:"required"`
	Justification string          `json:"justification" binding:"required"`
	Items         []IndentItem    `json:"items" binding:"dive"`
}

// RejectRequest carries the mandatory rejection remarks.
type RejectRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}
