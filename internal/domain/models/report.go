package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingDigest summarises the approval backlog per stage.
type PendingDigest struct {
	GeneratedAt time.Time      `bson:"generated_at" json:"generated_at"`
	PerStage    map[Status]int `bson:"per_stage" json:"per_stage"`
	Total       int            `bson:"total" json:"total"`
}

// SpendSummary aggregates issued purchase orders for a period.
type SpendSummary struct {
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Orders     int             `json:"orders"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}
