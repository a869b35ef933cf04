package models

import "time"

// AuditEntry is one immutable record of a workflow transition.
type AuditEntry struct {
	ID           string    `bson:"_id" json:"id"`
	IndentID     string    `bson:"indent_id" json:"indent_id"`
	Action       Action    `bson:"action" json:"action"`
	ActorID      string    `bson:"actor_id" json:"actor_id"`
	ActorRole    Role      `bson:"actor_role" json:"actor_role"`
	StatusBefore Status    `bson:"status_before" json:"status_before"`
	StatusAfter  Status    `bson:"status_after" json:"status_after"`
	Remarks      string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
	PerformedAt  time.Time `bson:"performed_at" json:"performed_at"`
}
