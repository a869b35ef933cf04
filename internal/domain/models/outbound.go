package models

// EventType names a notification-worthy procurement event.
type EventType string

const (
	EventIndentSubmitted     EventType = "indent_submitted"
	EventIndentApproved      EventType = "indent_approved"
	EventIndentApprovedFinal EventType = "indent_approved_final"
	EventIndentRejected      EventType = "indent_rejected"
	EventEnquirySent         EventType = "enquiry_sent"
	EventPurchaseOrderIssued EventType = "purchase_order_issued"
	EventPendingDigest       EventType = "pending_digest"
)

// OutboundNotification is posted to the notification webhook.
type OutboundNotification struct {
	Event      EventType `json:"event"`
	Recipient  Role      `json:"recipient,omitempty"`
	ResourceID string    `json:"resource_id,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
}

// AutomationReply describes the title and body template for an event.
type AutomationReply struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
