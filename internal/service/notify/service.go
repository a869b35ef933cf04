package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/domain/models"
	client "github.com/mamadbah2/procurement/pkg/clients/webhook"
)

// Publisher delivers notifications. Delivery problems never reach the caller.
type Publisher interface {
	Publish(ctx context.Context, n models.OutboundNotification)
}

// Service posts notifications to the configured webhook.
type Service struct {
	client client.Client
	logger *zap.Logger
}

// NewService wires a new service instance. A nil client disables delivery.
func NewService(client client.Client, logger *zap.Logger) *Service {
	svc := &Service{
		client: client,
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

var eventReplies = map[models.EventType]models.AutomationReply{
	models.EventIndentSubmitted: {
		Title:   "Indent awaiting approval",
		Message: "Indent %s (%s) from %s is waiting for your decision.",
	},
	models.EventIndentApproved: {
		Title:   "Indent forwarded",
		Message: "Indent %s (%s) was approved by %s and now awaits your review.",
	},
	models.EventIndentApprovedFinal: {
		Title:   "Indent approved",
		Message: "Indent %s (%s) received final approval and is ready for purchase.",
	},
	models.EventIndentRejected: {
		Title:   "Indent rejected",
		Message: "Indent %s (%s) was rejected by %s: %s",
	},
	models.EventEnquirySent: {
		Title:   "Enquiry sent",
		Message: "Enquiry %s for indent %s was issued to %d vendor(s). Quotes close on %s.",
	},
	models.EventPurchaseOrderIssued: {
		Title:   "Purchase order issued",
		Message: "Purchase order %s for indent %s was issued to vendor %s for %s.",
	},
	models.EventPendingDigest: {
		Title:   "Pending approvals",
		Message: "%s",
	},
}

func build(event models.EventType, recipient models.Role, resourceID, actorID string, args ...any) models.OutboundNotification {
	reply := eventReplies[event]
	return models.OutboundNotification{
		Event:      event,
		Recipient:  recipient,
		ResourceID: resourceID,
		ActorID:    actorID,
		Title:      reply.Title,
		Message:    fmt.Sprintf(reply.Message, args...),
	}
}

// IndentTransition describes a workflow step on an indent.
func IndentTransition(indent models.Indent, actor models.User, action models.Action) models.OutboundNotification {
	switch {
	case action == models.ActionSubmit:
		return build(models.EventIndentSubmitted, models.RoleHOD, indent.ID, actor.ID, indent.ID, indent.Title, indent.Department)
	case action == models.ActionReject:
		return build(models.EventIndentRejected, models.RoleIndenter, indent.ID, actor.ID, indent.ID, indent.Title, actor.Role, indent.Remarks)
	case indent.Status == models.StatusApproved:
		return build(models.EventIndentApprovedFinal, models.RoleCPD, indent.ID, actor.ID, indent.ID, indent.Title)
	default:
		owner, _ := indent.Status.Owner()
		return build(models.EventIndentApproved, owner, indent.ID, actor.ID, indent.ID, indent.Title, actor.Role)
	}
}

// EnquirySent announces a dispatched enquiry to its vendors.
func EnquirySent(enquiry models.Enquiry, actor models.User) models.OutboundNotification {
	return build(models.EventEnquirySent, models.RoleVendor, enquiry.ID, actor.ID,
		enquiry.ID, enquiry.IndentID, len(enquiry.VendorIDs), enquiry.Deadline.Format("2/1/2006"))
}

// PurchaseOrderIssued announces an issued order. total is the display amount.
func PurchaseOrderIssued(po models.PurchaseOrder, actor models.User, total string) models.OutboundNotification {
	return build(models.EventPurchaseOrderIssued, models.RoleVendor, po.PONumber, actor.ID,
		po.PONumber, po.IndentID, po.VendorID, total)
}

// Digest wraps a rendered digest text.
func Digest(text string) models.OutboundNotification {
	return build(models.EventPendingDigest, models.RoleAdmin, "", "", text)
}

// Publish posts the notification and logs any failure.
func (s *Service) Publish(ctx context.Context, n models.OutboundNotification) {
	if s.client == nil {
		s.logger.Debug("notification delivery disabled", zap.String("event", string(n.Event)), zap.String("resource_id", n.ResourceID))
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.client.Post(ctxWithTimeout, n); err != nil {
		s.logger.Warn("failed to deliver notification",
			zap.Error(err),
			zap.String("event", string(n.Event)),
			zap.String("resource_id", n.ResourceID))
		return
	}

	s.logger.Info("notification delivered",
		zap.String("event", string(n.Event)),
		zap.String("recipient", string(n.Recipient)),
		zap.String("resource_id", n.ResourceID))
}
