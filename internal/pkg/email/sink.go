package email

import (
	"context"
	"fmt"

	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/pkg/notify"
)

// RecipientResolver looks up the address and display name of a user
type RecipientResolver interface {
	Recipient(ctx context.Context, userID int64) (address, name string, err error)
}

// NotificationSink mails lifecycle events to the student who filed the complaint
type NotificationSink struct {
	mailer     EmailService
	recipients RecipientResolver
}

// NewNotificationSink creates a sink sending through mailer
func NewNotificationSink(mailer EmailService, recipients RecipientResolver) *NotificationSink {
	return &NotificationSink{mailer: mailer, recipients: recipients}
}

// Name implements notify.Sink
func (s *NotificationSink) Name() string { return "email" }

// Deliver implements notify.Sink
func (s *NotificationSink) Deliver(ctx context.Context, e notify.Event) error {
	switch payload := e.Payload.(type) {
	case notify.ComplaintCreatedPayload:
		address, name, err := s.recipients.Recipient(ctx, payload.Complaint.StudentID)
		if err != nil {
			return fmt.Errorf("resolve recipient: %w", err)
		}
		return s.mailer.SendComplaintReceivedEmail(address, name, payload.Complaint)
	case models.StatusChange:
		address, name, err := s.recipients.Recipient(ctx, payload.StudentID)
		if err != nil {
			return fmt.Errorf("resolve recipient: %w", err)
		}
		return s.mailer.SendStatusChangedEmail(address, name, payload)
	default:
		return nil
	}
}
