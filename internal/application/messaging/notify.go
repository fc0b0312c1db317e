package messaging

import (
	"context"

	"github.com/google/uuid"
)

// Notifier exposes the SMS service to the other contexts as their small
// notification ports (gate sign-in alerts, overdue task reminders)
type Notifier struct {
	sms *SMSService
}

// NewNotifier wraps an SMS service
func NewNotifier(sms *SMSService) *Notifier {
	return &Notifier{sms: sms}
}

// NotifySignIn sends the host a gate arrival alert, correlated to the guest
func (n *Notifier) NotifySignIn(ctx context.Context, guestID uuid.UUID, hostPhone, body string) error {
	_, err := n.sms.Send(ctx, SendSMSRequest{
		Recipient: hostPhone,
		Body:      body,
		GuestID:   &guestID,
	})
	return err
}

// SendTaskReminder sends an overdue-task reminder, correlated to the case
func (n *Notifier) SendTaskReminder(ctx context.Context, caseID *uuid.UUID, phone, body string) error {
	_, err := n.sms.Send(ctx, SendSMSRequest{
		Recipient: phone,
		Body:      body,
		CaseID:    caseID,
	})
	return err
}
