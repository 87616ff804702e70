package interfaces

import (
	"context"
	"time"
)

// QuoteNotification is the payload of the transactional quote emails.
type QuoteNotification struct {
	QuoteID     string
	OwnerID     string
	Email       string
	Name        string
	ProjectName string
	PDFURL      string
	Number      string
	OccurredAt  time.Time
}

// INotificationDispatcher fires transactional emails. Failures are reported to
// the caller but never abort a lifecycle operation.
//
//go:generate mockgen -source=notification_dispatcher_interface.go -destination=mocks/notification_dispatcher_mock.go -package=mock_interfaces
type INotificationDispatcher interface {
	QuoteCreated(ctx context.Context, n QuoteNotification) error
	QuoteSigned(ctx context.Context, n QuoteNotification) error
}
