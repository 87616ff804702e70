package notifications

import (
	"context"

	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// LoggingDispatcher only logs events. Used when Pub/Sub is not configured.
type LoggingDispatcher struct {
	log logrus.FieldLogger
}

var _ interfaces.INotificationDispatcher = (*LoggingDispatcher)(nil)

func NewLoggingDispatcher(l logrus.FieldLogger) *LoggingDispatcher {
	if l == nil {
		l = logger.Get()
	}
	return &LoggingDispatcher{log: l.WithField("module", "notifications")}
}

func (d *LoggingDispatcher) QuoteCreated(_ context.Context, n interfaces.QuoteNotification) error {
	d.emit(newEvent(EventQuoteCreated, n))
	return nil
}

func (d *LoggingDispatcher) QuoteSigned(_ context.Context, n interfaces.QuoteNotification) error {
	d.emit(newEvent(EventQuoteSigned, n))
	return nil
}

func (d *LoggingDispatcher) emit(e Event) {
	d.log.WithFields(logrus.Fields{
		"event":        e.Event,
		"quote_id":     e.QuoteID,
		"owner_id":     e.OwnerID,
		"project_name": e.ProjectName,
		"number":       e.Number,
		"pdf_url":      e.PDFURL,
	}).Info("notification not published (no Pub/Sub topic configured)")
}
