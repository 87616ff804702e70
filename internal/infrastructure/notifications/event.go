package notifications

import (
	"time"

	"agency_quotes/internal/usecase/interfaces"
)

const (
	EventQuoteCreated = "quote.created"
	EventQuoteSigned  = "quote.signed"
)

// Event is the JSON message consumed by the mailer.
type Event struct {
	Event       string    `json:"event"`
	QuoteID     string    `json:"quote_id"`
	OwnerID     string    `json:"owner_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	ProjectName string    `json:"project_name"`
	PDFURL      string    `json:"pdf_url"`
	Number      string    `json:"number"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func newEvent(kind string, n interfaces.QuoteNotification) Event {
	return Event{
		Event:       kind,
		QuoteID:     n.QuoteID,
		OwnerID:     n.OwnerID,
		Email:       n.Email,
		Name:        n.Name,
		ProjectName: n.ProjectName,
		PDFURL:      n.PDFURL,
		Number:      n.Number,
		OccurredAt:  n.OccurredAt.UTC(),
	}
}
