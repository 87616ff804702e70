package entities

import (
	"fmt"
	"time"
)

// QuoteStatus represents the lifecycle of a quote (devis).
//
// Domain notes:
//   - pending -> signed is the only stored transition.
//   - cancelled is modeled as deletion; no row ever carries it.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusSigned    QuoteStatus = "signed"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

// DefaultQuoteAmount is displayed and charged when a quote carries no amount (cents).
const DefaultQuoteAmount int64 = 149000

// Quote is the sales offer attached to exactly one project.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (project_id-index): project_id
//
// Monetary representation:
//   - Amount is in cents; nil means "use DefaultQuoteAmount".
type Quote struct {
	ID        string      `json:"id"`
	ProjectID string      `json:"project_id"`
	Number    int64       `json:"number"`
	PDFURL    string      `json:"pdf_url"`
	Client    ClientParty `json:"client"`
	Amount    *int64      `json:"amount,omitempty"`
	Services  []string    `json:"services"`
	Delay     string      `json:"delay"`

	// Signature is nil while the quote is pending. A signed quote always
	// carries both the signed artifact URL and the signing time.
	Signature *QuoteSignature `json:"signature,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuoteSignature is the signed state of a quote.
type QuoteSignature struct {
	PDFURL   string    `json:"signed_pdf_url"`
	SignedAt time.Time `json:"signed_at"`
}

func (q Quote) Status() QuoteStatus {
	if q.Signature != nil {
		return QuoteStatusSigned
	}
	return QuoteStatusPending
}

func (q Quote) IsPending() bool {
	return q.Status() == QuoteStatusPending
}

// FormattedNumber is the six-digit display form of the quote number.
func (q Quote) FormattedNumber() string {
	return FormatQuoteNumber(q.Number)
}

// EffectiveAmount returns the amount in cents, falling back to DefaultQuoteAmount.
func (q Quote) EffectiveAmount() int64 {
	if q.Amount != nil {
		return *q.Amount
	}
	return DefaultQuoteAmount
}

func FormatQuoteNumber(n int64) string {
	return fmt.Sprintf("%06d", n)
}

// ClientParty is the client identity printed on the document, snapshotted at
// issuance so the signed variant reproduces the same party block.
type ClientParty struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}
