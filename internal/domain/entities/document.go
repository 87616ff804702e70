package entities

import "time"

// QuoteDocument is the deterministic input used for rendering a quote PDF.
type QuoteDocument struct {
	Number   int64
	IssuedAt time.Time
	Client   ClientParty
	Amount   int64
	Services []string
	Delay    string

	// Signature, when set, turns the render into the signed variant.
	Signature *DocumentSignature
}

// DocumentSignature is the normalized PNG drawn into the signature zone.
type DocumentSignature struct {
	PNG      []byte
	SignedAt time.Time
}

// NewQuoteDocument builds the render input for the original offer.
func NewQuoteDocument(q Quote) QuoteDocument {
	return QuoteDocument{
		Number:   q.Number,
		IssuedAt: q.CreatedAt,
		Client:   q.Client,
		Amount:   q.EffectiveAmount(),
		Services: append([]string(nil), q.Services...),
		Delay:    q.Delay,
	}
}
