package entities

import "time"

type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusApproved DepositStatus = "approved"
	DepositStatusFailed   DepositStatus = "failed"
)

// DepositCheckout records a checkout session opened after a prospect signs.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_id-index): quote_id
//
// Provider payload:
//   - ProviderID is the checkout preference id at the payment provider.
type DepositCheckout struct {
	ID          string        `json:"id"`
	QuoteID     string        `json:"quote_id"`
	ProviderID  string        `json:"provider_id"`
	RedirectURL string        `json:"redirect_url"`
	Amount      int64         `json:"amount"`
	Status      DepositStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
