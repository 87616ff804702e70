package interfaces

import (
	"context"

	"agency_quotes/internal/domain/entities"
)

// DepositCheckoutRequest describes the deposit a prospect pays after signing.
type DepositCheckoutRequest struct {
	QuoteID    string
	Number     string
	Amount     int64
	PayerEmail string
	PayerName  string
}

// ICheckoutGateway abstracts the external checkout provider (e.g. Mercado Pago).
//
//go:generate mockgen -source=checkout_gateway_interface.go -destination=mocks/checkout_gateway_mock.go -package=mock_interfaces
type ICheckoutGateway interface {
	CreateDepositCheckout(ctx context.Context, req DepositCheckoutRequest) (providerID string, redirectURL string, err error)
}

// IDepositRepository persists the checkout sessions opened for a quote.
type IDepositRepository interface {
	Create(ctx context.Context, d entities.DepositCheckout) (entities.DepositCheckout, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.DepositCheckout, error)
}
