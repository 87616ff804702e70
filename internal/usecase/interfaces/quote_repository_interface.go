package interfaces

import (
	"context"
	"time"

	"agency_quotes/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Lookups return a zero Quote (empty ID) and a nil error when nothing matches.
// MarkSigned only succeeds while the stored quote is still pending; otherwise
// it returns a zero Quote.
//
//go:generate mockgen -source=quote_repository_interface.go -destination=mocks/quote_repository_mock.go -package=mock_interfaces
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	GetByProjectID(ctx context.Context, projectID string) (entities.Quote, error)
	MarkSigned(ctx context.Context, id string, signedPDFURL string, signedAt time.Time) (entities.Quote, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// IQuoteNumberSequence hands out quote numbers from an atomic counter.
type IQuoteNumberSequence interface {
	Next(ctx context.Context) (int64, error)
}
