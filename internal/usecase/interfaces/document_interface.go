package interfaces

import (
	"context"

	"agency_quotes/internal/domain/entities"
)

// IDocumentRenderer lays out a quote document as PDF bytes.
//
//go:generate mockgen -source=document_interface.go -destination=mocks/document_mock.go -package=mock_interfaces
type IDocumentRenderer interface {
	Render(ctx context.Context, doc entities.QuoteDocument) ([]byte, error)
}

// IArtifactStore is the durable, publicly addressable storage for rendered documents.
type IArtifactStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (publicURL string, err error)
}
