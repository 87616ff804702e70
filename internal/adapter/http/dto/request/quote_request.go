package request

import (
	"encoding/base64"
	"errors"
	"strings"

	"agency_quotes/internal/usecase"
)

var ErrInvalidDocumentEncoding = errors.New("document_base64 is not valid base64")

type CreateQuoteRequest struct {
	ProjectID string   `json:"project_id" binding:"required,notblank"`
	Amount    *float64 `json:"amount"`
	Services  []string `json:"services"`
	Delay     string   `json:"delay"`
}

func (r CreateQuoteRequest) ToCommand() usecase.CreateQuoteCommand {
	return usecase.CreateQuoteCommand{
		ProjectID: strings.TrimSpace(r.ProjectID),
		Amount:    r.Amount,
		Services:  r.Services,
		Delay:     strings.TrimSpace(r.Delay),
	}
}

// CreateStandaloneQuoteRequest is sent for a prospect who has no account or
// project yet.
type CreateStandaloneQuoteRequest struct {
	Name        string   `json:"name" binding:"required,notblank"`
	Email       string   `json:"email" binding:"required,email"`
	Company     string   `json:"company"`
	ProjectName string   `json:"project_name" binding:"required,notblank"`
	Amount      *float64 `json:"amount"`
	Services    []string `json:"services"`
	Delay       string   `json:"delay"`
	// DocumentBase64 is an optional pre-rendered PDF, raw base64 or a data URL.
	DocumentBase64 string `json:"document_base64"`
}

func (r CreateStandaloneQuoteRequest) ToCommand() (usecase.CreateStandaloneQuoteCommand, error) {
	cmd := usecase.CreateStandaloneQuoteCommand{
		Name:        r.Name,
		Email:       r.Email,
		Company:     r.Company,
		ProjectName: r.ProjectName,
		Amount:      r.Amount,
		Services:    r.Services,
		Delay:       strings.TrimSpace(r.Delay),
	}
	doc, err := decodeDocument(r.DocumentBase64)
	if err != nil {
		return usecase.CreateStandaloneQuoteCommand{}, err
	}
	cmd.Document = doc
	return cmd, nil
}

func decodeDocument(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 {
			return nil, ErrInvalidDocumentEncoding
		}
		s = s[i+1:]
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidDocumentEncoding
	}
	return b, nil
}

type SignQuoteRequest struct {
	// Signature is a PNG or JPEG, raw base64 or a data URL.
	Signature string `json:"signature" binding:"required,notblank"`
}
