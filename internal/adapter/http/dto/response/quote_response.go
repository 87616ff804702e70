package response

import (
	"fmt"
	"time"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/usecase"
)

const (
	msgQuoteCreated     = "Devis N° %s créé et envoyé à %s."
	msgQuoteResent      = "Un devis est déjà en attente pour ce projet : il a été renvoyé au client."
	msgQuoteResendDone  = "Devis N° %s renvoyé à %s."
	msgQuoteDeleted     = "Devis supprimé."
	msgQuoteSigned      = "Devis signé avec succès."
	msgQuoteSignedToPay = "Devis signé. Vous allez être redirigé vers le paiement de l'acompte."
)

// ActionResponse is the body of every successful quote action.
type ActionResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	QuoteID           string `json:"quote_id,omitempty"`
	NotificationError string `json:"notification_error,omitempty"`
}

type StandaloneQuoteResponse struct {
	ActionResponse
	ProjectID         string `json:"project_id"`
	TemporaryPassword string `json:"temporary_password,omitempty"`
}

type SignQuoteResponse struct {
	ActionResponse
	RedirectURL   string `json:"redirect_url,omitempty"`
	CheckoutError string `json:"checkout_error,omitempty"`
}

func FromCreateResult(res usecase.CreateQuoteResult) ActionResponse {
	out := ActionResponse{Success: true, QuoteID: res.Quote.ID}
	if res.Resent {
		out.Message = msgQuoteResent
	} else {
		out.Message = fmt.Sprintf(msgQuoteCreated, res.Quote.FormattedNumber(), res.Quote.Client.Email)
	}
	if res.NotificationErr != nil {
		out.NotificationError = "L'email n'a pas pu être envoyé."
	}
	return out
}

// FromStandaloneResult reveals the one-time password, so it can be built only once.
func FromStandaloneResult(res usecase.CreateQuoteResult) StandaloneQuoteResponse {
	return StandaloneQuoteResponse{
		ActionResponse:    FromCreateResult(res),
		ProjectID:         res.Quote.ProjectID,
		TemporaryPassword: res.OneTimePassword.Reveal(),
	}
}

func FromResend(q entities.Quote) ActionResponse {
	return ActionResponse{
		Success: true,
		Message: fmt.Sprintf(msgQuoteResendDone, q.FormattedNumber(), q.Client.Email),
		QuoteID: q.ID,
	}
}

func Deleted(quoteID string) ActionResponse {
	return ActionResponse{Success: true, Message: msgQuoteDeleted, QuoteID: quoteID}
}

func FromSignResult(res usecase.SignQuoteResult) SignQuoteResponse {
	out := SignQuoteResponse{
		ActionResponse: ActionResponse{Success: true, Message: msgQuoteSigned, QuoteID: res.Quote.ID},
		RedirectURL:    res.RedirectURL,
	}
	if res.RedirectURL != "" {
		out.Message = msgQuoteSignedToPay
	}
	if res.CheckoutErr != nil {
		out.CheckoutError = "Le paiement de l'acompte n'a pas pu être initialisé. Notre équipe vous recontactera."
	}
	if res.NotificationErr != nil {
		out.NotificationError = "L'email de confirmation n'a pas pu être envoyé."
	}
	return out
}

type QuoteResponse struct {
	ID           string               `json:"id"`
	ProjectID    string               `json:"project_id"`
	Number       string               `json:"number"`
	Status       string               `json:"status"`
	PDFURL       string               `json:"pdf_url"`
	SignedPDFURL string               `json:"signed_pdf_url,omitempty"`
	SignedAt     *time.Time           `json:"signed_at,omitempty"`
	Client       entities.ClientParty `json:"client"`
	Amount       int64                `json:"amount"`
	Services     []string             `json:"services"`
	Delay        string               `json:"delay,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	out := QuoteResponse{
		ID:        q.ID,
		ProjectID: q.ProjectID,
		Number:    q.FormattedNumber(),
		Status:    string(q.Status()),
		PDFURL:    q.PDFURL,
		Client:    q.Client,
		Amount:    q.EffectiveAmount(),
		Services:  q.Services,
		Delay:     q.Delay,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	if q.Signature != nil {
		at := q.Signature.SignedAt
		out.SignedPDFURL = q.Signature.PDFURL
		out.SignedAt = &at
	}
	return out
}

type DepositResponse struct {
	ID          string    `json:"id"`
	QuoteID     string    `json:"quote_id"`
	ProviderID  string    `json:"provider_id"`
	RedirectURL string    `json:"redirect_url"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromDeposit(d entities.DepositCheckout) DepositResponse {
	return DepositResponse{
		ID:          d.ID,
		QuoteID:     d.QuoteID,
		ProviderID:  d.ProviderID,
		RedirectURL: d.RedirectURL,
		Amount:      d.Amount,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt,
	}
}
