package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidDepositAmount = errors.New("deposit amount must be positive")

// CheckoutSettings configures the Checkout Pro preference created for deposits.
type CheckoutSettings struct {
	AccessToken     string
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	NotificationURL string
	Currency        string
	Mock            bool
}

// preferenceCreator is the part of preference.Client the gateway uses.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPagoGateway opens a hosted Checkout Pro page for the quote deposit.
type MercadoPagoGateway struct {
	client   preferenceCreator
	settings CheckoutSettings
	sandbox  bool
	mockMode bool
	log      logrus.FieldLogger
}

var _ interfaces.ICheckoutGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(s CheckoutSettings) (*MercadoPagoGateway, error) {
	log := logger.Get().WithField("module", "deposit_gateway")
	if s.Currency == "" {
		s.Currency = "EUR"
	}

	if s.Mock {
		log.Info("mock mode enabled")
		return &MercadoPagoGateway{settings: s, mockMode: true, log: log}, nil
	}

	if s.AccessToken == "" {
		log.Warn("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(s.AccessToken)
	if err != nil {
		logger.LogError(log, "deposit_gateway", "NewMercadoPagoGateway", "sdk config", nil, err)
		return nil, err
	}
	log.Info("Mercado Pago client initialized")

	return &MercadoPagoGateway{
		client:   preference.NewClient(cfg),
		settings: s,
		sandbox:  strings.HasPrefix(s.AccessToken, "TEST-"),
		log:      log,
	}, nil
}

func (g *MercadoPagoGateway) CreateDepositCheckout(ctx context.Context, req interfaces.DepositCheckoutRequest) (string, string, error) {
	if req.Amount <= 0 {
		return "", "", ErrInvalidDepositAmount
	}
	fields := logrus.Fields{"quote_id": req.QuoteID, "number": req.Number, "amount": req.Amount}

	if g != nil && g.mockMode {
		id := "mock-" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		g.log.WithFields(fields).WithField("preference_id", id).Info("mock checkout created")
		return id, "https://www.mercadopago.com/checkout/v1/redirect?pref_id=" + id, nil
	}

	if g == nil || g.client == nil {
		return "", "", ErrMercadoPagoGatewayNotConfigured
	}

	resp, err := g.client.Create(ctx, buildPreferenceRequest(g.settings, req))
	if err != nil {
		logger.LogError(g.log, "deposit_gateway", "CreateDepositCheckout", "quote_id="+req.QuoteID, nil, err)
		return "", "", err
	}

	redirect := resp.InitPoint
	if g.sandbox && resp.SandboxInitPoint != "" {
		redirect = resp.SandboxInitPoint
	}
	if redirect == "" {
		return "", "", fmt.Errorf("preference %s has no init point", resp.ID)
	}
	g.log.WithFields(fields).WithField("preference_id", resp.ID).Info("checkout created")
	return resp.ID, redirect, nil
}

func buildPreferenceRequest(s CheckoutSettings, req interfaces.DepositCheckoutRequest) preference.Request {
	unitPrice, _ := decimal.New(req.Amount, -2).Float64()
	p := preference.Request{
		Items: []preference.ItemRequest{{
			ID:          req.QuoteID,
			Title:       "Acompte devis N° " + req.Number,
			Description: "Acompte à la signature du devis N° " + req.Number,
			Quantity:    1,
			UnitPrice:   unitPrice,
			CurrencyID:  s.Currency,
		}},
		Payer: &preference.PayerRequest{
			Name:  req.PayerName,
			Email: req.PayerEmail,
		},
		ExternalReference: req.QuoteID,
		NotificationURL:   s.NotificationURL,
		Metadata: map[string]any{
			"quote_id":     req.QuoteID,
			"quote_number": req.Number,
		},
	}
	if s.SuccessURL != "" || s.FailureURL != "" || s.PendingURL != "" {
		p.BackURLs = &preference.BackURLsRequest{
			Success: s.SuccessURL,
			Failure: s.FailureURL,
			Pending: s.PendingURL,
		}
		if s.SuccessURL != "" {
			p.AutoReturn = "approved"
		}
	}
	return p
}
