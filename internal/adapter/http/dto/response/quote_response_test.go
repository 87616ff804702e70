package response

import (
	"errors"
	"strings"
	"testing"
	"time"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/usecase"
)

func TestFromCreateResult(t *testing.T) {
	q := entities.Quote{ID: "q-1", Number: 42, Client: entities.ClientParty{Email: "camille@example.fr"}}

	got := FromCreateResult(usecase.CreateQuoteResult{Quote: q})
	if !got.Success || got.QuoteID != "q-1" {
		t.Fatalf("unexpected response %+v", got)
	}
	if !strings.Contains(got.Message, "000042") || !strings.Contains(got.Message, "camille@example.fr") {
		t.Fatalf("unexpected message %q", got.Message)
	}

	got = FromCreateResult(usecase.CreateQuoteResult{Quote: q, Resent: true, NotificationErr: errors.New("smtp down")})
	if got.Message != msgQuoteResent {
		t.Fatalf("expected resend message, got %q", got.Message)
	}
	if got.NotificationError == "" {
		t.Fatalf("expected notification error to be reported")
	}
}

func TestFromStandaloneResultRevealsOnce(t *testing.T) {
	res := usecase.CreateQuoteResult{
		Quote:           entities.Quote{ID: "q-1", ProjectID: "p-1"},
		OneTimePassword: entities.NewOneTimePassword("s3cretPass"),
	}
	first := FromStandaloneResult(res)
	if first.TemporaryPassword != "s3cretPass" {
		t.Fatalf("expected password, got %q", first.TemporaryPassword)
	}
	if second := FromStandaloneResult(res); second.TemporaryPassword != "" {
		t.Fatalf("password revealed twice")
	}

	reused := FromStandaloneResult(usecase.CreateQuoteResult{Quote: entities.Quote{ID: "q-2"}})
	if reused.TemporaryPassword != "" {
		t.Fatalf("expected no password for a reused account")
	}
}

func TestFromSignResult(t *testing.T) {
	got := FromSignResult(usecase.SignQuoteResult{Quote: entities.Quote{ID: "q-1"}})
	if got.Message != msgQuoteSigned || got.RedirectURL != "" {
		t.Fatalf("unexpected response %+v", got)
	}

	got = FromSignResult(usecase.SignQuoteResult{Quote: entities.Quote{ID: "q-1"}, RedirectURL: "https://mp.test/init"})
	if got.Message != msgQuoteSignedToPay {
		t.Fatalf("expected payment message, got %q", got.Message)
	}

	got = FromSignResult(usecase.SignQuoteResult{Quote: entities.Quote{ID: "q-1"}, CheckoutErr: errors.New("mp down")})
	if !got.Success || got.CheckoutError == "" {
		t.Fatalf("expected success with checkout error, got %+v", got)
	}
}

func TestFromQuote(t *testing.T) {
	signedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	q := entities.Quote{
		ID:        "q-1",
		Number:    7,
		Signature: &entities.QuoteSignature{PDFURL: "signed.pdf", SignedAt: signedAt},
	}
	got := FromQuote(q)
	if got.Number != "000007" || got.Status != "signed" {
		t.Fatalf("unexpected response %+v", got)
	}
	if got.Amount != entities.DefaultQuoteAmount {
		t.Fatalf("expected fallback amount, got %d", got.Amount)
	}
	if got.SignedAt == nil || !got.SignedAt.Equal(signedAt) || got.SignedPDFURL != "signed.pdf" {
		t.Fatalf("signature fields not mapped")
	}
}
