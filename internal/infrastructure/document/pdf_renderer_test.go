package document

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"agency_quotes/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testRenderer() *PDFRenderer {
	r := NewPDFRenderer(Issuer{Name: "Studio Atelier Web", Email: "contact@atelier-web.fr", SIRET: "123 456 789 00010"}, "", "", time.UTC)
	r.compress = false
	return r
}

func testDocument() entities.QuoteDocument {
	return entities.QuoteDocument{
		Number:   42,
		IssuedAt: issuedAt,
		Client:   entities.ClientParty{Name: "Jeanne Martin", Email: "jeanne@example.com", Phone: "0612345678", Company: "Martin & Fils"},
		Amount:   149050,
		Services: []string{"Site vitrine", "Design", "Blog"},
		Delay:    "4 semaines",
	}
}

func TestPDFRenderer_Render(t *testing.T) {
	ctx := context.Background()

	t.Run("original offer", func(t *testing.T) {
		out, err := testRenderer().Render(ctx, testDocument())
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
		assert.Contains(t, string(out), "000042")
		assert.Contains(t, string(out), "1 490,50 \x80")
		assert.Contains(t, string(out), "02/01/2026")
		assert.NotContains(t, string(out), "lectroniquement")
	})

	t.Run("deterministic", func(t *testing.T) {
		r := testRenderer()
		a, err := r.Render(ctx, testDocument())
		require.NoError(t, err)
		b, err := r.Render(ctx, testDocument())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("default amount and bundle", func(t *testing.T) {
		doc := testDocument()
		doc.Amount = entities.DefaultQuoteAmount
		doc.Services = nil
		out, err := testRenderer().Render(ctx, doc)
		require.NoError(t, err)
		assert.Contains(t, string(out), "1 490,00 \x80")
		assert.Contains(t, string(out), "Maquettes et design responsive")
	})

	t.Run("signed variant", func(t *testing.T) {
		doc := testDocument()
		doc.Signature = &entities.DocumentSignature{PNG: testPNG(t, 600, 200), SignedAt: time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC)}
		out, err := testRenderer().Render(ctx, doc)
		require.NoError(t, err)
		assert.Contains(t, string(out), "Sign\xe9 \xe9lectroniquement le 05/01/2026 \xe0 10:30")
		assert.Contains(t, string(out), "000042")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := testRenderer().Render(cctx, testDocument())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLogoLoader(t *testing.T) {
	logo := testPNG(t, 40, 20)

	t.Run("local file wins", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "logo.png")
		require.NoError(t, os.WriteFile(p, logo, 0o600))
		got := (&LogoLoader{Path: p, URL: "http://127.0.0.1:1/unreachable"}).Load(context.Background())
		require.NotNil(t, got)
		assert.Equal(t, "PNG", got.Type)
	})

	t.Run("falls back to remote", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(logo)
		}))
		defer srv.Close()
		got := (&LogoLoader{Path: "/does/not/exist.png", URL: srv.URL}).Load(context.Background())
		require.NotNil(t, got)
		assert.Equal(t, logo, got.Data)
	})

	t.Run("wordmark when nothing works", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()
		assert.Nil(t, (&LogoLoader{Path: "/does/not/exist.png", URL: srv.URL}).Load(context.Background()))
	})

	t.Run("rendering with logo", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "logo.png")
		require.NoError(t, os.WriteFile(p, logo, 0o600))
		r := NewPDFRenderer(Issuer{Name: "Studio"}, p, "", nil)
		out, err := r.Render(context.Background(), testDocument())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("remote failure is retried on a later render", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write(logo)
		}))
		defer srv.Close()

		r := NewPDFRenderer(Issuer{Name: "Studio"}, "", srv.URL, nil)
		r.logoRetry = 0
		_, err := r.Render(context.Background(), testDocument())
		require.NoError(t, err)
		assert.Nil(t, r.logo)
		assert.Equal(t, int32(1), calls.Load())

		_, err = r.Render(context.Background(), testDocument())
		require.NoError(t, err)
		require.NotNil(t, r.logo)
		assert.Equal(t, int32(2), calls.Load())

		_, err = r.Render(context.Background(), testDocument())
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load(), "a loaded logo is cached")
	})

	t.Run("cancelled first request does not pin the wordmark", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(logo)
		}))
		defer srv.Close()

		r := NewPDFRenderer(Issuer{Name: "Studio"}, "", srv.URL, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.NotNil(t, r.currentLogo(ctx))
	})
}

func TestFitBox(t *testing.T) {
	x, y, w, h := fitBox(600, 200, 0, 0, 80, 36)
	assert.InDelta(t, 80, w, 0.001)
	assert.InDelta(t, 80.0/3, h, 0.001)
	assert.InDelta(t, 0, x, 0.001)
	assert.InDelta(t, (36-80.0/3)/2, y, 0.001)
}
