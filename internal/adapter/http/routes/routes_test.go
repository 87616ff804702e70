package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"agency_quotes/internal/adapter/http/handlers"
	"agency_quotes/internal/adapter/http/handlers/mocks"
	"agency_quotes/internal/adapter/http/middleware"
	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

var secret = []byte("routes-secret")

func token(t *testing.T, role entities.Role) string {
	t.Helper()
	tok, err := middleware.IssueToken(secret, entities.Actor{AccountID: "acc-1", Role: role}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tok
}

func newTestRouter(t *testing.T, uc usecase.IQuoteUseCase, artifacts string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterOptions{
		JWTSecret:    secret,
		QuoteHandler: handlers.NewQuoteHandler(uc),
		ArtifactsDir: artifacts,
	})
}

func TestRouter_Ping(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRouter(t, mocks.NewMockIQuoteUseCase(ctrl), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouter_OperatorRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	r := newTestRouter(t, uc, "")

	send := func(role entities.Role) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(`{"project_id":"p-1"}`))
		req.Header.Set("Content-Type", "application/json")
		if role != "" {
			req.Header.Set("Authorization", "Bearer "+token(t, role))
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send(""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
	if code := send(entities.RoleClient); code != http.StatusForbidden {
		t.Fatalf("expected 403 for client, got %d", code)
	}

	uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(usecase.CreateQuoteResult{Quote: entities.Quote{ID: "q-1"}}, nil)
	if code := send(entities.RoleAdmin); code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d", code)
	}
}

func TestRouter_SignOpenToOwners(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	r := newTestRouter(t, uc, "")

	uc.EXPECT().Sign(gomock.Any(), gomock.Any()).Return(usecase.SignQuoteResult{Quote: entities.Quote{ID: "q-1"}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/sign", bytes.NewBufferString(`{"signature":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token(t, entities.RoleProspect))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouter_ServesLocalArtifacts(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "quotes", "000001"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "quotes", "000001", "devis-000001-1.pdf"), []byte("%PDF-1.3"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctrl := gomock.NewController(t)
	r := newTestRouter(t, mocks.NewMockIQuoteUseCase(ctrl), dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artifacts/quotes/000001/devis-000001-1.pdf", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "%PDF-1.3" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}
