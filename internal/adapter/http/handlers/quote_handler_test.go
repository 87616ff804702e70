package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agency_quotes/internal/adapter/http/handlers/mocks"
	"agency_quotes/internal/adapter/http/middleware"
	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

var (
	staff    = entities.Actor{AccountID: "op-1", Role: entities.RoleStaff}
	prospect = entities.Actor{AccountID: "acc-1", Role: entities.RoleProspect}
)

func newQuoteRouter(h *QuoteHandler, actor *entities.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) { middleware.SetActor(c, *actor) })
	}
	r.POST("/v1/quotes", h.CreateQuote)
	r.POST("/v1/quotes/standalone", h.CreateStandaloneQuote)
	r.POST("/v1/quotes/:quote_id/resend", h.ResendQuote)
	r.DELETE("/v1/quotes/:quote_id", h.DeleteQuote)
	r.POST("/v1/quotes/:quote_id/sign", h.SignQuote)
	r.GET("/v1/quotes/:quote_id", h.GetQuote)
	r.GET("/v1/quotes/:quote_id/deposit", h.GetLatestDeposit)
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &staff)

		w := perform(r, http.MethodPost, "/v1/quotes", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing project id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &staff)

		w := perform(r, http.MethodPost, "/v1/quotes", `{"amount":1490}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &staff)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, cmd usecase.CreateQuoteCommand) (usecase.CreateQuoteResult, error) {
			if cmd.ProjectID != "p-1" || cmd.Amount == nil || *cmd.Amount != 1490.5 {
				t.Fatalf("unexpected command %+v", cmd)
			}
			return usecase.CreateQuoteResult{Quote: entities.Quote{ID: "q-1", Number: 42, Client: entities.ClientParty{Email: "camille@example.fr"}}}, nil
		})

		w := perform(r, http.MethodPost, "/v1/quotes", `{"project_id":"p-1","amount":1490.5,"services":["Site vitrine"]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decode(t, w)
		if body["success"] != true || body["quote_id"] != "q-1" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("resent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &staff)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(usecase.CreateQuoteResult{Quote: entities.Quote{ID: "q-0"}, Resent: true}, nil)

		w := perform(r, http.MethodPost, "/v1/quotes", `{"project_id":"p-1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if decode(t, w)["quote_id"] != "q-0" {
			t.Fatalf("expected existing quote id")
		}
	})
}

func TestQuoteHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{usecase.ErrProjectNotFound, http.StatusNotFound, "PROJECT_NOT_FOUND"},
		{usecase.ErrQuoteAlreadySigned, http.StatusConflict, "QUOTE_ALREADY_SIGNED"},
		{usecase.ErrMissingContactEmail, http.StatusBadRequest, "INVALID_REQUEST"},
		{fmt.Errorf("%w: store: %w", usecase.ErrRenderFailure, errors.New("bucket gone")), http.StatusBadGateway, "DOCUMENT_FAILURE"},
		{fmt.Errorf("%w: numbering: %w", usecase.ErrDependencyFailure, errors.New("throttled")), http.StatusBadGateway, "DEPENDENCY_FAILURE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIQuoteUseCase(ctrl)
			r := newQuoteRouter(NewQuoteHandler(uc), &staff)

			uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(usecase.CreateQuoteResult{}, tc.err)

			w := perform(r, http.MethodPost, "/v1/quotes", `{"project_id":"p-1"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			body := decode(t, w)
			if body["code"] != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, body["code"])
			}
			if msg, _ := body["error"].(string); msg == "" || msg == tc.err.Error() {
				t.Fatalf("expected a user-facing message, got %q", msg)
			}
		})
	}
}

func TestQuoteHandler_CreateStandaloneQuote(t *testing.T) {
	t.Run("bad document encoding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &staff)

		w := perform(r, http.MethodPost, "/v1/quotes/standalone", `{"name":"Camille","email":"c@example.fr","project_name":"Site","document_base64":"%%%"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("returns temporary password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &staff)

		uc.EXPECT().CreateStandalone(gomock.Any(), gomock.Any()).Return(usecase.CreateQuoteResult{
			Quote:           entities.Quote{ID: "q-1", ProjectID: "p-9"},
			OneTimePassword: entities.NewOneTimePassword("Xk4pQ9mTz2Lw"),
		}, nil)

		w := perform(r, http.MethodPost, "/v1/quotes/standalone", `{"name":"Camille","email":"c@example.fr","project_name":"Site"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decode(t, w)
		if body["temporary_password"] != "Xk4pQ9mTz2Lw" || body["project_id"] != "p-9" {
			t.Fatalf("unexpected body %v", body)
		}
	})
}

func TestQuoteHandler_ResendAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	r := newQuoteRouter(NewQuoteHandler(uc), &staff)

	uc.EXPECT().Resend(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Number: 3}, nil)
	if w := perform(r, http.MethodPost, "/v1/quotes/q-1/resend", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	uc.EXPECT().Resend(gomock.Any(), "q-2").Return(entities.Quote{}, usecase.ErrQuoteNotPending)
	if w := perform(r, http.MethodPost, "/v1/quotes/q-2/resend", ""); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	uc.EXPECT().Delete(gomock.Any(), "q-1").Return(nil)
	if w := perform(r, http.MethodDelete, "/v1/quotes/q-1", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	uc.EXPECT().Delete(gomock.Any(), "q-3").Return(usecase.ErrQuoteNotFound)
	if w := perform(r, http.MethodDelete, "/v1/quotes/q-3", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestQuoteHandler_SignQuote(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), nil)

		if w := perform(r, http.MethodPost, "/v1/quotes/q-1/sign", `{"signature":"abc"}`); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing signature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &prospect)

		if w := perform(r, http.MethodPost, "/v1/quotes/q-1/sign", `{}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("prospect gets redirect", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &prospect)

		uc.EXPECT().Sign(gomock.Any(), usecase.SignQuoteCommand{QuoteID: "q-1", Signature: "abc", Signer: prospect}).
			Return(usecase.SignQuoteResult{Quote: entities.Quote{ID: "q-1"}, RedirectURL: "https://mp.test/init"}, nil)

		w := perform(r, http.MethodPost, "/v1/quotes/q-1/sign", `{"signature":"abc"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if decode(t, w)["redirect_url"] != "https://mp.test/init" {
			t.Fatalf("expected redirect url")
		}
	})

	t.Run("checkout failure still succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &prospect)

		uc.EXPECT().Sign(gomock.Any(), gomock.Any()).
			Return(usecase.SignQuoteResult{Quote: entities.Quote{ID: "q-1"}, CheckoutErr: errors.New("mp down")}, nil)

		w := perform(r, http.MethodPost, "/v1/quotes/q-1/sign", `{"signature":"abc"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decode(t, w)
		if body["success"] != true || body["checkout_error"] == nil {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc), &prospect)

		uc.EXPECT().Sign(gomock.Any(), gomock.Any()).Return(usecase.SignQuoteResult{}, usecase.ErrNotQuoteOwner)

		if w := perform(r, http.MethodPost, "/v1/quotes/q-1/sign", `{"signature":"abc"}`); w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_GetQuoteAndDeposit(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	r := newQuoteRouter(NewQuoteHandler(uc), &prospect)

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	uc.EXPECT().Get(gomock.Any(), "q-1", prospect).Return(entities.Quote{ID: "q-1", Number: 42, CreatedAt: now, UpdatedAt: now}, nil)
	w := perform(r, http.MethodGet, "/v1/quotes/q-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["number"] != "000042" || body["status"] != "pending" {
		t.Fatalf("unexpected body %v", body)
	}

	uc.EXPECT().LatestDeposit(gomock.Any(), "q-1", prospect).Return(entities.DepositCheckout{ID: "d-1", Amount: 44715}, nil)
	w = perform(r, http.MethodGet, "/v1/quotes/q-1/deposit", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	uc.EXPECT().LatestDeposit(gomock.Any(), "q-2", prospect).Return(entities.DepositCheckout{}, usecase.ErrDepositNotFound)
	if w := perform(r, http.MethodGet, "/v1/quotes/q-2/deposit", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
