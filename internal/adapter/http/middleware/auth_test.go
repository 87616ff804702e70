package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agency_quotes/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("test-secret")

func newRouter(roles ...entities.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(secret))
	handlers := []gin.HandlerFunc{}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := ActorFrom(c)
		c.String(http.StatusOK, actor.AccountID+"/"+string(actor.Role))
	})
	r.GET("/who", handlers...)
	return r
}

func do(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r := newRouter()

	t.Run("missing header", func(t *testing.T) {
		if w := do(r, ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := IssueToken(secret, entities.Actor{AccountID: "acc-1", Role: entities.RoleClient}, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		w := do(r, token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "acc-1/client" {
			t.Fatalf("unexpected actor %q", w.Body.String())
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, _ := IssueToken(secret, entities.Actor{AccountID: "acc-1", Role: entities.RoleClient}, -time.Minute)
		if w := do(r, token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := IssueToken([]byte("other"), entities.Actor{AccountID: "acc-1", Role: entities.RoleStaff}, time.Minute)
		if w := do(r, token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		claims := Claims{Role: "root", RegisteredClaims: jwt.RegisteredClaims{Subject: "acc-1"}}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		if w := do(r, token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		claims := Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "acc-1"}}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		if w := do(r, token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestRequireRoles(t *testing.T) {
	r := newRouter(entities.RoleStaff, entities.RoleAdmin)

	staff, _ := IssueToken(secret, entities.Actor{AccountID: "op-1", Role: entities.RoleStaff}, time.Minute)
	if w := do(r, staff); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff, got %d", w.Code)
	}

	prospect, _ := IssueToken(secret, entities.Actor{AccountID: "acc-2", Role: entities.RoleProspect}, time.Minute)
	if w := do(r, prospect); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for prospect, got %d", w.Code)
	}
}
