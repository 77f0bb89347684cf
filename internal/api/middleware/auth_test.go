package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, token string) (*domain.Identity, string, error)
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*domain.Identity, string, error) {
	return s.resolveFn(ctx, token)
}

func TestIdentify_ValidToken(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Identity, string, error) {
			if token != "tok-1" {
				t.Fatalf("unexpected token %q", token)
			}
			return &domain.Identity{ID: "u1", Email: "alice@example.com", Role: domain.RoleFarm}, "sess-1", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Identify(resolver)(func(c echo.Context) error {
		called = true
		id := IdentityFrom(c)
		if id == nil || id.Role != domain.RoleFarm {
			t.Fatalf("identity not set: %+v", id)
		}
		if SessionIDFrom(c) != "sess-1" {
			t.Fatalf("session id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdentify_MissingHeaderIsSignedOut(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Identity, string, error) {
			t.Fatalf("resolver should not be called")
			return nil, "", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Identify(resolver)(func(c echo.Context) error {
		called = true
		if IdentityFrom(c) != nil {
			t.Fatalf("expected nil identity")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("a missing header must not block the request")
	}
}

func TestIdentify_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Identify(&stubResolver{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIdentify_ExpiredSession(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Identity, string, error) {
			return nil, "", domain.ErrSessionNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Identify(resolver)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIdentify_SessionStoreFailurePropagates(t *testing.T) {
	e := echo.New()
	boom := errors.New("redis down")
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Identity, string, error) {
			return nil, "", boom
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Identify(resolver)(func(c echo.Context) error { return nil })(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestIdentifyOptional_StaleTokenIsSignedOut(t *testing.T) {
	for _, resolveErr := range []error{domain.ErrSessionNotFound, domain.ErrInvalidCredentials} {
		e := echo.New()
		resolver := &stubResolver{
			resolveFn: func(ctx context.Context, token string) (*domain.Identity, string, error) {
				return nil, "", resolveErr
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		handler := IdentifyOptional(resolver)(func(c echo.Context) error {
			called = true
			if IdentityFrom(c) != nil || SessionIDFrom(c) != "" {
				t.Fatalf("expected a signed-out caller")
			}
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("%v: handler error: %v", resolveErr, err)
		}
		if !called {
			t.Fatalf("%v: a stale token must not block the request", resolveErr)
		}
	}
}

func TestIdentifyOptional_MalformedHeaderIsSignedOut(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Identity, string, error) {
			t.Fatalf("resolver should not be called")
			return nil, "", nil
		},
	}
	called := false
	err := IdentifyOptional(resolver)(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	if err != nil || !called {
		t.Fatalf("expected pass-through, got called=%v err=%v", called, err)
	}
}

func TestIdentifyOptional_ValidTokenSetsIdentity(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Identity, string, error) {
			return &domain.Identity{ID: "u1", Role: domain.RoleCustomer}, "sess-1", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	c := e.NewContext(req, httptest.NewRecorder())

	err := IdentifyOptional(resolver)(func(c echo.Context) error {
		if id := IdentityFrom(c); id == nil || id.Role != domain.RoleCustomer || SessionIDFrom(c) != "sess-1" {
			t.Fatalf("identity not set: %+v", id)
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestIdentifyOptional_SessionStoreFailurePropagates(t *testing.T) {
	e := echo.New()
	boom := errors.New("redis down")
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Identity, string, error) {
			return nil, "", boom
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	c := e.NewContext(req, httptest.NewRecorder())

	err := IdentifyOptional(resolver)(func(c echo.Context) error { return nil })(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
