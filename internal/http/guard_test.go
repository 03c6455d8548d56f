package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
	"github.com/prefeitura-sp/coresso-portal/internal/service"
)

// fakeSessionService is a configurable SessionService for handler tests.
type fakeSessionService struct {
	LoginFunc    func(ctx context.Context, creds domainauth.Credentials) (*service.LoginResult, error)
	ResolveFunc  func(ctx context.Context, token string) (*domainauth.Session, error)
	LogoutFunc   func(ctx context.Context, token string) error
	resolveCalls int
}

func (f *fakeSessionService) Login(ctx context.Context, creds domainauth.Credentials) (*service.LoginResult, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, creds)
	}
	return nil, domainauth.ErrNoAttempt
}

func (f *fakeSessionService) Resolve(ctx context.Context, token string) (*domainauth.Session, error) {
	f.resolveCalls++
	if f.ResolveFunc != nil {
		return f.ResolveFunc(ctx, token)
	}
	return nil, domainauth.ErrMalformedResponse
}

func (f *fakeSessionService) Logout(ctx context.Context, token string) error {
	if f.LogoutFunc != nil {
		return f.LogoutFunc(ctx, token)
	}
	return nil
}

func validSession() *domainauth.Session {
	return &domainauth.Session{
		User: domainauth.SessionUser{
			ID:   "7654321",
			Name: "Maria da Silva",
			RF:   "7654321",
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestGuardConfig_Decide(t *testing.T) {
	cfg := DefaultGuardConfig()

	tests := []struct {
		name          string
		path          string
		authenticated bool
		want          GuardDecision
	}{
		{"protected without session", "/dashboard", false, DecisionRedirectLogin},
		{"protected subpath without session", "/dashboard/turmas", false, DecisionRedirectLogin},
		{"protected with session", "/dashboard", true, DecisionContinue},
		{"root with session", "/", true, DecisionRedirectDashboard},
		{"root without session", "/", false, DecisionContinue},
		{"unlisted path without session", "/sobre", false, DecisionContinue},
		{"unlisted path with session", "/sobre", true, DecisionContinue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Decide(tt.path, tt.authenticated))
		})
	}
}

func TestGuardConfig_Excluded(t *testing.T) {
	cfg := DefaultGuardConfig()

	for path, want := range map[string]bool{
		"/api/auth/status": true,
		"/static/app.css":  true,
		"/favicon.ico":     true,
		"/healthz":         true,
		"/dashboard":       false,
		"/":                false,
	} {
		assert.Equal(t, want, cfg.Excluded(path), "path=%s", path)
	}
}

func TestRouteGuard_RedirectsProtectedWithoutSession(t *testing.T) {
	svc := &fakeSessionService{}
	handler := RouteGuard(DefaultGuardConfig(), svc, "portal_session")(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next handler must not run")
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouteGuard_PassesProtectedWithSession(t *testing.T) {
	svc := &fakeSessionService{
		ResolveFunc: func(_ context.Context, token string) (*domainauth.Session, error) {
			require.Equal(t, "tok-1", token)
			return validSession(), nil
		},
	}

	var gotSession *domainauth.Session
	handler := RouteGuard(DefaultGuardConfig(), svc, "portal_session")(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			gotSession = GetSessionFromContext(r.Context())
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "tok-1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotSession, "session must be stashed in the request context")
	assert.Equal(t, "7654321", gotSession.User.RF)
}

func TestRouteGuard_RootWithSessionGoesToDashboard(t *testing.T) {
	svc := &fakeSessionService{
		ResolveFunc: func(context.Context, string) (*domainauth.Session, error) {
			return validSession(), nil
		},
	}
	handler := RouteGuard(DefaultGuardConfig(), svc, "portal_session")(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next handler must not run")
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "tok-1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestRouteGuard_ExcludedSkipsResolution(t *testing.T) {
	svc := &fakeSessionService{}
	nextRan := false
	handler := RouteGuard(DefaultGuardConfig(), svc, "portal_session")(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { nextRan = true }),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "whatever"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, nextRan)
	assert.Equal(t, 0, svc.resolveCalls, "excluded paths bypass session resolution")
}

func TestRouteGuard_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	svc := &fakeSessionService{
		ResolveFunc: func(context.Context, string) (*domainauth.Session, error) {
			return nil, domainauth.ErrMalformedResponse
		},
	}
	handler := RouteGuard(DefaultGuardConfig(), svc, "portal_session")(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}),
	)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "expired"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
