package httpx

import (
	"net/http"
	"strings"
)

// GuardDecision is the outcome of one route guard evaluation.
type GuardDecision int

const (
	// DecisionContinue lets the request through unchanged.
	DecisionContinue GuardDecision = iota
	// DecisionRedirectLogin sends the request to the unauthenticated landing route.
	DecisionRedirectLogin
	// DecisionRedirectDashboard sends an authenticated request at the root to the dashboard.
	DecisionRedirectDashboard
)

// GuardConfig holds the externally supplied route constants the guard
// evaluates against.
type GuardConfig struct {
	// ProtectedPrefixes require an authenticated session.
	ProtectedPrefixes []string
	// ExcludedPrefixes never reach the guard's decision logic at all
	// (static assets, API routes, favicon).
	ExcludedPrefixes []string
	// RootPath is the unauthenticated landing route (the login page).
	RootPath string
	// LoginPath is where unauthenticated requests to protected routes go.
	LoginPath string
	// DashboardPath is where authenticated requests at the root go.
	DashboardPath string
}

// DefaultGuardConfig mirrors the route matcher shipped with the portal.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		ProtectedPrefixes: []string{"/dashboard"},
		ExcludedPrefixes:  []string{"/api", "/static", "/favicon.ico", "/healthz"},
		RootPath:          "/",
		LoginPath:         "/",
		DashboardPath:     "/dashboard",
	}
}

// Excluded reports whether the path bypasses guard evaluation entirely.
func (g GuardConfig) Excluded(path string) bool {
	for _, prefix := range g.ExcludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Decide is the guard's decision function: a pure function of the request
// path and session presence, evaluated in order. It holds no state across
// requests and does not verify tokens itself; authenticated means the
// upstream session resolution already validated the token.
func (g GuardConfig) Decide(path string, authenticated bool) GuardDecision {
	for _, prefix := range g.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) && !authenticated {
			return DecisionRedirectLogin
		}
	}

	if path == g.RootPath && authenticated {
		return DecisionRedirectDashboard
	}

	return DecisionContinue
}

// RouteGuard returns the route protection middleware. It resolves the
// session cookie once per request, stashes any valid session in the request
// context, and applies the guard decision. Excluded prefixes pass through
// without session resolution or evaluation.
func RouteGuard(cfg GuardConfig, sessions SessionService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Excluded(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			session := resolveSessionFromRequest(r, sessions, cookieName)
			if session != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), session))
			}

			switch cfg.Decide(r.URL.Path, session != nil) {
			case DecisionRedirectLogin:
				http.Redirect(w, r, cfg.LoginPath, http.StatusSeeOther)
			case DecisionRedirectDashboard:
				http.Redirect(w, r, cfg.DashboardPath, http.StatusSeeOther)
			case DecisionContinue:
				next.ServeHTTP(w, r)
			}
		})
	}
}
