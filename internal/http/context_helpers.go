package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetUserSessionFromContext returns the session from context and a boolean indicating presence.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// GetSessionFromContext retrieves the session from the request context.
// Maintained for convenience; prefer GetUserSessionFromContext when you need presence info.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := GetUserSessionFromContext(ctx); ok {
		return s
	}
	return nil
}

// resolveSessionFromRequest reads the session cookie and resolves it through
// the auth service. Any resolution failure means an unauthenticated request.
func resolveSessionFromRequest(r *http.Request, sessions SessionService, cookieName string) *domainauth.Session {
	if sessions == nil {
		return nil
	}
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, err := sessions.Resolve(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return session
}
