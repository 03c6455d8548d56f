package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
	"github.com/prefeitura-sp/coresso-portal/internal/service"
)

// SessionService defines the auth service operations the HTTP layer needs.
type SessionService interface {
	Login(ctx context.Context, creds domainauth.Credentials) (*service.LoginResult, error)
	Resolve(ctx context.Context, token string) (*domainauth.Session, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandlers provides HTTP handlers for login, logout, and session status.
type AuthHandlers struct {
	Svc           SessionService
	CookieName    string
	CookieDomain  string
	DashboardPath string
	LoginPath     string
	Logger        *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginBody is the JSON request shape for API clients; the browser form posts
// the same field names.
type loginBody struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login handles credential submission.
// POST /auth/login (form or JSON body: login, password).
//
// Browser form posts are answered with redirects: back to the login page with
// the classified message on failure, to the dashboard on success. JSON
// clients get the session payload or a structured error instead.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	creds, isJSON, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.Svc.Login(r.Context(), creds)
	if err != nil {
		h.writeLoginFailure(w, r, err, isJSON)
		return
	}

	h.setSessionCookie(w, r, result.Token, result.ExpiresAt)

	if isJSON {
		WriteJSON(w, http.StatusOK, map[string]any{
			"session": result.Session,
		})
		return
	}
	http.Redirect(w, r, h.DashboardPath, http.StatusSeeOther)
}

// readCredentials extracts the credential pair from a JSON or form body.
func (h *AuthHandlers) readCredentials(w http.ResponseWriter, r *http.Request) (domainauth.Credentials, bool, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var body loginBody
		if !DecodeJSON(w, r, &body) {
			return domainauth.Credentials{}, true, false
		}
		return domainauth.Credentials{Login: body.Login, Password: body.Password}, true, true
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, h.LoginPath, http.StatusSeeOther)
		return domainauth.Credentials{}, false, false
	}
	return domainauth.Credentials{
		Login:    strings.TrimSpace(r.PostFormValue("login")),
		Password: r.PostFormValue("password"),
	}, false, true
}

// writeLoginFailure maps classified authorization errors onto the response.
// Transport and configuration failures are deliberately not translated into
// credential messages: the user sees a service-unavailable answer and the
// error keeps propagating to the log/alerting path.
func (h *AuthHandlers) writeLoginFailure(w http.ResponseWriter, r *http.Request, err error, isJSON bool) {
	var loginErr *domainauth.LoginError
	if errors.As(err, &loginErr) {
		if loginErr.Kind == domainauth.KindNoAttempt {
			// Declined, not failed: show the form again with no message.
			if isJSON {
				WriteAPIError(w, http.StatusBadRequest, "missing_credentials", loginErr.Message)
				return
			}
			http.Redirect(w, r, h.LoginPath, http.StatusSeeOther)
			return
		}

		if isJSON {
			WriteAPIError(w, http.StatusUnauthorized, string(loginErr.Kind), loginErr.Message)
			return
		}
		http.Redirect(w, r, h.LoginPath+"?erro="+url.QueryEscape(loginErr.Message), http.StatusSeeOther)
		return
	}

	h.logger().ErrorContext(r.Context(), "login failed", "error", err)
	if isJSON {
		WriteAPIError(w, http.StatusBadGateway, "provider_unavailable", "serviço de autenticação indisponível")
		return
	}
	http.Redirect(w, r, h.LoginPath+"?erro="+url.QueryEscape("Serviço de autenticação indisponível. Tente novamente."), http.StatusSeeOther)
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.CookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearSessionCookie(w, r)

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}
	http.Redirect(w, r, h.LoginPath, http.StatusSeeOther)
}

// Status returns the current authentication status.
// GET /api/auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.CookieName)
	if err != nil || cookie.Value == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.Resolve(r.Context(), cookie.Value)
	if err != nil {
		// Invalid or expired token; drop the cookie.
		h.clearSessionCookie(w, r)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          session.User,
		"expires_at":    session.ExpiresAt,
	})
}

func (h *AuthHandlers) isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setSessionCookie writes the signed session token as an HttpOnly cookie.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})
}

// clearSessionCookie expires the session cookie, mirroring the attributes
// used when setting it so deletion works across browsers.
func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.isSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
