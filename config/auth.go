package config

import "time"

// CoreSSOConfig contains the identity provider connection settings.
// Both values are required: the client constructor fails fast when either is
// absent rather than defaulting silently.
type CoreSSOConfig struct {
	// BaseURL is the CoreSSO API root, e.g. "https://autentica.sme.prefeitura.sp.gov.br".
	BaseURL string `env:"CORESSO_API_URL"`

	// APIToken is sent as "Authorization: Token <APIToken>" on every call.
	APIToken string `env:"CORESSO_API_TOKEN"`
}

// SessionConfig contains signed session token settings.
type SessionConfig struct {
	// Secret signs session tokens (HS256). Required.
	Secret string `env:"SESSION_SECRET"`

	// TTL is the session token lifetime.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// CookieName carries the token on the browser side.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"portal_session"`
}

// DevAuthConfig contains the local development identity stand-in. It is only
// consulted in dev mode when no CoreSSO URL is configured.
type DevAuthConfig struct {
	// Login is the RF accepted by the dev provider.
	Login string `env:"DEV_AUTH_LOGIN" envDefault:"1234567"`

	// Senha is the password accepted for Login.
	Senha string `env:"DEV_AUTH_SENHA" envDefault:"dev"`

	// Nome is the display name returned on success.
	Nome string `env:"DEV_AUTH_NOME" envDefault:"Usuária de Desenvolvimento"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	CoreSSO CoreSSOConfig
	Session SessionConfig
	DevAuth DevAuthConfig
}

const minSessionTTL = time.Minute

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Session.TTL < minSessionTTL {
		a.Session.TTL = minSessionTTL
	}
	if a.Session.CookieName == "" {
		a.Session.CookieName = "portal_session"
	}
}
