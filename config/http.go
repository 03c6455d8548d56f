package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://portal.example.sp.gov.br").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`
}

// GuardConfig contains route guard configuration. The defaults mirror the
// shipped route matcher: everything except API routes, static assets, and the
// favicon passes through the guard, and only /dashboard requires a session.
type GuardConfig struct {
	// ProtectedPrefixes require an authenticated session.
	ProtectedPrefixes []string `env:"PROTECTED_PREFIXES" envDefault:"/dashboard" envSeparator:";"`

	// ExcludedPrefixes bypass the guard entirely.
	ExcludedPrefixes []string `env:"EXCLUDED_PREFIXES" envDefault:"/api;/static;/favicon.ico;/healthz" envSeparator:";"`

	// LoginPath is the unauthenticated landing route.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/"`

	// DashboardPath is where authenticated root requests land.
	DashboardPath string `env:"DASHBOARD_PATH" envDefault:"/dashboard"`
}

// Sanitize applies guardrails to guard configuration values.
func (g *GuardConfig) Sanitize() {
	if g.LoginPath == "" {
		g.LoginPath = "/"
	}
	if g.DashboardPath == "" {
		g.DashboardPath = "/dashboard"
	}
}
