package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	portal "github.com/prefeitura-sp/coresso-portal"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth         SessionService
	Guard        GuardConfig
	CookieName   string
	CookieDomain string
	IsDev        bool         // Development mode: load templates from disk
	Logger       *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router wrapped with the route guard.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:           services.Auth,
		CookieName:    services.CookieName,
		CookieDomain:  services.CookieDomain,
		DashboardPath: services.Guard.DashboardPath,
		LoginPath:     services.Guard.LoginPath,
		Logger:        services.Logger,
	}
	mux.Handle("POST /auth/login", http.HandlerFunc(authHandlers.Login))
	mux.Handle("POST /auth/logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("GET /api/auth/status", http.HandlerFunc(authHandlers.Status))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /favicon.ico", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	if uiHandlers := setupUIHandlers(services); uiHandlers != nil {
		mux.Handle("GET /{$}", http.HandlerFunc(uiHandlers.LoginPage))
		mux.Handle("GET /dashboard", http.HandlerFunc(uiHandlers.DashboardPage))
	}

	return RouteGuard(services.Guard, services.Auth, services.CookieName)(mux)
}

// setupUIHandlers creates UI handlers with the template renderer.
// In dev mode templates are loaded from disk for hot reloading; in production
// they come from the embedded FS.
func setupUIHandlers(services RouterServices) *UIHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS("web/templates")
	} else {
		sub, err := fs.Sub(portal.TemplateFS, "web/templates")
		if err != nil {
			if services.Logger != nil {
				services.Logger.Error("failed to create template sub-filesystem", slog.Any("error", err))
			}
			return nil
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		}
		return nil
	}

	return &UIHandlers{T: tr, Logger: services.Logger}
}
