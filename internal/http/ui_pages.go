package httpx

import (
	"log/slog"
	"net/http"
)

// UIHandlers serves the server-rendered pages.
type UIHandlers struct {
	T      *TemplateRenderer
	Logger *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage serves the credential form at the root path.
// GET /?erro=<classified user message>.
//
// Authenticated users never reach this handler; the route guard already
// redirected them to the dashboard.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title": "Portal SME - Acesso",
		"Error": r.URL.Query().Get("erro"),
	}
	if err := h.T.Render(w, "login-page", data); err != nil {
		h.logger().ErrorContext(r.Context(), "render login page failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// DashboardPage serves the protected dashboard.
// GET /dashboard.
//
// The route guard guarantees a session is present; the nil check is a
// fallback for direct handler invocation in tests.
func (h *UIHandlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title": "Portal SME - Dashboard",
		"User":  session.User,
	}
	if err := h.T.Render(w, "dashboard-page", data); err != nil {
		h.logger().ErrorContext(r.Context(), "render dashboard failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
