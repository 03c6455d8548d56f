package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing *.tmpl files (required)
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	t, err := template.New("root").ParseFS(cfg.TemplateFS, "*.tmpl")
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("template parsing failed", slog.Any("error", err))
		}
		return nil, err
	}

	return &TemplateRenderer{t: t, logger: cfg.Logger}, nil
}

// Render executes the named template into a buffer first so template errors
// never produce a half-written page.
func (r *TemplateRenderer) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}
