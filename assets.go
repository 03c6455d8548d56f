// Package portal provides embedded assets for production builds.
package portal

import "embed"

// TemplateFS carries the page templates compiled into the binary. In dev
// mode templates are loaded from disk instead, for hot reloading.
//
//go:embed all:web/templates
var TemplateFS embed.FS
