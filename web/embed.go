package web

import "embed"

// Templates embeds the report HTML templates.
//
//go:embed templates/reports/*.html
var Templates embed.FS
