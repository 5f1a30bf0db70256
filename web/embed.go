// Package web holds the browser assets served next to the rendered page.
package web

import "embed"

//go:embed static
var Static embed.FS
