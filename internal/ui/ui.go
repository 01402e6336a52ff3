// Package ui embeds the dashboard front end.
package ui

import "embed"

// DistFS holds the static assets under dist/.
//
//go:embed dist
var DistFS embed.FS
