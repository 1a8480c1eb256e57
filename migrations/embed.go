// Package migrations embeds the schema migrations applied by cmd/migrate and
// by the API on startup when AUTO_MIGRATE is set.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
