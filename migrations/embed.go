// Package migrations embeds the goose SQL migrations of the remote backend.
package migrations

import "embed"

// FS holds every *.sql migration, applied in file name order.
//
//go:embed *.sql
var FS embed.FS
