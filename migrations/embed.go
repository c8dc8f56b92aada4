package migrations

import "embed"

// FS holds the schema migrations applied at start-up.
//
//go:embed *.sql
var FS embed.FS
