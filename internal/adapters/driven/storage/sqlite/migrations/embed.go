// Package migrations embeds the library schema migrations.
// Files are named NNN_description.up.sql and applied in version order.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
