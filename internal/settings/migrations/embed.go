// Package migrations embeds the goose migrations of the SQLite settings store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
