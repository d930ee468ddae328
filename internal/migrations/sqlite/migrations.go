// Package sqlite embeds the goose migrations of the SQLite store.
package sqlite

import "embed"

//go:embed *.sql
var Migrations embed.FS
