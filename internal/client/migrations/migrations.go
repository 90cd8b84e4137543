// Package migrations embeds the schema of the on-device SQLite database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
