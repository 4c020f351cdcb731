// Package migrations embeds the SQL migrations applied to the postgres trip
// store at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
