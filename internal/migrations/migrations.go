// internal/migrations/migrations.go
package migrations

import "embed"

// Migrations holds the embedded SQL migration files applied by goose at startup.
//
//go:embed *.sql
var Migrations embed.FS
