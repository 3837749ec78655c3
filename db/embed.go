// Package db embeds the goose SQL migrations for postgres.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
