// Package db embeds the SQL migrations: pg/ for postgres, sqlite/ for sqlite.
package db

import "embed"

//go:embed pg/*.sql sqlite/*.sql
var Migrations embed.FS
