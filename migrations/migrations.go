// Package migrations embeds the SQL migration files per database driver.
package migrations

import "embed"

//go:embed mysql/*.sql sqlite/*.sql
var FS embed.FS
