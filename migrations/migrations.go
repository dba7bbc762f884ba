// Package migrations embeds the goose SQL migrations for both databases.
// The primary and secondary schemas intentionally differ: see the schedules
// and daily_logs tables.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed primary/*.sql secondary/*.sql
var files embed.FS

// Primary returns the migration filesystem for the primary database.
func Primary() fs.FS {
	sub, err := fs.Sub(files, "primary")
	if err != nil {
		panic(err)
	}
	return sub
}

// Secondary returns the migration filesystem for the secondary database.
func Secondary() fs.FS {
	sub, err := fs.Sub(files, "secondary")
	if err != nil {
		panic(err)
	}
	return sub
}
