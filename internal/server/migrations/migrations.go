// Package migrations embeds the versioned SQL schema units applied by goose.
// File names carry the version as a zero-padded numeric prefix.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
