package migrations

import "embed"

// FS holds the embedded migration files for both backends, under the
// sqlite/ and postgres/ subdirectories.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
