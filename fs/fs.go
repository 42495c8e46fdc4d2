// Package appfs exposes repository-level assets (SQL migrations) to the rest
// of the module, so binaries stay self-contained.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
