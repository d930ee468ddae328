// Package assets fetches the archives of factory-bundled modules.
package assets

import (
	"context"
	"path"
)

// Fetcher returns the zip archive of the bundled module with the given id.
// A module that is not bundled yields an error wrapping common.ErrorNotFound.
type Fetcher interface {
	Fetch(ctx context.Context, id string) ([]byte, error)
}

// ArchivePath is the path of a bundled module relative to the asset root.
func ArchivePath(id string) string {
	return path.Join("modules", id+".zip")
}
