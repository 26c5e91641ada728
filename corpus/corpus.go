// Package corpus ships the default documentation content inside the binary.
//
// Layout: one directory per language holding a language.yaml manifest and the
// partition files it lists.
package corpus

import (
	"embed"
	"io/fs"
)

//go:embed */*.yaml
var files embed.FS

// FS returns the embedded content tree.
func FS() fs.FS {
	return files
}
