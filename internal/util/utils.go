package util

import (
	"path/filepath"
)

// ToRelativePath returns fullPath relative to rootPath, or fullPath itself
// when no relative form exists. A root that is the file itself yields the
// file name.
func ToRelativePath(rootPath, fullPath string) string {
	relPath, err := filepath.Rel(rootPath, fullPath)
	if err != nil {
		return fullPath
	}
	if relPath == "." {
		return filepath.Base(fullPath)
	}
	return filepath.ToSlash(relPath)
}
