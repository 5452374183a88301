package file

import (
	"path/filepath"
	"strings"
)

// Ext returns the lowercased extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// RelParts returns the path segments of path relative to root: every
// directory name between root and the file, followed by the filename.
func RelParts(root, path string) ([]string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, err
	}
	return strings.Split(rel, string(filepath.Separator)), nil
}
