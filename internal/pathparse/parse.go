// Package pathparse splits paths into directory, stem and extension without
// touching the filesystem.
package pathparse

import (
	"path"
	"strings"

	"fsinventory/internal/fserr"
)

// Parse splits p into its parent directory, stem and extension.
//
// Backslashes are treated as separators and the path is cleaned first. The
// directory is empty when p has no parent component. A leading dot never starts
// an extension, so ".bashrc" has stem ".bashrc" and no extension.
func Parse(p string) (dir, stem, ext string, err error) {
	if strings.TrimSpace(p) == "" {
		return "", "", "", fserr.InvalidArgument("path cannot be empty or whitespace")
	}

	normalized := path.Clean(strings.ReplaceAll(p, `\`, "/"))
	if normalized == "/" {
		return "/", "", "", nil
	}

	if i := strings.LastIndex(normalized, "/"); i >= 0 {
		dir = normalized[:i]
		if dir == "" {
			dir = "/"
		}
		normalized = normalized[i+1:]
	}

	stem, ext = SplitName(normalized)
	return dir, stem, ext, nil
}

// SplitName splits a single path segment at its last dot that is not the
// segment's first character.
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}
