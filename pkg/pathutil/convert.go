// Package pathutil converts between absolute and relative path forms.
//
// Matches are held with whatever paths the search tool printed, usually
// relative to the search root. Output boundaries (CLI display, JSON, MCP
// responses) relativize any absolute paths for readability; file access
// goes the other way and absolutizes against the project root.
package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/findsweep/internal/searchtypes"
)

// ToRelative converts an absolute path to relative based on a root
// directory. Falls back to the original path if the path is already
// relative, lies outside the root, or conversion fails.
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}

	// A ".." prefix means the file is outside the root; the absolute
	// form is clearer there.
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}
	return relPath
}

// ToAbsolute resolves a path against root unless it is already absolute
func ToAbsolute(path, rootDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}

// ToRelativeMatches converts match paths from absolute to relative,
// returning a new slice and leaving the input untouched.
func ToRelativeMatches(matches []searchtypes.Match, rootDir string) []searchtypes.Match {
	if len(matches) == 0 {
		return matches
	}

	converted := make([]searchtypes.Match, len(matches))
	copy(converted, matches)
	for i := range converted {
		converted[i].Path = ToRelative(converted[i].Path, rootDir)
	}
	return converted
}

// ToAbsoluteMatches resolves match paths against the root, returning a
// new slice. File-modifying passes use this so a match is unambiguous no
// matter what directory the process runs from.
func ToAbsoluteMatches(matches []searchtypes.Match, rootDir string) []searchtypes.Match {
	if len(matches) == 0 {
		return matches
	}

	converted := make([]searchtypes.Match, len(matches))
	copy(converted, matches)
	for i := range converted {
		converted[i].Path = ToAbsolute(converted[i].Path, rootDir)
	}
	return converted
}
