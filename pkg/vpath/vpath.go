// Package vpath implements the game's virtual path conventions: forward
// slashes, case-insensitive lookup with display case preserved, and the
// top-level content-directory whitelist.
package vpath

import (
	"path"
	"strings"
)

// Normalize converts a raw path into canonical virtual form: backslashes
// become forward slashes, leading "./" and "/" are stripped, and interior
// "." / ".." segments are resolved. Character case is preserved for display.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return ""
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// Key returns the case-insensitive lookup key for a virtual path.
func Key(p string) string {
	return strings.ToLower(Normalize(p))
}

// TopDir returns the first path segment, lowercased, or "" for a bare name.
func TopDir(p string) string {
	p = Key(p)
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return ""
}

// Base returns the final path segment with display case preserved.
func Base(p string) string {
	return path.Base(Normalize(p))
}

// Ext returns the lowercased file extension including the dot, or "".
func Ext(p string) string {
	return strings.ToLower(path.Ext(p))
}

// IsXML reports whether the path names an XML document.
func IsXML(p string) bool {
	return Ext(p) == ".xml"
}

// Join joins virtual path segments with forward slashes and normalizes
// the result.
func Join(parts ...string) string {
	return Normalize(path.Join(parts...))
}
