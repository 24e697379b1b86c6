// Package pathutil provides path resolution helpers for depot repositories.
package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizeSeparators rewrites backslashes to forward slashes so that
// resource names produced on one platform resolve the same on another.
func NormalizeSeparators(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Resolve joins rel to base and collapses "." and ".." segments into a
// canonical path. It performs no filesystem access.
func Resolve(base, rel string) string {
	rel = NormalizeSeparators(rel)
	return filepath.Join(base, filepath.FromSlash(rel))
}

// JoinRaw joins rel to base without collapsing "." or ".." segments.
// Directory creation retries with this form when creating the resolved
// path fails: some filesystems reject the collapsed form of "."-only
// destinations but accept the literal one.
func JoinRaw(base, rel string) string {
	rel = filepath.FromSlash(NormalizeSeparators(rel))
	if rel == "" {
		return base
	}
	if base == "" {
		return rel
	}
	return base + string(filepath.Separator) + rel
}
