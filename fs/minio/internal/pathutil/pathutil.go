// Package pathutil maps filesystem paths to MinIO/S3 object keys.
package pathutil

import (
	"path"
	"strings"
)

// Normalize cleans a path and ensures forward slashes.
// It applies: ToSlash → Clean → Trim slashes
// Returns "" for the root.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.Trim(p, "/")
}

// NormalizePrefix normalizes the configured key prefix. Returns "" when
// there is none.
func NormalizePrefix(prefix string) string {
	if prefix == "" || prefix == "." {
		return ""
	}
	return Normalize(prefix)
}

// JoinPath joins a prefix with a filesystem path to create a full S3 key.
// The root maps to the prefix itself.
func JoinPath(prefix, name string) string {
	name = Normalize(name)

	switch {
	case name == "":
		return prefix
	case prefix == "":
		return name
	default:
		return prefix + "/" + name
	}
}

// DirPrefix returns the listing prefix for the directory at key: key with a
// trailing slash, or "" for the bucket root.
func DirPrefix(key string) string {
	if key == "" {
		return ""
	}
	return key + "/"
}

// ChildName returns the first path element of key below listPrefix and
// whether key denotes a directory. Markers for the directory itself yield "".
func ChildName(listPrefix, key string) (string, bool) {
	rel := strings.TrimPrefix(key, listPrefix)
	isDir := strings.HasSuffix(rel, "/")
	return strings.TrimSuffix(rel, "/"), isDir
}
