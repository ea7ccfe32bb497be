package core

import (
	"context"
	"path"
	"strings"

	"github.com/jmgilman/go/remotefs/entry"
)

// BackendType represents the kind of storage behind a producer.
type BackendType int

const (
	// BackendTypeUnknown indicates the backend type is unknown or unspecified.
	BackendTypeUnknown BackendType = iota
	// BackendTypeLocal indicates a local disk.
	BackendTypeLocal
	// BackendTypeMemory indicates an in-memory filesystem.
	BackendTypeMemory
	// BackendTypeRemote indicates remote storage such as S3.
	BackendTypeRemote
	// BackendTypeGit indicates the tree of a git commit.
	BackendTypeGit
)

// String returns a string representation of the BackendType.
func (t BackendType) String() string {
	switch t {
	case BackendTypeLocal:
		return "local"
	case BackendTypeMemory:
		return "memory"
	case BackendTypeRemote:
		return "remote"
	case BackendTypeGit:
		return "git"
	default:
		return "unknown"
	}
}

// Stater returns the entry at a single path.
type Stater interface {
	// Stat returns the entry at p. If p is a symbolic link the returned
	// entry carries the link's target chain; the entry's kind is the kind of
	// the final target, or File when the link is broken.
	//
	// Links in the directories above p are followed where the backend can
	// do so (local disk and git). A git backend then reports the path below
	// the link's target, matching what List returns for a linked directory.
	//
	// A link whose chain loops or exceeds entry.MaxSymlinkHops fails with a
	// CodeSymlinkLoop error (see IsSymlinkLoop).
	//
	// Missing paths fail with a CodeNotFound error that also matches
	// fs.ErrNotExist.
	Stat(ctx context.Context, p string) (entry.Entry, error)
}

// Lister returns the children of a directory.
type Lister interface {
	// List returns the entries directly inside dir, sorted by name. The
	// entries "." and ".." are never included.
	List(ctx context.Context, dir string) ([]entry.Entry, error)
}

// Backend is implemented by every producer.
type Backend interface {
	Stater
	Lister

	// Type returns the kind of storage behind the backend.
	Type() BackendType
}

// Clean returns p as an absolute, slash-separated, lexically clean path.
// Backslashes are treated as separators so Windows-style input works.
func Clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean("/" + p)
}

// Name returns the final element of p, or "/" for the root.
func Name(p string) string {
	p = Clean(p)
	if p == "/" {
		return "/"
	}
	return path.Base(p)
}

// FileType returns the extension of name without the leading dot, or nil
// when there is none. Dotfiles such as ".bashrc" have no extension.
func FileType(name string) *string {
	ext := path.Ext(name)
	if ext == "" || ext == name || len(ext) == 1 {
		return nil
	}
	t := ext[1:]
	return &t
}
