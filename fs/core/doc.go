// Package core defines the contract between entry producers and the code
// that consumes entry.Entry values.
//
// A producer turns whatever a backend knows about a path (a local lstat, an
// S3 object header, a git tree record) into an immutable entry.Entry. Every
// producer implements Backend:
//
//   - Stater: Stat returns the entry at an absolute path
//   - Lister: List returns the entries of a directory, sorted by name
//   - Type: reports whether the backend is local, in-memory, remote, or git
//
// Paths are slash-separated and absolute within the backend ("/", "/etc/hosts"),
// regardless of the host operating system.
//
// # Helpers
//
// The package builds a few operations on top of the contract so producers do
// not each reimplement them:
//
//   - Walk: pre-order traversal that never follows symlinked directories
//   - StatAll: bounded concurrent Stat of many paths
//   - Resolve: Stat followed by entry.Entry.Realfile
//   - Find: Walk filtered by a glob over entry names
//
// # Errors
//
// Producers report failures as errors.Error values built with PathError, so
// callers can both branch on errors.GetCode and test errors.Is(err,
// fs.ErrNotExist). Links that loop or run past entry.MaxSymlinkHops are
// reported with SymlinkLoop.
//
// # Provider Implementations
//
//   - github.com/jmgilman/go/remotefs/fs/billy - local disk and in-memory
//   - github.com/jmgilman/go/remotefs/fs/minio - MinIO and S3
//   - github.com/jmgilman/go/remotefs/fs/gitfs - git trees
package core
