// Package gitfs produces remotefs entries from the tree of a git commit.
//
// The filesystem is read-only and frozen at the revision resolved when the FS
// is created. Every timestamp of every entry is the committer time of that
// commit. Git records no owners, so User and Group are always absent, and the
// permission bits are derived from the git file mode: 0644 for regular files,
// 0755 for executables and directories.
//
// Symlink blobs are resolved inside the tree. Absolute targets and relative
// targets that climb above the tree root point outside the commit, so those
// links are reported as plain files.
//
// Usage:
//
//	fs, err := gitfs.Open("/path/to/repo", gitfs.WithRevision("v1.2.0"))
//	if err != nil {
//	    return err
//	}
//	entries, err := fs.List(ctx, "/cmd")
package gitfs
