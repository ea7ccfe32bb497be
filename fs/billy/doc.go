// Package billy produces remotefs entries from a go-billy filesystem.
//
// It covers the local disk through osfs and in-memory trees through memfs.
// Any other billy.Filesystem can be adapted with New. The underlying
// filesystem stays reachable through Unwrap, which keeps it usable with go-git.
//
// Usage:
//
//	local := billy.NewLocal(billy.WithLogger(slog.Default()))
//
//	e, err := local.Stat(ctx, "/etc/hosts")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(e.Name(), e.Size())
//
// # Symbolic Links
//
// Stat never follows the path itself: a symlink is reported as a symlink and
// its target chain is stat'ed into the entry. The entry takes the kind and
// size of the final target. When the chain is broken, loops, or is longer than
// entry.MaxSymlinkHops, the link is reported as a file with no symlink target.
//
// # Platform Metadata
//
// On Unix systems the entry carries the owner, group, access time, and
// permission bits of the file. Linux additionally reports the creation time
// through statx(2) when the filesystem records one. Where a value is
// unavailable the creation and access times fall back to the modification
// time. Windows entries carry no owner, group, or permissions.
//
// # Thread Safety
//
// FS values are safe for concurrent use by multiple goroutines as long as the
// wrapped billy.Filesystem is.
package billy
