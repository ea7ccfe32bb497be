// Package entry models filesystem entries as immutable values.
//
// An Entry is either a Directory or a File. Both carry a name, an absolute
// path, three timestamps, and optional POSIX metadata: owner id, group id,
// and a permission triple for each of owner, group, and other. Producers on
// platforms without POSIX semantics leave that metadata absent, and the
// accessors report the absence instead of inventing a default:
//
//	if uid, ok := e.User(); ok {
//	    fmt.Println("owned by", uid)
//	}
//
// # Symlinks
//
// An entry that is a symbolic link owns the entry it points to, which may in
// turn be a link. Realfile follows that chain to the terminal entry:
//
//	real, err := e.Realfile()
//
// The chain is bounded by MaxSymlinkHops and checked for revisited paths, so
// a cyclic chain yields an error with code CodeSymlinkLoop rather than
// unbounded recursion.
//
// # Narrowing
//
// AsFile and AsDirectory return the variant payload. Calling the wrong one is
// a programming error and panics; check IsFile or IsDir first.
//
// # Permissions
//
// UnixPex packs read, write, and execute into bits 2, 1, and 0, which is the
// layout of one octal digit of a POSIX mode:
//
//	entry.UnixPexFromByte(5) // r-x
//	entry.PermissionsFromFileMode(0o754).String() // "rwxr-xr--"
//
// Nothing in this package performs I/O. Producers in the fs/ tree build
// entries from local disks, in-memory filesystems, object storage, and git
// trees.
package entry
