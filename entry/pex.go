package entry

import "io/fs"

// UnixPex is the read/write/execute triple of one permission class.
type UnixPex struct {
	read    bool
	write   bool
	execute bool
}

// NewUnixPex returns a UnixPex with the given flags.
func NewUnixPex(read, write, execute bool) UnixPex {
	return UnixPex{read: read, write: write, execute: execute}
}

// UnixPexFromByte decodes the low three bits of v: bit 2 is read, bit 1 is
// write, bit 0 is execute. Higher bits are ignored.
func UnixPexFromByte(v uint8) UnixPex {
	return UnixPex{
		read:    v&0b100 != 0,
		write:   v&0b010 != 0,
		execute: v&0b001 != 0,
	}
}

// CanRead reports whether the read bit is set.
func (p UnixPex) CanRead() bool { return p.read }

// CanWrite reports whether the write bit is set.
func (p UnixPex) CanWrite() bool { return p.write }

// CanExecute reports whether the execute bit is set.
func (p UnixPex) CanExecute() bool { return p.execute }

// Byte encodes p as a value in [0,7], matching one octal mode digit.
func (p UnixPex) Byte() uint8 {
	var b uint8
	if p.read {
		b |= 0b100
	}
	if p.write {
		b |= 0b010
	}
	if p.execute {
		b |= 0b001
	}
	return b
}

// String renders p in ls(1) notation, e.g. "r-x".
func (p UnixPex) String() string {
	out := []byte("---")
	if p.read {
		out[0] = 'r'
	}
	if p.write {
		out[1] = 'w'
	}
	if p.execute {
		out[2] = 'x'
	}
	return string(out)
}

// Permissions holds the owner, group, and other classes of a POSIX mode.
type Permissions struct {
	Owner UnixPex
	Group UnixPex
	Other UnixPex
}

// NewPermissions builds Permissions from three octal digits, so
// NewPermissions(7, 5, 5) is 0755.
func NewPermissions(owner, group, other uint8) Permissions {
	return Permissions{
		Owner: UnixPexFromByte(owner),
		Group: UnixPexFromByte(group),
		Other: UnixPexFromByte(other),
	}
}

// PermissionsFromMode decodes the nine permission bits of a numeric mode.
// File type, setuid, setgid, and sticky bits are ignored.
func PermissionsFromMode(mode uint32) Permissions {
	return NewPermissions(uint8(mode>>6), uint8(mode>>3), uint8(mode))
}

// PermissionsFromFileMode decodes the permission bits of m.
func PermissionsFromFileMode(m fs.FileMode) Permissions {
	return PermissionsFromMode(uint32(m.Perm()))
}

// Mode encodes p as a numeric mode in [0, 0o777].
func (p Permissions) Mode() uint32 {
	return uint32(p.Owner.Byte())<<6 | uint32(p.Group.Byte())<<3 | uint32(p.Other.Byte())
}

// FileMode returns p as fs.FileMode permission bits.
func (p Permissions) FileMode() fs.FileMode {
	return fs.FileMode(p.Mode())
}

// String renders p in ls(1) notation, e.g. "rwxr-xr-x".
func (p Permissions) String() string {
	return p.Owner.String() + p.Group.String() + p.Other.String()
}
