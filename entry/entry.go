package entry

import (
	"strings"
	"time"

	"github.com/jmgilman/go/remotefs/errors"
)

// DirectorySize is the size every directory reports. It is a placeholder,
// not a measurement of the blocks the directory occupies.
const DirectorySize uint64 = 4096

// Kind identifies the active variant of an Entry.
type Kind int

const (
	// KindInvalid is the kind of the zero Entry.
	KindInvalid Kind = iota
	// KindDirectory marks a Directory entry.
	KindDirectory
	// KindFile marks a File entry.
	KindFile
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "invalid"
	}
}

// Metadata holds the fields shared by directories and files.
//
// Symlink, User, Group, and Pex are nil when the producer has no value for
// them. Symlink is owned by the entry: constructors and accessors copy it.
type Metadata struct {
	Name           string
	AbsPath        string
	LastChangeTime time.Time
	LastAccessTime time.Time
	CreationTime   time.Time
	Symlink        *Entry
	User           *uint32
	Group          *uint32
	Pex            *Permissions
}

// Directory is the payload of a directory entry.
type Directory struct {
	Metadata
}

// File is the payload of a file entry.
type File struct {
	Metadata

	// Size is the file length in bytes.
	Size uint64

	// Type is usually the extension without the leading dot. Nil when unknown.
	Type *string
}

// Entry is a directory or a file. Construct one with NewDirectory or NewFile;
// the zero Entry is neither and reports zero values from every accessor.
type Entry struct {
	dir  *Directory
	file *File
}

// NewDirectory returns an Entry holding a copy of d.
func NewDirectory(d Directory) Entry {
	d.Metadata = d.Metadata.clone(map[*Entry]*Entry{})
	return Entry{dir: &d}
}

// NewFile returns an Entry holding a copy of f.
func NewFile(f File) Entry {
	f.Metadata = f.Metadata.clone(map[*Entry]*Entry{})
	f.Type = clonePtr(f.Type)
	return Entry{file: &f}
}

// Kind returns the active variant.
func (e Entry) Kind() Kind {
	switch {
	case e.dir != nil:
		return KindDirectory
	case e.file != nil:
		return KindFile
	default:
		return KindInvalid
	}
}

var emptyMetadata Metadata

func (e Entry) meta() *Metadata {
	switch {
	case e.dir != nil:
		return &e.dir.Metadata
	case e.file != nil:
		return &e.file.Metadata
	default:
		return &emptyMetadata
	}
}

// AbsPath returns the absolute path of the entry.
func (e Entry) AbsPath() string { return e.meta().AbsPath }

// Name returns the final path element.
func (e Entry) Name() string { return e.meta().Name }

// LastChangeTime returns the modification time.
func (e Entry) LastChangeTime() time.Time { return e.meta().LastChangeTime }

// LastAccessTime returns the access time.
func (e Entry) LastAccessTime() time.Time { return e.meta().LastAccessTime }

// CreationTime returns the creation time.
func (e Entry) CreationTime() time.Time { return e.meta().CreationTime }

// Size returns the file size, or DirectorySize for directories.
func (e Entry) Size() uint64 {
	switch {
	case e.dir != nil:
		return DirectorySize
	case e.file != nil:
		return e.file.Size
	default:
		return 0
	}
}

// FileType returns the file type. Directories never have one.
func (e Entry) FileType() (string, bool) {
	if e.file == nil || e.file.Type == nil {
		return "", false
	}
	return *e.file.Type, true
}

// User returns the owner id, if the producer supplied one.
func (e Entry) User() (uint32, bool) { return deref(e.meta().User) }

// Group returns the group id, if the producer supplied one.
func (e Entry) Group() (uint32, bool) { return deref(e.meta().Group) }

// UnixPex returns the owner, group, and other permission triples, if the
// producer supplied them.
func (e Entry) UnixPex() (Permissions, bool) { return deref(e.meta().Pex) }

// Symlink returns a copy of the entry this one links to.
func (e Entry) Symlink() (Entry, bool) {
	target := e.meta().Symlink
	if target == nil {
		return Entry{}, false
	}
	return target.Clone(), true
}

// IsSymlink reports whether the entry links to another entry.
func (e Entry) IsSymlink() bool { return e.meta().Symlink != nil }

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.dir != nil }

// IsFile reports whether the entry is a file.
func (e Entry) IsFile() bool { return e.file != nil }

// IsHidden reports whether the name starts with a dot.
func (e Entry) IsHidden() bool { return strings.HasPrefix(e.Name(), ".") }

// AsFile returns a copy of the File payload. It panics with a
// CodeVariantMismatch error if the entry is not a file.
func (e Entry) AsFile() File {
	if e.file == nil {
		panic(errors.Newf(errors.CodeVariantMismatch, "AsFile called on %s entry %q", e.Kind(), e.AbsPath()))
	}
	f := *e.file
	f.Metadata = f.Metadata.clone(map[*Entry]*Entry{})
	f.Type = clonePtr(f.Type)
	return f
}

// AsDirectory returns a copy of the Directory payload. It panics with a
// CodeVariantMismatch error if the entry is not a directory.
func (e Entry) AsDirectory() Directory {
	if e.dir == nil {
		panic(errors.Newf(errors.CodeVariantMismatch, "AsDirectory called on %s entry %q", e.Kind(), e.AbsPath()))
	}
	d := *e.dir
	d.Metadata = d.Metadata.clone(map[*Entry]*Entry{})
	return d
}

// String returns the kind and absolute path, e.g. "file /etc/hosts".
func (e Entry) String() string {
	return e.Kind().String() + " " + e.AbsPath()
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v. It keeps producer code that fills the optional
// Metadata fields short:
//
//	Metadata{User: entry.Ptr(uint32(0))}
func Ptr[T any](v T) *T {
	return &v
}
