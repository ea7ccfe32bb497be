package billy

import (
	"context"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
	"github.com/jmgilman/go/remotefs/fs/core"
	"github.com/jmgilman/go/remotefs/internal/logging"
)

var isWindows = runtime.GOOS == "windows"

// FS produces entries from a billy.Filesystem.
type FS struct {
	bfs    billy.Filesystem
	typ    core.BackendType
	osRoot string
	log    *logging.Logger
}

// Option configures an FS.
type Option func(*config)

type config struct {
	root   string
	logger *slog.Logger
}

// WithRoot roots a local filesystem at dir instead of "/". Paths passed to Stat
// and List are then relative to dir. Ignored by NewMemory and New.
func WithRoot(dir string) Option {
	return func(c *config) {
		c.root = dir
	}
}

// WithLogger sets the logger used for operation and symlink diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []Option) config {
	c := config{root: "/"}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewLocal returns an FS over the local disk, rooted at "/" unless WithRoot
// is given.
func NewLocal(opts ...Option) *FS {
	c := newConfig(opts)
	root, err := filepath.Abs(c.root)
	if err != nil {
		root = c.root
	}

	f := newFS(osfs.New(root), core.BackendTypeLocal, c)
	f.osRoot = root
	return f
}

// NewMemory returns an FS over a new, empty in-memory filesystem. Populate it
// through Unwrap.
func NewMemory(opts ...Option) *FS {
	return newFS(memfs.New(), core.BackendTypeMemory, newConfig(opts))
}

// New returns an FS over an existing billy filesystem. typ is reported by Type.
func New(bfs billy.Filesystem, typ core.BackendType, opts ...Option) *FS {
	return newFS(bfs, typ, newConfig(opts))
}

func newFS(bfs billy.Filesystem, typ core.BackendType, c config) *FS {
	return &FS{
		bfs: bfs,
		typ: typ,
		log: logging.New(c.logger).WithBackend(typ.String()),
	}
}

// Unwrap returns the underlying billy.Filesystem for go-git integration.
func (f *FS) Unwrap() billy.Filesystem {
	return f.bfs
}

// Type returns the backend type given at construction.
func (f *FS) Type() core.BackendType {
	return f.typ
}

// Stat returns the entry at p. A link carries its target chain; a chain that
// loops or runs past entry.MaxSymlinkHops fails with CodeSymlinkLoop.
func (f *FS) Stat(ctx context.Context, p string) (e entry.Entry, err error) {
	p = core.Clean(p)
	start := time.Now()
	defer func() {
		logging.LogOperation(ctx, f.log, logging.OpStat, p, start, err)
	}()

	if err := ctx.Err(); err != nil {
		return entry.Entry{}, core.PathError("stat", p, err)
	}

	e, err = f.stat(ctx, p, 0, map[string]bool{})
	if core.IsSymlinkLoop(err) {
		return entry.Entry{}, core.PathError("stat", p, err)
	}
	return e, err
}

// List returns the entries of dir sorted by name. When dir is a symlink to a
// directory, the target is listed and the children carry the target's paths.
// A child whose link chain loops or is too long is listed as a link with no
// target.
func (f *FS) List(ctx context.Context, dir string) (out []entry.Entry, err error) {
	dir = core.Clean(dir)
	start := time.Now()
	defer func() {
		logging.LogOperation(ctx, f.log, logging.OpList, dir, start, err)
	}()

	d, err := f.stat(ctx, dir, 0, map[string]bool{})
	if core.IsSymlinkLoop(err) {
		return nil, core.PathError("list", dir, err)
	}
	if err != nil {
		return nil, err
	}
	if !d.IsDir() {
		return nil, core.PathError("list", dir, core.ErrNotDir)
	}

	listed := dir
	if d.IsSymlink() {
		target, err := d.Realfile()
		if err != nil {
			return nil, core.PathError("list", dir, err)
		}
		listed = target.AbsPath()
	}

	infos, err := f.bfs.ReadDir(listed)
	if err != nil && !(listed == "/" && errors.Is(err, fs.ErrNotExist)) {
		return nil, core.PathError("list", dir, err)
	}

	out = make([]entry.Entry, 0, len(infos))
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, core.PathError("list", dir, err)
		}

		child := path.Join(listed, info.Name())
		e, err := f.stat(ctx, child, 0, map[string]bool{})
		if core.IsSymlinkLoop(err) {
			f.log.Warn(ctx, "symlink not followed", "path", child, "error", err.Error())
			e, err = f.link(child)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// stat returns the entry at p, following p when it is a link. Loops and
// chains longer than entry.MaxSymlinkHops fail with a bare SymlinkLoop error
// so callers can decide how to report them.
func (f *FS) stat(ctx context.Context, p string, depth int, seen map[string]bool) (entry.Entry, error) {
	info, err := f.bfs.Lstat(p)
	if err != nil {
		// memfs has no node for the root until something creates one.
		if p == "/" && errors.Is(err, fs.ErrNotExist) {
			return rootEntry(), nil
		}
		return entry.Entry{}, core.PathError("stat", p, err)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return f.build(p, info, nil), nil
	}

	seen[p] = true
	target, err := f.follow(ctx, p, depth, seen)
	if err != nil {
		return entry.Entry{}, err
	}
	return f.build(p, info, target), nil
}

// follow stats the target of the link at p. A nil target with a nil error
// means the link is broken.
func (f *FS) follow(ctx context.Context, p string, depth int, seen map[string]bool) (*entry.Entry, error) {
	raw, err := f.bfs.Readlink(p)
	if err != nil {
		f.log.Error(ctx, "readlink failed", "operation", string(logging.OpReadlink), "path", p, "error", err.Error())
		return nil, nil
	}

	dst := filepath.ToSlash(raw)
	if !path.IsAbs(dst) {
		dst = path.Join(path.Dir(p), dst)
	}
	dst = core.Clean(dst)

	if seen[dst] || depth >= entry.MaxSymlinkHops {
		return nil, core.SymlinkLoop(p, dst, depth+1, seen[dst])
	}

	target, err := f.stat(ctx, dst, depth+1, seen)
	if core.IsSymlinkLoop(err) {
		return nil, err
	}
	if err != nil {
		f.log.Debug(ctx, "broken symlink", "path", p, "target", dst, "error", err.Error())
		return nil, nil
	}
	return &target, nil
}

// link returns the link at p without following it.
func (f *FS) link(p string) (entry.Entry, error) {
	info, err := f.bfs.Lstat(p)
	if err != nil {
		return entry.Entry{}, core.PathError("stat", p, err)
	}
	return f.build(p, info, nil), nil
}

func (f *FS) build(p string, info fs.FileInfo, target *entry.Entry) entry.Entry {
	si := platformInfo(info, f.osPath(p))
	mtime := info.ModTime()

	meta := entry.Metadata{
		Name:           core.Name(p),
		AbsPath:        p,
		LastChangeTime: mtime,
		LastAccessTime: orTime(si.atime, mtime),
		CreationTime:   orTime(si.btime, mtime),
		Symlink:        target,
		User:           si.uid,
		Group:          si.gid,
	}
	if !isWindows {
		meta.Pex = entry.Ptr(entry.PermissionsFromFileMode(info.Mode()))
	}

	isDir, size := info.IsDir(), uint64(max(info.Size(), 0))
	if target != nil {
		isDir, size = target.IsDir(), target.Size()
	}

	if isDir {
		return entry.NewDirectory(entry.Directory{Metadata: meta})
	}
	return entry.NewFile(entry.File{
		Metadata: meta,
		Size:     size,
		Type:     core.FileType(meta.Name),
	})
}

// osPath returns the host path of p for local filesystems, or "" otherwise.
func (f *FS) osPath(p string) string {
	if f.osRoot == "" {
		return ""
	}
	return filepath.Join(f.osRoot, filepath.FromSlash(p))
}

func rootEntry() entry.Entry {
	return entry.NewDirectory(entry.Directory{Metadata: entry.Metadata{Name: "/", AbsPath: "/"}})
}

func orTime(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}

// sysInfo holds the metadata only some platforms expose. Zero times and nil
// ids mean unavailable.
type sysInfo struct {
	atime time.Time
	btime time.Time
	uid   *uint32
	gid   *uint32
}

var _ core.Backend = (*FS)(nil)
