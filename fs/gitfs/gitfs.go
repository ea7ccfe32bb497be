package gitfs

import (
	"context"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
	"github.com/jmgilman/go/remotefs/fs/core"
	"github.com/jmgilman/go/remotefs/internal/logging"
)

// FS produces entries from the tree of one commit.
type FS struct {
	repo   *gogit.Repository
	commit *object.Commit
	tree   *object.Tree
	log    *logging.Logger
}

// New returns an FS over the commit repo resolves the configured revision to.
func New(repo *gogit.Repository, opts ...Option) (*FS, error) {
	o := newOptions(opts)

	hash, err := repo.ResolveRevision(plumbing.Revision(o.revision))
	if err != nil {
		return nil, revisionError(err, o.revision)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, revisionError(err, o.revision)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, revisionError(err, o.revision)
	}

	return &FS{
		repo:   repo,
		commit: commit,
		tree:   tree,
		log:    logging.New(o.logger).WithBackend(core.BackendTypeGit.String()).With("commit", commit.Hash.String()),
	}, nil
}

// Open opens the repository at dir and returns an FS over its configured
// revision. Both repositories with a .git directory and bare repositories are
// accepted.
func Open(dir string, opts ...Option) (*FS, error) {
	o := newOptions(opts)
	bfs := o.fs
	if bfs == nil {
		bfs = osfs.New(dir)
		dir = "/"
	}

	scoped, err := bfs.Chroot(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "scope filesystem to repository")
	}

	// Bare repositories keep their objects at the root.
	storageFS := scoped
	if info, err := scoped.Stat(".git"); err == nil && info.IsDir() {
		if storageFS, err = scoped.Chroot(".git"); err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidInput, "scope filesystem to .git")
		}
	}

	repo, err := gogit.Open(filesystem.NewStorage(storageFS, cache.NewObjectLRUDefault()), nil)
	if err != nil {
		code := errors.CodeInternal
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			code = errors.CodeNotFound
		}
		return nil, errors.WrapWithContext(err, code, "open repository", map[string]interface{}{
			"path": dir,
		})
	}

	return New(repo, opts...)
}

// Commit returns the hash of the commit the FS exposes.
func (f *FS) Commit() string {
	return f.commit.Hash.String()
}

// Type returns core.BackendTypeGit.
func (f *FS) Type() core.BackendType {
	return core.BackendTypeGit
}

// Stat returns the entry at p.
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

// List returns the entries of dir sorted by name. A symlink to a directory
// lists its target. Submodules list as empty directories. A child whose link
// chain loops or is too long is listed as a link with no target.
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

	// d carries the target's path when a directory above dir is a link.
	listed := d.AbsPath()
	if d.IsSymlink() {
		target, err := d.Realfile()
		if err != nil {
			return nil, core.PathError("list", dir, err)
		}
		listed = target.AbsPath()
	}

	tree, err := f.subtree(listed)
	if err != nil {
		return nil, core.PathError("list", dir, err)
	}
	if tree == nil {
		return []entry.Entry{}, nil
	}

	out = make([]entry.Entry, 0, len(tree.Entries))
	for _, te := range tree.Entries {
		if err := ctx.Err(); err != nil {
			return nil, core.PathError("list", dir, err)
		}

		child := path.Join(listed, te.Name)
		e, err := f.stat(ctx, child, 0, map[string]bool{})
		if core.IsSymlinkLoop(err) {
			f.log.Warn(ctx, "symlink not followed", "path", child, "error", err.Error())
			e, err = f.link(te, child)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// subtree returns the tree at p, or nil for a submodule.
func (f *FS) subtree(p string) (*object.Tree, error) {
	if p == "/" {
		return f.tree, nil
	}

	te, err := f.tree.FindEntry(strings.TrimPrefix(p, "/"))
	if err != nil {
		return nil, classifyError(err)
	}
	if te.Mode == filemode.Submodule {
		return nil, nil
	}

	tree, err := f.tree.Tree(strings.TrimPrefix(p, "/"))
	return tree, classifyError(err)
}

func (f *FS) stat(ctx context.Context, p string, depth int, seen map[string]bool) (entry.Entry, error) {
	if p == "/" {
		return f.build(p, filemode.Dir, 0, nil), nil
	}

	te, err := f.tree.FindEntry(strings.TrimPrefix(p, "/"))
	if err != nil {
		if e, ok, lerr := f.viaParent(ctx, p, depth); lerr != nil || ok {
			return e, lerr
		}
		return entry.Entry{}, core.PathError("stat", p, classifyError(err))
	}

	switch te.Mode {
	case filemode.Dir, filemode.Submodule:
		return f.build(p, te.Mode, 0, nil), nil
	case filemode.Symlink:
		raw, err := f.readBlob(te.Hash)
		if err != nil {
			return entry.Entry{}, core.PathError("stat", p, err)
		}
		seen[p] = true
		target, err := f.follow(ctx, p, string(raw), depth, seen)
		if err != nil {
			return entry.Entry{}, err
		}
		if target == nil {
			return f.build(p, te.Mode, uint64(len(raw)), nil), nil
		}
		return f.build(p, te.Mode, target.Size(), target), nil
	default:
		size, err := f.blobSize(te.Hash)
		if err != nil {
			return entry.Entry{}, core.PathError("stat", p, err)
		}
		return f.build(p, te.Mode, size, nil), nil
	}
}

// follow resolves the link at p holding raw. A nil target with a nil error
// means the link is broken: it leaves the tree or its target does not exist.
// Loops and chains longer than entry.MaxSymlinkHops fail with a bare
// SymlinkLoop error.
func (f *FS) follow(ctx context.Context, p, raw string, depth int, seen map[string]bool) (*entry.Entry, error) {
	if path.IsAbs(raw) {
		f.log.Debug(ctx, "symlink points outside the tree", "path", p, "target", raw)
		return nil, nil
	}

	rel := path.Join(strings.TrimPrefix(path.Dir(p), "/"), raw)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		f.log.Debug(ctx, "symlink points outside the tree", "path", p, "target", raw)
		return nil, nil
	}
	dst := core.Clean(rel)

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

// viaParent retries a lookup of p that missed in the tree when a directory
// above p is a link. The entry found carries the target's path, as List does.
// It reports false when no link redirects p.
func (f *FS) viaParent(ctx context.Context, p string, depth int) (entry.Entry, bool, error) {
	dir := path.Dir(p)
	if dir == "/" {
		return entry.Entry{}, false, nil
	}
	if depth >= entry.MaxSymlinkHops {
		return entry.Entry{}, false, core.SymlinkLoop(dir, p, depth+1, false)
	}

	parent, err := f.stat(ctx, dir, depth+1, map[string]bool{})
	if core.IsSymlinkLoop(err) {
		return entry.Entry{}, false, err
	}
	if err != nil || !parent.IsDir() {
		return entry.Entry{}, false, nil
	}

	resolved, err := parent.Realfile()
	if err != nil {
		return entry.Entry{}, false, err
	}
	if resolved.AbsPath() == dir {
		return entry.Entry{}, false, nil
	}

	e, err := f.stat(ctx, path.Join(resolved.AbsPath(), path.Base(p)), depth+1, map[string]bool{})
	if core.IsSymlinkLoop(err) {
		return entry.Entry{}, false, err
	}
	if err != nil {
		return entry.Entry{}, false, nil
	}
	return e, true, nil
}

// link returns the tree entry te at p without following it.
func (f *FS) link(te object.TreeEntry, p string) (entry.Entry, error) {
	size, err := f.blobSize(te.Hash)
	if err != nil {
		return entry.Entry{}, core.PathError("stat", p, err)
	}
	return f.build(p, te.Mode, size, nil), nil
}

func (f *FS) build(p string, mode filemode.FileMode, size uint64, target *entry.Entry) entry.Entry {
	when := f.commit.Committer.When
	meta := entry.Metadata{
		Name:           core.Name(p),
		AbsPath:        p,
		LastChangeTime: when,
		LastAccessTime: when,
		CreationTime:   when,
		Symlink:        target,
		Pex:            entry.Ptr(permissions(mode)),
	}

	isDir := mode == filemode.Dir || mode == filemode.Submodule
	if target != nil {
		isDir = target.IsDir()
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

func permissions(mode filemode.FileMode) entry.Permissions {
	switch mode {
	case filemode.Dir, filemode.Submodule, filemode.Executable:
		return entry.PermissionsFromMode(0o755)
	case filemode.Symlink:
		return entry.PermissionsFromMode(0o777)
	default:
		return entry.PermissionsFromMode(0o644)
	}
}

func (f *FS) blobSize(h plumbing.Hash) (uint64, error) {
	blob, err := f.repo.BlobObject(h)
	if err != nil {
		return 0, classifyError(err)
	}
	return uint64(max(blob.Size, 0)), nil
}

func (f *FS) readBlob(h plumbing.Hash) ([]byte, error) {
	blob, err := f.repo.BlobObject(h)
	if err != nil {
		return nil, classifyError(err)
	}

	r, err := blob.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return io.ReadAll(r)
}

var _ core.Backend = (*FS)(nil)
