package gitfs

import (
	"context"
	"fmt"
	"path"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
	"github.com/jmgilman/go/remotefs/fs/core"
	"github.com/jmgilman/go/remotefs/fs/fstest"
)

var commitTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// commitFixture writes fx as the tree of a single commit on master and
// returns its hash. Absolute link targets are rewritten relative to the link.
func commitFixture(t *testing.T, st storer.Storer, fx fstest.Fixture, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()

	root := writeTree(t, st, fx, "/")
	sig := object.Signature{Name: "Test User", Email: "test@example.com", When: commitTime}
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      "fixture",
		TreeHash:     root,
		ParentHashes: parents,
	}

	obj := st.NewEncodedObject()
	require.NoError(t, commit.Encode(obj))
	hash, err := st.SetEncodedObject(obj)
	require.NoError(t, err)

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName("master"), hash)
	require.NoError(t, st.SetReference(ref))
	return hash
}

func writeTree(t *testing.T, st storer.EncodedObjectStorer, fx fstest.Fixture, dir string) plumbing.Hash {
	t.Helper()

	var entries []object.TreeEntry
	for _, n := range fx.Nodes {
		if n.Path == dir || path.Dir(n.Path) != dir {
			continue
		}

		te := object.TreeEntry{Name: path.Base(n.Path)}
		switch {
		case n.Dir:
			te.Mode = filemode.Dir
			te.Hash = writeTree(t, st, fx, n.Path)
		case n.IsSymlink():
			target := n.Target
			if path.IsAbs(target) {
				target = relTo(path.Dir(n.Path), target)
			}
			te.Mode = filemode.Symlink
			te.Hash = writeBlob(t, st, []byte(target))
		default:
			te.Mode = filemode.Regular
			if n.Mode&0o111 != 0 {
				te.Mode = filemode.Executable
			}
			te.Hash = writeBlob(t, st, n.Data)
		}
		entries = append(entries, te)
	}

	sort.Slice(entries, func(i, j int) bool { return gitName(entries[i]) < gitName(entries[j]) })

	obj := st.NewEncodedObject()
	require.NoError(t, (&object.Tree{Entries: entries}).Encode(obj))
	hash, err := st.SetEncodedObject(obj)
	require.NoError(t, err)
	return hash
}

func gitName(te object.TreeEntry) string {
	if te.Mode == filemode.Dir {
		return te.Name + "/"
	}
	return te.Name
}

func writeBlob(t *testing.T, st storer.EncodedObjectStorer, data []byte) plumbing.Hash {
	t.Helper()

	obj := st.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	hash, err := st.SetEncodedObject(obj)
	require.NoError(t, err)
	return hash
}

// relTo returns target relative to dir; both are absolute slash paths.
func relTo(dir, target string) string {
	rel := ""
	for dir != "/" && !(target == dir || len(target) > len(dir) && target[:len(dir)+1] == dir+"/") {
		rel += "../"
		dir = path.Dir(dir)
	}
	if dir == "/" {
		return rel + target[1:]
	}
	return rel + target[len(dir)+1:]
}

func newRepo(t *testing.T, fx fstest.Fixture) (*gogit.Repository, plumbing.Hash) {
	t.Helper()

	st := memory.NewStorage()
	repo, err := gogit.Init(st, nil)
	require.NoError(t, err)
	return repo, commitFixture(t, st, fx)
}

func TestConformance(t *testing.T) {
	fstest.TestBackend(t, func(t *testing.T, fx fstest.Fixture) core.Backend {
		repo, _ := newRepo(t, fx)
		fs, err := New(repo)
		require.NoError(t, err)
		return fs
	}, fstest.Config{Symlinks: true, Permissions: true})
}

func TestRelTo(t *testing.T) {
	assert.Equal(t, "../docs/readme.md", relTo("/links", "/docs/readme.md"))
	assert.Equal(t, "b.txt", relTo("/a", "/a/b.txt"))
	assert.Equal(t, "x", relTo("/", "/x"))
	assert.Equal(t, "../../c", relTo("/a/b", "/c"))
}

func TestNew_Revision(t *testing.T) {
	repo, first := newRepo(t, fstest.Fixture{Nodes: []fstest.Node{
		{Path: "/v1.txt", Data: []byte("one"), Mode: 0o644},
	}})
	st := repo.Storer
	second := commitFixture(t, st, fstest.Fixture{Nodes: []fstest.Node{
		{Path: "/v2.txt", Data: []byte("two"), Mode: 0o644},
	}}, first)

	head, err := New(repo)
	require.NoError(t, err)
	assert.Equal(t, second.String(), head.Commit())
	_, err = head.Stat(context.Background(), "/v2.txt")
	require.NoError(t, err)
	_, err = head.Stat(context.Background(), "/v1.txt")
	assert.ErrorIs(t, err, core.ErrNotExist)

	old, err := New(repo, WithRevision(first.String()))
	require.NoError(t, err)
	assert.Equal(t, first.String(), old.Commit())
	_, err = old.Stat(context.Background(), "/v1.txt")
	require.NoError(t, err)
}

func TestNew_UnknownRevision(t *testing.T) {
	repo, _ := newRepo(t, fstest.StandardFixture())

	_, err := New(repo, WithRevision("refs/heads/nope"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestStat_Metadata(t *testing.T) {
	repo, _ := newRepo(t, fstest.StandardFixture())
	fs, err := New(repo)
	require.NoError(t, err)

	for _, p := range []string{"/", "/docs", "/docs/readme.md", "/links/latest"} {
		e, err := fs.Stat(context.Background(), p)
		require.NoError(t, err, p)

		assert.True(t, e.LastChangeTime().Equal(commitTime), p)
		assert.True(t, e.LastAccessTime().Equal(commitTime), p)
		assert.True(t, e.CreationTime().Equal(commitTime), p)

		_, ok := e.User()
		assert.False(t, ok, p)
		_, ok = e.Group()
		assert.False(t, ok, p)
	}

	dir, err := fs.Stat(context.Background(), "/docs")
	require.NoError(t, err)
	pex, ok := dir.UnixPex()
	require.True(t, ok)
	assert.Equal(t, "rwxr-xr-x", pex.String())

	file, err := fs.Stat(context.Background(), "/docs/readme.md")
	require.NoError(t, err)
	pex, _ = file.UnixPex()
	assert.Equal(t, "rw-r--r--", pex.String())

	exe, err := fs.Stat(context.Background(), "/docs/run.sh")
	require.NoError(t, err)
	pex, _ = exe.UnixPex()
	assert.Equal(t, "rwxr-xr-x", pex.String())
}

func TestStat_SymlinkOutsideTree(t *testing.T) {
	repo, _ := newRepo(t, fstest.Fixture{Nodes: []fstest.Node{
		{Path: "/a", Dir: true},
		{Path: "/a/up", Target: "../../etc/passwd"},
		{Path: "/a/same", Target: "../a/up"},
	}})
	fs, err := New(repo)
	require.NoError(t, err)

	up, err := fs.Stat(context.Background(), "/a/up")
	require.NoError(t, err)
	assert.False(t, up.IsSymlink())
	assert.True(t, up.IsFile())
	assert.Equal(t, uint64(len("../../etc/passwd")), up.Size())

	same, err := fs.Stat(context.Background(), "/a/same")
	require.NoError(t, err)
	require.True(t, same.IsSymlink())
	target, err := same.Realfile()
	require.NoError(t, err)
	assert.Equal(t, "/a/up", target.AbsPath())
}

func TestStat_SymlinkLoop(t *testing.T) {
	repo, _ := newRepo(t, fstest.Fixture{Nodes: []fstest.Node{
		{Path: "/a", Target: "b"},
		{Path: "/b", Target: "a"},
	}})
	fs, err := New(repo)
	require.NoError(t, err)

	_, err = fs.Stat(context.Background(), "/a")
	require.Error(t, err)
	assert.ErrorIs(t, err, entry.ErrSymlinkCycle)
	assert.Equal(t, errors.CodeSymlinkLoop, errors.GetCode(err))

	_, err = core.Resolve(context.Background(), fs, "/b")
	assert.ErrorIs(t, err, entry.ErrSymlinkCycle)
}

func TestStat_LongChain(t *testing.T) {
	nodes := []fstest.Node{{Path: "/target.txt", Data: []byte("data"), Mode: 0o644}}
	for i := 0; i <= entry.MaxSymlinkHops; i++ {
		next := fmt.Sprintf("l%d", i+1)
		if i == entry.MaxSymlinkHops {
			next = "target.txt"
		}
		nodes = append(nodes, fstest.Node{Path: fmt.Sprintf("/l%d", i), Target: next})
	}
	repo, _ := newRepo(t, fstest.Fixture{Nodes: nodes})
	fs, err := New(repo)
	require.NoError(t, err)

	// /l0 needs one hop more than allowed, /l1 fits exactly.
	_, err = fs.Stat(context.Background(), "/l0")
	assert.ErrorIs(t, err, entry.ErrSymlinkDepth)

	e, err := fs.Stat(context.Background(), "/l1")
	require.NoError(t, err)
	assert.Equal(t, entry.MaxSymlinkHops, e.ChainLen())
	assert.Equal(t, uint64(4), e.Size())
}

func TestStat_ThroughLinkedDirectory(t *testing.T) {
	repo, _ := newRepo(t, fstest.Fixture{Nodes: []fstest.Node{
		{Path: "/real", Dir: true},
		{Path: "/real/sub", Dir: true},
		{Path: "/real/sub/a.txt", Data: []byte("abc"), Mode: 0o644},
		{Path: "/alias", Target: "real"},
		{Path: "/self", Target: "self/x"},
	}})
	fs, err := New(repo)
	require.NoError(t, err)
	ctx := context.Background()

	e, err := fs.Stat(ctx, "/alias/sub/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "/real/sub/a.txt", e.AbsPath())
	assert.Equal(t, uint64(3), e.Size())

	listed, err := fs.List(ctx, "/alias/sub")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "/real/sub/a.txt", listed[0].AbsPath())

	_, err = fs.Stat(ctx, "/alias/missing.txt")
	assert.ErrorIs(t, err, core.ErrNotExist)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	// A link into itself never terminates.
	_, err = fs.Stat(ctx, "/self")
	assert.True(t, core.IsSymlinkLoop(err), "got %v", err)
}

func TestList_Submodule(t *testing.T) {
	st := memory.NewStorage()
	repo, err := gogit.Init(st, nil)
	require.NoError(t, err)

	tree := &object.Tree{Entries: []object.TreeEntry{
		{Name: "vendor", Mode: filemode.Submodule, Hash: plumbing.NewHash("0123456789012345678901234567890123456789")},
	}}
	obj := st.NewEncodedObject()
	require.NoError(t, tree.Encode(obj))
	treeHash, err := st.SetEncodedObject(obj)
	require.NoError(t, err)

	sig := object.Signature{Name: "Test User", Email: "test@example.com", When: commitTime}
	commit := &object.Commit{Author: sig, Committer: sig, Message: "submodule", TreeHash: treeHash}
	obj = st.NewEncodedObject()
	require.NoError(t, commit.Encode(obj))
	hash, err := st.SetEncodedObject(obj)
	require.NoError(t, err)
	require.NoError(t, st.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("master"), hash)))

	fs, err := New(repo)
	require.NoError(t, err)

	e, err := fs.Stat(context.Background(), "/vendor")
	require.NoError(t, err)
	assert.True(t, e.IsDir())

	entries, err := fs.List(context.Background(), "/vendor")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_Bare(t *testing.T) {
	mfs := memfs.New()
	dot, err := mfs.Chroot("/repo.git")
	require.NoError(t, err)

	st := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())
	_, err = gogit.Init(st, nil)
	require.NoError(t, err)
	hash := commitFixture(t, st, fstest.StandardFixture())

	fs, err := Open("/repo.git", WithFilesystem(mfs))
	require.NoError(t, err)
	assert.Equal(t, hash.String(), fs.Commit())
	assert.Equal(t, core.BackendTypeGit, fs.Type())

	e, err := fs.Stat(context.Background(), "/docs/readme.md")
	require.NoError(t, err)
	assert.Equal(t, uint64(len("hello remotefs\n")), e.Size())
}

func TestOpen_WithDotGit(t *testing.T) {
	mfs := memfs.New()
	dot, err := mfs.Chroot("/work/.git")
	require.NoError(t, err)

	st := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())
	_, err = gogit.Init(st, nil)
	require.NoError(t, err)
	commitFixture(t, st, fstest.StandardFixture())

	fs, err := Open("/work", WithFilesystem(mfs))
	require.NoError(t, err)

	entries, err := fs.List(context.Background(), "/")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{".config", "Makefile", "docs", "links"}, names)
}

func TestOpen_NotRepository(t *testing.T) {
	_, err := Open("/empty", WithFilesystem(memfs.New()))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestPermissions(t *testing.T) {
	tests := []struct {
		mode filemode.FileMode
		want string
	}{
		{filemode.Regular, "rw-r--r--"},
		{filemode.Executable, "rwxr-xr-x"},
		{filemode.Dir, "rwxr-xr-x"},
		{filemode.Symlink, "rwxrwxrwx"},
		{filemode.Submodule, "rwxr-xr-x"},
		{filemode.Empty, "rw-r--r--"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, permissions(tt.mode).String())
		})
	}
}
