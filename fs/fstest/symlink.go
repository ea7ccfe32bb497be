package fstest

import (
	"context"
	"testing"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
	"github.com/jmgilman/go/remotefs/fs/core"
)

// loopFixture holds a two-link cycle, a link into it, and one plain file.
var loopFixture = Fixture{Nodes: []Node{
	{Path: "/loop", Dir: true, Mode: 0o755},
	{Path: "/loop/a", Target: "b"},
	{Path: "/loop/b", Target: "a"},
	{Path: "/loop/c", Target: "a"},
	{Path: "/loop/f.txt", Data: []byte("f"), Mode: 0o644},
}}

func symlinkTests(b core.Backend, build BuildFunc) map[string]func(*testing.T) {
	return map[string]func(*testing.T){
		"DirectoryChain": func(t *testing.T) {
			e := mustStat(t, b, "/links/latest")
			if !e.IsSymlink() {
				t.Fatal("Stat(/links/latest): IsSymlink() = false, want true")
			}
			if !e.IsDir() {
				t.Errorf("Stat(/links/latest): kind %v, want directory", e.Kind())
			}
			if n := e.ChainLen(); n != 2 {
				t.Errorf("Stat(/links/latest): ChainLen() = %d, want 2", n)
			}

			next, ok := e.Symlink()
			if !ok || next.AbsPath() != "/links/current" {
				t.Errorf("Stat(/links/latest): Symlink() = %s, %v, want /links/current", next.AbsPath(), ok)
			}

			target, err := e.Realfile()
			if err != nil {
				t.Fatalf("Realfile(/links/latest): %v", err)
			}
			if target.AbsPath() != "/docs" || !target.IsDir() || target.IsSymlink() {
				t.Errorf("Realfile(/links/latest): got %s, want directory /docs", target)
			}
		},
		"File": func(t *testing.T) {
			e := mustStat(t, b, "/links/readme")
			if !e.IsSymlink() || !e.IsFile() {
				t.Fatalf("Stat(/links/readme): got %s symlink=%v, want file symlink", e, e.IsSymlink())
			}

			target, err := e.Realfile()
			if err != nil {
				t.Fatalf("Realfile(/links/readme): %v", err)
			}
			if target.AbsPath() != "/docs/readme.md" {
				t.Errorf("Realfile(/links/readme): got %s, want /docs/readme.md", target.AbsPath())
			}
			if e.Size() != target.Size() {
				t.Errorf("Stat(/links/readme): size %d, want target size %d", e.Size(), target.Size())
			}
		},
		"Broken": func(t *testing.T) {
			e := mustStat(t, b, "/links/dangling")
			if e.IsSymlink() {
				t.Error("Stat(/links/dangling): IsSymlink() = true, want false for a broken link")
			}
			if !e.IsFile() {
				t.Errorf("Stat(/links/dangling): kind %v, want file", e.Kind())
			}
			target, err := e.Realfile()
			if err != nil || target.AbsPath() != "/links/dangling" {
				t.Errorf("Realfile(/links/dangling): got %s, %v, want itself", target.AbsPath(), err)
			}
		},
		"Loop": func(t *testing.T) {
			lb := build(t, loopFixture)
			ctx := context.Background()

			for _, p := range []string{"/loop/a", "/loop/b", "/loop/c"} {
				_, err := lb.Stat(ctx, p)
				if !errors.Is(err, entry.ErrSymlinkCycle) {
					t.Errorf("Stat(%s): got %v, want ErrSymlinkCycle", p, err)
				}
				if !core.IsSymlinkLoop(err) {
					t.Errorf("Stat(%s): IsSymlinkLoop(%v) = false", p, err)
				}
			}

			entries, err := lb.List(ctx, "/loop")
			if err != nil {
				t.Fatalf("List(/loop): %v", err)
			}
			if len(entries) != 4 {
				t.Fatalf("List(/loop): got %d entries, want 4", len(entries))
			}
			for _, e := range entries[:3] {
				if e.IsSymlink() {
					t.Errorf("List(/loop): %s carries a link target, want none", e.AbsPath())
				}
				target, err := e.Realfile()
				if err != nil || target.AbsPath() != e.AbsPath() {
					t.Errorf("Realfile(%s): got %s, %v, want itself", e.AbsPath(), target.AbsPath(), err)
				}
			}
		},
		"NotDescended": func(t *testing.T) {
			err := core.Walk(context.Background(), b, "/links", func(p string, _ entry.Entry, err error) error {
				if err != nil {
					return err
				}
				if p == "/links/current/readme.md" || p == "/links/latest/readme.md" {
					t.Errorf("Walk(/links): descended into symlink at %s", p)
				}
				return nil
			})
			if err != nil {
				t.Fatalf("Walk(/links): %v", err)
			}
		},
	}
}
