package fstest

import (
	"context"
	"path"
	"reflect"
	"sort"
	"testing"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
	"github.com/jmgilman/go/remotefs/fs/core"
)

func listTests(b core.Backend, fx Fixture, cfg Config) map[string]func(*testing.T) {
	return map[string]func(*testing.T){
		"Children": func(t *testing.T) {
			for _, d := range append([]Node{{Path: "/", Dir: true}}, fx.Dirs()...) {
				entries, err := b.List(context.Background(), d.Path)
				if err != nil {
					t.Errorf("List(%s): %v", d.Path, err)
					continue
				}

				got := names(entries)
				if want := childNames(fx, d.Path); !reflect.DeepEqual(got, want) {
					t.Errorf("List(%s): got %v, want %v", d.Path, got, want)
				}
				for _, e := range entries {
					if want := path.Join(d.Path, e.Name()); e.AbsPath() != want {
						t.Errorf("List(%s): child AbsPath() = %q, want %q", d.Path, e.AbsPath(), want)
					}
				}
			}
		},
		"Sorted": func(t *testing.T) {
			entries, err := b.List(context.Background(), "/docs")
			if err != nil {
				t.Fatalf("List(/docs): %v", err)
			}
			got := names(entries)
			if !sort.StringsAreSorted(got) {
				t.Errorf("List(/docs): names not sorted: %v", got)
			}
		},
		"MatchesStat": func(t *testing.T) {
			entries, err := b.List(context.Background(), "/docs")
			if err != nil {
				t.Fatalf("List(/docs): %v", err)
			}
			for _, e := range entries {
				s := mustStat(t, b, e.AbsPath())
				if s.Kind() != e.Kind() || s.Size() != e.Size() || s.IsSymlink() != e.IsSymlink() {
					t.Errorf("List(/docs): %s differs from Stat: %v/%d vs %v/%d", e.AbsPath(), e.Kind(), e.Size(), s.Kind(), s.Size())
				}
				if _, ok := e.UnixPex(); ok != cfg.Permissions {
					t.Errorf("List(/docs): %s UnixPex() present = %v, want %v", e.AbsPath(), ok, cfg.Permissions)
				}
			}
		},
		"NotFound": func(t *testing.T) {
			_, err := b.List(context.Background(), "/missing")
			if !errors.Is(err, core.ErrNotExist) {
				t.Errorf("List(/missing): got %v, want core.ErrNotExist", err)
			}
		},
		"NotDir": func(t *testing.T) {
			_, err := b.List(context.Background(), "/docs/readme.md")
			if err == nil {
				t.Fatal("List(/docs/readme.md): got nil error")
			}
			if !errors.Is(err, core.ErrNotDir) {
				t.Errorf("List(/docs/readme.md): got %v, want core.ErrNotDir", err)
			}
		},
	}
}

func names(entries []entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func childNames(fx Fixture, dir string) []string {
	out := []string{}
	for _, n := range fx.Nodes {
		if path.Dir(n.Path) == dir && n.Path != dir {
			out = append(out, path.Base(n.Path))
		}
	}
	sort.Strings(out)
	return out
}
