package fstest

import (
	"context"
	"sort"
	"testing"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
	"github.com/jmgilman/go/remotefs/fs/core"
)

func statTests(b core.Backend, fx Fixture, cfg Config) map[string]func(*testing.T) {
	return map[string]func(*testing.T){
		"Files": func(t *testing.T) {
			for _, n := range fx.Files() {
				e := mustStat(t, b, n.Path)
				if !e.IsFile() {
					t.Errorf("Stat(%s): kind %v, want file", n.Path, e.Kind())
					continue
				}
				checkIdentity(t, e, n.Path)
				if got := e.Size(); got != uint64(len(n.Data)) {
					t.Errorf("Stat(%s): size %d, want %d", n.Path, got, len(n.Data))
				}
				if e.IsSymlink() {
					t.Errorf("Stat(%s): IsSymlink() = true, want false", n.Path)
				}
			}
		},
		"Directories": func(t *testing.T) {
			for _, n := range fx.Dirs() {
				e := mustStat(t, b, n.Path)
				if !e.IsDir() {
					t.Errorf("Stat(%s): kind %v, want directory", n.Path, e.Kind())
					continue
				}
				checkIdentity(t, e, n.Path)
				if got := e.Size(); got != entry.DirectorySize {
					t.Errorf("Stat(%s): size %d, want %d", n.Path, got, entry.DirectorySize)
				}
				if typ, ok := e.FileType(); ok {
					t.Errorf("Stat(%s): FileType() = %q, want none", n.Path, typ)
				}
			}
		},
		"Root": func(t *testing.T) {
			e := mustStat(t, b, "/")
			if !e.IsDir() {
				t.Errorf("Stat(/): kind %v, want directory", e.Kind())
			}
			if e.AbsPath() != "/" {
				t.Errorf("Stat(/): AbsPath() = %q, want %q", e.AbsPath(), "/")
			}
		},
		"FileType": func(t *testing.T) {
			tests := map[string]string{
				"/docs/readme.md":      "md",
				"/docs/notes/todo.txt": "txt",
				"/.config/app.yaml":    "yaml",
				"/Makefile":            "",
				"/docs/.hidden":        "",
			}
			for p, want := range tests {
				e := mustStat(t, b, p)
				got, ok := e.FileType()
				if want == "" && ok {
					t.Errorf("Stat(%s): FileType() = %q, want none", p, got)
				}
				if want != "" && (!ok || got != want) {
					t.Errorf("Stat(%s): FileType() = %q, %v, want %q", p, got, ok, want)
				}
			}
		},
		"Hidden": func(t *testing.T) {
			tests := map[string]bool{
				"/.config":          true,
				"/.config/app.yaml": false,
				"/docs/.hidden":     true,
				"/docs":             false,
			}
			for p, want := range tests {
				if got := mustStat(t, b, p).IsHidden(); got != want {
					t.Errorf("Stat(%s): IsHidden() = %v, want %v", p, got, want)
				}
			}
		},
		"NotFound": func(t *testing.T) {
			for _, p := range []string{"/missing", "/docs/missing.txt", "/nope/deeper"} {
				_, err := b.Stat(context.Background(), p)
				if err == nil {
					t.Errorf("Stat(%s): got nil error, want not found", p)
					continue
				}
				if !errors.Is(err, core.ErrNotExist) {
					t.Errorf("Stat(%s): error %v does not match core.ErrNotExist", p, err)
				}
				if code := errors.GetCode(err); code != errors.CodeNotFound {
					t.Errorf("Stat(%s): code %s, want %s", p, code, errors.CodeNotFound)
				}
			}
		},
		"CleanPaths": func(t *testing.T) {
			for _, p := range []string{"docs/readme.md", "/docs/./notes/../readme.md", "/docs//readme.md"} {
				e := mustStat(t, b, p)
				if e.AbsPath() != "/docs/readme.md" {
					t.Errorf("Stat(%s): AbsPath() = %q, want /docs/readme.md", p, e.AbsPath())
				}
			}
		},
		"Permissions": func(t *testing.T) {
			e := mustStat(t, b, "/docs/readme.md")
			pex, ok := e.UnixPex()
			if ok != cfg.Permissions {
				t.Fatalf("Stat(/docs/readme.md): UnixPex() present = %v, want %v", ok, cfg.Permissions)
			}
			if !ok {
				return
			}
			if !pex.Owner.CanRead() || !pex.Owner.CanWrite() || pex.Owner.CanExecute() {
				t.Errorf("Stat(/docs/readme.md): owner permissions %s, want rw-", pex.Owner)
			}

			run := mustStat(t, b, "/docs/run.sh")
			if pex, _ := run.UnixPex(); !pex.Owner.CanExecute() {
				t.Errorf("Stat(/docs/run.sh): owner permissions %s, want executable", pex.Owner)
			}
		},
		"Owner": func(t *testing.T) {
			e := mustStat(t, b, "/docs/readme.md")
			if _, ok := e.User(); ok != cfg.Owner {
				t.Errorf("Stat(/docs/readme.md): User() present = %v, want %v", ok, cfg.Owner)
			}
			if _, ok := e.Group(); ok != cfg.Owner {
				t.Errorf("Stat(/docs/readme.md): Group() present = %v, want %v", ok, cfg.Owner)
			}
		},
		"Canceled": func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if _, err := b.Stat(ctx, "/docs/readme.md"); err == nil {
				t.Error("Stat with canceled context: got nil error")
			}
		},
	}
}

func mustStat(t *testing.T, b core.Backend, p string) entry.Entry {
	t.Helper()

	e, err := b.Stat(context.Background(), p)
	if err != nil {
		t.Fatalf("Stat(%s): %v", p, err)
	}
	return e
}

func checkIdentity(t *testing.T, e entry.Entry, p string) {
	t.Helper()

	if e.AbsPath() != p {
		t.Errorf("Stat(%s): AbsPath() = %q", p, e.AbsPath())
	}
	if want := core.Name(p); e.Name() != want {
		t.Errorf("Stat(%s): Name() = %q, want %q", p, e.Name(), want)
	}
}

func sortedKeys(m map[string]func(*testing.T)) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
