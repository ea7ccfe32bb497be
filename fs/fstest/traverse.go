package fstest

import (
	"context"
	"io/fs"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/fs/core"
)

func traverseTests(b core.Backend, fx Fixture) map[string]func(*testing.T) {
	return map[string]func(*testing.T){
		"Walk": func(t *testing.T) {
			var got []string
			err := core.Walk(context.Background(), b, "/", func(p string, _ entry.Entry, err error) error {
				if err != nil {
					return err
				}
				got = append(got, p)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk(/): %v", err)
			}

			want := append([]string{"/"}, fx.Paths()...)
			sort.Strings(got)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Walk(/): got %v, want %v", got, want)
			}
		},
		"SkipDir": func(t *testing.T) {
			var got []string
			err := core.Walk(context.Background(), b, "/", func(p string, e entry.Entry, err error) error {
				if err != nil {
					return err
				}
				got = append(got, p)
				if p == "/docs" {
					return fs.SkipDir
				}
				return nil
			})
			if err != nil {
				t.Fatalf("Walk(/): %v", err)
			}
			for _, p := range got {
				if strings.HasPrefix(p, "/docs/") {
					t.Errorf("Walk(/): visited %s below a skipped directory", p)
				}
			}
		},
		"StatAll": func(t *testing.T) {
			paths := []string{"/docs/readme.md", "/docs", "/Makefile", "/docs/notes/todo.txt"}
			entries, err := core.StatAll(context.Background(), b, paths, 2)
			if err != nil {
				t.Fatalf("StatAll: %v", err)
			}
			for i, e := range entries {
				if e.AbsPath() != paths[i] {
					t.Errorf("StatAll: entry %d is %s, want %s", i, e.AbsPath(), paths[i])
				}
			}
		},
	}
}
