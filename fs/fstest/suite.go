// Package fstest provides a conformance suite for entry producers.
//
// A producer package calls TestBackend with a function that materializes a
// Fixture in its storage and returns a core.Backend over it. The suite then
// checks the entries the backend produces against the fixture.
//
// Example usage:
//
//	func TestConformance(t *testing.T) {
//	    fstest.TestBackend(t, func(t *testing.T, fx fstest.Fixture) core.Backend {
//	        return buildMyBackend(t, fx)
//	    }, fstest.POSIXConfig())
//	}
package fstest

import (
	"testing"

	"github.com/jmgilman/go/remotefs/fs/core"
)

// BuildFunc materializes fx and returns a backend rooted at its "/".
type BuildFunc func(t *testing.T, fx Fixture) core.Backend

// Config describes which optional behavior the backend has.
type Config struct {
	// Symlinks indicates the backend stores links. When false the suite
	// builds the fixture without them and skips the link checks.
	Symlinks bool

	// Permissions indicates entries carry permission bits.
	Permissions bool

	// Owner indicates entries carry user and group ids.
	Owner bool

	// SkipTests lists subtest names to skip, e.g. "List/NotDir".
	SkipTests []string
}

// POSIXConfig returns the configuration of a local Unix filesystem.
func POSIXConfig() Config {
	return Config{Symlinks: true, Permissions: true, Owner: true}
}

// ObjectStoreConfig returns the configuration of an object store without
// POSIX attributes.
func ObjectStoreConfig() Config {
	return Config{}
}

// TestBackend builds the standard fixture once and runs every check against
// the returned backend.
func TestBackend(t *testing.T, build BuildFunc, cfg Config) {
	t.Helper()

	fx := StandardFixture()
	if !cfg.Symlinks {
		fx = fx.WithoutSymlinks()
	}
	b := build(t, fx)
	if b == nil {
		t.Fatal("build returned a nil backend")
	}

	shouldSkip := func(name string) bool {
		for _, skip := range cfg.SkipTests {
			if skip == name {
				return true
			}
		}
		return false
	}

	run := func(group string, tests map[string]func(*testing.T)) {
		t.Run(group, func(t *testing.T) {
			for _, name := range sortedKeys(tests) {
				t.Run(name, func(t *testing.T) {
					if shouldSkip(group + "/" + name) {
						t.Skip("Skipped by backend configuration")
						return
					}
					tests[name](t)
				})
			}
		})
	}

	run("Stat", statTests(b, fx, cfg))
	run("List", listTests(b, fx, cfg))
	run("Traverse", traverseTests(b, fx))
	if cfg.Symlinks {
		run("Symlink", symlinkTests(b, build))
	}
}
