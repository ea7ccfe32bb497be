package gitfs

import (
	"log/slog"

	"github.com/go-git/go-billy/v5"
)

// Option configures an FS.
type Option func(*options)

type options struct {
	revision string
	fs       billy.Filesystem
	logger   *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{revision: "HEAD"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRevision selects the commit to expose. Any revision go-git can resolve
// is accepted, such as a branch, tag, or hash. Defaults to HEAD.
func WithRevision(rev string) Option {
	return func(o *options) {
		o.revision = rev
	}
}

// WithFilesystem makes Open read the repository from fs instead of the local
// disk. Useful for testing with memfs.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithLogger sets the logger used for operation and symlink diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
