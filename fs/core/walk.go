package core

import (
	"context"
	"io/fs"
	"path"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
)

// WalkFunc is called by Walk for every visited entry. When err is non-nil,
// e may be the zero Entry (root could not be stat'ed) or the directory whose
// listing failed.
//
// Returning fs.SkipDir from a directory skips its contents; from a file it
// skips the remaining entries of the parent directory. Returning fs.SkipAll
// stops the walk. Walk itself then returns nil.
type WalkFunc func(p string, e entry.Entry, err error) error

// Walk visits root and everything below it in pre-order, listing each
// directory in name order. Directories that are symlinks are reported but not
// descended into, which also keeps the walk finite on looping links.
//
// Walk checks ctx between entries and returns ctx.Err() once it is done.
func Walk(ctx context.Context, b Backend, root string, fn WalkFunc) error {
	root = Clean(root)

	e, err := b.Stat(ctx, root)
	if err != nil {
		err = fn(root, entry.Entry{}, err)
	} else {
		err = walk(ctx, b, root, e, fn)
	}

	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func walk(ctx context.Context, b Backend, p string, e entry.Entry, fn WalkFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := fn(p, e, nil); err != nil || !e.IsDir() || e.IsSymlink() {
		if errors.Is(err, fs.SkipDir) && e.IsDir() {
			err = nil
		}
		return err
	}

	children, err := b.List(ctx, p)
	if err != nil {
		if err = fn(p, e, err); err != nil {
			if errors.Is(err, fs.SkipDir) {
				err = nil
			}
			return err
		}
	}

	for _, child := range children {
		if err := walk(ctx, b, path.Join(p, child.Name()), child, fn); err != nil {
			if errors.Is(err, fs.SkipDir) {
				return nil
			}
			return err
		}
	}
	return nil
}
