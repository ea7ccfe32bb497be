package core

import (
	"context"
	"io/fs"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
)

var (
	// ErrNotExist is returned when an entry does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrPermission is returned when the backend denies access.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrNotDir is returned when List is called on something that is not a
	// directory.
	ErrNotDir = errors.New(errors.CodeInvalidInput, "not a directory")
)

// PathError wraps err in an *fs.PathError for op and p and classifies it.
// Returns nil if err is nil.
//
// Classification keeps the code of an err that already carries one, and
// otherwise maps fs.ErrNotExist to CodeNotFound, fs.ErrPermission to
// CodeForbidden, context deadlines to CodeTimeout, and anything else,
// including cancellation, to CodeInternal.
func PathError(op, p string, err error) error {
	if err == nil {
		return nil
	}

	return errors.WrapWithContext(&fs.PathError{Op: op, Path: p, Err: err}, classify(err), op, map[string]interface{}{
		"path": p,
	})
}

func classify(err error) errors.ErrorCode {
	var e errors.Error
	switch {
	case errors.As(err, &e):
		return e.Code()
	case errors.Is(err, fs.ErrNotExist):
		return errors.CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		return errors.CodeForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return errors.CodeTimeout
	default:
		return errors.CodeInternal
	}
}

// SymlinkLoop returns the error a producer reports when following the link
// at p would revisit target (cycle) or take more than entry.MaxSymlinkHops
// hops. It wraps entry.ErrSymlinkCycle or entry.ErrSymlinkDepth and carries
// CodeSymlinkLoop.
func SymlinkLoop(p, target string, hops int, cycle bool) error {
	cause := entry.ErrSymlinkDepth
	if cycle {
		cause = entry.ErrSymlinkCycle
	}

	err := errors.Wrapf(cause, errors.CodeSymlinkLoop, "follow symlink %s after %d hops", p, hops)
	return errors.WithContext(err, "target", target)
}

// IsSymlinkLoop reports whether err came from SymlinkLoop or from
// entry.Realfile giving up on a chain.
func IsSymlinkLoop(err error) bool {
	return err != nil && errors.GetCode(err) == errors.CodeSymlinkLoop
}
