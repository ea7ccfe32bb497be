package entry

import (
	"github.com/jmgilman/go/remotefs/errors"
)

// MaxSymlinkHops bounds the number of links Realfile follows. It matches the
// Linux MAXSYMLINKS limit.
const MaxSymlinkHops = 40

var (
	// ErrSymlinkDepth is in the chain of errors returned for chains longer
	// than MaxSymlinkHops.
	ErrSymlinkDepth = errors.New(errors.CodeSymlinkLoop, "too many levels of symbolic links")

	// ErrSymlinkCycle is in the chain of errors returned for chains that
	// revisit an absolute path.
	ErrSymlinkCycle = errors.New(errors.CodeSymlinkLoop, "symbolic link cycle")

	// ErrInvalidTarget is in the chain of errors returned when a link points
	// at the zero Entry.
	ErrInvalidTarget = errors.New(errors.CodeInvalidInput, "symbolic link target is neither a directory nor a file")
)

// Realfile follows the symlink chain starting at e and returns a copy of the
// entry at its end. An entry that is not a link resolves to a copy of itself.
// Directories and files are followed the same way.
//
// The walk fails with CodeSymlinkLoop when an absolute path repeats or when
// more than MaxSymlinkHops links are followed.
func (e Entry) Realfile() (Entry, error) {
	visited := map[string]struct{}{e.AbsPath(): {}}
	cur := &e

	for hops := 0; ; hops++ {
		next := cur.meta().Symlink
		if next == nil {
			return cur.Clone(), nil
		}
		if hops == MaxSymlinkHops {
			return Entry{}, resolveError(ErrSymlinkDepth, e, cur, hops)
		}
		if next.Kind() == KindInvalid {
			return Entry{}, resolveError(ErrInvalidTarget, e, cur, hops)
		}
		if _, ok := visited[next.AbsPath()]; ok {
			return Entry{}, resolveError(ErrSymlinkCycle, e, next, hops+1)
		}
		visited[next.AbsPath()] = struct{}{}
		cur = next
	}
}

// MustRealfile is like Realfile but panics if the chain cannot be resolved.
func (e Entry) MustRealfile() Entry {
	target, err := e.Realfile()
	if err != nil {
		panic(err)
	}
	return target
}

// ChainLen returns the number of links between e and the end of its chain,
// stopping at MaxSymlinkHops+1 for chains that never end.
func (e Entry) ChainLen() int {
	n := 0
	for cur := e.meta().Symlink; cur != nil && n <= MaxSymlinkHops; cur = cur.meta().Symlink {
		n++
	}
	return n
}

func resolveError(cause errors.Error, start Entry, at *Entry, hops int) error {
	return errors.WrapWithContext(cause, cause.Code(), "resolve symlink "+start.AbsPath(), map[string]interface{}{
		"path": at.AbsPath(),
		"hops": hops,
	})
}
