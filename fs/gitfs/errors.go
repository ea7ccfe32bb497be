package gitfs

import (
	"fmt"
	"io/fs"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/jmgilman/go/remotefs/errors"
)

// classifyError makes go-git lookup failures match fs.ErrNotExist so
// core.PathError reports them as CodeNotFound. Other errors pass through.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, object.ErrEntryNotFound),
		errors.Is(err, object.ErrDirectoryNotFound),
		errors.Is(err, object.ErrFileNotFound),
		errors.Is(err, plumbing.ErrObjectNotFound):
		return fmt.Errorf("%w: %w", fs.ErrNotExist, err)
	default:
		return err
	}
}

// revisionError wraps a failure to resolve rev to a commit.
func revisionError(err error, rev string) error {
	code := errors.CodeInternal
	if errors.Is(err, plumbing.ErrReferenceNotFound) || errors.Is(err, plumbing.ErrObjectNotFound) {
		code = errors.CodeNotFound
	}
	return errors.WrapWithContext(err, code, "resolve revision", map[string]interface{}{
		"revision": rev,
	})
}
