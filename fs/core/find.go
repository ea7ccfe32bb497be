package core

import (
	"context"

	"github.com/gobwas/glob"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
)

// Find walks root and returns every entry below it whose name matches
// pattern, in walk order. The pattern is a glob over the entry name:
// "*.go", "readme.{md,txt}", "[a-c]?.log". Symlinked directories are matched
// but not searched.
func Find(ctx context.Context, b Backend, root, pattern string) ([]entry.Entry, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidInput, "compile pattern", map[string]interface{}{
			"pattern": pattern,
		})
	}

	root = Clean(root)
	var out []entry.Entry
	err = Walk(ctx, b, root, func(p string, e entry.Entry, err error) error {
		if err != nil {
			return err
		}
		if p != root && g.Match(e.Name()) {
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
