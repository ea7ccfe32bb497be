package core

import (
	"context"

	"github.com/jmgilman/go/remotefs/entry"
	"golang.org/x/sync/errgroup"
)

// DefaultStatConcurrency is the number of Stat calls StatAll runs at once when
// the caller passes a non-positive limit.
const DefaultStatConcurrency = 8

// StatAll stats every path with at most concurrency calls in flight. The
// result is in the order of paths. The first failure cancels the remaining
// calls and is returned.
func StatAll(ctx context.Context, s Stater, paths []string, concurrency int) ([]entry.Entry, error) {
	if concurrency <= 0 {
		concurrency = DefaultStatConcurrency
	}

	out := make([]entry.Entry, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			e, err := s.Stat(gctx, p)
			if err != nil {
				return err
			}
			out[i] = e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve stats p and follows its symlink chain to the terminal entry.
func Resolve(ctx context.Context, s Stater, p string) (entry.Entry, error) {
	e, err := s.Stat(ctx, p)
	if err != nil {
		return entry.Entry{}, err
	}
	return e.Realfile()
}
