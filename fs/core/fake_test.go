package core_test

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/fs/core"
)

// mapBackend is an in-memory Backend keyed by absolute path.
type mapBackend struct {
	mu      sync.Mutex
	entries map[string]entry.Entry
	listErr map[string]error

	inflight atomic.Int32
	peak     atomic.Int32
}

func newMapBackend(entries ...entry.Entry) *mapBackend {
	b := &mapBackend{
		entries: map[string]entry.Entry{},
		listErr: map[string]error{},
	}
	for _, e := range entries {
		b.entries[e.AbsPath()] = e
	}
	return b
}

func dir(p string) entry.Entry {
	return entry.NewDirectory(entry.Directory{Metadata: entry.Metadata{Name: core.Name(p), AbsPath: p}})
}

func file(p string) entry.Entry {
	return entry.NewFile(entry.File{Metadata: entry.Metadata{Name: core.Name(p), AbsPath: p}, Size: 1})
}

func link(p string, target entry.Entry) entry.Entry {
	m := entry.Metadata{Name: core.Name(p), AbsPath: p, Symlink: &target}
	if target.IsDir() {
		return entry.NewDirectory(entry.Directory{Metadata: m})
	}
	return entry.NewFile(entry.File{Metadata: m})
}

func (b *mapBackend) Stat(ctx context.Context, p string) (entry.Entry, error) {
	n := b.inflight.Add(1)
	defer b.inflight.Add(-1)
	for {
		peak := b.peak.Load()
		if n <= peak || b.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return entry.Entry{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[core.Clean(p)]
	if !ok {
		return entry.Entry{}, core.PathError("stat", p, fs.ErrNotExist)
	}
	return e, nil
}

func (b *mapBackend) List(_ context.Context, p string) ([]entry.Entry, error) {
	p = core.Clean(p)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err, ok := b.listErr[p]; ok {
		return nil, core.PathError("list", p, err)
	}

	var out []entry.Entry
	for k, e := range b.entries {
		if k != p && path.Dir(k) == p {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (b *mapBackend) Type() core.BackendType { return core.BackendTypeMemory }

var _ core.Backend = (*mapBackend)(nil)
