package validator

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/joseph-ayodele/ldg/internal/extract"
)

type pageKey struct {
	path string
	page int
}

type cachedPage struct {
	once sync.Once
	text string
	err  error
}

// extractCall counts extractor invocations and, when enabled, memoizes
// results per (file, page) for the duration of one run.
type extractCall struct {
	extractor extract.TextExtractor
	calls     atomic.Int64

	mu    sync.Mutex
	cache map[pageKey]*cachedPage // nil when caching is off
}

func newExtractCall(e extract.TextExtractor, cache bool) *extractCall {
	c := &extractCall{extractor: e}
	if cache {
		c.cache = make(map[pageKey]*cachedPage)
	}
	return c
}

func (c *extractCall) do(ctx context.Context, path string, page int) (string, error) {
	if c.cache == nil {
		c.calls.Add(1)
		return c.extractor.Extract(ctx, path, page)
	}

	k := pageKey{path: path, page: page}
	c.mu.Lock()
	entry, ok := c.cache[k]
	if !ok {
		entry = &cachedPage{}
		c.cache[k] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		c.calls.Add(1)
		entry.text, entry.err = c.extractor.Extract(ctx, path, page)
	})
	return entry.text, entry.err
}

func (c *extractCall) count() int { return int(c.calls.Load()) }
