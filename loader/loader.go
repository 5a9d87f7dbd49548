// Package loader reads and writes the on-disk OpenAPI document, caching the
// parsed result between reads and handing out copies that never alias the
// cache.
package loader

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/whitesnakegang/ouroboros/internal/log"
	"github.com/whitesnakegang/ouroboros/oaserrors"
	"github.com/whitesnakegang/ouroboros/oasmodel"
	"go.yaml.in/yaml/v4"
)

// cacheEntry is an immutable snapshot of the cached document and the mtime
// it was loaded from, so Read can compare against it without a lock.
type cacheEntry struct {
	doc   *oasmodel.SpecDoc
	mtime time.Time
}

// Loader owns a single spec file's on-disk state and a cache of its parsed
// form. A read fast path loads the cache atomically and compares mtimes
// without acquiring mu; on a miss it takes mu, re-checks (another goroutine
// may have already reloaded), and reloads only if still stale. mu also
// serializes Write against itself and against reload.
type Loader struct {
	path string
	log  log.Logger

	mu    sync.Mutex
	cache atomic.Pointer[cacheEntry]
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the Logger used for warnings (e.g. the deep-copy
// last-resort fallback). Defaults to a no-op logger.
func WithLogger(l log.Logger) Option {
	return func(ld *Loader) { ld.log = l }
}

// New returns a Loader for the spec file at path.
func New(path string, opts ...Option) *Loader {
	ld := &Loader{path: path, log: log.NopLogger{}}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Read returns a deep copy of the cached SpecDoc, reloading from disk if the
// file's mtime has changed since the last load. Returns an
// *oaserrors.ParseError wrapping os.ErrNotExist-flavored causes as
// FileMissing when the file does not exist.
func (ld *Loader) Read() (*oasmodel.SpecDoc, error) {
	info, err := os.Stat(ld.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &oaserrors.ParseError{Path: ld.path, Message: "file missing", Cause: err}
		}
		return nil, &oaserrors.ParseError{Path: ld.path, Message: "stat failed", Cause: err}
	}
	mtime := info.ModTime()

	if entry := ld.cache.Load(); entry != nil && entry.mtime.Equal(mtime) {
		return ld.handout(entry.doc)
	}

	ld.mu.Lock()
	entry := ld.cache.Load()
	if entry == nil || !entry.mtime.Equal(mtime) {
		doc, loadErr := ld.load()
		if loadErr != nil {
			ld.mu.Unlock()
			return nil, loadErr
		}
		entry = &cacheEntry{doc: doc, mtime: mtime}
		ld.cache.Store(entry)
	}
	ld.mu.Unlock()

	return ld.handout(entry.doc)
}

// ReadOrCreate behaves like Read, but returns a fresh skeleton document
// (never written to disk by this call) when the file does not exist.
func (ld *Loader) ReadOrCreate(servers []oasmodel.Server) (*oasmodel.SpecDoc, error) {
	doc, err := ld.Read()
	if err == nil {
		return doc, nil
	}
	var parseErr *oaserrors.ParseError
	if errors.As(err, &parseErr) && parseErr.Message == "file missing" {
		return oasmodel.NewSkeleton(servers), nil
	}
	return nil, err
}

// Write serializes doc under the write lock, creating parent directories if
// needed, then refreshes the cache with the new mtime so a subsequent Read
// is a cache hit.
func (ld *Loader) Write(doc *oasmodel.SpecDoc) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return &oaserrors.ParseError{Path: ld.path, Message: "serialize failed", Cause: err}
	}

	if dir := filepath.Dir(ld.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &oaserrors.ParseError{Path: ld.path, Message: "create parent directory failed", Cause: err}
		}
	}
	if err := os.WriteFile(ld.path, data, 0o644); err != nil {
		return &oaserrors.ParseError{Path: ld.path, Message: "write failed", Cause: err}
	}

	info, err := os.Stat(ld.path)
	if err != nil {
		ld.cache.Store(nil)
		return nil
	}
	cp, err := oasmodel.Clone(doc)
	if err != nil {
		ld.log.Warn("loader: deep copy of written document failed, caching live reference", "path", ld.path, "error", err)
		cp = doc
	}
	ld.cache.Store(&cacheEntry{doc: cp, mtime: info.ModTime()})
	return nil
}

// Invalidate forces the next Read to reload from disk regardless of mtime.
func (ld *Loader) Invalidate() {
	ld.cache.Store(nil)
}

func (ld *Loader) load() (*oasmodel.SpecDoc, error) {
	data, err := os.ReadFile(ld.path)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: ld.path, Message: "read failed", Cause: err}
	}
	var doc oasmodel.SpecDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.ParseError{Path: ld.path, Message: "malformed YAML", Cause: err}
	}
	return &doc, nil
}

// handout returns a deep copy of doc so callers can never mutate cache state
// through the returned pointer. On copy failure, log and fall back to
// handing out the live reference.
func (ld *Loader) handout(doc *oasmodel.SpecDoc) (*oasmodel.SpecDoc, error) {
	cp, err := oasmodel.Clone(doc)
	if err != nil {
		ld.log.Warn("loader: deep copy of cached document failed, returning live reference", "path", ld.path, "error", err)
		return doc, nil
	}
	return cp, nil
}
