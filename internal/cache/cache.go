// Package cache persists wrapped scripts on disk, keyed by (digest,
// language). It is the Go translation of the original's
// CodeFileCache: a flat directory of "<digest><ext>" files, created on
// first miss and reused on hits. No lock is taken on write — two
// concurrent misses for the same digest both produce byte-identical
// content, so last-writer-wins is safe (see design notes on the cache
// race policy).
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/coderunner/coderun/internal/cerr"
	"github.com/coderunner/coderun/internal/langtag"
)

// executableMode is applied to cache files so the spawned runtimes can
// exec them directly; matches the original's 0o755 (rwxr-xr-x).
const executableMode = 0o755

// Cache is a flat, content-addressed script cache rooted at Dir.
type Cache struct {
	Dir string
}

// New returns a Cache rooted at dir. dir is not created until the first
// Put.
func New(dir string) *Cache {
	return &Cache{Dir: dir}
}

// Default returns a Cache rooted at the OS temp dir's "code_cache"
// subdirectory, matching the original's fixed /tmp/code_cache default.
func Default() *Cache {
	return New(filepath.Join(os.TempDir(), "code_cache"))
}

func (c *Cache) path(digest string, lang langtag.Tag) string {
	return filepath.Join(c.Dir, digest+lang.Ext())
}

// Exists reports whether a cached artifact for (digest, lang) is
// present. Any I/O failure collapses to false — a non-throwing check,
// per the spec.
func (c *Cache) Exists(digest string, lang langtag.Tag) bool {
	_, err := os.Stat(c.path(digest, lang))
	return err == nil
}

// Open returns the wrapped source for a cached artifact and its path.
// It is a fatal invariant violation for a caller to Open after Exists
// reported true and have it fail (see cache coherence invariant) — that
// case is reported as a KindIO error so it can be surfaced as an
// infrastructure failure rather than silently swallowed.
func (c *Cache) Open(digest string, lang langtag.Tag) (content []byte, path string, err error) {
	path = c.path(digest, lang)
	content, err = os.ReadFile(path)
	if err != nil {
		return nil, path, cerr.Wrap(cerr.KindIO, "cache miss for "+path, err)
	}
	return content, path, nil
}

// Put writes the fully-wrapped source to the cache, creating the cache
// directory if necessary, and returns the content and path exactly as
// Open would. The content is written in a single create-and-write; no
// lock is required (see design notes).
func (c *Cache) Put(digest string, wrapped []byte, lang langtag.Tag) (content []byte, path string, err error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, "", cerr.Wrap(cerr.KindIO, "failed to create cache directory "+c.Dir, err)
	}

	path = c.path(digest, lang)
	if err := os.WriteFile(path, wrapped, 0o644); err != nil {
		return nil, path, cerr.Wrap(cerr.KindIO, "failed to write cache file "+path, err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(path, executableMode); err != nil {
			return nil, path, cerr.Wrap(cerr.KindIO, "failed to set cache file permissions on "+path, err)
		}
	}

	return wrapped, path, nil
}

// ClearLanguage removes every cache entry whose filename ends in lang's
// extension.
func (c *Cache) ClearLanguage(lang langtag.Tag) error {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return cerr.Wrap(cerr.KindIO, "failed to list cache directory "+c.Dir, err)
	}

	suffix := lang.Ext()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix {
			p := filepath.Join(c.Dir, name)
			if err := os.Remove(p); err != nil {
				return cerr.Wrap(cerr.KindIO, fmt.Sprintf("failed to remove cache file %s", p), err)
			}
		}
	}
	return nil
}

// ClearAll removes the entire cache directory.
func (c *Cache) ClearAll() error {
	if err := os.RemoveAll(c.Dir); err != nil {
		return cerr.Wrap(cerr.KindIO, "failed to remove cache directory "+c.Dir, err)
	}
	return nil
}
