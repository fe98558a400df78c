// Package cache persists a bounded record of recently used content files,
// powering the "last" selector and the recent listing.
//
// The cache is one pretty-printed JSON file rewritten wholesale on every
// update. There is no locking; concurrent invocations are last-writer-wins.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aidanlsb/forma/internal/atomicfile"
	"github.com/aidanlsb/forma/internal/content"
)

const cacheFilename = "documents.json"

// maxEntries bounds the cache; the oldest entries beyond it are dropped.
const maxEntries = 100

// ErrNoRecentDocument is returned by Last on an empty cache.
var ErrNoRecentDocument = errors.New("no recent document")

// Entry is one cached document record.
type Entry struct {
	File       string              `json:"file"`
	Meta       Meta                `json:"meta"`
	Blocks     []content.BlockInfo `json:"blocks"`
	LastUsedAt time.Time           `json:"last_used_at"`
}

// Meta is the denormalized metadata snapshot of a cached document.
type Meta struct {
	TemplateID      string `json:"template_id,omitempty"`
	TemplateVersion string `json:"template_version,omitempty"`
	Title           string `json:"title,omitempty"`
	QuoteNumber     string `json:"quote_number,omitempty"`
}

// DocumentCache holds the entry list for one cache directory.
type DocumentCache struct {
	dir     string
	entries []Entry
	now     func() time.Time
}

// Load reads the cache from dir. A missing or corrupt cache file yields an
// empty cache; corruption is not an error, the next save repairs it.
func Load(dir string) (*DocumentCache, error) {
	c := &DocumentCache{dir: dir, now: time.Now}

	data, err := os.ReadFile(filepath.Join(dir, cacheFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.entries = nil
	}
	return c, nil
}

// Save writes the full entry list, creating the cache directory if needed.
func (c *DocumentCache) Save() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := atomicfile.WriteFile(filepath.Join(c.dir, cacheFilename), data, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Update records a touch of the given content file and persists the cache.
// The file must exist on disk; its path is canonicalized so the same document
// reached via different relative paths collapses to one entry.
func (c *DocumentCache) Update(f *content.File) error {
	abs, err := filepath.EvalSymlinks(f.Path)
	if err != nil {
		return fmt.Errorf("canonicalizing path: %w", err)
	}
	if abs, err = filepath.Abs(abs); err != nil {
		return fmt.Errorf("canonicalizing path: %w", err)
	}

	entry := Entry{
		File:       abs,
		Meta:       snapshotMeta(f),
		Blocks:     f.ListBlocks(),
		LastUsedAt: c.now().UTC(),
	}

	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.File != abs {
			kept = append(kept, e)
		}
	}
	c.entries = append(kept, entry)

	if len(c.entries) > maxEntries {
		sort.Slice(c.entries, func(i, j int) bool {
			return c.entries[i].LastUsedAt.After(c.entries[j].LastUsedAt)
		})
		c.entries = c.entries[:maxEntries]
	}

	return c.Save()
}

// snapshotMeta denormalizes the lookups the listing surfaces need, so they
// work without re-parsing the document.
func snapshotMeta(f *content.File) Meta {
	meta := Meta{
		TemplateID:      f.Meta.TemplateID,
		TemplateVersion: f.Meta.TemplateVersion,
	}
	meta.Title = firstString(f, "quote.title", "meta.title")
	meta.QuoteNumber = firstString(f, "quote.number", "quote.angebot_nr")
	return meta
}

func firstString(f *content.File, paths ...string) string {
	for _, path := range paths {
		if v, ok := f.Get(path); ok {
			if s, ok := v.AsString(); ok {
				return s
			}
		}
	}
	return ""
}

// Last returns the most recently used entry.
func (c *DocumentCache) Last() (Entry, error) {
	if len(c.entries) == 0 {
		return Entry{}, ErrNoRecentDocument
	}
	last := c.entries[0]
	for _, e := range c.entries[1:] {
		if e.LastUsedAt.After(last.LastUsedAt) {
			last = e
		}
	}
	return last, nil
}

// List returns all entries, most recent first.
func (c *DocumentCache) List() []Entry {
	entries := append([]Entry(nil), c.entries...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastUsedAt.After(entries[j].LastUsedAt)
	})
	return entries
}

// FindByPath returns the entry for a file path, if cached.
func (c *DocumentCache) FindByPath(path string) (Entry, bool) {
	abs, err := filepath.EvalSymlinks(path)
	if err != nil {
		return Entry{}, false
	}
	if abs, err = filepath.Abs(abs); err != nil {
		return Entry{}, false
	}
	for _, e := range c.entries {
		if e.File == abs {
			return e, true
		}
	}
	return Entry{}, false
}

// ResolveSelector maps a user selector to a content file path: the literal
// token "last" means the most recent document, anything else is a file path
// that must exist.
func (c *DocumentCache) ResolveSelector(selector string) (string, error) {
	if selector == "last" {
		entry, err := c.Last()
		if err != nil {
			return "", err
		}
		return entry.File, nil
	}
	if _, err := os.Stat(selector); err != nil {
		return "", &content.FileNotFoundError{Path: selector}
	}
	return selector, nil
}

// Len reports the number of cached entries.
func (c *DocumentCache) Len() int {
	return len(c.entries)
}
