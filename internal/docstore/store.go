package docstore

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Store combines the scanner and the TTL cache behind one entry point.
type Store struct {
	scanner *Scanner
	cache   *Cache
}

// NewStore creates a store with the given scanner and cache. The cache
// may be nil, in which case every Collect call rescans.
func NewStore(scanner *Scanner, cache *Cache) *Store {
	return &Store{scanner: scanner, cache: cache}
}

// Collect returns the documents under root, served from the cache when
// a fresh entry exists. Cache write failures are non-fatal: the scan
// result is still returned.
func (s *Store) Collect(root string) ([]*Document, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve docs path: %w", err)
	}

	if s.cache != nil {
		if docs, ok := s.cache.Load(abs); ok {
			return docs, nil
		}
	}

	docs, err := s.scanner.ScanDirectory(abs)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Save(abs, docs)
	}

	return docs, nil
}

// BuildContext renders documents into a prompt context block, largest
// documents first, truncated to maxBytes.
func BuildContext(docs []*Document, maxBytes int) string {
	if len(docs) == 0 || maxBytes <= 0 {
		return ""
	}

	sorted := make([]*Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})

	var sb strings.Builder
	for _, doc := range sorted {
		section := fmt.Sprintf("## %s (%s)\n\n%s\n\n", doc.Title, doc.Path, strings.TrimSpace(doc.Content))
		if sb.Len()+len(section) > maxBytes {
			remaining := maxBytes - sb.Len()
			// Back off to a rune boundary so the cut never splits a
			// multi-byte character.
			for remaining > 0 && !utf8.RuneStart(section[remaining]) {
				remaining--
			}
			if remaining > 0 {
				sb.WriteString(section[:remaining])
			}
			break
		}
		sb.WriteString(section)
	}

	return strings.TrimRight(sb.String(), "\n")
}
