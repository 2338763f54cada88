package docstore

import (
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Scanner walks a repository collecting documentation files that give
// the summarizer deployment context.
type Scanner struct {
	includePatterns []string
	excludeDirs     []string
}

// NewScanner creates a scanner with the default markdown patterns.
func NewScanner() *Scanner {
	return &Scanner{
		includePatterns: []string{"*.md", "*.mdx", "*.markdown"},
		excludeDirs:     []string{"node_modules", ".git", ".svn", "vendor"},
	}
}

// NewScannerWithPatterns creates a scanner with custom include patterns.
func NewScannerWithPatterns(include []string) *Scanner {
	s := NewScanner()
	if len(include) > 0 {
		s.includePatterns = include
	}
	return s
}

// ScanFile reads a single file into a Document.
func (s *Scanner) ScanFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	content, err := os.ReadFile(path) //nolint:gosec // File path comes from directory scanning
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	body := stripFrontmatter(string(content))

	return &Document{
		Path:         path,
		Title:        extractTitle(body, path),
		Content:      body,
		LastModified: info.ModTime(),
		Size:         info.Size(),
		Hash:         fmt.Sprintf("%x", sha256.Sum256(content)),
	}, nil
}

// ScanDirectory walks root recursively and scans every matching file.
// Unreadable files are skipped with a warning so one bad file does not
// abort the whole scan.
func (s *Scanner) ScanDirectory(root string) ([]*Document, error) {
	var documents []*Document

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()

		if d.IsDir() {
			for _, excluded := range s.excludeDirs {
				if name == excluded {
					return filepath.SkipDir
				}
			}
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		matched := false
		for _, pattern := range s.includePatterns {
			if ok, _ := filepath.Match(pattern, name); ok {
				matched = true
				break
			}
		}
		if !matched {
			return nil
		}

		doc, err := s.ScanFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to scan file %s: %v\n", path, err)
			return nil
		}

		documents = append(documents, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", root, err)
	}

	return documents, nil
}

// stripFrontmatter removes a leading YAML frontmatter block if present.
func stripFrontmatter(content string) string {
	if !strings.HasPrefix(content, "---\n") && content != "---" {
		return content
	}

	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return content
	}

	body := rest[end+len("\n---"):]
	if idx := strings.Index(body, "\n"); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = ""
	}
	return strings.TrimLeft(body, "\n")
}

// extractTitle takes the first markdown heading, falling back to the
// file name without extension.
func extractTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
