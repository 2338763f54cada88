package docstore

import "time"

// Document is one scanned documentation file.
type Document struct {
	Path         string    `json:"path"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	LastModified time.Time `json:"last_modified"`
	Size         int64     `json:"size"`
	Hash         string    `json:"hash"`
}

// WordCount returns the number of whitespace-separated words in the
// document body.
func (d *Document) WordCount() int {
	count := 0
	inWord := false
	for _, r := range d.Content {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}
