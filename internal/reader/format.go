// Package reader extracts documents into ordered word streams for
// timed word-by-word presentation.
package reader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Block is one ordered fragment of extracted text: a page for PDF, a
// chapter for EPUB. Blank-line runs inside Text are paragraph-boundary
// hints for the tokenizer; the block boundary itself is one as well.
type Block struct {
	Text string
}

// Format defines a file format reader for extracting text blocks.
type Format interface {
	Name() string
	Extensions() []string
	Extract(filename string) ([]Block, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

func formatFor(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return nil
}

// ExtractBlocks extracts text blocks from a file using the registered
// format for its extension. Unrecognized extensions are rejected before
// any extraction attempt.
func ExtractBlocks(filename string) ([]Block, error) {
	f := formatFor(filename)
	if f == nil {
		return nil, fmt.Errorf("%q: %w", filepath.Ext(filename), ErrUnsupportedFormat)
	}
	return f.Extract(filename)
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

// Open extracts and tokenizes the document at path. Extraction is
// all-or-nothing: a stream without a single word is an error, never a
// valid document.
func Open(path string) (Stream, error) {
	blocks, err := ExtractBlocks(path)
	if err != nil {
		return Stream{}, err
	}
	s := Tokenize(blocks)
	if s.Words() == 0 {
		return Stream{}, fmt.Errorf("%s: %w", path, ErrUnreadableDocument)
	}
	return s, nil
}
