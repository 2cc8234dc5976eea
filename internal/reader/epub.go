package reader

import (
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBFormat implements Format for EPUB files.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string          { return "EPUB" }
func (f *EPUBFormat) Extensions() []string  { return []string{".epub"} }
func (f *EPUBFormat) Extract(filename string) ([]Block, error) {
	return extractEPUBBlocks(filename)
}

// extractEPUBBlocks walks chapters in spine (reading) order, one Block
// per chapter, stripping markup and inserting blank-line paragraph
// hints at block-level element boundaries.
func extractEPUBBlocks(filename string) ([]Block, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]
	var blocks []Block

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		text := chapterText(string(data))
		if strings.TrimSpace(text) == "" {
			continue
		}
		blocks = append(blocks, Block{Text: text})
	}

	return blocks, nil
}

// blockTags are elements whose boundaries count as paragraph breaks.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"blockquote": true, "section": true, "article": true, "figcaption": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func chapterText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if blockTags[n.Data] {
				out.WriteString("\n\n")
			}
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				out.WriteString(t)
				out.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out.String()
}
