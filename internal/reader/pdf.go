package reader

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFFormat implements Format for PDF files.
type PDFFormat struct{}

func init() {
	Register(&PDFFormat{})
}

func (f *PDFFormat) Name() string          { return "PDF" }
func (f *PDFFormat) Extensions() []string  { return []string{".pdf"} }
func (f *PDFFormat) Extract(filename string) ([]Block, error) {
	return extractPDFBlocks(filename)
}

// extractPDFBlocks walks pages in physical order, one Block per page.
// Page text is passed through unmodified; any blank-line runs inside it
// become paragraph hints for the tokenizer. The pdf parser panics on
// some malformed files, so panics are recovered into errors.
func extractPDFBlocks(filename string) (blocks []Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			blocks = nil
			err = fmt.Errorf("malformed pdf %s: %v", filename, r)
		}
	}()

	file, r, err := pdf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages the parser cannot decode; a fully
			// unreadable document is caught after tokenization.
			continue
		}
		blocks = append(blocks, Block{Text: text})
	}

	return blocks, nil
}
