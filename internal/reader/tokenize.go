package reader

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// paragraphSplit matches blank-line runs: a newline followed by at
// least one more, with only horizontal whitespace between.
var paragraphSplit = regexp.MustCompile(`\n[ \t\r]*\n[\s]*`)

// Tokenize flattens extracted blocks into a word stream. Words are
// NFC-normalized whitespace-separated fragments; exactly one
// ParagraphBreak separates consecutive word-bearing paragraphs, whether
// the boundary came from a blank-line run or the block boundary itself.
// Paragraphs and blocks without words contribute nothing, so the stream
// never starts or ends with a break and breaks never repeat.
func Tokenize(blocks []Block) Stream {
	var tokens []Token
	for _, b := range blocks {
		for _, para := range paragraphSplit.Split(b.Text, -1) {
			fields := strings.Fields(para)
			if len(fields) == 0 {
				continue
			}
			if len(tokens) > 0 {
				tokens = append(tokens, Token{Kind: ParagraphBreak})
			}
			for _, w := range fields {
				tokens = append(tokens, Token{Kind: Word, Text: norm.NFC.String(w)})
			}
		}
	}
	return NewStream(tokens)
}
