package reader

// Kind discriminates stream tokens.
type Kind uint8

const (
	// Word is a displayable token: non-empty text with no interior
	// whitespace, punctuation retained.
	Word Kind = iota
	// ParagraphBreak is a non-displayable sentinel marking a paragraph
	// boundary. It carries no text and only affects pause timing.
	ParagraphBreak
)

// Token is one element of a word stream.
type Token struct {
	Kind Kind
	Text string
}

// Stream is the ordered, finite token sequence produced from one
// document. Word ordinals are precomputed so shells can render
// "word N of M" without rescanning.
type Stream struct {
	Tokens   []Token
	words    int
	ordinals []int
}

// NewStream builds a Stream over the given tokens.
func NewStream(tokens []Token) Stream {
	ordinals := make([]int, len(tokens))
	words := 0
	for i, t := range tokens {
		if t.Kind == Word {
			words++
		}
		ordinals[i] = words
	}
	return Stream{Tokens: tokens, words: words, ordinals: ordinals}
}

// Len returns the total token count, breaks included.
func (s Stream) Len() int {
	return len(s.Tokens)
}

// Words returns the number of Word tokens.
func (s Stream) Words() int {
	return s.words
}

// At returns the token at index i.
func (s Stream) At(i int) Token {
	return s.Tokens[i]
}

// WordOrdinal returns the 1-based count of Word tokens at or before
// index i, clamped to the stream bounds.
func (s Stream) WordOrdinal(i int) int {
	if len(s.ordinals) == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= len(s.ordinals) {
		i = len(s.ordinals) - 1
	}
	return s.ordinals[i]
}

// WordIndex returns the token index of the nth word, 1-based. The
// second return is false when the stream has fewer than n words.
func (s Stream) WordIndex(n int) (int, bool) {
	if n < 1 || n > s.words {
		return 0, false
	}
	count := 0
	for i, t := range s.Tokens {
		if t.Kind == Word {
			count++
			if count == n {
				return i, true
			}
		}
	}
	return 0, false
}
