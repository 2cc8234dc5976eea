package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordToken(s string) Token  { return Token{Kind: Word, Text: s} }
func breakToken() Token         { return Token{Kind: ParagraphBreak} }

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		blocks   []Block
		expected []Token
	}{
		{
			name:   "block boundary becomes one break",
			blocks: []Block{{Text: "Hello world."}, {Text: "Next para."}},
			expected: []Token{
				wordToken("Hello"), wordToken("world."),
				breakToken(),
				wordToken("Next"), wordToken("para."),
			},
		},
		{
			name:   "blank line run inside a block",
			blocks: []Block{{Text: "One two\n\n\n\nThree"}},
			expected: []Token{
				wordToken("One"), wordToken("two"),
				breakToken(),
				wordToken("Three"),
			},
		},
		{
			name:   "single newline is not a paragraph",
			blocks: []Block{{Text: "line one\nline two"}},
			expected: []Token{
				wordToken("line"), wordToken("one"),
				wordToken("line"), wordToken("two"),
			},
		},
		{
			name:   "whitespace-only block contributes nothing",
			blocks: []Block{{Text: "First"}, {Text: "  \n\t \n "}, {Text: "Second"}},
			expected: []Token{
				wordToken("First"),
				breakToken(),
				wordToken("Second"),
			},
		},
		{
			name:   "adjacent boundary hints collapse",
			blocks: []Block{{Text: "\n\nA\n\n \n\nB\n\n"}, {Text: "\n\nC"}},
			expected: []Token{
				wordToken("A"),
				breakToken(),
				wordToken("B"),
				breakToken(),
				wordToken("C"),
			},
		},
		{
			name:     "leading whitespace produces no tokens",
			blocks:   []Block{{Text: "   \n\n  word  "}},
			expected: []Token{wordToken("word")},
		},
		{
			name:     "empty input",
			blocks:   nil,
			expected: nil,
		},
		{
			name:     "punctuation retained",
			blocks:   []Block{{Text: "Hello, world! (yes)"}},
			expected: []Token{wordToken("Hello,"), wordToken("world!"), wordToken("(yes)")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Tokenize(tt.blocks)
			assert.Equal(t, tt.expected, s.Tokens)
		})
	}
}

func TestTokenizeInvariants(t *testing.T) {
	samples := [][]Block{
		{{Text: "a\n\nb\n\nc"}, {Text: ""}, {Text: "d e f\n\n\ng"}},
		{{Text: "\n\n\n"}, {Text: "only block with words"}},
		{{Text: "x"}},
		{{Text: "  "}, {Text: "\n\n"}},
	}

	for _, blocks := range samples {
		s := Tokenize(blocks)

		for i, tok := range s.Tokens {
			switch tok.Kind {
			case Word:
				require.NotEmpty(t, tok.Text)
				assert.False(t, strings.ContainsAny(tok.Text, " \t\n\r"),
					"word %q contains whitespace", tok.Text)
			case ParagraphBreak:
				assert.Empty(t, tok.Text)
				if i > 0 {
					assert.NotEqual(t, ParagraphBreak, s.Tokens[i-1].Kind,
						"adjacent breaks at %d", i)
				}
			}
		}

		if s.Len() > 0 {
			assert.Equal(t, Word, s.At(0).Kind, "stream must not start with a break")
			assert.Equal(t, Word, s.At(s.Len()-1).Kind, "stream must not end with a break")
		}
	}
}

func TestTokenizeNFCNormalization(t *testing.T) {
	// "e" followed by a combining acute accent must normalize to the
	// single precomposed rune.
	s := Tokenize([]Block{{Text: "café"}})
	require.Equal(t, 1, s.Words())
	assert.Equal(t, "café", s.At(0).Text)
}

func TestStreamCounts(t *testing.T) {
	s := Tokenize([]Block{{Text: "one two"}, {Text: "three"}})

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 3, s.Words())

	assert.Equal(t, 1, s.WordOrdinal(0))
	assert.Equal(t, 2, s.WordOrdinal(1))
	assert.Equal(t, 2, s.WordOrdinal(2)) // the break
	assert.Equal(t, 3, s.WordOrdinal(3))
	assert.Equal(t, 3, s.WordOrdinal(99))
	assert.Equal(t, 0, s.WordOrdinal(-1))

	i, ok := s.WordIndex(3)
	require.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = s.WordIndex(4)
	assert.False(t, ok)
	_, ok = s.WordIndex(0)
	assert.False(t, ok)
}
