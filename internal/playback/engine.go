// Package playback drives a timed word-by-word presentation of a token
// stream. The engine is a pure state machine: every step returns the
// word to display and the delay before the next tick, and an external
// scheduler owns the timer. Nothing here is safe for concurrent use;
// ticks and control operations must come from one cooperative context.
package playback

import (
	"errors"
	"time"

	"github.com/nthornton/blink/internal/reader"
)

// Mode is the engine's run state.
type Mode uint8

const (
	Stopped Mode = iota
	Playing
	Paused
	Finished
)

func (m Mode) String() string {
	switch m {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// ErrEmptyStream is returned when playback is started on a stream with
// no words. The engine remains Stopped.
var ErrEmptyStream = errors.New("cannot play an empty stream")

// Rate and pause bounds.
const (
	MinWPM            = 100
	MaxWPM            = 1000
	MaxParagraphPause = 5 * time.Second
)

// Emission is the outcome of one engine step: the word now under the
// cursor and the delay the scheduler should wait before the next Tick.
type Emission struct {
	Word  string
	Delay time.Duration
}

// Engine advances a cursor through a fixed word stream on external
// ticks. Paragraph breaks are consumed silently; their only effect is
// extra delay before the following word.
type Engine struct {
	stream         reader.Stream
	cursor         int
	mode           Mode
	wpm            int
	paragraphPause time.Duration
}

// NewEngine creates a Stopped engine at cursor 0. Rate and pause are
// clamped to their valid ranges.
func NewEngine(s reader.Stream, wpm int, paragraphPause time.Duration) *Engine {
	e := &Engine{stream: s, mode: Stopped}
	e.SetRate(wpm)
	e.SetParagraphPause(paragraphPause)
	return e
}

// Seek positions the cursor, clamped to [0, stream length]. Used to
// apply a resume index before playback begins.
func (e *Engine) Seek(i int) {
	if i < 0 {
		i = 0
	}
	if i > e.stream.Len() {
		i = e.stream.Len()
	}
	e.cursor = i
}

// Interval is the per-word display time at the current rate. Reading it
// at each step means rate changes apply on the next scheduled tick and
// never retroactively.
func (e *Engine) Interval() time.Duration {
	return time.Duration(60.0/float64(e.wpm)*1000) * time.Millisecond
}

// Start begins playback from the current cursor. The emission carries
// the word to display now and the delay before the first Tick. A break
// under the cursor is consumed, never displayed; its pause is billed to
// the first delay.
func (e *Engine) Start() (Emission, error) {
	if e.stream.Words() == 0 {
		return Emission{}, ErrEmptyStream
	}
	e.mode = Playing

	var extra time.Duration
	if e.cursor < e.stream.Len() && e.stream.At(e.cursor).Kind == reader.ParagraphBreak {
		e.cursor++
		extra = e.paragraphPause
	}
	return Emission{Word: e.CurrentWord(), Delay: e.Interval() + extra}, nil
}

// Tick advances by one displayed word. It fires only while Playing; ok
// is false once the stream is exhausted and the engine is Finished, or
// when the tick arrived in any other mode and was ignored.
func (e *Engine) Tick() (Emission, bool) {
	if e.mode != Playing {
		return Emission{}, false
	}
	if e.cursor >= e.stream.Len()-1 {
		e.mode = Finished
		return Emission{}, false
	}

	e.cursor++
	var extra time.Duration
	if e.stream.At(e.cursor).Kind == reader.ParagraphBreak {
		if e.cursor >= e.stream.Len()-1 {
			// A trailing break would violate the tokenizer's
			// invariants; treat it as end of stream.
			e.mode = Finished
			return Emission{}, false
		}
		e.cursor++
		extra = e.paragraphPause
	}
	return Emission{Word: e.stream.At(e.cursor).Text, Delay: e.Interval() + extra}, true
}

// Pause suspends playback without moving the cursor. Idempotent; pausing
// anything but a Playing engine is a no-op.
func (e *Engine) Pause() {
	if e.mode == Playing {
		e.mode = Paused
	}
}

// Resume continues playback without re-reading the token under the
// cursor, so no word is skipped or repeated across a pause. It returns
// the delay before the next Tick; ok is false unless the engine was
// Paused.
func (e *Engine) Resume() (time.Duration, bool) {
	if e.mode != Paused {
		return 0, false
	}
	e.mode = Playing
	return e.Interval(), true
}

// Stop halts playback from any state, leaving the cursor where it is.
func (e *Engine) Stop() {
	e.mode = Stopped
}

// Reset moves the cursor to 0. Valid from any state; the run mode is
// left unchanged.
func (e *Engine) Reset() {
	e.cursor = 0
}

// StepBack rewinds n words. Only Word tokens count; breaks passed on
// the way are skipped, and the cursor always lands on a Word index or 0.
func (e *Engine) StepBack(n int) {
	i := e.cursor
	for n > 0 && i > 0 {
		i--
		if e.stream.At(i).Kind == reader.Word {
			n--
		}
	}
	for i > 0 && e.stream.At(i).Kind == reader.ParagraphBreak {
		i--
	}
	e.cursor = i
}

// BackToParagraphStart moves to the first word of the current
// paragraph. Called at a paragraph start already, it moves to the start
// of the previous paragraph instead.
func (e *Engine) BackToParagraphStart() {
	i := e.cursor
	if i > 0 && e.stream.At(i-1).Kind == reader.ParagraphBreak {
		i--
	}
	for i > 0 && e.stream.At(i-1).Kind != reader.ParagraphBreak {
		i--
	}
	e.cursor = i
}

// NextParagraph jumps to the first word after the next break, or to the
// last token when no break remains.
func (e *Engine) NextParagraph() {
	i := e.cursor
	for i < e.stream.Len()-1 {
		i++
		if e.stream.At(i).Kind == reader.ParagraphBreak {
			i++
			break
		}
	}
	if i > e.stream.Len()-1 {
		i = e.stream.Len() - 1
	}
	e.cursor = i
}

// JumpToWord positions the cursor on the nth word, 1-based. Out-of-range
// ordinals clamp to the nearest end.
func (e *Engine) JumpToWord(n int) {
	if n < 1 {
		n = 1
	}
	if n > e.stream.Words() {
		n = e.stream.Words()
	}
	if i, ok := e.stream.WordIndex(n); ok {
		e.cursor = i
	}
}

// SetRate updates the playback rate, clamped to [MinWPM, MaxWPM]. Takes
// effect on the next scheduled tick.
func (e *Engine) SetRate(wpm int) {
	if wpm < MinWPM {
		wpm = MinWPM
	}
	if wpm > MaxWPM {
		wpm = MaxWPM
	}
	e.wpm = wpm
}

// SetParagraphPause updates the extra delay billed at paragraph breaks,
// clamped to [0, MaxParagraphPause].
func (e *Engine) SetParagraphPause(d time.Duration) {
	if d < 0 {
		d = 0
	}
	if d > MaxParagraphPause {
		d = MaxParagraphPause
	}
	e.paragraphPause = d
}

// Mode returns the current run state.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Cursor returns the current stream index.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Rate returns the current words-per-minute setting.
func (e *Engine) Rate() int {
	return e.wpm
}

// ParagraphPause returns the current paragraph pause duration.
func (e *Engine) ParagraphPause() time.Duration {
	return e.paragraphPause
}

// CurrentWord returns the word under the cursor, or "" when the cursor
// sits on a break or past the end.
func (e *Engine) CurrentWord() string {
	if e.cursor >= 0 && e.cursor < e.stream.Len() {
		if t := e.stream.At(e.cursor); t.Kind == reader.Word {
			return t.Text
		}
	}
	return ""
}

// Progress returns the 1-based ordinal of the current word and the
// total word count.
func (e *Engine) Progress() (current, total int) {
	if e.stream.Len() == 0 {
		return 0, 0
	}
	return e.stream.WordOrdinal(e.cursor), e.stream.Words()
}

// AtEnd reports whether the cursor has reached the last token.
func (e *Engine) AtEnd() bool {
	return e.cursor >= e.stream.Len()-1
}
