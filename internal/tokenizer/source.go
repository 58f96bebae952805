// Package tokenizer provides the character source shared by the DSV and
// fixed-width column tokenizers, built on Shape's tokenizer streams.
package tokenizer

import (
	"errors"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// Source is a sequential, codepoint-aware character source.
//
// It counts the characters consumed since the last row boundary (see
// StartRow), which the column tokenizers use to tell an empty input from an
// empty line, and it remembers where the current row started for error
// reporting.
type Source struct {
	stream    tokenizer.Stream
	rec       *errRecorder
	consumed  int
	rowStart  ast.Position
	startLine int
}

// NewSource creates a Source reading from a pre-configured stream.
func NewSource(stream tokenizer.Stream) *Source {
	s := &Source{stream: stream}
	s.StartRow()
	return s
}

// NewSourceFromString creates a Source over an in-memory string.
func NewSourceFromString(input string) *Source {
	return NewSource(tokenizer.NewStream(input))
}

// NewSourceFromReader creates a Source over an io.Reader. The reader is
// consumed in chunks by the underlying buffered stream. A read error ends
// the stream like end of input and is kept for ReadErr.
func NewSourceFromReader(r io.Reader) *Source {
	rec := &errRecorder{r: r}
	s := NewSource(tokenizer.NewStreamFromReader(rec))
	s.rec = rec
	return s
}

// errRecorder keeps the first read error, which the stream cannot report.
type errRecorder struct {
	r   io.Reader
	err error
}

func (e *errRecorder) Read(p []byte) (int, error) {
	if e.err != nil {
		return 0, io.EOF
	}
	n, err := e.r.Read(p)
	if err != nil && err != io.EOF {
		e.err = err
		err = io.EOF
	}
	return n, err
}

// ReadErr returns the error that cut the input short, if any.
func (s *Source) ReadErr() error {
	if s.rec == nil {
		return nil
	}
	return s.rec.err
}

// Next consumes one character. ok is false when there is no more input.
func (s *Source) Next() (r rune, ok bool) {
	r, ok = s.stream.NextChar()
	if ok {
		s.consumed++
	}
	return r, ok
}

// Peek returns the next character without consuming it.
func (s *Source) Peek() (rune, bool) {
	return s.stream.PeekChar()
}

// AtEnd reports whether the input is exhausted.
func (s *Source) AtEnd() bool {
	return s.stream.IsEos()
}

// StartRow marks a row boundary at the current position.
func (s *Source) StartRow() {
	s.consumed = 0
	s.rowStart = s.Position()
	s.startLine = s.stream.GetRow()
}

// Consumed returns the number of characters consumed since the last row boundary.
func (s *Source) Consumed() int {
	return s.consumed
}

// RowStart returns the position of the last row boundary.
func (s *Source) RowStart() ast.Position {
	return s.rowStart
}

// Position returns the current position in the input.
func (s *Source) Position() ast.Position {
	return ast.NewPosition(s.stream.GetOffset(), s.stream.GetRow(), s.stream.GetColumn())
}

// FinishTerminator consumes the remainder of lt after its first character
// has already been consumed.
func (s *Source) FinishTerminator(lt tabular.LineTerminator) error {
	first := true
	for _, want := range lt.Sequence() {
		if first {
			first = false
			continue
		}
		got, ok := s.Next()
		if !ok {
			return tabular.ErrUnexpectedEndOfInput
		}
		if got != want {
			return tabular.ErrInvalidLineEnding
		}
	}
	return nil
}

// Error wraps err in a *tabular.ParseError located at the current position.
// An unexpected end of input caused by a read error reports the read error.
func (s *Source) Error(err error) error {
	if rerr := s.ReadErr(); rerr != nil && errors.Is(err, tabular.ErrUnexpectedEndOfInput) {
		err = rerr
	}
	return &tabular.ParseError{
		StartLine: s.startLine,
		Line:      s.stream.GetRow(),
		Column:    s.stream.GetColumn(),
		Err:       err,
	}
}
