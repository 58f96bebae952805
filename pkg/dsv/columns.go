package dsv

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/shapestone/shape-tabular/internal/tokenizer"
	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// columns scans the fields of one row. It is reset at every row boundary.
type columns struct {
	src *tokenizer.Source
	cfg Config
	buf []byte

	rowDone bool
	// done is set once the input is known to be exhausted.
	done bool
	// allowEmpty is set while the last field was quoted, so that an empty
	// quoted field is never mistaken for a blank line.
	allowEmpty bool
	column     int
}

func (c *columns) reset() {
	c.rowDone = false
	c.done = false
	c.allowEmpty = false
	c.column = 0
}

// next returns the next field of the row. ok is false once the row is
// complete; a row made only of the line terminator yields no field at all.
func (c *columns) next() (field string, ok bool, err error) {
	if c.rowDone {
		return "", false, nil
	}
	field, err = c.readColumn()
	if err != nil {
		c.rowDone = true
		if errors.Is(err, io.EOF) {
			if c.src.Consumed() == 0 {
				c.done = true
				return "", false, nil
			}
			err = tabular.ErrUnexpectedEndOfInput
		}
		return "", false, err
	}

	blank := c.rowDone && !c.allowEmpty && c.column == 0 && field == "" &&
		c.src.Consumed() == c.cfg.LineTerminator.Len()
	c.column++
	if blank {
		return "", false, nil
	}
	return field, true, nil
}

func (c *columns) readColumn() (string, error) {
	r, ok := c.src.Next()
	if ok && c.cfg.Quote != QuoteNever && r == c.cfg.QuoteChar {
		return c.readQuoted()
	}
	return c.readUnquoted(r, ok)
}

// readUnquoted accumulates characters up to the delimiter, the line
// terminator or the end of input. r and ok are the first character, already
// consumed.
func (c *columns) readUnquoted(r rune, ok bool) (string, error) {
	c.allowEmpty = false
	c.buf = c.buf[:0]
	for {
		if !ok {
			// The end of input only terminates a field that has content or
			// follows a delimiter; otherwise the row never started.
			if len(c.buf) > 0 || c.column > 0 {
				c.rowDone = true
				c.done = true
				return string(c.buf), nil
			}
			return "", io.EOF
		}
		switch {
		case c.cfg.LineTerminator.StartsWith(r):
			if err := c.src.FinishTerminator(c.cfg.LineTerminator); err != nil {
				return "", err
			}
			c.rowDone = true
			return string(c.buf), nil
		case r == c.cfg.Delimiter:
			return string(c.buf), nil
		}
		c.buf = utf8.AppendRune(c.buf, r)
		r, ok = c.src.Next()
	}
}

// readQuoted accumulates characters after an opening quote up to the
// closing quote, resolving escapes according to the escape rule.
func (c *columns) readQuoted() (string, error) {
	c.allowEmpty = true
	c.buf = c.buf[:0]

	quote := c.cfg.QuoteChar
	esc, canEscape := c.cfg.escapeChar()
	distinct := canEscape && esc != quote

	for {
		r, ok := c.src.Next()
		if !ok {
			return "", tabular.ErrUnexpectedEndOfInput
		}
		switch {
		case distinct && r == esc:
			next, ok := c.src.Next()
			if !ok || next != quote {
				return "", tabular.ErrExpectingQuoteChar
			}
			c.buf = utf8.AppendRune(c.buf, next)
		case r == quote:
			next, ok := c.src.Next()
			if canEscape && !distinct && ok && next == quote {
				c.buf = utf8.AppendRune(c.buf, next)
				continue
			}
			return c.quotedEnd(next, ok)
		default:
			c.buf = utf8.AppendRune(c.buf, r)
		}
	}
}

// quotedEnd checks the character following a closing quote.
func (c *columns) quotedEnd(r rune, ok bool) (string, error) {
	if !ok {
		c.rowDone = true
		c.done = true
		return string(c.buf), nil
	}
	switch {
	case r == c.cfg.Delimiter:
		return string(c.buf), nil
	case c.cfg.LineTerminator.StartsWith(r):
		if err := c.src.FinishTerminator(c.cfg.LineTerminator); err != nil {
			return "", err
		}
		c.rowDone = true
		return string(c.buf), nil
	default:
		return "", tabular.ErrExpectingLineTerminatorOrDelimiter
	}
}
