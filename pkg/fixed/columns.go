package fixed

import (
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-tabular/internal/tokenizer"
	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// columns slices the fields of one row out of the source.
type columns struct {
	src *tokenizer.Source
	cfg Config
	buf []byte
}

// readRow reads every column followed by the line ending. The caller has
// already checked that the row is not empty.
func (c *columns) readRow() (tabular.Row, error) {
	row := make(tabular.Row, 0, len(c.cfg.Columns))
	for _, col := range c.cfg.Columns {
		field, err := c.readColumn(col)
		if err != nil {
			return nil, err
		}
		row = append(row, field)
	}
	if err := c.readLineEnd(); err != nil {
		return nil, err
	}
	return row, nil
}

// readColumn reads exactly col.Width characters and trims the padding.
func (c *columns) readColumn(col Column) (string, error) {
	c.buf = c.buf[:0]
	for i := 0; i < col.Width; i++ {
		r, ok := c.src.Next()
		if !ok {
			return "", tabular.ErrUnexpectedEndOfInput
		}
		c.buf = utf8.AppendRune(c.buf, r)
	}

	isPad := func(r rune) bool { return r == col.PadWith }
	if col.Justification == Left {
		return strings.TrimRightFunc(string(c.buf), isPad), nil
	}
	return strings.TrimLeftFunc(string(c.buf), isPad), nil
}

func (c *columns) readLineEnd() error {
	switch c.cfg.LineEnd.Kind {
	case LineEndFixedWidth:
		// Filler is discarded. Columns wider than the row leave nothing to skip.
		for n := c.cfg.LineEnd.Width - c.src.Consumed(); n > 0; n-- {
			if _, ok := c.src.Next(); !ok {
				return tabular.ErrUnexpectedEndOfInput
			}
		}
	case LineEndTerminator:
		lt := c.cfg.LineEnd.Terminator
		r, ok := c.src.Next()
		if !ok {
			// The last row may omit its terminator.
			return nil
		}
		if !lt.StartsWith(r) {
			return tabular.ErrInvalidLineEnding
		}
		return c.src.FinishTerminator(lt)
	}
	return nil
}
