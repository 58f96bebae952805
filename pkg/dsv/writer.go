package dsv

import (
	"bufio"
	"errors"
	"io"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

const defaultBufferSize = 4096

var errWriterNoTarget = errors.New("dsv: writer destination cannot be nil")

// Writer writes rows according to a Config. Output is buffered; call Flush
// (or WriteAll) to hand it to the underlying io.Writer.
//
// A row is validated before any of its bytes are written, so a row rejected
// with a *tabular.WriteError leaves the output untouched and later rows can
// still be written. Errors of the underlying io.Writer are sticky.
type Writer struct {
	dst *bufio.Writer
	cfg Config

	row     int
	checked bool
	err     error
	quoted  []bool
}

// NewWriter creates a Writer emitting DSV data to w.
func NewWriter(w io.Writer, cfg Config) *Writer {
	wr := &Writer{cfg: cfg}
	if w != nil {
		wr.dst = bufio.NewWriterSize(w, defaultBufferSize)
	}
	return wr
}

// Write emits a single row followed by the line terminator.
func (w *Writer) Write(row tabular.Row) error {
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if !w.checked {
		w.checked = true
		if err := w.cfg.Validate(); err != nil {
			w.err = err
			return err
		}
	}

	index := w.row
	w.row++

	if len(row) == 0 {
		return &tabular.WriteError{Row: index, Field: -1, Err: tabular.ErrEmptyRow}
	}
	w.quoted = w.quoted[:0]
	for i, field := range row {
		quoted, err := w.cfg.checkField(field)
		if err != nil {
			return &tabular.WriteError{Row: index, Field: i, Err: err}
		}
		w.quoted = append(w.quoted, quoted)
	}
	// A lone empty field would read back as a blank line.
	if len(row) == 1 && row[0] == "" {
		if w.cfg.Quote == QuoteNever {
			return &tabular.WriteError{Row: index, Field: 0, Err: tabular.ErrMustQuote}
		}
		w.quoted[0] = true
	}

	for i, field := range row {
		if i > 0 {
			if _, err := w.dst.WriteRune(w.cfg.Delimiter); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(field, w.quoted[i]); err != nil {
			w.err = err
			return err
		}
	}
	if _, err := w.dst.WriteString(w.cfg.LineTerminator.Sequence()); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes multiple rows, stopping at the first error, and flushes
// the output.
func (w *Writer) WriteAll(rows []tabular.Row) error {
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first sticky error encountered by the writer.
func (w *Writer) Error() error {
	return w.err
}

func (w *Writer) writeField(field string, quoted bool) error {
	if !quoted {
		_, err := w.dst.WriteString(field)
		return err
	}

	quote := w.cfg.QuoteChar
	esc, _ := w.cfg.escapeChar()
	if _, err := w.dst.WriteRune(quote); err != nil {
		return err
	}
	for _, r := range field {
		if r == quote {
			if _, err := w.dst.WriteRune(esc); err != nil {
				return err
			}
		}
		if _, err := w.dst.WriteRune(r); err != nil {
			return err
		}
	}
	_, err := w.dst.WriteRune(quote)
	return err
}

// checkField decides whether field must be quoted and reports the values
// this grammar cannot represent.
func (c Config) checkField(field string) (quoted bool, err error) {
	if !c.needsQuote(field) {
		return false, nil
	}
	if c.Quote == QuoteNever {
		return false, tabular.ErrMustQuote
	}
	esc, canEscape := c.escapeChar()
	for _, r := range field {
		switch {
		case r == c.QuoteChar:
			if !canEscape {
				return false, tabular.ErrEscapeDisallowed
			}
		case canEscape && r == esc:
			return false, tabular.ErrEscapeCharInQuote
		}
	}
	return true, nil
}

// needsQuote reports whether field has to be quoted to be read back. A
// leading quote character needs quoting too, otherwise the reader would
// take it for an opening quote.
func (c Config) needsQuote(field string) bool {
	if c.Quote == QuoteAlways {
		return true
	}
	for i, r := range field {
		if r == c.Delimiter || c.LineTerminator.StartsWith(r) {
			return true
		}
		if i == 0 && c.Quote != QuoteNever && r == c.QuoteChar {
			return true
		}
	}
	return false
}
