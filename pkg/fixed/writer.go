package fixed

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

const defaultBufferSize = 4096

var errWriterNoTarget = errors.New("fixed: writer destination cannot be nil")

// Writer writes fixed-width rows. Output is buffered; call Flush (or
// WriteAll) to hand it to the underlying io.Writer.
//
// Each row is checked against the Config before any of it is written: a
// field longer than its column fails with tabular.ErrColumnTooLong, columns
// wider than a fixed row width fail with tabular.ErrRowTooLong and a row
// with the wrong number of fields fails with tabular.ErrFieldCount.
type Writer struct {
	dst *bufio.Writer
	cfg Config

	row     int
	checked bool
	err     error
}

// NewWriter creates a Writer emitting fixed-width data to w.
func NewWriter(w io.Writer, cfg Config) *Writer {
	wr := &Writer{cfg: cfg.clone()}
	if w != nil {
		wr.dst = bufio.NewWriterSize(w, defaultBufferSize)
	}
	return wr
}

// Write emits a single row followed by its line ending.
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
	if err := w.check(row); err != nil {
		err.Row = index
		return err
	}

	for i, field := range row {
		if err := w.writeColumn(w.cfg.Columns[i], field); err != nil {
			w.err = err
			return err
		}
	}
	if err := w.writeLineEnd(); err != nil {
		w.err = err
		return err
	}
	return nil
}

func (w *Writer) check(row tabular.Row) *tabular.WriteError {
	if len(row) != len(w.cfg.Columns) {
		return &tabular.WriteError{Field: -1, Err: tabular.ErrFieldCount}
	}
	for i, field := range row {
		if utf8.RuneCountInString(field) > w.cfg.Columns[i].Width {
			return &tabular.WriteError{Field: i, Err: tabular.ErrColumnTooLong}
		}
	}
	if w.cfg.LineEnd.Kind == LineEndFixedWidth && w.cfg.Width() > w.cfg.LineEnd.Width {
		return &tabular.WriteError{Field: -1, Err: tabular.ErrRowTooLong}
	}
	return nil
}

func (w *Writer) writeColumn(col Column, field string) error {
	pad := col.Width - utf8.RuneCountInString(field)
	if col.Justification == Right {
		if err := w.repeat(col.PadWith, pad); err != nil {
			return err
		}
	}
	if _, err := w.dst.WriteString(field); err != nil {
		return err
	}
	if col.Justification == Left {
		return w.repeat(col.PadWith, pad)
	}
	return nil
}

func (w *Writer) writeLineEnd() error {
	switch w.cfg.LineEnd.Kind {
	case LineEndFixedWidth:
		return w.repeat(' ', w.cfg.LineEnd.Width-w.cfg.Width())
	case LineEndTerminator:
		_, err := w.dst.WriteString(w.cfg.LineEnd.Terminator.Sequence())
		return err
	}
	return nil
}

func (w *Writer) repeat(r rune, n int) error {
	for ; n > 0; n-- {
		if _, err := w.dst.WriteRune(r); err != nil {
			return err
		}
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
