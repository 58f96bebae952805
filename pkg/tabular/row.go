package tabular

import (
	"errors"
	"io"
)

// Row is an ordered sequence of fields, in column order.
type Row []string

// Clone returns a copy of the row that does not share storage with r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// RowReader produces rows one at a time. Read returns io.EOF once the
// stream is exhausted; after any error no further rows are produced.
type RowReader interface {
	Read() (Row, error)
}

// RowWriter consumes rows one at a time.
type RowWriter interface {
	Write(row Row) error
	Flush() error
}

// Copy writes every row of src to dst until src is exhausted or either side
// fails. It returns the number of rows written. dst is flushed in both cases,
// so rows written before a failure reach the sink.
func Copy(dst RowWriter, src RowReader) (int, error) {
	n := 0
	for {
		row, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err == nil {
			err = dst.Write(row)
		}
		if err != nil {
			_ = dst.Flush()
			return n, err
		}
		n++
	}
	return n, dst.Flush()
}
