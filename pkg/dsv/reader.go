package dsv

import (
	"io"
	"iter"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/shape-tabular/internal/tokenizer"
	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// Reader reads rows from a character source according to a Config.
//
// Rows are read lazily, one per call to Read. Lines consisting only of the
// line terminator are skipped. The first error ends the stream: it is
// returned once and every later call returns io.EOF.
type Reader struct {
	src  *tokenizer.Source
	cfg  Config
	cols columns

	checked bool
	done    bool
	rowPos  ast.Position
}

// NewReader creates a Reader that consumes DSV data from r.
func NewReader(r io.Reader, cfg Config) *Reader {
	return newReader(tokenizer.NewSourceFromReader(r), cfg)
}

// NewStreamReader creates a Reader over a pre-configured Shape stream.
func NewStreamReader(stream shapetokenizer.Stream, cfg Config) *Reader {
	return newReader(tokenizer.NewSource(stream), cfg)
}

func newReader(src *tokenizer.Source, cfg Config) *Reader {
	return &Reader{
		src:  src,
		cfg:  cfg,
		cols: columns{src: src, cfg: cfg},
	}
}

// Config returns the grammar used by the reader.
func (r *Reader) Config() Config {
	return r.cfg
}

// Read returns the next row, or io.EOF when no rows remain. Errors other
// than an invalid Config are *tabular.ParseError values; a read error of
// the underlying io.Reader is reported as one wrapping that error.
func (r *Reader) Read() (tabular.Row, error) {
	if r.done {
		return nil, r.eof()
	}
	if !r.checked {
		r.checked = true
		if err := r.cfg.Validate(); err != nil {
			r.done = true
			return nil, err
		}
	}

	for {
		row, end, err := r.readRow()
		if err != nil {
			r.done = true
			return nil, err
		}
		if end {
			r.done = true
		}
		if len(row) > 0 {
			return row, nil
		}
		if end {
			return nil, r.eof()
		}
		// Blank line, try the next one.
	}
}

// readRow assembles one row. end reports that the input is exhausted.
func (r *Reader) readRow() (row tabular.Row, end bool, err error) {
	r.src.StartRow()
	r.rowPos = r.src.RowStart()
	r.cols.reset()
	for {
		field, ok, err := r.cols.next()
		if err != nil {
			return nil, true, r.src.Error(err)
		}
		if !ok {
			break
		}
		row = append(row, field)
	}
	return row, r.cols.done, nil
}

// eof reports the end of the rows: io.EOF, or the read error that ended
// the input early.
func (r *Reader) eof() error {
	if err := r.src.ReadErr(); err != nil {
		return r.src.Error(err)
	}
	return io.EOF
}

// RowPosition returns the position where the row most recently returned by
// Read started.
func (r *Reader) RowPosition() ast.Position {
	return r.rowPos
}

// ReadAll reads all remaining rows. A successful call returns err == nil,
// not io.EOF.
func (r *Reader) ReadAll() ([]tabular.Row, error) {
	var rows []tabular.Row
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// All returns an iterator over the remaining rows. Iteration stops after
// the first error, which is yielded with a nil row.
//
//	for row, err := range dsv.NewReader(file, dsv.CSV).All() {
//	    if err != nil {
//	        // handle error
//	    }
//	    fmt.Println(row)
//	}
func (r *Reader) All() iter.Seq2[tabular.Row, error] {
	return func(yield func(tabular.Row, error) bool) {
		for {
			row, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}
