package fixed

import (
	"io"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// Scanner provides a streaming interface for reading fixed-width rows one
// at a time.
type Scanner struct {
	reader *Reader
	row    tabular.Row
	err    error
}

// NewScanner creates a new Scanner that reads fixed-width data from r.
func NewScanner(r io.Reader, cfg Config) *Scanner {
	return &Scanner{reader: NewReader(r, cfg)}
}

// Scan advances the scanner to the next row. It returns false at the end
// of the input or on error; see Err.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	row, err := s.reader.Read()
	if err != nil {
		s.row = nil
		if err != io.EOF {
			s.err = err
		}
		return false
	}
	s.row = row
	return true
}

// Row returns the current row.
func (s *Scanner) Row() tabular.Row {
	return s.row
}

// Err returns the first non-EOF error encountered by the Scanner.
func (s *Scanner) Err() error {
	return s.err
}
