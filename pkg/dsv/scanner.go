package dsv

import (
	"io"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// Scanner provides a streaming interface for reading rows one at a time.
// Only the current row is held in memory.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := dsv.NewScanner(file, dsv.CSV)
//	for scanner.Scan() {
//	    fmt.Println(scanner.Row())
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	reader *Reader
	row    tabular.Row
	err    error
}

// NewScanner creates a new Scanner that reads DSV data from r.
func NewScanner(r io.Reader, cfg Config) *Scanner {
	return &Scanner{reader: NewReader(r, cfg)}
}

// Scan advances the scanner to the next row.
// It returns false when there are no more rows or an error occurs.
// After Scan returns false, the Err method will return any error that occurred.
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
// This should only be called after Scan() returns true.
func (s *Scanner) Row() tabular.Row {
	return s.row
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or at EOF.
func (s *Scanner) Err() error {
	return s.err
}
