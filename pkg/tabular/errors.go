package tabular

import (
	"errors"
	"fmt"
)

// Reading errors
var (
	// ErrInvalidLineEnding indicates that the start of the line terminator
	// was seen but the characters after it did not match.
	ErrInvalidLineEnding = errors.New("invalid line ending")

	// ErrExpectingQuoteChar indicates that an escape character inside a
	// quoted field was not followed by the quote character.
	ErrExpectingQuoteChar = errors.New("expecting quote char")

	// ErrExpectingLineTerminatorOrDelimiter indicates an unexpected
	// character after the closing quote of a field.
	ErrExpectingLineTerminatorOrDelimiter = errors.New("expecting line terminator or delimiter")

	// ErrUnexpectedEndOfInput indicates that the input ended inside a quoted
	// field, a line terminator or a fixed-width column.
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
)

// Writing errors
var (
	// ErrMustQuote indicates a value that needs quoting while quoting is disabled.
	ErrMustQuote = errors.New("value should be quoted")

	// ErrEscapeDisallowed indicates a quote character inside a quoted value
	// while escaping is disallowed.
	ErrEscapeDisallowed = errors.New("escaping disallowed")

	// ErrEscapeCharInQuote indicates the distinct escape character appearing
	// verbatim inside a quoted value.
	ErrEscapeCharInQuote = errors.New("escape character not allowed in quoted value")

	// ErrColumnTooLong indicates a value wider than its fixed-width column.
	ErrColumnTooLong = errors.New("column too long")

	// ErrRowTooLong indicates that the columns of a row exceed the fixed row width.
	ErrRowTooLong = errors.New("row too long")

	// ErrFieldCount indicates a row with a different number of fields than
	// the configured columns.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrEmptyRow indicates a row without fields, which DSV cannot represent.
	ErrEmptyRow = errors.New("row has no fields")
)

// ParseError represents a reading error with position information.
type ParseError struct {
	// StartLine is the line where the failing row started (1-indexed).
	StartLine int
	// Line is the line where the error occurred (1-indexed).
	Line int
	// Column is the character column where the error occurred (1-indexed).
	Column int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.StartLine == e.Line {
		return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error on line %d (started line %d), column %d: %v",
		e.Line, e.StartLine, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError represents a writing error for a specific field of a row.
type WriteError struct {
	// Row is the index of the row among those written by the writer (0-indexed).
	Row int
	// Field is the index of the offending field, or -1 for row level errors.
	Field int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with the row and field index.
func (e *WriteError) Error() string {
	if e.Field < 0 {
		return fmt.Sprintf("write error on row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("write error on row %d, field %d: %v", e.Row, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "tabular: invalid " + e.Field + ": " + e.Message
}
