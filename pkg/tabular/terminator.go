package tabular

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LineTerminator identifies the character sequence that ends a row.
type LineTerminator uint8

const (
	// LF is a line feed, "\n".
	LF LineTerminator = iota
	// CR is a carriage return, "\r".
	CR
	// CRLF is a carriage return followed by a line feed, "\r\n".
	CRLF
	// VT is a vertical tab, "\v".
	VT
	// FF is a form feed, "\f".
	FF
	// NEL is the Unicode next line character, U+0085.
	NEL
	// LS is the Unicode line separator, U+2028.
	LS
	// PS is the Unicode paragraph separator, U+2029.
	PS
)

var terminatorSequences = [...]string{
	LF:   "\n",
	CR:   "\r",
	CRLF: "\r\n",
	VT:   "\v",
	FF:   "\f",
	NEL:  "\u0085",
	LS:   "\u2028",
	PS:   "\u2029",
}

var terminatorNames = [...]string{
	LF:   "LF",
	CR:   "CR",
	CRLF: "CRLF",
	VT:   "VT",
	FF:   "FF",
	NEL:  "NEL",
	LS:   "LS",
	PS:   "PS",
}

// Valid reports whether lt is one of the known terminators.
func (lt LineTerminator) Valid() bool {
	return int(lt) < len(terminatorSequences)
}

// Sequence returns the exact literal text of the terminator.
// It returns an empty string for an unknown terminator.
func (lt LineTerminator) Sequence() string {
	if !lt.Valid() {
		return ""
	}
	return terminatorSequences[lt]
}

// StartsWith reports whether r is the first character of the terminator.
func (lt LineTerminator) StartsWith(r rune) bool {
	seq := lt.Sequence()
	if seq == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(seq)
	return first == r
}

// Len returns the number of characters in the terminator sequence.
func (lt LineTerminator) Len() int {
	return utf8.RuneCountInString(lt.Sequence())
}

// String returns the name of the terminator.
func (lt LineTerminator) String() string {
	if !lt.Valid() {
		return fmt.Sprintf("LineTerminator(%d)", uint8(lt))
	}
	return terminatorNames[lt]
}

// MarshalText implements encoding.TextMarshaler.
func (lt LineTerminator) MarshalText() ([]byte, error) {
	if !lt.Valid() {
		return nil, fmt.Errorf("tabular: unknown line terminator %d", uint8(lt))
	}
	return []byte(lt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (lt *LineTerminator) UnmarshalText(text []byte) error {
	parsed, err := ParseLineTerminator(string(text))
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}

// ParseLineTerminator resolves a terminator by name, case-insensitively.
func ParseLineTerminator(name string) (LineTerminator, error) {
	for i, n := range terminatorNames {
		if strings.EqualFold(n, name) {
			return LineTerminator(i), nil
		}
	}
	return 0, fmt.Errorf("tabular: unknown line terminator %q", name)
}
