package dsv

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// EscapeRule selects how a quote character is escaped inside a quoted field.
type EscapeRule uint8

const (
	// EscapeDouble escapes the quote character by doubling it.
	EscapeDouble EscapeRule = iota
	// EscapeChar escapes the quote character with a distinct escape
	// character. The escape character itself may not appear in a quoted field.
	EscapeChar
	// EscapeDisallowed forbids escaping; a quote character always closes
	// a quoted field.
	EscapeDisallowed
)

// String returns the string representation of EscapeRule.
func (r EscapeRule) String() string {
	switch r {
	case EscapeDouble:
		return "double"
	case EscapeChar:
		return "char"
	case EscapeDisallowed:
		return "disallowed"
	default:
		return fmt.Sprintf("EscapeRule(%d)", r)
	}
}

// Escape is the escape rule of a quoted field. Char is only meaningful
// when Rule is EscapeChar.
type Escape struct {
	Rule EscapeRule
	Char rune
}

var (
	// Double escapes a quote character by doubling it, as in RFC 4180.
	Double = Escape{Rule: EscapeDouble}
	// Disallowed forbids escaping inside quoted fields.
	Disallowed = Escape{Rule: EscapeDisallowed}
)

// EscapeWith returns the rule escaping the quote character with c.
func EscapeWith(c rune) Escape {
	return Escape{Rule: EscapeChar, Char: c}
}

// String returns "double", "disallowed" or "char(c)".
func (e Escape) String() string {
	if e.Rule == EscapeChar {
		return fmt.Sprintf("char(%q)", e.Char)
	}
	return e.Rule.String()
}

// Quote is the column quoting policy. Only QuoteNever affects reading.
type Quote uint8

const (
	// QuoteNever never quotes; writing a value that needs quoting fails
	// with tabular.ErrMustQuote and the quote character is plain data when reading.
	QuoteNever Quote = iota
	// QuoteAlways quotes every field.
	QuoteAlways
	// QuoteMinimal quotes a field only when it contains the delimiter or a
	// character starting the line terminator.
	QuoteMinimal
)

var quoteNames = [...]string{
	QuoteNever:   "never",
	QuoteAlways:  "always",
	QuoteMinimal: "minimal",
}

// String returns the string representation of Quote.
func (q Quote) String() string {
	if int(q) < len(quoteNames) {
		return quoteNames[q]
	}
	return fmt.Sprintf("Quote(%d)", q)
}

// ParseQuote resolves a quoting policy by name, case-insensitively.
func ParseQuote(name string) (Quote, error) {
	for i, n := range quoteNames {
		if strings.EqualFold(n, name) {
			return Quote(i), nil
		}
	}
	return 0, fmt.Errorf("dsv: unknown quoting policy %q", name)
}

// Config holds the grammar of a DSV dialect. It is a value type: readers
// and writers copy it and never modify it, so one Config may be shared by
// any number of sessions.
type Config struct {
	// Delimiter separates the fields of a row.
	Delimiter rune
	// QuoteChar encloses quoted fields. Unused when Quote is QuoteNever.
	QuoteChar rune
	// Escape is the escape rule inside quoted fields.
	Escape Escape
	// LineTerminator separates rows.
	LineTerminator tabular.LineTerminator
	// Quote is the quoting policy.
	Quote Quote
}

// CSV is the RFC 4180 dialect.
var CSV = Config{
	Delimiter:      ',',
	QuoteChar:      '"',
	Escape:         Double,
	LineTerminator: tabular.CRLF,
	Quote:          QuoteMinimal,
}

// TSV is the IANA text/tab-separated-values dialect.
var TSV = Config{
	Delimiter:      '\t',
	QuoteChar:      0,
	Escape:         Disallowed,
	LineTerminator: tabular.CRLF,
	Quote:          QuoteNever,
}

// Preset returns a predefined dialect by name ("csv" or "tsv").
func Preset(name string) (Config, bool) {
	switch strings.ToLower(name) {
	case "csv":
		return CSV, true
	case "tsv":
		return TSV, true
	}
	return Config{}, false
}

// escapeChar returns the character that precedes an escaped quote
// character, if escaping is allowed.
func (c Config) escapeChar() (rune, bool) {
	switch c.Escape.Rule {
	case EscapeDouble:
		return c.QuoteChar, true
	case EscapeChar:
		return c.Escape.Char, true
	default:
		return 0, false
	}
}

// validChar reports whether r can be used as a grammar character.
func validChar(r rune) bool {
	return r != 0 && utf8.ValidRune(r) && r != utf8.RuneError
}

// Validate checks if the configuration describes a readable and writable grammar.
func (c Config) Validate() error {
	if !c.LineTerminator.Valid() {
		return &tabular.OptionsError{Field: "LineTerminator", Message: "unknown line terminator"}
	}
	if !validChar(c.Delimiter) {
		return &tabular.OptionsError{Field: "Delimiter", Message: "invalid delimiter"}
	}
	if c.LineTerminator.StartsWith(c.Delimiter) {
		return &tabular.OptionsError{Field: "Delimiter", Message: "delimiter starts the line terminator"}
	}
	if c.Quote > QuoteMinimal {
		return &tabular.OptionsError{Field: "Quote", Message: "unknown quoting policy"}
	}
	if c.Escape.Rule > EscapeDisallowed {
		return &tabular.OptionsError{Field: "Escape", Message: "unknown escape rule"}
	}
	if c.Quote == QuoteNever {
		return nil
	}
	if !validChar(c.QuoteChar) {
		return &tabular.OptionsError{Field: "QuoteChar", Message: "quoting enabled without a valid quote character"}
	}
	if c.QuoteChar == c.Delimiter {
		return &tabular.OptionsError{Field: "QuoteChar", Message: "quote character same as delimiter"}
	}
	if c.LineTerminator.StartsWith(c.QuoteChar) {
		return &tabular.OptionsError{Field: "QuoteChar", Message: "quote character starts the line terminator"}
	}
	if c.Escape.Rule == EscapeChar {
		if !validChar(c.Escape.Char) {
			return &tabular.OptionsError{Field: "Escape", Message: "invalid escape character"}
		}
		if c.Escape.Char == c.Delimiter {
			return &tabular.OptionsError{Field: "Escape", Message: "escape character same as delimiter"}
		}
	}
	return nil
}
