package fixed

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// Justification selects the side of a column the data is aligned to.
// Padding goes on the opposite side.
type Justification uint8

const (
	// Left aligns data to the left and pads on the right.
	Left Justification = iota
	// Right aligns data to the right and pads on the left.
	Right
)

var justificationNames = [...]string{
	Left:  "left",
	Right: "right",
}

// String returns the string representation of Justification.
func (j Justification) String() string {
	if int(j) < len(justificationNames) {
		return justificationNames[j]
	}
	return fmt.Sprintf("Justification(%d)", j)
}

// ParseJustification resolves a justification by name, case-insensitively.
func ParseJustification(name string) (Justification, error) {
	for i, n := range justificationNames {
		if strings.EqualFold(n, name) {
			return Justification(i), nil
		}
	}
	return 0, fmt.Errorf("fixed: unknown justification %q", name)
}

// Column describes one fixed-width column.
type Column struct {
	// Width is the number of characters of the column. A zero width column
	// always holds an empty field.
	Width int
	// PadWith fills the unused part of the column.
	PadWith rune
	// Justification is the side the data is aligned to.
	Justification Justification
}

// LineEndKind selects how consecutive rows are separated.
type LineEndKind uint8

const (
	// LineEndNone places the columns of consecutive rows next to each other.
	LineEndNone LineEndKind = iota
	// LineEndFixedWidth pads every row to a fixed total width. The filler
	// is ignored when reading.
	LineEndFixedWidth
	// LineEndTerminator ends every row with a line terminator.
	LineEndTerminator
)

var lineEndNames = [...]string{
	LineEndNone:       "none",
	LineEndFixedWidth: "fixed-width",
	LineEndTerminator: "terminator",
}

// String returns the string representation of LineEndKind.
func (k LineEndKind) String() string {
	if int(k) < len(lineEndNames) {
		return lineEndNames[k]
	}
	return fmt.Sprintf("LineEndKind(%d)", k)
}

// ParseLineEndKind resolves a line ending kind by name, case-insensitively.
func ParseLineEndKind(name string) (LineEndKind, error) {
	for i, n := range lineEndNames {
		if strings.EqualFold(n, name) {
			return LineEndKind(i), nil
		}
	}
	return 0, fmt.Errorf("fixed: unknown line ending %q", name)
}

// LineEnding is the row separation policy. Width is only meaningful for
// LineEndFixedWidth and Terminator only for LineEndTerminator; use the
// constructors below to build one.
type LineEnding struct {
	Kind       LineEndKind
	Width      int
	Terminator tabular.LineTerminator
}

// NoLineEnd returns the policy placing rows next to each other.
func NoLineEnd() LineEnding {
	return LineEnding{Kind: LineEndNone}
}

// FixedRowWidth returns the policy padding every row to width characters.
func FixedRowWidth(width int) LineEnding {
	return LineEnding{Kind: LineEndFixedWidth, Width: width}
}

// Terminated returns the policy ending every row with lt.
func Terminated(lt tabular.LineTerminator) LineEnding {
	return LineEnding{Kind: LineEndTerminator, Terminator: lt}
}

// String returns "none", "fixed-width(n)" or "terminator(name)".
func (l LineEnding) String() string {
	switch l.Kind {
	case LineEndFixedWidth:
		return fmt.Sprintf("fixed-width(%d)", l.Width)
	case LineEndTerminator:
		return fmt.Sprintf("terminator(%s)", l.Terminator)
	default:
		return l.Kind.String()
	}
}

// Config holds the grammar of a fixed-width format. Column order defines
// field order in every row.
type Config struct {
	Columns []Column
	LineEnd LineEnding
}

// Width returns the sum of the column widths.
func (c Config) Width() int {
	total := 0
	for _, col := range c.Columns {
		total += col.Width
	}
	return total
}

// clone returns a Config that does not share its column slice with c, so
// that a session is not affected by later changes to the caller's slice.
func (c Config) clone() Config {
	c.Columns = append([]Column(nil), c.Columns...)
	return c
}

// Validate checks if the configuration describes a usable grammar.
func (c Config) Validate() error {
	if len(c.Columns) == 0 {
		return &tabular.OptionsError{Field: "Columns", Message: "at least one column is required"}
	}
	for i, col := range c.Columns {
		if col.Width < 0 {
			return &tabular.OptionsError{Field: fmt.Sprintf("Columns[%d].Width", i), Message: "width cannot be negative"}
		}
		if col.PadWith == 0 || !utf8.ValidRune(col.PadWith) || col.PadWith == utf8.RuneError {
			return &tabular.OptionsError{Field: fmt.Sprintf("Columns[%d].PadWith", i), Message: "invalid pad character"}
		}
		if col.Justification > Right {
			return &tabular.OptionsError{Field: fmt.Sprintf("Columns[%d].Justification", i), Message: "unknown justification"}
		}
	}

	switch c.LineEnd.Kind {
	case LineEndNone:
		if c.Width() == 0 {
			return &tabular.OptionsError{Field: "Columns", Message: "rows of zero width need a line ending"}
		}
	case LineEndFixedWidth:
		if c.LineEnd.Width < 0 {
			return &tabular.OptionsError{Field: "LineEnd.Width", Message: "row width cannot be negative"}
		}
		if c.LineEnd.Width == 0 && c.Width() == 0 {
			return &tabular.OptionsError{Field: "LineEnd.Width", Message: "rows of zero width need a line ending"}
		}
	case LineEndTerminator:
		if !c.LineEnd.Terminator.Valid() {
			return &tabular.OptionsError{Field: "LineEnd.Terminator", Message: "unknown line terminator"}
		}
	default:
		return &tabular.OptionsError{Field: "LineEnd", Message: "unknown line ending"}
	}
	return nil
}
