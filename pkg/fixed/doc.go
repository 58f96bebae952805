// Package fixed reads and writes text with fixed-width columns.
//
// A Config lists the columns in order, each with a width, a pad character
// and a justification, plus the policy separating rows: nothing, a fixed
// total row width, or a line terminator.
//
//	cfg := fixed.Config{
//	    Columns: []fixed.Column{
//	        {Width: 5, PadWith: ' ', Justification: fixed.Left},
//	        {Width: 9, PadWith: '-', Justification: fixed.Right},
//	    },
//	    LineEnd: fixed.Terminated(tabular.LF),
//	}
//
//	rows, err := fixed.NewReader(strings.NewReader("ab   -----1234\n"), cfg).ReadAll()
//	// rows == []tabular.Row{{"ab", "1234"}}
//
// Widths are counted in characters (Unicode code points), not bytes.
// Reading trims the pad character from the padded side only, so data equal
// to the pad character on the justified side is kept.
package fixed
