// Package dsv reads and writes delimiter-separated values such as CSV and
// TSV.
//
// A dialect is described by a Config: delimiter, quote character, escape
// rule, line terminator and quoting policy. CSV (RFC 4180) and TSV (IANA
// text/tab-separated-values) are provided as presets; other dialects are
// plain struct literals:
//
//	pipe := dsv.Config{
//	    Delimiter:      '|',
//	    QuoteChar:      '~',
//	    Escape:         dsv.EscapeWith('\\'),
//	    LineTerminator: tabular.LF,
//	    Quote:          dsv.QuoteMinimal,
//	}
//
// # Reading
//
// Reader pulls one row per call from any io.Reader (or a Shape tokenizer
// stream). Characters are decoded as UTF-8 code points, so Unicode line
// terminators such as NEL, LS and PS are matched exactly. Blank lines are
// skipped; a trailing delimiter produces a trailing empty field:
//
//	r := dsv.NewReader(strings.NewReader("a,1,c2,\r\n\r\nb,2,c3,\r\n"), dsv.CSV)
//	for row, err := range r.All() {
//	    if err != nil {
//	        // handle error
//	    }
//	    fmt.Println(row) // [a 1 c2 ] then [b 2 c3 ]
//	}
//
// # Writing
//
// Writer inverts the same grammar. Fields are quoted according to the
// quoting policy and quote characters are escaped according to the escape
// rule. Values the dialect cannot represent are rejected instead of being
// written ambiguously:
//
//	w := dsv.NewWriter(os.Stdout, dsv.TSV)
//	err := w.Write(tabular.Row{"a\tb"}) // errors.Is(err, tabular.ErrMustQuote)
package dsv
