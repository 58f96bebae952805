// Package tabular holds the pieces shared by the DSV and fixed-width codecs:
// the Row type, the line terminator catalog, the error taxonomy and the
// bridge to Shape's AST.
//
// Reading is lazy. Rows are produced one at a time by a RowReader and no row
// is read before it is requested. The codecs themselves live in the
// sub-packages:
//
//   - pkg/dsv: delimiter-separated values (CSV, TSV and custom dialects)
//   - pkg/fixed: fixed-width columns with padding and justification
//
// # Errors
//
// Reading errors are reported as *ParseError and writing errors as
// *WriteError. Both wrap one of the sentinel errors of this package, so
// callers test for a kind with errors.Is:
//
//	if errors.Is(err, tabular.ErrInvalidLineEnding) {
//	    // handle error
//	}
//
// Every error is terminal for the stream that produced it: a reader returns
// io.EOF after its first error, and bytes already handed to a writer's sink
// are not rolled back.
//
// # Thread Safety
//
// Configuration values are immutable and may be shared between any number of
// readers and writers. A single Reader or Writer is not safe for concurrent
// use.
package tabular
