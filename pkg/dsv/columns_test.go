package dsv

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/shapestone/shape-tabular/internal/tokenizer"
	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// collectColumns runs the column tokenizer over a single row of input.
func collectColumns(cfg Config, input string) ([]string, error) {
	src := tokenizer.NewSourceFromString(input)
	c := columns{src: src, cfg: cfg}
	var got []string
	for {
		field, ok, err := c.next()
		if err != nil {
			return got, err
		}
		if !ok {
			return got, nil
		}
		got = append(got, field)
	}
}

var (
	delimPipe  = Config{Delimiter: '|', QuoteChar: '"', Escape: Double, LineTerminator: tabular.CRLF, Quote: QuoteMinimal}
	quoteTilde = Config{Delimiter: ',', QuoteChar: '~', Escape: Double, LineTerminator: tabular.CRLF, Quote: QuoteMinimal}
)

func with(cfg Config, change func(*Config)) Config {
	change(&cfg)
	return cfg
}

func TestColumns(t *testing.T) {
	lf := with(CSV, func(c *Config) { c.LineTerminator = tabular.LF })
	single := with(CSV, func(c *Config) { c.QuoteChar = '\'' })

	tests := []struct {
		name  string
		cfg   Config
		input string
		want  []string
	}{
		{"empty input", CSV, "", nil},
		{"empty line CRLF", CSV, "\r\n", nil},
		{"empty line LF", lf, "\n", nil},
		{"single column", CSV, "abc", []string{"abc"}},
		{"single column pipe", delimPipe, "abc", []string{"abc"}},
		{"single character LF", lf, "x", []string{"x"}},
		{"single column line end", CSV, "foo\r\n", []string{"foo"}},
		{"single column LF line end", lf, "foo\n", []string{"foo"}},
		{"multi column", CSV, "foo,bar", []string{"foo", "bar"}},
		{"multi column pipe", delimPipe, "foo|bar", []string{"foo", "bar"}},
		{"multi column line end", CSV, "foo,bar\r\n", []string{"foo", "bar"}},
		{"multi column LF line end", lf, "foo,bar\n", []string{"foo", "bar"}},
		{"only a delimiter", CSV, ",\r\n", []string{"", ""}},
		{"whitespace is data", CSV, " \r\n", []string{" "}},
		{"quoting disabled", with(CSV, func(c *Config) { c.Quote = QuoteNever }), "\"foo,bar\"", []string{"\"foo", "bar\""}},
		{"empty quoted", CSV, `""`, []string{""}},
		{"empty quoted single quote", single, "''", []string{""}},
		{"empty quoted line end", CSV, "\"\"\r\n", []string{""}},
		{"empty quoted LF line end", lf, "\"\"\n", []string{""}},
		{"quoted", CSV, `"abc"`, []string{"abc"}},
		{"quoted tilde", quoteTilde, `~abc~`, []string{"abc"}},
		{"quoted with delimiter", CSV, `"a,b,c"`, []string{"a,b,c"}},
		{"quoted with custom delimiter", with(quoteTilde, func(c *Config) { c.Delimiter = '-' }), `~a-b-c~`, []string{"a-b-c"}},
		{"quoted line end", CSV, "\"abc\"\r\n", []string{"abc"}},
		{"quoted tilde LF line end", with(quoteTilde, func(c *Config) { c.LineTerminator = tabular.LF }), "~abc~\n", []string{"abc"}},
		{"line ending inside quotes", CSV, "\"Hello\r\nworld\"", []string{"Hello\r\nworld"}},
		{"doubled quote", CSV, `"Hello, ""quoted"" world"`, []string{`Hello, "quoted" world`}},
		{"distinct escape", with(CSV, func(c *Config) { c.Escape = EscapeWith('$') }), `"Hello, $"quoted$" world"`, []string{`Hello, "quoted" world`}},
		{"escape char equal to quote doubles", with(CSV, func(c *Config) { c.Escape = EscapeWith('"') }), `"a""b"`, []string{`a"b`}},
		{"escape disallowed", with(CSV, func(c *Config) { c.Escape = Disallowed }), `"a,b"`, []string{"a,b"}},
		{"multi column quoted", CSV, "\"foo\",\"bar\"", []string{"foo", "bar"}},
		{"multi column quoted tilde", quoteTilde, "~foo~,~bar~", []string{"foo", "bar"}},
		{"multi column quoted line end", CSV, "\"foo\",\"bar\"\r\n", []string{"foo", "bar"}},
		{"unquoted trailing delimiter", CSV, "a,1,c2,", []string{"a", "1", "c2", ""}},
		{"unquoted trailing delimiter pipe", delimPipe, "a|1|c2|", []string{"a", "1", "c2", ""}},
		{"unquoted leading delimiter", CSV, ",1,c2", []string{"", "1", "c2"}},
		{"quoted trailing delimiter", CSV, `"a","1","c2",`, []string{"a", "1", "c2", ""}},
		{"quoted leading delimiter", CSV, `,"1","c2"`, []string{"", "1", "c2"}},
		{"quote inside unquoted field is data", CSV, `a"b,c`, []string{`a"b`, "c"}},
		{"NEL terminator", with(CSV, func(c *Config) { c.LineTerminator = tabular.NEL }), "a,b\u0085c", []string{"a", "b"}},
		{"PS terminator", with(CSV, func(c *Config) { c.LineTerminator = tabular.PS }), "a\u2029", []string{"a"}},
		{"CR terminator leaves LF as data", with(CSV, func(c *Config) { c.LineTerminator = tabular.CR }), "a\r\nb", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectColumns(tt.cfg, tt.input)
			if err != nil {
				t.Fatalf("columns(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("columns(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestColumns_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		input   string
		wantErr error
	}{
		{"invalid line end", CSV, "foo\r\r", tabular.ErrInvalidLineEnding},
		{"quoted invalid line end", CSV, "\"abc\"\r\r", tabular.ErrInvalidLineEnding},
		{"truncated line end", CSV, "foo\r", tabular.ErrUnexpectedEndOfInput},
		{"escape char does not end value", with(CSV, func(c *Config) { c.Escape = EscapeWith('~') }), "\"Hello~\r\nworld\"", tabular.ErrExpectingQuoteChar},
		{"escape char at end of input", with(CSV, func(c *Config) { c.Escape = EscapeWith('~') }), "\"Hello~", tabular.ErrExpectingQuoteChar},
		{"character after closing quote", CSV, `"ab"c"`, tabular.ErrExpectingLineTerminatorOrDelimiter},
		{"escaped quote before delimiter", CSV, `"foo"","bar"`, tabular.ErrExpectingLineTerminatorOrDelimiter},
		{"doubled quote with escape disallowed", with(CSV, func(c *Config) { c.Escape = Disallowed }), `"a""b"`, tabular.ErrExpectingLineTerminatorOrDelimiter},
		{"unmatched quote", CSV, `"abc`, tabular.ErrUnexpectedEndOfInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collectColumns(tt.cfg, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("columns(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
