package fixed_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/shapestone/shape-tabular/pkg/fixed"
	"github.com/shapestone/shape-tabular/pkg/tabular"
)

var (
	column1 = fixed.Column{Width: 3, PadWith: ' ', Justification: fixed.Right}
	column2 = fixed.Column{Width: 1, PadWith: '#', Justification: fixed.Right}
	column3 = fixed.Column{Width: 5, PadWith: '-', Justification: fixed.Left}
)

func TestReader_ReadAll(t *testing.T) {
	threeColumns := []fixed.Column{column1, column2, column3}

	tests := []struct {
		name  string
		cfg   fixed.Config
		input string
		want  []tabular.Row
	}{
		{
			name:  "empty input",
			cfg:   fixed.Config{Columns: threeColumns, LineEnd: fixed.Terminated(tabular.CRLF)},
			input: "",
			want:  nil,
		},
		{
			name:  "terminated rows",
			cfg:   fixed.Config{Columns: threeColumns, LineEnd: fixed.Terminated(tabular.CRLF)},
			input: " aabccc--\r\n  a#-----",
			want:  []tabular.Row{{"aa", "b", "ccc"}, {"a", "", ""}},
		},
		{
			name:  "terminated rows with final terminator",
			cfg:   fixed.Config{Columns: threeColumns, LineEnd: fixed.Terminated(tabular.CRLF)},
			input: " aabccc--\r\n  a#-----\r\n",
			want:  []tabular.Row{{"aa", "b", "ccc"}, {"a", "", ""}},
		},
		{
			name:  "fixed row width",
			cfg:   fixed.Config{Columns: threeColumns, LineEnd: fixed.FixedRowWidth(10)},
			input: " aabccc--   a#----- ",
			want:  []tabular.Row{{"aa", "b", "ccc"}, {"a", "", ""}},
		},
		{
			name:  "no line end",
			cfg:   fixed.Config{Columns: threeColumns, LineEnd: fixed.NoLineEnd()},
			input: " aabccc--  a#-----",
			want:  []tabular.Row{{"aa", "b", "ccc"}, {"a", "", ""}},
		},
		{
			name: "zero width first column",
			cfg: fixed.Config{
				Columns: []fixed.Column{{Width: 0, PadWith: ' '}, column1},
				LineEnd: fixed.Terminated(tabular.LF),
			},
			input: "abc\ndef\n",
			want:  []tabular.Row{{"", "abc"}, {"", "def"}},
		},
		{
			name: "only zero width columns",
			cfg: fixed.Config{
				Columns: []fixed.Column{{Width: 0, PadWith: ' '}},
				LineEnd: fixed.Terminated(tabular.LF),
			},
			input: "\n\n",
			want:  []tabular.Row{{""}, {""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fixed.NewReader(strings.NewReader(tt.input), tt.cfg).ReadAll()
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ReadAll() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReader_ReadError(t *testing.T) {
	readErr := errors.New("connection reset")
	cfg := fixed.Config{Columns: []fixed.Column{column1, column2}, LineEnd: fixed.Terminated(tabular.LF)}

	for name, input := range map[string]string{
		"at row boundary": "aaab\n",
		"inside column":   "aaab\naa",
	} {
		t.Run(name, func(t *testing.T) {
			r := fixed.NewReader(io.MultiReader(strings.NewReader(input), iotest.ErrReader(readErr)), cfg)
			row, err := r.Read()
			if err != nil {
				t.Fatalf("first Read() error = %v", err)
			}
			if diff := cmp.Diff(tabular.Row{"aaa", "b"}, row); diff != "" {
				t.Errorf("first Read() mismatch (-want +got):\n%s", diff)
			}
			if _, err := r.Read(); !errors.Is(err, readErr) {
				t.Errorf("second Read() error = %v, want %v", err, readErr)
			}
		})
	}
}

func TestReader_ErrorEndsStream(t *testing.T) {
	cfg := fixed.Config{Columns: []fixed.Column{column1, column2}, LineEnd: fixed.Terminated(tabular.LF)}
	r := fixed.NewReader(strings.NewReader("aaab\naa"), cfg)

	row, err := r.Read()
	if err != nil {
		t.Fatalf("first Read() error = %v", err)
	}
	if diff := cmp.Diff(tabular.Row{"aaa", "b"}, row); diff != "" {
		t.Errorf("first Read() mismatch (-want +got):\n%s", diff)
	}

	_, err = r.Read()
	if !errors.Is(err, tabular.ErrUnexpectedEndOfInput) {
		t.Fatalf("second Read() error = %v, want ErrUnexpectedEndOfInput", err)
	}
	var pe *tabular.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("second Read() error type = %T, want *tabular.ParseError", err)
	}
	if _, err := r.Read(); err != io.EOF {
		t.Errorf("Read() after error = %v, want io.EOF", err)
	}
}

func TestReader_InvalidConfig(t *testing.T) {
	r := fixed.NewReader(strings.NewReader("abc"), fixed.Config{})
	_, err := r.Read()
	var oe *tabular.OptionsError
	if !errors.As(err, &oe) {
		t.Fatalf("Read() error = %v, want *tabular.OptionsError", err)
	}
	if _, err := r.Read(); err != io.EOF {
		t.Errorf("Read() after invalid config = %v, want io.EOF", err)
	}
}

func TestReader_ColumnsAreCopied(t *testing.T) {
	columns := []fixed.Column{column1}
	r := fixed.NewReader(strings.NewReader("  a\n"), fixed.Config{Columns: columns, LineEnd: fixed.Terminated(tabular.LF)})
	columns[0].Width = 1

	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if diff := cmp.Diff(tabular.Row{"a"}, row); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
	if got := r.Config().Columns[0].Width; got != 3 {
		t.Errorf("Config().Columns[0].Width = %d, want 3", got)
	}
}

func TestReader_All(t *testing.T) {
	cfg := fixed.Config{Columns: []fixed.Column{column1}, LineEnd: fixed.NoLineEnd()}
	var got []tabular.Row
	for row, err := range fixed.NewReader(strings.NewReader("  a bbccc"), cfg).All() {
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		got = append(got, row)
	}
	want := []tabular.Row{{"a"}, {"bb"}, {"ccc"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestScanner(t *testing.T) {
	cfg := fixed.Config{Columns: []fixed.Column{column1, column2}, LineEnd: fixed.Terminated(tabular.LF)}
	s := fixed.NewScanner(strings.NewReader("aaab\n  c#\nxy"), cfg)
	var got []tabular.Row
	for s.Scan() {
		got = append(got, s.Row())
	}
	if diff := cmp.Diff([]tabular.Row{{"aaa", "b"}, {"c", ""}}, got); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(s.Err(), tabular.ErrUnexpectedEndOfInput) {
		t.Errorf("Err() = %v, want ErrUnexpectedEndOfInput", s.Err())
	}
}
