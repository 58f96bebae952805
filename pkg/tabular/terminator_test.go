package tabular_test

import (
	"testing"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

func TestLineTerminator(t *testing.T) {
	tests := []struct {
		lt    tabular.LineTerminator
		seq   string
		first rune
		len   int
		name  string
	}{
		{tabular.LF, "\n", '\n', 1, "LF"},
		{tabular.CR, "\r", '\r', 1, "CR"},
		{tabular.CRLF, "\r\n", '\r', 2, "CRLF"},
		{tabular.VT, "\v", '\v', 1, "VT"},
		{tabular.FF, "\f", '\f', 1, "FF"},
		{tabular.NEL, "\u0085", '\u0085', 1, "NEL"},
		{tabular.LS, "\u2028", '\u2028', 1, "LS"},
		{tabular.PS, "\u2029", '\u2029', 1, "PS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.lt.Valid() {
				t.Fatalf("Valid() = false")
			}
			if got := tt.lt.Sequence(); got != tt.seq {
				t.Errorf("Sequence() = %q, want %q", got, tt.seq)
			}
			if !tt.lt.StartsWith(tt.first) {
				t.Errorf("StartsWith(%q) = false", tt.first)
			}
			if tt.lt.StartsWith('x') {
				t.Error("StartsWith('x') = true")
			}
			if got := tt.lt.Len(); got != tt.len {
				t.Errorf("Len() = %d, want %d", got, tt.len)
			}
			if got := tt.lt.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}

			text, err := tt.lt.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText() error = %v", err)
			}
			var back tabular.LineTerminator
			if err := back.UnmarshalText(text); err != nil {
				t.Fatalf("UnmarshalText(%q) error = %v", text, err)
			}
			if back != tt.lt {
				t.Errorf("UnmarshalText(%q) = %v, want %v", text, back, tt.lt)
			}
		})
	}
}

func TestLineTerminator_CRLFDoesNotStartWithLF(t *testing.T) {
	if tabular.CRLF.StartsWith('\n') {
		t.Error("CRLF.StartsWith('\\n') = true, want false")
	}
}

func TestLineTerminator_Unknown(t *testing.T) {
	lt := tabular.LineTerminator(200)
	if lt.Valid() {
		t.Error("Valid() = true for unknown terminator")
	}
	if lt.Sequence() != "" {
		t.Errorf("Sequence() = %q, want empty", lt.Sequence())
	}
	if lt.StartsWith('\n') {
		t.Error("StartsWith() = true for unknown terminator")
	}
	if got := lt.String(); got != "LineTerminator(200)" {
		t.Errorf("String() = %q", got)
	}
	if _, err := lt.MarshalText(); err == nil {
		t.Error("MarshalText() succeeded for unknown terminator")
	}
}

func TestParseLineTerminator(t *testing.T) {
	if lt, err := tabular.ParseLineTerminator("crlf"); err != nil || lt != tabular.CRLF {
		t.Errorf("ParseLineTerminator(crlf) = %v, %v", lt, err)
	}
	if _, err := tabular.ParseLineTerminator("newline"); err == nil {
		t.Error("ParseLineTerminator(newline) succeeded, want error")
	}
}
