package dsv

import (
	"strings"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// candidate delimiters, in order of preference on ties
var sniffDelimiters = []rune{',', '\t', ';', '|'}

// candidate quote characters, in order of preference on ties
var sniffQuotes = []rune{'"', '\''}

// Sniffer detects the DSV dialect (delimiter, quote character and line
// terminator) of a sample of data.
type Sniffer struct {
	sample     string
	delimiter  rune
	quote      rune
	terminator tabular.LineTerminator
	analyzed   bool
}

// NewSniffer creates a new Sniffer with a sample of DSV data.
// For best results, provide at least 2-3 lines of data.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// analyze performs dialect detection on the sample.
func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.quote = s.detectQuote()
	s.terminator = s.detectLineTerminator()
	s.delimiter = s.detectDelimiter()
	s.analyzed = true
}

// DetectDelimiter returns the detected field delimiter.
// Common delimiters checked: comma, tab, semicolon, pipe.
func (s *Sniffer) DetectDelimiter() rune {
	s.analyze()
	return s.delimiter
}

// DetectQuoteChar returns the detected quote character, or 0 when the
// sample contains no quoted field.
func (s *Sniffer) DetectQuoteChar() rune {
	s.analyze()
	return s.quote
}

// DetectLineTerminator returns the first line terminator found outside
// quoted fields. CRLF is assumed when the sample holds a single line.
func (s *Sniffer) DetectLineTerminator() tabular.LineTerminator {
	s.analyze()
	return s.terminator
}

// Config returns a Config for the detected dialect. A tab separated sample
// without quoted fields yields TSV-style quoting; everything else quotes
// minimally and doubles quote characters.
func (s *Sniffer) Config() Config {
	s.analyze()
	if s.quote == 0 && s.delimiter == '\t' {
		cfg := TSV
		cfg.LineTerminator = s.terminator
		return cfg
	}
	cfg := CSV
	cfg.Delimiter = s.delimiter
	cfg.LineTerminator = s.terminator
	if s.quote != 0 {
		cfg.QuoteChar = s.quote
	}
	return cfg
}

// detectQuote counts quote characters opening a field, that is at the start
// of the sample or after a candidate delimiter or a line break.
func (s *Sniffer) detectQuote() rune {
	best, bestScore := rune(0), 0
	for _, q := range sniffQuotes {
		score := 0
		prev := rune(-1)
		for _, r := range s.sample {
			if r == q && (prev == -1 || isSniffBoundary(prev)) {
				score++
			}
			prev = r
		}
		if score > bestScore {
			best, bestScore = q, score
		}
	}
	return best
}

func isSniffBoundary(r rune) bool {
	if r == '\n' || r == '\r' {
		return true
	}
	for _, d := range sniffDelimiters {
		if r == d {
			return true
		}
	}
	return false
}

// detectLineTerminator returns the first terminator outside quotes.
func (s *Sniffer) detectLineTerminator() tabular.LineTerminator {
	inQuotes := false
	runes := []rune(s.sample)
	for i, r := range runes {
		if s.quote != 0 && r == s.quote {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		switch r {
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				return tabular.CRLF
			}
			return tabular.CR
		case '\n':
			return tabular.LF
		case '\u0085':
			return tabular.NEL
		case '\u2028':
			return tabular.LS
		case '\u2029':
			return tabular.PS
		}
	}
	return tabular.CRLF
}

// detectDelimiter scores each candidate by its count on the first line,
// with a bonus when the count is the same on every line.
func (s *Sniffer) detectDelimiter() rune {
	if s.sample == "" {
		return ','
	}

	lines := strings.Split(s.sample, s.terminator.Sequence())
	scores := make(map[rune]int)
	for _, delim := range sniffDelimiters {
		counts := make([]int, 0, len(lines))
		for _, line := range lines {
			if line == "" {
				continue
			}
			counts = append(counts, s.countDelimiter(line, delim))
		}

		if len(counts) > 0 && counts[0] > 0 {
			consistent := true
			for i := 1; i < len(counts); i++ {
				if counts[i] != counts[0] {
					consistent = false
					break
				}
			}
			if consistent {
				scores[delim] = counts[0] * 10
			} else {
				scores[delim] = counts[0]
			}
		}
	}

	best := ','
	bestScore := 0
	for _, delim := range sniffDelimiters {
		if scores[delim] > bestScore {
			best = delim
			bestScore = scores[delim]
		}
	}
	return best
}

// countDelimiter counts occurrences of a delimiter, ignoring quoted sections.
func (s *Sniffer) countDelimiter(line string, delim rune) int {
	count := 0
	inQuotes := false

	for _, ch := range line {
		if s.quote != 0 && ch == s.quote {
			inQuotes = !inQuotes
		} else if ch == delim && !inQuotes {
			count++
		}
	}

	return count
}
