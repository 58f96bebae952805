package options

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/shapestone/shape-tabular/pkg/dsv"
	"github.com/shapestone/shape-tabular/pkg/fixed"
	"github.com/shapestone/shape-tabular/pkg/tabular"
)

const (
	KindDSV   = "dsv"
	KindFixed = "fixed"
)

// FormatOptions describes one side of a conversion. Empty DSV fields keep
// the value of the preset.
type FormatOptions struct {
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`

	Preset         string `json:"preset,omitempty" yaml:"preset,omitempty" mapstructure:"preset"`
	Delimiter      string `json:"delimiter,omitempty" yaml:"delimiter,omitempty" mapstructure:"delimiter"`
	QuoteChar      string `json:"quoteChar,omitempty" yaml:"quoteChar,omitempty" mapstructure:"quoteChar"`
	Escape         string `json:"escape,omitempty" yaml:"escape,omitempty" mapstructure:"escape"`
	Quoting        string `json:"quoting,omitempty" yaml:"quoting,omitempty" mapstructure:"quoting"`
	LineTerminator string `json:"lineTerminator,omitempty" yaml:"lineTerminator,omitempty" mapstructure:"lineTerminator"`

	// Columns holds fixed-width column specs, "width[:justify[:pad]]".
	Columns  []string `json:"columns,omitempty" yaml:"columns,omitempty" mapstructure:"columns"`
	LineEnd  string   `json:"lineEnd,omitempty" yaml:"lineEnd,omitempty" mapstructure:"lineEnd"`
	RowWidth int      `json:"rowWidth,omitempty" yaml:"rowWidth,omitempty" mapstructure:"rowWidth"`
}

func NewFormatOptions() *FormatOptions {
	return &FormatOptions{
		Kind:   KindDSV,
		Preset: "csv",
	}
}

// AddFlags registers the format flags, each name prefixed with prefix.
// Current values of o are used as defaults.
func (o *FormatOptions) AddFlags(fs *pflag.FlagSet, prefix, side string) {
	fs.StringVar(&o.Kind, prefix+"kind", o.Kind, "Kind of the "+side+" format, one of dsv or fixed.")
	fs.StringVar(&o.Preset, prefix+"preset", o.Preset, "DSV preset the "+side+" dialect starts from, csv or tsv.")
	fs.StringVar(&o.Delimiter, prefix+"delimiter", o.Delimiter, "Field delimiter of the "+side+" DSV dialect. Accepts a single character, tab or space.")
	fs.StringVar(&o.QuoteChar, prefix+"quote-char", o.QuoteChar, "Quote character of the "+side+" DSV dialect.")
	fs.StringVar(&o.Escape, prefix+"escape", o.Escape, ""+
		"Escape rule inside quoted "+side+" fields: double, disallowed, or the "+
		"escape character itself.")
	fs.StringVar(&o.Quoting, prefix+"quoting", o.Quoting, "Quoting policy of the "+side+" DSV dialect: never, always or minimal.")
	fs.StringVar(&o.LineTerminator, prefix+"line-terminator", o.LineTerminator, ""+
		"Line terminator of the "+side+" rows: LF, CR, CRLF, VT, FF, NEL, LS or PS.")
	fs.StringSliceVar(&o.Columns, prefix+"columns", o.Columns, ""+
		"Fixed-width "+side+" columns as width[:justify[:pad]], for example "+
		"10,8:right:0. Justify defaults to left and pad to a space.")
	fs.StringVar(&o.LineEnd, prefix+"line-end", o.LineEnd, ""+
		"Fixed-width "+side+" row separation: none, fixed-width or terminator. "+
		"Defaults to terminator.")
	fs.IntVar(&o.RowWidth, prefix+"row-width", o.RowWidth, "Total row width of fixed-width "+side+" rows when --"+prefix+"line-end=fixed-width.")
}

// Validate reports every problem with the options.
func (o *FormatOptions) Validate() []error {
	var errs []error
	switch o.Kind {
	case KindDSV:
		cfg, err := o.DSVConfig()
		if err != nil {
			errs = append(errs, err)
		} else if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}
	case KindFixed:
		cfg, err := o.FixedConfig()
		if err != nil {
			errs = append(errs, err)
		} else if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("unknown format kind %q, must be %s or %s", o.Kind, KindDSV, KindFixed))
	}
	return errs
}

// DSVConfig builds the DSV grammar described by the options.
func (o *FormatOptions) DSVConfig() (dsv.Config, error) {
	preset := o.Preset
	if preset == "" {
		preset = "csv"
	}
	cfg, ok := dsv.Preset(preset)
	if !ok {
		return dsv.Config{}, fmt.Errorf("unknown preset %q", o.Preset)
	}

	var err error
	if o.Delimiter != "" {
		if cfg.Delimiter, err = parseChar("delimiter", o.Delimiter); err != nil {
			return dsv.Config{}, err
		}
	}
	if o.QuoteChar != "" {
		if cfg.QuoteChar, err = parseChar("quote char", o.QuoteChar); err != nil {
			return dsv.Config{}, err
		}
	}
	if o.Escape != "" {
		if cfg.Escape, err = parseEscape(o.Escape); err != nil {
			return dsv.Config{}, err
		}
	}
	if o.Quoting != "" {
		if cfg.Quote, err = dsv.ParseQuote(o.Quoting); err != nil {
			return dsv.Config{}, err
		}
	}
	if o.LineTerminator != "" {
		if cfg.LineTerminator, err = tabular.ParseLineTerminator(o.LineTerminator); err != nil {
			return dsv.Config{}, err
		}
	}
	return cfg, nil
}

// FixedConfig builds the fixed-width grammar described by the options.
func (o *FormatOptions) FixedConfig() (fixed.Config, error) {
	var cfg fixed.Config
	for _, spec := range o.Columns {
		col, err := ParseColumn(spec)
		if err != nil {
			return fixed.Config{}, err
		}
		cfg.Columns = append(cfg.Columns, col)
	}

	lineEnd := fixed.LineEndTerminator
	if o.LineEnd != "" {
		var err error
		if lineEnd, err = fixed.ParseLineEndKind(o.LineEnd); err != nil {
			return fixed.Config{}, err
		}
	}
	switch lineEnd {
	case fixed.LineEndNone:
		cfg.LineEnd = fixed.NoLineEnd()
	case fixed.LineEndFixedWidth:
		cfg.LineEnd = fixed.FixedRowWidth(o.RowWidth)
	default:
		lt := tabular.CRLF
		if o.LineTerminator != "" {
			var err error
			if lt, err = tabular.ParseLineTerminator(o.LineTerminator); err != nil {
				return fixed.Config{}, err
			}
		}
		cfg.LineEnd = fixed.Terminated(lt)
	}
	return cfg, nil
}

// NewReader opens a row reader of the configured format over r.
func (o *FormatOptions) NewReader(r io.Reader) (tabular.RowReader, error) {
	switch o.Kind {
	case KindDSV:
		cfg, err := o.DSVConfig()
		if err != nil {
			return nil, err
		}
		return dsv.NewReader(r, cfg), nil
	case KindFixed:
		cfg, err := o.FixedConfig()
		if err != nil {
			return nil, err
		}
		return fixed.NewReader(r, cfg), nil
	}
	return nil, errors.Errorf("unknown format kind %q", o.Kind)
}

// NewWriter opens a row writer of the configured format over w.
func (o *FormatOptions) NewWriter(w io.Writer) (tabular.RowWriter, error) {
	switch o.Kind {
	case KindDSV:
		cfg, err := o.DSVConfig()
		if err != nil {
			return nil, err
		}
		return dsv.NewWriter(w, cfg), nil
	case KindFixed:
		cfg, err := o.FixedConfig()
		if err != nil {
			return nil, err
		}
		return fixed.NewWriter(w, cfg), nil
	}
	return nil, errors.Errorf("unknown format kind %q", o.Kind)
}

// FromDSVConfig describes cfg as options, the inverse of DSVConfig.
func FromDSVConfig(cfg dsv.Config) *FormatOptions {
	o := &FormatOptions{
		Kind:           KindDSV,
		Delimiter:      formatChar(cfg.Delimiter),
		Quoting:        cfg.Quote.String(),
		LineTerminator: cfg.LineTerminator.String(),
	}
	switch {
	case cfg == dsv.CSV:
		return &FormatOptions{Kind: KindDSV, Preset: "csv"}
	case cfg == dsv.TSV:
		return &FormatOptions{Kind: KindDSV, Preset: "tsv"}
	case cfg.Quote == dsv.QuoteNever:
		o.Preset = "tsv"
	default:
		o.Preset = "csv"
		o.QuoteChar = formatChar(cfg.QuoteChar)
		o.Escape = cfg.Escape.Rule.String()
		if cfg.Escape.Rule == dsv.EscapeChar {
			o.Escape = formatChar(cfg.Escape.Char)
		}
	}
	return o
}

// ParseColumn parses a fixed-width column spec "width[:justify[:pad]]".
func ParseColumn(spec string) (fixed.Column, error) {
	parts := strings.SplitN(spec, ":", 3)
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fixed.Column{}, errors.Wrapf(err, "column %q: invalid width", spec)
	}
	col := fixed.Column{Width: width, PadWith: ' ', Justification: fixed.Left}
	if len(parts) > 1 && parts[1] != "" {
		if col.Justification, err = fixed.ParseJustification(parts[1]); err != nil {
			return fixed.Column{}, errors.Wrapf(err, "column %q", spec)
		}
	}
	if len(parts) > 2 {
		if col.PadWith, err = parseChar("pad", parts[2]); err != nil {
			return fixed.Column{}, errors.Wrapf(err, "column %q", spec)
		}
	}
	return col, nil
}

var charNames = map[string]rune{
	"tab":   '\t',
	`\t`:    '\t',
	"space": ' ',
	"pipe":  '|',
}

func parseChar(what, s string) (rune, error) {
	if r, ok := charNames[strings.ToLower(s)]; ok {
		return r, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%s must be a single character, got %q", what, s)
	}
	return r, nil
}

func formatChar(r rune) string {
	switch r {
	case '\t':
		return "tab"
	case ' ':
		return "space"
	case 0:
		return ""
	}
	return string(r)
}

func parseEscape(s string) (dsv.Escape, error) {
	switch strings.ToLower(s) {
	case "double":
		return dsv.Double, nil
	case "disallowed":
		return dsv.Disallowed, nil
	}
	c, err := parseChar("escape", s)
	if err != nil {
		return dsv.Escape{}, err
	}
	return dsv.EscapeWith(c), nil
}
