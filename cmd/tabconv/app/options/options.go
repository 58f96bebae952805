package options

import (
	"flag"
	"strings"

	"github.com/pkg/errors"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/klog/v2"
)

// TabconvOptions holds the input and output formats of tabconv.
type TabconvOptions struct {
	Input  *FormatOptions `json:"input,omitempty" yaml:"input,omitempty" mapstructure:"input"`
	Output *FormatOptions `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`

	// ContinueOnError makes validate check every file instead of stopping
	// at the first invalid one.
	ContinueOnError bool `json:"continueOnError,omitempty" yaml:"continueOnError,omitempty" mapstructure:"continueOnError"`
}

func NewTabconvOptions() *TabconvOptions {
	return &TabconvOptions{
		Input:  NewFormatOptions(),
		Output: NewFormatOptions(),
	}
}

func (s *TabconvOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	s.Input.AddFlags(fss.FlagSet("input"), "in-", "input")
	s.Output.AddFlags(fss.FlagSet("output"), "out-", "output")

	fs := fss.FlagSet("generic")
	fs.BoolVar(&s.ContinueOnError, "continue-on-error", s.ContinueOnError, ""+
		"Keep validating the remaining files after an invalid one.")

	kfs := fss.FlagSet("klog")
	local := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(local)
	local.VisitAll(func(fl *flag.Flag) {
		fl.Name = strings.Replace(fl.Name, "_", "-", -1)
		kfs.AddGoFlag(fl)
	})

	return fss
}

func (s *TabconvOptions) Validate() []error {
	var errs []error
	errs = append(errs, prefixed("input", s.Input.Validate())...)
	errs = append(errs, prefixed("output", s.Output.Validate())...)
	return errs
}

func prefixed(side string, errs []error) []error {
	for i, err := range errs {
		errs[i] = errors.WithMessage(err, side)
	}
	return errs
}
