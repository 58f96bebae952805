package app

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/component-base/term"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/shapestone/shape-tabular/cmd/tabconv/app/options"
	"github.com/shapestone/shape-tabular/pkg/dsv"
	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// sniffSampleSize bounds how much of the input sniff looks at.
const sniffSampleSize = 64 * 1024

func NewTabconvCommand() *cobra.Command {
	s := options.NewTabconvOptions()

	// Load configuration from file
	conf, err := options.TryLoadFromDisk()
	if err == nil {
		s = conf
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		klog.ErrorS(err, "Failed to load configuration, using defaults")
	}

	cmd := &cobra.Command{
		Use:   "tabconv",
		Short: "Convert between delimiter-separated and fixed-width tables",
		Long: `tabconv reads rows in one tabular format and writes them in another.
Delimiter-separated formats start from the csv or tsv preset and may override
the delimiter, quoting and line terminator. Fixed-width formats need their
column widths.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if errs := s.Validate(); len(errs) != 0 {
				return utilerrors.NewAggregate(errs)
			}
			return nil
		},
	}

	fs := cmd.PersistentFlags()
	namedFlagSets := s.Flags()
	for _, f := range namedFlagSets.FlagSets {
		fs.AddFlagSet(f)
	}

	cmd.AddCommand(newConvertCommand(s), newValidateCommand(s), newSniffCommand(s))

	usageFmt := "Usage:\n  %s\n"
	cols, _, _ := term.TerminalSize(cmd.OutOrStdout())
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		fmt.Fprintf(c.OutOrStdout(), "%s\n\n"+usageFmt, c.Long, c.UseLine())
		if c.HasAvailableSubCommands() {
			fmt.Fprintln(c.OutOrStdout(), "\nAvailable Commands:")
			for _, sub := range c.Commands() {
				if sub.IsAvailableCommand() {
					fmt.Fprintf(c.OutOrStdout(), "  %-10s %s\n", sub.Name(), sub.Short)
				}
			}
		}
		fmt.Fprintln(c.OutOrStdout())
		cliflag.PrintSections(c.OutOrStdout(), namedFlagSets, cols)
	})
	return cmd
}

func newConvertCommand(s *options.TabconvOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert rows from the input format to the output format",
		Long: `Convert reads every row of input in the input format and writes it in the
output format. Input defaults to standard input and output to standard output;
"-" names them explicitly.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := "-", "-"
			if len(args) > 0 {
				in = args[0]
			}
			if len(args) > 1 {
				out = args[1]
			}

			src, closeIn, err := openInput(cmd, in)
			if err != nil {
				return err
			}
			defer closeIn()
			dst, closeOut, err := openOutput(cmd, out)
			if err != nil {
				return err
			}

			n, err := Convert(s, src, dst)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			if err != nil {
				return errors.Wrapf(err, "converting %s after %d rows", in, n)
			}
			klog.V(2).InfoS("Converted", "input", in, "output", out, "rows", n)
			return nil
		},
	}
}

// Convert copies every row of in, read with the input format, to out in
// the output format. It returns the number of rows written.
func Convert(s *options.TabconvOptions, in io.Reader, out io.Writer) (int, error) {
	r, err := s.Input.NewReader(in)
	if err != nil {
		return 0, err
	}
	w, err := s.Output.NewWriter(out)
	if err != nil {
		return 0, err
	}
	return tabular.Copy(w, r)
}

func newValidateCommand(s *options.TabconvOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check that files parse in the input format",
		Long: `Validate parses each file with the input format and reports the number of
rows, or the position of the first error. It stops at the first invalid file
unless --continue-on-error is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			// Per-file results go to stdout; the returned error only
			// summarizes them.
			checked, invalid := 0, 0
			for _, name := range args {
				checked++
				n, err := validateFile(cmd, s, name)
				if err != nil {
					invalid++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", name, err)
					if !s.ContinueOnError {
						break
					}
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d rows\n", name, n)
			}
			if invalid > 0 {
				return errors.Errorf("%d of %d checked files invalid", invalid, checked)
			}
			return nil
		},
	}
}

func validateFile(cmd *cobra.Command, s *options.TabconvOptions, name string) (int, error) {
	src, closeIn, err := openInput(cmd, name)
	if err != nil {
		return 0, err
	}
	defer closeIn()

	r, err := s.Input.NewReader(src)
	if err != nil {
		return 0, err
	}
	n := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			klog.V(2).InfoS("Validated", "file", name, "rows", n)
			return n, nil
		}
		if err != nil {
			return n, err
		}
		n++
	}
}

func newSniffCommand(s *options.TabconvOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sniff [file]",
		Short: "Guess the dialect of a delimiter-separated file",
		Long: `Sniff looks at the start of a file and prints the guessed dialect as a
configuration file fragment that can be used as the input format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) > 0 {
				name = args[0]
			}
			src, closeIn, err := openInput(cmd, name)
			if err != nil {
				return err
			}
			defer closeIn()

			sample, err := io.ReadAll(io.LimitReader(src, sniffSampleSize))
			if err != nil {
				return errors.Wrapf(err, "reading %s", name)
			}
			cfg := dsv.NewSniffer(string(sample)).Config()
			klog.V(2).InfoS("Sniffed", "file", name, "delimiter", string(cfg.Delimiter),
				"lineTerminator", cfg.LineTerminator.String())

			out, err := yaml.Marshal(&options.TabconvOptions{Input: options.FromDSVConfig(cfg)})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func openInput(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(cmd *cobra.Command, name string) (io.Writer, func() error, error) {
	if name == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
