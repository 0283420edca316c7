package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucrnz/humanspan/internal/config"
	"github.com/lucrnz/humanspan/internal/input"
	"github.com/lucrnz/humanspan/internal/logging"
	"github.com/lucrnz/humanspan/internal/version"
	"github.com/lucrnz/humanspan/pkg/humantime"
)

// ErrZeroDuration is returned with --fail-on-zero when an input yields no duration.
var ErrZeroDuration = errors.New("zero duration")

type options struct {
	lang       string
	output     string
	file       string
	configPath string
	logLevel   string
	logFormat  string
	goSyntax   bool
	explain    bool
	failOnZero bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "humanspan [flags] [text...]",
		Short: "Turn human-written durations like \"1h 30m\" or \"2,5 Std.\" into exact time spans",
		Long: `humanspan

Extracts milliseconds, seconds, minutes, hours and days from free-form text and
prints their sum. Only the first mention of each unit counts, and both "," and
"." are accepted as decimal separators.

Text is taken from the arguments, or read line by line from --file or stdin.
Compressed input (gzip, zstd, xz, bzip2) is detected automatically.
`,
		Example: `  humanspan "Wait 2h 15min before retry"
  humanspan -l german -o ticks "2,5 Std. 10 Sek."
  humanspan --go-syntax 1h30m
  zcat durations.txt.gz | humanspan -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		Version: version.Print(),
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.lang, "lang", "l", "", "Language of the unit labels: english, german (default from config, else english)")
	flags.StringVarP(&opts.output, "output", "o", "", fmt.Sprintf("Output format: %s (default from config, else text)", strings.Join(config.OutputFormats, ", ")))
	flags.StringVarP(&opts.file, "file", "f", "", "Read one expression per line from this file (\"-\" for stdin)")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default ~/.humanspan/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text, json")
	flags.BoolVar(&opts.goSyntax, "go-syntax", false, "Try Go duration syntax (1h30m, 2d, 1w) on the whole input before the human parser")
	flags.BoolVar(&opts.explain, "explain", false, "Print the per-unit breakdown to stderr")
	flags.BoolVar(&opts.failOnZero, "fail-on-zero", false, "Exit with an error if any input yields a zero duration")

	// Silence usage output for runtime errors, but show it for flag errors
	// SilenceErrors is true so we can control error output format in main()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})

	return cmd
}

// ExecuteContext runs the root command with os.Args
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// settings is the result of layering flags over the config file.
type settings struct {
	lang      humantime.Language
	output    string
	logLevel  string
	logFormat string
}

func resolve(cmd *cobra.Command, opts *options, cfg *config.Config) (settings, error) {
	s := settings{
		lang:      cfg.Lang(),
		output:    cfg.OutputFormat(),
		logLevel:  cfg.LogLevel(),
		logFormat: cfg.LogFormat(),
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		l, err := humantime.ParseLanguage(opts.lang)
		if err != nil {
			return s, fmt.Errorf("invalid --lang value: %w", err)
		}
		s.lang = l
	}
	if flags.Changed("output") {
		if !slices.Contains(config.OutputFormats, opts.output) {
			return s, fmt.Errorf("invalid --output value %q (valid: %s)", opts.output, strings.Join(config.OutputFormats, ", "))
		}
		s.output = opts.output
	}
	if flags.Changed("log-level") {
		s.logLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		s.logFormat = opts.logFormat
	}
	return s, nil
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	s, err := resolve(cmd, opts, cfg)
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), s.logLevel, s.logFormat)
	if err != nil {
		return err
	}
	humantime.SetLogger(logger)
	ctx := logging.WithContext(cmd.Context(), logger)

	logger.Debug("settings_resolved",
		"config", cfg.Path(),
		"language", s.lang.String(),
		"output", s.output,
		"go_syntax", opts.goSyntax,
	)

	p := &printer{
		format:  s.output,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		explain: opts.explain,
	}
	ev := evaluator{
		lang:       s.lang,
		goSyntax:   opts.goSyntax,
		components: opts.explain || s.output == config.OutputJSON,
	}

	var zeros int
	handle := func(text string) error {
		res := ev.evaluate(ctx, text)
		if res.Duration == 0 {
			zeros++
		}
		return p.print(res)
	}

	if opts.file != "" && len(args) > 0 {
		return fmt.Errorf("--file cannot be combined with positional text")
	}

	switch {
	case len(args) > 0:
		if err := handle(strings.Join(args, " ")); err != nil {
			return err
		}
	case opts.file != "" && opts.file != "-":
		rc, format, err := input.Open(opts.file)
		if err != nil {
			return err
		}
		defer rc.Close()
		logger.Debug("input_opened", "file", opts.file, "format", format.String())
		if err := batch(ctx, rc, handle); err != nil {
			return err
		}
	default:
		rc, format, err := input.NewReader(io.NopCloser(cmd.InOrStdin()))
		if err != nil {
			return err
		}
		defer rc.Close()
		logger.Debug("input_opened", "file", "-", "format", format.String())
		if err := batch(ctx, rc, handle); err != nil {
			return err
		}
	}

	if opts.failOnZero && zeros > 0 {
		return fmt.Errorf("%w: %d input(s) contained no recognizable duration", ErrZeroDuration, zeros)
	}
	return nil
}

// batch evaluates every non-blank line of r.
func batch(ctx context.Context, r io.Reader, handle func(string) error) error {
	return input.Lines(ctx, r, func(line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		return handle(line)
	})
}
