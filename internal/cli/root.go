package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-ronfmt"
	"github.com/KimNorgaard/go-ronfmt/internal/config"
	"github.com/KimNorgaard/go-ronfmt/internal/driver"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// stdinName labels standard input in messages and diffs.
const stdinName = "<standard input>"

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

type rootOptions struct {
	check      bool
	diff       bool
	verbose    bool
	jobs       int
	maxDepth   int
	configPath string
	color      string
}

// Execute runs the ronfmt command.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "ronfmt [flags] [path ...]",
		Short: "ronfmt formats RON documents",
		Long: `ronfmt rewrites RON (Rusty Object Notation) documents in a canonical layout.

Without paths it formats standard input to standard output. Files are
rewritten in place; directories are searched for RON files. Comments,
extension headers and the newline convention are kept.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("ronfmt %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.Flags()
	flags.BoolVar(&opts.check, "check", false, "list files whose formatting differs and exit non-zero; write nothing")
	flags.BoolVar(&opts.diff, "diff", false, "print diffs instead of rewriting files")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "number of files formatted in parallel (0 = GOMAXPROCS)")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting depth (default from config, or 1000)")
	flags.StringVar(&opts.configPath, "config", "", "path to a config file (default: nearest "+config.FileName+")")
	flags.StringVar(&opts.color, "color", "auto", "colorize diffs: auto, always or never")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return root
}

func runFormat(cmd *cobra.Command, args []string, opts rootOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := configureColor(opts.color, cmd.OutOrStdout()); err != nil {
		return err
	}

	cfg, err := config.Resolve(opts.configPath, ".")
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if cmd.Flags().Changed("max-depth") {
		if opts.maxDepth <= 0 {
			return errors.New("--max-depth must be a positive integer")
		}
		cfg.MaxDepth = opts.maxDepth
	}

	if len(args) == 0 {
		return runStdin(cmd, opts, cfg)
	}

	prog := newProgress(logger)
	results, err := driver.FormatPaths(ctx, args, driver.Options{
		Check:      opts.check,
		Diff:       opts.diff,
		Jobs:       cfg.Jobs,
		MaxDepth:   cfg.MaxDepth,
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	})
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var failed, changed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(errOut, "%s: %s\n", r.Path, errorMessage(r.Err))
		case !r.Changed:
			logger.Debug("unchanged", "path", r.Path)
		case opts.diff:
			changed++
			writeDiff(out, r.Diff)
		case opts.check:
			changed++
			fmt.Fprintln(out, r.Path)
		default:
			changed++
			logger.Info("reformatted", "path", r.Path)
		}
	}
	prog.done(fmt.Sprintf("processed %d files", len(results)))

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be formatted", failed, len(results))
	}
	if opts.check && changed > 0 {
		return fmt.Errorf("%d of %d files are not formatted", changed, len(results))
	}
	return nil
}

func runStdin(cmd *cobra.Command, opts rootOptions, cfg config.Config) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading standard input: %w", err)
	}
	if !opts.check && !opts.diff {
		if err := driver.FormatReader(bytes.NewReader(src), cmd.OutOrStdout(), cfg.MaxDepth); err != nil {
			return fmt.Errorf("%s: %s", stdinName, errorMessage(err))
		}
		return nil
	}

	formatted, err := ronfmt.Format(src, ronfmt.MaxDepth(cfg.MaxDepth))
	if err != nil {
		return fmt.Errorf("%s: %s", stdinName, errorMessage(err))
	}
	if bytes.Equal(src, formatted) {
		return nil
	}
	if opts.diff {
		writeDiff(cmd.OutOrStdout(), driver.Unified(stdinName, src, formatted))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), stdinName)
	return errors.New("standard input is not formatted")
}

// errorMessage drops the package prefix from library errors so that they
// read as "<path>: parsing error at ...".
func errorMessage(err error) string {
	return strings.TrimPrefix(err.Error(), "ronfmt: ")
}
