package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultTotalSeconds = 30

var exit = os.Exit

func main() {
	cmd := newRootCmd()
	cmd.SetOut(color.Output)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string
	total := lenientFloat(defaultTotalSeconds)
	var single, multi, mem lenientFloat
	var threads lenientUint

	cmd := &cobra.Command{
		Use:   "seinou",
		Short: "Estimate single-core, multi-core and memory-copy throughput",
		Long: `seinou runs three fixed-duration phases one after another: a single-core
compute kernel, the same kernel on N threads, and a parallel memory copy.
It reports integer Gops/s, GFLOP/s, GB/s and their geometric mean.

Rates are work divided by the target duration of a phase. Each phase
overshoots its target by up to one block of work and that overshoot is
not corrected, so figures stay comparable across runs.`,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v, cmd.Flags(), cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.Var(&total, "time", "total runtime target in seconds, split 40/40/20 across single/multi/mem")
	f.Var(&single, "single", "single-core compute duration override in seconds")
	f.Var(&multi, "multi", "multi-core compute duration override in seconds")
	f.Var(&mem, "mem", "memory bandwidth duration override in seconds")
	f.Var(&threads, "threads", "thread count for multi-core and memory phases (default hardware threads)")
	f.String("json", "", "write JSON results to `file`")
	f.String("md", "", "write a Markdown summary to `file`")
	f.String("yaml", "", "write YAML results to `file`")
	f.String("csv", "", "write CSV results to `file`")
	f.String("prom", "", "write Prometheus textfile metrics to `file`")
	f.StringVar(&cfgFile, "config", "", "read settings from a YAML config `file`")
	f.BoolP("verbose", "v", false, "enable debug logging")
	f.Bool("no-color", false, "disable coloured output")
	f.Bool("no-progress", false, "disable the progress line")
	return cmd
}

type bench struct {
	log      *slog.Logger
	progress *progress
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// run executes the three phases strictly one after another, prints the
// console report and then writes every configured sink.
func run(ctx context.Context, out io.Writer, opts options) error {
	logger := newLogger(opts.verbose)
	slog.SetDefault(logger)
	if opts.noColor {
		color.NoColor = true
	}

	cfg := opts.run
	start := time.Now()
	host := detectHost(ctx)
	logger.Debug("host detected", "os", host.os, "arch", host.arch, "cpu", host.cpuName, "threads", cfg.threads)

	interactive := !opts.noProgress && isatty.IsTerminal(os.Stdout.Fd())
	b := bench{
		log:      logger,
		progress: newProgress(out, int(os.Stdout.Fd()), interactive, cfg.total()),
	}

	single := b.phase("single-core", cfg.single, func() phaseResult {
		return runCompute(cfg.single, 1, true)
	})
	multi := b.phase("multi-core", cfg.multi, func() phaseResult {
		return runCompute(cfg.multi, cfg.threads, false)
	})
	mem := b.phase("memory", cfg.mem, func() phaseResult {
		return runMemory(cfg.mem, cfg.threads)
	})

	res := newResultSet(start, host, cfg.threads, single, multi, mem)
	writeConsole(out, res)
	return writeSinks(logger, opts, res)
}

func (b bench) phase(name string, seconds float64, fn func() phaseResult) phaseResult {
	b.log.Debug("phase started", "phase", name, "seconds", seconds)
	r := b.progress.track(name, seconds, func() phaseResult {
		return measurePhase(fn)
	})
	b.log.Debug("phase finished",
		"phase", name,
		"elapsed", r.Elapsed,
		"user", r.CPU.user,
		"system", r.CPU.system,
		"checksum", fmt.Sprintf("%#016x", r.Checksum))
	return r
}

type sink struct {
	name  string
	path  string
	write func(path string, r resultSet) error
}

func fileSink(write func(io.Writer, resultSet) error) func(string, resultSet) error {
	return func(path string, r resultSet) error {
		return writeFile(path, r, write)
	}
}

// writeSinks attempts every configured sink, even after a failure.
func writeSinks(logger *slog.Logger, opts options, r resultSet) error {
	sinks := []sink{
		{"json", opts.jsonPath, fileSink(writeJSON)},
		{"markdown", opts.mdPath, fileSink(writeMarkdown)},
		{"yaml", opts.yamlPath, fileSink(writeYAML)},
		{"csv", opts.csvPath, fileSink(writeCSV)},
		{"prometheus", opts.promPath, writePrometheus},
	}

	var errs []error
	for _, s := range sinks {
		if s.path == "" {
			continue
		}
		if err := s.write(s.path, r); err != nil {
			errs = append(errs, fmt.Errorf("write %s %s: %w", s.name, s.path, err))
			continue
		}
		logger.Debug("results written", "sink", s.name, "path", s.path)
	}
	return errors.Join(errs...)
}
