package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vktec/slimecheck/cpu"
	"github.com/vktec/slimecheck/fixture"
)

type mode int

const (
	scanMode mode = iota
	sampleMode
)

func parseMode(arg string) (mode, error) {
	switch arg {
	case "0", "scan":
		return scanMode, nil
	case "1", "sample":
		return sampleMode, nil
	}
	return 0, usageError{fmt.Errorf("unknown mode %q (valid options: 0 or scan, 1 or sample)", arg)}
}

// usageError marks errors caused by the command line rather than the run.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type app struct {
	log *zap.Logger

	worldSeed   int64
	radius      int32
	slimes      int
	notSlimes   int
	sampleSeed  int64
	maxAttempts int
	format      string
	formula     string
	workers     int
	drawFile    string
	verbose     bool
}

func newRootCmd(stdout, stderr io.Writer, log *zap.Logger) *cobra.Command {
	a := &app{log: log}
	cmd := &cobra.Command{
		Use:   "slimecheck [flags] MODE",
		Short: "Generate slime chunk test fixtures",
		Long: `slimecheck prints slime chunk fixtures for a world seed.

Modes:
  0, scan    list every slime chunk in [-radius, radius] on both axes
             (defaults: seed 42, radius 10)
  1, sample  draw random chunks from [-radius, radius) and list the first
             --slimes slime chunks and --not-slimes other chunks
             (defaults: seed 73, radius 10000)`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{fmt.Errorf("expected exactly one MODE argument, got %d", len(args))}
			}
			_, err := parseMode(args[0])
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.log, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: a.run,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.Int64Var(&a.worldSeed, "seed", 0, "world `seed` (default 42 for scan, 73 for sample)")
	flags.Int32Var(&a.radius, "radius", 0, "window `radius` in chunks (default 10 for scan, 10000 for sample)")
	flags.IntVar(&a.slimes, "slimes", fixture.DefaultSampleCount, "slime chunks to sample")
	flags.IntVar(&a.notSlimes, "not-slimes", fixture.DefaultSampleCount, "other chunks to sample")
	flags.Int64Var(&a.sampleSeed, "sample-seed", 0, "`seed` of the sampling generator (default: current time in milliseconds)")
	flags.IntVar(&a.maxAttempts, "max-attempts", fixture.DefaultMaxAttempts, "give up sampling after this many draws")
	flags.StringVarP(&a.format, "format", "f", string(fixture.CPP), "output `format` (valid options: cpp, json, yaml, csv)")
	flags.StringVar(&a.formula, "formula", cpu.JavaFormula.String(), "seed scrambling `formula` (valid options: java, wide)")
	flags.IntVarP(&a.workers, "workers", "j", runtime.GOMAXPROCS(0), "number of concurrent workers")
	flags.StringVar(&a.drawFile, "draw", "", "also draw the scanned window to a PNG `file` (scan mode only)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	m, err := parseMode(args[0])
	if err != nil {
		return err
	}
	format, err := fixture.ParseFormat(a.format)
	if err != nil {
		return usageError{err}
	}
	formula, err := cpu.ParseFormula(a.formula)
	if err != nil {
		return usageError{err}
	}

	flags := cmd.Flags()
	switch m {
	case scanMode:
		if !flags.Changed("seed") {
			a.worldSeed = fixture.DefaultScanSeed
		}
		if !flags.Changed("radius") {
			a.radius = fixture.DefaultScanRadius
		}
		return a.scan(cmd, format, formula)
	case sampleMode:
		if a.drawFile != "" {
			return usageError{errors.New("--draw is only supported in scan mode")}
		}
		if !flags.Changed("seed") {
			a.worldSeed = fixture.DefaultSampleSeed
		}
		if !flags.Changed("radius") {
			a.radius = fixture.DefaultSampleRadius
		}
		if !flags.Changed("sample-seed") {
			a.sampleSeed = time.Now().UnixMilli()
		}
		return a.sample(cmd, format, formula)
	}
	return nil
}

func (a *app) scan(cmd *cobra.Command, format fixture.Format, formula cpu.Formula) error {
	ctx := cmd.Context()
	scanner := cpu.NewScanner(cpu.WithWorkers(a.workers), cpu.WithFormula(formula), cpu.WithLogger(a.log))
	a.log.Info("scanning",
		zap.Int64("seed", a.worldSeed),
		zap.Int32("radius", a.radius),
		zap.Stringer("formula", formula),
	)

	list, err := fixture.RangeScan(ctx, scanner, a.worldSeed, a.radius)
	if err != nil {
		return err
	}
	if err := fixture.Write(cmd.OutOrStdout(), format, list); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}

	if a.drawFile != "" {
		if err := a.draw(ctx, scanner); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) draw(ctx context.Context, scanner *cpu.Scanner) error {
	r := int(a.radius)
	img := image.NewRGBA(image.Rect(-r, -r, r+1, r+1))
	if err := scanner.DrawArea(ctx, img, a.worldSeed, cpu.DefaultPalette); err != nil {
		return fmt.Errorf("drawing: %w", err)
	}

	f, err := os.Create(a.drawFile)
	if err != nil {
		return fmt.Errorf("opening image file: %w", err)
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	a.log.Info("wrote image", zap.String("file", a.drawFile))
	return nil
}

func (a *app) sample(cmd *cobra.Command, format fixture.Format, formula cpu.Formula) error {
	a.log.Info("sampling",
		zap.Int64("seed", a.worldSeed),
		zap.Int32("radius", a.radius),
		zap.Int64("sample_seed", a.sampleSeed),
		zap.Stringer("formula", formula),
	)

	s := fixture.Sampler{
		WorldSeed:   a.worldSeed,
		Formula:     formula,
		Radius:      a.radius,
		Slimes:      a.slimes,
		NotSlimes:   a.notSlimes,
		MaxAttempts: a.maxAttempts,
		Logger:      a.log,
	}
	rng := cpu.NewRandom(a.sampleSeed)
	lists, err := s.Sample(&rng)
	if err != nil {
		return err
	}
	if err := fixture.Write(cmd.OutOrStdout(), format, lists...); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	return nil
}

// exitCode reports err and picks the process exit status: 2 for usage
// errors, 1 for everything else.
func exitCode(cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}
	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, "Error:", err)
	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}
	return 1
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr, nil)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(cmd, err))
}
