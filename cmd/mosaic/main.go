package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/mosaic/internal/config"
	"github.com/danmuck/mosaic/internal/logging"
	"github.com/danmuck/mosaic/internal/observability"
	"github.com/danmuck/mosaic/internal/solver"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	observability.InitLogger("mosaic")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mosaic: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("mosaic", flag.ContinueOnError)
	configPath := fs.String("config", "", "solve config path (TOML)")
	inputPath := fs.String("input", "", "tile input path (defaults to stdin)")
	format := fs.String("format", "text", "output format: text|json")
	render := fs.Bool("render", false, "print the oriented image with matches marked O")
	workers := fs.Int("workers", -1, "assembler workers, overrides config when >= 0")
	skipSearch := fs.Bool("skip-search", false, "stop after assembly")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *format != "text" && *format != "json" {
		return fmt.Errorf("unknown format %q", *format)
	}

	cfg, baseDir, err := loadRunConfig(*configPath)
	if err != nil {
		return err
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *skipSearch {
		cfg.SkipSearch = true
	}
	if err := config.ValidateSolveConfig(cfg); err != nil {
		return err
	}
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		zerolog.SetGlobalLevel(lvl)
	}
	opts, err := cfg.Options(baseDir)
	if err != nil {
		return err
	}

	in := stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	log.Debug().Str("input", *inputPath).Int("workers", opts.Layout.Workers).Bool("search", opts.Pattern != nil).Msg("mosaic run")

	report, solveErr := solver.SolveReader(ctx, in, opts)
	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn().Err(err).Str("path", cfg.MetricsTextfile).Msg("metrics textfile not written")
		}
	}
	if solveErr != nil {
		return solveErr
	}
	return writeReport(stdout, report, *format, *render)
}

func writeReport(w io.Writer, report *solver.Report, format string, render bool) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "tiles=%d grid=%dx%d\n", report.Tiles, report.GridSide, report.GridSide)
	fmt.Fprintf(w, "corners=%v\n", report.CornerIDs)
	fmt.Fprintf(w, "corner_product=%d\n", report.CornerProduct)
	if report.Searched {
		fmt.Fprintf(w, "orientation=%s matches=%d\n", report.Orientation, report.Matches)
		fmt.Fprintf(w, "roughness=%d\n", report.Roughness)
		if render {
			fmt.Fprintln(w, report.Rendered)
		}
	}
	return nil
}
