package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/mosaic/internal/solver"
	"github.com/danmuck/mosaic/internal/testutil/fixture"
	"github.com/danmuck/mosaic/internal/testutil/testlog"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadSolveConfigDefaultsAndOverrides(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "solve.toml", `
workers = 6
log_level = "debug"
`)
	cfg, err := LoadSolveConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Workers != 6 || cfg.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.OnPixel != "#" || cfg.PatternMarker != "#" {
		t.Fatalf("defaults lost: %+v", cfg)
	}

	opts, err := cfg.Options(dir)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Layout.Workers != 6 || opts.Parse.On != '#' || opts.Pattern == nil {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestDefaultLogLevelIsUnset(t *testing.T) {
	testlog.Start(t)
	if lvl := DefaultSolveConfig().LogLevel; lvl != "" {
		t.Fatalf("default solve log_level = %q, want unset", lvl)
	}
	if lvl := DefaultServerConfig().Solve.LogLevel; lvl != "" {
		t.Fatalf("default server log_level = %q, want unset", lvl)
	}
	if err := ValidateSolveConfig(DefaultSolveConfig()); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestSolveConfigResolvesRelativePatternFile(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	writeFile(t, dir, "mask.txt", "\nO.O\n.O.\n")
	cfg := DefaultSolveConfig()
	cfg.PatternFile = "mask.txt"
	cfg.PatternMarker = "O"

	opts, err := cfg.Options(dir)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Pattern.Width() != 3 || len(opts.Pattern.Cells()) != 3 {
		t.Fatalf("unexpected pattern %dx%d", opts.Pattern.Width(), opts.Pattern.Height())
	}

	cfg.PatternFile = "missing.txt"
	if _, err := cfg.Options(dir); err == nil {
		t.Fatalf("expected missing pattern file error")
	}
}

func TestSolveConfigSkipSearchDropsPattern(t *testing.T) {
	testlog.Start(t)
	cfg := DefaultSolveConfig()
	cfg.SkipSearch = true
	opts, err := cfg.Options(".")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Pattern != nil {
		t.Fatalf("skip_search must clear the pattern")
	}
	report, err := solver.Solve(context.Background(), fixture.Tiles, opts)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if report.Searched || report.CornerProduct != fixture.CornerProduct {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestValidateSolveConfigRejectsBadValues(t *testing.T) {
	testlog.Start(t)
	cases := map[string]func(*SolveConfig){
		"empty on pixel":  func(c *SolveConfig) { c.OnPixel = "" },
		"long on pixel":   func(c *SolveConfig) { c.OnPixel = "##" },
		"long marker":     func(c *SolveConfig) { c.PatternMarker = "ab" },
		"both patterns":   func(c *SolveConfig) { c.Pattern = "#"; c.PatternFile = "x.txt" },
		"negative worker": func(c *SolveConfig) { c.Workers = -1 },
		"too many":        func(c *SolveConfig) { c.Workers = MaxWorkers + 1 },
		"log level":       func(c *SolveConfig) { c.LogLevel = "chatty" },
	}
	for name, mutate := range cases {
		cfg := DefaultSolveConfig()
		mutate(&cfg)
		if err := ValidateSolveConfig(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadServerConfigWithSolveSection(t *testing.T) {
	testlog.Start(t)
	path := writeFile(t, t.TempDir(), "server.toml", `
addr = "127.0.0.1:9400"
solve_timeout = "5s"

[solve]
workers = 8
`)
	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ID != "mosaicd" || cfg.Addr != "127.0.0.1:9400" {
		t.Fatalf("unexpected identity: %+v", cfg)
	}
	if cfg.Solve.Workers != 8 || cfg.Solve.OnPixel != "#" {
		t.Fatalf("solve section not merged over defaults: %+v", cfg.Solve)
	}
	if d, err := cfg.Timeout(); err != nil || d != 5*time.Second {
		t.Fatalf("unexpected timeout %v err=%v", d, err)
	}

	bad := writeFile(t, t.TempDir(), "bad.toml", `solve_timeout = "soon"`)
	if _, err := LoadServerConfig(bad); err == nil {
		t.Fatalf("expected timeout parse error")
	}
	broken := writeFile(t, t.TempDir(), "broken.toml", `addr = `)
	if _, err := LoadServerConfig(broken); err == nil || !strings.Contains(err.Error(), "config parse failed") {
		t.Fatalf("expected parse failure, got %v", err)
	}
}

func TestTemplatesLoadAndValidate(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	solvePath := filepath.Join(dir, "solve.toml")
	serverPath := filepath.Join(dir, "server.toml")

	if err := WriteTemplate(solvePath, "solve", false); err != nil {
		t.Fatalf("write solve template: %v", err)
	}
	if err := WriteTemplate(serverPath, "server", false); err != nil {
		t.Fatalf("write server template: %v", err)
	}
	if _, err := LoadSolveConfig(solvePath); err != nil {
		t.Fatalf("solve template invalid: %v", err)
	}
	if _, err := LoadServerConfig(serverPath); err != nil {
		t.Fatalf("server template invalid: %v", err)
	}
	if err := WriteTemplate(solvePath, "solve", false); err == nil {
		t.Fatalf("expected refusal to overwrite existing config")
	}
	if err := WriteTemplate(solvePath, "solve", true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}
	if _, err := Template("daemon"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
