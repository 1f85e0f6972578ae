package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danmuck/mosaic/internal/layout"
	"github.com/danmuck/mosaic/internal/logging"
	"github.com/danmuck/mosaic/internal/pattern"
	"github.com/danmuck/mosaic/internal/solver"
	"github.com/danmuck/mosaic/internal/tile"
	"github.com/pelletier/go-toml/v2"
)

// MaxWorkers bounds the assembler fan-out accepted from config files.
const MaxWorkers = 256

type SolveConfig struct {
	OnPixel         string `toml:"on_pixel"`
	Pattern         string `toml:"pattern"`
	PatternFile     string `toml:"pattern_file"`
	PatternMarker   string `toml:"pattern_marker"`
	SkipSearch      bool   `toml:"skip_search"`
	Workers         int    `toml:"workers"`
	LogLevel        string `toml:"log_level"`
	MetricsTextfile string `toml:"metrics_textfile"`
}

type ServerConfig struct {
	ID           string      `toml:"id"`
	Addr         string      `toml:"addr"`
	CorsOrigins  []string    `toml:"cors_origins"`
	MaxBodyBytes int64       `toml:"max_body_bytes"`
	SolveTimeout string      `toml:"solve_timeout"`
	Solve        SolveConfig `toml:"solve"`
}

func DefaultSolveConfig() SolveConfig {
	return SolveConfig{
		OnPixel:       string(tile.DefaultOn),
		PatternMarker: string(pattern.DefaultMarker),
		Workers:       1,
	}
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ID:           "mosaicd",
		Addr:         ":9300",
		MaxBodyBytes: 1 << 20,
		SolveTimeout: "30s",
		Solve:        DefaultSolveConfig(),
	}
}

func LoadSolveConfig(path string) (SolveConfig, error) {
	cfg := DefaultSolveConfig()
	if err := loadToml(path, &cfg); err != nil {
		return SolveConfig{}, err
	}
	if err := ValidateSolveConfig(cfg); err != nil {
		return SolveConfig{}, err
	}
	return cfg, nil
}

func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	if strings.TrimSpace(cfg.ID) == "" {
		cfg.ID = "mosaicd"
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":9300"
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateSolveConfig(cfg SolveConfig) error {
	if utf8.RuneCountInString(cfg.OnPixel) != 1 {
		return fmt.Errorf("solve config on_pixel must be one character, got %q", cfg.OnPixel)
	}
	if cfg.PatternMarker != "" && utf8.RuneCountInString(cfg.PatternMarker) != 1 {
		return fmt.Errorf("solve config pattern_marker must be one character, got %q", cfg.PatternMarker)
	}
	if strings.TrimSpace(cfg.Pattern) != "" && strings.TrimSpace(cfg.PatternFile) != "" {
		return fmt.Errorf("solve config sets both pattern and pattern_file")
	}
	if cfg.Workers < 0 || cfg.Workers > MaxWorkers {
		return fmt.Errorf("solve config workers must be within 0..%d, got %d", MaxWorkers, cfg.Workers)
	}
	if strings.TrimSpace(cfg.LogLevel) != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("solve config unknown log_level %q", cfg.LogLevel)
		}
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("server config missing id")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("server config max_body_bytes must be positive")
	}
	if _, err := cfg.Timeout(); err != nil {
		return err
	}
	if cfg.Solve.MetricsTextfile != "" {
		return fmt.Errorf("server config exposes /metrics, solve.metrics_textfile is batch only")
	}
	if err := ValidateSolveConfig(cfg.Solve); err != nil {
		return fmt.Errorf("solve section invalid: %w", err)
	}
	return nil
}

// Timeout parses solve_timeout.
func (cfg ServerConfig) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(cfg.SolveTimeout))
	if err != nil {
		return 0, fmt.Errorf("server config solve_timeout %q: %w", cfg.SolveTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("server config solve_timeout must be positive")
	}
	return d, nil
}

// Options converts cfg into pipeline options. A relative pattern_file is
// resolved against baseDir.
func (cfg SolveConfig) Options(baseDir string) (solver.Options, error) {
	opts := solver.DefaultOptions()
	opts.Parse = tile.ParseOptions{On: firstRune(cfg.OnPixel, tile.DefaultOn)}
	opts.Layout = layout.Options{Workers: cfg.Workers}
	if cfg.SkipSearch {
		opts.Pattern = nil
		return opts, nil
	}

	marker := firstRune(cfg.PatternMarker, pattern.DefaultMarker)
	text := cfg.Pattern
	if path := strings.TrimSpace(cfg.PatternFile); path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return solver.Options{}, fmt.Errorf("pattern file %q: %w", cfg.PatternFile, err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return opts, nil
	}
	p, err := pattern.Parse(text, marker)
	if err != nil {
		return solver.Options{}, err
	}
	opts.Pattern = p
	return opts, nil
}

func firstRune(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}
