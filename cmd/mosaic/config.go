package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/mosaic/internal/config"
)

// loadRunConfig overlays the keys defined in path onto the default solve
// config. An empty path yields the defaults. The returned directory anchors
// relative pattern_file values.
func loadRunConfig(path string) (config.SolveConfig, string, error) {
	cfg := config.DefaultSolveConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, ".", nil
	}

	var raw config.SolveConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.SolveConfig{}, "", fmt.Errorf("load mosaic config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return config.SolveConfig{}, "", fmt.Errorf("load mosaic config: unknown keys %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("on_pixel") {
		cfg.OnPixel = raw.OnPixel
	}
	if meta.IsDefined("pattern") {
		cfg.Pattern = raw.Pattern
	}
	if meta.IsDefined("pattern_file") {
		cfg.PatternFile = strings.TrimSpace(raw.PatternFile)
	}
	if meta.IsDefined("pattern_marker") {
		cfg.PatternMarker = raw.PatternMarker
	}
	if meta.IsDefined("skip_search") {
		cfg.SkipSearch = raw.SkipSearch
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}
	return cfg, filepath.Dir(path), nil
}
