package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "solve":
		return solveTemplate, nil
	case "server":
		return serverTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const solveTemplate = `on_pixel = "#"
pattern_marker = "#"
# pattern_file = "monster.txt"
skip_search = false
workers = 1
# log_level = "info"  # unset defers to MOSAIC_LOG_LEVEL
metrics_textfile = ""
`

const serverTemplate = `id = "mosaicd"
addr = ":9300"
cors_origins = ["http://localhost:3000"]
max_body_bytes = 1048576
solve_timeout = "30s"

[solve]
on_pixel = "#"
pattern_marker = "#"
workers = 4
# log_level = "info"  # unset defers to MOSAIC_LOG_LEVEL
`
