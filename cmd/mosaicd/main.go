package main

import (
	"flag"
	"path/filepath"

	"github.com/danmuck/mosaic/internal/config"
	"github.com/danmuck/mosaic/internal/logging"
	"github.com/danmuck/mosaic/internal/observability"
	"github.com/danmuck/mosaic/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "cmd/mosaicd/config.toml", "server config path (TOML)")
	flag.Parse()

	observability.InitLogger("mosaicd")
	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("mosaicd config")
	}
	if lvl, ok := logging.ParseLevel(cfg.Solve.LogLevel); ok {
		zerolog.SetGlobalLevel(lvl)
	}
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	opts, err := cfg.Solve.Options(filepath.Dir(*configPath))
	if err != nil {
		log.Fatal().Err(err).Msg("mosaicd solve options")
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		log.Fatal().Err(err).Msg("mosaicd solve timeout")
	}

	srv := server.Appear(cfg.ID, cfg.Addr, cfg.CorsOrigins, opts)
	srv.MaxBodyBytes = cfg.MaxBodyBytes
	srv.SolveTimeout = timeout
	log.Info().
		Str("id", srv.ID).
		Int("workers", opts.Layout.Workers).
		Bool("search", opts.Pattern != nil).
		Dur("solve_timeout", timeout).
		Msg("mosaicd appeared")

	if err := srv.Serve(); err != nil {
		log.Fatal().Err(err).Msg("mosaicd stopped")
	}
}
