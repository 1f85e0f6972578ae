package server

import (
	"time"

	"github.com/danmuck/mosaic/internal/observability"
	"github.com/danmuck/mosaic/internal/solver"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxBodyBytes = 1 << 20
	DefaultSolveTimeout = 30 * time.Second
)

// Server exposes the solve pipeline over HTTP.
type Server struct {
	ID           string    `json:"id"`
	Addr         string    `json:"addr"`
	Appeared     time.Time `json:"appeared"`
	MaxBodyBytes int64     `json:"max_body_bytes"`
	SolveTimeout time.Duration

	options solver.Options
	router  *gin.Engine
}

func Appear(id, addr string, corsOrigins []string, opts solver.Options) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger, id))
	r.Use(observability.RequestMetricsMiddleware(id))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		ID:           id,
		Addr:         addr,
		Appeared:     time.Now(),
		MaxBodyBytes: DefaultMaxBodyBytes,
		SolveTimeout: DefaultSolveTimeout,
		options:      opts,
		router:       r,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("id", s.ID).Str("addr", s.Addr).Msg("mosaicd listening")
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
