package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/danmuck/mosaic/internal/layout"
	"github.com/danmuck/mosaic/internal/pattern"
	"github.com/danmuck/mosaic/internal/solver"
	"github.com/danmuck/mosaic/internal/tile"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "0.1.0"

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": version,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// POST /solve takes raw tile blocks as the body.
	// ?search=false skips the pattern stage, ?render=true adds the image.
	s.router.POST("/solve", func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.MaxBodyBytes))
		if err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		opts := s.options
		if search, ok := queryBool(c, "search"); ok && !search {
			opts.Pattern = nil
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), s.SolveTimeout)
		defer cancel()
		report, err := solver.Solve(ctx, string(body), opts)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		out := gin.H{"status": "ok", "report": report}
		if render, ok := queryBool(c, "render"); ok && render && report.Searched {
			out["image"] = report.Rendered
		}
		c.JSON(http.StatusOK, out)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tile.ErrMalformedTile), errors.Is(err, tile.ErrInconsistentTileSize):
		return http.StatusBadRequest
	case errors.Is(err, layout.ErrNoValidLayout), errors.Is(err, pattern.ErrNoPatternFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func queryBool(c *gin.Context, key string) (bool, bool) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
