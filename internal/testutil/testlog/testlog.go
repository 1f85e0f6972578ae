package testlog

import (
	"testing"

	"github.com/danmuck/mosaic/internal/logging"
	"github.com/rs/zerolog/log"
)

func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Info().Str("test", t.Name()).Msg("test start")
}

// Logf narrates a test step at debug level.
func Logf(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}
