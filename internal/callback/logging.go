package callback

import (
	"log"

	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the callback package.
func SetLogger(l zerolog.Logger) { zlog = &l }

func logInfo(format string, args ...any) {
	if zlog != nil {
		zlog.Info().Msgf(format, args...)
		return
	}
	log.Printf(format, args...)
}
