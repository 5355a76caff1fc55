package httpapi

import (
	"log"
	"os"

	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("TRAIND_LOG_LEVEL"))

func logRequest(path, status string, durMS int64) {
	if defaultLogLevel < LevelInfo {
		return
	}
	if zlog != nil {
		zlog.Info().Str("path", path).Str("status", status).Int64("dur_ms", durMS).Msg("request")
		return
	}
	log.Printf("request path=%s status=%s dur_ms=%d", path, status, durMS)
}
