package config

import (
	"strings"

	"github.com/labstack/gommon/log"
)

// NewLogger returns the process-wide logger.  LOG_LEVEL accepts debug, info,
// warn, error and off; anything else means info.
func NewLogger(cfg Config) *log.Logger {
	l := log.New("booking-desk")
	l.SetLevel(parseLevel(cfg.LogLevel))
	l.SetHeader(`${time_rfc3339} ${level} ${prefix} ${short_file}:${line}`)
	return l
}

func parseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
