package main

import (
	"net"
	"os"

	"github.com/9seconds/ipcountry/countrylib"
	"github.com/rs/zerolog"
)

type logger struct {
	lookupLog zerolog.Logger
	configLog zerolog.Logger
}

func (l *logger) LookupError(ip net.IP, name string, err error) {
	l.lookupLog.Error().Str("provider", name).Stringer("ip", ip).Err(err).Msg("")
}

func (l *logger) CapacityExhausted(ip net.IP, name string) {
	l.lookupLog.Warn().Str("provider", name).Stringer("ip", ip).Msg("Rate limit is exhausted")
}

func (l *logger) RateLimitUpdated(name string, limit int) {
	l.configLog.Info().Str("provider", name).Int("limit", limit).Msg("Rate limit was updated")
}

func newLogger(level zerolog.Level) countrylib.Logger {
	return &logger{
		lookupLog: zerolog.New(os.Stderr).Level(level).With().Timestamp().Stack().Str("event_name", "lookup").Logger(),
		configLog: zerolog.New(os.Stderr).Level(level).With().Timestamp().Stack().Str("event_name", "config").Logger(),
	}
}
