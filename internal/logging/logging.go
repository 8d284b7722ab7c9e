// SPDX-License-Identifier: Unlicense OR MIT

// Package logging sets up the compositor's structured logger (spec
// §7) and encodes the severity policy for the three classes of error
// the screencast and protocol layers raise: a transient cast error is
// a warning (the session keeps running), a fatal cast error is an
// error plus session teardown, and a client protocol violation is
// never logged (a misbehaving client is the client's problem, not an
// operator-facing event).
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Debug enables debug-level output; otherwise info and above.
	Debug bool
	// JSON emits newline-delimited JSON instead of the console writer's
	// human-readable format.
	JSON bool
	// Output overrides the destination writer (defaults to os.Stderr).
	Output io.Writer
}

// New builds a zerolog.Logger configured per opts and installs it as
// zerolog's global default, matching the convention of a single
// process-wide logger handle that component constructors pull their
// sub-loggers from via With().
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}

// CastErrorKind distinguishes the three severities spec §7 assigns to
// screencast-path errors.
type CastErrorKind uint8

const (
	// CastErrorTransient is recoverable; the cast session continues.
	CastErrorTransient CastErrorKind = iota
	// CastErrorFatal requires tearing down the cast session.
	CastErrorFatal
	// CastErrorProtocolViolation is a misbehaving client, never logged.
	CastErrorProtocolViolation
)

// LogCastError applies spec §7's severity policy: transient errors
// log at warn, fatal errors log at error, and protocol violations are
// silently dropped from the operator-facing log (the client is still
// free to be disconnected by the caller; this function only decides
// whether to write a line).
func LogCastError(log zerolog.Logger, kind CastErrorKind, sessionID string, err error) {
	switch kind {
	case CastErrorTransient:
		log.Warn().Str("session", sessionID).Err(err).Msg("screencast error, continuing")
	case CastErrorFatal:
		log.Error().Str("session", sessionID).Err(err).Msg("screencast error, tearing down session")
	case CastErrorProtocolViolation:
		// Intentionally not logged.
	}
}
