// Package telemetry provides logging and tick-rate statistics for the
// simulation core. Logging follows the teacher's own idiom: a small
// Logger interface with a Null() no-op default that every package takes
// and defaults to, so nothing pays for formatting work nobody reads.
package telemetry

import "go.uber.org/zap"

// Logger is the logging interface every package in this module takes.
// Mirrors the teacher's log.Logger shape (Printf/Println plus a Null
// no-op implementation); Real wraps zap instead of the standard library.
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

type nullLogger struct{}

func (nullLogger) Printf(format string, v ...interface{}) {}
func (nullLogger) Println(v ...interface{})               {}

// Null returns a Logger that discards everything without evaluating its
// arguments' formatting cost.
func Null() Logger {
	return nullLogger{}
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (z zapLogger) Printf(format string, v ...interface{}) { z.s.Infof(format, v...) }
func (z zapLogger) Println(v ...interface{})               { z.s.Info(v...) }

// Real builds a Logger backed by a production zap.Logger (JSON output,
// info level, caller-annotated).
func Real() Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return Null()
	}
	return zapLogger{s: l.Sugar()}
}
