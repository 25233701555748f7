// SPDX-License-Identifier: MIT

// Package logging builds the zap logger shared by the ldblocks commands and
// carries it through a context.
package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
)

// EnvDebug switches every logger to the development configuration.
const EnvDebug = "LDBLOCKS_DEBUG"

// NewLogger returns a new zap.SugaredLogger. debug, or LDBLOCKS_DEBUG=true,
// selects the development configuration (debug level, console encoding).
func NewLogger(debug bool) *zap.SugaredLogger {
	var config zap.Config
	if v, ok := os.LookupEnv(EnvDebug); debug || (ok && v == "true") {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.OutputPaths = []string{"stdout"}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger.Named("ldblocks").Sugar()
}

type loggerKey struct{}

// WithLogger returns a copy of parent context in which the
// value associated with logger key is the supplied logger.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger in the context, or a fresh production
// logger when there is none.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return NewLogger(false)
}
