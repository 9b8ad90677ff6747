// Package utils provides shared logging and text helpers.
package utils

import "go.uber.org/zap"

// NewLogger returns the process-wide zap logger. Debug mode uses the
// development config (console encoder, debug level); otherwise the
// production config (JSON, info level, sampling).
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopmentConfig().Build()
	}
	return zap.NewProductionConfig().Build()
}
