package logger

import "go.uber.org/zap"

// New builds the process-wide zap logger. Debug switches to the development
// config with human-readable output.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
