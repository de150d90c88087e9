package logger

import "go.uber.org/zap"

// New returns a zap logger. Debug mode uses the development config
// (console output, debug level); otherwise production JSON at info level.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

