// Package logging provides structured logging using uber/zap.
//
// Production mode emits JSON for machine parsing; development mode
// emits colored console output. Every component receives a *Logger at
// construction and attaches structured fields for context:
//
//	logger := logging.NewDefault()
//	logger.Info("server starting", zap.String("port", "8080"))
//	logger.Error("operation failed", zap.Error(err))
package logging
