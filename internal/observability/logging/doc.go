// Package logging provides structured logging utilities on top of log/slog.
//
// Key features:
//   - JSON (default) and text output selected by LOG_FORMAT
//   - Level selected by LOG_LEVEL (debug, info, warn, error)
//   - Request ID propagation
//   - Context-aware logging
//
// Example usage:
//
//	logger := logging.NewLogger()
//	logger.Info("reader started", slog.String("addr", ":8080"))
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, logger).Info("refresh requested")
//	}
package logging
