// Package observability groups the logging, metrics and tracing packages of the reader.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP traffic and reader activity
//   - tracing: OpenTelemetry tracer and HTTP middleware
//
// Example usage:
//
//	logger := logging.NewLogger()
//	logger.Info("reader started")
//	metrics.RecordArticlesLoaded(42)
package observability
