// Package tracing provides OpenTelemetry tracing for the reader.
//
// Setup installs an SDK tracer provider and the W3C trace-context propagator,
// Middleware opens a server span per HTTP request, and StartSpan opens
// internal or client spans such as the article endpoint fetch.
//
// Example usage:
//
//	shutdown := tracing.Setup(tracing.Config{ServiceName: "fluxactu", SampleRatio: 1})
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "newsapi.fetch")
//	defer span.End()
package tracing
