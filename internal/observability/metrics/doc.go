// Package metrics provides the Prometheus collectors of the reader.
//
// All collectors are registered with the default registry through promauto
// and exposed on /metrics.
//
// Example usage:
//
//	start := time.Now()
//	articles, err := client.Fetch(ctx)
//	metrics.RecordArticleFetch(metrics.FetchStatus(err), time.Since(start))
package metrics
