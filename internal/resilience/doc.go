// Package resilience groups the fault tolerance helpers used around the article endpoint.
//
//   - circuitbreaker: stops calling the worker endpoint while it keeps failing
//   - retry: exponential backoff with jitter for transient failures
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.NewsAPIConfig())
//	err := retry.WithBackoff(ctx, retry.NewsAPIConfig(1), func() error {
//	    _, err := cb.Execute(func() (interface{}, error) {
//	        return nil, callEndpoint()
//	    })
//	    return err
//	})
package resilience
