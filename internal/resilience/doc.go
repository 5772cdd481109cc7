// Package resilience groups the fault tolerance building blocks.
//
//   - fallback: cache-aside resolution that hides upstream failures behind static data
//   - circuitbreaker: sony/gobreaker wrappers for upstream APIs and the rate limit store
//   - retry: exponential backoff with jitter
//
// A typical upstream call nests them: the resolver bounds the whole call with a
// timeout, the retry loop re-runs transient failures, and each attempt passes
// through the API's circuit breaker.
//
//	joke, err := fallback.Resolve(ctx, resolver, fallback.Request[entity.Joke]{
//	    Feature: "joke",
//	    Key:     "api:joke:random",
//	    Produce: client.RandomJoke,
//	    Pool:    catalog.Jokes,
//	})
package resilience
