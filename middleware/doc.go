// Package middleware provides composable storage decorators.
//
// Every middleware wraps exactly one inner storage capability and exposes
// the same capability, so middlewares substitute anywhere a plain storage
// is expected and chain freely:
//
//	mem := storage.NewMemory[map[string]any]()
//	logged := middleware.NewLogging(mem, logger)
//	cached, _ := middleware.NewCaching(logged, middleware.WithFlushThreshold(100))
//
// Caching buffers writes and serves reads from the last snapshot; Logging
// records operations and delegates; Compression and Encoded translate
// between typed snapshots and compressed byte frames.
//
// Middlewares never retry, suppress or rewrap storage failures beyond
// annotating their own encode/decode steps: an error from the wrapped
// storage reaches the caller unchanged.
package middleware
