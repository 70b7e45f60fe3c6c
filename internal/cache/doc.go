// Package cache is the client-facing facade over the external key-value
// store. It stores scalar values under randomly generated UUID keys and
// retrieves them with optional type coercion.
//
// Construction flushes the store's namespace unless WithPreserveData is
// given; this is a documented destructive side effect, not a bug. The
// write path can be instrumented with call counting and call history via
// WithCallCount and WithCallHistory, which compose the trace package's
// wrappers around the raw write without changing its behavior.
package cache
