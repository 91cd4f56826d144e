// Package trace provides the tracing subsystem of the conform tool.
//
// Tracing follows a check run through its phases so slow files and stalls
// can be located without a profiler.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	conform check --trace=- --trace-level=detail src/
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped on failure
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only ring dumps on failure
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopePass: phases of a run (load, parse, validate)
//   - ScopeFile: per-file processing
//   - ScopeNode: node level
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "validate", trace.SpanFrom(ctx))
//	defer span.End("")
//	ctx = trace.WithSpan(ctx, span)
//
// # Heartbeat
//
// With --trace-heartbeat the driver beats while files are validated; every
// beat reports how many files are done so far.
package trace
