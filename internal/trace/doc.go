// Package trace records what irkit does while it loads, classifies and
// reports on native modules.
//
// Enable tracing via command-line flags:
//
//	irkit inspect --trace=- --trace-level=detail demo.toml
//
// Tracers:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (file/stderr)
//   - RingTracer: keeps the last N events for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// Levels gate scopes: LevelPhase shows command and phase spans, LevelDetail
// adds per-module spans, LevelDebug adds one point per classified value.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "classify", 0)
//	defer span.End("")
package trace
