// Package trace records what the desugaring pipeline is doing.
//
// Tracing is enabled from the command line:
//
//	typedjs desugar --trace=- --trace-level=phase src/
//
// Tracers:
//
//   - Nop: no overhead when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for a crash dump
//   - MultiTracer: fans events out to several tracers
//
// Levels select scopes: phase shows driver and pass boundaries, detail adds
// per-file spans, debug adds per-class events from the hoisting pass.
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
