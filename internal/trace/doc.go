// Package trace records what the charting pipeline does, and how long it
// takes, as a stream of structured events. It stands in for a logger: the
// driver and the CLI emit span and point events, and a StreamTracer writes
// them as text or NDJSON.
//
// Enable it from the command line:
//
//	knitchart diag --trace=- --trace-level=detail patterns/
//
// Levels select which scopes are written: phase keeps driver and pass
// events, detail adds per-file events, debug adds per-row events.
//
// Tracers travel in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
