// Package trace records what the symbol table tooling does while it runs.
//
// Tracing is the logging layer of symtab: scripts, the commands inside them
// and individual table mutations emit events that can be streamed to a file
// or stderr, or kept in a ring buffer and dumped when a run fails.
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring dumps only, on failure
//   - LevelPhase: driver and per-script spans
//   - LevelDetail: adds per-command spans
//   - LevelDebug: adds every table mutation
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeScript, "run", 0)
//	defer span.End("")
package trace
