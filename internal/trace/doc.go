// Package trace records spans of the analysis pipeline.
//
// Tracing is off by default and costs one interface call per span when
// disabled. The CLI turns it on with:
//
//	cascade diag --trace=- --trace-level=detail styles/
//
// Levels:
//
//   - LevelOff: nothing
//   - LevelError: crash dumps from the ring buffer only
//   - LevelPhase: driver runs and passes (lex, parse, project)
//   - LevelDetail: per-file spans
//   - LevelDebug: everything
//
// Tracers travel through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parent)
//	defer span.End("")
package trace
