// Package trace provides a tracing subsystem for fsargs.
//
// Tracing follows one argument computation through its phases (reference
// collection, portability classification, facade augmentation, core-assembly
// reconciliation, option assembly) and, at detail level, through every
// declared reference. It exists to answer "why did this -r: flag appear"
// without attaching a debugger.
//
// # Usage
//
//	fsargs args --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer kept in memory
//   - MultiTracer: combines multiple tracers
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "reconcile", parentID)
//	defer span.End("")
package trace
