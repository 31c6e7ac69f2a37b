// Package resolve turns declared references into the set of assembly
// paths handed to the compiler.
//
// The Collector maps each declared reference to zero or more paths, the
// Reconciler guarantees that mscorlib and FSharp.Core are present, and
// Facades adds forwarding assemblies when a desktop project consumes
// portable code.
package resolve
