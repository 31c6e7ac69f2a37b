// Package metadata reads ECMA-335 metadata from managed PE images.
//
// Only what reference resolution needs is decoded: the assembly identity,
// the AssemblyRef table and assembly-level custom attributes (for the
// TargetFrameworkAttribute). Nothing in the image is ever executed or
// loaded into a runtime.
//
// Read errors come in two flavours. Malformed or non-managed images yield
// ErrNotManaged / ErrMalformed. Failures of the underlying file system
// yield an *IOError; IsIOError distinguishes them because callers treat
// the two differently.
package metadata
