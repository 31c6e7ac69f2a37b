// Package diag defines the diagnostic model shared by every resolution phase.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     while collecting references, classifying assemblies, reconciling core
//     assemblies and locating tools.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or rendering.
//
// # Scope
//
// Package diag does not perform IO or colorized rendering. The CLI renders
// bags through internal/report.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; resolution failures keep the historical
//     "Resolution: ..." wording so existing log scrapers keep matching.
//   - Subject – the reference, assembly path or project the finding is about.
//   - Notes – optional secondary context.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter. When extra notes are needed, construct a
// ReportBuilder via ReportWarning / ReportError / ReportInfo and chain WithNote
// before calling Emit. Resolution failures are warnings: they never abort the
// computation of an otherwise complete argument list.
package diag
