package driver

import (
	"encoding/hex"

	"fsargs/internal/compileropts"
	"fsargs/internal/diag"
	"fsargs/internal/observ"
	"fsargs/internal/portable"
	"fsargs/internal/resolve"
)

// Classification records the portability outcome of one reference.
type Classification struct {
	Path    string
	Outcome portable.Outcome
}

// Result is the computed invocation of one project.
type Result struct {
	Project       string
	Configuration string
	// Framework is the runtime framework selected for core lookups.
	Framework string
	// Portable is true when the project or a referenced project is portable.
	Portable bool
	// PortablePath is true when the project itself is portable.
	PortablePath bool
	Args         []string
	Options      []compileropts.Option
	References   []string
	Facades      []string
	Reconciled   []string
	Branch       resolve.Branch
	Classified   []Classification
	Diagnostics  *diag.Bag
	Timing       observ.Report
	Digest       Digest
}

// Digest fingerprints a project's arguments and those of the projects it
// references.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }
