package resolve

import (
	"fmt"
	"path/filepath"

	"fsargs/internal/diag"
	"fsargs/internal/framework"
	"fsargs/internal/metadata"
	"fsargs/internal/pathset"
)

// Core assembly names guaranteed by the Reconciler.
const (
	FSharpCore     = "FSharp.Core"
	FSharpCoreFile = "FSharp.Core.dll"
	Mscorlib       = "mscorlib"
	MscorlibFile   = "mscorlib.dll"
)

// Request describes one core assembly to locate.
type Request struct {
	Name     string // simple assembly name
	FileName string
	// ExtraDir is searched before the default directories.
	ExtraDir string
	// Dependent is an already resolved assembly whose reference to Name
	// may be followed.
	Dependent string
}

// Strategy locates a core assembly; absence is ("", false).
type Strategy interface {
	Resolve(req Request) (string, bool)
}

// DirectoryStrategy searches req.ExtraDir and then Dirs for req.FileName.
type DirectoryStrategy struct {
	Dirs []string
}

func (s DirectoryStrategy) Resolve(req Request) (string, bool) {
	dirs := s.Dirs
	if req.ExtraDir != "" {
		dirs = append([]string{req.ExtraDir}, s.Dirs...)
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, req.FileName)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// DependencyStrategy reads req.Dependent's assembly references and asks
// the runtime for the referenced version of req.Name.
type DependencyStrategy struct {
	Inspector metadata.Inspector
	Runtime   framework.Runtime
	// Reporter receives an info note when the dependent cannot be read.
	Reporter diag.Reporter
}

func (s DependencyStrategy) Resolve(req Request) (string, bool) {
	if req.Dependent == "" || s.Runtime == nil {
		return "", false
	}
	insp := s.Inspector
	if insp == nil {
		insp = metadata.FileInspector{}
	}
	refs, err := insp.AssemblyReferences(req.Dependent)
	if err != nil {
		if s.Reporter != nil {
			s.Reporter.Report(diag.ResCoreDependencyUnreadable, diag.SevInfo, req.Dependent,
				fmt.Sprintf("cannot read references of %s: %v", filepath.Base(req.Dependent), err), nil)
		}
		return "", false
	}
	for _, ref := range refs {
		if !equalFoldName(ref.Name, req.Name) {
			continue
		}
		version := make(framework.Version, len(ref.Version))
		for i, part := range ref.Version {
			version[i] = int(part)
		}
		return s.Runtime.ResolveAssembly(ref.Name, version)
	}
	return "", false
}

// Reconciler guarantees mscorlib and FSharp.Core in a reference set.
type Reconciler struct {
	Directory  Strategy
	Dependency Strategy
	Reporter   diag.Reporter
}

// Branch names the decision taken by Reconcile.
type Branch uint8

const (
	BranchBothPresent Branch = iota
	BranchMissingFSharpCore
	BranchMissingMscorlib
	BranchMissingBoth
)

func (b Branch) String() string {
	switch b {
	case BranchMissingFSharpCore:
		return "missing FSharp.Core"
	case BranchMissingMscorlib:
		return "missing mscorlib"
	case BranchMissingBoth:
		return "missing both"
	}
	return "both present"
}

// Reconcile adds the missing core assemblies to set and returns the added
// paths together with the branch that ran. Failed lookups are reported as
// warnings and add nothing.
func (r *Reconciler) Reconcile(set *pathset.Set) ([]string, Branch) {
	fsCore, hasFSharpCore := set.FindSuffix(FSharpCoreFile)
	corlib, hasMscorlib := set.FindSuffix(MscorlibFile)

	var added []string
	resolve := func(req Request, strategies ...Strategy) {
		for _, s := range strategies {
			if s == nil {
				continue
			}
			if path, ok := s.Resolve(req); ok {
				if set.Add(path) {
					added = append(added, path)
				}
				return
			}
		}
		r.fail(req.Name)
	}

	switch {
	case hasFSharpCore && hasMscorlib:
		return nil, BranchBothPresent
	case !hasFSharpCore && hasMscorlib:
		resolve(Request{Name: FSharpCore, FileName: FSharpCoreFile, ExtraDir: filepath.Dir(corlib)}, r.Directory)
		return added, BranchMissingFSharpCore
	case hasFSharpCore && !hasMscorlib:
		resolve(Request{Name: Mscorlib, FileName: MscorlibFile, Dependent: fsCore}, r.Dependency)
		return added, BranchMissingMscorlib
	default:
		resolve(Request{Name: FSharpCore, FileName: FSharpCoreFile}, r.Directory)
		resolve(Request{Name: Mscorlib, FileName: MscorlibFile}, r.Directory)
		return added, BranchMissingBoth
	}
}

// FailureMessage is the warning text for an unresolved core assembly.
func FailureMessage(name string) string {
	return "Resolution: Assembly resolution failed when trying to find default reference for: " + name
}

func (r *Reconciler) fail(name string) {
	if r.Reporter == nil {
		return
	}
	r.Reporter.Report(diag.ResDefaultReferenceFailed, diag.SevWarning, name, FailureMessage(name), nil)
}

func equalFoldName(a, b string) bool {
	return pathset.Key(a) == pathset.Key(b)
}
