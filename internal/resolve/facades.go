package resolve

import (
	"fsargs/internal/framework"
	"fsargs/internal/pathset"
)

// FacadeInput carries what the augmenter needs to decide and act.
type FacadeInput struct {
	Runtime   framework.Runtime
	Framework framework.Descriptor
	// ProjectPortable disables augmentation entirely.
	ProjectPortable bool
	// ReferencedPortable is true when a directly referenced project is
	// portable.
	ReferencedPortable bool
	// AssemblyPortable classifies one resolved reference. It is only
	// consulted when ReferencedPortable is false.
	AssemblyPortable func(path string) bool
}

// NeedsFacades evaluates the trigger against the resolved references.
func NeedsFacades(in FacadeInput, refs []string) bool {
	if in.ProjectPortable {
		return false
	}
	if in.ReferencedPortable {
		return true
	}
	if in.AssemblyPortable == nil {
		return false
	}
	for _, ref := range refs {
		if in.AssemblyPortable(ref) {
			return true
		}
	}
	return false
}

// AddFacades appends the facades of fx to set unconditionally. Facades
// named like the core assemblies are left to the Reconciler.
func AddFacades(rt framework.Runtime, fx framework.Descriptor, set *pathset.Set) []string {
	var added []string
	for _, facade := range rt.Facades(fx) {
		if pathset.HasSuffixFold(facade, MscorlibFile) || pathset.HasSuffixFold(facade, FSharpCoreFile) {
			continue
		}
		if set.Add(facade) {
			added = append(added, facade)
		}
	}
	return added
}
