// Package portable decides whether projects and assemblies target a
// portable (profile) framework.
package portable

import (
	"fsargs/internal/framework"
	"fsargs/internal/metadata"
	"fsargs/internal/project"
)

// Outcome is the result of classifying one assembly.
type Outcome uint8

const (
	NotPortable Outcome = iota
	// NotPortableUnreadable: the assembly's metadata could not be read.
	NotPortableUnreadable
	// PortableSystemRuntime: the assembly references System.Runtime.
	PortableSystemRuntime
	// PortableProfileAttribute: TargetFrameworkAttribute names a profile.
	PortableProfileAttribute
	// PortableUnreadableAttributes: the attribute scan hit an I/O failure.
	// Such assemblies count as portable.
	PortableUnreadableAttributes
)

func (o Outcome) Portable() bool {
	switch o {
	case PortableSystemRuntime, PortableProfileAttribute, PortableUnreadableAttributes:
		return true
	}
	return false
}

func (o Outcome) String() string {
	switch o {
	case NotPortableUnreadable:
		return "not portable (unreadable metadata)"
	case PortableSystemRuntime:
		return "portable (references System.Runtime)"
	case PortableProfileAttribute:
		return "portable (profile attribute)"
	case PortableUnreadableAttributes:
		return "portable (unreadable attributes)"
	}
	return "not portable"
}

// SystemRuntime is the contract assembly whose presence marks an assembly
// as built against a portable surface.
const SystemRuntime = "System.Runtime"

// Project reports whether p targets a profile framework.
func Project(p *project.Project) bool {
	return p != nil && p.Framework.IsPortable()
}

// Transitive reports whether p or any project it directly references is
// portable.
func Transitive(ws *project.Workspace, p *project.Project) bool {
	if Project(p) {
		return true
	}
	return AnyReferenced(ws, p)
}

// AnyReferenced reports whether a directly referenced project is portable.
func AnyReferenced(ws *project.Workspace, p *project.Project) bool {
	for _, ref := range ws.ReferencedProjects(p) {
		if Project(ref) {
			return true
		}
	}
	return false
}

// Classifier classifies assemblies on disk.
type Classifier struct {
	Inspector metadata.Inspector
}

// Assembly classifies the assembly at path. Failures are folded into the
// outcome and never returned.
func (c Classifier) Assembly(path string) Outcome {
	insp := c.Inspector
	if insp == nil {
		insp = metadata.FileInspector{}
	}
	refs, err := insp.AssemblyReferences(path)
	if err != nil {
		return NotPortableUnreadable
	}
	if metadata.References(refs, SystemRuntime) {
		return PortableSystemRuntime
	}
	moniker, ok, err := insp.TargetFramework(path)
	if err != nil {
		if metadata.IsIOError(err) {
			return PortableUnreadableAttributes
		}
		return NotPortableUnreadable
	}
	if !ok {
		return NotPortable
	}
	fx, err := framework.ParseMoniker(moniker)
	if err != nil || !fx.IsPortable() {
		return NotPortable
	}
	return PortableProfileAttribute
}
