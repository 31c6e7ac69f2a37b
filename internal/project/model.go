package project

import (
	"fmt"
	"strings"

	"fsargs/internal/framework"
)

// RefKind is the mechanism a reference is declared with.
type RefKind uint8

const (
	RefUnknown RefKind = iota
	RefAssembly
	RefPackage
	RefProject
	// RefCustom is accepted in manifests but never contributes paths.
	RefCustom
)

func (k RefKind) String() string {
	switch k {
	case RefAssembly:
		return "assembly"
	case RefPackage:
		return "package"
	case RefProject:
		return "project"
	case RefCustom:
		return "custom"
	}
	return "unknown"
}

// ParseRefKind maps manifest spellings to RefKind.
func ParseRefKind(s string) (RefKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assembly":
		return RefAssembly, nil
	case "package", "gac":
		return RefPackage, nil
	case "project":
		return RefProject, nil
	case "custom":
		return RefCustom, nil
	}
	return RefUnknown, fmt.Errorf("unknown reference kind %q (expected: assembly|package|project|custom)", s)
}

// PackageAssembly is one assembly inside a package (GAC-style group).
type PackageAssembly struct {
	Name     string
	FullName string
	Location string
}

// PackageInfo describes the package a Package reference points into.
type PackageInfo struct {
	Name       string
	Assemblies []PackageAssembly
}

// DeclaredReference is a reference as written in the project.
type DeclaredReference struct {
	Kind     RefKind
	Identity string
	HintPath string
	Package  *PackageInfo
}

// OutputKind is the compile target of a project.
type OutputKind uint8

const (
	OutputExe OutputKind = iota
	OutputWinExe
	OutputLibrary
	OutputModule
)

func (k OutputKind) String() string {
	switch k {
	case OutputWinExe:
		return "winexe"
	case OutputLibrary:
		return "library"
	case OutputModule:
		return "module"
	}
	return "exe"
}

// ParseOutputKind accepts the manifest spellings. Unknown kinds map to
// OutputExe, matching the compiler default.
func ParseOutputKind(s string) OutputKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "library", "dll":
		return OutputLibrary
	case "module", "netmodule":
		return OutputModule
	case "winexe":
		return OutputWinExe
	}
	return OutputExe
}

// BuildAction says what the build does with a project file.
type BuildAction uint8

const (
	ActionNone BuildAction = iota
	ActionCompile
	ActionEmbeddedResource
	ActionContent
	ActionFolder
)

func (a BuildAction) String() string {
	switch a {
	case ActionCompile:
		return "Compile"
	case ActionEmbeddedResource:
		return "EmbeddedResource"
	case ActionContent:
		return "Content"
	case ActionFolder:
		return "Folder"
	}
	return "None"
}

// ParseBuildAction maps manifest spellings; unknown actions become
// ActionNone, which has no compiler effect.
func ParseBuildAction(s string) BuildAction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compile":
		return ActionCompile
	case "embeddedresource", "embedded_resource", "resource":
		return ActionEmbeddedResource
	case "content":
		return ActionContent
	case "folder":
		return ActionFolder
	}
	return ActionNone
}

// File is a project item.
type File struct {
	Path        string // file system path, absolute after loading
	VirtualPath string // project-relative path as shown in the project tree
	Action      BuildAction
	// SharedAssets marks files pulled in from a shared-assets project;
	// they compile ahead of the project's own files.
	SharedAssets bool
	// Directory marks a placeholder entry standing for a directory.
	Directory bool
}

// Project is the read-only snapshot the resolver works on.
type Project struct {
	Name           string
	Dir            string
	ManifestPath   string
	Output         OutputKind
	Framework      framework.Descriptor
	References     []DeclaredReference
	Files          []File
	Configurations map[string]Configuration
}

// ProjectReferenceNames returns the identities of Project-kind references
// in declaration order.
func (p *Project) ProjectReferenceNames() []string {
	var out []string
	for _, r := range p.References {
		if r.Kind == RefProject && r.Identity != "" {
			out = append(out, r.Identity)
		}
	}
	return out
}
