// Package driver computes compiler invocations for workspace projects.
package driver

import (
	"fsargs/internal/framework"
	"fsargs/internal/metadata"
	"fsargs/internal/project"
	"fsargs/internal/resolve"
)

// Context is the explicit input of a computation. Nothing is looked up
// outside of it.
type Context struct {
	Workspace     *project.Workspace
	Project       *project.Project
	Configuration string
	Runtime       framework.Runtime
	// Inspector reads assembly metadata; nil reads from disk.
	Inspector metadata.Inspector
	// Wrap quotes path-valued flags.
	Wrap bool
	// MaxDiagnostics bounds the per-project bag; 0 means the bag default.
	MaxDiagnostics int
	// Substitutions rewrite hint paths; nil uses resolve.DefaultSubstitutions.
	Substitutions []resolve.Substitution
}

func (c Context) inspector() metadata.Inspector {
	if c.Inspector == nil {
		return metadata.FileInspector{}
	}
	return c.Inspector
}

func (c Context) maxDiagnostics() int {
	if c.MaxDiagnostics <= 0 {
		return 256
	}
	return c.MaxDiagnostics
}

// ForProject returns a copy of c aimed at p.
func (c Context) ForProject(p *project.Project) Context {
	c.Project = p
	return c
}
