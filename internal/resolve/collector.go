package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fsargs/internal/diag"
	"fsargs/internal/pathset"
	"fsargs/internal/project"
)

// Collector maps declared references to assembly paths. Unresolvable
// references contribute nothing; when a Reporter is set they are noted at
// info level.
type Collector struct {
	Workspace     *project.Workspace
	Project       *project.Project
	Configuration string
	Substitutions []Substitution
	Reporter      diag.Reporter
	// Observe, when set, wraps the resolution of every reference in
	// CollectAll and returns the paths to keep.
	Observe func(ref project.DeclaredReference, collect func() []string) []string
}

// NewCollector returns a collector using DefaultSubstitutions.
func NewCollector(ws *project.Workspace, p *project.Project, configuration string) *Collector {
	return &Collector{
		Workspace:     ws,
		Project:       p,
		Configuration: configuration,
		Substitutions: DefaultSubstitutions,
	}
}

// Collect resolves one declared reference.
func (c *Collector) Collect(ref project.DeclaredReference) []string {
	switch ref.Kind {
	case project.RefAssembly:
		return c.hintPath(ref)
	case project.RefPackage:
		return c.pkg(ref)
	case project.RefProject:
		return c.projectOutput(ref)
	}
	c.note(diag.ResUnsupportedReferenceKind, ref.Identity,
		fmt.Sprintf("%s reference %q contributes no assemblies", ref.Kind, ref.Identity))
	return nil
}

// CollectAll resolves every reference of the project, in declaration
// order, into set. A nil set is allocated.
func (c *Collector) CollectAll(set *pathset.Set) *pathset.Set {
	if set == nil {
		set = pathset.New()
	}
	if c.Project == nil {
		return set
	}
	for _, ref := range c.Project.References {
		if c.Observe == nil {
			set.AddAll(c.Collect(ref)...)
			continue
		}
		set.AddAll(c.Observe(ref, func() []string { return c.Collect(ref) })...)
	}
	return set
}

func (c *Collector) hintPath(ref project.DeclaredReference) []string {
	if strings.TrimSpace(ref.HintPath) == "" {
		return nil
	}
	path := filepath.FromSlash(substitute(c.Substitutions, ref.HintPath))
	if !filepath.IsAbs(path) && c.Project != nil && c.Project.Dir != "" {
		path = filepath.Join(c.Project.Dir, path)
	}
	if fileExists(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		return []string{path}
	}
	c.note(diag.ResHintPathMissing, ref.Identity,
		fmt.Sprintf("hint path %q not found, referencing %q by name", ref.HintPath, filepath.Base(path)))
	return []string{filepath.Base(path)}
}

func (c *Collector) pkg(ref project.DeclaredReference) []string {
	pkg := ref.Package
	if pkg == nil {
		return c.hintPath(ref)
	}
	if strings.EqualFold(ref.Identity, pkg.Name) {
		out := make([]string, 0, len(pkg.Assemblies))
		for _, a := range pkg.Assemblies {
			if a.Location != "" {
				out = append(out, a.Location)
			}
		}
		return out
	}
	for _, a := range pkg.Assemblies {
		if strings.EqualFold(a.Name, ref.Identity) || strings.EqualFold(a.FullName, ref.Identity) {
			if a.Location == "" {
				break
			}
			return []string{a.Location}
		}
	}
	c.note(diag.ResPackageAssemblyMissing, ref.Identity,
		fmt.Sprintf("package %q has no assembly %q", pkg.Name, ref.Identity))
	return nil
}

func (c *Collector) projectOutput(ref project.DeclaredReference) []string {
	for _, dep := range c.Workspace.ReferencedProjects(c.Project) {
		if !strings.EqualFold(dep.Name, ref.Identity) {
			continue
		}
		if out, ok := dep.OutputFile(c.Configuration); ok {
			return []string{out}
		}
		break
	}
	c.note(diag.ResProjectReferenceMissing, ref.Identity,
		fmt.Sprintf("no output for referenced project %q in configuration %q", ref.Identity, c.Configuration))
	return nil
}

func (c *Collector) note(code diag.Code, subject, msg string) {
	if c.Reporter == nil {
		return
	}
	c.Reporter.Report(code, diag.SevInfo, subject, msg, nil)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
