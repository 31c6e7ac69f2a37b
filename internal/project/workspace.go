package project

import (
	"sort"
	"strings"
)

// RuntimeFramework is one framework entry of the [runtime] manifest section.
type RuntimeFramework struct {
	Identifier string
	Version    string
	Profile    string
	Installed  bool
	Dir        string
	FacadesDir string
	ToolDirs   []string
}

// RuntimeSpec is the declared installed runtime.
type RuntimeSpec struct {
	Frameworks    []RuntimeFramework
	ReferenceDirs []string
	ToolDirs      []string
	CompilerDir   string
}

// Workspace owns every project of a solution.
type Workspace struct {
	Name                 string
	Root                 string
	ManifestPath         string
	DefaultConfiguration string
	Runtime              RuntimeSpec
	Projects             []*Project
	byName               map[string]*Project
}

// NewWorkspace indexes projects by name. Later duplicates do not replace
// earlier ones; see Duplicates.
func NewWorkspace(name string, projects []*Project) *Workspace {
	ws := &Workspace{Name: name, Projects: projects}
	ws.reindex()
	return ws
}

func (w *Workspace) reindex() {
	w.byName = make(map[string]*Project, len(w.Projects))
	for _, p := range w.Projects {
		if p == nil {
			continue
		}
		if _, dup := w.byName[p.Name]; !dup {
			w.byName[p.Name] = p
		}
	}
}

// Lookup finds a project by exact name.
func (w *Workspace) Lookup(name string) (*Project, bool) {
	if w == nil {
		return nil, false
	}
	if w.byName == nil {
		w.reindex()
	}
	p, ok := w.byName[name]
	return p, ok
}

// Find finds a project by name, falling back to a case-insensitive match.
func (w *Workspace) Find(name string) (*Project, bool) {
	if p, ok := w.Lookup(name); ok {
		return p, true
	}
	if w == nil {
		return nil, false
	}
	for _, p := range w.Projects {
		if p != nil && strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// Canonical returns the declared name of the project name refers to, or
// name itself when no project matches. Matching follows Find.
func (w *Workspace) Canonical(name string) string {
	if p, ok := w.Find(name); ok {
		return p.Name
	}
	return name
}

// ReferencedProjects returns the workspace projects p references, in
// declaration order. Names match as in Find; unknown names are skipped.
func (w *Workspace) ReferencedProjects(p *Project) []*Project {
	if p == nil {
		return nil
	}
	var out []*Project
	seen := make(map[*Project]struct{})
	for _, name := range p.ProjectReferenceNames() {
		ref, ok := w.Find(name)
		if !ok {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// Duplicates lists project names declared more than once, sorted.
func (w *Workspace) Duplicates() []string {
	if w == nil {
		return nil
	}
	counts := make(map[string]int, len(w.Projects))
	for _, p := range w.Projects {
		if p != nil {
			counts[p.Name]++
		}
	}
	var out []string
	for name, n := range counts {
		if n > 1 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Names returns project names in declaration order.
func (w *Workspace) Names() []string {
	if w == nil {
		return nil
	}
	out := make([]string, 0, len(w.Projects))
	for _, p := range w.Projects {
		if p != nil {
			out = append(out, p.Name)
		}
	}
	return out
}
