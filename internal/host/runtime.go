// Package host provides a framework.Runtime backed by directories declared
// in the workspace manifest.
package host

import (
	"os"
	"path/filepath"
	"strings"

	"fsargs/internal/framework"
	"fsargs/internal/metadata"
	"fsargs/internal/pathset"
	"fsargs/internal/project"
)

type frameworkEntry struct {
	desc       framework.Descriptor
	installed  bool
	dir        string
	facadesDir string
	toolDirs   []string
}

// Runtime answers runtime queries from the file system.
type Runtime struct {
	entries       []frameworkEntry
	referenceDirs []string
	toolDirs      []string
	compilerDir   string
	inspector     metadata.Inspector
}

// New builds a Runtime from the manifest's runtime section. A nil
// inspector reads assemblies from disk.
func New(spec project.RuntimeSpec, insp metadata.Inspector) *Runtime {
	if insp == nil {
		insp = metadata.FileInspector{}
	}
	rt := &Runtime{
		referenceDirs: spec.ReferenceDirs,
		toolDirs:      spec.ToolDirs,
		compilerDir:   spec.CompilerDir,
		inspector:     insp,
	}
	for _, f := range spec.Frameworks {
		identifier := f.Identifier
		if identifier == "" {
			identifier = framework.IdentifierDesktop
		}
		entry := frameworkEntry{
			desc: framework.Descriptor{
				Identifier: identifier,
				Version:    framework.ParseVersion(f.Version),
				Profile:    f.Profile,
			},
			installed:  f.Installed,
			dir:        f.Dir,
			facadesDir: f.FacadesDir,
			toolDirs:   f.ToolDirs,
		}
		if entry.facadesDir == "" && entry.dir != "" {
			entry.facadesDir = filepath.Join(entry.dir, "Facades")
		}
		rt.entries = append(rt.entries, entry)
	}
	return rt
}

// CompilerDir is the declared compiler install folder, possibly empty.
func (r *Runtime) CompilerDir() string { return r.compilerDir }

func (r *Runtime) Frameworks() []framework.Descriptor {
	out := make([]framework.Descriptor, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.desc)
	}
	return out
}

func (r *Runtime) IsInstalled(d framework.Descriptor) bool {
	e, ok := r.lookup(d)
	return ok && e.installed
}

func (r *Runtime) FrameworkAssemblies(d framework.Descriptor) []string {
	e, ok := r.lookup(d)
	if !ok {
		return nil
	}
	return listAssemblies(e.dir)
}

func (r *Runtime) Facades(d framework.Descriptor) []string {
	e, ok := r.lookup(d)
	if !ok {
		return nil
	}
	return listAssemblies(e.facadesDir)
}

func (r *Runtime) ReferenceDirectories(d framework.Descriptor) []string {
	var dirs []string
	if e, ok := r.lookup(d); ok && e.dir != "" {
		dirs = append(dirs, e.dir)
	}
	return append(dirs, r.referenceDirs...)
}

func (r *Runtime) ToolDirectories(d framework.Descriptor) []string {
	var dirs []string
	if e, ok := r.lookup(d); ok {
		dirs = append(dirs, e.toolDirs...)
	}
	return append(dirs, r.toolDirs...)
}

// ResolveAssembly looks for <name>.dll in installed framework directories
// and the reference directories. An exact version match wins; otherwise
// the highest version found is returned. A zero version accepts the first
// match.
func (r *Runtime) ResolveAssembly(name string, version framework.Version) (string, bool) {
	wantAny := isZero(version)
	var (
		best        string
		bestVersion framework.Version
	)
	for _, dir := range r.searchDirs() {
		candidate := filepath.Join(dir, name+".dll")
		if !isFile(candidate) {
			continue
		}
		id, err := r.inspector.Identity(candidate)
		if err != nil || !strings.EqualFold(id.Name, name) {
			continue
		}
		if wantAny {
			return candidate, true
		}
		got := toVersion(id.Version)
		if sameVersion(got, version) {
			return candidate, true
		}
		if best == "" || framework.Prefers(got, bestVersion) {
			best, bestVersion = candidate, got
		}
	}
	return best, best != ""
}

func (r *Runtime) searchDirs() []string {
	seen := pathset.New()
	var dirs []string
	for _, e := range r.entries {
		if e.installed && e.dir != "" && seen.Add(e.dir) {
			dirs = append(dirs, e.dir)
		}
	}
	for _, dir := range r.referenceDirs {
		if seen.Add(dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// lookup matches identifier and profile exactly and versions ignoring
// trailing zeros, so v4.5 and 4.5.0 name the same framework.
func (r *Runtime) lookup(d framework.Descriptor) (frameworkEntry, bool) {
	for _, e := range r.entries {
		if e.desc.Identifier == d.Identifier && e.desc.Profile == d.Profile && sameVersion(e.desc.Version, d.Version) {
			return e, true
		}
	}
	return frameworkEntry{}, false
}

func sameVersion(a, b framework.Version) bool {
	a, b = trimZeros(a), trimZeros(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func trimZeros(v framework.Version) framework.Version {
	for len(v) > 0 && v[len(v)-1] == 0 {
		v = v[:len(v)-1]
	}
	return v
}

func isZero(v framework.Version) bool { return len(trimZeros(v)) == 0 }

func toVersion(parts [4]uint16) framework.Version {
	v := make(framework.Version, len(parts))
	for i, p := range parts {
		v[i] = int(p)
	}
	return v
}

func listAssemblies(dir string) []string {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !pathset.HasSuffixFold(e.Name(), ".dll") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
