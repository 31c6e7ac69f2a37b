package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"fsargs/internal/framework"
)

var (
	ErrWorkspaceSectionMissing = errors.New("missing [workspace] section")
	ErrProjectSectionMissing   = errors.New("missing [project] section")
	ErrProjectNameMissing      = errors.New("missing [project].name")
	ErrNoProjects              = errors.New("[workspace].projects is empty")
)

type workspaceManifest struct {
	Workspace workspaceSection `toml:"workspace"`
	Runtime   runtimeSection   `toml:"runtime"`
}

type workspaceSection struct {
	Name          string   `toml:"name"`
	Projects      []string `toml:"projects"`
	Configuration string   `toml:"configuration"`
}

type runtimeSection struct {
	ReferenceDirs []string           `toml:"reference_dirs"`
	ToolDirs      []string           `toml:"tool_dirs"`
	CompilerDir   string             `toml:"compiler_dir"`
	Frameworks    []frameworkSection `toml:"framework"`
}

type frameworkSection struct {
	Identifier string   `toml:"identifier"`
	Version    string   `toml:"version"`
	Profile    string   `toml:"profile"`
	Installed  *bool    `toml:"installed"`
	Dir        string   `toml:"dir"`
	FacadesDir string   `toml:"facades_dir"`
	ToolDirs   []string `toml:"tool_dirs"`
}

type projectManifest struct {
	Project        projectSection                `toml:"project"`
	Configurations map[string]configurationTable `toml:"configuration"`
	References     []referenceTable              `toml:"reference"`
	Files          []fileTable                   `toml:"file"`
}

type projectSection struct {
	Name       string           `toml:"name"`
	OutputKind string           `toml:"output_kind"`
	Framework  frameworkMoniker `toml:"framework"`
}

type frameworkMoniker struct {
	Identifier string `toml:"identifier"`
	Version    string `toml:"version"`
	Profile    string `toml:"profile"`
}

type configurationTable struct {
	Kind             string   `toml:"kind"`
	Output           string   `toml:"output"`
	Defines          []string `toml:"defines"`
	DebugSymbols     bool     `toml:"debug_symbols"`
	DebugType        string   `toml:"debug_type"`
	Optimize         bool     `toml:"optimize"`
	Tailcalls        *bool    `toml:"tailcalls"`
	ExtraFlags       string   `toml:"extra_flags"`
	DocFile          string   `toml:"doc_file"`
	WarningLevel     int      `toml:"warning_level"`
	NoWarn           []string `toml:"no_warn"`
	WarningsAsErrors bool     `toml:"warnings_as_errors"`
}

type referenceTable struct {
	Kind     string        `toml:"kind"`
	Identity string        `toml:"identity"`
	HintPath string        `toml:"hint_path"`
	Package  *packageTable `toml:"package"`
}

type packageTable struct {
	Name       string          `toml:"name"`
	Assemblies []assemblyTable `toml:"assemblies"`
}

type assemblyTable struct {
	Name     string `toml:"name"`
	FullName string `toml:"full_name"`
	Location string `toml:"location"`
}

type fileTable struct {
	Path         string `toml:"path"`
	BuildAction  string `toml:"build_action"`
	VirtualPath  string `toml:"virtual_path"`
	SharedAssets bool   `toml:"shared_assets"`
	Directory    bool   `toml:"directory"`
}

// LoadWorkspace decodes a workspace manifest and every project it lists.
// Relative paths are resolved against the manifest directory.
func LoadWorkspace(path string) (*Workspace, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve path: %w", path, err)
	}
	var m workspaceManifest
	meta, err := toml.DecodeFile(abs, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse: %w", abs, err)
	}
	if !meta.IsDefined("workspace") {
		return nil, fmt.Errorf("%s: %w", abs, ErrWorkspaceSectionMissing)
	}
	if len(m.Workspace.Projects) == 0 {
		return nil, fmt.Errorf("%s: %w", abs, ErrNoProjects)
	}

	root := filepath.Dir(abs)
	projects := make([]*Project, 0, len(m.Workspace.Projects))
	for _, rel := range m.Workspace.Projects {
		p, err := LoadProject(resolveRel(root, rel))
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	ws := NewWorkspace(strings.TrimSpace(m.Workspace.Name), projects)
	if ws.Name == "" {
		ws.Name = filepath.Base(root)
	}
	ws.Root = root
	ws.ManifestPath = abs
	ws.DefaultConfiguration = strings.TrimSpace(m.Workspace.Configuration)
	if ws.DefaultConfiguration == "" {
		ws.DefaultConfiguration = "Debug"
	}
	ws.Runtime = m.Runtime.toSpec(root)
	return ws, nil
}

func (r runtimeSection) toSpec(root string) RuntimeSpec {
	spec := RuntimeSpec{
		ReferenceDirs: resolveAll(root, r.ReferenceDirs),
		ToolDirs:      resolveAll(root, r.ToolDirs),
	}
	if r.CompilerDir != "" {
		spec.CompilerDir = resolveRel(root, r.CompilerDir)
	}
	for _, f := range r.Frameworks {
		installed := true
		if f.Installed != nil {
			installed = *f.Installed
		}
		rf := RuntimeFramework{
			Identifier: strings.TrimSpace(f.Identifier),
			Version:    strings.TrimSpace(f.Version),
			Profile:    strings.TrimSpace(f.Profile),
			Installed:  installed,
			ToolDirs:   resolveAll(root, f.ToolDirs),
		}
		if f.Dir != "" {
			rf.Dir = resolveRel(root, f.Dir)
		}
		if f.FacadesDir != "" {
			rf.FacadesDir = resolveRel(root, f.FacadesDir)
		}
		spec.Frameworks = append(spec.Frameworks, rf)
	}
	return spec
}

// LoadProject decodes one project manifest.
func LoadProject(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve path: %w", path, err)
	}
	var m projectManifest
	meta, err := toml.DecodeFile(abs, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse: %w", abs, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", abs, ErrProjectSectionMissing)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(m.Project.Name) == "" {
		return nil, fmt.Errorf("%s: %w", abs, ErrProjectNameMissing)
	}

	dir := filepath.Dir(abs)
	p := &Project{
		Name:         strings.TrimSpace(m.Project.Name),
		Dir:          dir,
		ManifestPath: abs,
		Output:       ParseOutputKind(m.Project.OutputKind),
		Framework: framework.Descriptor{
			Identifier: strings.TrimSpace(m.Project.Framework.Identifier),
			Version:    framework.ParseVersion(m.Project.Framework.Version),
			Profile:    strings.TrimSpace(m.Project.Framework.Profile),
		},
		Configurations: make(map[string]Configuration, len(m.Configurations)),
	}
	if p.Framework.Identifier == "" {
		p.Framework.Identifier = framework.IdentifierDesktop
	}

	for name, c := range m.Configurations {
		cfg, err := c.toConfiguration(name)
		if err != nil {
			return nil, fmt.Errorf("%s: configuration %q: %w", abs, name, err)
		}
		p.Configurations[name] = cfg
	}

	for i, r := range m.References {
		kind, err := ParseRefKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s: reference #%d: %w", abs, i+1, err)
		}
		ref := DeclaredReference{
			Kind:     kind,
			Identity: strings.TrimSpace(r.Identity),
			HintPath: strings.TrimSpace(r.HintPath),
		}
		if r.Package != nil {
			pkg := &PackageInfo{Name: strings.TrimSpace(r.Package.Name)}
			for _, a := range r.Package.Assemblies {
				pkg.Assemblies = append(pkg.Assemblies, PackageAssembly{
					Name:     a.Name,
					FullName: a.FullName,
					Location: a.Location,
				})
			}
			ref.Package = pkg
		}
		p.References = append(p.References, ref)
	}

	for i, f := range m.Files {
		if strings.TrimSpace(f.Path) == "" {
			return nil, fmt.Errorf("%s: file #%d: missing path", abs, i+1)
		}
		virtual := f.VirtualPath
		if virtual == "" {
			virtual = f.Path
		}
		p.Files = append(p.Files, File{
			Path:         resolveRel(dir, f.Path),
			VirtualPath:  virtual,
			Action:       ParseBuildAction(f.BuildAction),
			SharedAssets: f.SharedAssets,
			Directory:    f.Directory,
		})
	}
	return p, nil
}

func (c configurationTable) toConfiguration(name string) (Configuration, error) {
	cfg := Configuration{Name: name, Output: c.Output}
	switch strings.ToLower(strings.TrimSpace(c.Kind)) {
	case "", "dotnet":
		cfg.Kind = ConfigDotNet
	case "generic":
		cfg.Kind = ConfigGeneric
		return cfg, nil
	default:
		return Configuration{}, fmt.Errorf("unknown configuration kind %q (expected: dotnet|generic)", c.Kind)
	}
	debugType := DebugType(strings.ToLower(strings.TrimSpace(c.DebugType)))
	switch debugType {
	case "", DebugFull, DebugPdbOnly:
	default:
		return Configuration{}, fmt.Errorf("unknown debug_type %q (expected: full|pdbonly)", c.DebugType)
	}
	tailcalls := true
	if c.Tailcalls != nil {
		tailcalls = *c.Tailcalls
	}
	cfg.Compiler = &CompilerSettings{
		Defines:          c.Defines,
		DebugSymbols:     c.DebugSymbols,
		DebugType:        debugType,
		Optimize:         c.Optimize,
		Tailcalls:        tailcalls,
		ExtraFlags:       c.ExtraFlags,
		DocFile:          c.DocFile,
		WarningLevel:     c.WarningLevel,
		NoWarn:           c.NoWarn,
		WarningsAsErrors: c.WarningsAsErrors,
	}
	return cfg, nil
}

func resolveRel(base, p string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func resolveAll(base string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, resolveRel(base, p))
	}
	return out
}
