// Package toolfind locates the compiler and the interactive shell.
package toolfind

import (
	"os"
	"path/filepath"
	goruntime "runtime"

	"fsargs/internal/framework"
)

// Extensions are tried in order for every directory.
var Extensions = []string{"", ".exe", ".bat"}

// Compiler and shell names, most specific first.
var (
	CompilerNames = []string{"fsc", "fsharpc"}
	ShellNames    = []string{"fsi", "fsharpi"}
)

// Tool is a located executable. The zero value means not found.
type Tool struct {
	Dir      string
	FileName string
}

func (t Tool) Found() bool { return t.FileName != "" }

// Path joins Dir and FileName.
func (t Tool) Path() string {
	if !t.Found() {
		return ""
	}
	return filepath.Join(t.Dir, t.FileName)
}

// Strategy yields directories to search, in order.
type Strategy interface {
	Name() string
	Directories() []string
}

// RuntimeStrategy searches the tool directories of the framework the
// runtime would select.
type RuntimeStrategy struct {
	Runtime framework.Runtime
}

func (RuntimeStrategy) Name() string { return "runtime" }

func (s RuntimeStrategy) Directories() []string {
	if s.Runtime == nil {
		return nil
	}
	fx, err := framework.Select(s.Runtime)
	if err != nil {
		return nil
	}
	return s.Runtime.ToolDirectories(fx)
}

// PathStrategy searches the entries of a PATH-style list.
type PathStrategy struct {
	List string
}

func (PathStrategy) Name() string { return "path" }

func (s PathStrategy) Directories() []string {
	if s.List == "" {
		return nil
	}
	return filepath.SplitList(s.List)
}

// DirStrategy searches fixed directories.
type DirStrategy struct {
	Label string
	Dirs  []string
}

func (s DirStrategy) Name() string { return s.Label }

func (s DirStrategy) Directories() []string { return s.Dirs }

// DefaultCompilerDir is the usual install folder of the compiler.
func DefaultCompilerDir() string {
	if goruntime.GOOS == "windows" {
		base := os.Getenv("ProgramFiles(x86)")
		if base == "" {
			base = os.Getenv("ProgramFiles")
		}
		return filepath.Join(base, "Microsoft SDKs", "F#", "4.0", "Framework", "v4.0")
	}
	return "/usr/lib/mono/fsharp"
}

// Finder runs strategies in order.
type Finder struct {
	Strategies []Strategy
	Extensions []string
}

// New builds the standard chain: runtime tool directories, then PATH, then
// the compiler install folder. An empty compilerDir uses
// DefaultCompilerDir.
func New(rt framework.Runtime, pathList, compilerDir string) *Finder {
	if compilerDir == "" {
		compilerDir = DefaultCompilerDir()
	}
	return &Finder{
		Strategies: []Strategy{
			RuntimeStrategy{Runtime: rt},
			PathStrategy{List: pathList},
			DirStrategy{Label: "compiler", Dirs: []string{compilerDir}},
		},
		Extensions: Extensions,
	}
}

// Candidate is one probed location.
type Candidate struct {
	Strategy string
	Tool     Tool
}

// Candidates lists every location Find would probe for name, in order.
func (f *Finder) Candidates(name string) []Candidate {
	exts := f.Extensions
	if exts == nil {
		exts = Extensions
	}
	var out []Candidate
	for _, s := range f.Strategies {
		for _, dir := range s.Directories() {
			if dir == "" {
				continue
			}
			for _, ext := range exts {
				out = append(out, Candidate{Strategy: s.Name(), Tool: Tool{Dir: dir, FileName: name + ext}})
			}
		}
	}
	return out
}

// Find returns the first existing candidate for name.
func (f *Finder) Find(name string) (Tool, bool) {
	for _, c := range f.Candidates(name) {
		if isFile(c.Tool.Path()) {
			return c.Tool, true
		}
	}
	return Tool{}, false
}

// FindAny tries each name in turn.
func (f *Finder) FindAny(names ...string) (Tool, bool) {
	for _, name := range names {
		if tool, ok := f.Find(name); ok {
			return tool, true
		}
	}
	return Tool{}, false
}

// FindCompiler locates the batch compiler.
func (f *Finder) FindCompiler() (Tool, bool) { return f.FindAny(CompilerNames...) }

// FindShell locates the interactive shell.
func (f *Finder) FindShell() (Tool, bool) { return f.FindAny(ShellNames...) }

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
