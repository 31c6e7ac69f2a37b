package compileropts

import (
	"sort"
	"strings"

	"fsargs/internal/project"
)

// Fixed global flags emitted around --out and --targetprofile.
var (
	leadingGlobals  = []string{"--simpleresolution", "--noframework"}
	trailingGlobals = []string{"--platform:anycpu", "--fullpaths", "--flaterrors"}
)

// PortableProfile is the --targetprofile value for portable projects.
const PortableProfile = "netcore"

// Input is everything the assembler needs; it never looks anything up.
type Input struct {
	OutputPath string
	// Portable emits --targetprofile when the project or a referenced
	// project is portable.
	Portable   bool
	Settings   project.CompilerSettings
	OutputKind project.OutputKind
	References []string
	Files      []project.File
}

// Assemble builds the ordered option list.
func Assemble(in Input) []Option {
	opts := make([]Option, 0, 16+len(in.References)+len(in.Files))

	for _, flag := range leadingGlobals {
		opts = append(opts, Global{Flag: flag})
	}
	opts = append(opts, Output{Path: in.OutputPath})
	if in.Portable {
		opts = append(opts, TargetProfile{Profile: PortableProfile})
	}
	for _, flag := range trailingGlobals {
		opts = append(opts, Global{Flag: flag})
	}

	s := in.Settings
	for _, symbol := range s.Defines {
		if symbol = strings.TrimSpace(symbol); symbol != "" {
			opts = append(opts, Define{Symbol: symbol})
		}
	}
	opts = append(opts,
		Debug{Mode: debugMode(s)},
		Optimize{On: s.Optimize},
		Tailcalls{On: s.Tailcalls},
		Target{Output: targetKind(in.OutputKind)},
	)

	if s.DocFile != "" {
		opts = append(opts, Doc{Path: s.DocFile})
	}
	if s.WarningLevel > 0 {
		opts = append(opts, WarnLevel{Level: s.WarningLevel})
	}
	if codes := nonEmpty(s.NoWarn); len(codes) > 0 {
		opts = append(opts, NoWarn{Codes: codes})
	}
	if s.WarningsAsErrors {
		opts = append(opts, WarnAsError{})
	}

	for _, flag := range strings.Fields(s.ExtraFlags) {
		opts = append(opts, Raw{Flag: flag})
	}
	for _, ref := range in.References {
		opts = append(opts, Reference{Path: ref})
	}
	for _, f := range in.Files {
		if f.Action != project.ActionEmbeddedResource || f.Directory {
			continue
		}
		opts = append(opts, Resource{File: f.Path, LogicalName: LogicalName(f.VirtualPath)})
	}
	for _, f := range SourceFiles(in.Files) {
		opts = append(opts, SourceFile{Path: f.Path})
	}
	return opts
}

// LogicalName derives a manifest resource name from a project-relative
// path: both separator styles become '.'.
func LogicalName(virtualPath string) string {
	return strings.NewReplacer("/", ".", `\`, ".").Replace(virtualPath)
}

// SourceFiles returns the Compile files in declaration order with
// shared-assets files moved to the front.
func SourceFiles(files []project.File) []project.File {
	var out []project.File
	for _, f := range files {
		if f.Action == project.ActionCompile && !f.Directory {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SharedAssets && !out[j].SharedAssets
	})
	return out
}

func debugMode(s project.CompilerSettings) DebugMode {
	if !s.DebugSymbols {
		return DebugOff
	}
	switch s.DebugType {
	case project.DebugFull:
		return DebugFull
	case project.DebugPdbOnly:
		return DebugPdbOnly
	}
	return DebugOn
}

func targetKind(k project.OutputKind) TargetKind {
	switch k {
	case project.OutputLibrary:
		return TargetLibrary
	case project.OutputModule:
		return TargetModule
	}
	return TargetExe
}

func nonEmpty(items []string) []string {
	var out []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
