package compileropts

import (
	"reflect"
	"testing"

	"fsargs/internal/project"
)

func TestWrapFileIsIdempotent(t *testing.T) {
	if got := WrapFile("a.dll"); got != `"a.dll"` {
		t.Fatalf(`WrapFile("a.dll") = %s, want "a.dll" quoted`, got)
	}
	if got := WrapFile(`"a.dll"`); got != `"a.dll"` {
		t.Fatalf("WrapFile(quoted) = %s, want unchanged", got)
	}
	if got := WrapFile(WrapFile("a b.dll")); got != `"a b.dll"` {
		t.Fatalf("WrapFile twice = %s", got)
	}
	if got := WrapFile(`"`); got != `"""` {
		t.Fatalf("WrapFile(lone quote) = %s", got)
	}
}

func TestAssembleOrder(t *testing.T) {
	in := Input{
		OutputPath: "/out/App.exe",
		Settings: project.CompilerSettings{
			Defines:      []string{"DEBUG", " ", "TRACE"},
			DebugSymbols: true,
			DebugType:    project.DebugFull,
			Tailcalls:    false,
			ExtraFlags:   "  --warnon:1182   --crossoptimize- ",
		},
		OutputKind: project.OutputExe,
		References: []string{"/fx/mscorlib.dll", "/fs/FSharp.Core.dll"},
		Files: []project.File{
			{Path: "/src/Program.fs", VirtualPath: "Program.fs", Action: project.ActionCompile},
			{Path: "/src/Resources/Icon.png", VirtualPath: "Resources/Icon.png", Action: project.ActionEmbeddedResource},
			{Path: "/src/Shared/Common.fs", VirtualPath: "Shared/Common.fs", Action: project.ActionCompile, SharedAssets: true},
			{Path: "/src/readme.txt", VirtualPath: "readme.txt", Action: project.ActionContent},
			{Path: "/src/Resources", VirtualPath: "Resources", Action: project.ActionEmbeddedResource, Directory: true},
		},
	}
	got := Render(Assemble(in), false)
	want := []string{
		"--simpleresolution",
		"--noframework",
		"--out:/out/App.exe",
		"--platform:anycpu",
		"--fullpaths",
		"--flaterrors",
		"--define:DEBUG",
		"--define:TRACE",
		"--debug:full",
		"--optimize-",
		"--tailcalls-",
		"--target:exe",
		"--warnon:1182",
		"--crossoptimize-",
		"-r:/fx/mscorlib.dll",
		"-r:/fs/FSharp.Core.dll",
		"--resource:/src/Resources/Icon.png,Resources.Icon.png",
		"/src/Shared/Common.fs",
		"/src/Program.fs",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Render(Assemble()) =\n%v\nwant\n%v", got, want)
	}
}

func TestAssemblePortableAndOptionalFlags(t *testing.T) {
	in := Input{
		OutputPath: "bin/Lib.dll",
		Portable:   true,
		Settings: project.CompilerSettings{
			Optimize:         true,
			Tailcalls:        true,
			DocFile:          "bin/Lib.xml",
			WarningLevel:     4,
			NoWarn:           []string{"40", "", "64"},
			WarningsAsErrors: true,
		},
		OutputKind: project.OutputLibrary,
	}
	got := Render(Assemble(in), true)
	want := []string{
		"--simpleresolution",
		"--noframework",
		`--out:"bin/Lib.dll"`,
		"--targetprofile:netcore",
		"--platform:anycpu",
		"--fullpaths",
		"--flaterrors",
		"--debug-",
		"--optimize+",
		"--tailcalls+",
		"--target:library",
		`--doc:"bin/Lib.xml"`,
		"--warn:4",
		"--nowarn:40,64",
		"--warnaserror+",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Render(Assemble()) =\n%v\nwant\n%v", got, want)
	}
}

func TestDebugForms(t *testing.T) {
	cases := []struct {
		settings project.CompilerSettings
		want     string
	}{
		{project.CompilerSettings{}, "--debug-"},
		{project.CompilerSettings{DebugType: project.DebugFull}, "--debug-"},
		{project.CompilerSettings{DebugSymbols: true}, "--debug+"},
		{project.CompilerSettings{DebugSymbols: true, DebugType: project.DebugFull}, "--debug:full"},
		{project.CompilerSettings{DebugSymbols: true, DebugType: project.DebugPdbOnly}, "--debug:pdbonly"},
	}
	for _, tc := range cases {
		if got := (Debug{Mode: debugMode(tc.settings)}).Args(false)[0]; got != tc.want {
			t.Fatalf("debug flag for %+v = %s, want %s", tc.settings, got, tc.want)
		}
	}
}

func TestTargetKinds(t *testing.T) {
	cases := map[project.OutputKind]string{
		project.OutputExe:     "--target:exe",
		project.OutputWinExe:  "--target:exe",
		project.OutputLibrary: "--target:library",
		project.OutputModule:  "--target:module",
	}
	for kind, want := range cases {
		if got := (Target{Output: targetKind(kind)}).Args(false)[0]; got != want {
			t.Fatalf("target for %v = %s, want %s", kind, got, want)
		}
	}
}

func TestTargetOptionFamily(t *testing.T) {
	var opt Option = Target{Output: TargetLibrary}
	if got := opt.Kind(); got != "target" {
		t.Fatalf("Target.Kind() = %q, want target", got)
	}
	if got := Render([]Option{opt}, false); len(got) != 1 || got[0] != "--target:library" {
		t.Fatalf("Render(Target) = %v", got)
	}
}

func TestResourceWrapped(t *testing.T) {
	opts := Assemble(Input{Files: []project.File{
		{Path: "Icon.png", VirtualPath: `Resources\Icon.png`, Action: project.ActionEmbeddedResource},
	}})
	var got []string
	for _, o := range opts {
		if o.Kind() == "resource" {
			got = o.Args(true)
		}
	}
	if want := []string{`--resource:"Icon.png","Resources.Icon.png"`}; !reflect.DeepEqual(got, want) {
		t.Fatalf("resource = %v, want %v", got, want)
	}
}

func BenchmarkAssemble(b *testing.B) {
	in := Input{OutputPath: "/out/App.exe", References: make([]string, 64), Files: make([]project.File, 64)}
	for i := range in.References {
		in.References[i] = "/lib/A.dll"
		in.Files[i] = project.File{Path: "/src/A.fs", Action: project.ActionCompile}
	}
	for b.Loop() {
		Render(Assemble(in), true)
	}
}
