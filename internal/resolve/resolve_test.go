package resolve

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"fsargs/internal/diag"
	"fsargs/internal/framework"
	"fsargs/internal/metadata"
	"fsargs/internal/pathset"
	"fsargs/internal/project"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

type fakeRuntime struct {
	facades  []string
	resolved map[string]string
	asked    []string
}

func (f *fakeRuntime) Frameworks() []framework.Descriptor                 { return nil }
func (f *fakeRuntime) IsInstalled(framework.Descriptor) bool              { return true }
func (f *fakeRuntime) FrameworkAssemblies(framework.Descriptor) []string  { return nil }
func (f *fakeRuntime) Facades(framework.Descriptor) []string              { return f.facades }
func (f *fakeRuntime) ReferenceDirectories(framework.Descriptor) []string { return nil }
func (f *fakeRuntime) ToolDirectories(framework.Descriptor) []string      { return nil }
func (f *fakeRuntime) ResolveAssembly(name string, v framework.Version) (string, bool) {
	f.asked = append(f.asked, name+"/"+v.String())
	p, ok := f.resolved[name]
	return p, ok
}

type fakeInspector struct {
	refs map[string][]metadata.AssemblyName
}

func (f fakeInspector) Identity(string) (metadata.AssemblyName, error) {
	return metadata.AssemblyName{}, nil
}

func (f fakeInspector) AssemblyReferences(path string) ([]metadata.AssemblyName, error) {
	refs, ok := f.refs[path]
	if !ok {
		return nil, metadata.ErrNotManaged
	}
	return refs, nil
}

func (f fakeInspector) TargetFramework(string) (string, bool, error) { return "", false, nil }

func TestSubstitutionRule(t *testing.T) {
	cases := []struct {
		in, want string
		ok       bool
	}{
		{
			in:   `C:\Program Files\Reference Assemblies\Microsoft\FSharp\3.0\Runtime\v4.0\FSharp.Core.dll`,
			want: "C:/Program Files/Reference Assemblies/Microsoft/FSharp/.NETFramework/v4.0/4.3.0.0/FSharp.Core.dll",
			ok:   true,
		},
		{
			in:   "/x/reference assemblies/microsoft/fsharp/3.0/runtime/V4.0/FSharp.Core.dll",
			want: "/x/Reference Assemblies/Microsoft/FSharp/.NETFramework/v4.0/4.3.0.0/FSharp.Core.dll",
			ok:   true,
		},
		{in: "lib/Other.dll", want: "lib/Other.dll"},
	}
	for _, tc := range cases {
		got, ok := DefaultSubstitutions[0].Apply(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Apply(%q) = %q, %v, want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCollectAssemblyHintPath(t *testing.T) {
	dir := t.TempDir()
	lib := touch(t, filepath.Join(dir, "lib", "Xml.dll"))
	p := &project.Project{Name: "App", Dir: filepath.Join(dir, "app")}
	c := NewCollector(project.NewWorkspace("w", []*project.Project{p}), p, "Debug")

	got := c.Collect(project.DeclaredReference{Kind: project.RefAssembly, HintPath: `..\lib\Xml.dll`})
	if !reflect.DeepEqual(got, []string{lib}) {
		t.Fatalf("Collect(existing hint) = %v, want [%s]", got, lib)
	}

	got = c.Collect(project.DeclaredReference{Kind: project.RefAssembly, HintPath: "../lib/Missing.dll"})
	if !reflect.DeepEqual(got, []string{"Missing.dll"}) {
		t.Fatalf("Collect(missing hint) = %v, want [Missing.dll]", got)
	}

	if got := c.Collect(project.DeclaredReference{Kind: project.RefAssembly, Identity: "System"}); len(got) != 0 {
		t.Fatalf("Collect(no hint) = %v, want nothing", got)
	}
}

func TestCollectSubstitutedHintPath(t *testing.T) {
	dir := t.TempDir()
	want := touch(t, filepath.Join(dir, "Reference Assemblies", "Microsoft", "FSharp", ".NETFramework", "v4.0", "4.3.0.0", "FSharp.Core.dll"))
	p := &project.Project{Name: "App", Dir: dir}
	c := NewCollector(nil, p, "Debug")

	hint := filepath.Join(dir, "Reference Assemblies", "Microsoft", "FSharp", "3.0", "Runtime", "v4.0", "FSharp.Core.dll")
	got := c.Collect(project.DeclaredReference{Kind: project.RefAssembly, HintPath: hint})
	if !reflect.DeepEqual(got, []string{want}) {
		t.Fatalf("Collect(substituted) = %v, want [%s]", got, want)
	}
}

func TestCollectPackage(t *testing.T) {
	pkg := &project.PackageInfo{
		Name: "mono",
		Assemblies: []project.PackageAssembly{
			{Name: "System", FullName: "System, Version=4.0.0.0", Location: "/gac/System.dll"},
			{Name: "System.Xml", FullName: "System.Xml, Version=4.0.0.0", Location: "/gac/System.Xml.dll"},
		},
	}
	c := NewCollector(nil, &project.Project{Name: "App"}, "Debug")
	cases := []struct {
		identity string
		want     []string
	}{
		{"mono", []string{"/gac/System.dll", "/gac/System.Xml.dll"}},
		{"System.Xml", []string{"/gac/System.Xml.dll"}},
		{"System, Version=4.0.0.0", []string{"/gac/System.dll"}},
		{"System.Core", nil},
	}
	for _, tc := range cases {
		got := c.Collect(project.DeclaredReference{Kind: project.RefPackage, Identity: tc.identity, Package: pkg})
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Collect(%q) = %v, want %v", tc.identity, got, tc.want)
		}
	}

	got := c.Collect(project.DeclaredReference{Kind: project.RefPackage, Identity: "x", HintPath: "/nowhere/X.dll"})
	if !reflect.DeepEqual(got, []string{"X.dll"}) {
		t.Fatalf("Collect(package without info) = %v, want hint fallback", got)
	}
}

func TestCollectProjectReference(t *testing.T) {
	lib := &project.Project{
		Name: "Lib",
		Dir:  "/src/Lib",
		Configurations: map[string]project.Configuration{
			"Debug": {Name: "Debug", Output: "bin/Lib.dll"},
		},
	}
	app := &project.Project{
		Name:       "App",
		References: []project.DeclaredReference{{Kind: project.RefProject, Identity: "Lib"}},
	}
	ws := project.NewWorkspace("w", []*project.Project{app, lib})

	bag := diag.NewBag(8)
	c := NewCollector(ws, app, "Debug")
	c.Reporter = diag.BagReporter{Bag: bag}

	got := c.Collect(app.References[0])
	want := []string{filepath.Join("/src/Lib", "bin", "Lib.dll")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Collect(project) = %v, want %v", got, want)
	}

	if got := c.Collect(project.DeclaredReference{Kind: project.RefProject, Identity: "Ghost"}); got != nil {
		t.Fatalf("Collect(unknown project) = %v, want nil", got)
	}
	c.Configuration = "Release"
	if got := c.Collect(app.References[0]); got != nil {
		t.Fatalf("Collect(project, missing config) = %v, want nil", got)
	}
	if bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("collector must stay silent above info level: %v", bag.Items())
	}
	if got := c.Collect(project.DeclaredReference{Kind: project.RefCustom, Identity: "X"}); got != nil {
		t.Fatalf("Collect(custom) = %v, want nil", got)
	}
}

func TestCollectAllObservesEachReference(t *testing.T) {
	dir := t.TempDir()
	xml := touch(t, filepath.Join(dir, "lib", "System.Xml.dll"))
	app := &project.Project{
		Name: "App",
		Dir:  dir,
		References: []project.DeclaredReference{
			{Kind: project.RefAssembly, Identity: "System.Xml", HintPath: xml},
			{Kind: project.RefAssembly, Identity: "Dup", HintPath: xml},
			{Kind: project.RefCustom, Identity: "X"},
		},
	}
	c := NewCollector(project.NewWorkspace("w", []*project.Project{app}), app, "Debug")

	var seen []string
	c.Observe = func(ref project.DeclaredReference, collect func() []string) []string {
		paths := collect()
		seen = append(seen, ref.Identity+":"+strconv.Itoa(len(paths)))
		return paths
	}
	set := c.CollectAll(pathset.New("/fx/Profile.dll"))

	if want := []string{"System.Xml:1", "Dup:1", "X:0"}; !reflect.DeepEqual(seen, want) {
		t.Fatalf("observed = %v, want %v", seen, want)
	}
	if want := []string{"/fx/Profile.dll", xml}; !reflect.DeepEqual(set.Paths(), want) {
		t.Fatalf("CollectAll() = %v, want %v", set.Paths(), want)
	}
	if got := NewCollector(nil, nil, "Debug").CollectAll(nil); got.Len() != 0 {
		t.Fatalf("CollectAll(no project) = %v, want empty", got.Paths())
	}
}

func TestCollectProjectReferenceIgnoresCase(t *testing.T) {
	lib := &project.Project{
		Name: "Lib",
		Dir:  "/src/Lib",
		Configurations: map[string]project.Configuration{
			"Debug": {Name: "Debug", Output: "bin/Lib.dll"},
		},
	}
	app := &project.Project{
		Name:       "App",
		References: []project.DeclaredReference{{Kind: project.RefProject, Identity: "lib"}},
	}
	ws := project.NewWorkspace("w", []*project.Project{app, lib})

	got := NewCollector(ws, app, "Debug").Collect(app.References[0])
	want := []string{filepath.Join("/src/Lib", "bin", "Lib.dll")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Collect(lib) = %v, want %v", got, want)
	}
}

func TestReconcileBothPresent(t *testing.T) {
	rt := &fakeRuntime{}
	bag := diag.NewBag(8)
	r := &Reconciler{
		Directory:  DirectoryStrategy{Dirs: []string{t.TempDir()}},
		Dependency: DependencyStrategy{Runtime: rt, Inspector: fakeInspector{}},
		Reporter:   diag.BagReporter{Bag: bag},
	}
	set := pathset.New("/fx/mscorlib.dll", "/fs/FSharp.Core.dll")
	added, branch := r.Reconcile(set)
	if branch != BranchBothPresent || len(added) != 0 || set.Len() != 2 {
		t.Fatalf("Reconcile = %v, %v (len %d), want no action", added, branch, set.Len())
	}
	if len(rt.asked) != 0 || bag.Len() != 0 {
		t.Fatalf("both present must not search or warn: asked=%v diags=%v", rt.asked, bag.Items())
	}
}

func TestReconcileMissingFSharpCoreSearchesCorlibDirFirst(t *testing.T) {
	fxDir := t.TempDir()
	defaultDir := t.TempDir()
	corlib := touch(t, filepath.Join(fxDir, "mscorlib.dll"))
	want := touch(t, filepath.Join(fxDir, "FSharp.Core.dll"))
	touch(t, filepath.Join(defaultDir, "FSharp.Core.dll"))

	r := &Reconciler{Directory: DirectoryStrategy{Dirs: []string{defaultDir}}}
	set := pathset.New(corlib)
	added, branch := r.Reconcile(set)
	if branch != BranchMissingFSharpCore || !reflect.DeepEqual(added, []string{want}) {
		t.Fatalf("Reconcile = %v, %v, want [%s]", added, branch, want)
	}
}

func TestReconcileMissingMscorlibFollowsDependency(t *testing.T) {
	rt := &fakeRuntime{resolved: map[string]string{"mscorlib": "/fx/4.0/mscorlib.dll"}}
	insp := fakeInspector{refs: map[string][]metadata.AssemblyName{
		"/fs/FSharp.Core.dll": {{Name: "mscorlib", Version: [4]uint16{4, 0, 0, 0}}},
	}}
	r := &Reconciler{Dependency: DependencyStrategy{Runtime: rt, Inspector: insp}}
	set := pathset.New("/fs/FSharp.Core.dll")
	added, branch := r.Reconcile(set)
	if branch != BranchMissingMscorlib || !reflect.DeepEqual(added, []string{"/fx/4.0/mscorlib.dll"}) {
		t.Fatalf("Reconcile = %v, %v", added, branch)
	}
	if !reflect.DeepEqual(rt.asked, []string{"mscorlib/4.0.0.0"}) {
		t.Fatalf("runtime asked %v, want [mscorlib/4.0.0.0]", rt.asked)
	}
}

func TestReconcileMissingBothWarnsIndependently(t *testing.T) {
	dir := t.TempDir()
	corlib := touch(t, filepath.Join(dir, "mscorlib.dll"))

	bag := diag.NewBag(8)
	r := &Reconciler{
		Directory: DirectoryStrategy{Dirs: []string{dir}},
		Reporter:  diag.BagReporter{Bag: bag},
	}
	set := pathset.New("/lib/Other.dll")
	added, branch := r.Reconcile(set)
	if branch != BranchMissingBoth || !reflect.DeepEqual(added, []string{corlib}) {
		t.Fatalf("Reconcile = %v, %v, want [%s]", added, branch, corlib)
	}
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("diagnostics = %v, want one warning", items)
	}
	if items[0].Severity != diag.SevWarning || items[0].Code != diag.ResDefaultReferenceFailed {
		t.Fatalf("diagnostic = %+v", items[0])
	}
	if want := "Resolution: Assembly resolution failed when trying to find default reference for: FSharp.Core"; items[0].Message != want {
		t.Fatalf("message = %q, want %q", items[0].Message, want)
	}
}

func TestReconcileNothingFoundEmitsTwoWarnings(t *testing.T) {
	bag := diag.NewBag(8)
	r := &Reconciler{
		Directory: DirectoryStrategy{Dirs: []string{t.TempDir()}},
		Reporter:  diag.BagReporter{Bag: bag},
	}
	added, _ := r.Reconcile(pathset.New())
	if len(added) != 0 {
		t.Fatalf("added = %v, want none", added)
	}
	var msgs []string
	for _, d := range bag.Items() {
		msgs = append(msgs, d.Message)
	}
	want := []string{FailureMessage("FSharp.Core"), FailureMessage("mscorlib")}
	if !reflect.DeepEqual(msgs, want) {
		t.Fatalf("messages = %v, want %v", msgs, want)
	}
}

func TestFacades(t *testing.T) {
	rt := &fakeRuntime{facades: []string{
		"/fx/Facades/System.Runtime.dll",
		"/fx/Facades/mscorlib.dll",
		"/fx/Facades/FSharp.Core.dll",
		"/fx/Facades/System.Threading.Tasks.dll",
	}}
	base := func() *pathset.Set { return pathset.New("/lib/Portable.dll") }
	portableLib := func(p string) bool { return p == "/lib/Portable.dll" }

	cases := []struct {
		name string
		in   FacadeInput
		want []string
	}{
		{"portable project", FacadeInput{Runtime: rt, ProjectPortable: true, ReferencedPortable: true, AssemblyPortable: portableLib}, nil},
		{"referenced portable", FacadeInput{Runtime: rt, ReferencedPortable: true}, []string{"/fx/Facades/System.Runtime.dll", "/fx/Facades/System.Threading.Tasks.dll"}},
		{"portable assembly", FacadeInput{Runtime: rt, AssemblyPortable: portableLib}, []string{"/fx/Facades/System.Runtime.dll", "/fx/Facades/System.Threading.Tasks.dll"}},
		{"nothing portable", FacadeInput{Runtime: rt, AssemblyPortable: func(string) bool { return false }}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := base()
			var got []string
			if NeedsFacades(tc.in, set.Paths()) {
				got = AddFacades(tc.in.Runtime, tc.in.Framework, set)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("facades = %v, want %v", got, tc.want)
			}
			if _, ok := set.FindSuffix(MscorlibFile); ok {
				t.Fatalf("facades must not add mscorlib")
			}
		})
	}
}

func BenchmarkSubstitute(b *testing.B) {
	hint := `C:\Program Files\Reference Assemblies\Microsoft\FSharp\3.0\Runtime\v4.0\FSharp.Core.dll`
	for b.Loop() {
		substitute(DefaultSubstitutions, hint)
	}
}
