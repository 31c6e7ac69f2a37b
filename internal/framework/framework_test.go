package framework

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v4.5", "4.5"},
		{"4.5.1", "4.5.1"},
		{"v4.x", "4.0"},
		{"", "0"},
		{"4.0.0.0", "4.0.0.0"},
	}
	for _, tt := range tests {
		if got := ParseVersion(tt.in).String(); got != tt.want {
			t.Fatalf("ParseVersion(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPrefers(t *testing.T) {
	tests := []struct {
		name      string
		candidate Version
		best      Version
		want      bool
	}{
		{"higher minor wins", Version{4, 5}, Version{4, 0}, true},
		{"lower minor loses", Version{4, 0}, Version{4, 5}, false},
		{"shorter equal prefix keeps best", Version{4}, Version{4, 5, 1}, false},
		{"longer equal prefix keeps best", Version{4, 5, 1}, Version{4}, false},
		{"seed is beaten", Version{2, 0}, Version{0}, true},
		{"equal keeps best", Version{4, 5}, Version{4, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prefers(tt.candidate, tt.best); got != tt.want {
				t.Fatalf("Prefers(%v, %v) = %v, want %v", tt.candidate, tt.best, got, tt.want)
			}
		})
	}
}

func TestParseMoniker(t *testing.T) {
	d, err := ParseMoniker(".NETPortable,Version=v4.5,Profile=Profile78")
	if err != nil {
		t.Fatalf("ParseMoniker: %v", err)
	}
	if d.Identifier != IdentifierPortable || d.Profile != "Profile78" || d.Version.String() != "4.5" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	if !d.IsPortable() {
		t.Fatalf("expected portable descriptor")
	}
	if got := d.Moniker(); got != ".NETPortable,Version=v4.5,Profile=Profile78" {
		t.Fatalf("Moniker() = %q", got)
	}

	d, err = ParseMoniker(".NETFramework,Version=v4.5")
	if err != nil {
		t.Fatalf("ParseMoniker: %v", err)
	}
	if d.IsPortable() {
		t.Fatalf("desktop moniker must not be portable")
	}

	if _, err := ParseMoniker("  "); err == nil {
		t.Fatalf("expected error for empty moniker")
	}
}

type fakeRuntime struct {
	frameworks []Descriptor
	installed  map[string]bool
}

func (f fakeRuntime) Frameworks() []Descriptor                       { return f.frameworks }
func (f fakeRuntime) IsInstalled(d Descriptor) bool                  { return f.installed[d.Moniker()] }
func (f fakeRuntime) FrameworkAssemblies(Descriptor) []string        { return nil }
func (f fakeRuntime) Facades(Descriptor) []string                    { return nil }
func (f fakeRuntime) ReferenceDirectories(Descriptor) []string       { return nil }
func (f fakeRuntime) ToolDirectories(Descriptor) []string            { return nil }
func (f fakeRuntime) ResolveAssembly(string, Version) (string, bool) { return "", false }

func desktop(v string) Descriptor {
	return Descriptor{Identifier: IdentifierDesktop, Version: ParseVersion(v)}
}

func TestSelectPicksNewestInstalledDesktop(t *testing.T) {
	portable := Descriptor{Identifier: IdentifierPortable, Version: ParseVersion("v5.0"), Profile: "Profile7"}
	rt := fakeRuntime{
		frameworks: []Descriptor{desktop("v2.0"), desktop("v4.0"), portable, desktop("v4.5"), desktop("v4.6")},
		installed: map[string]bool{
			desktop("v2.0").Moniker(): true,
			desktop("v4.0").Moniker(): true,
			portable.Moniker():        true,
			desktop("v4.5").Moniker(): true,
		},
	}
	got, err := Select(rt)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !got.Equal(desktop("v4.5")) {
		t.Fatalf("Select = %s, want v4.5 desktop", got)
	}
}

func TestSelectFallsBackToFirstCandidate(t *testing.T) {
	first := Descriptor{Identifier: IdentifierCore, Version: ParseVersion("v4.5")}
	rt := fakeRuntime{frameworks: []Descriptor{first, desktop("v4.5")}}
	got, err := Select(rt)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !got.Equal(first) {
		t.Fatalf("Select = %s, want first candidate", got)
	}
}

func TestSelectNoFrameworks(t *testing.T) {
	_, err := Select(fakeRuntime{})
	if !errors.Is(err, ErrNoFrameworksInstalled) {
		t.Fatalf("Select error = %v, want ErrNoFrameworksInstalled", err)
	}
}

func BenchmarkPrefers(b *testing.B) {
	a, c := Version{4, 5, 2}, Version{4, 5, 1}
	for i := 0; i < b.N; i++ {
		_ = Prefers(a, c)
	}
}
