package framework

import (
	"fmt"
	"strings"
)

// Well-known framework identifiers.
const (
	IdentifierDesktop  = ".NETFramework"
	IdentifierPortable = ".NETPortable"
	IdentifierCore     = ".NETCore"
)

// Descriptor names a target framework. A non-empty Profile marks a
// portable (restricted) framework.
type Descriptor struct {
	Identifier string
	Version    Version
	Profile    string
}

// IsPortable reports whether d is a profile framework.
func (d Descriptor) IsPortable() bool {
	return strings.TrimSpace(d.Profile) != ""
}

// Moniker returns the attribute form, e.g.
// ".NETPortable,Version=v4.5,Profile=Profile78".
func (d Descriptor) Moniker() string {
	s := fmt.Sprintf("%s,Version=v%s", d.Identifier, d.Version)
	if d.IsPortable() {
		s += ",Profile=" + d.Profile
	}
	return s
}

func (d Descriptor) String() string {
	return d.Moniker()
}

// Equal compares identifier, profile and version element-wise.
func (d Descriptor) Equal(o Descriptor) bool {
	if d.Identifier != o.Identifier || d.Profile != o.Profile || len(d.Version) != len(o.Version) {
		return false
	}
	for i := range d.Version {
		if d.Version[i] != o.Version[i] {
			return false
		}
	}
	return true
}

// ParseMoniker parses the string carried by TargetFrameworkAttribute.
// Unknown components are ignored; a missing version parses as [0].
func ParseMoniker(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Descriptor{}, fmt.Errorf("empty framework moniker")
	}
	parts := strings.Split(s, ",")
	d := Descriptor{Identifier: strings.TrimSpace(parts[0]), Version: Version{0}}
	if d.Identifier == "" {
		return Descriptor{}, fmt.Errorf("framework moniker %q has no identifier", s)
	}
	for _, p := range parts[1:] {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "version":
			d.Version = ParseVersion(strings.TrimSpace(value))
		case "profile":
			d.Profile = strings.TrimSpace(value)
		}
	}
	return d, nil
}
