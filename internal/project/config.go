package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownConfiguration is returned when a configuration name is not declared.
var ErrUnknownConfiguration = errors.New("unknown configuration")

// ConfigKind tags the configuration variants a host may hand over.
type ConfigKind uint8

const (
	// ConfigDotNet carries compiler settings.
	ConfigDotNet ConfigKind = iota
	// ConfigGeneric only carries an output path; compiler settings take
	// their defaults.
	ConfigGeneric
)

func (k ConfigKind) String() string {
	if k == ConfigGeneric {
		return "generic"
	}
	return "dotnet"
}

// DebugType is the kind of debug information requested.
type DebugType string

const (
	DebugFull    DebugType = "full"
	DebugPdbOnly DebugType = "pdbonly"
)

// CompilerSettings are the compiler-relevant values of a configuration.
type CompilerSettings struct {
	Defines          []string
	DebugSymbols     bool
	DebugType        DebugType
	Optimize         bool
	Tailcalls        bool
	ExtraFlags       string
	DocFile          string
	WarningLevel     int // 0 means not set
	NoWarn           []string
	WarningsAsErrors bool
}

// Configuration is one named build configuration of a project.
type Configuration struct {
	Name     string
	Kind     ConfigKind
	Output   string
	Compiler *CompilerSettings
}

// Settings resolves the variant once: generic configurations get zero-value
// settings with tail calls enabled, as the compiler does by default.
func (c Configuration) Settings() CompilerSettings {
	if c.Kind == ConfigDotNet && c.Compiler != nil {
		return *c.Compiler
	}
	return CompilerSettings{Tailcalls: true}
}

// Configuration looks up a configuration by name (case-insensitive).
func (p *Project) Configuration(name string) (Configuration, error) {
	if c, ok := p.Configurations[name]; ok {
		return c, nil
	}
	for key, c := range p.Configurations {
		if strings.EqualFold(key, name) {
			return c, nil
		}
	}
	return Configuration{}, fmt.Errorf("%s: %w %q (declared: %s)", p.Name, ErrUnknownConfiguration, name, strings.Join(p.ConfigurationNames(), ", "))
}

// ConfigurationNames returns declared configuration names, sorted.
func (p *Project) ConfigurationNames() []string {
	names := make([]string, 0, len(p.Configurations))
	for name := range p.Configurations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OutputFile returns the configured output path, absolute when the project
// directory is known.
func (p *Project) OutputFile(configuration string) (string, bool) {
	c, err := p.Configuration(configuration)
	if err != nil || strings.TrimSpace(c.Output) == "" {
		return "", false
	}
	out := filepath.FromSlash(c.Output)
	if !filepath.IsAbs(out) && p.Dir != "" {
		out = filepath.Join(p.Dir, out)
	}
	return out, true
}
