// Package compileropts models compiler flags as typed options and renders
// them in the order the F# compiler expects.
package compileropts

import (
	"strconv"
	"strings"
)

// Option is one compiler flag. The set of implementations is closed.
type Option interface {
	// Kind names the option family, e.g. "reference".
	Kind() string
	// Args renders the option; wrap quotes path values when true.
	Args(wrap bool) []string
	option()
}

// Global is a fixed flag carried by every invocation.
type Global struct{ Flag string }

// Output is --out:<path>.
type Output struct{ Path string }

// TargetProfile is --targetprofile:<profile>.
type TargetProfile struct{ Profile string }

// Define is --define:<symbol>.
type Define struct{ Symbol string }

// DebugMode selects the --debug form.
type DebugMode uint8

const (
	DebugOff DebugMode = iota
	DebugOn
	DebugFull
	DebugPdbOnly
)

// Debug is --debug+, --debug-, --debug:full or --debug:pdbonly.
type Debug struct{ Mode DebugMode }

// Optimize is --optimize+ or --optimize-.
type Optimize struct{ On bool }

// Tailcalls is --tailcalls+ or --tailcalls-.
type Tailcalls struct{ On bool }

// TargetKind is the --target value.
type TargetKind uint8

const (
	TargetExe TargetKind = iota
	TargetLibrary
	TargetModule
)

func (k TargetKind) String() string {
	switch k {
	case TargetLibrary:
		return "library"
	case TargetModule:
		return "module"
	}
	return "exe"
}

// Target is --target:library|module|exe.
type Target struct{ Output TargetKind }

// Doc is --doc:<path>.
type Doc struct{ Path string }

// WarnLevel is --warn:<n>.
type WarnLevel struct{ Level int }

// NoWarn is --nowarn:<codes>.
type NoWarn struct{ Codes []string }

// WarnAsError is --warnaserror+.
type WarnAsError struct{}

// Raw is a user flag passed through untouched.
type Raw struct{ Flag string }

// Reference is -r:<path>.
type Reference struct{ Path string }

// Resource is --resource:<file>,<logical name>.
type Resource struct {
	File        string
	LogicalName string
}

// SourceFile is a compiled source path.
type SourceFile struct{ Path string }

func (Global) Kind() string        { return "global" }
func (Output) Kind() string        { return "output" }
func (TargetProfile) Kind() string { return "targetprofile" }
func (Define) Kind() string        { return "define" }
func (Debug) Kind() string         { return "debug" }
func (Optimize) Kind() string      { return "optimize" }
func (Tailcalls) Kind() string     { return "tailcalls" }
func (Target) Kind() string        { return "target" }
func (Doc) Kind() string           { return "doc" }
func (WarnLevel) Kind() string     { return "warn" }
func (NoWarn) Kind() string        { return "nowarn" }
func (WarnAsError) Kind() string   { return "warnaserror" }
func (Raw) Kind() string           { return "raw" }
func (Reference) Kind() string     { return "reference" }
func (Resource) Kind() string      { return "resource" }
func (SourceFile) Kind() string    { return "source" }

func (o Global) Args(bool) []string          { return []string{o.Flag} }
func (o Output) Args(wrap bool) []string     { return []string{"--out:" + wrapIf(wrap, o.Path)} }
func (o TargetProfile) Args(bool) []string   { return []string{"--targetprofile:" + o.Profile} }
func (o Define) Args(bool) []string          { return []string{"--define:" + o.Symbol} }
func (o Optimize) Args(bool) []string        { return []string{"--optimize" + sign(o.On)} }
func (o Tailcalls) Args(bool) []string       { return []string{"--tailcalls" + sign(o.On)} }
func (o Target) Args(bool) []string          { return []string{"--target:" + o.Output.String()} }
func (o Doc) Args(wrap bool) []string        { return []string{"--doc:" + wrapIf(wrap, o.Path)} }
func (o WarnLevel) Args(bool) []string       { return []string{"--warn:" + strconv.Itoa(o.Level)} }
func (o NoWarn) Args(bool) []string          { return []string{"--nowarn:" + strings.Join(o.Codes, ",")} }
func (WarnAsError) Args(bool) []string       { return []string{"--warnaserror+"} }
func (o Raw) Args(bool) []string             { return []string{o.Flag} }
func (o Reference) Args(wrap bool) []string  { return []string{"-r:" + wrapIf(wrap, o.Path)} }
func (o SourceFile) Args(wrap bool) []string { return []string{wrapIf(wrap, o.Path)} }

func (o Debug) Args(bool) []string {
	switch o.Mode {
	case DebugFull:
		return []string{"--debug:full"}
	case DebugPdbOnly:
		return []string{"--debug:pdbonly"}
	case DebugOn:
		return []string{"--debug+"}
	}
	return []string{"--debug-"}
}

func (o Resource) Args(wrap bool) []string {
	return []string{"--resource:" + wrapIf(wrap, o.File) + "," + wrapIf(wrap, o.LogicalName)}
}

func (Global) option()        {}
func (Output) option()        {}
func (TargetProfile) option() {}
func (Define) option()        {}
func (Debug) option()         {}
func (Optimize) option()      {}
func (Tailcalls) option()     {}
func (Target) option()        {}
func (Doc) option()           {}
func (WarnLevel) option()     {}
func (NoWarn) option()        {}
func (WarnAsError) option()   {}
func (Raw) option()           {}
func (Reference) option()     {}
func (Resource) option()      {}
func (SourceFile) option()    {}

func sign(on bool) string {
	if on {
		return "+"
	}
	return "-"
}

// WrapFile quotes path unless it is already quoted.
func WrapFile(path string) string {
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		return path
	}
	return `"` + path + `"`
}

func wrapIf(wrap bool, path string) string {
	if !wrap {
		return path
	}
	return WrapFile(path)
}

// Render flattens opts into argument strings.
func Render(opts []Option, wrap bool) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Args(wrap)...)
	}
	return out
}
