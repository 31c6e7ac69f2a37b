// Package report renders computed invocations and diagnostics.
package report

import (
	"fmt"
	"strings"

	"fsargs/internal/diag"
)

// Format selects the output encoding.
type Format uint8

const (
	FormatText Format = iota
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	}
	return "text"
}

// ParseFormat accepts text|json|msgpack.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return FormatText, fmt.Errorf("unknown format %q (expected: text|json|msgpack)", s)
}

// Options control rendering.
type Options struct {
	Format  Format
	Color   bool
	Timings bool
	// Notes includes diagnostic notes in text output.
	Notes bool
	// MinSeverity hides text diagnostics below it.
	MinSeverity diag.Severity
}
