package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"fsargs/internal/diag"
	"fsargs/internal/driver"
)

// WriteResults writes the invocations. Text output prints one argument per
// line; with several results every block gets a header.
func WriteResults(w io.Writer, results []*driver.Result, workspace *diag.Bag, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(results, workspace, opts.Timings))
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.UseCompactInts(true)
		return enc.Encode(NewDocument(results, workspace, opts.Timings))
	}

	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, Header(r, opts.Color)); err != nil {
				return err
			}
		}
		for _, arg := range r.Args {
			if _, err := fmt.Fprintln(w, arg); err != nil {
				return err
			}
		}
	}
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// Header is the title line of one project block.
func Header(r *driver.Result, colored bool) string {
	title := fmt.Sprintf("# %s (%s)", r.Project, r.Configuration)
	if !colored {
		return title
	}
	return headerStyle.Render(title)
}

func severityColor(sev diag.Severity, colored bool) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// WriteDiagnostics renders diagnostics as aligned text lines:
//
//	WARNING RES2001 FSharp.Core  message
func WriteDiagnostics(w io.Writer, bags []*diag.Bag, opts Options) error {
	var items []diag.Diagnostic
	for _, bag := range bags {
		if bag == nil {
			continue
		}
		for _, d := range bag.Items() {
			if d.Severity >= opts.MinSeverity {
				items = append(items, d)
			}
		}
	}
	if len(items) == 0 {
		return nil
	}

	subjectWidth := 0
	for _, d := range items {
		subjectWidth = max(subjectWidth, runewidth.StringWidth(d.Subject))
	}
	subjectWidth = min(subjectWidth, 40)

	for _, d := range items {
		sev := severityColor(d.Severity, opts.Color).Sprintf("%-7s", d.Severity.String())
		subject := runewidth.FillRight(runewidth.Truncate(d.Subject, subjectWidth, "..."), subjectWidth)
		if _, err := fmt.Fprintf(w, "%s %s %s  %s\n", sev, d.Code.ID(), subject, d.Message); err != nil {
			return err
		}
		if !opts.Notes {
			continue
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  note %s: %s\n", n.Subject, n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// Summary counts diagnostics by severity, e.g. "2 warnings, 1 error".
func Summary(bags []*diag.Bag) string {
	var errs, warns int
	for _, bag := range bags {
		if bag == nil {
			continue
		}
		for _, d := range bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			}
		}
	}
	var parts []string
	if warns > 0 {
		parts = append(parts, plural(warns, "warning"))
	}
	if errs > 0 {
		parts = append(parts, plural(errs, "error"))
	}
	return strings.Join(parts, ", ")
}

var summaryStyle = lipgloss.NewStyle().Bold(true)

// SummaryLine formats a Summary result for the terminal.
func SummaryLine(summary string, colored bool) string {
	line := "fsargs: " + summary
	if !colored {
		return line
	}
	return summaryStyle.Render(line)
}

// WriteTimings prints the phase table of every result.
func WriteTimings(w io.Writer, results []*driver.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s %s", r.Project, r.Timing.Summary()); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
