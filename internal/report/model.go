package report

import (
	"fsargs/internal/diag"
	"fsargs/internal/driver"
	"fsargs/internal/observ"
)

// NoteDoc is the serialised form of a diagnostic note.
type NoteDoc struct {
	Subject string `json:"subject,omitempty" msgpack:"subject,omitempty"`
	Message string `json:"message" msgpack:"message"`
}

// DiagnosticDoc is the serialised form of a diagnostic.
type DiagnosticDoc struct {
	Severity string    `json:"severity" msgpack:"severity"`
	Code     string    `json:"code" msgpack:"code"`
	Subject  string    `json:"subject,omitempty" msgpack:"subject,omitempty"`
	Message  string    `json:"message" msgpack:"message"`
	Notes    []NoteDoc `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// ClassificationDoc records one assembly classification.
type ClassificationDoc struct {
	Path     string `json:"path" msgpack:"path"`
	Outcome  string `json:"outcome" msgpack:"outcome"`
	Portable bool   `json:"portable" msgpack:"portable"`
}

// ResultDoc is the serialised form of driver.Result.
type ResultDoc struct {
	Project       string              `json:"project" msgpack:"project"`
	Configuration string              `json:"configuration" msgpack:"configuration"`
	Framework     string              `json:"framework" msgpack:"framework"`
	Portable      bool                `json:"portable" msgpack:"portable"`
	Digest        string              `json:"digest" msgpack:"digest"`
	Args          []string            `json:"args" msgpack:"args"`
	References    []string            `json:"references" msgpack:"references"`
	Facades       []string            `json:"facades,omitempty" msgpack:"facades,omitempty"`
	Reconciled    []string            `json:"reconciled,omitempty" msgpack:"reconciled,omitempty"`
	Reconcile     string              `json:"reconcile" msgpack:"reconcile"`
	Classified    []ClassificationDoc `json:"classified,omitempty" msgpack:"classified,omitempty"`
	Diagnostics   []DiagnosticDoc     `json:"diagnostics" msgpack:"diagnostics"`
	Timing        *observ.Report      `json:"timing,omitempty" msgpack:"timing,omitempty"`
}

// Document is the top-level serialised output.
type Document struct {
	Results     []ResultDoc     `json:"results" msgpack:"results"`
	Diagnostics []DiagnosticDoc `json:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
}

// NewDocument converts results; workspace may be nil.
func NewDocument(results []*driver.Result, workspace *diag.Bag, timings bool) Document {
	doc := Document{Results: make([]ResultDoc, 0, len(results))}
	for _, r := range results {
		doc.Results = append(doc.Results, newResultDoc(r, timings))
	}
	doc.Diagnostics = diagnosticDocs(workspace)
	return doc
}

func newResultDoc(r *driver.Result, timings bool) ResultDoc {
	out := ResultDoc{
		Project:       r.Project,
		Configuration: r.Configuration,
		Framework:     r.Framework,
		Portable:      r.Portable,
		Digest:        r.Digest.String(),
		Args:          r.Args,
		References:    r.References,
		Facades:       r.Facades,
		Reconciled:    r.Reconciled,
		Reconcile:     r.Branch.String(),
		Diagnostics:   diagnosticDocs(r.Diagnostics),
	}
	if out.Args == nil {
		out.Args = []string{}
	}
	if out.References == nil {
		out.References = []string{}
	}
	for _, c := range r.Classified {
		out.Classified = append(out.Classified, ClassificationDoc{
			Path:     c.Path,
			Outcome:  c.Outcome.String(),
			Portable: c.Outcome.Portable(),
		})
	}
	if timings {
		timing := r.Timing
		out.Timing = &timing
	}
	return out
}

func diagnosticDocs(bag *diag.Bag) []DiagnosticDoc {
	if bag == nil {
		return []DiagnosticDoc{}
	}
	items := bag.Items()
	out := make([]DiagnosticDoc, 0, len(items))
	for _, d := range items {
		doc := DiagnosticDoc{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Subject:  d.Subject,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			doc.Notes = append(doc.Notes, NoteDoc{Subject: n.Subject, Message: n.Msg})
		}
		out = append(out, doc)
	}
	return out
}
