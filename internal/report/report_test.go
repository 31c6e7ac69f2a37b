package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"fsargs/internal/diag"
	"fsargs/internal/driver"
	"fsargs/internal/observ"
	"fsargs/internal/portable"
)

func sampleResult(name string) *driver.Result {
	bag := diag.NewBag(8)
	bag.Add(diag.NewWarning(diag.ResDefaultReferenceFailed, "FSharp.Core",
		"Resolution: Assembly resolution failed when trying to find default reference for: FSharp.Core"))
	return &driver.Result{
		Project:       name,
		Configuration: "Debug",
		Framework:     ".NETFramework,Version=v4.5",
		Args:          []string{"--simpleresolution", "--noframework", "-r:/fx/mscorlib.dll"},
		References:    []string{"/fx/mscorlib.dll"},
		Classified:    []driver.Classification{{Path: "/lib/Pcl.dll", Outcome: portable.PortableSystemRuntime}},
		Diagnostics:   bag,
		Timing:        observ.Report{TotalMS: 1.5, Phases: []observ.PhaseReport{{Name: "collect", DurationMS: 1.5}}},
	}
}

func TestWriteResultsText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, []*driver.Result{sampleResult("App")}, nil, Options{}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	want := "--simpleresolution\n--noframework\n-r:/fx/mscorlib.dll\n"
	if buf.String() != want {
		t.Fatalf("text output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := WriteResults(&buf, []*driver.Result{sampleResult("App"), sampleResult("Lib")}, nil, Options{}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# App (Debug)\n") || !strings.Contains(out, "\n\n# Lib (Debug)\n") {
		t.Fatalf("multi-project output missing headers:\n%s", out)
	}
}

func TestWriteResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, []*driver.Result{sampleResult("App")}, nil, Options{Format: FormatJSON, Timings: true}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("json: %v\n%s", err, buf.String())
	}
	if len(doc.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(doc.Results))
	}
	r := doc.Results[0]
	if r.Project != "App" || len(r.Args) != 3 || r.Timing == nil {
		t.Fatalf("decoded result = %+v", r)
	}
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != "RES2001" || r.Diagnostics[0].Severity != "WARNING" {
		t.Fatalf("decoded diagnostics = %+v", r.Diagnostics)
	}
	if len(r.Classified) != 1 || !r.Classified[0].Portable {
		t.Fatalf("decoded classification = %+v", r.Classified)
	}
	if !strings.Contains(buf.String(), `"reconcile": "both present"`) {
		t.Fatalf("json output lacks reconcile branch:\n%s", buf.String())
	}
}

func TestWriteResultsMsgpack(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, []*driver.Result{sampleResult("App")}, nil, Options{Format: FormatMsgpack}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	var doc Document
	if err := msgpack.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("msgpack: %v", err)
	}
	if len(doc.Results) != 1 || doc.Results[0].Project != "App" || doc.Results[0].Timing != nil {
		t.Fatalf("decoded = %+v", doc)
	}
}

func TestWriteDiagnosticsAligned(t *testing.T) {
	bag := diag.NewBag(8)
	bag.Add(diag.NewWarning(diag.ResDefaultReferenceFailed, "mscorlib", "first"))
	bag.Add(diag.New(diag.SevError, diag.ProjReferenceCycle, "App", "second").WithNote("Lib", "here"))

	var buf bytes.Buffer
	if err := WriteDiagnostics(&buf, []*diag.Bag{bag, nil}, Options{Notes: true}); err != nil {
		t.Fatalf("WriteDiagnostics: %v", err)
	}
	want := "WARNING RES2001 mscorlib  first\n" +
		"ERROR   PRJ5003 App       second\n" +
		"  note Lib: here\n"
	if buf.String() != want {
		t.Fatalf("diagnostics =\n%q\nwant\n%q", buf.String(), want)
	}
	if got := Summary([]*diag.Bag{bag}); got != "1 warning, 1 error" {
		t.Fatalf("Summary() = %q", got)
	}
	if got := SummaryLine("1 error", false); got != "fsargs: 1 error" {
		t.Fatalf("SummaryLine() = %q", got)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	err := Table(&buf, []string{"FRAMEWORK", "INSTALLED"}, [][]string{
		{".NETFramework,Version=v4.5", "yes"},
		{"X", "no"},
	})
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	want := "FRAMEWORK                   INSTALLED\n" +
		".NETFramework,Version=v4.5  yes\n" +
		"X                           no\n"
	if buf.String() != want {
		t.Fatalf("Table =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "JSON": FormatJSON, "msgpack": FormatMsgpack} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Fatalf("ParseFormat(yaml) should fail")
	}
}

func TestWriteDiagnosticsMinSeverity(t *testing.T) {
	bag := diag.NewBag(8)
	bag.Add(diag.New(diag.SevInfo, diag.ResHintPathMissing, "X", "hint missing"))
	bag.Add(diag.NewWarning(diag.ResDefaultReferenceFailed, "mscorlib", "failed"))

	var buf bytes.Buffer
	if err := WriteDiagnostics(&buf, []*diag.Bag{bag}, Options{MinSeverity: diag.SevWarning}); err != nil {
		t.Fatalf("WriteDiagnostics: %v", err)
	}
	if strings.Contains(buf.String(), "hint missing") || !strings.Contains(buf.String(), "failed") {
		t.Fatalf("filtered output = %q", buf.String())
	}
}
