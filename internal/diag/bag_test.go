package diag

import "testing"

func TestBagRespectsLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		bag.Add(NewWarning(ResDefaultReferenceFailed, "FSharp.Core", "x"))
	}
	if bag.Len() != 2 {
		t.Fatalf("bag.Len() = %d, want 2", bag.Len())
	}
	if !bag.HasWarnings() {
		t.Fatalf("expected HasWarnings")
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected HasErrors")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewWarning(ResDefaultReferenceFailed, "mscorlib", "b"))
	bag.Add(New(SevError, ProjReferenceCycle, "App", "cycle"))
	bag.Add(NewWarning(ResDefaultReferenceFailed, "FSharp.Core", "a"))
	bag.Add(NewWarning(ResDefaultReferenceFailed, "FSharp.Core", "a"))

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("after Dedup bag.Len() = %d, want 3", bag.Len())
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Code != ProjReferenceCycle {
		t.Fatalf("items[0].Code = %s, want error first", items[0].Code.ID())
	}
	if items[1].Subject != "FSharp.Core" || items[2].Subject != "mscorlib" {
		t.Fatalf("unexpected order: %q, %q", items[1].Subject, items[2].Subject)
	}
}

func TestBagMergeGrows(t *testing.T) {
	a := NewBag(1)
	a.Add(NewWarning(ResInfo, "a", "a"))
	b := NewBag(2)
	b.Add(NewWarning(ResInfo, "b", "b"))
	b.Add(NewWarning(ResInfo, "c", "c"))
	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("a.Len() = %d, want 3", a.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportWarning(BagReporter{Bag: bag}, ResDefaultReferenceFailed, "mscorlib", "missing").
		WithNote("/usr/lib/mono/4.5", "searched")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("bag.Len() = %d, want 1", bag.Len())
	}
	if got := len(bag.Items()[0].Notes); got != 1 {
		t.Fatalf("notes = %d, want 1", got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(4)
	r := NewDedupReporter(BagReporter{Bag: bag})
	r.Report(ResDefaultReferenceFailed, SevWarning, "FSharp.Core", "m", nil)
	r.Report(ResDefaultReferenceFailed, SevWarning, "FSharp.Core", "m", nil)
	r.Report(ResDefaultReferenceFailed, SevWarning, "mscorlib", "m", nil)
	if bag.Len() != 2 {
		t.Fatalf("bag.Len() = %d, want 2", bag.Len())
	}
}

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		NewWarning(ResDefaultReferenceFailed, "mscorlib", "line one\nline two").WithNote("dir", "searched"),
		NewWarning(ResDefaultReferenceFailed, "FSharp.Core", "first"),
	}
	got := FormatShort(diags, true)
	want := "WARNING RES2001 FSharp.Core: first\n" +
		"WARNING RES2001 mscorlib: line one line two\n" +
		"  note dir: searched"
	if got != want {
		t.Fatalf("FormatShort = %q, want %q", got, want)
	}
	if FormatShort(nil, false) != "" {
		t.Fatalf("expected empty output for no diagnostics")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		ResDefaultReferenceFailed: "RES2001",
		MetaUnreadable:            "MET3001",
		ProjReferenceCycle:        "PRJ5003",
		UnknownCode:               "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("Code(%d).ID() = %q, want %q", code, got, want)
		}
	}
}
