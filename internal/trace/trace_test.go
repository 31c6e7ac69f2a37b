package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPhaseLevelSkipsReferenceScope(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopePass) {
		t.Fatalf("phase level must emit pass scope")
	}
	if LevelPhase.ShouldEmit(ScopeReference) {
		t.Fatalf("phase level must not emit reference scope")
	}
	if !LevelDetail.ShouldEmit(ScopeReference) {
		t.Fatalf("detail level must emit reference scope")
	}
}

func TestStreamTracerWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeDriver, "compute", 0)
	child := Begin(tr, ScopePass, "reconcile", root.ID())
	child.WithExtra("branch", "none-found").End("")
	Point(tr, ScopeReference, "reference:FSharp.Core", "missing", root.ID())
	root.End("ok")

	out := buf.String()
	for _, want := range []string{"\u2192 compute", "\u2190 reconcile branch=none-found", "\u2022 reference:FSharp.Core (missing)", "\u2190 compute (ok)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace output missing %q:\n%s", want, out)
		}
	}
}

func TestRingTracerSnapshotWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopePass, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestNDJSONFormat(t *testing.T) {
	ev := &Event{Seq: 7, Kind: KindPoint, Scope: ScopePass, Name: "facades"}
	got := string(FormatEvent(ev, FormatNDJSON))
	if !strings.Contains(got, `"name":"facades"`) || !strings.HasSuffix(got, "\n") {
		t.Fatalf("unexpected NDJSON: %q", got)
	}
}

func TestContextFallsBackToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop tracer")
	}
	tr := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("expected attached tracer")
	}
}

func TestDisabledSpanKeepsParent(t *testing.T) {
	s := Begin(Nop, ScopePass, "x", 42)
	if s.ID() != 42 {
		t.Fatalf("disabled span ID() = %d, want parent 42", s.ID())
	}
	if s.End("") != 0 {
		t.Fatalf("disabled span must report zero duration")
	}
}

func TestMultiTracerFansOutAndExposesRing(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)

	Begin(multi, ScopePass, "collect", 0).End("")
	if err := multi.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := len(ring.Snapshot()); got != 2 {
		t.Fatalf("ring events = %d, want 2", got)
	}
	if !strings.Contains(buf.String(), "collect") {
		t.Fatalf("stream output = %q, want collect span", buf.String())
	}
	if multi.Ring() != ring {
		t.Fatalf("Ring() did not return the ring tracer")
	}
	if NewMultiTracer(LevelPhase).Ring() != nil {
		t.Fatalf("Ring() on empty multi tracer should be nil")
	}
}
