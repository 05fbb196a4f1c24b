package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelGatesScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelError, ScopeCommand, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeValue, false},
		{LevelDebug, ScopeValue, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s/%s: got %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseLevelRejectsUnknown(t *testing.T) {
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("got %v, %v", l, err)
	}
}

func TestStreamTracerWritesNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	span := Begin(tr, ScopeModule, "module:demo", 0)
	Point(tr, ScopeValue, "value", "filtered out", span.ID())
	span.WithExtra("values", "3").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected begin+end only, got %d lines:\n%s", len(lines), buf.String())
	}
	var end map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatal(err)
	}
	if end["kind"] != "end" || end["detail"] != "ok" || end["scope"] != "module" {
		t.Fatalf("unexpected end event: %v", end)
	}
	extra, ok := end["extra"].(map[string]any)
	if !ok || extra["values"] != "3" || extra["dur"] == nil {
		t.Fatalf("missing extras: %v", end["extra"])
	}
}

func TestFailurePassesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)
	Begin(tr, ScopeCommand, "inspect", 0).End("")
	Failure(tr, ScopeValue, "classify", "void value", 0)
	out := buf.String()
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, "! classify (void value)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInertSpanForwardsParent(t *testing.T) {
	tr := NewRingTracer(8, LevelPhase)
	root := Begin(tr, ScopeCommand, "inspect", 0)
	mod := Begin(tr, ScopeModule, "module:m", root.ID())
	if mod.ID() != root.ID() {
		t.Fatalf("filtered span should expose its parent id")
	}
	mod.End("")
	root.End("")
	if n := len(tr.Snapshot()); n != 2 {
		t.Fatalf("expected 2 events, got %d", n)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for i := 0; i < 5; i++ {
		Point(tr, ScopeValue, "v", string(rune('a'+i)), 0)
	}
	got := tr.Snapshot()
	if len(got) != 3 || got[0].Detail != "c" || got[2].Detail != "e" {
		t.Fatalf("unexpected ring contents %+v", got)
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump should write one line per event")
	}
}

func TestMultiTracerSharesSequence(t *testing.T) {
	a := NewRingTracer(4, LevelPhase)
	b := NewRingTracer(4, LevelPhase)
	m := NewMultiTracer(LevelPhase, a, b)
	Begin(m, ScopePhase, "load", 0).End("")
	if m.Ring() != a {
		t.Fatalf("Ring should return the first ring child")
	}
	ea, eb := a.Snapshot(), b.Snapshot()
	if len(ea) != 2 || ea[1].Seq != eb[1].Seq {
		t.Fatalf("children disagree on sequence numbers")
	}
}

func TestContextCarriesTracer(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("background context should yield Nop")
	}
	tr := NewRingTracer(1, LevelPhase)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not recovered from context")
	}
	span := Begin(tr, ScopePhase, "p", 0)
	if CurrentSpan(WithSpan(ctx, span)) != span.ID() {
		t.Fatalf("span id not recovered from context")
	}
}

func TestNewOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("got %v, %v", tr, err)
	}
}

func TestHeartbeatStopIsIdempotent(t *testing.T) {
	tr := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(tr, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	h.Stop()
	h.Stop()
	var nilBeat *Heartbeat
	nilBeat.Stop()
}
