package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerRecordsPhasesInOrder(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin("load")
	tm.End(load, "2 files")
	err := tm.Measure("classify", func() error { return errors.New("boom") })
	if err == nil {
		t.Fatalf("Measure should return the phase error")
	}
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "load" || rep.Phases[1].Note != "failed" {
		t.Fatalf("unexpected report %+v", rep)
	}
	sum := tm.Summary()
	for _, want := range []string{"load", "// 2 files", "total"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestEmptyTimerReport(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil {
		t.Fatalf("expected zero report, got %+v", rep)
	}
}
