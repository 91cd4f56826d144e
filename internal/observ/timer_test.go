package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAccumulatesConcurrentPhases(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin(PhaseLoad)
	tm.End(load, "3 files")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add(PhaseParse, time.Millisecond)
			tm.Add(PhaseValidate, 2*time.Millisecond)
		}()
	}
	wg.Wait()

	report := tm.Report()
	if len(report.Phases) != 3 {
		t.Fatalf("expected 3 phases, got %+v", report.Phases)
	}
	if report.Phases[0].Name != PhaseLoad || report.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected first phase %+v", report.Phases[0])
	}
	byName := map[string]PhaseReport{}
	for _, p := range report.Phases {
		byName[p.Name] = p
	}
	if got := byName[PhaseParse]; got.Count != 8 || got.DurationMS != 8 {
		t.Fatalf("parse phase = %+v, want 8 runs of 1ms", got)
	}
	if got := byName[PhaseValidate]; got.Count != 8 || got.DurationMS != 16 {
		t.Fatalf("validate phase = %+v, want 8 runs of 2ms", got)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.Add(PhaseFormat, 1500*time.Microsecond)
	out := tm.Summary()
	if !strings.HasPrefix(out, "timings:\n") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "format") || !strings.Contains(out, "1.50 ms") {
		t.Fatalf("unexpected summary: %q", out)
	}
	if !strings.Contains(out, "total") {
		t.Fatalf("missing total: %q", out)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Add("y", time.Second)
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer must report nothing")
	}
}

func TestEndIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "ignored")
	if len(tm.Report().Phases) != 0 {
		t.Fatalf("End with bad index must not create phases")
	}
}
