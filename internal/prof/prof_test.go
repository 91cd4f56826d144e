package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CPUProfile:   filepath.Join(dir, "cpu.pprof"),
		MemProfile:   filepath.Join(dir, "mem.pprof"),
		RuntimeTrace: filepath.Join(dir, "run.trace"),
	}
	if !opts.Enabled() {
		t.Fatalf("options with paths must be enabled")
	}

	s, err := Start(opts)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}

	for _, p := range []string{opts.CPUProfile, opts.MemProfile, opts.RuntimeTrace} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}

func TestStartFailsCleanly(t *testing.T) {
	dir := t.TempDir()
	_, err := Start(Options{
		CPUProfile:   filepath.Join(dir, "cpu.pprof"),
		RuntimeTrace: filepath.Join(dir, "missing", "run.trace"),
	})
	if err == nil {
		t.Fatalf("expected error for unwritable trace path")
	}
	// the cpu profiler must have been released
	s, err := Start(Options{CPUProfile: filepath.Join(dir, "again.pprof")})
	if err != nil {
		t.Fatalf("cpu profiler left running: %v", err)
	}
	_ = s.Stop()
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	if err := s.Stop(); err != nil {
		t.Fatalf("nil Stop: %v", err)
	}
	if (Options{}).Enabled() {
		t.Fatalf("empty options must be disabled")
	}
}
