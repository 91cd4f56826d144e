package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives trace events. Implementations are goroutine-safe: the
// driver emits from every worker.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled is false only for LevelOff.
	Enabled() bool
}

// StorageMode selects where events go: straight to the output, into a ring
// kept for post-mortem dumps, or both.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

var modeNames = map[StorageMode]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode accepts the --trace-mode values.
func ParseMode(s string) (StorageMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("invalid trace mode %q (want stream|ring|both)", s)
}

const defaultRingSize = 4096

// Config describes the tracer a run wants.
type Config struct {
	Level Level
	Mode  StorageMode
	// FormatAuto picks ndjson for *.ndjson and *.json paths, text otherwise.
	Format Format
	// Output wins over OutputPath. An empty path or "-" means stderr.
	Output     io.Writer
	OutputPath string
	RingSize   int
}

// New builds the tracer for cfg. LevelOff yields Nop whatever the mode.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}

	var sinks []Tracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, resolveFormat(cfg.Format, cfg.OutputPath)))
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}

	switch len(sinks) {
	case 0:
		return nil, fmt.Errorf("unknown trace mode %v", cfg.Mode)
	case 1:
		return sinks[0], nil
	default:
		return NewMultiTracer(cfg.Level, sinks...), nil
	}
}

func resolveFormat(f Format, path string) Format {
	if f != FormatAuto {
		return f
	}
	switch {
	case strings.HasSuffix(path, ".ndjson"), strings.HasSuffix(path, ".json"):
		return FormatNDJSON
	default:
		return FormatText
	}
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

func isStdStream(w io.Writer) bool {
	return w == os.Stderr || w == os.Stdout
}
