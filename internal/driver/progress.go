package driver

import "time"

// Stage describes a phase of checking one file.
type Stage string

const (
	// StageLoad reads the file into the file set.
	StageLoad Stage = "load"
	// StageParse builds the syntax tree (tree-sitter or snapshot decode).
	StageParse Stage = "parse"
	// StageValidate runs the dialect validator.
	StageValidate Stage = "validate"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file was checked.
	StatusDone Status = "done"
	// StatusError indicates the file could not be checked.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File     string
	Stage    Stage
	Status   Status
	Err      error
	Elapsed  time.Duration
	Problems int
}

// ProgressSink consumes progress events. Workers call OnEvent concurrently.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
