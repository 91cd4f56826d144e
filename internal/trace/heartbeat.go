package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a driver-scope event every interval while a check is
// running. Each beat carries the progress line reported by the driver, so a
// stuck worker shows up as the same count repeated beat after beat.
type Heartbeat struct {
	tracer   Tracer
	parent   uint64
	progress func() string
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// StartHeartbeat starts beating under parent. progress may be nil. It returns
// nil when tracing is off or every is not positive; Stop accepts that nil.
func StartHeartbeat(t Tracer, every time.Duration, parent uint64, progress func() string) *Heartbeat {
	if t == nil || !t.Enabled() || every <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   t,
		parent:   parent,
		progress: progress,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run(every)
	return h
}

func (h *Heartbeat) run(every time.Duration) {
	defer close(h.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			h.beat(beat)
		}
	}
}

func (h *Heartbeat) beat(n int) {
	ev := &Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindHeartbeat,
		Scope:    ScopeDriver,
		ParentID: h.parent,
		GID:      getGoroutineID(),
		Name:     "heartbeat",
		Extra:    map[string]string{"beat": strconv.Itoa(n)},
	}
	if h.progress != nil {
		ev.Detail = h.progress()
	}
	h.tracer.Emit(ev)
}

// Stop ends the heartbeat and waits until no further beat can be emitted.
// It is safe to call more than once.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
