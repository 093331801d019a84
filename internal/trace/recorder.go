package trace

import "sync"

// Sink receives session events.
//
// Record must be inert:
//   - must not panic (implementations should guard themselves)
//   - must not return errors
//
// Callers must assume Record may be a no-op.
type Sink interface {
	Record(event Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(Event) {}

// SafeRecord records an event and guarantees inertness even if the sink is buggy.
func SafeRecord(s Sink, event Event) {
	if s == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	s.Record(event)
}

// Recorder is an in-memory collector that numbers events as they arrive.
// An event's Seq is overwritten with the recorder's own counter.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Record(event Event) {
	if r == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	r.mu.Lock()
	defer r.mu.Unlock()
	event.Seq = len(r.events) + 1
	if len(event.Operands) > 0 {
		event.Operands = append([]string(nil), event.Operands...)
	}
	if event.Result != nil {
		v := *event.Result
		event.Result = &v
	}
	r.events = append(r.events, event)
}

// Snapshot returns a point-in-time copy of all recorded events.
func (r *Recorder) Snapshot() []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Trace builds a SessionTrace from the currently recorded events.
func (r *Recorder) Trace() SessionTrace {
	tr := SessionTrace{Events: r.Snapshot()}
	tr.Canonicalize()
	return tr
}
