package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// SessionTrace is the canonical record of what happened during one
// calculator session.
//
// Invariants:
//   - Events are ordered by Seq, which the recorder assigns in the order the
//     REPL observed them.
//   - Events carry error kind codes, never error strings.
//   - No timestamps, so replaying the same input yields the same bytes.
//
// The trace is a write-only transcript; nothing reads it back into a session.
type SessionTrace struct {
	Events []Event
}

// EventKind discriminates Event. The string values are part of the
// canonical bytes; do not rename.
type EventKind string

const (
	EventCalculationComputed EventKind = "CalculationComputed"
	EventCalculationFailed   EventKind = "CalculationFailed"
	EventHistoryCleared      EventKind = "HistoryCleared"
)

// Event is a single logical step of a session.
type Event struct {
	// Seq is the 1-based position of the event in the session.
	Seq  int
	Kind EventKind

	// Operation is the token as typed, e.g. "times". Empty for HistoryCleared.
	Operation string

	// Operands are the raw operand words as typed. Failed events may carry
	// words that are not numbers.
	Operands []string

	// Result is set only for CalculationComputed.
	Result *float64

	// Reason is a stable error kind code for CalculationFailed, such as
	// "division_by_zero".
	Reason string
}

// Validate checks basic invariants and returns a descriptive error.
func (t *SessionTrace) Validate() error {
	if t == nil {
		return errors.New("trace is nil")
	}
	seen := make(map[int]bool, len(t.Events))
	for i := range t.Events {
		e := t.Events[i]
		if e.Seq <= 0 {
			return fmt.Errorf("events[%d].seq must be positive", i)
		}
		if seen[e.Seq] {
			return fmt.Errorf("events[%d].seq %d is duplicated", i, e.Seq)
		}
		seen[e.Seq] = true
		switch e.Kind {
		case EventCalculationComputed:
			if e.Operation == "" {
				return fmt.Errorf("events[%d].operation is required for kind %q", i, e.Kind)
			}
			if e.Result == nil {
				return fmt.Errorf("events[%d].result is required for kind %q", i, e.Kind)
			}
		case EventCalculationFailed:
			if e.Reason == "" {
				return fmt.Errorf("events[%d].reason is required for kind %q", i, e.Kind)
			}
		case EventHistoryCleared:
		case "":
			return fmt.Errorf("events[%d].kind is required", i)
		default:
			return fmt.Errorf("events[%d].kind %q is unknown", i, e.Kind)
		}
	}
	return nil
}

// Canonicalize sorts events by Seq and normalizes empty operand slices to nil.
func (t *SessionTrace) Canonicalize() {
	if t == nil {
		return
	}
	for i := range t.Events {
		if len(t.Events[i].Operands) == 0 {
			t.Events[i].Operands = nil
		}
	}
	sort.SliceStable(t.Events, func(i, j int) bool {
		return t.Events[i].Seq < t.Events[j].Seq
	})
}

// CanonicalJSON returns the canonical JSON encoding of the trace.
// It canonicalizes a copy of the trace to avoid mutating the caller's slices.
func (t SessionTrace) CanonicalJSON() ([]byte, error) {
	copyTrace := SessionTrace{}
	copyTrace.Events = make([]Event, len(t.Events))
	copy(copyTrace.Events, t.Events)
	copyTrace.Canonicalize()
	if err := copyTrace.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(&copyTrace)
}

// Hash returns the sha256 hex digest of the canonical JSON bytes.
func (t SessionTrace) Hash() (string, error) {
	b, err := t.CanonicalJSON()
	if err != nil {
		return "", err
	}
	return ComputeTraceHash(b), nil
}

// MarshalJSON fixes field order regardless of struct layout.
func (t SessionTrace) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\"events\":[")
	for i := range t.Events {
		if i > 0 {
			buf.WriteByte(',')
		}
		eb, err := json.Marshal(t.Events[i])
		if err != nil {
			return nil, err
		}
		buf.Write(eb)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// MarshalJSON fixes field order and omits absent optional fields.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Kind == "" {
		return nil, errors.New("kind is required")
	}
	var buf bytes.Buffer
	buf.WriteString("{\"seq\":")
	buf.WriteString(strconv.Itoa(e.Seq))

	buf.WriteString(",\"kind\":")
	kb, _ := json.Marshal(string(e.Kind))
	buf.Write(kb)

	if e.Operation != "" {
		buf.WriteString(",\"operation\":")
		ob, _ := json.Marshal(e.Operation)
		buf.Write(ob)
	}

	if len(e.Operands) > 0 {
		buf.WriteString(",\"operands\":")
		ab, _ := json.Marshal(e.Operands)
		buf.Write(ab)
	}

	if e.Result != nil {
		buf.WriteString(",\"result\":")
		// JSON has no NaN or Inf; those results are written as strings.
		r := *e.Result
		if !math.IsInf(r, 0) && !math.IsNaN(r) {
			buf.WriteString(strconv.FormatFloat(r, 'g', -1, 64))
		} else {
			rb, _ := json.Marshal(strconv.FormatFloat(r, 'g', -1, 64))
			buf.Write(rb)
		}
	}

	if e.Reason != "" {
		buf.WriteString(",\"reason\":")
		rb, _ := json.Marshal(e.Reason)
		buf.Write(rb)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
