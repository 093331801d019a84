package trace

import (
	"bytes"
	"math"
	"testing"
)

func f(v float64) *float64 { return &v }

func TestCanonicalJSON_SortsBySeq(t *testing.T) {
	tr1 := SessionTrace{Events: []Event{
		{Seq: 2, Kind: EventCalculationFailed, Operation: "div", Operands: []string{"1", "0"}, Reason: "division_by_zero"},
		{Seq: 1, Kind: EventCalculationComputed, Operation: "add", Operands: []string{"1", "2"}, Result: f(3)},
	}}
	tr2 := SessionTrace{Events: []Event{
		{Seq: 1, Kind: EventCalculationComputed, Operation: "add", Operands: []string{"1", "2"}, Result: f(3)},
		{Seq: 2, Kind: EventCalculationFailed, Operation: "div", Operands: []string{"1", "0"}, Reason: "division_by_zero"},
	}}

	b1, err := tr1.CanonicalJSON()
	if err != nil {
		t.Fatalf("canonical json (1): %v", err)
	}
	b2, err := tr2.CanonicalJSON()
	if err != nil {
		t.Fatalf("canonical json (2): %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Fatalf("expected identical bytes\n1=%s\n2=%s", string(b1), string(b2))
	}

	expected := `{"events":[` +
		`{"seq":1,"kind":"CalculationComputed","operation":"add","operands":["1","2"],"result":3},` +
		`{"seq":2,"kind":"CalculationFailed","operation":"div","operands":["1","0"],"reason":"division_by_zero"}]}`
	if string(b1) != expected {
		t.Fatalf("unexpected canonical bytes\nexpected=%s\nactual  =%s", expected, string(b1))
	}
}

func TestCanonicalJSON_DoesNotMutateCaller(t *testing.T) {
	tr := SessionTrace{Events: []Event{
		{Seq: 2, Kind: EventHistoryCleared},
		{Seq: 1, Kind: EventHistoryCleared},
	}}
	if _, err := tr.CanonicalJSON(); err != nil {
		t.Fatalf("canonical json: %v", err)
	}
	if tr.Events[0].Seq != 2 {
		t.Fatalf("caller's events were reordered")
	}
}

func TestCanonicalJSON_EmptyTrace(t *testing.T) {
	b, err := SessionTrace{}.CanonicalJSON()
	if err != nil {
		t.Fatalf("canonical json: %v", err)
	}
	if string(b) != `{"events":[]}` {
		t.Fatalf("unexpected bytes %s", string(b))
	}
}

func TestEventResult_NonFiniteWrittenAsString(t *testing.T) {
	tr := SessionTrace{Events: []Event{
		{Seq: 1, Kind: EventCalculationComputed, Operation: "mul", Operands: []string{"inf", "2"}, Result: f(math.Inf(1))},
	}}
	b, err := tr.CanonicalJSON()
	if err != nil {
		t.Fatalf("canonical json: %v", err)
	}
	expected := `{"events":[{"seq":1,"kind":"CalculationComputed","operation":"mul","operands":["inf","2"],"result":"+Inf"}]}`
	if string(b) != expected {
		t.Fatalf("unexpected canonical bytes\nexpected=%s\nactual  =%s", expected, string(b))
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		ev   []Event
	}{
		{"missing kind", []Event{{Seq: 1}}},
		{"zero seq", []Event{{Kind: EventHistoryCleared}}},
		{"duplicate seq", []Event{{Seq: 1, Kind: EventHistoryCleared}, {Seq: 1, Kind: EventHistoryCleared}}},
		{"computed without result", []Event{{Seq: 1, Kind: EventCalculationComputed, Operation: "add"}}},
		{"failed without reason", []Event{{Seq: 1, Kind: EventCalculationFailed, Operation: "add"}}},
		{"unknown kind", []Event{{Seq: 1, Kind: "Bogus"}}},
	}
	for _, tc := range cases {
		tr := SessionTrace{Events: tc.ev}
		if err := tr.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestHash_Deterministic(t *testing.T) {
	tr1 := SessionTrace{Events: []Event{{Seq: 1, Kind: EventHistoryCleared}}}
	tr2 := SessionTrace{Events: []Event{{Seq: 1, Kind: EventHistoryCleared}}}

	h1, err := tr1.Hash()
	if err != nil {
		t.Fatalf("hash (1): %v", err)
	}
	h2, err := tr2.Hash()
	if err != nil {
		t.Fatalf("hash (2): %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected identical hash, got %q != %q", h1, h2)
	}
	if len(h1) != 64 {
		t.Fatalf("expected hex sha256, got %q", h1)
	}
}

func TestRecorder_NumbersEventsInArrivalOrder(t *testing.T) {
	r := NewRecorder()
	ops := []string{"1", "2"}
	r.Record(Event{Seq: 99, Kind: EventCalculationComputed, Operation: "add", Operands: ops, Result: f(3)})
	r.Record(Event{Kind: EventHistoryCleared})
	ops[0] = "changed"

	tr := r.Trace()
	if len(tr.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(tr.Events))
	}
	if tr.Events[0].Seq != 1 || tr.Events[1].Seq != 2 {
		t.Fatalf("unexpected seq numbers: %d, %d", tr.Events[0].Seq, tr.Events[1].Seq)
	}
	if tr.Events[0].Operands[0] != "1" {
		t.Fatalf("recorder kept a reference to the caller's operands")
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("recorded trace invalid: %v", err)
	}
}

type panicSink struct{}

func (panicSink) Record(Event) { panic("boom") }

func TestSafeRecord_SwallowsPanics(t *testing.T) {
	SafeRecord(panicSink{}, Event{Kind: EventHistoryCleared})
	SafeRecord(nil, Event{Kind: EventHistoryCleared})
	SafeRecord(NopSink{}, Event{Kind: EventHistoryCleared})
}

func TestComputeTraceHash_Empty(t *testing.T) {
	if ComputeTraceHash(nil) != "" {
		t.Fatalf("expected empty hash for empty input")
	}
}
