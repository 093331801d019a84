package operation

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestNumberFrom_Accepts(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{3, 3},
		{int8(-4), -4},
		{int64(1 << 40), 1 << 40},
		{uint16(7), 7},
		{float32(0.5), 0.5},
		{2.25, 2.25},
		{"42", 42},
		{"  -1.5\t", -1.5},
		{"1e3", 1000},
		{json.Number("12.5"), 12.5},
		{"1_000", 1000},
		{"-1_000.2_5", -1000.25},
		{"1e1_0", 1e10},
	}
	for _, tc := range cases {
		got, err := NumberFrom(tc.in)
		if err != nil {
			t.Fatalf("NumberFrom(%#v): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NumberFrom(%#v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestNumberFrom_Rejects(t *testing.T) {
	cases := []struct {
		in      any
		wantMsg string
	}{
		{"x", `invalid input: not a number: "x"`},
		{"", `invalid input: not a number: ""`},
		{nil, `invalid input: not a number: <nil>`},
		{true, `invalid input: not a number: true`},
		{[]int{1}, `invalid input: not a number: []int{1}`},
		{"_1", `invalid input: not a number: "_1"`},
		{"1_", `invalid input: not a number: "1_"`},
		{"1__0", `invalid input: not a number: "1__0"`},
		{"1_.5", `invalid input: not a number: "1_.5"`},
	}
	for _, tc := range cases {
		_, err := NumberFrom(tc.in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("NumberFrom(%#v): expected ErrInvalidInput, got %v", tc.in, err)
		}
		if err.Error() != tc.wantMsg {
			t.Fatalf("NumberFrom(%#v): expected %q, got %q", tc.in, tc.wantMsg, err.Error())
		}
	}
}

func TestNumbers_PreservesOrder(t *testing.T) {
	got, err := Numbers([]any{"3", 1, 2.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []float64{3, 1, 2.5}) {
		t.Fatalf("unexpected numbers: %v", got)
	}
}

func TestNumbers_NoPartialResult(t *testing.T) {
	got, err := Numbers([]any{1, "nope", 2})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got != nil {
		t.Fatalf("expected nil slice on failure, got %v", got)
	}
}

func TestKindOf(t *testing.T) {
	_, divErr := Divide(1, 0)
	_, inErr := Add("x")
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{UnknownOperation("pow"), KindUnknownOperation},
		{inErr, KindInvalidInput},
		{divErr, KindDivisionByZero},
		{errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v): expected %q, got %q", tc.err, tc.want, got)
		}
	}
}

func TestUnknownOperation_KeepsOriginalToken(t *testing.T) {
	err := UnknownOperation("PoW")
	if err.Error() != "unknown operation: PoW" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
