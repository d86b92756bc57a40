package dbus_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/havelange/dbusarg"
	"github.com/havelange/dbusarg/wire"
	"github.com/havelange/dbusarg/wiretest"
)

func roundTrip(t *testing.T, sig string, host any) any {
	t.Helper()
	node, err := dbus.FromSignature(sig, "", nil)
	if err != nil {
		t.Fatalf("FromSignature(%q) failed: %v", sig, err)
	}
	got, err := wiretest.RoundTrip(context.Background(), wire.LittleEndian, node, host)
	if err != nil {
		t.Fatalf("RoundTrip(%q, %#v) failed: %v", sig, host, err)
	}
	return got
}

func TestRoundTripScalars(t *testing.T) {
	tests := []struct {
		sig  string
		host any
	}{
		{"y", uint8(7)},
		{"b", true},
		{"n", int16(-30000)},
		{"q", uint16(60000)},
		{"i", int32(-1 << 30)},
		{"u", uint32(1 << 31)},
		{"x", int64(-1 << 62)},
		{"t", uint64(1 << 63)},
		{"d", 3.5},
		{"s", "hello, world"},
	}
	for _, tc := range tests {
		t.Run(tc.sig, func(t *testing.T) {
			got := roundTrip(t, tc.sig, tc.host)
			if diff := cmp.Diff(tc.host, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTripArray(t *testing.T) {
	want := []any{int32(1), int32(2), int32(3)}
	got := roundTrip(t, "ai", want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripEmptyArray(t *testing.T) {
	got := roundTrip(t, "ai", []any{})
	if got != nil {
		if arr, ok := got.([]any); !ok || len(arr) != 0 {
			t.Errorf("round trip of empty array = %#v, want empty or nil slice", got)
		}
	}
}

func TestRoundTripStruct(t *testing.T) {
	want := []any{int16(7), true}
	got := roundTrip(t, "(nb)", want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripNestedStruct(t *testing.T) {
	want := []any{uint8(1), []any{int16(2), false}}
	got := roundTrip(t, "(y(nb))", want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripDictionary(t *testing.T) {
	want := map[any]any{"a": int32(1), "b": int32(2)}
	got := roundTrip(t, "a{si}", want)
	gotMap, ok := got.(map[any]any)
	if !ok {
		t.Fatalf("round trip returned %T, want map[any]any", got)
	}
	if diff := cmp.Diff(want, gotMap); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripVariant(t *testing.T) {
	got := roundTrip(t, "v", int32(99))
	if got != int32(99) {
		t.Errorf("round trip of variant(int32(99)) = %#v, want int32(99)", got)
	}
}

func TestRoundTripVariantInsideStruct(t *testing.T) {
	want := []any{"key", "a string value"}
	got := roundTrip(t, "(sv)", want)
	gotSlice, ok := got.([]any)
	if !ok || len(gotSlice) != 2 {
		t.Fatalf("round trip returned %#v, want a 2-element slice", got)
	}
	if diff := cmp.Diff(want, gotSlice); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// duplicateKeyMapping marshals the same dict-entry key twice with
// different values, so a round trip exercises the "first value wins"
// duplicate-key policy (a deliberate divergence from the teacher's own
// decode.go, which keeps the last value seen).
type duplicateKeyMapping struct {
	calls int
}

func (m *duplicateKeyMapping) Keys() []any { return []any{"dup", "dup"} }

func (m *duplicateKeyMapping) Value(key any) any {
	m.calls++
	if m.calls == 1 {
		return int32(1)
	}
	return int32(2)
}

func TestUnmarshalDictionaryKeepsFirstValueOnDuplicateKey(t *testing.T) {
	node, err := dbus.FromSignature("a{si}", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := wiretest.Encode(context.Background(), wire.LittleEndian, node, &duplicateKeyMapping{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := wiretest.Decode(context.Background(), wire.LittleEndian, node, data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	gotMap, ok := got.(map[any]any)
	if !ok {
		t.Fatalf("Decode returned %T, want map[any]any", got)
	}
	want := map[any]any{"dup": int32(1)}
	if diff := cmp.Diff(want, gotMap); diff != "" {
		t.Errorf("duplicate-key round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalArrayRejectsNonSequence(t *testing.T) {
	node, err := dbus.FromSignature("ai", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wiretest.Encode(context.Background(), wire.LittleEndian, node, 42); err == nil {
		t.Error("Encode(42) against an array node succeeded, want UnrepresentableValueError")
	}
}

func TestMarshalStructRejectsWrongFieldCount(t *testing.T) {
	node, err := dbus.FromSignature("(nb)", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wiretest.Encode(context.Background(), wire.LittleEndian, node, []any{int16(1)}); err == nil {
		t.Error("Encode with too few struct fields succeeded, want error")
	}
}
