package dbus

import (
	"context"
	"testing"

	"github.com/havelange/dbusarg/wire"
)

func TestCheckFrameSlotRejectsMismatch(t *testing.T) {
	node, err := FromSignature("i", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	frame := NewSliceCallFrame([]HostClass{HostClassString}, HostClassNone)
	if err := checkFrameSlot(node, frame, 0, false); err == nil {
		t.Error("checkFrameSlot with mismatched host class succeeded, want HostTypeMismatchError")
	}
}

func TestCheckFrameSlotAcceptsBoxedAsVariant(t *testing.T) {
	node, err := FromSignature("i", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	frame := NewSliceCallFrame([]HostClass{HostClassVariant}, HostClassNone)
	if err := checkFrameSlot(node, frame, 0, true); err != nil {
		t.Errorf("checkFrameSlot(boxed=true) against a variant-declared slot failed: %v", err)
	}
}

func TestUnmarshalIntoSliceFrame(t *testing.T) {
	node, err := FromSignature("i", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	w := wire.NewWriter(wire.LittleEndian)
	if err := w.AppendBasic('i', int32(42)); err != nil {
		t.Fatal(err)
	}
	iter := MessageIterator(wire.NewReader(wire.LittleEndian, w.Bytes(), "i"))
	frame := NewSliceCallFrame([]HostClass{HostClassInteger}, HostClassNone)
	if err := UnmarshalInto(context.Background(), node, iter, frame, 0, false); err != nil {
		t.Fatalf("UnmarshalInto failed: %v", err)
	}
	if got := frame.Get(0); got != int32(42) {
		t.Errorf("frame.Get(0) = %#v, want int32(42)", got)
	}
}

func TestMarshalFromSliceFrame(t *testing.T) {
	node, err := FromSignature("s", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	frame := NewSliceCallFrame([]HostClass{HostClassString}, HostClassNone)
	frame.Set(0, "hi")
	w := MessageIterator(wire.NewWriter(wire.LittleEndian))
	if err := MarshalFrom(context.Background(), node, frame, 0, w, false); err != nil {
		t.Fatalf("MarshalFrom failed: %v", err)
	}
}

func TestStructCallFrameResultSlot(t *testing.T) {
	var args struct {
		Name  string `dbus:"string"`
		Count int32  `dbus:"integer"`
	}
	frame, err := NewStructCallFrame(&args, HostClassBoolean)
	if err != nil {
		t.Fatal(err)
	}
	frame.Set(0, "widget")
	frame.Set(1, int32(3))
	frame.Set(-1, true)

	if args.Name != "widget" || args.Count != 3 {
		t.Errorf("struct fields not set via reflection: %+v", args)
	}
	if frame.Result() != true {
		t.Errorf("Result() = %v, want true", frame.Result())
	}
	if frame.SlotHostClass(0) != HostClassString || frame.SlotHostClass(1) != HostClassInteger {
		t.Errorf("unexpected slot host classes: %v, %v", frame.SlotHostClass(0), frame.SlotHostClass(1))
	}
	if frame.SlotHostClass(-1) != HostClassBoolean {
		t.Errorf("SlotHostClass(-1) = %v, want HostClassBoolean", frame.SlotHostClass(-1))
	}
}
