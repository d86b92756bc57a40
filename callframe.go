package dbus

import "context"

// CallFrame is an abstract call record: read/write access to
// arguments by index, and to a single return slot. Each slot declares
// the host type it expects to hold; [UnmarshalInto] and [MarshalFrom]
// enforce that declaration against the ArgumentNode driving the
// transfer before touching the slot.
//
// Index -1 denotes the return slot.
type CallFrame interface {
	// SlotHostClass returns the declared host type of the slot at
	// index.
	SlotHostClass(index int) HostClass
	// Get returns the value currently stored in the slot at index.
	Get(index int) any
	// Set stores v into the slot at index.
	Set(index int, v any)
}

// expectedHostClass is the host type a CallFrame slot must declare to
// receive n's value: n's own host class normally, or the generic
// boxed-object class when boxing is enabled, since a boxed read can
// go into any slot willing to hold an opaque value.
func (n *ArgumentNode) expectedHostClass(boxed bool) HostClass {
	if boxed {
		return HostClassVariant
	}
	return n.hostClass
}

// UnmarshalInto reads a value of n's type from iter and stores it
// into frame's slot index, after checking that the slot's declared
// host type matches n's (spec.md §4.6).
func UnmarshalInto(ctx context.Context, n *ArgumentNode, iter MessageIterator, frame CallFrame, index int, boxed bool) error {
	if err := checkFrameSlot(n, frame, index, boxed); err != nil {
		return err
	}
	v, err := n.Unmarshal(ctx, iter)
	if err != nil {
		return err
	}
	frame.Set(index, v)
	return nil
}

// MarshalFrom reads frame's slot index and writes it to iter as a
// value of n's type, after checking that the slot's declared host
// type matches n's (spec.md §4.6).
func MarshalFrom(ctx context.Context, n *ArgumentNode, frame CallFrame, index int, iter MessageIterator, boxed bool) error {
	if err := checkFrameSlot(n, frame, index, boxed); err != nil {
		return err
	}
	return n.Marshal(ctx, iter, frame.Get(index))
}

func checkFrameSlot(n *ArgumentNode, frame CallFrame, index int, boxed bool) error {
	want := n.expectedHostClass(boxed)
	got := frame.SlotHostClass(index)
	if got != want {
		return hostTypeMismatch(n, index, want, got)
	}
	return nil
}
