package dbus

// SliceCallFrame is a CallFrame backed by a plain slice of host
// values plus one return slot, for callers with no Go struct to bind
// arguments to — the common case for a generic method-call dispatcher
// that doesn't know its callees' argument shapes ahead of time.
type SliceCallFrame struct {
	ArgClasses  []HostClass
	Args        []any
	ReturnClass HostClass
	Return      any
}

// NewSliceCallFrame returns a SliceCallFrame with argClasses declared
// for each positional slot and returnClass declared for the return
// slot.
func NewSliceCallFrame(argClasses []HostClass, returnClass HostClass) *SliceCallFrame {
	return &SliceCallFrame{
		ArgClasses:  argClasses,
		Args:        make([]any, len(argClasses)),
		ReturnClass: returnClass,
	}
}

func (f *SliceCallFrame) SlotHostClass(index int) HostClass {
	if index == -1 {
		return f.ReturnClass
	}
	if index < 0 || index >= len(f.ArgClasses) {
		return HostClassNone
	}
	return f.ArgClasses[index]
}

func (f *SliceCallFrame) Get(index int) any {
	if index == -1 {
		return f.Return
	}
	return f.Args[index]
}

func (f *SliceCallFrame) Set(index int, v any) {
	if index == -1 {
		f.Return = v
		return
	}
	f.Args[index] = v
}
