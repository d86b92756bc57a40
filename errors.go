package dbus

import "fmt"

// MalformedSignatureError is returned when a signature string fails
// to validate as a single complete DBus type, or when a container's
// shape (array arity, dict-entry arity, a non-basic dict-entry key)
// violates the grammar.
type MalformedSignatureError struct {
	Signature string
	Reason    string
}

func (e *MalformedSignatureError) Error() string {
	return fmt.Sprintf("dbus: malformed signature %q: %s", e.Signature, e.Reason)
}

func malformedSignature(sig, reason string, args ...any) error {
	return &MalformedSignatureError{Signature: sig, Reason: fmt.Sprintf(reason, args...)}
}

// WireTypeMismatchError is returned when the type found on the wire
// during unmarshal doesn't match the static type of the ArgumentNode
// doing the reading.
type WireTypeMismatchError struct {
	Node *ArgumentNode
	Want byte
	Got  byte
}

func (e *WireTypeMismatchError) Error() string {
	return fmt.Sprintf("dbus: %s: wire type %q does not match expected type %q", e.Node.diagName(), string(e.Got), string(e.Want))
}

func wireTypeMismatch(node *ArgumentNode, want, got byte) error {
	return &WireTypeMismatchError{Node: node, Want: want, Got: got}
}

// HostTypeMismatchError is returned by the call-frame bridge when a
// slot's declared host type doesn't match the type an ArgumentNode
// expects to read or write.
type HostTypeMismatchError struct {
	Node  *ArgumentNode
	Index int
	Want  HostClass
	Got   HostClass
}

func (e *HostTypeMismatchError) Error() string {
	return fmt.Sprintf("dbus: %s: call frame slot %d has host type %s, want %s", e.Node.diagName(), e.Index, e.Got, e.Want)
}

func hostTypeMismatch(node *ArgumentNode, index int, want, got HostClass) error {
	return &HostTypeMismatchError{Node: node, Index: index, Want: want, Got: got}
}

// UnrepresentableValueError is returned when unbox cannot coerce a
// host value into the wire scalar its ArgumentNode expects.
type UnrepresentableValueError struct {
	Node   *ArgumentNode
	Value  any
	Reason string
}

func (e *UnrepresentableValueError) Error() string {
	return fmt.Sprintf("dbus: %s: cannot represent %#v on the wire: %s", e.Node.diagName(), e.Value, e.Reason)
}

func unrepresentableValue(node *ArgumentNode, value any, reason string) error {
	return &UnrepresentableValueError{Node: node, Value: value, Reason: reason}
}

// OutOfWireSpaceError wraps a failure from the underlying
// MessageIterator to append further data. It is treated as fatal for
// the marshal operation it occurred in, and for no other.
type OutOfWireSpaceError struct {
	Node *ArgumentNode
	Err  error
}

func (e *OutOfWireSpaceError) Error() string {
	return fmt.Sprintf("dbus: %s: out of wire space: %v", e.Node.diagName(), e.Err)
}

func (e *OutOfWireSpaceError) Unwrap() error { return e.Err }

func outOfWireSpace(node *ArgumentNode, err error) error {
	return &OutOfWireSpaceError{Node: node, Err: err}
}
