package dbus

import "strings"

// NodeKind is the tagged-union discriminant for ArgumentNode. The
// source upgrades a node's class in place as the signature is walked;
// Go has no mutable class pointer to swap, so the tree carries an
// explicit kind instead (spec's Design Notes, "ArgumentNode as a sum
// type").
type NodeKind byte

const (
	KindScalar NodeKind = iota
	KindArray
	KindStruct
	KindDictEntry
	KindDictionary // a distinguished KindArray whose element is a dict-entry
	KindVariant
)

func (k NodeKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindDictEntry:
		return "dict-entry"
	case KindDictionary:
		return "dictionary"
	case KindVariant:
		return "variant"
	default:
		return "invalid"
	}
}

// Parent is implemented by anything an ArgumentNode can be rooted in:
// another ArgumentNode when nested inside a container, or an external
// collaborator — typically a [Proxy] — that terminates the upward
// walk. It is a non-owning reference used only for diagnostics and
// for [proxyParent]'s scope resolution.
type Parent interface {
	Parent() Parent
}

// ArgumentNode describes one DBus type: a scalar, or a container of
// further ArgumentNodes. The tree is built once from a signature (or
// an already-open wire cursor) and is then immutable and safe for
// concurrent use by independent marshal/unmarshal calls.
type ArgumentNode struct {
	dbusType byte
	name     string
	parent   Parent
	children []*ArgumentNode

	kind         NodeKind
	hostClass    HostClass
	isDictionary bool
}

// DBusType returns the node's top-level type code.
func (n *ArgumentNode) DBusType() byte { return n.dbusType }

// Name returns the node's diagnostic name. It has no bearing on
// marshalling and may be empty.
func (n *ArgumentNode) Name() string { return n.name }

// Kind returns the node's tagged-union discriminant.
func (n *ArgumentNode) Kind() NodeKind { return n.kind }

// HostClassOf returns the host-language entity this node's values box
// to. A variant's own HostClassOf is [HostClassNone]: its host class
// is only known once a wire value has been unmarshalled into it (I3).
func (n *ArgumentNode) HostClassOf() HostClass { return n.hostClass }

// IsContainer reports whether the node recurses into children.
func (n *ArgumentNode) IsContainer() bool { return n.kind != KindScalar }

// IsDictionary reports whether an array node is the distinguished
// dictionary form (element is a dict-entry).
func (n *ArgumentNode) IsDictionary() bool { return n.isDictionary }

// Children returns the node's children. Scalars and variants have
// none; arrays have exactly one; dict-entries have exactly two;
// structs have one or more.
func (n *ArgumentNode) Children() []*ArgumentNode { return n.children }

// Parent returns the node's enclosing parent, or nil at the root.
func (n *ArgumentNode) Parent() Parent { return n.parent }

// UnboxedSize returns the width, in bytes, of this node's unboxed
// wire value, or 0 for a container type (spec.md §4.3).
func (n *ArgumentNode) UnboxedSize() int {
	if n.kind != KindScalar {
		return 0
	}
	return scalarWidth(n.dbusType)
}

// Signature reconstructs the DBus type signature this node was built
// from.
func (n *ArgumentNode) Signature() string {
	switch n.kind {
	case KindScalar:
		return string(n.dbusType)
	case KindVariant:
		return "v"
	case KindArray, KindDictionary:
		return "a" + n.children[0].Signature()
	case KindStruct:
		var b strings.Builder
		b.WriteByte('(')
		for _, c := range n.children {
			b.WriteString(c.Signature())
		}
		b.WriteByte(')')
		return b.String()
	case KindDictEntry:
		return "{" + n.children[0].Signature() + n.children[1].Signature() + "}"
	default:
		return ""
	}
}

// diagName returns a human-readable label for this node, used in
// error messages: its diagnostic name if it has one, its signature
// otherwise.
func (n *ArgumentNode) diagName() string {
	if n == nil {
		return "<nil>"
	}
	if n.name != "" {
		return n.name
	}
	return n.Signature()
}

// FromSignature builds an ArgumentNode tree from a signature
// describing exactly one complete type. name is a diagnostic label;
// parent roots the node for later scope resolution (see
// [proxyParent]).
func FromSignature(sig, name string, parent Parent) (*ArgumentNode, error) {
	if !ValidateSingle(sig) {
		return nil, malformedSignature(sig, "must describe exactly one complete type")
	}
	return FromIterator(NewSignatureCursor(sig), name, parent)
}

// FromIterator builds one ArgumentNode from cur's current position,
// recursing into cur for container children. Structs and arrays use
// it to build their own children from a shared sibling cursor; most
// callers should use [FromSignature] instead.
func FromIterator(cur *SignatureCursor, name string, parent Parent) (*ArgumentNode, error) {
	code := cur.Current()
	switch {
	case isScalarCode(code):
		return &ArgumentNode{
			dbusType:  code,
			name:      name,
			parent:    parent,
			kind:      KindScalar,
			hostClass: scalarHostClass(code),
		}, nil
	case code == 'v':
		return &ArgumentNode{
			dbusType:  'v',
			name:      name,
			parent:    parent,
			kind:      KindVariant,
			hostClass: HostClassNone,
		}, nil
	case code == 'a':
		return fromArray(cur, name, parent)
	case code == '(':
		return fromStruct(cur, name, parent)
	case code == '{':
		return fromDictEntry(cur, name, parent)
	default:
		return nil, malformedSignature(cur.sig, "unknown type specifier %q", string(code))
	}
}

func fromArray(cur *SignatureCursor, name string, parent Parent) (*ArgumentNode, error) {
	sub, err := cur.Recurse()
	if err != nil {
		return nil, err
	}
	node := &ArgumentNode{
		dbusType:  'a',
		name:      name,
		parent:    parent,
		kind:      KindArray,
		hostClass: HostClassSequence,
	}
	child, err := FromIterator(sub, "element", node)
	if err != nil {
		return nil, err
	}
	node.children = []*ArgumentNode{child}

	// Dict-entry promotion happens in a small pass after the child is
	// fully built, rather than mutating the array through a back
	// reference while the child is still under construction.
	if child.kind == KindDictEntry {
		node.kind = KindDictionary
		node.isDictionary = true
		node.hostClass = HostClassMapping
	}
	return node, nil
}

func fromStruct(cur *SignatureCursor, name string, parent Parent) (*ArgumentNode, error) {
	sub, err := cur.Recurse()
	if err != nil {
		return nil, err
	}
	node := &ArgumentNode{
		dbusType:  '(',
		name:      name,
		parent:    parent,
		kind:      KindStruct,
		hostClass: HostClassSequence,
	}
	for i := 0; ; i++ {
		child, err := FromIterator(sub, fieldName(i), node)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, child)
		more, err := sub.Next()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return node, nil
}

func fromDictEntry(cur *SignatureCursor, name string, parent Parent) (*ArgumentNode, error) {
	sub, err := cur.Recurse()
	if err != nil {
		return nil, err
	}
	node := &ArgumentNode{
		dbusType:  '{',
		name:      name,
		parent:    parent,
		kind:      KindDictEntry,
		hostClass: HostClassNone,
	}
	key, err := FromIterator(sub, "key", node)
	if err != nil {
		return nil, err
	}
	if key.kind != KindScalar {
		return nil, malformedSignature(cur.sig, "complex type as dict entry key")
	}
	more, err := sub.Next()
	if err != nil {
		return nil, err
	}
	if !more {
		return nil, malformedSignature(cur.sig, "dict entry is missing a value type")
	}
	value, err := FromIterator(sub, "value", node)
	if err != nil {
		return nil, err
	}
	more, err = sub.Next()
	if err != nil {
		return nil, err
	}
	if more {
		return nil, malformedSignature(cur.sig, "dict entry has more than one value type")
	}
	node.children = []*ArgumentNode{key, value}
	return node, nil
}

func fieldName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return "field_" + string(letters[i])
	}
	return "field_" + string(rune('0'+i%10))
}
