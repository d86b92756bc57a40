package dbus

import (
	"context"
	"fmt"
	"log"
)

// Sequence is the host value shape ContainerCodec expects when
// marshalling an array or struct: something that can produce its
// elements in order (spec.md §4.4.1/§4.4.3, "require the input to
// expose a linear enumerator"). A plain []any satisfies it via
// toSequence's sliceSequence adapter.
type Sequence interface {
	Len() int
	Index(i int) any
}

type sliceSequence []any

func (s sliceSequence) Len() int        { return len(s) }
func (s sliceSequence) Index(i int) any { return s[i] }

func toSequence(v any) (Sequence, bool) {
	switch x := v.(type) {
	case Sequence:
		return x, true
	case []any:
		return sliceSequence(x), true
	default:
		return nil, false
	}
}

// Mapping is the host value shape ContainerCodec expects when
// marshalling a dictionary: an all-keys enumerator plus a key->value
// lookup (spec.md §4.4.2). A plain map[any]any satisfies it via
// toMapping's mapMapping adapter.
type Mapping interface {
	Keys() []any
	Value(key any) any
}

type mapMapping map[any]any

func (m mapMapping) Keys() []any {
	keys := make([]any, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func (m mapMapping) Value(key any) any { return m[key] }

func toMapping(v any) (Mapping, bool) {
	switch x := v.(type) {
	case Mapping:
		return x, true
	case map[any]any:
		return mapMapping(x), true
	default:
		return nil, false
	}
}

// containerGuard opens a container of the given kind via iter, runs
// body with the sub-cursor, and closes the container on every exit
// path. A failure from body takes priority over a failure from the
// close; the close is attempted either way so a partially-written
// container is never left open (spec.md §5).
func containerGuard(iter MessageIterator, kind byte, childSig string, body func(sub MessageIterator) error) error {
	sub, err := iter.OpenContainer(kind, childSig)
	if err != nil {
		return err
	}
	bodyErr := body(sub)
	closeErr := iter.CloseContainer(sub)
	if bodyErr != nil {
		return bodyErr
	}
	return closeErr
}

// Unmarshal reads a value of n's type from iter's current position.
func (n *ArgumentNode) Unmarshal(ctx context.Context, iter MessageIterator) (any, error) {
	switch n.kind {
	case KindScalar:
		return n.unmarshalScalar(iter)
	case KindArray:
		return n.unmarshalArray(ctx, iter)
	case KindDictionary:
		return n.unmarshalDictionary(ctx, iter)
	case KindStruct:
		return n.unmarshalStruct(ctx, iter)
	case KindVariant:
		return n.unmarshalVariant(ctx, iter)
	case KindDictEntry:
		return nil, malformedSignature(n.Signature(), "dict entry cannot be unmarshalled standalone")
	default:
		return nil, unrepresentableValue(n, nil, "unknown node kind")
	}
}

// Marshal writes v, a host value of n's boxed type, to iter's current
// position.
func (n *ArgumentNode) Marshal(ctx context.Context, iter MessageIterator, v any) error {
	switch n.kind {
	case KindScalar:
		return n.marshalScalar(iter, v)
	case KindArray:
		return n.marshalArray(ctx, iter, v)
	case KindDictionary:
		return n.marshalDictionary(ctx, iter, v)
	case KindStruct:
		return n.marshalStruct(ctx, iter, v)
	case KindVariant:
		return n.marshalVariant(ctx, iter, v)
	case KindDictEntry:
		return malformedSignature(n.Signature(), "dict entry cannot be marshalled standalone")
	default:
		return unrepresentableValue(n, v, "unknown node kind")
	}
}

func (n *ArgumentNode) unmarshalScalar(iter MessageIterator) (any, error) {
	if got := iter.ArgType(); got != n.dbusType {
		return nil, wireTypeMismatch(n, n.dbusType, got)
	}
	raw, err := iter.GetBasic()
	if err != nil {
		return nil, err
	}
	return n.box(raw)
}

func (n *ArgumentNode) marshalScalar(iter MessageIterator, v any) error {
	raw, err := n.unbox(v)
	if err != nil {
		return err
	}
	if err := iter.AppendBasic(n.dbusType, raw); err != nil {
		return outOfWireSpace(n, err)
	}
	return nil
}

func (n *ArgumentNode) unmarshalArray(ctx context.Context, iter MessageIterator) (any, error) {
	if got := iter.ArgType(); got != 'a' {
		return nil, wireTypeMismatch(n, 'a', got)
	}
	elem := n.children[0]
	if got := iter.ElementType(); got != elem.dbusType {
		return nil, wireTypeMismatch(elem, elem.dbusType, got)
	}
	sub, err := iter.Recurse()
	if err != nil {
		return nil, err
	}
	var out []any
	for sub.Next() {
		v, err := elem.Unmarshal(ctx, sub)
		if err != nil {
			return nil, err
		}
		if v == nil {
			v = NullMarker
		}
		out = append(out, v)
	}
	return out, nil
}

func (n *ArgumentNode) marshalArray(ctx context.Context, iter MessageIterator, v any) error {
	seq, ok := toSequence(v)
	if !ok {
		return unrepresentableValue(n, v, "does not expose a linear enumerator")
	}
	elem := n.children[0]
	return containerGuard(iter, 'a', elem.Signature(), func(sub MessageIterator) error {
		for i := 0; i < seq.Len(); i++ {
			if err := elem.Marshal(ctx, sub, seq.Index(i)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (n *ArgumentNode) unmarshalDictionary(ctx context.Context, iter MessageIterator) (any, error) {
	if got := iter.ArgType(); got != 'a' {
		return nil, wireTypeMismatch(n, 'a', got)
	}
	entry := n.children[0]
	if got := iter.ElementType(); got != '{' {
		return nil, wireTypeMismatch(entry, '{', got)
	}
	keyNode, valNode := entry.children[0], entry.children[1]

	sub, err := iter.Recurse()
	if err != nil {
		return nil, err
	}
	out := map[any]any{}
	for sub.Next() {
		pair, err := sub.Recurse()
		if err != nil {
			return nil, err
		}
		if !pair.Next() {
			return nil, wireTypeMismatch(keyNode, keyNode.dbusType, 0)
		}
		key, err := keyNode.Unmarshal(ctx, pair)
		if err != nil {
			return nil, err
		}
		if !pair.Next() {
			return nil, wireTypeMismatch(valNode, valNode.dbusType, 0)
		}
		val, err := valNode.Unmarshal(ctx, pair)
		if err != nil {
			return nil, err
		}
		if key == nil {
			key = NullMarker
		}
		if val == nil {
			val = NullMarker
		}
		if _, dup := out[key]; dup {
			log.Printf("dbus: duplicate dictionary key %v, keeping first value seen", key)
			continue
		}
		out[key] = val
	}
	return out, nil
}

func (n *ArgumentNode) marshalDictionary(ctx context.Context, iter MessageIterator, v any) error {
	m, ok := toMapping(v)
	if !ok {
		return unrepresentableValue(n, v, "does not expose an all-keys enumerator and key lookup")
	}
	entry := n.children[0]
	keyNode, valNode := entry.children[0], entry.children[1]
	return containerGuard(iter, 'a', entry.Signature(), func(sub MessageIterator) error {
		for _, k := range m.Keys() {
			err := containerGuard(sub, '{', "", func(pair MessageIterator) error {
				if err := keyNode.Marshal(ctx, pair, k); err != nil {
					return err
				}
				return valNode.Marshal(ctx, pair, m.Value(k))
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (n *ArgumentNode) unmarshalStruct(ctx context.Context, iter MessageIterator) (any, error) {
	if got := iter.ArgType(); got != '(' {
		return nil, wireTypeMismatch(n, '(', got)
	}
	sub, err := iter.Recurse()
	if err != nil {
		return nil, err
	}
	out := make([]any, len(n.children))
	for i, c := range n.children {
		if !sub.Next() {
			return nil, wireTypeMismatch(c, c.dbusType, 0)
		}
		v, err := c.Unmarshal(ctx, sub)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (n *ArgumentNode) marshalStruct(ctx context.Context, iter MessageIterator, v any) error {
	seq, ok := toSequence(v)
	if !ok {
		return unrepresentableValue(n, v, "does not expose a linear enumerator")
	}
	if seq.Len() != len(n.children) {
		return unrepresentableValue(n, v, fmt.Sprintf("expected %d fields, got %d", len(n.children), seq.Len()))
	}
	return containerGuard(iter, '(', "", func(sub MessageIterator) error {
		for i, c := range n.children {
			if err := c.Marshal(ctx, sub, seq.Index(i)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (n *ArgumentNode) unmarshalVariant(ctx context.Context, iter MessageIterator) (any, error) {
	if got := iter.ArgType(); got != 'v' {
		return nil, wireTypeMismatch(n, 'v', got)
	}
	sub, err := iter.Recurse()
	if err != nil {
		return nil, err
	}
	sr, ok := sub.(signatureReporter)
	if !ok {
		return nil, unrepresentableValue(n, nil, "iterator cannot report the variant's embedded signature")
	}
	transient, err := FromSignature(sr.SignatureAt(), "", n)
	if err != nil {
		return nil, err
	}
	return transient.Unmarshal(ctx, sub)
}

func (n *ArgumentNode) marshalVariant(ctx context.Context, iter MessageIterator, v any) error {
	transient, err := inferNodeFromHostValue(v)
	if err != nil {
		return unrepresentableValue(n, v, err.Error())
	}
	transient.parent = n
	return containerGuard(iter, 'v', transient.Signature(), func(sub MessageIterator) error {
		return transient.Marshal(ctx, sub, v)
	})
}

// inferNodeFromHostValue derives a suitable ArgumentNode from v's
// runtime Go type, using the inverse of the §3.1 scalar table plus
// plain []any and map[any]any values, whose element types are taken
// from one element. Other [Sequence] or [Mapping] implementations are
// not recognized and yield an error. It is how a
// variant picks its wire type when marshalling (spec.md §4.4.5): the
// node a variant wraps is transient and has no declared type of its
// own to fall back on.
func inferNodeFromHostValue(v any) (*ArgumentNode, error) {
	switch x := v.(type) {
	case bool:
		return &ArgumentNode{dbusType: 'b', kind: KindScalar, hostClass: HostClassBoolean}, nil
	case uint8:
		return &ArgumentNode{dbusType: 'y', kind: KindScalar, hostClass: HostClassInteger}, nil
	case int16:
		return &ArgumentNode{dbusType: 'n', kind: KindScalar, hostClass: HostClassInteger}, nil
	case uint16:
		return &ArgumentNode{dbusType: 'q', kind: KindScalar, hostClass: HostClassInteger}, nil
	case int32:
		return &ArgumentNode{dbusType: 'i', kind: KindScalar, hostClass: HostClassInteger}, nil
	case uint32:
		return &ArgumentNode{dbusType: 'u', kind: KindScalar, hostClass: HostClassInteger}, nil
	case int64:
		return &ArgumentNode{dbusType: 'x', kind: KindScalar, hostClass: HostClassInteger}, nil
	case uint64:
		return &ArgumentNode{dbusType: 't', kind: KindScalar, hostClass: HostClassInteger}, nil
	case float64:
		return &ArgumentNode{dbusType: 'd', kind: KindScalar, hostClass: HostClassFloat}, nil
	case string:
		return &ArgumentNode{dbusType: 's', kind: KindScalar, hostClass: HostClassString}, nil
	case Proxy:
		return &ArgumentNode{dbusType: 'o', kind: KindScalar, hostClass: HostClassObjectPath}, nil
	case SignatureObject:
		return &ArgumentNode{dbusType: 'g', kind: KindScalar, hostClass: HostClassSignature}, nil
	case []any:
		if len(x) == 0 {
			return nil, fmt.Errorf("cannot infer a DBus type for an empty sequence")
		}
		elem, err := inferNodeFromHostValue(x[0])
		if err != nil {
			return nil, err
		}
		node := &ArgumentNode{dbusType: 'a', kind: KindArray, hostClass: HostClassSequence, children: []*ArgumentNode{elem}}
		elem.parent = node
		return node, nil
	case map[any]any:
		if len(x) == 0 {
			return nil, fmt.Errorf("cannot infer a DBus type for an empty mapping")
		}
		for k, val := range x {
			keyNode, err := inferNodeFromHostValue(k)
			if err != nil {
				return nil, err
			}
			if keyNode.kind != KindScalar {
				return nil, fmt.Errorf("dict entry key %#v does not infer to a basic type", k)
			}
			valNode, err := inferNodeFromHostValue(val)
			if err != nil {
				return nil, err
			}
			entry := &ArgumentNode{dbusType: '{', kind: KindDictEntry, children: []*ArgumentNode{keyNode, valNode}}
			keyNode.parent, valNode.parent = entry, entry
			arr := &ArgumentNode{dbusType: 'a', kind: KindDictionary, hostClass: HostClassMapping, isDictionary: true, children: []*ArgumentNode{entry}}
			entry.parent = arr
			return arr, nil
		}
		panic("unreachable")
	default:
		return nil, fmt.Errorf("no DBus type mapping for host value of type %T", v)
	}
}
