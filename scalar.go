package dbus

// unbox converts a host value into the Go value AppendBasic expects
// for n's wire type, per the table in spec.md §4.3.
func (n *ArgumentNode) unbox(v any) (any, error) {
	switch n.dbusType {
	case 'y':
		i, ok := asInteger(v)
		if !ok {
			return nil, unrepresentableValue(n, v, "not an integer")
		}
		return uint8(i), nil
	case 'b':
		b, ok := v.(bool)
		if !ok {
			return nil, unrepresentableValue(n, v, "not a boolean")
		}
		return b, nil
	case 'n':
		i, ok := asInteger(v)
		if !ok {
			return nil, unrepresentableValue(n, v, "not an integer")
		}
		return int16(i), nil
	case 'q':
		i, ok := asInteger(v)
		if !ok {
			return nil, unrepresentableValue(n, v, "not an integer")
		}
		return uint16(i), nil
	case 'i':
		i, ok := asInteger(v)
		if !ok {
			return nil, unrepresentableValue(n, v, "not an integer")
		}
		return int32(i), nil
	case 'u':
		i, ok := asInteger(v)
		if !ok {
			return nil, unrepresentableValue(n, v, "not an integer")
		}
		return uint32(i), nil
	case 'x':
		i, ok := asInteger(v)
		if !ok {
			return nil, unrepresentableValue(n, v, "not an integer")
		}
		return i, nil
	case 't':
		i, ok := asInteger(v)
		if !ok {
			return nil, unrepresentableValue(n, v, "not an integer")
		}
		return uint64(i), nil
	case 'd':
		f, ok := asFloat(v)
		if !ok {
			return nil, unrepresentableValue(n, v, "not a number")
		}
		return f, nil
	case 's':
		s, ok := v.(string)
		if !ok {
			return nil, unrepresentableValue(n, v, "not a string")
		}
		return s, nil
	case 'o':
		p, ok := v.(Proxy)
		if !ok {
			return nil, unrepresentableValue(n, v, "not an object path proxy")
		}
		scope := proxyParent(n)
		if scope == nil || !p.HasSameScopeAs(scope) {
			return nil, unrepresentableValue(n, v, "object path proxy is not in scope of the enclosing proxy")
		}
		return p.Path(), nil
	case 'g':
		sigObj, ok := v.(SignatureObject)
		if !ok {
			return nil, unrepresentableValue(n, v, "not a signature object")
		}
		return sigObj.Signature(), nil
	default:
		return nil, unrepresentableValue(n, v, "not a scalar type")
	}
}

// box converts raw, a Go value read by MessageIterator.GetBasic, into
// the host value n's type boxes to, per the table in spec.md §4.3.
func (n *ArgumentNode) box(raw any) (any, error) {
	switch n.dbusType {
	case 'y', 'b', 'n', 'q', 'i', 'u', 'x', 't', 'd', 's':
		return raw, nil
	case 'o':
		path, ok := raw.(string)
		if !ok {
			return nil, wireTypeMismatch(n, 'o', 0)
		}
		scope := proxyParent(n)
		if scope == nil {
			return nil, unrepresentableValue(n, raw, "no enclosing proxy to resolve the object path against")
		}
		return scope.WithPath(path), nil
	case 'g':
		sig, ok := raw.(string)
		if !ok {
			return nil, wireTypeMismatch(n, 'g', 0)
		}
		return FromSignature(sig, "", nil)
	default:
		return nil, unrepresentableValue(n, raw, "not a scalar type")
	}
}

// SignatureObject is the host value shape boxed from, and unboxed to,
// a 'g' signature value. *ArgumentNode satisfies it via its own
// Signature method, which is also the canonical way callers obtain
// one: box a received 'g' value by calling FromSignature on the wire
// text.
type SignatureObject interface {
	Signature() string
}

func asInteger(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		if i, ok := asInteger(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}
