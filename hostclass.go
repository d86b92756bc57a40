package dbus

// HostClass names which host-language entity a value of a given DBus
// type boxes to. It is the Go rendering of the class pointer the
// source threads through its boxing code (see spec's Design Notes on
// "Boxing host-class metadata"): a small enumerated tag consumed by a
// factory at box time, rather than a live class reference.
//
// HostClass refines spec's grouping by giving booleans, integers and
// floats separate entries instead of folding them into a single
// "integer-number" bucket. The integer codes (y, n, q, i, u, x, t)
// still share HostClassInteger, though each boxes to its own
// fixed-width Go integer type.
type HostClass byte

const (
	// HostClassNone is the host class of a standalone dict-entry
	// (P4: "standalone dict-entry carries no host class of its own")
	// and of a variant's static type, which has no host class until a
	// wire value is unmarshalled into it (I3).
	HostClassNone HostClass = iota
	HostClassInteger
	HostClassBoolean
	HostClassFloat
	HostClassString
	HostClassObjectPath
	HostClassSignature
	HostClassSequence
	HostClassMapping
	HostClassVariant
)

func (c HostClass) String() string {
	switch c {
	case HostClassNone:
		return "none"
	case HostClassInteger:
		return "integer"
	case HostClassBoolean:
		return "boolean"
	case HostClassFloat:
		return "float"
	case HostClassString:
		return "string"
	case HostClassObjectPath:
		return "object-path"
	case HostClassSignature:
		return "signature"
	case HostClassSequence:
		return "sequence"
	case HostClassMapping:
		return "mapping"
	case HostClassVariant:
		return "variant"
	default:
		return "invalid"
	}
}

// scalarHostClass returns the HostClass a scalar type code boxes to.
// code must be one of the recognized scalar codes; callers check
// isScalarCode first.
func scalarHostClass(code byte) HostClass {
	switch code {
	case 'y', 'n', 'q', 'i', 'u', 'x', 't':
		return HostClassInteger
	case 'b':
		return HostClassBoolean
	case 'd':
		return HostClassFloat
	case 's':
		return HostClassString
	case 'o':
		return HostClassObjectPath
	case 'g':
		return HostClassSignature
	default:
		return HostClassNone
	}
}
