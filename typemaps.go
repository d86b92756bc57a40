package dbus

import "github.com/creachadair/mds/mapset"

// scalarCodes is the set of single-character type codes recognized as
// DBus basic types (spec.md §3.1). Adapted from the teacher's
// typemaps.go, which keeps this kind of fixed lookup table as a
// mapset.Set rather than a bare map[byte]struct{}.
var scalarCodes = mapset.New[byte]('y', 'b', 'n', 'q', 'i', 'u', 'x', 't', 'd', 's', 'o', 'g')

// isScalarCode reports whether code is one of the recognized DBus
// basic type codes.
func isScalarCode(code byte) bool {
	return scalarCodes.Has(code)
}

// scalarWidth is the zero-extended/sign-extended width, in bytes, a
// scalar type occupies in its 64-bit-wide unboxed buffer slot
// (spec.md §4.3).
func scalarWidth(code byte) int {
	switch code {
	case 'y':
		return 1
	case 'n', 'q':
		return 2
	case 'i', 'u', 'b':
		return 4
	case 'x', 't', 'd':
		return 8
	case 's', 'o', 'g':
		return 8 // pointer-sized slot, not an inline value
	default:
		return 0
	}
}
