package wire

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// A ByteOrder is a DBus-aware byte order: in addition to the usual
// multi-byte encode/decode operations, it knows which byte-order flag
// character identifies it on the wire.
type ByteOrder interface {
	byteOrder
	dbusFlag() byte
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type wrapStd struct {
	byteOrder
}

func (w wrapStd) dbusFlag() byte {
	switch w.byteOrder {
	case binary.BigEndian:
		return 'B'
	case binary.LittleEndian:
		return 'l'
	case binary.NativeEndian:
		if cpu.IsBigEndian {
			return 'B'
		}
		return 'l'
	default:
		panic("unknown ByteOrder, how did you manage to make one of those?")
	}
}

var (
	BigEndian    ByteOrder = wrapStd{binary.BigEndian}
	LittleEndian ByteOrder = wrapStd{binary.LittleEndian}
	NativeEndian ByteOrder = wrapStd{binary.NativeEndian}
)

// OrderForFlag returns the ByteOrder corresponding to a DBus
// byte-order flag byte ('l' or 'B'), the same byte a message header
// carries to announce how its body is encoded.
func OrderForFlag(flag byte) (ByteOrder, error) {
	switch flag {
	case 'l':
		return LittleEndian, nil
	case 'B':
		return BigEndian, nil
	default:
		return nil, errUnknownByteOrderFlag(flag)
	}
}

type errUnknownByteOrderFlag byte

func (e errUnknownByteOrderFlag) Error() string {
	return "unknown byte order flag " + string(rune(e))
}
