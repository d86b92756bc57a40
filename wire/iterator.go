// Package wire provides the low-level message-iterator abstraction
// that the dbus package's argument model marshals to and unmarshals
// from.
//
// This is the one concrete implementation of the iterator: a real
// bus connection (out of scope for this repository) would supply its
// own, but tests and the dbussig inspector need something to drive,
// so wire.Iterator marshals to and unmarshals from an in-memory
// buffer using the same padding and framing rules as the DBus wire
// format.
//
// You should not need to use this package directly unless you are
// writing a new transport, or a test that wants to inspect raw wire
// bytes.
package wire

import (
	"errors"
	"math"
)

// ErrNotContainer is returned by Recurse and OpenContainer when the
// iterator's current position is not a container type.
var ErrNotContainer = errors.New("wire: not a container type at this position")

// ErrWrongDirection is returned when a write-only operation is
// attempted on a reading iterator, or vice versa.
var ErrWrongDirection = errors.New("wire: operation not valid in this iterator's direction")

// ErrBasicType is returned by AppendBasic/GetBasic when the type code
// or host value doesn't describe a DBus basic (scalar) type.
type ErrBasicType struct {
	Code byte
	Want string
}

func (e ErrBasicType) Error() string {
	return "wire: cannot represent type " + string(e.Code) + " as " + e.Want
}

// MessageIterator is the cursor abstraction the dbus package's
// ArgumentNode tree marshals to and unmarshals from. *Iterator is the
// only implementation in this repository; a real bus transport would
// supply its own.
type MessageIterator interface {
	// ArgType returns the DBus type code at the current position, or
	// 0 if there is none.
	ArgType() byte
	// ElementType returns an array's element type code. Valid only
	// when ArgType is 'a'.
	ElementType() byte
	// GetBasic reads the scalar value at the current position.
	GetBasic() (any, error)
	// Recurse returns a cursor into the container at the current
	// position.
	Recurse() (MessageIterator, error)
	// Next advances to the next element or field and reports whether
	// one is available.
	Next() bool

	// OpenContainer begins writing a container of the given kind.
	OpenContainer(kind byte, childSignature string) (MessageIterator, error)
	// AppendBasic writes a scalar value at the current position.
	AppendBasic(code byte, v any) error
	// CloseContainer finishes writing the container cursor sub.
	CloseContainer(sub MessageIterator) error
}

// Iterator is a cursor over a DBus message body, in the style of the
// reference DBus library's DBusMessageIter: a single type can drive
// both reading and writing, and recursing into a container produces a
// child Iterator sharing the same underlying buffer.
//
// An Iterator is either a reader or a writer for its entire lifetime;
// a freshly Recurse()'d or OpenContainer()'d Iterator inherits its
// parent's direction.
type Iterator struct {
	order ByteOrder
	w     *writer
	r     *reader

	// typ is the signature of the single complete type at this
	// iterator's current position. Constant across Next() calls for
	// an array/dict element cursor; replaced by Next() for a
	// struct/dict-entry field cursor.
	typ string

	// fields holds the per-field signatures of a struct or dict-entry
	// cursor; nil for every other kind of cursor. fieldIdx is the
	// index of the field typ currently describes, or -1 before the
	// first call to Next().
	fields   []string
	fieldIdx int

	// containerEnd is the reader byte offset at which the current
	// array or dictionary ends. -1 for cursors that aren't bounded
	// this way (struct/dict-entry fields, and the top-level cursor).
	containerEnd int

	// Write-mode array bookkeeping: lenOffset is where the array's
	// length word was written (to be patched in on Close), dataStart
	// is where the array body begins.
	lenOffset int
	dataStart int

	// kind records what sort of container this cursor is inside, for
	// CloseContainer's benefit. 0 for non-container cursors.
	kind byte
}

// NewWriter returns a fresh top-level Iterator for building a message
// body in the given byte order.
func NewWriter(order ByteOrder) *Iterator {
	return &Iterator{order: order, w: newWriter(order), lenOffset: -1, containerEnd: -1}
}

// Bytes returns the encoded message body accumulated so far. Valid
// only on a writer Iterator.
func (it *Iterator) Bytes() []byte {
	return it.w.out
}

// NewReader returns a fresh top-level Iterator over data, whose
// position describes a single complete value of the given signature.
func NewReader(order ByteOrder, data []byte, sig string) *Iterator {
	return &Iterator{order: order, r: newReader(order, data), typ: sig, containerEnd: -1, lenOffset: -1}
}

// SignatureAt returns the DBus signature text at the iterator's
// current position. Callers that need to build a type tree from an
// already-open cursor (the dbus package's variant unmarshalling) use
// this instead of ArgType when a single type code isn't enough.
func (it *Iterator) SignatureAt() string {
	return it.typ
}

// ArgType returns the DBus type code at the iterator's current
// position, or 0 if the position doesn't describe a value (e.g. an
// array cursor that has run out of elements).
func (it *Iterator) ArgType() byte {
	if it.typ == "" {
		return 0
	}
	return it.typ[0]
}

// ElementType returns the type code of an array's element type. Valid
// only when ArgType is 'a'.
func (it *Iterator) ElementType() byte {
	if it.ArgType() != 'a' {
		return 0
	}
	elem := it.typ[1:]
	if elem == "" {
		return 0
	}
	return elem[0]
}

// GetBasic reads the scalar value at the iterator's current position.
func (it *Iterator) GetBasic() (any, error) {
	if it.r == nil {
		return nil, ErrWrongDirection
	}
	code := it.ArgType()
	switch code {
	case 'y':
		return it.r.uint8()
	case 'b':
		u, err := it.r.uint32()
		if err != nil {
			return nil, err
		}
		return u != 0, nil
	case 'n':
		u, err := it.r.uint16()
		if err != nil {
			return nil, err
		}
		return int16(u), nil
	case 'q':
		return it.r.uint16()
	case 'i':
		u, err := it.r.uint32()
		if err != nil {
			return nil, err
		}
		return int32(u), nil
	case 'u':
		return it.r.uint32()
	case 'x':
		u, err := it.r.uint64()
		if err != nil {
			return nil, err
		}
		return int64(u), nil
	case 't':
		return it.r.uint64()
	case 'd':
		u, err := it.r.uint64()
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(u), nil
	case 's', 'o':
		return it.r.string()
	case 'g':
		return it.r.signature()
	default:
		return nil, ErrBasicType{code, "a basic type"}
	}
}

// AppendBasic writes a scalar value at the iterator's current write
// position. v must be the Go type corresponding to code (see the
// dbus package's unbox in scalar.go for the mapping).
func (it *Iterator) AppendBasic(code byte, v any) error {
	if it.w == nil {
		return ErrWrongDirection
	}
	switch code {
	case 'y':
		u, ok := v.(uint8)
		if !ok {
			return ErrBasicType{code, "uint8"}
		}
		it.w.uint8(u)
	case 'b':
		b, ok := v.(bool)
		if !ok {
			return ErrBasicType{code, "bool"}
		}
		if b {
			it.w.uint32(1)
		} else {
			it.w.uint32(0)
		}
	case 'n':
		n, ok := v.(int16)
		if !ok {
			return ErrBasicType{code, "int16"}
		}
		it.w.uint16(uint16(n))
	case 'q':
		n, ok := v.(uint16)
		if !ok {
			return ErrBasicType{code, "uint16"}
		}
		it.w.uint16(n)
	case 'i':
		n, ok := v.(int32)
		if !ok {
			return ErrBasicType{code, "int32"}
		}
		it.w.uint32(uint32(n))
	case 'u':
		n, ok := v.(uint32)
		if !ok {
			return ErrBasicType{code, "uint32"}
		}
		it.w.uint32(n)
	case 'x':
		n, ok := v.(int64)
		if !ok {
			return ErrBasicType{code, "int64"}
		}
		it.w.uint64(uint64(n))
	case 't':
		n, ok := v.(uint64)
		if !ok {
			return ErrBasicType{code, "uint64"}
		}
		it.w.uint64(n)
	case 'd':
		f, ok := v.(float64)
		if !ok {
			return ErrBasicType{code, "float64"}
		}
		it.w.uint64(math.Float64bits(f))
	case 's', 'o':
		s, ok := v.(string)
		if !ok {
			return ErrBasicType{code, "string"}
		}
		it.w.string(s)
	case 'g':
		s, ok := v.(string)
		if !ok {
			return ErrBasicType{code, "string"}
		}
		it.w.signature(s)
	default:
		return ErrBasicType{code, "a basic type"}
	}
	return nil
}

// Recurse returns a cursor into the container at the iterator's
// current read position.
func (it *Iterator) Recurse() (MessageIterator, error) {
	if it.r == nil {
		return nil, ErrWrongDirection
	}
	switch it.ArgType() {
	case 'a':
		elemSig := it.typ[1:]
		elemIsCompound := elemSig != "" && (elemSig[0] == '(' || elemSig[0] == '{')
		n, err := it.r.uint32()
		if err != nil {
			return nil, err
		}
		if elemIsCompound {
			if err := it.r.pad(8); err != nil {
				return nil, err
			}
		}
		start := it.r.pos
		end := start + int(n)
		if end > len(it.r.in) {
			return nil, errShortRead
		}
		return &Iterator{order: it.order, r: it.r, typ: elemSig, containerEnd: end, lenOffset: -1}, nil
	case '(':
		if err := it.r.pad(8); err != nil {
			return nil, err
		}
		fields := splitTypes(it.typ[1 : len(it.typ)-1])
		return &Iterator{order: it.order, r: it.r, fields: fields, fieldIdx: -1, containerEnd: -1, lenOffset: -1}, nil
	case '{':
		if err := it.r.pad(8); err != nil {
			return nil, err
		}
		fields := splitTypes(it.typ[1 : len(it.typ)-1])
		return &Iterator{order: it.order, r: it.r, fields: fields, fieldIdx: -1, containerEnd: -1, lenOffset: -1}, nil
	case 'v':
		sig, err := it.r.signature()
		if err != nil {
			return nil, err
		}
		return &Iterator{order: it.order, r: it.r, typ: sig, containerEnd: -1, lenOffset: -1}, nil
	default:
		return nil, ErrNotContainer
	}
}

// Next advances the iterator to the next element or field, and
// reports whether one is available. Call Next before reading the
// first element of an array, struct or dict-entry cursor returned by
// Recurse. A variant cursor is already positioned at its single value
// and its Next always reports false.
func (it *Iterator) Next() bool {
	if it.r == nil {
		return false
	}
	if it.fields != nil {
		it.fieldIdx++
		if it.fieldIdx >= len(it.fields) {
			it.typ = ""
			return false
		}
		it.typ = it.fields[it.fieldIdx]
		return true
	}
	if it.containerEnd < 0 {
		return false
	}
	return it.r.pos < it.containerEnd
}

// OpenContainer begins writing a container of the given kind ('a',
// '(', '{', or 'v') at the iterator's current write position.
// childSignature is the element signature for an array, or the
// variant's contained signature for a variant; it is ignored for
// struct and dict-entry.
func (it *Iterator) OpenContainer(kind byte, childSignature string) (MessageIterator, error) {
	if it.w == nil {
		return nil, ErrWrongDirection
	}
	switch kind {
	case 'a':
		it.w.pad(4)
		offset := len(it.w.out)
		it.w.uint32(0)
		elemIsCompound := childSignature != "" && (childSignature[0] == '(' || childSignature[0] == '{')
		if elemIsCompound {
			it.w.pad(8)
		}
		start := len(it.w.out)
		return &Iterator{order: it.order, w: it.w, typ: childSignature, lenOffset: offset, dataStart: start, kind: 'a', containerEnd: -1}, nil
	case '(':
		it.w.pad(8)
		return &Iterator{order: it.order, w: it.w, kind: '(', lenOffset: -1, containerEnd: -1}, nil
	case '{':
		it.w.pad(8)
		return &Iterator{order: it.order, w: it.w, kind: '{', lenOffset: -1, containerEnd: -1}, nil
	case 'v':
		it.w.signature(childSignature)
		return &Iterator{order: it.order, w: it.w, kind: 'v', lenOffset: -1, containerEnd: -1}, nil
	default:
		return nil, ErrNotContainer
	}
}

// CloseContainer finishes writing the container cursor sub, which
// must have been returned by a prior call to it.OpenContainer.
func (it *Iterator) CloseContainer(sub MessageIterator) error {
	if it.w == nil {
		return ErrWrongDirection
	}
	s, ok := sub.(*Iterator)
	if !ok {
		return errors.New("wire: CloseContainer called with an iterator from a different implementation")
	}
	if s.kind == 'a' {
		length := uint32(len(it.w.out) - s.dataStart)
		it.w.patchUint32(s.lenOffset, length)
	}
	return nil
}
