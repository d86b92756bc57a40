package wire

// writer accumulates DBus wire bytes. Methods insert padding as
// needed to conform to DBus alignment rules, except for [writer.raw]
// which outputs bytes verbatim.
//
// Adapted from the teacher's fragments.Encoder: same padding and
// framing rules, stripped of the reflect-driven Mapper/Value
// indirection since this core drives encoding from the ArgumentNode
// tree instead of Go struct reflection.
type writer struct {
	order ByteOrder
	out   []byte
}

func newWriter(order ByteOrder) *writer {
	return &writer{order: order}
}

func (w *writer) pad(align int) {
	extra := len(w.out) % align
	if extra == 0 {
		return
	}
	var pad [8]byte
	w.out = append(w.out, pad[:align-extra]...)
}

func (w *writer) raw(bs []byte) {
	w.out = append(w.out, bs...)
}

func (w *writer) bytes(bs []byte) {
	w.pad(4)
	w.uint32(uint32(len(bs)))
	w.out = append(w.out, bs...)
}

func (w *writer) string(s string) {
	w.pad(4)
	w.uint32(uint32(len(s)))
	w.out = append(w.out, s...)
	w.out = append(w.out, 0)
}

func (w *writer) signature(s string) {
	w.uint8(uint8(len(s)))
	w.out = append(w.out, s...)
	w.out = append(w.out, 0)
}

func (w *writer) uint8(u8 uint8) {
	w.out = append(w.out, u8)
}

func (w *writer) uint16(u16 uint16) {
	w.pad(2)
	w.out = w.order.AppendUint16(w.out, u16)
}

func (w *writer) uint32(u32 uint32) {
	w.pad(4)
	w.out = w.order.AppendUint32(w.out, u32)
}

func (w *writer) uint64(u64 uint64) {
	w.pad(8)
	w.out = w.order.AppendUint64(w.out, u64)
}

// patchUint32 overwrites the uint32 at byte offset off. Used to
// backfill array-length headers once the array body has been
// written.
func (w *writer) patchUint32(off int, v uint32) {
	w.order.PutUint32(w.out[off:], v)
}

// reader consumes DBus wire bytes. Methods advance the read cursor as
// needed to account for DBus alignment, except for [reader.raw] which
// reads bytes verbatim.
//
// Adapted from the teacher's fragments.Decoder, stripped of the
// reflect-driven Mapper/Value indirection for the same reason as
// [writer].
type reader struct {
	order ByteOrder
	in    []byte
	pos   int
}

func newReader(order ByteOrder, in []byte) *reader {
	return &reader{order: order, in: in}
}

func (r *reader) pad(align int) error {
	extra := r.pos % align
	if extra == 0 {
		return nil
	}
	skip := align - extra
	if r.pos+skip > len(r.in) {
		return errShortRead
	}
	r.pos += skip
	return nil
}

func (r *reader) raw(n int) ([]byte, error) {
	if r.pos+n > len(r.in) {
		return nil, errShortRead
	}
	bs := r.in[r.pos : r.pos+n]
	r.pos += n
	return bs, nil
}

func (r *reader) bytes() ([]byte, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	return r.raw(int(n))
}

func (r *reader) string() (string, error) {
	n, err := r.uint32()
	if err != nil {
		return "", err
	}
	bs, err := r.raw(int(n) + 1)
	if err != nil {
		return "", err
	}
	return string(bs[:len(bs)-1]), nil
}

func (r *reader) signature() (string, error) {
	n, err := r.uint8()
	if err != nil {
		return "", err
	}
	bs, err := r.raw(int(n) + 1)
	if err != nil {
		return "", err
	}
	return string(bs[:len(bs)-1]), nil
}

func (r *reader) uint8() (uint8, error) {
	bs, err := r.raw(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (r *reader) uint16() (uint16, error) {
	if err := r.pad(2); err != nil {
		return 0, err
	}
	bs, err := r.raw(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(bs), nil
}

func (r *reader) uint32() (uint32, error) {
	if err := r.pad(4); err != nil {
		return 0, err
	}
	bs, err := r.raw(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(bs), nil
}

func (r *reader) uint64() (uint64, error) {
	if err := r.pad(8); err != nil {
		return 0, err
	}
	bs, err := r.raw(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(bs), nil
}

func (r *reader) remaining() int {
	return len(r.in) - r.pos
}

type shortReadError struct{}

func (shortReadError) Error() string { return "unexpected end of message" }

var errShortRead error = shortReadError{}
