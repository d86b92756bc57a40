package wire_test

import (
	"bytes"
	"testing"

	"github.com/havelange/dbusarg/wire"
)

func TestWriterScalarPadding(t *testing.T) {
	w := wire.NewWriter(wire.BigEndian)
	if err := w.AppendBasic('t', uint64(66)); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendBasic('y', uint8(0)); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendBasic('u', uint32(42)); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendBasic('y', uint8(0)); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendBasic('q', uint16(66)); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendBasic('y', uint8(0)); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendBasic('y', uint8(42)); err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x42,
		0x00,             // raw
		0x00, 0x00, 0x00, // pad
		0x00, 0x00, 0x00, 0x2a,
		0x00, // raw
		0x00, // pad
		0x00, 0x42,
		0x00, // raw
		0x2a,
	}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("incorrect encode:\n  got: % x\n want: % x", got, want)
	}
}

func TestWriterStructPadding(t *testing.T) {
	w := wire.NewWriter(wire.BigEndian)

	sub, err := w.OpenContainer('(', "t")
	if err != nil {
		t.Fatal(err)
	}
	if err := sub.AppendBasic('t', uint64(66)); err != nil {
		t.Fatal(err)
	}
	if err := w.CloseContainer(sub); err != nil {
		t.Fatal(err)
	}

	sub, err = w.OpenContainer('(', "u")
	if err != nil {
		t.Fatal(err)
	}
	if err := sub.AppendBasic('u', uint32(42)); err != nil {
		t.Fatal(err)
	}
	if err := w.CloseContainer(sub); err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x42,
		0x00, 0x00, 0x00, 0x2a,
	}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("incorrect encode:\n  got: % x\n want: % x", got, want)
	}
}

func TestWriterArray(t *testing.T) {
	w := wire.NewWriter(wire.BigEndian)
	sub, err := w.OpenContainer('a', "q")
	if err != nil {
		t.Fatal(err)
	}
	if err := sub.AppendBasic('q', uint16(1)); err != nil {
		t.Fatal(err)
	}
	if err := sub.AppendBasic('q', uint16(2)); err != nil {
		t.Fatal(err)
	}
	if err := w.CloseContainer(sub); err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x00, 0x00, 0x00, 0x04, // length
		0x00, 0x01,
		0x00, 0x02,
	}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("incorrect encode:\n  got: % x\n want: % x", got, want)
	}
}

func TestWriterEmptyArray(t *testing.T) {
	w := wire.NewWriter(wire.BigEndian)
	sub, err := w.OpenContainer('a', "q")
	if err != nil {
		t.Fatal(err)
	}
	if err := w.CloseContainer(sub); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x00}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("incorrect encode:\n  got: % x\n want: % x", got, want)
	}
}

func TestWriterStructArrayPadsEachElement(t *testing.T) {
	w := wire.NewWriter(wire.BigEndian)
	sub, err := w.OpenContainer('a', "(q)")
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []uint16{1, 2} {
		elem, err := sub.OpenContainer('(', "q")
		if err != nil {
			t.Fatal(err)
		}
		if err := elem.AppendBasic('q', v); err != nil {
			t.Fatal(err)
		}
		if err := sub.CloseContainer(elem); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.CloseContainer(sub); err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x00, 0x00, 0x00, 0x0a, // length
		0x00, 0x00, 0x00, 0x00, // pad to struct boundary
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // pad to struct boundary
		0x00, 0x02,
	}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("incorrect encode:\n  got: % x\n want: % x", got, want)
	}
}

func TestReaderRoundTripsWriterOutput(t *testing.T) {
	w := wire.NewWriter(wire.LittleEndian)
	if err := w.AppendBasic('i', int32(-1000)); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendBasic('s', "hello"); err != nil {
		t.Fatal(err)
	}

	r := wire.NewReader(wire.LittleEndian, w.Bytes(), "i")
	got, err := r.GetBasic()
	if err != nil {
		t.Fatal(err)
	}
	if got != int32(-1000) {
		t.Errorf("GetBasic() = %#v, want int32(-1000)", got)
	}
}

func TestReaderArrayLength(t *testing.T) {
	w := wire.NewWriter(wire.LittleEndian)
	sub, err := w.OpenContainer('a', "q")
	if err != nil {
		t.Fatal(err)
	}
	if err := sub.AppendBasic('q', uint16(1)); err != nil {
		t.Fatal(err)
	}
	if err := sub.AppendBasic('q', uint16(2)); err != nil {
		t.Fatal(err)
	}
	if err := w.CloseContainer(sub); err != nil {
		t.Fatal(err)
	}

	r := wire.NewReader(wire.LittleEndian, w.Bytes(), "aq")
	elems, err := r.Recurse()
	if err != nil {
		t.Fatal(err)
	}
	var got []uint16
	for elems.Next() {
		v, err := elems.GetBasic()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v.(uint16))
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestByteOrderAffectsMultiByteEncoding(t *testing.T) {
	be := wire.NewWriter(wire.BigEndian)
	if err := be.AppendBasic('u', uint32(1)); err != nil {
		t.Fatal(err)
	}
	le := wire.NewWriter(wire.LittleEndian)
	if err := le.AppendBasic('u', uint32(1)); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(be.Bytes(), le.Bytes()) {
		t.Errorf("big and little endian encodings of uint32(1) should differ, both got % x", be.Bytes())
	}
	wantBE := []byte{0x00, 0x00, 0x00, 0x01}
	wantLE := []byte{0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(be.Bytes(), wantBE) {
		t.Errorf("BigEndian encode = % x, want % x", be.Bytes(), wantBE)
	}
	if !bytes.Equal(le.Bytes(), wantLE) {
		t.Errorf("LittleEndian encode = % x, want % x", le.Bytes(), wantLE)
	}
}
