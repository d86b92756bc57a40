package wire

import "testing"

func TestDbusFlag(t *testing.T) {
	tests := []struct {
		order ByteOrder
		want  byte
	}{
		{BigEndian, 'B'},
		{LittleEndian, 'l'},
	}
	for _, tc := range tests {
		if got := tc.order.dbusFlag(); got != tc.want {
			t.Errorf("dbusFlag() = %q, want %q", got, tc.want)
		}
	}
}

func TestOrderForFlag(t *testing.T) {
	tests := []struct {
		flag    byte
		want    ByteOrder
		wantErr bool
	}{
		{'l', LittleEndian, false},
		{'B', BigEndian, false},
		{'?', nil, true},
	}
	for _, tc := range tests {
		got, err := OrderForFlag(tc.flag)
		if tc.wantErr {
			if err == nil {
				t.Errorf("OrderForFlag(%q) succeeded, want error", tc.flag)
			}
			continue
		}
		if err != nil {
			t.Fatalf("OrderForFlag(%q) failed: %v", tc.flag, err)
		}
		if got != tc.want {
			t.Errorf("OrderForFlag(%q) = %v, want %v", tc.flag, got, tc.want)
		}
	}
}

func TestNativeEndianDbusFlag(t *testing.T) {
	// NativeEndian must resolve to a concrete flag without panicking,
	// regardless of which architecture the tests run on.
	flag := NativeEndian.dbusFlag()
	if flag != 'l' && flag != 'B' {
		t.Errorf("NativeEndian.dbusFlag() = %q, want 'l' or 'B'", flag)
	}
}
