package types

import (
	"errors"
	"testing"
)

func TestState(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := NewState()
		s.Write8(0x42)
		s.Write16(0xBEEF)
		s.WriteBool(true)
		s.Write64(0x0102030405060708)
		s.WriteData([]byte{1, 2, 3})

		r := StateFromBytes(s.Bytes())
		if v := r.Read8(); v != 0x42 {
			t.Errorf("expected 0x42, got 0x%02X", v)
		}
		if v := r.Read16(); v != 0xBEEF {
			t.Errorf("expected 0xBEEF, got 0x%04X", v)
		}
		if !r.ReadBool() {
			t.Errorf("expected true, got false")
		}
		if v := r.Read64(); v != 0x0102030405060708 {
			t.Errorf("expected 0x0102030405060708, got 0x%016X", v)
		}
		data := make([]byte, 3)
		r.ReadData(data)
		if data[0] != 1 || data[1] != 2 || data[2] != 3 {
			t.Errorf("expected [1 2 3], got %v", data)
		}
		if r.Err() != nil {
			t.Errorf("expected no error, got %v", r.Err())
		}
	})
	t.Run("short read", func(t *testing.T) {
		r := StateFromBytes([]byte{0x01})
		if v := r.Read16(); v != 0 {
			t.Errorf("expected 0 on short read, got 0x%04X", v)
		}
		if !errors.Is(r.Err(), ErrShortState) {
			t.Errorf("expected ErrShortState, got %v", r.Err())
		}
		// the error is sticky, even for reads that would fit
		if v := r.Read8(); v != 0 {
			t.Errorf("expected 0 after error, got 0x%02X", v)
		}
	})
}
