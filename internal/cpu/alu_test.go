package cpu

import "testing"

func expectFlags(t *testing.T, c *CPU, want Flags) {
	t.Helper()
	if c.F != want {
		t.Errorf("expected flags %s, got %s", want, c.F)
	}
}

func TestInstruction_ALU(t *testing.T) {
	t.Run("ADD A, A half carry", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x87)
		c.A = 0x0F
		step(t, c)
		if c.A != 0x1E {
			t.Errorf("expected A to be 0x1E, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{HalfCarry: true})
	})
	t.Run("ADD A, A carry wraps to zero", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x87)
		c.A = 0x80
		step(t, c)
		if c.A != 0x00 {
			t.Errorf("expected A to be 0x00, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{Zero: true, Carry: true})
	})
	t.Run("ADC A, d8 with carry in", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xCE, 0x01)
		c.A = 0x0E
		c.F.Carry = true
		step(t, c)
		if c.A != 0x10 {
			t.Errorf("expected A to be 0x10, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{HalfCarry: true})
	})
	t.Run("ADD A, (HL)", func(t *testing.T) {
		c, m := newTestCPU(t, 0x86)
		c.HL.SetUint16(0xC000)
		m.Write(0xC000, 0xFF)
		c.A = 0x01
		step(t, c)
		if c.A != 0x00 {
			t.Errorf("expected A to be 0x00, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{Zero: true, HalfCarry: true, Carry: true})
	})
	t.Run("SUB d8 half borrow", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xD6, 0x01)
		c.A = 0x10
		step(t, c)
		if c.A != 0x0F {
			t.Errorf("expected A to be 0x0F, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{Subtract: true, HalfCarry: true})
	})
	t.Run("SUB d8 borrow", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xD6, 0x02)
		c.A = 0x01
		step(t, c)
		if c.A != 0xFF {
			t.Errorf("expected A to be 0xFF, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{Subtract: true, HalfCarry: true, Carry: true})
	})
	t.Run("SBC A, d8 with carry in", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xDE, 0x0F)
		c.A = 0x10
		c.F.Carry = true
		step(t, c)
		if c.A != 0x00 {
			t.Errorf("expected A to be 0x00, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{Zero: true, Subtract: true, HalfCarry: true})
	})
	t.Run("CP d8 leaves A", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xFE, 0x3C)
		c.A = 0x3C
		step(t, c)
		if c.A != 0x3C {
			t.Errorf("expected A to be 0x3C, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{Zero: true, Subtract: true})
	})
	t.Run("AND B", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xA0)
		c.A, c.B = 0xF0, 0x0F
		c.F.Carry = true
		step(t, c)
		if c.A != 0x00 {
			t.Errorf("expected A to be 0x00, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{Zero: true, HalfCarry: true})
	})
	t.Run("XOR A", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xAF)
		c.A = 0x5A
		c.F = Flags{Subtract: true, HalfCarry: true, Carry: true}
		step(t, c)
		if c.A != 0x00 {
			t.Errorf("expected A to be 0x00, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{Zero: true})
	})
	t.Run("OR C", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xB1)
		c.A, c.C = 0x50, 0x05
		step(t, c)
		if c.A != 0x55 {
			t.Errorf("expected A to be 0x55, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{})
	})
}

func TestInstruction_IncDec(t *testing.T) {
	t.Run("INC B keeps carry", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x04)
		c.B = 0xFF
		c.F.Carry = true
		step(t, c)
		if c.B != 0x00 {
			t.Errorf("expected B to be 0x00, got 0x%02X", c.B)
		}
		expectFlags(t, c, Flags{Zero: true, HalfCarry: true, Carry: true})
	})
	t.Run("DEC B half borrow", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x05)
		c.B = 0x10
		step(t, c)
		if c.B != 0x0F {
			t.Errorf("expected B to be 0x0F, got 0x%02X", c.B)
		}
		expectFlags(t, c, Flags{Subtract: true, HalfCarry: true})
	})
	t.Run("INC (HL)", func(t *testing.T) {
		c, m := newTestCPU(t, 0x34)
		c.HL.SetUint16(0xC010)
		m.Write(0xC010, 0x41)
		step(t, c)
		if m.Read(0xC010) != 0x42 {
			t.Errorf("expected (HL) to be 0x42, got 0x%02X", m.Read(0xC010))
		}
	})
	t.Run("DEC BC wraps without flags", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x0B)
		c.F = Flags{Zero: true}
		step(t, c)
		if c.BC.Uint16() != 0xFFFF {
			t.Errorf("expected BC to be 0xFFFF, got 0x%04X", c.BC.Uint16())
		}
		expectFlags(t, c, Flags{Zero: true})
	})
	t.Run("INC SP", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x33)
		c.SP = 0xFFFF
		step(t, c)
		if c.SP != 0x0000 {
			t.Errorf("expected SP to be 0x0000, got 0x%04X", c.SP)
		}
	})
}

func TestInstruction_Add16(t *testing.T) {
	t.Run("ADD HL, BC half carry", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x09)
		c.HL.SetUint16(0x0FFF)
		c.BC.SetUint16(0x0001)
		step(t, c)
		if c.HL.Uint16() != 0x1000 {
			t.Errorf("expected HL to be 0x1000, got 0x%04X", c.HL.Uint16())
		}
		expectFlags(t, c, Flags{HalfCarry: true})
	})
	t.Run("ADD HL, DE keeps zero", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x19)
		c.HL.SetUint16(0xFFFF)
		c.DE.SetUint16(0x0001)
		c.F = Flags{Zero: true, Subtract: true}
		step(t, c)
		if c.HL.Uint16() != 0x0000 {
			t.Errorf("expected HL to be 0x0000, got 0x%04X", c.HL.Uint16())
		}
		expectFlags(t, c, Flags{Zero: true, HalfCarry: true, Carry: true})
	})
	t.Run("ADD SP, r8", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xE8, 0x08)
		c.SP = 0xFFF8
		c.F.Zero = true
		step(t, c)
		if c.SP != 0x0000 {
			t.Errorf("expected SP to be 0x0000, got 0x%04X", c.SP)
		}
		expectFlags(t, c, Flags{HalfCarry: true, Carry: true})
	})
	t.Run("ADD SP, negative r8", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xE8, 0xFE)
		c.SP = 0xD000
		step(t, c)
		if c.SP != 0xCFFE {
			t.Errorf("expected SP to be 0xCFFE, got 0x%04X", c.SP)
		}
		expectFlags(t, c, Flags{})
	})
}
