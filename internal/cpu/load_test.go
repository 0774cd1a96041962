package cpu

import (
	"testing"

	"github.com/thelolagemann/sm83/internal/types"
)

func TestInstruction_Load(t *testing.T) {
	t.Run("LD B, C", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x41)
		c.C = 0x42
		step(t, c)
		if c.B != 0x42 {
			t.Errorf("expected B to be 0x42, got 0x%02X", c.B)
		}
	})
	t.Run("LD (HL), d8", func(t *testing.T) {
		c, m := newTestCPU(t, 0x36, 0x99)
		c.HL.SetUint16(0xC123)
		step(t, c)
		if m.Read(0xC123) != 0x99 {
			t.Errorf("expected (HL) to be 0x99, got 0x%02X", m.Read(0xC123))
		}
		if c.PC != 0x0102 {
			t.Errorf("expected PC to be 0x0102, got 0x%04X", c.PC)
		}
	})
	t.Run("LD A, (a16)", func(t *testing.T) {
		c, m := newTestCPU(t, 0xFA, 0x00, 0xC2)
		m.Write(0xC200, 0x5A)
		step(t, c)
		if c.A != 0x5A {
			t.Errorf("expected A to be 0x5A, got 0x%02X", c.A)
		}
	})
	t.Run("LD (DE), A", func(t *testing.T) {
		c, m := newTestCPU(t, 0x12)
		c.A = 0x77
		c.DE.SetUint16(0xC300)
		step(t, c)
		if m.Read(0xC300) != 0x77 {
			t.Errorf("expected (DE) to be 0x77, got 0x%02X", m.Read(0xC300))
		}
	})
	t.Run("LD (a16), SP", func(t *testing.T) {
		c, m := newTestCPU(t, 0x08, 0x00, 0xC1)
		c.SP = 0xBEEF
		step(t, c)
		if m.Read(0xC100) != 0xEF || m.Read(0xC101) != 0xBE {
			t.Errorf("expected EF BE, got %02X %02X", m.Read(0xC100), m.Read(0xC101))
		}
		if c.PC != 0x0103 {
			t.Errorf("expected PC to be 0x0103, got 0x%04X", c.PC)
		}
	})
	t.Run("LD SP, HL", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xF9)
		c.HL.SetUint16(0xDEAD)
		step(t, c)
		if c.SP != 0xDEAD {
			t.Errorf("expected SP to be 0xDEAD, got 0x%04X", c.SP)
		}
	})
	t.Run("LD HL, SP+r8", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xF8, 0xFF)
		c.SP = 0x0001
		c.F.Zero = true
		step(t, c)
		if c.HL.Uint16() != 0x0000 {
			t.Errorf("expected HL to be 0x0000, got 0x%04X", c.HL.Uint16())
		}
		if c.SP != 0x0001 {
			t.Errorf("expected SP to be untouched, got 0x%04X", c.SP)
		}
		expectFlags(t, c, Flags{HalfCarry: true, Carry: true})
	})
	t.Run("loads leave flags", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x3E, 0x00)
		c.F = Flags{Subtract: true, Carry: true}
		step(t, c)
		expectFlags(t, c, Flags{Subtract: true, Carry: true})
	})
}

func TestInstruction_LoadIncDec(t *testing.T) {
	t.Run("LD (HL+), A", func(t *testing.T) {
		c, m := newTestCPU(t, 0x22)
		c.A = 0x42
		c.HL.SetUint16(0xC000)
		step(t, c)
		if m.Read(0xC000) != 0x42 {
			t.Errorf("expected (0xC000) to be 0x42, got 0x%02X", m.Read(0xC000))
		}
		if c.HL.Uint16() != 0xC001 {
			t.Errorf("expected HL to be 0xC001, got 0x%04X", c.HL.Uint16())
		}
	})
	t.Run("LD A, (HL-)", func(t *testing.T) {
		c, m := newTestCPU(t, 0x3A)
		c.HL.SetUint16(0xC000)
		m.Write(0xC000, 0x99)
		step(t, c)
		if c.A != 0x99 {
			t.Errorf("expected A to be 0x99, got 0x%02X", c.A)
		}
		if c.HL.Uint16() != 0xBFFF {
			t.Errorf("expected HL to be 0xBFFF, got 0x%04X", c.HL.Uint16())
		}
	})
}

func TestInstruction_LoadHigh(t *testing.T) {
	t.Run("LDH (a8), A", func(t *testing.T) {
		c, m := newTestCPU(t, 0xE0, 0x80)
		c.A = 0x12
		step(t, c)
		if m.Read(0xFF80) != 0x12 {
			t.Errorf("expected (0xFF80) to be 0x12, got 0x%02X", m.Read(0xFF80))
		}
		if m.Read(0x0080) != 0x00 {
			t.Errorf("expected the low page to be untouched")
		}
	})
	t.Run("LDH A, (a8)", func(t *testing.T) {
		c, m := newTestCPU(t, 0xF0, 0x44)
		m.Write(0xFF44, 0x90)
		step(t, c)
		if c.A != 0x90 {
			t.Errorf("expected A to be 0x90, got 0x%02X", c.A)
		}
	})
	t.Run("LD (C), A", func(t *testing.T) {
		c, m := newTestCPU(t, 0xE2)
		c.A, c.C = 0x34, 0x10
		step(t, c)
		if m.Read(0xFF10) != 0x34 {
			t.Errorf("expected (0xFF10) to be 0x34, got 0x%02X", m.Read(0xFF10))
		}
		if c.PC != 0x0101 {
			t.Errorf("expected PC to be 0x0101, got 0x%04X", c.PC)
		}
	})
	t.Run("LD A, (C)", func(t *testing.T) {
		c, m := newTestCPU(t, 0xF2)
		c.C = 0xFF
		m.Write(0xFFFF, 0x1F)
		step(t, c)
		if c.A != 0x1F {
			t.Errorf("expected A to be 0x1F, got 0x%02X", c.A)
		}
	})
}

func TestInstruction_LoadHighPage(t *testing.T) {
	// every offset lands in 0xFF00 - 0xFFFF, so the out of page guard
	// never rejects a transfer
	for n := 0; n <= 0xFF; n++ {
		c, m := newTestCPU(t, 0xE0, uint8(n), 0xE2)
		c.A, c.C = 0x5A, uint8(n)

		for _, op := range []Operand{MemA8, MemC} {
			addr, ok := c.address(op)
			if !ok || !types.IsHighPage(addr) || addr != 0xFF00+uint16(n) {
				t.Fatalf("expected %s to resolve to 0x%04X, got 0x%04X", op, 0xFF00+n, addr)
			}
		}

		step(t, c)
		if m.Read(0xFF00+uint16(n)) != 0x5A {
			t.Fatalf("expected LDH (0x%02X), A to write 0xFF%02X", n, n)
		}
		m.Write(0xFF00+uint16(n), 0)
		step(t, c)
		if m.Read(0xFF00+uint16(n)) != 0x5A {
			t.Fatalf("expected LD (C), A with C=0x%02X to write 0xFF%02X", n, n)
		}
	}
}

func TestInstruction_Stack(t *testing.T) {
	t.Run("PUSH BC", func(t *testing.T) {
		c, m := newTestCPU(t, 0xC5)
		c.BC.SetUint16(0x1234)
		step(t, c)
		if c.SP != 0xFFFC {
			t.Errorf("expected SP to be 0xFFFC, got 0x%04X", c.SP)
		}
		if m.ReadWord(0xFFFC) != 0x1234 {
			t.Errorf("expected 0x1234 on the stack, got 0x%04X", m.ReadWord(0xFFFC))
		}
	})
	t.Run("POP AF masks the low nibble", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xC5, 0xF1)
		c.BC.SetUint16(0x12FF)
		step(t, c)
		step(t, c)
		if c.AF() != 0x12F0 {
			t.Errorf("expected AF to be 0x12F0, got 0x%04X", c.AF())
		}
		if c.SP != 0xFFFE {
			t.Errorf("expected SP to be 0xFFFE, got 0x%04X", c.SP)
		}
	})
}

func TestRegisters_AF(t *testing.T) {
	var r Registers
	r.SetAF(0xABCD)
	if r.AF() != 0xABC0 {
		t.Errorf("expected AF to be 0xABC0, got 0x%04X", r.AF())
	}
	before := r.AF()
	r.SetAF(r.AF())
	if r.AF() != before {
		t.Errorf("expected SetAF(AF()) to be idempotent, got 0x%04X", r.AF())
	}
	r.F.Carry = false
	if r.F.Byte()&0x0F != 0 {
		t.Errorf("expected the low nibble to read 0, got 0x%02X", r.F.Byte())
	}
}
