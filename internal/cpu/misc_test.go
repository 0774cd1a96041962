package cpu

import "testing"

func TestInstruction_DAA(t *testing.T) {
	tests := []struct {
		name  string
		a     uint8
		op    []uint8 // ADD A, d8 or SUB d8
		want  uint8
		flags Flags
	}{
		{"add nibble overflow", 0x09, []uint8{0xC6, 0x01}, 0x10, Flags{}},
		{"add no correction", 0x45, []uint8{0xC6, 0x38}, 0x83, Flags{}},
		{"add half carry", 0x08, []uint8{0xC6, 0x08}, 0x16, Flags{}},
		{"add carry", 0x90, []uint8{0xC6, 0x90}, 0x80, Flags{Carry: true}},
		{"add to zero", 0x50, []uint8{0xC6, 0x50}, 0x00, Flags{Zero: true, Carry: true}},
		{"sub half borrow", 0x10, []uint8{0xD6, 0x01}, 0x09, Flags{Subtract: true}},
		{"sub borrow", 0x00, []uint8{0xD6, 0x01}, 0x99, Flags{Subtract: true, Carry: true}},
		{"sub to zero", 0x42, []uint8{0xD6, 0x42}, 0x00, Flags{Zero: true, Subtract: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(t, append(tt.op, 0x27)...)
			c.A = tt.a
			step(t, c)
			step(t, c)
			if c.A != tt.want {
				t.Errorf("expected A to be 0x%02X, got 0x%02X", tt.want, c.A)
			}
			expectFlags(t, c, tt.flags)
		})
	}

	t.Run("unadjusted accumulator", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x27)
		c.A = 0x0A
		step(t, c)
		if c.A != 0x10 {
			t.Errorf("expected A to be 0x10, got 0x%02X", c.A)
		}
	})
}

func TestInstruction_Flags(t *testing.T) {
	t.Run("CPL", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x2F)
		c.A = 0x35
		c.F = Flags{Zero: true, Carry: true}
		step(t, c)
		if c.A != 0xCA {
			t.Errorf("expected A to be 0xCA, got 0x%02X", c.A)
		}
		expectFlags(t, c, Flags{Zero: true, Subtract: true, HalfCarry: true, Carry: true})
	})
	t.Run("SCF", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x37)
		c.F = Flags{Subtract: true, HalfCarry: true}
		step(t, c)
		expectFlags(t, c, Flags{Carry: true})
	})
	t.Run("CCF", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x3F, 0x3F)
		c.F = Flags{Zero: true, Subtract: true, Carry: true}
		step(t, c)
		expectFlags(t, c, Flags{Zero: true})
		step(t, c)
		expectFlags(t, c, Flags{Zero: true, Carry: true})
	})
}

func TestInstruction_Control(t *testing.T) {
	t.Run("NOP", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x00)
		before := c.Snapshot()
		step(t, c)
		after := c.Snapshot()
		if after.PC != 0x0101 {
			t.Errorf("expected PC to be 0x0101, got 0x%04X", after.PC)
		}
		after.PC = before.PC
		if after.Hash() != before.Hash() {
			t.Errorf("expected no other change, got %s", after)
		}
	})
	t.Run("HALT", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x76)
		c.A, c.F = 0x12, Flags{Carry: true}
		step(t, c)
		if !c.Halted() {
			t.Errorf("expected CPU to be halted, got running")
		}
		if c.A != 0x12 || c.F != (Flags{Carry: true}) {
			t.Errorf("expected registers to be untouched, got %s", c.Snapshot())
		}
	})
	t.Run("STOP", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x10, 0x00)
		step(t, c)
		if !c.LowPower() {
			t.Errorf("expected CPU to be in low power mode")
		}
		if c.PC != 0x0102 {
			t.Errorf("expected PC to be 0x0102, got 0x%04X", c.PC)
		}
	})
	t.Run("DI then EI", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xF3, 0xFB)
		c.interruptsEnabled = true
		step(t, c)
		if c.InterruptsEnabled() {
			t.Errorf("expected interrupts to be disabled")
		}
		step(t, c)
		if !c.InterruptsEnabled() {
			t.Errorf("expected interrupts to be enabled")
		}
	})
	t.Run("illegal opcode locks the CPU", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xDD, 0x3C)
		c.interruptsEnabled = true
		step(t, c)
		step(t, c)
		if !c.Halted() || c.InterruptsEnabled() {
			t.Errorf("expected a halted CPU with interrupts disabled")
		}
		if c.A != 0 {
			t.Errorf("expected INC A not to run, got A=0x%02X", c.A)
		}
	})
	t.Run("unprefixed PREFIX is a no-op", func(t *testing.T) {
		c, _ := newTestCPU(t)
		c.A = 0x42
		if err := c.run(Decode(prefixByte, false)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.A != 0x42 || c.PC != 0x0101 {
			t.Errorf("expected only PC to change, got %s", c.Snapshot())
		}
	})
}

func TestFlags(t *testing.T) {
	f := Flags{Zero: true, HalfCarry: true}
	if f.Byte() != 0xA0 {
		t.Errorf("expected 0xA0, got 0x%02X", f.Byte())
	}
	if f.String() != "Z-H-" {
		t.Errorf("expected Z-H-, got %s", f.String())
	}
	f.SetByte(0x5F)
	if f != (Flags{Subtract: true, Carry: true}) {
		t.Errorf("expected -N-C, got %s", f)
	}
	for _, tt := range []struct {
		cond FlagCondition
		want bool
	}{{Always, true}, {Zero, false}, {NotZero, true}, {Carry, true}, {NotCarry, false}} {
		if tt.cond.Holds(f) != tt.want {
			t.Errorf("expected %s to be %t", tt.cond, tt.want)
		}
	}
}
