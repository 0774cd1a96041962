package cpu

// executeALU performs ADD, ADC, SUB, SBC, AND, XOR, OR, CP, INC, DEC
// and the 16-bit additions ADD HL, rr and ADD SP, r8.
func (c *CPU) executeALU(i Instruction) {
	switch i.Op {
	case ADD, ADC, SUB, SBC, AND, XOR, OR, CP:
		if i.Dst != RegA {
			panic(c.mismatch("%s must target A, got %q", i.Op, i.Dst))
		}
		n := c.aluOperand(i.Src)
		switch i.Op {
		case ADD:
			c.add(n, false)
		case ADC:
			c.add(n, c.F.Carry)
		case SUB:
			c.A = c.sub(n, false)
		case SBC:
			c.A = c.sub(n, c.F.Carry)
		case AND:
			c.and(n)
		case XOR:
			c.xor(n)
		case OR:
			c.or(n)
		case CP:
			c.compare(n)
		}
	case INC, DEC:
		if i.Src != None {
			panic(c.mismatch("%s takes no source, got %q", i.Op, i.Src))
		}
		switch {
		case i.Dst.is8Bit():
			if i.Op == INC {
				c.write8(i.Dst, c.increment(c.read8(i.Dst)))
			} else {
				c.write8(i.Dst, c.decrement(c.read8(i.Dst)))
			}
		case i.Dst.isPair() && i.Dst != RegAF:
			if i.Op == INC {
				c.write16(i.Dst, c.read16(i.Dst)+1)
			} else {
				c.write16(i.Dst, c.read16(i.Dst)-1)
			}
		default:
			panic(c.mismatch("%s cannot operate on %q", i.Op, i.Dst))
		}
	case ADDHL:
		if i.Dst != RegHL || !i.Src.isPair() || i.Src == RegAF {
			panic(c.mismatch("ADD HL expects a 16-bit register, got %q", i.Src))
		}
		c.addHL(c.read16(i.Src))
	case ADDSP:
		if i.Dst != RegSP || i.Src != R8 {
			panic(c.mismatch("ADD SP expects r8, got %q", i.Src))
		}
		c.SP = c.addSPSigned(c.immediate8())
	default:
		panic(c.mismatch("%s is not an ALU operation", i.Op))
	}
}

// aluOperand returns the 8-bit operand of a binary ALU operation.
func (c *CPU) aluOperand(src Operand) uint8 {
	if !src.is8Bit() && src != D8 {
		panic(c.mismatch("ALU operand must be 8-bit, got %q", src))
	}
	return c.read8(src)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register. This is a subtraction whose
// result is thrown away.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero. (Set if A = n.)
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set for no borrow. (Set if A < n.)
func (c *CPU) compare(n uint8) {
	c.sub(n, false)
}
