package cpu

// executeMisc performs the instructions that touch only the flags, the
// accumulator or the mode bits.
func (c *CPU) executeMisc(i Instruction) {
	if i.Dst != None || i.Src != None {
		panic(c.mismatch("%s takes no operands", i.Op))
	}
	switch i.Op {
	case NOP:
	case PREFIX:
		// only reachable by decoding 0xCB without the prefix flag
	case CCF:
		c.setFlags(c.F.Zero, false, false, !c.F.Carry)
	case SCF:
		c.setFlags(c.F.Zero, false, false, true)
	case CPL:
		c.A = ^c.A
		c.setFlags(c.F.Zero, true, true, c.F.Carry)
	case DAA:
		c.decimalAdjust()
	case DI:
		c.interruptsEnabled = false
	case EI:
		c.interruptsEnabled = true
	case HALT:
		c.halted = true
	case STOP:
		c.lowPower = true
	case ILLEGAL:
		// the CPU locks up until reset
		c.Log.Debugf("cpu: illegal opcode %02X at %04X", i.Opcode, c.PC)
		c.halted = true
		c.interruptsEnabled = false
	default:
		panic(c.mismatch("%s is not a miscellaneous operation", i.Op))
	}
}

// decimalAdjust adjusts the A Register so that the correct
// representation of Binary Coded Decimal is obtained.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	var adjust uint8
	carry := c.F.Carry
	if c.F.HalfCarry || (!c.F.Subtract && c.A&0xF > 0x9) {
		adjust |= 0x06
	}
	if c.F.Carry || (!c.F.Subtract && c.A > 0x99) {
		adjust |= 0x60
		carry = true
	}
	if c.F.Subtract {
		c.A -= adjust
	} else {
		c.A += adjust
	}
	c.setFlags(c.A == 0, c.F.Subtract, false, carry)
}
