package cpu

// executeBitShift performs the rotate and shift family, both the
// prefixed forms operating on any register or (HL) and the
// accumulator only forms RLCA, RRCA, RLA and RRA.
func (c *CPU) executeBitShift(i Instruction) {
	switch i.Op {
	case RLCA, RRCA, RLA, RRA:
		if i.Dst != None || i.Src != None {
			panic(c.mismatch("%s takes no operands", i.Op))
		}
		zero := c.F.Zero
		switch i.Op {
		case RLCA:
			c.A = c.rotateLeftCarry(c.A)
		case RRCA:
			c.A = c.rotateRightCarry(c.A)
		case RLA:
			c.A = c.rotateLeft(c.A)
		case RRA:
			c.A = c.rotateRight(c.A)
		}
		// the accumulator forms never recompute Z
		c.F.Zero = zero
		return
	}

	if !i.Dst.is8Bit() || i.Src != None {
		panic(c.mismatch("%s expects a register or (HL), got %q", i.Op, i.Dst))
	}
	value := c.read8(i.Dst)
	switch i.Op {
	case RLC:
		value = c.rotateLeftCarry(value)
	case RRC:
		value = c.rotateRightCarry(value)
	case RL:
		value = c.rotateLeft(value)
	case RR:
		value = c.rotateRight(value)
	case SLA:
		value = c.shiftLeftArithmetic(value)
	case SRA:
		value = c.shiftRightArithmetic(value)
	case SRL:
		value = c.shiftRightLogical(value)
	default:
		panic(c.mismatch("%s is not a shift operation", i.Op))
	}
	c.write8(i.Dst, value)
}

// rotateLeftCarry rotates n left, old bit 7 to the Carry flag and
// to bit 0.
//
//	RLC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry(n uint8) uint8 {
	result := n<<1 | n>>7
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRightCarry rotates n right, old bit 0 to the Carry flag and
// to bit 7.
//
//	RRC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCarry(n uint8) uint8 {
	result := n>>1 | n<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// rotateLeft rotates n left through the Carry flag.
//
//	RL n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n uint8) uint8 {
	result := n << 1
	if c.F.Carry {
		result |= 0x01
	}
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRight rotates n right through the Carry flag.
//
//	RR n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRight(n uint8) uint8 {
	result := n >> 1
	if c.F.Carry {
		result |= 0x80
	}
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}
