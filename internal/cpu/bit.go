package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// executeBitOp performs BIT, RES, SET and SWAP on an 8-bit register
// or the byte addressed by HL.
func (c *CPU) executeBitOp(i Instruction) {
	if !i.Dst.is8Bit() || i.Src != None {
		panic(c.mismatch("%s expects a register or (HL), got %q", i.Op, i.Dst))
	}
	if i.Bit > 7 {
		panic(c.mismatch("bit index %d out of range", i.Bit))
	}

	value := c.read8(i.Dst)
	switch i.Op {
	case BIT:
		c.testBit(value, i.Bit)
	case RES:
		c.write8(i.Dst, bits.Reset(value, i.Bit))
	case SET:
		c.write8(i.Dst, bits.Set(value, i.Bit))
	case SWAP:
		c.write8(i.Dst, c.swap(value))
	default:
		panic(c.mismatch("%s is not a bit operation", i.Op))
	}
}

// testBit tests the bit at the given index in the given value.
//
//	BIT b, r
//	b = 0 - 7, r = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit b of register r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, index uint8) {
	c.setFlags(!bits.Test(value, index), false, true, c.F.Carry)
}

// swap the upper and lower nibbles of n.
//
//	SWAP n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	result := n<<4 | n>>4
	c.setFlags(result == 0, false, false, false)
	return result
}
