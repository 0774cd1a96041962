package cpu

// shiftLeftArithmetic shifts n left into the Carry flag. LSB of n set to 0.
//
//	SLA n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	result := n << 1
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// shiftRightArithmetic shifts n right into the Carry flag. MSB doesn't change.
//
//	SRA n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	result := n>>1 | n&0x80
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftRightLogical shifts n right into the Carry flag. MSB set to 0.
//
//	SRL n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result := n >> 1
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}
