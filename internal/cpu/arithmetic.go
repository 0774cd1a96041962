package cpu

// add n (and the carry flag, for ADC) to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, carry bool) {
	var carryIn uint8
	if carry {
		carryIn = 1
	}
	a := c.A
	sum := uint16(a) + uint16(n) + uint16(carryIn)
	c.A = uint8(sum)
	c.setFlags(c.A == 0, false, a&0xF+n&0xF+carryIn > 0xF, sum > 0xFF)
}

// sub n (and the carry flag, for SBC) from the A Register, returning
// the result without storing it.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, carry bool) uint8 {
	var carryIn int16
	if carry {
		carryIn = 1
	}
	a := c.A
	diff := int16(a) - int16(n) - carryIn
	result := uint8(diff)
	c.setFlags(result == 0, true, int16(a&0xF)-int16(n&0xF)-carryIn < 0, diff < 0)
	return result
}

// increment the given value and set the flags accordingly.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	incremented := value + 0x01
	c.setFlags(incremented == 0, false, value&0xF == 0xF, c.F.Carry)
	return incremented
}

// decrement the given value and set the flags accordingly.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	decremented := value - 0x01
	c.setFlags(decremented == 0, true, value&0xF == 0x0, c.F.Carry)
	return decremented
}

// addHL adds n to the HL RegisterPair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)
	c.HL.SetUint16(uint16(sum))
	c.setFlags(c.F.Zero, false, hl&0xFFF+n&0xFFF > 0xFFF, sum > 0xFFFF)
}

// addSPSigned returns SP plus the signed byte e. It is shared by
// ADD SP, r8 and LD HL, SP+r8.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	sp := c.SP
	result := sp + uint16(int16(int8(e)))
	c.setFlags(false, false, sp&0xF+uint16(e)&0xF > 0xF, sp&0xFF+uint16(e) > 0xFF)
	return result
}
