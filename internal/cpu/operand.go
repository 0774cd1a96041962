package cpu

import "github.com/thelolagemann/sm83/internal/types"

// immediate8 returns the byte following the opcode.
func (c *CPU) immediate8() uint8 {
	return c.mem.Read(c.PC + 1)
}

// immediate16 returns the little endian word following the opcode.
func (c *CPU) immediate16() uint16 {
	return c.mem.ReadWord(c.PC + 1)
}

// register returns a pointer to an 8-bit register operand, or nil if
// the operand is not an 8-bit register.
func (c *CPU) register(op Operand) *types.Register {
	switch op {
	case RegA:
		return &c.A
	case RegB:
		return &c.B
	case RegC:
		return &c.C
	case RegD:
		return &c.D
	case RegE:
		return &c.E
	case RegH:
		return &c.H
	case RegL:
		return &c.L
	}
	return nil
}

// address resolves a memory operand to the address it refers to.
func (c *CPU) address(op Operand) (uint16, bool) {
	switch op {
	case MemHL:
		return c.HL.Uint16(), true
	case MemBC:
		return c.BC.Uint16(), true
	case MemDE:
		return c.DE.Uint16(), true
	case MemC:
		return types.HighPage + uint16(c.C), true
	case MemA8:
		return types.HighPage + uint16(c.immediate8()), true
	case MemA16:
		return c.immediate16(), true
	}
	return 0, false
}

// read8 returns the 8-bit value of the operand.
func (c *CPU) read8(op Operand) uint8 {
	if reg := c.register(op); reg != nil {
		return *reg
	}
	if op == D8 {
		return c.immediate8()
	}
	if addr, ok := c.address(op); ok {
		return c.mem.Read(addr)
	}
	panic(c.mismatch("%q is not an 8-bit source", op))
}

// write8 stores value in the operand.
func (c *CPU) write8(op Operand, value uint8) {
	if reg := c.register(op); reg != nil {
		*reg = value
		return
	}
	if addr, ok := c.address(op); ok {
		c.mem.Write(addr, value)
		return
	}
	panic(c.mismatch("%q is not an 8-bit destination", op))
}

// read16 returns the 16-bit value of the operand.
func (c *CPU) read16(op Operand) uint16 {
	switch op {
	case RegAF:
		return c.AF()
	case RegBC:
		return c.BC.Uint16()
	case RegDE:
		return c.DE.Uint16()
	case RegHL:
		return c.HL.Uint16()
	case RegSP:
		return c.SP
	case D16:
		return c.immediate16()
	}
	panic(c.mismatch("%q is not a 16-bit source", op))
}

// write16 stores value in the operand.
func (c *CPU) write16(op Operand, value uint16) {
	switch op {
	case RegAF:
		c.SetAF(value)
	case RegBC:
		c.BC.SetUint16(value)
	case RegDE:
		c.DE.SetUint16(value)
	case RegHL:
		c.HL.SetUint16(value)
	case RegSP:
		c.SP = value
	case MemA16:
		c.mem.WriteWord(c.immediate16(), value)
	default:
		panic(c.mismatch("%q is not a 16-bit destination", op))
	}
}

// push pushes a 16 bit value onto the stack.
func (c *CPU) push(value uint16) {
	c.SP -= 2
	c.mem.WriteWord(c.SP, value)
}

// pop pops a 16 bit value off the stack.
func (c *CPU) pop() uint16 {
	value := c.mem.ReadWord(c.SP)
	c.SP += 2
	return value
}
