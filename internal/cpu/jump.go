package cpu

// executeControl performs JP, JR, CALL, RET, RETI, RST, PUSH and POP.
// Every instruction that writes PC marks the step as branched, so the
// driver does not advance past it.
func (c *CPU) executeControl(i Instruction) {
	switch i.Op {
	case JP:
		c.jumpAbsolute(i)
	case JR:
		if i.Src != R8 {
			panic(c.mismatch("JR expects r8, got %q", i.Src))
		}
		if i.Cond.Holds(c.F) {
			c.jumpRelative(c.immediate8(), uint16(i.Length()))
		}
	case CALL:
		if i.Src != D16 {
			panic(c.mismatch("CALL expects d16, got %q", i.Src))
		}
		if i.Cond.Holds(c.F) {
			c.call(c.immediate16(), c.PC+uint16(i.Length()))
		}
	case RET:
		if i.Cond.Holds(c.F) {
			c.ret()
		}
	case RETI:
		c.ret()
		c.interruptsEnabled = true
	case RST:
		if i.Vector&^0x38 != 0 {
			panic(c.mismatch("RST vector %02X out of range", i.Vector))
		}
		c.call(i.Vector, c.PC+1)
	case PUSH:
		if !i.Src.isPair() || i.Src == RegSP {
			panic(c.mismatch("PUSH expects AF, BC, DE or HL, got %q", i.Src))
		}
		c.push(c.read16(i.Src))
	case POP:
		if !i.Dst.isPair() || i.Dst == RegSP {
			panic(c.mismatch("POP expects AF, BC, DE or HL, got %q", i.Dst))
		}
		// AF goes through SetAF, which drops the low nibble of F
		c.write16(i.Dst, c.pop())
	default:
		panic(c.mismatch("%s is not a control operation", i.Op))
	}
}

// jump sets PC to address and marks the step as branched.
func (c *CPU) jump(address uint16) {
	c.PC = address
	c.branched = true
}

// jumpAbsolute jumps to an immediate address or to HL.
//
//	JP cc, nn
//	JP HL
func (c *CPU) jumpAbsolute(i Instruction) {
	switch i.Src {
	case D16:
		if i.Cond.Holds(c.F) {
			c.jump(c.immediate16())
		}
	case RegHL:
		if i.Cond != Always {
			panic(c.mismatch("JP HL cannot be conditional"))
		}
		c.jump(c.HL.Uint16())
	default:
		panic(c.mismatch("JP expects d16 or HL, got %q", i.Src))
	}
}

// jumpRelative adds the signed offset e to the address of the next
// instruction.
//
//	JR cc, e
func (c *CPU) jumpRelative(e uint8, length uint16) {
	c.jump(c.PC + length + uint16(int16(int8(e))))
}

// call pushes the return address onto the stack and jumps to address.
//
//	CALL cc, nn
//	RST n
func (c *CPU) call(address, returnAddress uint16) {
	c.push(returnAddress)
	c.jump(address)
}

// ret pops the return address off the stack and jumps to it.
//
//	RET cc
//	RETI
func (c *CPU) ret() {
	c.jump(c.pop())
}
