package cpu

import "github.com/thelolagemann/sm83/internal/types"

// Registers contains the 8-bit registers, the flags, the stack pointer
// and program counter, as well as the 16-bit register pairs BC, DE and
// HL. AF is exposed through AF and SetAF, as its low byte is the packed
// flags rather than a plain register.
type Registers struct {
	A types.Register
	B types.Register
	C types.Register
	D types.Register
	E types.Register
	H types.Register
	L types.Register
	F Flags

	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16

	BC *types.RegisterPair
	DE *types.RegisterPair
	HL *types.RegisterPair
}

// AF returns the accumulator and packed flags as a 16-bit value.
func (r *Registers) AF() uint16 {
	return uint16(r.A)<<8 | uint16(r.F.Byte())
}

// SetAF sets the accumulator and flags from a 16-bit value. Bits 3 - 0
// of the low byte are discarded.
func (r *Registers) SetAF(value uint16) {
	r.A = uint8(value >> 8)
	r.F.SetByte(uint8(value))
}

// linkPairs points the register pairs at the 8-bit registers.
func (r *Registers) linkPairs() {
	r.BC = &types.RegisterPair{High: &r.B, Low: &r.C}
	r.DE = &types.RegisterPair{High: &r.D, Low: &r.E}
	r.HL = &types.RegisterPair{High: &r.H, Low: &r.L}
}
