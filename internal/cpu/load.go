package cpu

import "github.com/thelolagemann/sm83/internal/types"

// executeLoad performs LD, LDI, LDD, LDH and LD HL, SP+r8. No load
// affects the flags, except LD HL, SP+r8.
func (c *CPU) executeLoad(i Instruction) {
	switch i.Op {
	case LD:
		c.load(i.Dst, i.Src)
	case LDI, LDD:
		if !(i.Dst == MemHL && i.Src == RegA || i.Dst == RegA && i.Src == MemHL) {
			panic(c.mismatch("%s moves between A and (HL), got %q, %q", i.Op, i.Dst, i.Src))
		}
		c.write8(i.Dst, c.read8(i.Src))
		if i.Op == LDI {
			c.HL.SetUint16(c.HL.Uint16() + 1)
		} else {
			c.HL.SetUint16(c.HL.Uint16() - 1)
		}
	case LDH:
		c.loadHigh(i.Dst, i.Src)
	case LDHLSP:
		if i.Dst != RegHL || i.Src != R8 {
			panic(c.mismatch("LD HL, SP+r8 got %q, %q", i.Dst, i.Src))
		}
		c.HL.SetUint16(c.addSPSigned(c.immediate8()))
	default:
		panic(c.mismatch("%s is not a load", i.Op))
	}
}

// load copies src into dst, selecting the 8 or 16 bit path from the
// operand pair.
//
//	LD n, m
//	LD nn, d16
//	LD (a16), SP
//	LD SP, HL
func (c *CPU) load(dst, src Operand) {
	if !loadPairValid(dst, src) {
		panic(c.mismatch("LD %q, %q is not encodable", dst, src))
	}
	switch {
	case dst.isPair(), src.isPair():
		c.write16(dst, c.read16(src))
	default:
		c.write8(dst, c.read8(src))
	}
}

// loadHigh performs the high page shorthand forms. Addresses outside
// 0xFF00 - 0xFFFF are neither read nor written.
//
//	LDH (a8), A
//	LDH A, (a8)
//	LD (C), A
//	LD A, (C)
func (c *CPU) loadHigh(dst, src Operand) {
	switch {
	case src == RegA && (dst == MemA8 || dst == MemC):
		addr, _ := c.address(dst)
		if !types.IsHighPage(addr) {
			c.Log.Debugf("cpu: LDH to %04X outside high page ignored", addr)
			return
		}
		c.mem.Write(addr, c.A)
	case dst == RegA && (src == MemA8 || src == MemC):
		addr, _ := c.address(src)
		if !types.IsHighPage(addr) {
			c.Log.Debugf("cpu: LDH from %04X outside high page ignored", addr)
			return
		}
		c.A = c.mem.Read(addr)
	default:
		panic(c.mismatch("LDH moves between A and the high page, got %q, %q", dst, src))
	}
}
