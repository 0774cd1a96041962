package cpu

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Audit decodes all 512 (opcode, prefixed) combinations and checks
// each Instruction against the operand table of its family. It returns
// every problem found, or nil if the decoder is total and consistent.
func Audit() error {
	var result *multierror.Error
	for _, prefixed := range []bool{false, true} {
		for op := 0; op <= 0xFF; op++ {
			if err := auditOne(uint8(op), prefixed); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	return result.ErrorOrNil()
}

func auditOne(opcode uint8, prefixed bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*Fault); ok {
				err = f
				return
			}
			err = fmt.Errorf("cpu: decoding %02X (prefixed=%t) panicked: %v", opcode, prefixed, r)
		}
	}()

	i := Decode(opcode, prefixed)
	if i.Opcode != opcode || i.Prefixed != prefixed {
		return fmt.Errorf("cpu: %02X decoded with opcode %02X prefixed=%t", opcode, i.Opcode, i.Prefixed)
	}
	if i.Op.Unit() == unitNone {
		return fmt.Errorf("cpu: %s has no execution unit", i.Op)
	}
	if prefixed != i.Op.prefixedFamily() {
		return fmt.Errorf("cpu: %s decoded in the wrong table (prefixed=%t)", i, prefixed)
	}
	if err := i.validate(); err != nil {
		return fmt.Errorf("cpu: opcode %02X (prefixed=%t): %w", opcode, prefixed, err)
	}
	return nil
}

// prefixedFamily reports whether the Op lives in the CB table.
func (o Op) prefixedFamily() bool {
	switch o {
	case BIT, RES, SET, SWAP, RLC, RRC, RL, RR, SLA, SRA, SRL:
		return true
	}
	return false
}

// validate checks the operands of i against the documented table
// for its family.
func (i Instruction) validate() error {
	bad := func() error {
		return fmt.Errorf("%s: invalid operands dst=%q src=%q", i.Op, i.Dst, i.Src)
	}
	if i.Cond != Always {
		switch i.Op {
		case JP, JR, CALL, RET:
		default:
			return fmt.Errorf("%s: unexpected condition %s", i.Op, i.Cond)
		}
	}
	if i.Bit > 7 {
		return fmt.Errorf("%s: bit index %d out of range", i.Op, i.Bit)
	}

	switch i.Op {
	case ADD, ADC, SUB, SBC, AND, XOR, OR, CP:
		if i.Dst != RegA || !(i.Src.is8Bit() || i.Src == D8) {
			return bad()
		}
	case INC, DEC:
		if i.Src != None || !(i.Dst.is8Bit() || i.Dst.isPair() && i.Dst != RegAF) {
			return bad()
		}
	case ADDHL:
		if i.Dst != RegHL || !i.Src.isPair() || i.Src == RegAF {
			return bad()
		}
	case ADDSP, LDHLSP:
		if i.Src != R8 || (i.Op == ADDSP) != (i.Dst == RegSP) || (i.Op == LDHLSP) != (i.Dst == RegHL) {
			return bad()
		}
	case BIT, RES, SET, SWAP, RLC, RRC, RL, RR, SLA, SRA, SRL:
		if !i.Dst.is8Bit() || i.Src != None {
			return bad()
		}
	case LD:
		if !loadPairValid(i.Dst, i.Src) {
			return bad()
		}
	case LDI, LDD:
		if !(i.Dst == MemHL && i.Src == RegA || i.Dst == RegA && i.Src == MemHL) {
			return bad()
		}
	case LDH:
		if !(i.Dst == RegA && (i.Src == MemA8 || i.Src == MemC) || i.Src == RegA && (i.Dst == MemA8 || i.Dst == MemC)) {
			return bad()
		}
	case JP:
		if i.Dst != None || !(i.Src == D16 || i.Src == RegHL && i.Cond == Always) {
			return bad()
		}
	case JR:
		if i.Dst != None || i.Src != R8 {
			return bad()
		}
	case CALL:
		if i.Dst != None || i.Src != D16 {
			return bad()
		}
	case PUSH:
		if i.Dst != None || !i.Src.isPair() || i.Src == RegSP {
			return bad()
		}
	case POP:
		if i.Src != None || !i.Dst.isPair() || i.Dst == RegSP {
			return bad()
		}
	case RST:
		if i.Vector&^0x38 != 0 || i.Dst != None || i.Src != None {
			return fmt.Errorf("RST: invalid vector %02X", i.Vector)
		}
	default:
		if i.Dst != None || i.Src != None {
			return bad()
		}
	}
	return nil
}

// loadPairValid reports whether LD dst, src is an encodable load.
func loadPairValid(dst, src Operand) bool {
	switch {
	case dst.is8Bit() && src.is8Bit():
		return !(dst == MemHL && src == MemHL)
	case dst.is8Bit() && src == D8:
		return true
	case dst == RegA && (src == MemBC || src == MemDE || src == MemA16):
		return true
	case src == RegA && (dst == MemBC || dst == MemDE || dst == MemA16):
		return true
	case dst.isPair() && dst != RegAF && src == D16:
		return true
	case dst == MemA16 && src == RegSP, dst == RegSP && src == RegHL:
		return true
	}
	return false
}
