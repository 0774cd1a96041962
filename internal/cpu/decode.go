package cpu

// prefixByte selects the prefixed (CB) instruction table for the byte
// that follows it.
const prefixByte = 0xCB

// registerOperands maps the low 3 bits of an opcode to its register
// index target. Index 6 always denotes the byte addressed by HL.
var registerOperands = [8]Operand{RegB, RegC, RegD, RegE, RegH, RegL, MemHL, RegA}

// aluOps maps bits 5-3 of 0x80 - 0xBF (and the d8 forms) to an Op.
var aluOps = [8]Op{ADD, ADC, SUB, SBC, AND, XOR, OR, CP}

// shiftOps maps bits 5-3 of prefixed 0x00 - 0x3F to an Op.
var shiftOps = [8]Op{RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL}

// Decode returns the Instruction for the given opcode. prefixed
// selects the CB table. Decode is total and pure: every one of the
// 512 inputs maps to exactly one Instruction.
func Decode(opcode uint8, prefixed bool) Instruction {
	var i Instruction
	if prefixed {
		i = decodeCB(opcode)
	} else {
		i = decodeUnprefixed(opcode)
	}
	i.Opcode = opcode
	i.Prefixed = prefixed
	return i
}

func decodeCB(opcode uint8) Instruction {
	target := registerOperands[opcode&0x7]

	switch opcode >> 6 {
	case 0: // 0x00 - 0x3F rotates and shifts
		return Instruction{Op: shiftOps[opcode>>3&0x7], Dst: target}
	case 1: // 0x40 - 0x7F BIT b, r
		return Instruction{Op: BIT, Dst: target, Bit: (opcode - 0x40) / 8}
	case 2: // 0x80 - 0xBF RES b, r
		return Instruction{Op: RES, Dst: target, Bit: (opcode - 0x80) / 8}
	default: // 0xC0 - 0xFF SET b, r
		return Instruction{Op: SET, Dst: target, Bit: (opcode - 0xC0) / 8}
	}
}

func decodeUnprefixed(opcode uint8) Instruction {
	switch opcode >> 6 {
	case 0:
		return decodeBlock0(opcode)
	case 1: // 0x40 - 0x7F LD r, r
		if opcode == 0x76 {
			return Instruction{Op: HALT}
		}
		return Instruction{Op: LD, Dst: registerOperands[opcode>>3&0x7], Src: registerOperands[opcode&0x7]}
	case 2: // 0x80 - 0xBF ALU A, r
		return Instruction{Op: aluOps[opcode>>3&0x7], Dst: RegA, Src: registerOperands[opcode&0x7]}
	default:
		return decodeBlock3(opcode)
	}
}

// decodeBlock0 decodes 0x00 - 0x3F.
func decodeBlock0(opcode uint8) Instruction {
	switch opcode {
	case 0x00:
		return Instruction{Op: NOP}
	case 0x01:
		return Instruction{Op: LD, Dst: RegBC, Src: D16}
	case 0x02:
		return Instruction{Op: LD, Dst: MemBC, Src: RegA}
	case 0x03:
		return Instruction{Op: INC, Dst: RegBC}
	case 0x04:
		return Instruction{Op: INC, Dst: RegB}
	case 0x05:
		return Instruction{Op: DEC, Dst: RegB}
	case 0x06:
		return Instruction{Op: LD, Dst: RegB, Src: D8}
	case 0x07:
		return Instruction{Op: RLCA}
	case 0x08:
		return Instruction{Op: LD, Dst: MemA16, Src: RegSP}
	case 0x09:
		return Instruction{Op: ADDHL, Dst: RegHL, Src: RegBC}
	case 0x0A:
		return Instruction{Op: LD, Dst: RegA, Src: MemBC}
	case 0x0B:
		return Instruction{Op: DEC, Dst: RegBC}
	case 0x0C:
		return Instruction{Op: INC, Dst: RegC}
	case 0x0D:
		return Instruction{Op: DEC, Dst: RegC}
	case 0x0E:
		return Instruction{Op: LD, Dst: RegC, Src: D8}
	case 0x0F:
		return Instruction{Op: RRCA}
	case 0x10:
		return Instruction{Op: STOP}
	case 0x11:
		return Instruction{Op: LD, Dst: RegDE, Src: D16}
	case 0x12:
		return Instruction{Op: LD, Dst: MemDE, Src: RegA}
	case 0x13:
		return Instruction{Op: INC, Dst: RegDE}
	case 0x14:
		return Instruction{Op: INC, Dst: RegD}
	case 0x15:
		return Instruction{Op: DEC, Dst: RegD}
	case 0x16:
		return Instruction{Op: LD, Dst: RegD, Src: D8}
	case 0x17:
		return Instruction{Op: RLA}
	case 0x18:
		return Instruction{Op: JR, Src: R8}
	case 0x19:
		return Instruction{Op: ADDHL, Dst: RegHL, Src: RegDE}
	case 0x1A:
		return Instruction{Op: LD, Dst: RegA, Src: MemDE}
	case 0x1B:
		return Instruction{Op: DEC, Dst: RegDE}
	case 0x1C:
		return Instruction{Op: INC, Dst: RegE}
	case 0x1D:
		return Instruction{Op: DEC, Dst: RegE}
	case 0x1E:
		return Instruction{Op: LD, Dst: RegE, Src: D8}
	case 0x1F:
		return Instruction{Op: RRA}
	case 0x20:
		return Instruction{Op: JR, Cond: NotZero, Src: R8}
	case 0x21:
		return Instruction{Op: LD, Dst: RegHL, Src: D16}
	case 0x22:
		return Instruction{Op: LDI, Dst: MemHL, Src: RegA}
	case 0x23:
		return Instruction{Op: INC, Dst: RegHL}
	case 0x24:
		return Instruction{Op: INC, Dst: RegH}
	case 0x25:
		return Instruction{Op: DEC, Dst: RegH}
	case 0x26:
		return Instruction{Op: LD, Dst: RegH, Src: D8}
	case 0x27:
		return Instruction{Op: DAA}
	case 0x28:
		return Instruction{Op: JR, Cond: Zero, Src: R8}
	case 0x29:
		return Instruction{Op: ADDHL, Dst: RegHL, Src: RegHL}
	case 0x2A:
		return Instruction{Op: LDI, Dst: RegA, Src: MemHL}
	case 0x2B:
		return Instruction{Op: DEC, Dst: RegHL}
	case 0x2C:
		return Instruction{Op: INC, Dst: RegL}
	case 0x2D:
		return Instruction{Op: DEC, Dst: RegL}
	case 0x2E:
		return Instruction{Op: LD, Dst: RegL, Src: D8}
	case 0x2F:
		return Instruction{Op: CPL}
	case 0x30:
		return Instruction{Op: JR, Cond: NotCarry, Src: R8}
	case 0x31:
		return Instruction{Op: LD, Dst: RegSP, Src: D16}
	case 0x32:
		return Instruction{Op: LDD, Dst: MemHL, Src: RegA}
	case 0x33:
		return Instruction{Op: INC, Dst: RegSP}
	case 0x34:
		return Instruction{Op: INC, Dst: MemHL}
	case 0x35:
		return Instruction{Op: DEC, Dst: MemHL}
	case 0x36:
		return Instruction{Op: LD, Dst: MemHL, Src: D8}
	case 0x37:
		return Instruction{Op: SCF}
	case 0x38:
		return Instruction{Op: JR, Cond: Carry, Src: R8}
	case 0x39:
		return Instruction{Op: ADDHL, Dst: RegHL, Src: RegSP}
	case 0x3A:
		return Instruction{Op: LDD, Dst: RegA, Src: MemHL}
	case 0x3B:
		return Instruction{Op: DEC, Dst: RegSP}
	case 0x3C:
		return Instruction{Op: INC, Dst: RegA}
	case 0x3D:
		return Instruction{Op: DEC, Dst: RegA}
	case 0x3E:
		return Instruction{Op: LD, Dst: RegA, Src: D8}
	case 0x3F:
		return Instruction{Op: CCF}
	}
	panic(decodeGap(opcode, false))
}

// decodeBlock3 decodes 0xC0 - 0xFF.
func decodeBlock3(opcode uint8) Instruction {
	switch opcode {
	case 0xC0:
		return Instruction{Op: RET, Cond: NotZero}
	case 0xC1:
		return Instruction{Op: POP, Dst: RegBC}
	case 0xC2:
		return Instruction{Op: JP, Cond: NotZero, Src: D16}
	case 0xC3:
		return Instruction{Op: JP, Src: D16}
	case 0xC4:
		return Instruction{Op: CALL, Cond: NotZero, Src: D16}
	case 0xC5:
		return Instruction{Op: PUSH, Src: RegBC}
	case 0xC6:
		return Instruction{Op: ADD, Dst: RegA, Src: D8}
	case 0xC7:
		return Instruction{Op: RST, Vector: 0x00}
	case 0xC8:
		return Instruction{Op: RET, Cond: Zero}
	case 0xC9:
		return Instruction{Op: RET}
	case 0xCA:
		return Instruction{Op: JP, Cond: Zero, Src: D16}
	case 0xCB:
		return Instruction{Op: PREFIX}
	case 0xCC:
		return Instruction{Op: CALL, Cond: Zero, Src: D16}
	case 0xCD:
		return Instruction{Op: CALL, Src: D16}
	case 0xCE:
		return Instruction{Op: ADC, Dst: RegA, Src: D8}
	case 0xCF:
		return Instruction{Op: RST, Vector: 0x08}
	case 0xD0:
		return Instruction{Op: RET, Cond: NotCarry}
	case 0xD1:
		return Instruction{Op: POP, Dst: RegDE}
	case 0xD2:
		return Instruction{Op: JP, Cond: NotCarry, Src: D16}
	case 0xD3:
		return Instruction{Op: ILLEGAL}
	case 0xD4:
		return Instruction{Op: CALL, Cond: NotCarry, Src: D16}
	case 0xD5:
		return Instruction{Op: PUSH, Src: RegDE}
	case 0xD6:
		return Instruction{Op: SUB, Dst: RegA, Src: D8}
	case 0xD7:
		return Instruction{Op: RST, Vector: 0x10}
	case 0xD8:
		return Instruction{Op: RET, Cond: Carry}
	case 0xD9:
		return Instruction{Op: RETI}
	case 0xDA:
		return Instruction{Op: JP, Cond: Carry, Src: D16}
	case 0xDB:
		return Instruction{Op: ILLEGAL}
	case 0xDC:
		return Instruction{Op: CALL, Cond: Carry, Src: D16}
	case 0xDD:
		return Instruction{Op: ILLEGAL}
	case 0xDE:
		return Instruction{Op: SBC, Dst: RegA, Src: D8}
	case 0xDF:
		return Instruction{Op: RST, Vector: 0x18}
	case 0xE0:
		return Instruction{Op: LDH, Dst: MemA8, Src: RegA}
	case 0xE1:
		return Instruction{Op: POP, Dst: RegHL}
	case 0xE2:
		return Instruction{Op: LDH, Dst: MemC, Src: RegA}
	case 0xE3, 0xE4:
		return Instruction{Op: ILLEGAL}
	case 0xE5:
		return Instruction{Op: PUSH, Src: RegHL}
	case 0xE6:
		return Instruction{Op: AND, Dst: RegA, Src: D8}
	case 0xE7:
		return Instruction{Op: RST, Vector: 0x20}
	case 0xE8:
		return Instruction{Op: ADDSP, Dst: RegSP, Src: R8}
	case 0xE9:
		return Instruction{Op: JP, Src: RegHL}
	case 0xEA:
		return Instruction{Op: LD, Dst: MemA16, Src: RegA}
	case 0xEB, 0xEC, 0xED:
		return Instruction{Op: ILLEGAL}
	case 0xEE:
		return Instruction{Op: XOR, Dst: RegA, Src: D8}
	case 0xEF:
		return Instruction{Op: RST, Vector: 0x28}
	case 0xF0:
		return Instruction{Op: LDH, Dst: RegA, Src: MemA8}
	case 0xF1:
		return Instruction{Op: POP, Dst: RegAF}
	case 0xF2:
		return Instruction{Op: LDH, Dst: RegA, Src: MemC}
	case 0xF3:
		return Instruction{Op: DI}
	case 0xF4:
		return Instruction{Op: ILLEGAL}
	case 0xF5:
		return Instruction{Op: PUSH, Src: RegAF}
	case 0xF6:
		return Instruction{Op: OR, Dst: RegA, Src: D8}
	case 0xF7:
		return Instruction{Op: RST, Vector: 0x30}
	case 0xF8:
		return Instruction{Op: LDHLSP, Dst: RegHL, Src: R8}
	case 0xF9:
		return Instruction{Op: LD, Dst: RegSP, Src: RegHL}
	case 0xFA:
		return Instruction{Op: LD, Dst: RegA, Src: MemA16}
	case 0xFB:
		return Instruction{Op: EI}
	case 0xFC, 0xFD:
		return Instruction{Op: ILLEGAL}
	case 0xFE:
		return Instruction{Op: CP, Dst: RegA, Src: D8}
	case 0xFF:
		return Instruction{Op: RST, Vector: 0x38}
	}
	panic(decodeGap(opcode, false))
}
