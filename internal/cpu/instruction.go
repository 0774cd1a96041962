package cpu

import (
	"fmt"
	"strings"
)

// Op names an instruction family. Every Op is owned by exactly one
// execution Unit.
type Op uint8

const (
	// arithmetic/logic unit
	ADD Op = iota
	ADC
	SUB
	SBC
	AND
	XOR
	OR
	CP
	INC
	DEC
	ADDHL // ADD HL, rr
	ADDSP // ADD SP, r8

	// bit operations unit
	BIT
	RES
	SET
	SWAP

	// bit shift unit
	RLC
	RRC
	RL
	RR
	SLA
	SRA
	SRL
	RLCA
	RRCA
	RLA
	RRA

	// load unit
	LD
	LDI    // LD with HL incremented afterwards
	LDD    // LD with HL decremented afterwards
	LDH    // LD through the high page
	LDHLSP // LD HL, SP+r8

	// control flow unit
	JP
	JR
	CALL
	RET
	RETI
	RST
	PUSH
	POP

	// misc/interrupt unit
	NOP
	STOP
	HALT
	DI
	EI
	DAA
	CPL
	SCF
	CCF
	PREFIX
	ILLEGAL

	opCount
)

var opNames = [opCount]string{
	ADD: "ADD", ADC: "ADC", SUB: "SUB", SBC: "SBC", AND: "AND", XOR: "XOR", OR: "OR", CP: "CP",
	INC: "INC", DEC: "DEC", ADDHL: "ADD", ADDSP: "ADD",
	BIT: "BIT", RES: "RES", SET: "SET", SWAP: "SWAP",
	RLC: "RLC", RRC: "RRC", RL: "RL", RR: "RR", SLA: "SLA", SRA: "SRA", SRL: "SRL",
	RLCA: "RLCA", RRCA: "RRCA", RLA: "RLA", RRA: "RRA",
	LD: "LD", LDI: "LD", LDD: "LD", LDH: "LDH", LDHLSP: "LD",
	JP: "JP", JR: "JR", CALL: "CALL", RET: "RET", RETI: "RETI", RST: "RST", PUSH: "PUSH", POP: "POP",
	NOP: "NOP", STOP: "STOP", HALT: "HALT", DI: "DI", EI: "EI", DAA: "DAA", CPL: "CPL",
	SCF: "SCF", CCF: "CCF", PREFIX: "PREFIX", ILLEGAL: "ILLEGAL",
}

// String returns the mnemonic of the Op.
func (o Op) String() string {
	if o < opCount {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Unit identifies an execution unit.
type Unit uint8

const (
	unitNone Unit = iota
	UnitALU
	UnitBitOps
	UnitBitShift
	UnitLoad
	UnitControl
	UnitMisc
)

func (u Unit) String() string {
	switch u {
	case UnitALU:
		return "alu"
	case UnitBitOps:
		return "bit-ops"
	case UnitBitShift:
		return "bit-shift"
	case UnitLoad:
		return "load"
	case UnitControl:
		return "control-flow"
	case UnitMisc:
		return "misc"
	}
	return "none"
}

// Unit returns the execution unit that owns o.
func (o Op) Unit() Unit {
	switch o {
	case ADD, ADC, SUB, SBC, AND, XOR, OR, CP, INC, DEC, ADDHL, ADDSP:
		return UnitALU
	case BIT, RES, SET, SWAP:
		return UnitBitOps
	case RLC, RRC, RL, RR, SLA, SRA, SRL, RLCA, RRCA, RLA, RRA:
		return UnitBitShift
	case LD, LDI, LDD, LDH, LDHLSP:
		return UnitLoad
	case JP, JR, CALL, RET, RETI, RST, PUSH, POP:
		return UnitControl
	case NOP, STOP, HALT, DI, EI, DAA, CPL, SCF, CCF, PREFIX, ILLEGAL:
		return UnitMisc
	}
	return unitNone
}

// Operand describes where an instruction reads or writes a value.
type Operand uint8

const (
	None Operand = iota

	// 8-bit registers
	RegA
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL

	// 16-bit registers
	RegAF
	RegBC
	RegDE
	RegHL
	RegSP

	// memory addressed through a register
	MemHL // (HL)
	MemBC // (BC)
	MemDE // (DE)
	MemC  // (0xFF00+C)

	// immediates
	D8  // unsigned byte
	D16 // unsigned little endian word
	R8  // signed byte

	// memory addressed through an immediate
	MemA8  // (0xFF00+a8)
	MemA16 // (a16)

	operandCount
)

var operandNames = [operandCount]string{
	None: "", RegA: "A", RegB: "B", RegC: "C", RegD: "D", RegE: "E", RegH: "H", RegL: "L",
	RegAF: "AF", RegBC: "BC", RegDE: "DE", RegHL: "HL", RegSP: "SP",
	MemHL: "(HL)", MemBC: "(BC)", MemDE: "(DE)", MemC: "(C)",
	D8: "d8", D16: "d16", R8: "r8", MemA8: "(a8)", MemA16: "(a16)",
}

func (o Operand) String() string {
	if o < operandCount {
		return operandNames[o]
	}
	return fmt.Sprintf("Operand(%d)", uint8(o))
}

// immediateBytes returns the number of bytes following the opcode
// that the operand consumes.
func (o Operand) immediateBytes() int {
	switch o {
	case D8, R8, MemA8:
		return 1
	case D16, MemA16:
		return 2
	}
	return 0
}

// is8Bit reports whether the operand is one of the eight register
// index targets, B, C, D, E, H, L, (HL) and A.
func (o Operand) is8Bit() bool {
	return o >= RegA && o <= RegL || o == MemHL
}

// isPair reports whether the operand is a 16-bit register.
func (o Operand) isPair() bool {
	return o >= RegAF && o <= RegSP
}

// Instruction is the decoded form of a single opcode. It lives for the
// duration of one step and carries no state between steps.
type Instruction struct {
	Op       Op
	Dst      Operand
	Src      Operand
	Cond     FlagCondition
	Bit      uint8  // bit index for BIT, RES and SET
	Vector   uint16 // target of RST
	Opcode   uint8
	Prefixed bool
}

// Length returns the number of bytes the instruction occupies: the
// opcode, the prefix (if any) and its immediate operands.
func (i Instruction) Length() int {
	n := 1 + i.Dst.immediateBytes() + i.Src.immediateBytes()
	if i.Prefixed {
		n++
	}
	if i.Op == STOP {
		n++ // STOP is followed by a padding byte
	}
	return n
}

// String returns the instruction in assembler notation.
func (i Instruction) String() string {
	var args []string
	switch i.Op {
	case BIT, RES, SET:
		args = append(args, fmt.Sprintf("%d", i.Bit))
	case RST:
		args = append(args, fmt.Sprintf("%02XH", i.Vector))
	case LDHLSP:
		return "LD HL, SP+r8"
	}
	if i.Cond != Always {
		args = append(args, i.Cond.String())
	}

	dst, src := i.Dst.String(), i.Src.String()
	switch i.Op {
	case LDI:
		dst, src = strings.Replace(dst, "HL", "HL+", 1), strings.Replace(src, "HL", "HL+", 1)
	case LDD:
		dst, src = strings.Replace(dst, "HL", "HL-", 1), strings.Replace(src, "HL", "HL-", 1)
	}
	for _, s := range []string{dst, src} {
		if s != "" {
			args = append(args, s)
		}
	}

	if len(args) == 0 {
		return i.Op.String()
	}
	return i.Op.String() + " " + strings.Join(args, ", ")
}

// MarshalText implements encoding.TextMarshaler.
func (i Instruction) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
