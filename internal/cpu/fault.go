package cpu

import "fmt"

// FaultKind classifies an internal consistency failure of the core.
type FaultKind uint8

const (
	// DecodeGap means an opcode reached no decoder table entry.
	DecodeGap FaultKind = iota + 1
	// OperandMismatch means an execution unit was handed an operand
	// outside the set it supports.
	OperandMismatch
)

func (k FaultKind) String() string {
	switch k {
	case DecodeGap:
		return "decode gap"
	case OperandMismatch:
		return "operand mismatch"
	}
	return "unknown fault"
}

// Fault is an unrecoverable defect detected while stepping. Faults are
// never retried: the step that raised one is abandoned and the Fault is
// returned to the caller of Step.
type Fault struct {
	Kind        FaultKind
	PC          uint16
	Opcode      uint8
	Prefixed    bool
	Instruction Instruction
	Detail      string
}

func (f *Fault) Error() string {
	prefix := ""
	if f.Prefixed {
		prefix = "CB "
	}
	if f.Kind == DecodeGap {
		return fmt.Sprintf("cpu: %s: opcode %s%02X at %04X", f.Kind, prefix, f.Opcode, f.PC)
	}
	return fmt.Sprintf("cpu: %s: %s (%s%02X) at %04X: %s", f.Kind, f.Instruction, prefix, f.Opcode, f.PC, f.Detail)
}

func decodeGap(opcode uint8, prefixed bool) *Fault {
	return &Fault{Kind: DecodeGap, Opcode: opcode, Prefixed: prefixed}
}

// mismatch builds an OperandMismatch fault for the instruction
// currently being executed.
func (c *CPU) mismatch(format string, args ...interface{}) *Fault {
	return &Fault{
		Kind:        OperandMismatch,
		PC:          c.PC,
		Opcode:      c.last.Opcode,
		Prefixed:    c.last.Prefixed,
		Instruction: c.last,
		Detail:      fmt.Sprintf(format, args...),
	}
}
