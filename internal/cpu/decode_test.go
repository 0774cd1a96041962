package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Total(t *testing.T) {
	require.NoError(t, Audit())
}

func TestDecode_BitIndex(t *testing.T) {
	tests := []struct {
		opcode uint8
		op     Op
		bit    uint8
		dst    Operand
	}{
		{0x40, BIT, 0, RegB},
		{0x46, BIT, 0, MemHL},
		{0x7F, BIT, 7, RegA},
		{0x80, RES, 0, RegB},
		{0x9E, RES, 3, MemHL},
		{0xBF, RES, 7, RegA},
		{0xC0, SET, 0, RegB},
		{0xE9, SET, 5, RegC},
		{0xFF, SET, 7, RegA},
	}
	for _, tt := range tests {
		i := Decode(tt.opcode, true)
		assert.Equal(t, tt.op, i.Op, "CB %02X", tt.opcode)
		assert.Equal(t, tt.bit, i.Bit, "CB %02X", tt.opcode)
		assert.Equal(t, tt.dst, i.Dst, "CB %02X", tt.opcode)
	}
}

func TestDecode_RegisterIndex(t *testing.T) {
	// the low three bits always select B, C, D, E, H, L, (HL), A
	for low, want := range registerOperands {
		assert.Equal(t, want, Decode(0x80|uint8(low), false).Src, "ADD row")
		assert.Equal(t, want, Decode(0x38|uint8(low), true).Dst, "SRL row")
		if low != 6 {
			assert.Equal(t, want, Decode(0x70|uint8(low), false).Src, "LD (HL) row")
		}
	}
	assert.Equal(t, HALT, Decode(0x76, false).Op)
}

func TestDecode_Instructions(t *testing.T) {
	tests := []struct {
		opcode   uint8
		prefixed bool
		text     string
		length   int
	}{
		{0x00, false, "NOP", 1},
		{0x01, false, "LD BC, d16", 3},
		{0x08, false, "LD (a16), SP", 3},
		{0x10, false, "STOP", 2},
		{0x18, false, "JR r8", 2},
		{0x20, false, "JR NZ, r8", 2},
		{0x22, false, "LD (HL+), A", 1},
		{0x3A, false, "LD A, (HL-)", 1},
		{0x76, false, "HALT", 1},
		{0x86, false, "ADD A, (HL)", 1},
		{0x29, false, "ADD HL, HL", 1},
		{0xC2, false, "JP NZ, d16", 3},
		{0xCB, false, "PREFIX", 1},
		{0xCD, false, "CALL d16", 3},
		{0xD3, false, "ILLEGAL", 1},
		{0xE0, false, "LDH (a8), A", 2},
		{0xE2, false, "LDH (C), A", 1},
		{0xE8, false, "ADD SP, r8", 2},
		{0xE9, false, "JP HL", 1},
		{0xF8, false, "LD HL, SP+r8", 2},
		{0xFF, false, "RST 38H", 1},
		{0x11, true, "RL C", 2},
		{0x37, true, "SWAP A", 2},
		{0x7E, true, "BIT 7, (HL)", 2},
	}
	for _, tt := range tests {
		i := Decode(tt.opcode, tt.prefixed)
		assert.Equal(t, tt.text, i.String(), "%02X prefixed=%t", tt.opcode, tt.prefixed)
		assert.Equal(t, tt.length, i.Length(), "%s", tt.text)
	}
}

func TestDecode_Illegal(t *testing.T) {
	illegal := []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}
	for op := 0; op <= 0xFF; op++ {
		i := Decode(uint8(op), false)
		assert.Equal(t, contains(illegal, uint8(op)), i.Op == ILLEGAL, "opcode %02X decoded as %s", op, i)
	}
}

func TestDecode_Units(t *testing.T) {
	for op := Op(0); op < opCount; op++ {
		assert.NotEqual(t, unitNone, op.Unit(), "%s", op)
	}
}

func TestAudit_RejectsMismatch(t *testing.T) {
	assert.Error(t, Instruction{Op: ADD, Dst: RegB, Src: RegC}.validate())
	assert.Error(t, Instruction{Op: LD, Dst: MemHL, Src: MemHL}.validate())
	assert.Error(t, Instruction{Op: PUSH, Src: RegSP}.validate())
	assert.Error(t, Instruction{Op: NOP, Cond: Zero}.validate())
	assert.NoError(t, Instruction{Op: LD, Dst: RegSP, Src: RegHL}.validate())
}

func contains(s []uint8, v uint8) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
