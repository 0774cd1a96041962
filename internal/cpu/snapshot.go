package cpu

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
)

// Snapshot is a point in time copy of the observable CPU state.
type Snapshot struct {
	A  uint8  `json:"a"`
	F  uint8  `json:"f"`
	B  uint8  `json:"b"`
	C  uint8  `json:"c"`
	D  uint8  `json:"d"`
	E  uint8  `json:"e"`
	H  uint8  `json:"h"`
	L  uint8  `json:"l"`
	SP uint16 `json:"sp"`
	PC uint16 `json:"pc"`

	Flags             string `json:"flags"`
	InterruptsEnabled bool   `json:"ime"`
	Halted            bool   `json:"halted"`
	LowPower          bool   `json:"lowPower"`
	Mode              string `json:"mode"`

	Last  string `json:"last"`
	Steps uint64 `json:"steps"`
}

// Snapshot returns a copy of the current CPU state.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A:                 c.A,
		F:                 c.F.Byte(),
		B:                 c.B,
		C:                 c.C,
		D:                 c.D,
		E:                 c.E,
		H:                 c.H,
		L:                 c.L,
		SP:                c.SP,
		PC:                c.PC,
		Flags:             c.F.String(),
		InterruptsEnabled: c.interruptsEnabled,
		Halted:            c.halted,
		LowPower:          c.lowPower,
		Mode:              c.Mode().String(),
		Last:              c.last.String(),
		Steps:             c.steps,
	}
}

// AF returns the AF pair of the snapshot.
func (s Snapshot) AF() uint16 { return uint16(s.A)<<8 | uint16(s.F) }

// BC returns the BC pair of the snapshot.
func (s Snapshot) BC() uint16 { return uint16(s.B)<<8 | uint16(s.C) }

// DE returns the DE pair of the snapshot.
func (s Snapshot) DE() uint16 { return uint16(s.D)<<8 | uint16(s.E) }

// HL returns the HL pair of the snapshot.
func (s Snapshot) HL() uint16 { return uint16(s.H)<<8 | uint16(s.L) }

// Hash returns a hash of the architectural state: the registers and
// mode bits. The instruction counter and the last instruction are not
// included, so two CPUs in the same state hash equally regardless of
// how they got there.
func (s Snapshot) Hash() uint64 {
	var b [15]byte
	binary.BigEndian.PutUint16(b[0:], s.AF())
	binary.BigEndian.PutUint16(b[2:], s.BC())
	binary.BigEndian.PutUint16(b[4:], s.DE())
	binary.BigEndian.PutUint16(b[6:], s.HL())
	binary.BigEndian.PutUint16(b[8:], s.SP)
	binary.BigEndian.PutUint16(b[10:], s.PC)
	for i, v := range []bool{s.InterruptsEnabled, s.Halted, s.LowPower} {
		if v {
			b[12+i] = 1
		}
	}
	return xxhash.Sum64(b[:])
}

func (s Snapshot) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X %s %s",
		s.AF(), s.BC(), s.DE(), s.HL(), s.SP, s.PC, s.Flags, s.Mode)
}
