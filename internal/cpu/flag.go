package cpu

import "github.com/thelolagemann/sm83/internal/types"

const (
	flagZero      = types.Bit7
	flagSubtract  = types.Bit6
	flagHalfCarry = types.Bit5
	flagCarry     = types.Bit4
)

// Flags holds the four status flags. When packed into a byte they
// occupy bits 7 - 4; bits 3 - 0 always read as zero.
type Flags struct {
	Zero      bool // Z
	Subtract  bool // N
	HalfCarry bool // H
	Carry     bool // C
}

// Byte packs the flags into the F register layout.
func (f Flags) Byte() uint8 {
	var b uint8
	if f.Zero {
		b |= flagZero
	}
	if f.Subtract {
		b |= flagSubtract
	}
	if f.HalfCarry {
		b |= flagHalfCarry
	}
	if f.Carry {
		b |= flagCarry
	}
	return b
}

// SetByte unpacks b into the flags. The low nibble is ignored.
func (f *Flags) SetByte(b uint8) {
	f.Zero = b&flagZero != 0
	f.Subtract = b&flagSubtract != 0
	f.HalfCarry = b&flagHalfCarry != 0
	f.Carry = b&flagCarry != 0
}

// String returns the flags as ZNHC, with a dash for each clear flag.
func (f Flags) String() string {
	s := []byte("----")
	if f.Zero {
		s[0] = 'Z'
	}
	if f.Subtract {
		s[1] = 'N'
	}
	if f.HalfCarry {
		s[2] = 'H'
	}
	if f.Carry {
		s[3] = 'C'
	}
	return string(s)
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = Flags{Zero: zero, Subtract: subtract, HalfCarry: halfCarry, Carry: carry}
}

// FlagCondition gates conditional control flow instructions.
type FlagCondition uint8

const (
	// Always is the condition of every unconditional instruction.
	Always FlagCondition = iota
	Zero
	NotZero
	Carry
	NotCarry
)

// String returns the assembler spelling of the condition.
func (f FlagCondition) String() string {
	switch f {
	case Always:
		return ""
	case Zero:
		return "Z"
	case NotZero:
		return "NZ"
	case Carry:
		return "C"
	case NotCarry:
		return "NC"
	}
	return "?"
}

// Holds reports whether the condition is met by the given flags.
func (f FlagCondition) Holds(flags Flags) bool {
	switch f {
	case Zero:
		return flags.Zero
	case NotZero:
		return !flags.Zero
	case Carry:
		return flags.Carry
	case NotCarry:
		return !flags.Carry
	}
	return true
}
