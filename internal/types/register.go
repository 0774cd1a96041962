package types

// Register represents an 8-bit CPU register.
type Register = uint8

// RegisterPair represents a pair of Registers addressed together as a
// single 16-bit value. High holds bits 15-8, Low holds bits 7-0.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}
