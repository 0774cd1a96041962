// Package cpu implements the instruction execution core of the Sharp
// SM83: a fetch-decode-execute cycle over a flat 16-bit address space.
//
// A CPU is driven by calling Step, which performs exactly one complete
// instruction. The CPU has no internal synchronization; it and the
// Memory it is given are owned by whichever goroutine calls Step.
package cpu

import (
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Memory is the contract the core consumes from the memory device.
// Words are little endian: the low byte lives at address, the high
// byte at address+1.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	ReadWord(address uint16) uint16
	WriteWord(address uint16, value uint16)
}

// Mode is a coarse classification of the CPU derived from its mode bits.
type Mode uint8

const (
	// ModeRunning is the normal CPU mode.
	ModeRunning Mode = iota
	// ModeHalted is entered by HALT or an illegal opcode.
	ModeHalted
	// ModeLowPower is entered by STOP.
	ModeLowPower
)

func (m Mode) String() string {
	switch m {
	case ModeHalted:
		return "Halted"
	case ModeLowPower:
		return "LowPower"
	}
	return "Running"
}

// CPU represents the SM83 core. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, flags, SP and PC, as well
	// as the 16-bit register pairs.
	Registers

	mem Memory
	Log log.Logger

	// mode bits, only toggled by the misc/interrupt unit
	interruptsEnabled bool
	halted            bool
	lowPower          bool

	last     Instruction // most recently executed instruction
	branched bool        // set when the current instruction wrote PC
	steps    uint64

	trace  func(pc uint16, i Instruction)
	decode func(opcode uint8, prefixed bool) Instruction
}

// Opt configures a CPU created with New.
type Opt func(*CPU)

// WithLogger sets the logger the CPU reports faults to.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.Log = l
	}
}

// WithTrace registers fn to be called with the address and decoded
// form of every instruction, before it is executed.
func WithTrace(fn func(pc uint16, i Instruction)) Opt {
	return func(c *CPU) {
		c.trace = fn
	}
}

// New creates a new CPU instance with the given Memory. All registers,
// flags and mode bits start zeroed.
func New(mem Memory, opts ...Opt) *CPU {
	c := &CPU{
		mem:    mem,
		Log:    log.NewNullLogger(),
		decode: Decode,
	}
	// create register pairs
	c.linkPairs()

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Reset returns the CPU to its power on state.
func (c *CPU) Reset() {
	c.Registers = Registers{}
	c.linkPairs()
	c.interruptsEnabled, c.halted, c.lowPower = false, false, false
	c.last = Instruction{}
	c.steps = 0
}

// Mode returns the current mode of the CPU.
func (c *CPU) Mode() Mode {
	switch {
	case c.lowPower:
		return ModeLowPower
	case c.halted:
		return ModeHalted
	}
	return ModeRunning
}

// Step performs one fetch-decode-execute cycle. While the CPU is halted
// or in low power mode nothing is fetched and Step returns nil.
//
// A *Fault is returned if the decoder and execution units disagree;
// the step is abandoned without advancing PC.
func (c *CPU) Step() (err error) {
	if c.halted || c.lowPower {
		return nil
	}

	pc := c.PC
	defer func() {
		if r := recover(); r != nil {
			err = c.recoverFault(pc, r)
		}
	}()

	// fetch
	opcode := c.mem.Read(pc)
	prefixed := opcode == prefixByte
	if prefixed {
		opcode = c.mem.Read(pc + 1)
	}

	// decode
	return c.run(c.decode(opcode, prefixed))
}

// run executes a decoded instruction located at PC and advances PC
// past it, unless the instruction moved PC itself.
func (c *CPU) run(instruction Instruction) (err error) {
	pc := c.PC
	defer func() {
		if r := recover(); r != nil {
			err = c.recoverFault(pc, r)
		}
	}()

	c.last = instruction
	if c.trace != nil {
		c.trace(pc, instruction)
	}

	c.branched = false
	c.execute(instruction)

	if !c.branched {
		c.PC = pc + uint16(instruction.Length())
	}
	c.steps++

	return nil
}

// recoverFault returns the recovered value as the error of the step
// at pc, rewinding PC to it. Anything other than a *Fault keeps
// panicking.
func (c *CPU) recoverFault(pc uint16, r interface{}) error {
	f, ok := r.(*Fault)
	if !ok {
		panic(r)
	}
	f.PC = pc
	c.PC = pc
	c.Log.Errorf("%s", f)
	return f
}

// execute dispatches the instruction to the unit that owns it.
func (c *CPU) execute(i Instruction) {
	switch i.Op.Unit() {
	case UnitALU:
		c.executeALU(i)
	case UnitBitOps:
		c.executeBitOp(i)
	case UnitBitShift:
		c.executeBitShift(i)
	case UnitLoad:
		c.executeLoad(i)
	case UnitControl:
		c.executeControl(i)
	case UnitMisc:
		c.executeMisc(i)
	default:
		panic(c.mismatch("no execution unit claims %s", i.Op))
	}
}

// InterruptsEnabled returns the interrupt master enable flag.
func (c *CPU) InterruptsEnabled() bool {
	return c.interruptsEnabled
}

// Halted returns true if the CPU executed HALT.
func (c *CPU) Halted() bool {
	return c.halted
}

// LowPower returns true if the CPU executed STOP.
func (c *CPU) LowPower() bool {
	return c.lowPower
}

// LastInstruction returns the most recently executed Instruction.
func (c *CPU) LastInstruction() Instruction {
	return c.last
}

// Steps returns the number of instructions executed since the
// last Reset.
func (c *CPU) Steps() uint64 {
	return c.steps
}

var _ types.Stater = (*CPU)(nil)
var _ types.Resettable = (*CPU)(nil)

// Load restores the CPU from the given state.
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F.SetByte(s.Read8())
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.interruptsEnabled = s.ReadBool()
	c.halted = s.ReadBool()
	c.lowPower = s.ReadBool()
	c.steps = s.Read64()
}

// Save writes the CPU to the given state.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F.Byte())
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.interruptsEnabled)
	s.WriteBool(c.halted)
	s.WriteBool(c.lowPower)
	s.Write64(c.steps)
}
