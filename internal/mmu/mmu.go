// Package mmu provides the reference memory device backing the CPU's
// 16-bit address space. The MMU is a flat 64kB array with an optional
// boot ROM overlaid over 0x0000 - 0x00FF until the boot program
// disables it by writing to the BDIS register.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

const (
	// Size is the number of addressable bytes.
	Size = 0x10000

	// ROMSize is the amount of a ROM image that is mapped at
	// 0x0000 - 0x7FFF. Banked images are truncated, as there is no
	// memory bank controller behind the flat address space.
	ROMSize = 0x8000
)

// MMU is the memory device for the CPU. It satisfies the cpu.Memory
// contract and is exclusively owned by whoever drives the CPU.
type MMU struct {
	// 64kB address space
	raw [Size]uint8

	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	Log log.Logger
}

// Opt configures an MMU created with NewMMU.
type Opt func(*MMU)

// WithBootROM overlays the given boot ROM until BDIS is written.
func WithBootROM(rom *boot.ROM) Opt {
	return func(m *MMU) {
		m.bootROM = rom
	}
}

// WithLogger sets the logger used by the MMU.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.Log = l
	}
}

// NewMMU returns a new, zeroed MMU.
func NewMMU(opts ...Opt) *MMU {
	m := &MMU{
		Log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// LoadROM copies the given image into 0x0000 - 0x7FFF. Images larger
// than ROMSize are truncated, returning the number of bytes dropped.
func (m *MMU) LoadROM(rom []byte) (int, error) {
	if len(rom) == 0 {
		return 0, fmt.Errorf("mmu: empty rom")
	}

	n := copy(m.raw[:ROMSize], rom)
	dropped := len(rom) - n
	if dropped > 0 {
		m.Log.Infof("rom is %d bytes, only the first %d are mapped", len(rom), ROMSize)
	}
	return dropped, nil
}

// BootROMMapped returns true if reads from the low page are currently
// served by the boot ROM.
func (m *MMU) BootROMMapped() bool {
	return m.bootROM != nil && !m.bootROMDone
}

// BootROM returns the attached boot ROM, if any.
func (m *MMU) BootROM() *boot.ROM {
	return m.bootROM
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	// handle the boot ROM (if enabled)
	if address < types.BootROMEnd && m.BootROMMapped() {
		return m.bootROM.Read(address)
	}

	return m.raw[address]
}

// Write writes value to the given address. The boot ROM is read only,
// so writes to the low page always land in the underlying memory.
func (m *MMU) Write(address uint16, value uint8) {
	if address == types.BDIS && m.BootROMMapped() {
		// it's assumed any write to this register will disable the boot rom
		m.bootROMDone = true
		m.Log.Debugf("boot rom (%s) unmapped", m.bootROM.Model())
	}

	m.raw[address] = value
}

// ReadWord returns the little endian word at address. The high byte
// is read from address+1, wrapping at the top of the address space.
func (m *MMU) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// WriteWord writes value little endian at address and address+1.
func (m *MMU) WriteWord(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// Reset clears memory and re-maps the boot ROM, if one is attached.
func (m *MMU) Reset() {
	m.raw = [Size]uint8{}
	m.bootROMDone = false
}

var _ types.Stater = (*MMU)(nil)
var _ types.Resettable = (*MMU)(nil)

// Load restores the MMU from the given state.
func (m *MMU) Load(s *types.State) {
	s.ReadData(m.raw[:])
	m.bootROMDone = s.ReadBool()
}

// Save writes the MMU to the given state.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.raw[:])
	s.WriteBool(m.bootROMDone)
}
