package types

// Address is a location in the 16-bit address space seen by the CPU.
// Addresses are always carried at their native width, so every value
// of Address is a valid location.
type Address = uint16

const (
	// BootROMEnd is the first address past the boot ROM overlay. While
	// the boot ROM is mapped, reads from 0x0000 - 0x00FF are served by
	// the boot image rather than the underlying memory.
	BootROMEnd Address = 0x0100

	// EntryPoint is the address execution begins at once the boot ROM
	// has finished, or immediately when no boot ROM is present.
	EntryPoint Address = 0x0100

	// HighPage is the base of the I/O page (0xFF00 - 0xFFFF) that the
	// LDH family of instructions addresses with a single byte offset.
	HighPage Address = 0xFF00

	// BDIS is the boot ROM disable register. Any write to it unmaps
	// the boot ROM from 0x0000 - 0x00FF for the rest of the session.
	BDIS Address = 0xFF50

	// StackTop is the initial value of SP after the boot sequence.
	StackTop Address = 0xFFFE
)

// IsHighPage reports whether addr lies within the I/O page.
func IsHighPage(addr Address) bool {
	return addr >= HighPage
}
