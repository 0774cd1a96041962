// Package boot wraps the boot ROM image that the memory device overlays
// on the low end of the address space at power on. Whilst the core does
// not require a boot ROM, running one exercises most of the instruction
// set before the cartridge entry point is reached.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Size is the length of a DMG class boot ROM.
const Size = 256

// ROM represents a boot ROM. While mapped it is visible at
// 0x0000 - 0x00FF, shadowing whatever is stored there; once the boot
// program writes to the BDIS register it is unmapped for good.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom
}

// LoadBootROM validates b and returns a ROM wrapping it. Only DMG class
// images (256 bytes) are accepted, as the core has no CGB extensions.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("boot: invalid boot rom length: %d", len(b))
	}

	sum := md5.Sum(b)
	raw := make([]byte, Size)
	copy(raw, b)

	return &ROM{
		raw:      raw,
		checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Read returns the byte at the given address. The address must be
// below Size.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the hardware model the boot rom belongs to, based
// on its checksum.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownBootROMChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

const (
	// DMG0 is the checksum of the early DMG boot ROM, found in very
	// early units sold in Japan.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG-01 boot rom.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the MGB boot ROM. It differs from the
	// DMG image by a single byte, loading 0xFF into A rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB is the checksum of the SGB boot ROM.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 is the checksum of the SGB2 boot ROM.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
