package emulator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/types"
)

// stateMagic prefixes every uncompressed save state.
var stateMagic = []byte("SM83")

const stateVersion = 1

// ErrBadState is returned when a save state is not recognised.
var ErrBadState = errors.New("emulator: not a save state")

// encodeState serializes the machine and compresses it with brotli.
func (m *Machine) encodeState() ([]byte, error) {
	s := types.NewState()
	s.WriteData(stateMagic)
	s.Write8(stateVersion)
	m.CPU.Save(s)
	m.MMU.Save(s)

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(s.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeState decompresses and restores a state produced by
// encodeState. The machine is left untouched if the state is invalid.
func (m *Machine) decodeState(b []byte) error {
	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(b)))
	if err != nil {
		return fmt.Errorf("emulator: decompressing state: %w", err)
	}

	s := types.StateFromBytes(raw)
	magic := make([]byte, len(stateMagic))
	s.ReadData(magic)
	if s.Err() != nil || !bytes.Equal(magic, stateMagic) {
		return ErrBadState
	}
	if v := s.Read8(); v != stateVersion {
		return fmt.Errorf("emulator: unsupported state version %d", v)
	}

	// validate the full state before touching the machine
	probe := types.StateFromBytes(raw)
	probe.ReadData(magic)
	probe.Read8()
	cpu.New(nil).Load(probe)
	mmu.NewMMU().Load(probe)
	if err := probe.Err(); err != nil {
		return fmt.Errorf("emulator: %w", err)
	}

	m.CPU.Load(s)
	m.MMU.Load(s)
	return nil
}

// SaveState writes a compressed save state of the machine to path.
// The state is written to a temporary file first and then renamed, so
// a crash never leaves a truncated state behind. SaveState must not be
// called while Run is active; send CommandSaveState instead.
func (m *Machine) SaveState(path string) error {
	b, err := m.encodeState()
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	m.Log.Infof("saved state to %s (%d bytes)", path, len(b))
	return os.Rename(f.Name(), path)
}

// LoadState restores the save state at path. LoadState must not be
// called while Run is active; send CommandLoadState instead.
func (m *Machine) LoadState(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := m.decodeState(b); err != nil {
		return err
	}
	m.Log.Infof("loaded state from %s", path)
	return nil
}
