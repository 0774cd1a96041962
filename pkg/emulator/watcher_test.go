package emulator

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/pkg/log"
)

// recorder is a Controller that records the commands sent to it.
type recorder struct {
	mu      sync.Mutex
	packets []CommandPacket
}

func (r *recorder) Send(_ context.Context, p CommandPacket) ResponsePacket {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packets = append(r.packets, p)
	return ResponsePacket{Command: p.Command}
}

func (r *recorder) received() []CommandPacket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CommandPacket(nil), r.packets...)
}

func (r *recorder) Status() Status                           { return Running }
func (r *recorder) Snapshot() cpu.Snapshot                   { return cpu.Snapshot{} }
func (r *recorder) Subscribe() (<-chan cpu.Snapshot, func()) { return nil, func() {} }

func TestWatchROM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.gb")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, romWith(0x00), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	done := make(chan error, 1)
	go func() {
		done <- WatchROM(ctx, path, rec, log.NewNullLogger())
	}()

	// give the watcher time to register, then modify the files
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(path, romWith(0x76), 0o644))

	require.Eventually(t, func() bool {
		return len(rec.received()) > 0
	}, 5*time.Second, 10*time.Millisecond)

	packets := rec.received()
	assert.Equal(t, CommandLoadROM, packets[0].Command)
	assert.Equal(t, uint8(0x76), packets[0].Data[0x0100])

	cancel()
	assert.NoError(t, <-done)
}
