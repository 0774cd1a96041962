package emulator

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

// reloadDelay coalesces the burst of events editors and build tools
// produce while writing a file.
const reloadDelay = 100 * time.Millisecond

// WatchROM reloads the ROM at path into the controller every time the
// file changes, which also resets the machine. It blocks until the
// context is cancelled.
//
// The directory is watched rather than the file itself, so files
// replaced by a rename are still picked up.
func WatchROM(ctx context.Context, path string, c Controller, l log.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("emulator: watching %s: %w", path, err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("emulator: watching %s: %w", path, err)
	}
	target := filepath.Clean(path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(reloadDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Errorf("watcher: %v", err)
		case <-pending:
			pending = nil
			rom, err := utils.LoadFile(path)
			if err != nil {
				l.Errorf("reloading %s: %v", path, err)
				continue
			}
			if resp := c.Send(ctx, CommandPacket{Command: CommandLoadROM, Data: rom}); resp.Error != nil {
				l.Errorf("reloading %s: %v", path, resp.Error)
				continue
			}
			l.Infof("reloaded %s", path)
		}
	}
}
