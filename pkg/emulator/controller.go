package emulator

import (
	"context"

	"github.com/thelolagemann/sm83/internal/cpu"
)

// Controller defines the interface contract for an Emulator to
// implement in order for a remote front end (such as the
// inspect.Server) to be able to control it.
type Controller interface {
	Send(ctx context.Context, packet CommandPacket) ResponsePacket
	Status() Status
	Snapshot() cpu.Snapshot
	Subscribe() (<-chan cpu.Snapshot, func())
}

var _ Controller = (*Machine)(nil)
