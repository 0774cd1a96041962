// Package emulator provides the host side of the emulator: a Machine
// that owns a CPU and its memory, and a single goroutine run loop that
// steps it, throttled, while applying commands sent from other
// goroutines between steps.
package emulator

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/pkg/bits"
	"github.com/thelolagemann/sm83/pkg/log"
)

const (
	// TickRate is how often the run loop wakes up to execute a
	// batch of instructions when throttled.
	TickRate = 10 * time.Millisecond

	// batchSize is the most instructions executed between command
	// checks, however far behind a throttled machine has fallen.
	batchSize = 1 << 14
)

// ErrClosed is returned by Send once the run loop has exited.
var ErrClosed = errors.New("emulator: machine is not running")

// request couples a command with the channel its response is
// delivered on.
type request struct {
	packet CommandPacket
	reply  chan ResponsePacket
}

// Machine owns a CPU and the MMU backing it. Only the goroutine
// executing Run touches either of them once Run has started; every
// other goroutine talks to the Machine through Send.
type Machine struct {
	CPU *cpu.CPU
	MMU *mmu.MMU

	Log log.Logger

	rom   []byte
	boot  *boot.ROM
	rate  uint64
	cfg   Config
	trace func(pc uint16, i cpu.Instruction)

	requests chan request
	done     chan struct{}
	status   atomic.Int32

	// latest snapshot, for readers outside the run loop
	snapMu sync.RWMutex
	snap   cpu.Snapshot

	subMu       sync.Mutex
	subscribers map[chan cpu.Snapshot]struct{}
}

// Opt is a function that modifies a Machine instance.
type Opt func(m *Machine)

// WithLogger sets the logger of the machine and its components.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.Log = l
	}
}

// WithBootROM maps the boot ROM over the low page and starts
// execution at 0x0000 with every register zeroed.
func WithBootROM(rom *boot.ROM) Opt {
	return func(m *Machine) {
		m.boot = rom
	}
}

// WithTrace calls fn before every instruction is executed.
func WithTrace(fn func(pc uint16, i cpu.Instruction)) Opt {
	return func(m *Machine) {
		m.trace = fn
	}
}

// NewMachine creates a Machine for the given ROM image and
// configuration. The machine is reset and ready to Run.
func NewMachine(rom []byte, cfg Config, opts ...Opt) (*Machine, error) {
	m := &Machine{
		Log:         log.NewNullLogger(),
		rom:         rom,
		rate:        cfg.Rate,
		cfg:         cfg,
		requests:    make(chan request),
		done:        make(chan struct{}),
		subscribers: make(map[chan cpu.Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	memOpts := []mmu.Opt{mmu.WithLogger(m.Log)}
	if m.boot != nil {
		memOpts = append(memOpts, mmu.WithBootROM(m.boot))
	}
	m.MMU = mmu.NewMMU(memOpts...)

	cpuOpts := []cpu.Opt{cpu.WithLogger(m.Log)}
	if m.trace != nil {
		cpuOpts = append(cpuOpts, cpu.WithTrace(m.trace))
	}
	m.CPU = cpu.New(m.MMU, cpuOpts...)

	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// reset returns the CPU and memory to their power on state and maps
// the ROM. Without a boot ROM, PC and SP start at the configured
// entry point and stack top.
func (m *Machine) reset() error {
	m.CPU.Reset()
	m.MMU.Reset()

	dropped, err := m.MMU.LoadROM(m.rom)
	if err != nil {
		return err
	}
	if dropped > 0 {
		m.Log.Infof("%d bytes of the rom are not mapped", dropped)
	}

	if m.boot == nil {
		m.CPU.PC = m.cfg.Entry
		m.CPU.SP = m.cfg.SP
	}

	m.publish()
	m.setStatus(Running)
	return nil
}

// Status returns the current status of the machine.
func (m *Machine) Status() Status {
	return Status(m.status.Load())
}

func (m *Machine) setStatus(s Status) {
	if old := Status(m.status.Swap(int32(s))); old != s {
		m.Log.Debugf("status %s -> %s", old, s)
	}
}

// Snapshot returns the most recently published CPU snapshot.
func (m *Machine) Snapshot() cpu.Snapshot {
	m.snapMu.RLock()
	defer m.snapMu.RUnlock()
	return m.snap
}

// Subscribe returns a channel on which snapshots are published, and a
// function that cancels the subscription. Slow subscribers only ever
// see the latest snapshot.
func (m *Machine) Subscribe() (<-chan cpu.Snapshot, func()) {
	ch := make(chan cpu.Snapshot, 1)
	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subscribers, ch)
			m.subMu.Unlock()
			close(ch)
		})
	}
}

// publish records the current CPU state and hands it to every
// subscriber without blocking.
func (m *Machine) publish() {
	snap := m.CPU.Snapshot()
	m.snapMu.Lock()
	m.snap = snap
	m.snapMu.Unlock()

	m.subMu.Lock()
	defer m.subMu.Unlock()
	for ch := range m.subscribers {
		select {
		case <-ch: // drop the stale snapshot
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Send delivers a command to the run loop and waits for its response.
func (m *Machine) Send(ctx context.Context, packet CommandPacket) ResponsePacket {
	req := request{packet: packet, reply: make(chan ResponsePacket, 1)}
	select {
	case m.requests <- req:
	case <-m.done:
		return ResponsePacket{Command: packet.Command, Error: ErrClosed}
	case <-ctx.Done():
		return ResponsePacket{Command: packet.Command, Error: ctx.Err()}
	}

	select {
	case resp := <-req.reply:
		return resp
	case <-ctx.Done():
		return ResponsePacket{Command: packet.Command, Error: ctx.Err()}
	}
}

// Run steps the machine until the context is cancelled, the step limit
// is reached, the CPU faults, the CPU halts (when ExitOnHalt is set) or
// CommandClose is received. A fault is returned as the error.
func (m *Machine) Run(ctx context.Context) error {
	defer close(m.done)
	m.Log.Infof("running at %d instructions/s", m.rate)

	ticker := time.NewTicker(TickRate)
	defer ticker.Stop()

	var budget float64
	for {
		running := m.Status().IsRunning()
		if running && m.rate == 0 {
			// unthrottled, only check for commands between batches
			select {
			case <-ctx.Done():
				m.publish()
				return ctx.Err()
			case req := <-m.requests:
				if m.serve(req) {
					return nil
				}
				continue
			default:
				budget = batchSize
			}
		} else {
			// a paused or halted machine only wakes up for commands
			var tick <-chan time.Time
			if running {
				tick = ticker.C
			}
			select {
			case <-ctx.Done():
				m.publish()
				return ctx.Err()
			case req := <-m.requests:
				if m.serve(req) {
					return nil
				}
				continue
			case <-tick:
				budget += float64(m.rate) * TickRate.Seconds()
			}
		}

		n := uint64(bits.Clamp(0, budget, batchSize))
		budget -= float64(n)
		if budget > batchSize {
			// too far behind to catch up, drop the backlog
			budget = batchSize
		}
		done, err := m.execute(n)
		m.publish()
		if err != nil || done {
			return err
		}
	}
}

// serve handles a request and replies to it, returning true if the
// run loop should exit.
func (m *Machine) serve(req request) bool {
	resp, stop := m.handle(req.packet)
	req.reply <- resp
	return stop
}

// execute runs up to n instructions, stopping early on a fault, a halt
// or the step limit. done reports whether Run should return. The
// snapshot is published before the status changes, so observers of a
// status always find the state that caused it.
func (m *Machine) execute(n uint64) (done bool, err error) {
	for i := uint64(0); i < n; i++ {
		if m.cfg.Steps > 0 && m.CPU.Steps() >= m.cfg.Steps {
			m.Log.Infof("step limit of %d reached", m.cfg.Steps)
			m.publish()
			m.setStatus(Paused)
			return true, nil
		}
		if err := m.CPU.Step(); err != nil {
			m.publish()
			m.setStatus(Errored)
			return true, err
		}
		if m.CPU.Mode() != cpu.ModeRunning {
			m.Log.Infof("cpu entered %s mode at %04X", m.CPU.Mode(), m.CPU.PC)
			m.publish()
			m.setStatus(Halted)
			return m.cfg.ExitOnHalt, nil
		}
	}
	return false, nil
}

// handle applies a single command between steps. stop reports whether
// the run loop should exit.
func (m *Machine) handle(p CommandPacket) (resp ResponsePacket, stop bool) {
	resp.Command = p.Command
	m.Log.Debugf("command %s", p.Command)

	switch p.Command {
	case CommandPause:
		if m.Status().IsRunning() {
			m.setStatus(Paused)
		}
	case CommandResume:
		if m.Status().IsPaused() {
			m.setStatus(Running)
		}
	case CommandStep:
		if !m.Status().IsPaused() {
			resp.Error = fmt.Errorf("emulator: cannot step while %s", m.Status())
			break
		}
		if err := m.CPU.Step(); err != nil {
			m.setStatus(Errored)
			resp.Error = err
		} else if m.CPU.Mode() != cpu.ModeRunning {
			m.setStatus(Halted)
		}
	case CommandReset:
		resp.Error = m.reset()
	case CommandLoadROM:
		if len(p.Data) == 0 {
			resp.Error = errors.New("emulator: empty rom")
			break
		}
		m.rom = append([]byte(nil), p.Data...)
		resp.Error = m.reset()
		m.Log.Infof("loaded %d byte rom", len(m.rom))
	case CommandSaveState:
		resp.Error = m.SaveState(string(p.Data))
	case CommandLoadState:
		if resp.Error = m.LoadState(string(p.Data)); resp.Error == nil {
			m.setStatus(m.statusFromCPU())
		}
	case CommandSetSpeed:
		if len(p.Data) != 8 {
			resp.Error = fmt.Errorf("emulator: speed needs 8 bytes, got %d", len(p.Data))
			break
		}
		m.rate = bits.Clamp(0, binary.BigEndian.Uint64(p.Data), MaxRate)
		m.Log.Infof("running at %d instructions/s", m.rate)
	case CommandClose:
		stop = true
	default:
		resp.Error = fmt.Errorf("emulator: unhandled command %s", p.Command)
	}

	m.publish()
	return resp, stop
}

// statusFromCPU derives the status of a freshly restored CPU.
func (m *Machine) statusFromCPU() Status {
	if m.CPU.Mode() != cpu.ModeRunning {
		return Halted
	}
	return Paused
}
