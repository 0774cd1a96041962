package emulator

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// CommandPacket is a command packet that is sent to the
// emulator to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the emulator to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the emulator to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandStep executes a single instruction while paused.
	CommandStep
	// CommandClose closes the emulator.
	CommandClose
	// CommandReset resets the emulator.
	CommandReset
	// CommandLoadROM loads the ROM image in Data into the emulator.
	CommandLoadROM
	// CommandLoadState restores the save state at the path in Data.
	CommandLoadState
	// CommandSaveState writes a save state to the path in Data.
	CommandSaveState
	// CommandSetSpeed sets the speed of the emulator, Data holds the
	// rate in instructions per second as a big endian uint64.
	CommandSetSpeed
)

var commandNames = map[Command]string{
	CommandPause:     "pause",
	CommandResume:    "resume",
	CommandStep:      "step",
	CommandClose:     "close",
	CommandReset:     "reset",
	CommandLoadROM:   "load-rom",
	CommandLoadState: "load-state",
	CommandSaveState: "save-state",
	CommandSetSpeed:  "speed",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand parses the textual form of a Command.
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("emulator: unknown command %q", s)
}

// SpeedPacket returns a CommandSetSpeed packet for the given rate.
func SpeedPacket(rate uint64) CommandPacket {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, rate)
	return CommandPacket{Command: CommandSetSpeed, Data: data}
}
