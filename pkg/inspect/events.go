package inspect

import (
	"time"

	"github.com/thelolagemann/sm83/internal/cpu"
)

// message types sent to clients
const (
	TypeSnapshot = "snapshot"
	TypeResponse = "response"
	TypeClients  = "clients"
)

// Message is the JSON envelope of everything sent to a client.
type Message struct {
	Type     string        `json:"type"`
	Status   string        `json:"status,omitempty"`
	Snapshot *cpu.Snapshot `json:"snapshot,omitempty"`
	Command  string        `json:"command,omitempty"`
	Error    string        `json:"error,omitempty"`
	Clients  []ClientInfo  `json:"clients,omitempty"`
}

// ClientInfo describes a connected client to every other client.
type ClientInfo struct {
	ID          uint32    `json:"id"`
	RemoteAddr  string    `json:"remoteAddr"`
	UserAgent   string    `json:"userAgent"`
	ConnectedAt time.Time `json:"connectedAt"`
	// Latency is the smoothed round trip time in microseconds, or 0
	// where the platform cannot report it.
	Latency uint32 `json:"latency"`
}
