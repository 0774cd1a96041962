// Package inspect exposes a running emulator over websockets. Every
// connected client receives the CPU snapshot whenever it changes, and
// may send the text commands pause, resume, step and reset.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/pkg/emulator"
	"github.com/thelolagemann/sm83/pkg/log"
)

var errUnsupported = errors.New("inspect: round trip time is not available on this platform")

// relayed lists the commands a client may send. Everything else
// requires access to the host's filesystem.
var relayed = map[emulator.Command]bool{
	emulator.CommandPause:  true,
	emulator.CommandResume: true,
	emulator.CommandStep:   true,
	emulator.CommandReset:  true,
}

// Server is a websocket hub relaying between an emulator and any
// number of inspection clients.
type Server struct {
	ctl emulator.Controller
	Log log.Logger

	clients              map[*client]bool
	register, unregister chan *client
	broadcast            chan []byte
	quit                 chan struct{}

	cache     *cache
	infoHash  uint64
	infoEvery time.Duration

	mu     sync.Mutex
	nextID uint32
}

// Opt configures a Server.
type Opt func(*Server)

// WithLogger sets the logger of the server.
func WithLogger(l log.Logger) Opt {
	return func(s *Server) {
		s.Log = l
	}
}

// WithCacheSize sets how many recently broadcast states are
// remembered. A state matching any of them is not sent again.
func WithCacheSize(n int) Opt {
	return func(s *Server) {
		s.cache = newCache(n)
	}
}

// WithInfoInterval sets how often the client list is refreshed.
func WithInfoInterval(d time.Duration) Opt {
	return func(s *Server) {
		s.infoEvery = d
	}
}

// NewServer returns a Server for the given controller. The server
// does nothing until Run is called.
func NewServer(ctl emulator.Controller, opts ...Opt) *Server {
	s := &Server{
		ctl:        ctl,
		Log:        log.NewNullLogger(),
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 16),
		quit:       make(chan struct{}),
		cache:      newCache(1),
		infoEvery:  time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 4,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeHTTP upgrades the connection to a websocket and attaches a
// client to the hub. Run must be running. The client is registered
// before anything is written to it, so it never misses a broadcast
// that follows its first message.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// upgrade the connection to a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Errorf("inspect: upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	// create new client
	c := s.newClient(conn, r)

	// the current state goes out first, regardless of the cache
	snap := s.ctl.Snapshot()
	if b, err := s.encode(Message{Type: TypeSnapshot, Status: s.ctl.Status().String(), Snapshot: &snap}); err == nil {
		c.send <- b
	}

	select {
	case s.register <- c:
	case <-s.quit:
		conn.Close()
		return
	}

	// spawn read/write pumps
	go c.readPump()
	go c.writePump()
}

// newClient creates a new client for the connection.
func (s *Server) newClient(conn *websocket.Conn, r *http.Request) *client {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	return &client{
		server: s,
		conn:   conn,
		send:   make(chan []byte, 256),
		info: ClientInfo{
			ID:          s.nextID,
			RemoteAddr:  r.RemoteAddr,
			UserAgent:   r.Header.Get("User-Agent"),
			ConnectedAt: time.Now(),
		},
	}
}

// Run runs the hub until the context is cancelled: it registers
// clients, broadcasts snapshots published by the controller, and
// periodically shares the client list.
func (s *Server) Run(ctx context.Context) error {
	snaps, cancel := s.ctl.Subscribe()
	defer cancel()

	info := time.NewTicker(s.infoEvery)
	defer info.Stop()

	defer func() {
		close(s.quit)
		for c := range s.clients {
			delete(s.clients, c)
			close(c.send)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-s.register:
			s.clients[c] = true
			s.Log.Infof("inspect: client %d connected from %s", c.info.ID, c.info.RemoteAddr)
		case c := <-s.unregister:
			if _, ok := s.clients[c]; ok {
				delete(s.clients, c)
				close(c.send)
				s.Log.Infof("inspect: client %d disconnected", c.info.ID)
			}
		case snap, ok := <-snaps:
			if !ok {
				return nil
			}
			s.publish(snap)
		case msg := <-s.broadcast:
			s.fanOut(msg)
		case <-info.C:
			s.publishClients()
		}
	}
}

// publish broadcasts snap unless it was recently sent.
func (s *Server) publish(snap cpu.Snapshot) {
	hash := snap.Hash()
	if s.cache.has(hash) {
		return
	}
	b, err := s.encode(Message{Type: TypeSnapshot, Status: s.ctl.Status().String(), Snapshot: &snap})
	if err != nil {
		return
	}
	s.cache.add(hash)
	s.fanOut(b)
}

// publishClients broadcasts the client list if it has changed.
func (s *Server) publishClients() {
	clients := make([]ClientInfo, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c.snapshot())
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })

	b, err := s.encode(Message{Type: TypeClients, Clients: clients})
	if err != nil {
		return
	}
	if hash := xxhash.Sum64(b); hash != s.infoHash {
		s.infoHash = hash
		s.fanOut(b)
	}
}

// fanOut sends msg to every client, dropping clients that cannot
// keep up.
func (s *Server) fanOut(msg []byte) {
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			s.Log.Errorf("inspect: client %d is too slow, disconnecting", c.info.ID)
			close(c.send)
			delete(s.clients, c)
		}
	}
}

func (s *Server) encode(m Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		s.Log.Errorf("inspect: encoding %s: %v", m.Type, err)
	}
	return b, err
}

// command relays a client command to the controller, returning the
// response to send back.
func (s *Server) command(ctx context.Context, text string) Message {
	resp := Message{Type: TypeResponse, Command: text}
	cmd, err := emulator.ParseCommand(text)
	switch {
	case err != nil:
		resp.Error = err.Error()
	case !relayed[cmd]:
		resp.Error = "inspect: " + cmd.String() + " cannot be sent remotely"
	default:
		resp.Command = cmd.String()
		if r := s.ctl.Send(ctx, emulator.CommandPacket{Command: cmd}); r.Error != nil {
			resp.Error = r.Error.Error()
		}
		if cmd == emulator.CommandReset {
			// a reset may land in a state already in the cache
			s.cache.reset()
		}
	}
	resp.Status = s.ctl.Status().String()
	return resp
}

// ListenAndServe serves the hub on addr until the context is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/", s)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	hubCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	hubDone := make(chan error, 1)
	go func() {
		hubDone <- s.Run(hubCtx)
	}()

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	s.Log.Infof("inspect: listening on %s", addr)

	select {
	case err := <-errs:
		cancel()
		<-hubDone
		return err
	case <-ctx.Done():
		shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
		defer done()
		err := srv.Shutdown(shutdownCtx)
		<-hubDone
		return err
	}
}
