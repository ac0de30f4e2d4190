// Package liveserver streams a run's in-progress statistics to connected
// websocket clients for the optional `--serve ADDR` flag, as a one-way
// broadcast: there is no game state to read back from a client, only
// snapshots to push out.
package liveserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/freebj/freebj/internal/orchestrator"
	"github.com/freebj/freebj/internal/report"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Server is a small one-way websocket broadcaster: it has no notion of
// players or tables, only a single evolving Snapshot pushed to every
// connected client as it updates.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  report.Snapshot
}

// New returns a server bound to addr, not yet listening.
func New(addr string, logger *log.Logger) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:  logger.WithPrefix("liveserver"),
		clients: make(map[*client]struct{}),
	}
}

// Publish is the orchestrator.Config.OnSnapshot callback: it updates the
// latest snapshot and fans it out to every connected client. It must not
// block and never steers or stalls a worker; each client has its own
// buffered send channel, and a slow client is dropped rather than allowed
// to back up the broadcast.
func (s *Server) Publish(agg orchestrator.Aggregate) {
	snap := report.BuildSnapshot(agg)

	s.mu.Lock()
	s.latest = snap
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.trySend(snap)
	}
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled
// or the server errors. Run it in its own goroutine alongside the
// simulation run.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: s.addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("live result stream listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		return srv.Close()
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := newClient(conn)

	s.mu.Lock()
	s.clients[c] = struct{}{}
	initial := s.latest
	s.mu.Unlock()

	c.trySend(initial)

	go func() {
		c.writePump()
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
	}()
	go c.readPump()
}

// client wraps one websocket connection with a buffered send channel so a
// slow reader never blocks the publisher or its peers.
type client struct {
	conn *websocket.Conn
	send chan report.Snapshot
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan report.Snapshot, 8), done: make(chan struct{})}
}

func (c *client) trySend(snap report.Snapshot) {
	select {
	case c.send <- snap:
	case <-c.done:
	default:
		// Buffer full: drop this client rather than block the broadcast.
		c.close()
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump only exists to drive the pong/close handshake; the client
// never sends meaningful application data.
func (c *client) readPump() {
	defer c.close()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.close()

	for {
		select {
		case snap, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			body, err := json.Marshal(snap)
			if err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
