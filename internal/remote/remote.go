// Package remote lets a second launch hand its file arguments to the
// already running instance instead of starting another UI. The running
// instance listens on a loopback websocket and records its port in the
// config directory; a new launch that finds the port file forwards an
// open request and exits.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handOffPath = "/open"
	dialTimeout = 2 * time.Second
)

// OpenRequest is one forwarded launch: open every path, then jump the
// resulting active tab to Page when it is set
type OpenRequest struct {
	Paths []string `json:"paths"`
	Page  int      `json:"page,omitempty"`
}

// OpenFunc receives forwarded open requests on the listener goroutine.
// The host is expected to bounce them onto its event loop.
type OpenFunc func(req OpenRequest)

// Server is the hand-off listener of the running instance
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	upgrader   websocket.Upgrader
	onOpen     OpenFunc

	mu   sync.Mutex
	port int
}

// NewServer creates a hand-off server delivering requests to onOpen
func NewServer(onOpen OpenFunc) *Server {
	return &Server{
		onOpen: onOpen,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: dialTimeout,
		},
	}
}

// Start begins listening on an ephemeral loopback port. The chosen port
// is returned so the caller can record it for later launches.
func (s *Server) Start() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to listen for hand-off connections: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(handOffPath, s.handleOpen)

	s.listener = listener
	s.httpServer = &http.Server{Handler: mux}

	s.mu.Lock()
	s.port = listener.Addr().(*net.TCPAddr).Port
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("remote: hand-off server error: %v", err)
		}
	}()

	return s.Port(), nil
}

// Port returns the listening port, 0 before Start
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// Stop shuts the listener down
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// handleOpen upgrades the connection and forwards every open request it
// carries. A short-lived connection with a single message is the normal
// case; malformed messages are skipped.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req OpenRequest
		if err := json.Unmarshal(data, &req); err != nil {
			log.Printf("remote: discarding malformed open request: %v", err)
			continue
		}
		if len(req.Paths) == 0 {
			continue
		}

		if s.onOpen != nil {
			s.onOpen(req)
		}

		// Acknowledge so the sender can exit knowing the request landed.
		_ = conn.WriteMessage(websocket.TextMessage, []byte("ok"))
	}
}

// Send forwards an open request to the instance listening on port.
// Failure means no healthy instance is there and the caller should start
// its own UI.
func Send(port int, req OpenRequest) error {
	if port <= 0 {
		return fmt.Errorf("no hand-off port recorded")
	}

	dialer := &websocket.Dialer{HandshakeTimeout: dialTimeout}
	url := fmt.Sprintf("ws://127.0.0.1:%d%s", port, handOffPath)

	conn, resp, err := dialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("hand-off connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("hand-off connection failed: %w", err)
	}
	defer conn.Close()

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode open request: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send open request: %w", err)
	}

	// Wait for the acknowledgement so the request is not lost when this
	// process exits immediately after.
	conn.SetReadDeadline(time.Now().Add(dialTimeout))
	if _, _, err := conn.ReadMessage(); err != nil {
		return fmt.Errorf("no acknowledgement from running instance: %w", err)
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}
