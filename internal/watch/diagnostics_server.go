package watch

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DiagnosticsServer fans a DevServer's build events out to any number of
// websocket clients — the HTTP playground's frontend, or an editor plugin —
// so they see re-parse results as they happen instead of polling. It never
// restarts or refreshes anything itself: MoonLang's frontend has no
// generated process to restart, so a client just re-renders whatever
// BuildEvent it receives.
type DiagnosticsServer struct {
	connections map[*websocket.Conn]bool
	broadcast   chan *BuildEvent
	register    chan *websocket.Conn
	unregister  chan *websocket.Conn
	done        chan struct{}
	mutex       sync.RWMutex
	upgrader    websocket.Upgrader
}

// BuildEvent is one message pushed to a connected watch client.
type BuildEvent struct {
	Type      string      `json:"type"`      // "building", "success", "reload", "error"
	Scope     string      `json:"scope,omitempty"` // "backend", "config"
	Timestamp int64       `json:"timestamp"` // Unix timestamp
	Error     *ErrorInfo  `json:"error,omitempty"`
	Files     []string    `json:"files,omitempty"`
	Duration  float64     `json:"duration,omitempty"` // Milliseconds
}

// ErrorInfo describes a single lexer/parser diagnostic for a BuildEvent.
type ErrorInfo struct {
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Phase    string `json:"phase,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// NewDiagnosticsServer creates a new diagnostics push server.
func NewDiagnosticsServer() *DiagnosticsServer {
	ds := &DiagnosticsServer{
		connections: make(map[*websocket.Conn]bool),
		broadcast:   make(chan *BuildEvent, 256),
		register:    make(chan *websocket.Conn),
		unregister:  make(chan *websocket.Conn),
		done:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					// Allow no origin (same-origin)
					return true
				}
				// Allow localhost only for security
				return strings.HasPrefix(origin, "http://localhost") ||
					strings.HasPrefix(origin, "https://localhost") ||
					strings.HasPrefix(origin, "http://127.0.0.1") ||
					strings.HasPrefix(origin, "https://127.0.0.1")
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	go ds.run()

	return ds
}

// run handles the WebSocket connection lifecycle
func (ds *DiagnosticsServer) run() {
	for {
		select {
		case <-ds.done:
			// Shutdown signal received
			log.Printf("[Watch] Shutting down diagnostics server")
			return

		case conn := <-ds.register:
			ds.mutex.Lock()
			ds.connections[conn] = true
			ds.mutex.Unlock()
			log.Printf("[Watch] Client connected (total: %d)", len(ds.connections))

		case conn := <-ds.unregister:
			ds.mutex.Lock()
			if _, ok := ds.connections[conn]; ok {
				delete(ds.connections, conn)
				conn.Close()
			}
			ds.mutex.Unlock()
			log.Printf("[Watch] Client disconnected (total: %d)", len(ds.connections))

		case event := <-ds.broadcast:
			ds.sendToAll(event)
		}
	}
}

// sendToAll sends an event to all connected clients
func (ds *DiagnosticsServer) sendToAll(event *BuildEvent) {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Watch] Failed to marshal event: %v", err)
		return
	}

	// Collect failed connections while holding read lock
	ds.mutex.RLock()
	var failedConns []*websocket.Conn
	for conn := range ds.connections {
		err := conn.WriteMessage(websocket.TextMessage, eventJSON)
		if err != nil {
			log.Printf("[Watch] Failed to send event: %v", err)
			failedConns = append(failedConns, conn)
		}
	}
	ds.mutex.RUnlock()

	// Remove failed connections with write lock
	if len(failedConns) > 0 {
		ds.mutex.Lock()
		for _, conn := range failedConns {
			if _, ok := ds.connections[conn]; ok {
				conn.Close()
				delete(ds.connections, conn)
			}
		}
		ds.mutex.Unlock()
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket
func (ds *DiagnosticsServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ds.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Watch] Failed to upgrade connection: %v", err)
		return
	}

	// Register connection
	ds.register <- conn

	// Start reading messages (mostly for keepalive)
	go ds.readMessages(conn)
}

// readMessages reads messages from the client (for keepalive)
func (ds *DiagnosticsServer) readMessages(conn *websocket.Conn) {
	defer func() {
		ds.unregister <- conn
	}()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Watch] WebSocket error: %v", err)
			}
			break
		}
	}
}

// NotifyBuilding announces that a re-parse of files has started.
func (ds *DiagnosticsServer) NotifyBuilding(files []string) {
	ds.broadcast <- &BuildEvent{
		Type:      "building",
		Timestamp: time.Now().Unix(),
		Files:     files,
	}
}

// NotifySuccess announces that a re-parse completed with no diagnostics.
func (ds *DiagnosticsServer) NotifySuccess(duration time.Duration) {
	ds.broadcast <- &BuildEvent{
		Type:      "success",
		Timestamp: time.Now().Unix(),
		Duration:  float64(duration.Milliseconds()),
	}
}

// NotifyReload tells clients the cached ASTs for scope ("backend" or
// "config") were refreshed and any dependent state should be re-fetched.
func (ds *DiagnosticsServer) NotifyReload(scope string) {
	ds.broadcast <- &BuildEvent{
		Type:      "reload",
		Scope:     scope,
		Timestamp: time.Now().Unix(),
	}
}

// NotifyError sends a single lexer/parser diagnostic to clients
func (ds *DiagnosticsServer) NotifyError(errorInfo *ErrorInfo) {
	ds.broadcast <- &BuildEvent{
		Type:      "error",
		Timestamp: time.Now().Unix(),
		Error:     errorInfo,
	}
}

// NotifyErrors sends the first of a batch of diagnostics to clients, since
// the lexer/parser fail-fast and stop at the first error per file.
func (ds *DiagnosticsServer) NotifyErrors(errors []*ErrorInfo) {
	if len(errors) > 0 {
		ds.broadcast <- &BuildEvent{
			Type:      "error",
			Timestamp: time.Now().Unix(),
			Error:     errors[0],
		}
	}
}

// ConnectionCount returns the number of active connections
func (ds *DiagnosticsServer) ConnectionCount() int {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()
	return len(ds.connections)
}

// Close closes all connections and stops the server
func (ds *DiagnosticsServer) Close() {
	// Signal the run goroutine to stop
	close(ds.done)

	// Close all connections
	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	for conn := range ds.connections {
		conn.Close()
	}
	ds.connections = make(map[*websocket.Conn]bool)
}
