package lsp

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// wsUpgrader upgrades an HTTP connection to a websocket, the transport a
// browser-hosted editor (e.g. a Monaco-based playground) speaks instead of
// stdio JSON-RPC.
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades r's connection to a websocket and runs a full LSP
// session over it until the client disconnects or ctx is canceled. It reuses
// the same handler table as Run, so didOpen/didChange/didClose/didSave and
// diagnostics publication behave identically over either transport.
func (s *Server) ServeWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	s.logger.Info("websocket LSP client connected", zap.String("session", s.sessionID), zap.String("remote", r.RemoteAddr))

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()

	stream := jsonrpc2.NewStream(wsReadWriteCloser{conn: conn})
	rpcConn := jsonrpc2.NewConn(stream)
	s.conn = rpcConn
	s.client = protocol.ClientDispatcher(rpcConn, s.logger)

	rpcConn.Go(ctx, s.handler())

	select {
	case <-ctx.Done():
	case <-rpcConn.Done():
	}
	s.logger.Info("websocket LSP client disconnected", zap.String("session", s.sessionID))
	return conn.Close()
}

// wsReadWriteCloser adapts a *websocket.Conn to io.ReadWriteCloser by
// framing each Read/Write as one websocket text message, the shape
// jsonrpc2.NewStream expects from any byte-stream transport.
type wsReadWriteCloser struct {
	conn *websocket.Conn
}

func (w wsReadWriteCloser) Read(p []byte) (int, error) {
	_, data, err := w.conn.ReadMessage()
	if err != nil {
		return 0, err
	}
	n := copy(p, data)
	return n, nil
}

func (w wsReadWriteCloser) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w wsReadWriteCloser) Close() error {
	return w.conn.Close()
}
