package bridge

import (
	"context"
	"net/http"
	"sync"

	"github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/annobridge/internal/ctxlog"
)

// Channel is the socket.io transport binding frontend sessions to the
// bridge. Each connected socket is one session; its socket ID is the session
// identity for the lifetime of the connection.
type Channel struct {
	io     *socket.Server
	bridge *Bridge

	mu      sync.RWMutex
	clients map[string]*socket.Socket
}

// NewChannel creates the transport, attaches it to the bridge as its
// emitter, and wires the connection lifecycle. The context supplies the
// logger used for all connection-scoped logging.
func NewChannel(ctx context.Context, b *Bridge) *Channel {
	ch := &Channel{
		io:      socket.NewServer(nil, nil),
		bridge:  b,
		clients: make(map[string]*socket.Socket),
	}
	b.SetEmitter(ch)

	logger := ctxlog.FromContext(ctx)

	ch.io.On("connection", func(args ...any) {
		client := args[0].(*socket.Socket)
		sessionID := string(client.Id())
		connCtx := ctxlog.With(ctx, "session", sessionID)
		connLogger := ctxlog.FromContext(connCtx)
		connLogger.Info("🔌 Frontend session connected")

		ch.attach(sessionID, client)

		client.On("component_value", func(data ...any) {
			if len(data) == 0 {
				connLogger.Warn("component_value event with no payload")
				return
			}
			report, err := decodeValueReport(data[0])
			if err != nil {
				connLogger.Warn("Discarding malformed value report", "error", err)
				return
			}
			if err := ch.bridge.Report(connCtx, sessionID, report.Instance, report.Value); err != nil {
				connLogger.Error("Value report failed", "instance", report.Instance, "error", err)
			}
		})

		client.On("disconnect", func(...any) {
			connLogger.Info("Frontend session disconnected")
			ch.detach(sessionID)
		})

		// Initial render pass for the fresh session.
		if err := ch.bridge.RunPass(connCtx, sessionID); err != nil {
			connLogger.Error("Initial render pass failed", "error", err)
		}
	})

	logger.Debug("Socket channel configured.")
	return ch
}

// EmitRender implements Emitter. It reports false when the session has no
// connected socket.
func (ch *Channel) EmitRender(sessionID string, payload RenderPayload) bool {
	ch.mu.RLock()
	client := ch.clients[sessionID]
	ch.mu.RUnlock()
	if client == nil {
		return false
	}

	body, err := payload.wireMap()
	if err != nil {
		return false
	}
	client.Emit("render", body)
	return true
}

// Handler returns the HTTP handler to mount at /socket.io/.
func (ch *Channel) Handler() http.Handler {
	return ch.io.ServeHandler(nil)
}

// Close shuts the socket server down.
func (ch *Channel) Close() {
	ch.io.Close(nil)
}

func (ch *Channel) attach(sessionID string, client *socket.Socket) {
	ch.mu.Lock()
	ch.clients[sessionID] = client
	ch.mu.Unlock()
}

func (ch *Channel) detach(sessionID string) {
	ch.mu.Lock()
	delete(ch.clients, sessionID)
	ch.mu.Unlock()
}
