package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lnevm/bridge/internal/bridge"
	"github.com/lnevm/bridge/pkg/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// KindConnection tags the hello message sent on connect.
const KindConnection = "connection"

// ConnectionResponse greets a client after the upgrade.
type ConnectionResponse struct {
	Kind         string `json:"kind"`
	ServerStatus string `json:"serverStatus"`
	UUID         string `json:"uuid"`
	Message      string `json:"message"`
}

// envelope is the minimal shape read before dispatch.
type envelope struct {
	Kind string `json:"kind"`
}

// session is one client connection. It implements bridge.Responder, so
// in-flight flows write straight back to the socket that asked for them.
type session struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	log  *logging.Logger

	mu     sync.Mutex
	closed bool
}

// Send queues a message for the client. A full buffer drops the message
// rather than blocking a swap flow mid-state; flows that outlive the
// connection get an error instead of a panic on the closed channel.
func (c *session) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("client disconnected")
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("client send buffer full")
	}
}

func (c *session) close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
}

// handleWS upgrades the connection and runs the read loop until the client
// goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("upgrade failed", "error", err)
		return
	}

	sess := &session{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, 64),
	}
	sess.log = s.log.With("client", sess.id)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go sess.writePump()

	sess.log.Debug("client connected")
	if err := sess.Send(ConnectionResponse{
		Kind:         KindConnection,
		ServerStatus: s.status(),
		UUID:         sess.id,
		Message:      "connected",
	}); err != nil {
		sess.log.Warn("failed to send hello", "error", err)
	}

	s.readPump(ctx, sess)
}

// readPump reads client messages and dispatches them to the coordinator.
// Flows run in their own goroutines; a single connection can have a send
// and a receive swap in flight at once.
func (s *Server) readPump(ctx context.Context, sess *session) {
	defer func() {
		sess.close()
		sess.conn.Close()
		sess.log.Debug("client disconnected")
	}()

	sess.conn.SetReadLimit(maxMessageSize)
	sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		sess.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.log.Debug("read error", "error", err)
			}
			return
		}
		s.dispatch(ctx, sess, message)
	}
}

func (s *Server) dispatch(ctx context.Context, sess *session, message []byte) {
	var env envelope
	if err := json.Unmarshal(message, &env); err != nil {
		sess.Send(errorStatus("malformed message"))
		return
	}

	switch env.Kind {
	case bridge.KindInitiation:
		var req bridge.SendRequest
		if err := json.Unmarshal(message, &req); err != nil {
			sess.Send(errorStatus("malformed message"))
			return
		}
		go s.coordinator.HandleSend(ctx, &req, sess)

	case bridge.KindInitiationReceive:
		var req bridge.ReceiveRequest
		if err := json.Unmarshal(message, &req); err != nil {
			sess.Send(errorStatus("malformed message"))
			return
		}
		go s.coordinator.HandleReceive(ctx, &req, sess)

	default:
		sess.log.Debug("unknown message kind", "kind", env.Kind)
		sess.Send(errorStatus("unknown message kind"))
	}
}

func errorStatus(message string) bridge.StatusResponse {
	return bridge.StatusResponse{
		Kind:    bridge.KindStatus,
		Status:  bridge.StatusError,
		Message: message,
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (c *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
