package feed

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/battleship-go/internal/middleware"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second // Must be less than pongWait
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	HandshakeTimeout: 4 * time.Second,
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // The feed is read-only and public
	},
}

// Message is the JSON envelope for feed events sent over WebSocket
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServeWebSocket upgrades the connection and pushes hub events to it as JSON
// text frames until either side closes. Messages from the peer are discarded.
func ServeWebSocket(w http.ResponseWriter, r *http.Request, hub *Hub, clientID string) {
	// The upgrader writes its own handshake response, so headers set by
	// middleware must be handed over explicitly
	var header http.Header
	if id := w.Header().Get(middleware.RequestIDHeader); id != "" {
		header = http.Header{middleware.RequestIDHeader: {id}}
	}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		// The upgrader has already written an error response
		return
	}

	client := NewClient(clientID)
	if !hub.Register(client) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go readPump(conn, hub, client)
	writePump(conn, client)
}

// readPump drains the peer until the connection fails, then unregisters
func readPump(conn *websocket.Conn, hub *Hub, client *Client) {
	defer func() {
		hub.Unregister(client)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump sends the greeting then every hub event, with periodic pings
func writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	if err := writeEvent(conn, Event{Name: EventConnected, Data: connectedData}); err != nil {
		return
	}

	for {
		select {
		case event, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"),
					time.Now().Add(writeWait))
				return
			}
			if err := writeEvent(conn, event); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, event Event) error {
	msg := Message{Event: event.Name}
	if event.Data != "" {
		msg.Data = json.RawMessage(event.Data)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
