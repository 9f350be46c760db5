package livefeed

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Handler upgrades the request to a websocket and streams feed messages
func Handler(hub *Hub, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn(LogMsgUpgradeFailed, "remote_addr", r.RemoteAddr, "error", err)
			return
		}

		client := hub.Register()
		slog.Info(LogMsgClientConnected, "client_id", client.ID, "remote_addr", r.RemoteAddr)

		done := make(chan struct{})
		go readPump(conn, done)
		writePump(conn, client, done, hub.now)

		hub.Unregister(client.ID)
		_ = conn.Close()
		slog.Info(LogMsgClientDisconnected, "client_id", client.ID)
	}
}

// readPump discards inbound frames and closes done when the peer goes away
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(MaxInboundMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, client *Client, done <-chan struct{}, now func() time.Time) {
	ticker := time.NewTicker(PingPeriod)
	defer ticker.Stop()

	_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
	if err := conn.WriteJSON(Message{ID: client.ID, Type: TypeConnected, Timestamp: now().Unix()}); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return

		case msg, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
