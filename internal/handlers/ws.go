package handlers

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gignest/gignest_backend/internal/realtime"
	"github.com/gignest/gignest_backend/internal/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// WebSocketHandler upgrades an authenticated connection and attaches it to
// the hub. Auth rides in a "token" query parameter because browsers cannot
// set headers on WebSocket upgrades.
func WebSocketHandler(hub *realtime.Hub, jwtSecret string, log *zap.Logger) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		token := conn.Query("token")
		claims, err := utils.ParseJWT(jwtSecret, token)
		if err != nil {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unauthorized"))
			conn.Close()
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			conn.Close()
			return
		}

		client := &realtime.Client{
			ID:     uuid.New().String(),
			UserID: userID,
			Conn:   realtime.NewWebSocketConn(conn),
			Send:   make(chan []byte, 64),
		}
		hub.RegisterClient(client)

		go writePump(client, log)
		readPump(hub, client)
	}
}

// readPump drains inbound frames; the protocol is server-push only, so
// everything except control frames is discarded.
func readPump(hub *realtime.Hub, client *realtime.Client) {
	conn := client.Conn.Conn
	defer func() {
		hub.UnregisterClient(client)
		conn.Close()
	}()

	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(client *realtime.Client, log *zap.Logger) {
	conn := client.Conn.Conn
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, open := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !open {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Debug("realtime write", zap.Error(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
