package net

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// LAN deployment: browser clients connect from arbitrary origins.
		return true
	},
}

// NewGatewayHandler builds the HTTP mux for the WebSocket gateway and the
// operational endpoints. WebSocket clients speak the exact same envelope
// protocol as TCP clients, one envelope per text frame.
func NewGatewayHandler(world *game.World, log *zap.SugaredLogger, startedAt time.Time) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		payload := struct {
			Status        string `json:"status"`
			ServerTime    int64  `json:"serverTime"`
			UptimeSeconds int64  `json:"uptimeSeconds"`
			TickRate      int    `json:"tickRate"`
			Tick          uint64 `json:"tick"`
			PlayerCount   int    `json:"playerCount"`
			Players       []int  `json:"players"`
		}{
			Status:        "ok",
			ServerTime:    time.Now().UnixMilli(),
			UptimeSeconds: int64(time.Since(startedAt).Seconds()),
			TickRate:      world.Config().TickRate,
			Tick:          world.TickCount(),
			PlayerCount:   world.PlayerCount(),
			Players:       world.PlayerIDs(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnw("websocket upgrade failed", "error", err)
			return
		}
		s := newSession(newWSTransport(conn), world, log)
		s.run()
	})

	return mux
}

// wsTransport frames messages as WebSocket text frames.
type wsTransport struct {
	conn *websocket.Conn
}

func newWSTransport(conn *websocket.Conn) *wsTransport {
	return &wsTransport{conn: conn}
}

func (t *wsTransport) ReadMessage() ([]byte, error) {
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *wsTransport) WriteMessage(data []byte) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}

func (t *wsTransport) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}
