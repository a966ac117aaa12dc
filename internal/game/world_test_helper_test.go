package game

import (
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/protocol"
)

// recordClient captures everything sent to a session so tests can assert on
// the broadcast traffic. failSends makes Send report a dead session.
type recordClient struct {
	mu        sync.Mutex
	sent      [][]byte
	closed    bool
	failSends bool
}

func (c *recordClient) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSends {
		return errSendFailed
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	c.sent = append(c.sent, buf)
	return nil
}

func (c *recordClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *recordClient) messages(t *testing.T) []protocol.Envelope {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	envs := make([]protocol.Envelope, 0, len(c.sent))
	for _, line := range c.sent {
		env, err := protocol.Decode(line)
		if err != nil {
			t.Fatalf("client received undecodable line %q: %v", line, err)
		}
		envs = append(envs, env)
	}
	return envs
}

func (c *recordClient) lastGameState(t *testing.T) (protocol.GameStateData, bool) {
	t.Helper()

	envs := c.messages(t)
	for i := len(envs) - 1; i >= 0; i-- {
		if envs[i].Type == protocol.KindGameState {
			var snap protocol.GameStateData
			if err := envs[i].DecodeData(&snap); err != nil {
				t.Fatalf("failed to decode game_state: %v", err)
			}
			return snap, true
		}
	}
	return protocol.GameStateData{}, false
}

var errSendFailed = &sendError{}

type sendError struct{}

func (*sendError) Error() string { return "send failed" }

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return NewWorld(DefaultConfig(), zap.NewNop().Sugar())
}

// joinTestPlayer registers a player backed by a recording client.
func joinTestPlayer(t *testing.T, w *World, name string) (int, *recordClient) {
	t.Helper()
	client := &recordClient{}
	id, err := w.Register(client, name)
	if err != nil {
		t.Fatalf("Register(%q) returned error: %v", name, err)
	}
	return id, client
}

// settleOnFloor parks a player on the arena floor with physics flags in the
// resting state, so movement tests start from solid ground.
func settleOnFloor(w *World, id int, x float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := w.players[id]
	state.X = x
	state.Y = w.cfg.ArenaHeight - w.cfg.PlayerSize
	state.vx = 0
	state.vy = 0
	state.grounded = true
	state.jumping = false
	state.doubleJump = true
}

// place positions a player mid-air with the given velocity.
func place(w *World, id int, x, y, vx, vy float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := w.players[id]
	state.X = x
	state.Y = y
	state.vx = vx
	state.vy = vy
	state.grounded = false
}

func playerPhysics(w *World, id int) (x, y, vx, vy float64, grounded, jumping, doubleJump bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := w.players[id]
	return state.X, state.Y, state.vx, state.vy, state.grounded, state.jumping, state.doubleJump
}

// stepPhysics advances physics only, without broadcasting.
func stepPhysics(w *World, ticks int) {
	for i := 0; i < ticks; i++ {
		w.mu.Lock()
		w.advancePlayersLocked()
		w.mu.Unlock()
	}
}
