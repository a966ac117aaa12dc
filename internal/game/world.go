// Package game holds the authoritative arena state: the player registry,
// platformer physics, combat resolution, the chat log, and the tick loop
// that advances and broadcasts all of it.
package game

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/protocol"
)

// ErrServerFull is returned by Register when the arena already holds the
// maximum number of players. The connection never receives an id.
var ErrServerFull = errors.New("server full")

// ErrAttackCooldown is returned by ResolveAttack when the attacker swung
// again before the cooldown elapsed. The attack has no effect.
var ErrAttackCooldown = errors.New("attack on cooldown")

// Client is the outbound half of a connected session. Send must not block
// the caller: implementations queue and let a dedicated writer drain.
type Client interface {
	Send(data []byte) error
	Close()
}

// World owns every registered player and the chat log. A single mutex guards
// all of it; physics, combat, and chat all mutate under the same lock.
type World struct {
	cfg Config
	log *zap.SugaredLogger

	mu      sync.Mutex
	players map[int]*playerState
	chat    *chatLog

	nextID atomic.Int64
	tick   atomic.Uint64
}

// NewWorld creates an empty world with the given ruleset.
func NewWorld(cfg Config, log *zap.SugaredLogger) *World {
	return &World{
		cfg:     cfg,
		log:     log,
		players: make(map[int]*playerState),
		chat:    newChatLog(cfg.ChatHistoryLimit),
	}
}

// Config returns the ruleset the world was built with.
func (w *World) Config() Config {
	return w.cfg
}

// Register admits a new player, assigns the next id, and places it at a
// spawn point. The capacity check and the insert are one atomic step.
// On success the new client receives its player_joined ack plus an initial
// game_state, and every other session is notified immediately.
func (w *World) Register(client Client, name string) (int, error) {
	if name == "" {
		name = defaultPlayerName
	}

	now := time.Now()

	w.mu.Lock()
	if len(w.players) >= w.cfg.MaxPlayers {
		w.mu.Unlock()
		return 0, ErrServerFull
	}

	id := int(w.nextID.Add(1))
	spawn := w.cfg.SpawnPoints[(id-1)%len(w.cfg.SpawnPoints)]

	state := &playerState{
		Player: protocol.Player{
			ID:        id,
			Name:      name,
			X:         spawn.X,
			Y:         spawn.Y,
			Health:    w.cfg.MaxHealth,
			MaxHealth: w.cfg.MaxHealth,
		},
		facing: DirectionNone,
		client: client,
	}
	w.players[id] = state

	others := w.clientsLocked(id)
	snap := w.snapshotLocked(now)
	w.mu.Unlock()

	joined, err := protocol.Encode(protocol.KindPlayerJoined, protocol.PlayerJoinedData{PlayerID: id, Name: name})
	if err != nil {
		w.log.Errorw("encode player_joined", "error", err)
	} else {
		_ = client.Send(joined)
		for _, other := range others {
			_ = other.Send(joined)
		}
	}

	if data, err := protocol.Encode(protocol.KindGameState, snap); err == nil {
		_ = client.Send(data)
	}

	w.log.Infow("player joined", "id", id, "name", name, "spawn_x", spawn.X, "spawn_y", spawn.Y)
	return id, nil
}

// Unregister removes a player, closes its client, and notifies the remaining
// sessions. Calling it for an id that already left is a no-op, so the
// concurrent teardown paths (read error, write error, shutdown) can all
// call it safely.
func (w *World) Unregister(id int) {
	w.mu.Lock()
	state, ok := w.players[id]
	if !ok {
		w.mu.Unlock()
		return
	}
	delete(w.players, id)
	remaining := w.clientsLocked(0)
	w.mu.Unlock()

	state.client.Close()

	if left, err := protocol.Encode(protocol.KindPlayerLeft, protocol.PlayerLeftData{PlayerID: id}); err == nil {
		for _, client := range remaining {
			_ = client.Send(left)
		}
	}

	w.log.Infow("player left", "id", id, "name", state.Name)
}

// Find returns a copy of the player's public state. Absence is a normal
// outcome, not an error.
func (w *World) Find(id int) (protocol.Player, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	state, ok := w.players[id]
	if !ok {
		return protocol.Player{}, false
	}
	return state.snapshot(), true
}

// PlayerCount reports how many players are registered.
func (w *World) PlayerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.players)
}

// ApplyInput interprets one player_input message. Unknown player ids are
// ignored: the sender may have been torn down while the message was in
// flight.
func (w *World) ApplyInput(id int, action Action, dir Direction) {
	w.mu.Lock()
	defer w.mu.Unlock()

	state, ok := w.players[id]
	if !ok {
		return
	}

	state.facing = dir
	state.IsCrouching = dir == DirectionDown

	switch action {
	case ActionMove:
		switch dir {
		case DirectionLeft:
			state.vx = -w.cfg.MoveSpeed
		case DirectionRight:
			state.vx = w.cfg.MoveSpeed
		case DirectionUp:
			w.jumpLocked(state)
		}
	case ActionStop:
		state.vx = 0
	}
}

// AppendChat records a user chat line attributed to the given player.
func (w *World) AppendChat(id int, text string) {
	if text == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	state, ok := w.players[id]
	if !ok {
		return
	}
	w.chat.append(state.Name+": "+text, false, time.Now())
}

// SendStateTo delivers an immediate full snapshot to one player, outside the
// tick cadence. Used to recover a client that missed the initial broadcast.
func (w *World) SendStateTo(id int) {
	now := time.Now()

	w.mu.Lock()
	state, ok := w.players[id]
	var snap protocol.GameStateData
	if ok {
		snap = w.snapshotLocked(now)
	}
	w.mu.Unlock()

	if !ok {
		return
	}
	if data, err := protocol.Encode(protocol.KindGameState, snap); err == nil {
		_ = state.client.Send(data)
	}
}

// snapshotLocked builds the full world snapshot. Players are ordered by id
// so consecutive snapshots are stable.
func (w *World) snapshotLocked(now time.Time) protocol.GameStateData {
	players := make([]protocol.Player, 0, len(w.players))
	for _, state := range w.players {
		players = append(players, state.snapshot())
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })

	return protocol.GameStateData{
		Players:   players,
		Chat:      w.chat.tail(w.cfg.ChatTailSize),
		Timestamp: now.UnixMilli(),
	}
}

// clientsLocked copies the client set so sends can happen after the lock is
// released. A non-zero exclude id leaves that player out.
func (w *World) clientsLocked(exclude int) map[int]Client {
	clients := make(map[int]Client, len(w.players))
	for id, state := range w.players {
		if id == exclude {
			continue
		}
		clients[id] = state.client
	}
	return clients
}
