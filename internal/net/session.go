// Package net connects transports to the game world: it owns the TCP
// listener, the WebSocket gateway, and the per-connection sessions that
// decode envelopes and dispatch them.
package net

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/game"
	"github.com/Bash-the-Kernel/Lan-Lords/internal/protocol"
)

// writeWait bounds how long a single outbound write may take before the
// session is considered dead.
const writeWait = 10 * time.Second

// sendQueueSize is the per-session outbound buffer. When it fills, state
// frames are shed for that session rather than stalling the tick.
const sendQueueSize = 64

var errSessionClosed = errors.New("session closed")

// transport is one message-oriented connection. Implementations handle the
// framing (newline-delimited lines over TCP, text frames over WebSocket) so
// the session logic stays transport-agnostic.
type transport interface {
	// ReadMessage blocks for the next complete inbound message.
	ReadMessage() ([]byte, error)
	// WriteMessage sends one complete message.
	WriteMessage(data []byte) error
	Close() error
	RemoteAddr() string
}

// session is one connection's server-side representation. Reads happen on
// the session's own goroutine; writes drain from a buffered queue on a
// dedicated writer goroutine so the tick loop never blocks on a socket.
type session struct {
	connID uuid.UUID
	world  *game.World
	log    *zap.SugaredLogger
	tr     transport

	send chan []byte
	done chan struct{}

	closeOnce sync.Once

	// playerID stays zero until a connect message is accepted.
	playerID atomic.Int64
}

func newSession(tr transport, world *game.World, log *zap.SugaredLogger) *session {
	id := uuid.New()
	return &session{
		connID: id,
		world:  world,
		log:    log.With("conn", id.String(), "remote", tr.RemoteAddr()),
		tr:     tr,
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}
}

// run services the connection until it dies, then tears the session down.
func (s *session) run() {
	s.log.Debugw("connection accepted")
	go s.writePump()

	for {
		line, err := s.tr.ReadMessage()
		if err != nil {
			break
		}
		s.handleLine(line)
	}

	s.teardown()
}

// Send queues one outbound message. It never blocks: a closed session
// reports an error and a full queue sheds the message so one slow client
// cannot hold up a broadcast.
func (s *session) Send(data []byte) error {
	select {
	case <-s.done:
		return errSessionClosed
	default:
	}

	select {
	case s.send <- data:
		return nil
	default:
		s.log.Debugw("send queue full, shedding frame")
		return nil
	}
}

// Close shuts the transport and stops the writer. Safe to call from any
// goroutine, any number of times.
func (s *session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.tr.Close()
	})
}

// teardown runs when the read loop exits: a joined session is unregistered
// (which broadcasts player_left and closes the client), an unjoined one is
// simply closed.
func (s *session) teardown() {
	if id := s.playerID.Load(); id != 0 {
		s.world.Unregister(int(id))
	}
	s.Close()
	s.log.Debugw("connection closed")
}

// writePump drains the send queue onto the transport. A failed write kills
// the whole session: the transport close unblocks the read loop, which
// finishes the teardown.
func (s *session) writePump() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			if err := s.tr.WriteMessage(data); err != nil {
				s.log.Debugw("write failed", "error", err)
				s.Close()
				return
			}
		}
	}
}

// handleLine decodes one inbound line and dispatches it. A malformed line is
// logged and skipped; it never affects subsequent lines or other sessions.
func (s *session) handleLine(line []byte) {
	env, err := protocol.Decode(line)
	if err != nil {
		s.log.Warnw("discarding malformed message", "error", err)
		return
	}
	s.dispatch(env)
}

// dispatch routes a decoded envelope into the world. Every post-connect
// message acts on the session's own assigned id; payload player_id fields
// are not trusted. Messages arriving before connect are ignored.
func (s *session) dispatch(env protocol.Envelope) {
	if env.Type == protocol.KindConnect {
		s.handleConnect(env)
		return
	}

	id := int(s.playerID.Load())
	if id == 0 {
		s.log.Debugw("ignoring message before connect", "type", env.Type)
		return
	}

	switch env.Type {
	case protocol.KindPlayerInput:
		var d protocol.PlayerInputData
		if err := env.DecodeData(&d); err != nil {
			s.log.Warnw("discarding malformed message", "error", err)
			return
		}
		action, ok := game.ParseAction(d.Action)
		if !ok {
			s.log.Warnw("discarding input with unknown action", "action", d.Action)
			return
		}
		dir, ok := game.ParseDirection(d.Direction)
		if !ok {
			s.log.Warnw("discarding input with unknown direction", "direction", d.Direction)
			return
		}
		if action == game.ActionAttack {
			s.resolveAttack(id, dir)
			return
		}
		s.world.ApplyInput(id, action, dir)

	case protocol.KindAttack:
		var d protocol.AttackData
		if err := env.DecodeData(&d); err != nil {
			s.log.Warnw("discarding malformed message", "error", err)
			return
		}
		dir, ok := game.ParseDirection(d.Direction)
		if !ok {
			s.log.Warnw("discarding attack with unknown direction", "direction", d.Direction)
			return
		}
		s.resolveAttack(id, dir)

	case protocol.KindChatMessage:
		var d protocol.ChatMessageData
		if err := env.DecodeData(&d); err != nil {
			s.log.Warnw("discarding malformed message", "error", err)
			return
		}
		s.world.AppendChat(id, d.Text)

	case protocol.KindRequestState:
		s.world.SendStateTo(id)

	case protocol.KindDisconnect:
		s.Close()

	default:
		// Server-to-client kinds echoed back by a confused client.
		s.log.Debugw("ignoring inbound message", "type", env.Type)
	}
}

// handleConnect admits the session into the world. A full server closes the
// connection without assigning an id; a repeated connect is ignored.
func (s *session) handleConnect(env protocol.Envelope) {
	if s.playerID.Load() != 0 {
		s.log.Debugw("ignoring repeated connect")
		return
	}

	var d protocol.ConnectData
	if err := env.DecodeData(&d); err != nil {
		s.log.Warnw("discarding malformed message", "error", err)
		return
	}

	id, err := s.world.Register(s, d.Name)
	if err != nil {
		s.log.Infow("rejecting connection", "error", err)
		s.Close()
		return
	}
	s.playerID.Store(int64(id))
}

// resolveAttack feeds the combat resolver; a cooldown rejection is expected
// traffic, not an error worth surfacing.
func (s *session) resolveAttack(id int, dir game.Direction) {
	if _, err := s.world.ResolveAttack(id, dir, time.Now()); err != nil &&
		!errors.Is(err, game.ErrAttackCooldown) {
		s.log.Warnw("attack failed", "error", err)
	}
}
