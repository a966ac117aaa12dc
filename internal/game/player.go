package game

import (
	"time"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/protocol"
)

// Direction is a movement or facing direction as carried on the wire.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionNone  Direction = "none"
)

// ParseDirection validates a direction string received from a client.
func ParseDirection(value string) (Direction, bool) {
	switch Direction(value) {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight, DirectionNone:
		return Direction(value), true
	default:
		return "", false
	}
}

// directionVector returns a unit vector for the given direction. Screen
// coordinates: positive y points down.
func directionVector(dir Direction) (float64, float64) {
	switch dir {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Action is the verb of a player_input message.
type Action string

const (
	ActionMove   Action = "move"
	ActionStop   Action = "stop"
	ActionAttack Action = "attack"
	ActionNone   Action = "none"
)

// ParseAction validates an action string received from a client.
func ParseAction(value string) (Action, bool) {
	switch Action(value) {
	case ActionMove, ActionStop, ActionAttack, ActionNone:
		return Action(value), true
	default:
		return "", false
	}
}

// defaultPlayerName is used when a connect payload omits the name.
const defaultPlayerName = "Player"

// playerState is the authoritative per-player record. The embedded wire
// struct holds the public fields; everything else is server-side only.
// All fields are guarded by the owning World's mutex.
type playerState struct {
	protocol.Player

	facing Direction

	vx float64
	vy float64

	grounded   bool
	jumping    bool
	doubleJump bool // one extra airborne impulse still available
	lastAttack time.Time
	client     Client
}

// snapshot copies the public fields for broadcasting.
func (s *playerState) snapshot() protocol.Player {
	p := s.Player
	p.Direction = string(s.facing)
	return p
}

// alive reports whether the player can still be hit. Zero-health players
// stay registered but are inert for combat.
func (s *playerState) alive() bool {
	return s.Health > 0
}
