package game

import "math"

// supportEpsilon is the tolerance used when checking whether a player is
// still resting on a surface after a horizontal move.
const supportEpsilon = 0.001

// jumpLocked applies the jump state machine for an up input. A grounded
// player gets the primary impulse and one double jump; an airborne player
// that is mid-jump may spend the double jump once. Any further up inputs
// before landing do nothing.
func (w *World) jumpLocked(state *playerState) {
	switch {
	case state.grounded:
		state.vy = -w.cfg.JumpSpeed
		state.grounded = false
		state.jumping = true
		state.doubleJump = true
	case state.jumping && state.doubleJump:
		state.vy = -w.cfg.JumpSpeed
		state.doubleJump = false
	}
}

// advancePlayersLocked runs one physics step for every registered player.
// Simulation is continuous: players advance whether or not they produced
// input this tick.
func (w *World) advancePlayersLocked() {
	for _, state := range w.players {
		w.stepPlayerLocked(state)
	}
}

// stepPlayerLocked integrates gravity and velocity, applies friction,
// resolves platform collisions, and clamps the result into the arena.
func (w *World) stepPlayerLocked(state *playerState) {
	cfg := w.cfg
	size := cfg.PlayerSize

	if !state.grounded {
		state.vy += cfg.Gravity
		if state.vy > cfg.MaxFallSpeed {
			state.vy = cfg.MaxFallSpeed
		}
	}

	oldX := state.X
	oldY := state.Y
	state.X += state.vx
	state.Y += state.vy

	state.vx *= cfg.Friction
	if math.Abs(state.vx) < cfg.MinSpeed {
		state.vx = 0
	}

	supported := false
	for _, plat := range cfg.Platforms {
		// Landing: the bottom edge crossed the platform top while falling
		// with horizontal overlap. A resting player re-satisfies this every
		// tick, which keeps it pinned without jitter.
		if state.vy >= 0 &&
			oldY+size <= plat.Y && state.Y+size >= plat.Y &&
			state.X+size > plat.X && state.X < plat.X+plat.Width {
			state.Y = plat.Y - size
			w.landLocked(state)
			supported = true
		}

		// Side blocking is evaluated independently: a player can be stopped
		// by one platform while landing on another in the same tick.
		if state.Y+size > plat.Y && state.Y < plat.Y+plat.Height {
			deltaX := state.X - oldX
			if deltaX > 0 && oldX+size <= plat.X && state.X+size > plat.X {
				state.X = plat.X - size
				state.vx = 0
			} else if deltaX < 0 && oldX >= plat.X+plat.Width && state.X < plat.X+plat.Width {
				state.X = plat.X + plat.Width
				state.vx = 0
			}
		}
	}

	// Arena-floor fallback: the player never falls out of the world even
	// with no platform beneath it.
	if state.Y+size >= cfg.ArenaHeight {
		state.Y = cfg.ArenaHeight - size
		w.landLocked(state)
		supported = true
	}

	// Walking off an edge removes support and starts a fall next tick.
	if state.grounded && !supported && !w.restingOnSurfaceLocked(state) {
		state.grounded = false
	}

	state.X = clamp(state.X, 0, cfg.ArenaWidth-size)
	state.Y = clamp(state.Y, 0, cfg.ArenaHeight-size)
}

// landLocked settles a player onto a surface: vertical motion stops, the
// jump flags reset, and the double jump is restored.
func (w *World) landLocked(state *playerState) {
	state.vy = 0
	state.grounded = true
	state.jumping = false
	state.doubleJump = true
}

// restingOnSurfaceLocked reports whether the player's bottom edge sits on a
// platform top or the arena floor.
func (w *World) restingOnSurfaceLocked(state *playerState) bool {
	size := w.cfg.PlayerSize
	bottom := state.Y + size
	if bottom >= w.cfg.ArenaHeight-supportEpsilon {
		return true
	}
	for _, plat := range w.cfg.Platforms {
		if math.Abs(bottom-plat.Y) <= supportEpsilon &&
			state.X+size > plat.X && state.X < plat.X+plat.Width {
			return true
		}
	}
	return false
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
