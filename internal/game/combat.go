package game

import (
	"math"
	"time"
)

// ResolveAttack resolves one melee swing. The cooldown is checked against
// the attacker's last accepted swing; a rejected swing changes nothing and
// returns ErrAttackCooldown. An accepted swing damages every living player
// within range of the attack point and appends a system chat line per hit.
// Hit defender ids are returned in no particular order.
func (w *World) ResolveAttack(attackerID int, dir Direction, now time.Time) ([]int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	attacker, ok := w.players[attackerID]
	if !ok {
		return nil, nil
	}

	if now.Sub(attacker.lastAttack) < w.cfg.AttackCooldown {
		return nil, ErrAttackCooldown
	}
	attacker.lastAttack = now

	ax, ay := w.attackPointLocked(attacker, dir)

	var hits []int
	for id, defender := range w.players {
		if id == attackerID || !defender.alive() {
			continue
		}
		if math.Hypot(defender.X-ax, defender.Y-ay) > w.cfg.AttackRange {
			continue
		}

		defender.Health -= w.cfg.AttackDamage
		if defender.Health < 0 {
			defender.Health = 0
		}
		hits = append(hits, id)

		w.chat.append(attacker.Name+" hit "+defender.Name+"!", true, now)
		w.log.Infow("hit landed",
			"attacker", attackerID, "defender", id, "health", defender.Health)
	}

	return hits, nil
}

// attackPointLocked computes where the swing lands: a fixed reach from the
// attacker's center along the attack direction. A "none" direction falls
// back to the attacker's facing; with no facing either, the point is the
// attacker's own center.
func (w *World) attackPointLocked(attacker *playerState, dir Direction) (float64, float64) {
	half := w.cfg.PlayerSize / 2
	if dir == DirectionNone {
		dir = attacker.facing
	}
	dx, dy := directionVector(dir)
	return attacker.X + half + dx*w.cfg.AttackReach,
		attacker.Y + half + dy*w.cfg.AttackReach
}
