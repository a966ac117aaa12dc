package game

import (
	"sort"
	"time"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/protocol"
)

// Run drives the fixed-rate tick loop until stop closes. Each tick advances
// physics for every player and fans the resulting snapshot out to every
// session.
func (w *World) Run(stop <-chan struct{}) {
	interval := time.Second / time.Duration(w.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			w.Step(now)
		}
	}
}

// Step performs one tick: physics advance and snapshot under the lock, then
// the fan-out outside it so no send can stall the simulation. Sessions whose
// send fails are unregistered after the fan-out completes; the registry is
// never mutated mid-iteration.
func (w *World) Step(now time.Time) {
	w.mu.Lock()
	w.advancePlayersLocked()
	snap := w.snapshotLocked(now)
	clients := w.clientsLocked(0)
	w.mu.Unlock()

	w.tick.Add(1)

	data, err := protocol.Encode(protocol.KindGameState, snap)
	if err != nil {
		w.log.Errorw("encode game_state", "error", err)
		return
	}

	var failed []int
	for id, client := range clients {
		if err := client.Send(data); err != nil {
			w.log.Debugw("dropping session after failed send", "id", id, "error", err)
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		w.Unregister(id)
	}
}

// TickCount reports how many ticks have run since startup.
func (w *World) TickCount() uint64 {
	return w.tick.Load()
}

// PlayerIDs returns the registered ids in ascending order, for diagnostics.
func (w *World) PlayerIDs() []int {
	w.mu.Lock()
	ids := make([]int, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	w.mu.Unlock()

	sort.Ints(ids)
	return ids
}
