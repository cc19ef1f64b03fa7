package layout

import (
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"darkdepths/pkg/engine/dungeon"
)

// ReachableFromStart returns the coordinates reachable from Start by
// breadth-first search over symmetric true-exit edges. The boss room is
// never traversed into; its access is gated, not part of the general
// reachability guarantee.
func (l *Layout) ReachableFromStart() mapset.Set[dungeon.Coord] {
	visited := mapset.New[dungeon.Coord]()
	if l.start == nil {
		return visited
	}

	visited.Put(l.start.Coord)
	queue := []*dungeon.Room{l.start}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		for _, d := range dungeon.AllDirections() {
			if !r.HasExit(d) {
				continue
			}
			nb := l.Grid.Neighbor(r, d)
			if nb == nil || !nb.HasExit(d.Opposite()) {
				continue
			}
			if nb.Category == dungeon.CategoryBoss || visited.Has(nb.Coord) {
				continue
			}
			visited.Put(nb.Coord)
			queue = append(queue, nb)
		}
	}
	return visited
}

// repair patches every non-boss room left unreachable by growth or boss
// sealing: the first visited grid neighbor gets a forced bidirectional exit.
// Patched rooms join the visited set immediately so chains of unreachable
// rooms resolve in one row-major pass.
func (l *Layout) repair() {
	visited := l.ReachableFromStart()

	l.Grid.ForEachRoom(func(r *dungeon.Room) {
		if r.Category == dungeon.CategoryBoss || visited.Has(r.Coord) {
			return
		}

		patched := false
		for _, d := range dungeon.AllDirections() {
			nb := l.Grid.Neighbor(r, d)
			if nb == nil || nb.Category == dungeon.CategoryBoss || !visited.Has(nb.Coord) {
				continue
			}
			if l.sealed.Has(newEdge(r.Coord, nb.Coord)) {
				continue
			}

			r.SetExit(d, true)
			nb.SetExit(d.Opposite(), true)
			visited.Put(r.Coord)
			patched = true

			l.log.Info("patched unreachable room",
				zap.Int("row", r.Coord.Row),
				zap.Int("col", r.Coord.Col),
				zap.String("toward", d.String()))
			break
		}

		if !patched {
			l.log.Warn("room unreachable and unpatchable",
				zap.Int("row", r.Coord.Row),
				zap.Int("col", r.Coord.Col),
				zap.Error(ErrRepairImpossible))
		}
	})

	final := l.ReachableFromStart()
	total := 0
	l.Grid.ForEachRoom(func(r *dungeon.Room) {
		if r.Category != dungeon.CategoryBoss {
			total++
		}
	})
	l.log.Info("connectivity check complete",
		zap.Int("reachable", final.Size()),
		zap.Int("rooms", total))
}
