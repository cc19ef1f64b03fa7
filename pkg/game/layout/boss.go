package layout

import (
	"fmt"

	"go.uber.org/zap"

	"darkdepths/pkg/engine/dungeon"
)

// isolateBoss converts one placed room into the boss room and enforces a
// single entrance. Candidates are border rooms, preferring the one farthest
// from Start by straight-line grid distance; ties resolve to the first room
// in row-major order so the choice is deterministic.
func (l *Layout) isolateBoss() error {
	candidates := l.bossCandidates(true)
	if len(candidates) == 0 {
		// Degenerate grid with no border room: fall back to the farthest
		// room overall.
		candidates = l.bossCandidates(false)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("only the start room exists: %w", ErrInsufficientRooms)
	}

	boss := candidates[0]
	bestDist := l.squaredDistanceFromStart(boss)
	for _, r := range candidates[1:] {
		if d := l.squaredDistanceFromStart(r); d > bestDist {
			boss, bestDist = r, d
		}
	}

	boss.Category = dungeon.CategoryBoss
	l.boss = boss

	type adjacency struct {
		dir  dungeon.Direction
		room *dungeon.Room
	}
	var adjacent []adjacency
	for _, d := range dungeon.AllDirections() {
		if nb := l.Grid.Neighbor(boss, d); nb != nil {
			adjacent = append(adjacent, adjacency{dir: d, room: nb})
		}
	}

	if len(adjacent) == 0 {
		for _, d := range dungeon.AllDirections() {
			boss.SetExit(d, false)
		}
		l.log.Warn("boss room has no adjacent room, leaving it sealed",
			zap.Int("row", boss.Coord.Row),
			zap.Int("col", boss.Coord.Col))
		return nil
	}

	entrance := adjacent[l.rng.Intn(len(adjacent))]
	for _, a := range adjacent {
		if a == entrance {
			boss.SetExit(a.dir, true)
			a.room.SetExit(a.dir.Opposite(), true)
			continue
		}
		// Close both sides and record the edge as sealed so no later
		// repair pass reopens it.
		boss.SetExit(a.dir, false)
		a.room.SetExit(a.dir.Opposite(), false)
		l.sealed.Put(newEdge(boss.Coord, a.room.Coord))
	}

	l.log.Debug("boss isolated",
		zap.Int("row", boss.Coord.Row),
		zap.Int("col", boss.Coord.Col),
		zap.String("entrance", entrance.dir.String()))
	return nil
}

// bossCandidates returns the non-start rooms eligible for boss conversion,
// in row-major order. With borderOnly set, only rooms on a grid extreme
// qualify.
func (l *Layout) bossCandidates(borderOnly bool) []*dungeon.Room {
	var out []*dungeon.Room
	l.Grid.ForEachRoom(func(r *dungeon.Room) {
		if r.Category == dungeon.CategoryStart {
			return
		}
		if borderOnly && !l.Grid.OnBorder(r.Coord) {
			return
		}
		out = append(out, r)
	})
	return out
}

func (l *Layout) squaredDistanceFromStart(r *dungeon.Room) int {
	dr := r.Coord.Row - l.start.Coord.Row
	dc := r.Coord.Col - l.start.Coord.Col
	return dr*dr + dc*dc
}
