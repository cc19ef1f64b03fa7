package layout

import (
	"fmt"

	"go.uber.org/zap"

	"darkdepths/pkg/engine/dungeon"
)

// grow runs the randomized room walk: starting from the Start room it keeps
// attaching fight rooms to the current room's free neighbors until the
// target count is placed or the attempt budget runs out. Every random draw
// comes from the layout's seeded rng.
func (l *Layout) grow() error {
	target := l.params.TargetFightRooms
	budget := 3 * target

	current := l.start
	placed := []*dungeon.Room{l.start}
	fightRooms := 0

	for attempts := 0; fightRooms < target && attempts < budget; attempts++ {
		dirs := l.availableDirections(current)
		if len(dirs) == 0 {
			// Dead end. Relocating costs an attempt but no room budget.
			current = l.relocate(current, placed)
			continue
		}

		l.rng.Shuffle(len(dirs), func(i, j int) {
			dirs[i], dirs[j] = dirs[j], dirs[i]
		})

		var newRoom *dungeon.Room
		for _, d := range dirs {
			c := current.Coord.Neighbor(d)
			r, err := l.Grid.Place(c, dungeon.CategoryNormal)
			if err != nil {
				l.log.Debug("placement attempt failed",
					zap.Int("row", c.Row),
					zap.Int("col", c.Col),
					zap.Error(err))
				continue
			}
			current.SetExit(d, true)
			r.SetExit(d.Opposite(), true)
			newRoom = r
			break
		}
		if newRoom == nil {
			continue
		}

		placed = append(placed, newRoom)
		fightRooms++

		// Move the walk head. Usually it follows the new room; a 30%
		// band jumps to a uniformly random placed room instead.
		p := l.rng.Float64()
		switch {
		case p < 0.40:
			current = newRoom
		case p < 0.70:
			current = placed[l.rng.Intn(len(placed))]
		}
	}

	if fightRooms < target {
		return fmt.Errorf("placed %d of %d fight rooms: %w", fightRooms, target, ErrExhaustedAttempts)
	}
	return nil
}

// availableDirections returns the directions from r whose neighboring cell
// is in bounds and still unoccupied.
func (l *Layout) availableDirections(r *dungeon.Room) []dungeon.Direction {
	var dirs []dungeon.Direction
	for _, d := range dungeon.AllDirections() {
		if l.Grid.IsAvailable(r.Coord.Neighbor(d)) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// relocate picks the next walk head for a dead-ended room: a random occupied
// grid neighbor when one exists, otherwise a uniformly random placed room.
func (l *Layout) relocate(current *dungeon.Room, placed []*dungeon.Room) *dungeon.Room {
	var adjacent []*dungeon.Room
	for _, d := range dungeon.AllDirections() {
		if nb := l.Grid.Neighbor(current, d); nb != nil {
			adjacent = append(adjacent, nb)
		}
	}
	if len(adjacent) > 0 {
		return adjacent[l.rng.Intn(len(adjacent))]
	}
	return placed[l.rng.Intn(len(placed))]
}
