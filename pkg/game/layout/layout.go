// Package layout builds a dungeon floor: randomized room-graph growth on a
// fixed grid, boss isolation, connectivity repair and tile realization.
package layout

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"darkdepths/pkg/engine/dungeon"
	"darkdepths/pkg/engine/tiles"
)

// Degradation kinds surfaced during generation. All of them are downgraded
// to warnings by the pipeline; a floor is always produced.
var (
	// ErrExhaustedAttempts reports that the random walk ran out of attempt
	// budget before placing the target room count.
	ErrExhaustedAttempts = errors.New("exhausted placement attempts")

	// ErrInsufficientRooms reports that no room besides Start existed when
	// boss isolation ran.
	ErrInsufficientRooms = errors.New("insufficient rooms for boss isolation")

	// ErrRepairImpossible reports a room left unreachable after repair.
	ErrRepairImpossible = errors.New("room unreachable after repair")
)

// Params are the generation-time knobs for one floor.
type Params struct {
	Rows int
	Cols int

	InteriorWidth  int
	InteriorHeight int

	// World-space distance between the anchors of grid-adjacent rooms.
	SpacingX int
	SpacingY int

	TargetFightRooms int
}

// DefaultParams returns the standard floor configuration.
func DefaultParams() Params {
	return Params{
		Rows:             5,
		Cols:             5,
		InteriorWidth:    14,
		InteriorHeight:   10,
		SpacingX:         16,
		SpacingY:         12,
		TargetFightRooms: 8,
	}
}

func (p Params) validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("grid must be positive, got %dx%d", p.Rows, p.Cols)
	}
	if p.InteriorWidth <= 1 || p.InteriorHeight <= 1 {
		return fmt.Errorf("interior size must exceed 1x1, got %dx%d", p.InteriorWidth, p.InteriorHeight)
	}
	if p.TargetFightRooms < 0 {
		return fmt.Errorf("target fight room count must not be negative, got %d", p.TargetFightRooms)
	}
	return nil
}

// Edge identifies an unordered pair of grid-adjacent cells.
type Edge struct {
	A dungeon.Coord
	B dungeon.Coord
}

// newEdge normalizes the pair so (a,b) and (b,a) map to the same Edge.
func newEdge(a, b dungeon.Coord) Edge {
	if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Layout is the finished aggregate for one floor: the grid plus the
// distinguished rooms. It is created fresh per floor and never reused.
type Layout struct {
	Grid *dungeon.Grid

	params Params
	seed   int64
	rng    *rand.Rand
	log    *zap.Logger
	layer  *tiles.Layer

	start *dungeon.Room
	boss  *dungeon.Room
	item  *dungeon.Room

	// Edges closed by boss isolation. Permanent: the repairer must never
	// reopen one of these.
	sealed mapset.Set[Edge]
}

// Generate runs the full pipeline for one floor. Degraded outcomes (partial
// room set, missing boss, unreachable room) are logged and the layout is
// still returned; only invalid parameters produce an error.
func Generate(p Params, seed int64, layer *tiles.Layer, log *zap.Logger) (*Layout, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("generate layout: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	grid, err := dungeon.NewGrid(p.Rows, p.Cols)
	if err != nil {
		return nil, fmt.Errorf("generate layout: %w", err)
	}

	l := &Layout{
		Grid:   grid,
		params: p,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
		log:    log,
		layer:  layer,
		sealed: mapset.New[Edge](),
	}

	start, err := grid.Place(grid.Center(), dungeon.CategoryStart)
	if err != nil {
		return nil, fmt.Errorf("place start room: %w", err)
	}
	l.start = start

	if err := l.grow(); err != nil {
		log.Warn("room growth fell short of target",
			zap.Int("placed", grid.OccupiedCount()-1),
			zap.Int("target", p.TargetFightRooms),
			zap.Error(err))
	}
	l.connectStart()

	if err := l.isolateBoss(); err != nil {
		log.Warn("boss isolation degraded", zap.Error(err))
	}
	l.repair()
	l.chooseItemRoom()
	l.realize()

	log.Info("layout generated",
		zap.Int64("seed", seed),
		zap.Int("rooms", grid.OccupiedCount()),
		zap.Bool("boss", l.boss != nil),
		zap.Bool("item", l.item != nil))
	return l, nil
}

// connectStart opens bidirectional exits between Start and every occupied
// neighbor. It runs after growth and before boss isolation, so sealed edges
// can never be reopened here.
func (l *Layout) connectStart() {
	for _, d := range dungeon.AllDirections() {
		nb := l.Grid.Neighbor(l.start, d)
		if nb == nil {
			continue
		}
		l.start.SetExit(d, true)
		nb.SetExit(d.Opposite(), true)
	}
}

// chooseItemRoom promotes the Normal room farthest from Start, by Manhattan
// grid distance, to the Item category. Ties resolve to the first room in
// row-major order. With no Normal rooms the floor simply has no item room.
func (l *Layout) chooseItemRoom() {
	var best *dungeon.Room
	bestDist := -1
	l.Grid.ForEachRoom(func(r *dungeon.Room) {
		if r.Category != dungeon.CategoryNormal {
			return
		}
		dr := r.Coord.Row - l.start.Coord.Row
		dc := r.Coord.Col - l.start.Coord.Col
		if dr < 0 {
			dr = -dr
		}
		if dc < 0 {
			dc = -dc
		}
		if dr+dc > bestDist {
			best, bestDist = r, dr+dc
		}
	})
	if best == nil {
		return
	}
	best.Category = dungeon.CategoryItem
	l.item = best
}

// realize compiles and writes every room's tiles to the shared layer.
// A layout without a layer is valid for headless tests; realization is
// skipped with a warning.
func (l *Layout) realize() {
	if l.layer == nil {
		l.log.Warn("no tile layer attached, skipping realization")
		return
	}
	l.Grid.ForEachRoom(func(r *dungeon.Room) {
		l.layer.Realize(r, l.params.InteriorWidth, l.params.InteriorHeight, l.params.SpacingX, l.params.SpacingY)
	})
}

// StartRoom returns the start room.
func (l *Layout) StartRoom() *dungeon.Room {
	return l.start
}

// BossRoom returns the boss room, or nil when isolation was skipped.
func (l *Layout) BossRoom() *dungeon.Room {
	return l.boss
}

// ItemRoom returns the item room, or nil when none was assigned.
func (l *Layout) ItemRoom() *dungeon.Room {
	return l.item
}

// RoomAt returns the room at the given coordinate, or nil.
func (l *Layout) RoomAt(c dungeon.Coord) *dungeon.Room {
	return l.Grid.RoomAt(c)
}

// AllRooms returns every room in row-major order.
func (l *Layout) AllRooms() []*dungeon.Room {
	return l.Grid.Rooms()
}

// NormalRooms returns the rooms that carry no distinguished category.
func (l *Layout) NormalRooms() []*dungeon.Room {
	var out []*dungeon.Room
	l.Grid.ForEachRoom(func(r *dungeon.Room) {
		if r.Category == dungeon.CategoryNormal {
			out = append(out, r)
		}
	})
	return out
}

// SealedEdge reports whether the edge between two cells was closed by boss
// isolation.
func (l *Layout) SealedEdge(a, b dungeon.Coord) bool {
	return l.sealed.Has(newEdge(a, b))
}

// Params returns the parameters the layout was generated with.
func (l *Layout) Params() Params {
	return l.params
}

// Seed returns the seed the layout was generated with.
func (l *Layout) Seed() int64 {
	return l.seed
}

// Layer returns the tile layer the layout was realized into, or nil.
func (l *Layout) Layer() *tiles.Layer {
	return l.layer
}

// Clear tears the layout down: every room's tiles are removed from the
// shared layer. The layout must not be used afterward.
func (l *Layout) Clear() {
	if l.layer == nil {
		return
	}
	l.Grid.ForEachRoom(func(r *dungeon.Room) {
		l.layer.ClearRoom(r, l.params.InteriorWidth, l.params.InteriorHeight)
	})
}
