package dungeon

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Placement failure kinds. Both are caller logic errors and recoverable:
// the grid is left untouched and the caller retries or skips.
var (
	// ErrOutOfBounds reports a coordinate outside [0,rows)x[0,cols).
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrCellOccupied reports a placement onto a cell that already holds a room.
	ErrCellOccupied = errors.New("cell already occupied")
)

// Grid owns the rowsxcols matrix of optional rooms and the pool of cells
// still available for placement. Placement consumes from the pool; the grid
// never sets exit flags itself.
type Grid struct {
	rows int
	cols int

	rooms     [][]*Room
	available mapset.Set[Coord]
}

// NewGrid creates an empty grid with every cell available.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}

	g := &Grid{
		rows:      rows,
		cols:      cols,
		rooms:     make([][]*Room, rows),
		available: mapset.New[Coord](),
	}
	for row := 0; row < rows; row++ {
		g.rooms[row] = make([]*Room, cols)
		for col := 0; col < cols; col++ {
			g.available.Put(Coord{Row: row, Col: col})
		}
	}
	return g, nil
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds checks if a coordinate is within grid bounds
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// OnBorder reports whether c lies on a grid extreme (first/last row or column).
func (g *Grid) OnBorder(c Coord) bool {
	return g.InBounds(c) &&
		(c.Row == 0 || c.Row == g.rows-1 || c.Col == 0 || c.Col == g.cols-1)
}

// Center returns the coordinate of the grid center cell.
func (g *Grid) Center() Coord {
	return Coord{Row: g.rows / 2, Col: g.cols / 2}
}

// RoomAt returns the room at the given coordinate, or nil if the cell is
// empty or out of bounds.
func (g *Grid) RoomAt(c Coord) *Room {
	if !g.InBounds(c) {
		return nil
	}
	return g.rooms[c.Row][c.Col]
}

// Neighbor returns the occupied room adjacent to r in the given direction,
// or nil.
func (g *Grid) Neighbor(r *Room, d Direction) *Room {
	if r == nil || !d.IsValid() {
		return nil
	}
	return g.RoomAt(r.Coord.Neighbor(d))
}

// IsAvailable reports whether c is in bounds and not yet occupied.
func (g *Grid) IsAvailable(c Coord) bool {
	return g.available.Has(c)
}

// AvailableCount returns the number of cells still available for placement.
func (g *Grid) AvailableCount() int {
	return g.available.Size()
}

// OccupiedCount returns the number of placed rooms.
func (g *Grid) OccupiedCount() int {
	return g.rows*g.cols - g.available.Size()
}

// Place creates a room at c with the given category. The only side effect is
// removing c from the available pool; exits are left closed for the caller
// to connect.
func (g *Grid) Place(c Coord, cat Category) (*Room, error) {
	if !g.InBounds(c) {
		return nil, fmt.Errorf("place at (%d,%d): %w", c.Row, c.Col, ErrOutOfBounds)
	}
	if g.rooms[c.Row][c.Col] != nil {
		return nil, fmt.Errorf("place at (%d,%d): %w", c.Row, c.Col, ErrCellOccupied)
	}

	r := NewRoom(c, cat)
	g.rooms[c.Row][c.Col] = r
	g.available.Remove(c)
	return r, nil
}

// ForEachRoom iterates over all occupied cells in row-major order. The order
// is stable, which the boss tie-break and repair passes rely on.
func (g *Grid) ForEachRoom(fn func(r *Room)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if r := g.rooms[row][col]; r != nil {
				fn(r)
			}
		}
	}
}

// Rooms returns all occupied rooms in row-major order.
func (g *Grid) Rooms() []*Room {
	var out []*Room
	g.ForEachRoom(func(r *Room) {
		out = append(out, r)
	})
	return out
}
