// Package dungeon provides the grid-level primitives for a top-down dungeon
// floor: coordinates, directions, rooms and the allocator that places rooms
// onto a fixed rowsxcols grid.
package dungeon

// Coord is an integer (row, col) address on the dungeon grid.
// Row 0 is the northernmost row, col 0 the westernmost column.
type Coord struct {
	Row int
	Col int
}

// Neighbor returns the coordinate adjacent to c in the given direction.
func (c Coord) Neighbor(d Direction) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Category tags a room's role on the floor. Rooms are a single type
// distinguished by tag; per-category behavior lives in policy tables,
// not in subtypes.
type Category int

// Room categories
const (
	CategoryNormal Category = iota
	CategoryStart
	CategoryBoss
	CategoryItem
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case CategoryStart:
		return "Start"
	case CategoryNormal:
		return "Normal"
	case CategoryBoss:
		return "Boss"
	case CategoryItem:
		return "Item"
	default:
		return "Unknown"
	}
}

// Room is a single occupied cell's logical state. The generation pipeline
// mutates coordinate-independent fields (category, exits); after the layout
// is realized only Cleared and Locked change.
type Room struct {
	Coord    Coord
	Category Category

	// Exits holds one flag per direction, indexed by Direction.
	// A true flag means the wall toward that neighbor is carved open.
	Exits [DirectionCount]bool

	// Runtime state, orthogonal to Exits.
	Cleared bool
	Locked  bool

	// World-space anchor recorded when the room's tiles were last written
	// to a layer. Derived, not authoritative: the expected value is always
	// coordinate x spacing (see ExpectedAnchor).
	AnchorX int
	AnchorY int
}

// NewRoom creates a room at the given coordinate with all exits closed.
func NewRoom(c Coord, cat Category) *Room {
	return &Room{Coord: c, Category: cat}
}

// HasExit reports whether the exit toward d is open.
func (r *Room) HasExit(d Direction) bool {
	if !d.IsValid() {
		return false
	}
	return r.Exits[d]
}

// SetExit opens or closes the exit toward d.
func (r *Room) SetExit(d Direction, open bool) {
	if !d.IsValid() {
		return
	}
	r.Exits[d] = open
}

// ExitCount returns the number of open exits.
func (r *Room) ExitCount() int {
	n := 0
	for _, open := range r.Exits {
		if open {
			n++
		}
	}
	return n
}

// SoleExit returns the single open exit direction. The second return is
// false unless exactly one exit is open.
func (r *Room) SoleExit() (Direction, bool) {
	found := Direction(-1)
	for d, open := range r.Exits {
		if !open {
			continue
		}
		if found >= 0 {
			return -1, false
		}
		found = Direction(d)
	}
	if found < 0 {
		return -1, false
	}
	return found, true
}

// ExpectedAnchor returns the world-space anchor derived from the room's grid
// coordinate: x grows eastward with the column, y grows northward, so
// southern rows sit at lower y values.
func (r *Room) ExpectedAnchor(spacingX, spacingY int) (x, y int) {
	return r.Coord.Col * spacingX, -r.Coord.Row * spacingY
}
