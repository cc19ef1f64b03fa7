// Package tiles compiles a room's exit configuration into wall/floor tile
// geometry and manages the shared world-space layer the tiles are written to.
package tiles

import (
	"darkdepths/pkg/engine/dungeon"
)

// Tile is a single cell of compiled room geometry.
type Tile uint8

// Tile kinds. Door is the lock overlay: collidable like a wall, but written
// over an exit opening and reversible without touching the exit flags.
const (
	Wall Tile = iota
	Floor
	Door
)

// String returns the string representation of a tile
func (t Tile) String() string {
	switch t {
	case Wall:
		return "Wall"
	case Floor:
		return "Floor"
	case Door:
		return "Door"
	default:
		return "Unknown"
	}
}

// Point is a tile coordinate. Inside a compiled grid x grows eastward and
// y grows northward, so the north edge sits at y = Height-1.
type Point struct {
	X int
	Y int
}

// Grid is the compiled tile matrix for one room: the interior plus a
// one-tile wall ring, (w+2)x(h+2) in total.
type Grid struct {
	Width  int
	Height int

	cells []Tile
}

// Compile maps an interior size and exit flags to a tile grid. It is a pure
// function: identical inputs always produce an identical grid, and no state
// survives between calls.
//
// The border ring is Wall and the interior Floor. Each open exit carves a
// two-tile opening centered on its side: tiles mid-1 and mid along the
// border, with mid = totalSize/2 using integer division.
func Compile(interiorW, interiorH int, exits [dungeon.DirectionCount]bool) *Grid {
	w, h := interiorW+2, interiorH+2
	g := &Grid{
		Width:  w,
		Height: h,
		cells:  make([]Tile, w*h),
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			g.set(x, y, Floor)
		}
	}

	for _, d := range dungeon.AllDirections() {
		if !exits[d] {
			continue
		}
		for _, p := range Openings(interiorW, interiorH, d) {
			g.set(p.X, p.Y, Floor)
		}
	}

	return g
}

// Openings returns the two border positions carved for an exit toward d,
// for a room of the given interior size.
func Openings(interiorW, interiorH int, d dungeon.Direction) [2]Point {
	w, h := interiorW+2, interiorH+2
	midX, midY := w/2, h/2
	switch d {
	case dungeon.North:
		return [2]Point{{X: midX - 1, Y: h - 1}, {X: midX, Y: h - 1}}
	case dungeon.South:
		return [2]Point{{X: midX - 1, Y: 0}, {X: midX, Y: 0}}
	case dungeon.East:
		return [2]Point{{X: w - 1, Y: midY - 1}, {X: w - 1, Y: midY}}
	case dungeon.West:
		return [2]Point{{X: 0, Y: midY - 1}, {X: 0, Y: midY}}
	default:
		return [2]Point{}
	}
}

// At returns the tile at (x,y). Out-of-range positions read as Wall.
func (g *Grid) At(x, y int) Tile {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return Wall
	}
	return g.cells[y*g.Width+x]
}

func (g *Grid) set(x, y int, t Tile) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.cells[y*g.Width+x] = t
}

// Equal reports whether two grids are identical tile for tile.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i, t := range g.cells {
		if other.cells[i] != t {
			return false
		}
	}
	return true
}

// Lock writes a Door tile over both opening positions of every open exit.
// The exit flags themselves are not touched.
func (g *Grid) Lock(exits [dungeon.DirectionCount]bool) {
	g.overlayDoors(exits, Door)
}

// Unlock restores Floor at both opening positions of every open exit,
// reversing Lock exactly.
func (g *Grid) Unlock(exits [dungeon.DirectionCount]bool) {
	g.overlayDoors(exits, Floor)
}

func (g *Grid) overlayDoors(exits [dungeon.DirectionCount]bool, t Tile) {
	interiorW, interiorH := g.Width-2, g.Height-2
	for _, d := range dungeon.AllDirections() {
		if !exits[d] {
			continue
		}
		for _, p := range Openings(interiorW, interiorH, d) {
			g.set(p.X, p.Y, t)
		}
	}
}
