package tiles

import (
	"go.uber.org/zap"

	"darkdepths/pkg/engine/dungeon"
)

// Layer is the shared world-space tile store rooms are realized into.
// Generation is the single writer; later lock/unlock overlays only rewrite
// the opening positions of rooms that were already realized.
type Layer struct {
	log   *zap.Logger
	tiles map[Point]Tile
}

// NewLayer creates an empty layer. A nil logger falls back to a no-op logger.
func NewLayer(log *zap.Logger) *Layer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Layer{
		log:   log,
		tiles: make(map[Point]Tile),
	}
}

// Realize compiles the room's tile grid and writes it at the room's expected
// world anchor, recording the anchor on the room. Re-realizing a room
// overwrites its previous block in place.
func (l *Layer) Realize(r *dungeon.Room, interiorW, interiorH, spacingX, spacingY int) {
	if r == nil {
		l.log.Warn("skipping realize of nil room")
		return
	}

	g := Compile(interiorW, interiorH, r.Exits)
	x, y := r.ExpectedAnchor(spacingX, spacingY)
	r.AnchorX, r.AnchorY = x, y

	for ty := 0; ty < g.Height; ty++ {
		for tx := 0; tx < g.Width; tx++ {
			l.tiles[Point{X: x + tx, Y: y + ty}] = g.At(tx, ty)
		}
	}
}

// ClearRoom removes the room's tile block from the layer.
func (l *Layer) ClearRoom(r *dungeon.Room, interiorW, interiorH int) {
	if r == nil {
		return
	}
	w, h := interiorW+2, interiorH+2
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			delete(l.tiles, Point{X: r.AnchorX + tx, Y: r.AnchorY + ty})
		}
	}
}

// Clear drops every tile on the layer.
func (l *Layer) Clear() {
	l.tiles = make(map[Point]Tile)
}

// LockRoom writes Door tiles over every open exit of the room.
func (l *Layer) LockRoom(r *dungeon.Room, interiorW, interiorH int) {
	l.overlayRoom(r, interiorW, interiorH, Door)
}

// UnlockRoom restores Floor tiles over every open exit of the room.
func (l *Layer) UnlockRoom(r *dungeon.Room, interiorW, interiorH int) {
	l.overlayRoom(r, interiorW, interiorH, Floor)
}

func (l *Layer) overlayRoom(r *dungeon.Room, interiorW, interiorH int, t Tile) {
	if r == nil {
		l.log.Warn("skipping door overlay of nil room")
		return
	}
	for _, d := range dungeon.AllDirections() {
		if !r.HasExit(d) {
			continue
		}
		for _, p := range Openings(interiorW, interiorH, d) {
			l.tiles[Point{X: r.AnchorX + p.X, Y: r.AnchorY + p.Y}] = t
		}
	}
}

// TileAt returns the tile at a world-space position. The second return is
// false where no room has written a tile.
func (l *Layer) TileAt(p Point) (Tile, bool) {
	t, ok := l.tiles[p]
	return t, ok
}

// Count returns the number of tiles written to the layer.
func (l *Layer) Count() int {
	return len(l.tiles)
}
