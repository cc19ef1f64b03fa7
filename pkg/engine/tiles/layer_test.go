package tiles

import (
	"testing"

	"darkdepths/pkg/engine/dungeon"
)

func TestRealizeWritesAtExpectedAnchor(t *testing.T) {
	l := NewLayer(nil)
	r := dungeon.NewRoom(dungeon.Coord{Row: 1, Col: 2}, dungeon.CategoryNormal)
	r.SetExit(dungeon.North, true)

	l.Realize(r, 6, 4, 10, 8)

	if r.AnchorX != 20 || r.AnchorY != -8 {
		t.Fatalf("expected anchor (20,-8), got (%d,%d)", r.AnchorX, r.AnchorY)
	}
	if l.Count() != 8*6 {
		t.Errorf("expected %d tiles written, got %d", 8*6, l.Count())
	}

	// Corner tile of the wall ring.
	if tile, ok := l.TileAt(Point{X: 20, Y: -8}); !ok || tile != Wall {
		t.Errorf("expected Wall at anchor corner, got %v ok=%v", tile, ok)
	}
	// Interior tile.
	if tile, ok := l.TileAt(Point{X: 21, Y: -7}); !ok || tile != Floor {
		t.Errorf("expected Floor just inside the ring, got %v ok=%v", tile, ok)
	}
	// North opening, carved through the top edge.
	for _, p := range Openings(6, 4, dungeon.North) {
		if tile, ok := l.TileAt(Point{X: 20 + p.X, Y: -8 + p.Y}); !ok || tile != Floor {
			t.Errorf("expected Floor at north opening (%d,%d), got %v ok=%v", p.X, p.Y, tile, ok)
		}
	}
}

func TestLockUnlockRoomOverlay(t *testing.T) {
	l := NewLayer(nil)
	r := dungeon.NewRoom(dungeon.Coord{}, dungeon.CategoryBoss)
	r.SetExit(dungeon.West, true)
	l.Realize(r, 6, 4, 10, 8)

	l.LockRoom(r, 6, 4)
	for _, p := range Openings(6, 4, dungeon.West) {
		if tile, _ := l.TileAt(Point{X: p.X, Y: p.Y}); tile != Door {
			t.Errorf("locked west opening (%d,%d) should be Door, got %v", p.X, p.Y, tile)
		}
	}

	l.UnlockRoom(r, 6, 4)
	for _, p := range Openings(6, 4, dungeon.West) {
		if tile, _ := l.TileAt(Point{X: p.X, Y: p.Y}); tile != Floor {
			t.Errorf("unlocked west opening (%d,%d) should be Floor, got %v", p.X, p.Y, tile)
		}
	}
}

func TestClearRoomRemovesBlock(t *testing.T) {
	l := NewLayer(nil)
	r := dungeon.NewRoom(dungeon.Coord{}, dungeon.CategoryNormal)
	l.Realize(r, 6, 4, 10, 8)
	if l.Count() == 0 {
		t.Fatal("expected tiles after realize")
	}

	l.ClearRoom(r, 6, 4)
	if l.Count() != 0 {
		t.Errorf("expected empty layer after clear, got %d tiles", l.Count())
	}
}

func TestNilRoomIsSkipped(t *testing.T) {
	l := NewLayer(nil)
	l.Realize(nil, 6, 4, 10, 8)
	l.LockRoom(nil, 6, 4)
	if l.Count() != 0 {
		t.Errorf("nil room should write nothing, got %d tiles", l.Count())
	}
}
