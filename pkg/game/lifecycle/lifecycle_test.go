package lifecycle

import (
	"testing"

	"go.uber.org/zap"

	"darkdepths/pkg/engine/dungeon"
	"darkdepths/pkg/engine/tiles"
	"darkdepths/pkg/game/layout"
)

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	p := layout.Params{
		Rows:             3,
		Cols:             4,
		InteriorWidth:    6,
		InteriorHeight:   4,
		SpacingX:         8,
		SpacingY:         6,
		TargetFightRooms: 6,
	}
	l, err := layout.Generate(p, 11, tiles.NewLayer(nil), zap.NewNop())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return l
}

func firstNormalRoom(t *testing.T, l *layout.Layout) *dungeon.Room {
	t.Helper()
	rooms := l.NormalRooms()
	if len(rooms) == 0 {
		t.Fatal("layout has no normal rooms")
	}
	return rooms[0]
}

func TestPolicyTable(t *testing.T) {
	if p := PolicyFor(dungeon.CategoryNormal); !p.LockOnEntry || !p.SpawnWaves || p.AutoClear {
		t.Errorf("normal rooms should lock and spawn, got %+v", p)
	}
	if p := PolicyFor(dungeon.CategoryBoss); !p.LockOnEntry || !p.SpawnWaves {
		t.Errorf("boss rooms should lock and spawn, got %+v", p)
	}
	if p := PolicyFor(dungeon.CategoryStart); !p.AutoClear || p.LockOnEntry {
		t.Errorf("start room should auto-clear without locking, got %+v", p)
	}
	if p := PolicyFor(dungeon.CategoryItem); !p.AutoClear {
		t.Errorf("item rooms should auto-clear, got %+v", p)
	}
}

func TestFightRoomRunsFullSequence(t *testing.T) {
	l := testLayout(t)
	s := NewSupervisor(l, zap.NewNop())
	room := firstNormalRoom(t, l)

	var spawned, cleared []*dungeon.Room
	s.OnSpawnWave(func(r *dungeon.Room) { spawned = append(spawned, r) })
	s.OnRoomCleared(func(r *dungeon.Room) { cleared = append(cleared, r) })

	s.OnPlayerEntered(room)
	if got := s.PhaseOf(room); got != PhaseLocking {
		t.Fatalf("expected Locking after entry, got %v", got)
	}

	s.Tick()
	if !room.Locked {
		t.Error("room should be locked after the locking tick")
	}
	if got := s.PhaseOf(room); got != PhaseSpawningWave {
		t.Fatalf("expected SpawningWave, got %v", got)
	}

	s.Tick()
	if len(spawned) != 1 || spawned[0] != room {
		t.Errorf("expected one spawn request for the room, got %d", len(spawned))
	}
	if got := s.PhaseOf(room); got != PhaseAwaitingClear {
		t.Fatalf("expected AwaitingClear, got %v", got)
	}

	s.MarkCleared(room)
	if !room.Cleared || room.Locked {
		t.Error("cleared room should be unlocked")
	}
	if got := s.PhaseOf(room); got != PhaseUnlocked {
		t.Errorf("expected Unlocked, got %v", got)
	}
	if len(cleared) != 1 || cleared[0] != room {
		t.Errorf("expected one cleared callback for the room, got %d", len(cleared))
	}
}

func TestLockWritesDoorTiles(t *testing.T) {
	l := testLayout(t)
	s := NewSupervisor(l, zap.NewNop())
	room := firstNormalRoom(t, l)
	p := l.Params()

	exit, ok := dungeon.North, false
	for _, d := range dungeon.AllDirections() {
		if room.HasExit(d) {
			exit, ok = d, true
			break
		}
	}
	if !ok {
		t.Fatal("normal room should have at least one exit")
	}

	s.OnPlayerEntered(room)
	s.Tick()

	opening := tiles.Openings(p.InteriorWidth, p.InteriorHeight, exit)[0]
	pos := tiles.Point{X: room.AnchorX + opening.X, Y: room.AnchorY + opening.Y}
	if tile, _ := l.Layer().TileAt(pos); tile != tiles.Door {
		t.Errorf("locked room opening should be Door, got %v", tile)
	}

	s.MarkCleared(room)
	if tile, _ := l.Layer().TileAt(pos); tile != tiles.Floor {
		t.Errorf("unlocked room opening should be Floor, got %v", tile)
	}
}

func TestEntryIsIdempotent(t *testing.T) {
	l := testLayout(t)
	s := NewSupervisor(l, zap.NewNop())
	room := firstNormalRoom(t, l)

	var spawns int
	s.OnSpawnWave(func(*dungeon.Room) { spawns++ })

	s.OnPlayerEntered(room)
	s.OnPlayerEntered(room)
	s.Tick()
	s.Tick()
	s.Tick()

	if spawns != 1 {
		t.Errorf("expected one wave despite repeated entry, got %d", spawns)
	}

	// Leaving and coming back mid-fight must not restart the sequence.
	s.OnPlayerExited(room)
	s.OnPlayerEntered(room)
	if got := s.PhaseOf(room); got != PhaseAwaitingClear {
		t.Errorf("re-entry should not reset the machine, got %v", got)
	}

	// Re-entering after the fight stays unlocked.
	s.MarkCleared(room)
	s.MarkCleared(room)
	s.OnPlayerExited(room)
	s.OnPlayerEntered(room)
	s.Tick()
	if room.Locked {
		t.Error("cleared room must never re-lock")
	}
	if spawns != 1 {
		t.Errorf("cleared room must not respawn waves, got %d", spawns)
	}
}

func TestStartRoomAutoClears(t *testing.T) {
	l := testLayout(t)
	s := NewSupervisor(l, zap.NewNop())

	var cleared int
	s.OnRoomCleared(func(*dungeon.Room) { cleared++ })

	start := l.StartRoom()
	s.OnPlayerEntered(start)
	if !start.Cleared || start.Locked {
		t.Error("start room should clear on entry without locking")
	}
	if got := s.PhaseOf(start); got != PhaseUnlocked {
		t.Errorf("expected Unlocked start room, got %v", got)
	}
	if cleared != 1 {
		t.Errorf("expected one cleared callback, got %d", cleared)
	}
}
