package debugserver

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"darkdepths/pkg/engine/tiles"
	"darkdepths/pkg/game/floors"
	"darkdepths/pkg/game/layout"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	p := layout.Params{
		Rows:             3,
		Cols:             4,
		InteriorWidth:    6,
		InteriorHeight:   4,
		SpacingX:         8,
		SpacingY:         6,
		TargetFightRooms: 5,
	}
	m := floors.NewManager(p, tiles.NewLayer(nil), nil, zap.NewNop())
	return New(m, zap.NewNop())
}

func seed(v int64) *int64 {
	return &v
}

func TestExecuteRegenerate(t *testing.T) {
	s := testServer(t)

	resp := s.Execute(Command{Action: "regenerate", Seed: seed(5)})
	if !resp.OK {
		t.Fatalf("regenerate failed: %s", resp.Error)
	}
	if resp.Rooms == 0 {
		t.Error("expected rooms after regeneration")
	}
	if s.manager.Seed() != 5 {
		t.Errorf("expected seed 5, got %d", s.manager.Seed())
	}
}

func TestExecuteDump(t *testing.T) {
	s := testServer(t)

	resp := s.Execute(Command{Action: "dump"})
	if resp.OK {
		t.Error("dump before generation should fail")
	}

	s.Execute(Command{Action: "regenerate", Seed: seed(5)})
	resp = s.Execute(Command{Action: "dump"})
	if !resp.OK {
		t.Fatalf("dump failed: %s", resp.Error)
	}
	if !strings.Contains(resp.Dump, "=== LAYOUT DUMP DEBUG") {
		t.Error("dump response should carry the layout dump text")
	}
}

func TestExecuteClearAndAdvance(t *testing.T) {
	s := testServer(t)
	s.Execute(Command{Action: "regenerate", Seed: seed(5)})

	resp := s.Execute(Command{Action: "clear"})
	if !resp.OK {
		t.Fatalf("clear failed: %s", resp.Error)
	}
	if s.manager.Current() != nil {
		t.Error("clear should drop the live layout")
	}

	resp = s.Execute(Command{Action: "advance", Seed: seed(6)})
	if !resp.OK {
		t.Fatalf("advance failed: %s", resp.Error)
	}
	if resp.Floor != 1 {
		t.Errorf("expected floor 1 after advance, got %d", resp.Floor)
	}
}

func TestExecuteUnknownAction(t *testing.T) {
	s := testServer(t)
	resp := s.Execute(Command{Action: "explode"})
	if resp.OK {
		t.Error("unknown action should fail")
	}
	if !strings.Contains(resp.Error, "unknown action") {
		t.Errorf("expected unknown action error, got %q", resp.Error)
	}
}
