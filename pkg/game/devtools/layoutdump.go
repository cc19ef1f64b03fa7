// Package devtools provides developer tools for diagnosing generated
// layouts: text dumps, YAML dumps and a colored terminal view.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"darkdepths/pkg/engine/dungeon"
	"darkdepths/pkg/game/layout"
)

const layoutDumpFilename = "layout.txt"

// roomSymbol returns the single-character symbol for a grid cell.
func roomSymbol(r *dungeon.Room) rune {
	if r == nil {
		return '#'
	}
	switch r.Category {
	case dungeon.CategoryStart:
		return 'S'
	case dungeon.CategoryBoss:
		return 'B'
	case dungeon.CategoryItem:
		return 'I'
	default:
		return '.'
	}
}

// exitString renders a room's open exits as a compact list, "none" when all
// four walls are solid.
func exitString(r *dungeon.Room) string {
	out := ""
	for _, d := range dungeon.AllDirections() {
		if !r.HasExit(d) {
			continue
		}
		if out != "" {
			out += ","
		}
		out += d.String()
	}
	if out == "" {
		return "none"
	}
	return out
}

// WriteLayoutDump writes a full debug dump of the layout: metadata, legend,
// the grid and a per-room listing with expected vs actual world positions
// for diagnosing placement/exit mismatches.
// Format is human- and LLM-readable (sections, key: value, consistent structure).
func WriteLayoutDump(w io.Writer, l *layout.Layout) error {
	if l == nil || l.Grid == nil {
		return fmt.Errorf("no layout")
	}
	p := l.Params()

	fmt.Fprintln(w, "=== LAYOUT DUMP DEBUG (floor layout, exits, anchors) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "seed: %d\n", l.Seed())
	fmt.Fprintf(w, "grid_rows: %d\n", l.Grid.Rows())
	fmt.Fprintf(w, "grid_cols: %d\n", l.Grid.Cols())
	fmt.Fprintf(w, "coordinate_system: row,col (0-based, row 0 = northernmost)\n")
	fmt.Fprintf(w, "interior_size: %dx%d\n", p.InteriorWidth, p.InteriorHeight)
	fmt.Fprintf(w, "room_count: %d\n", l.Grid.OccupiedCount())
	fmt.Fprintf(w, "start_cell: %d,%d\n", l.StartRoom().Coord.Row, l.StartRoom().Coord.Col)
	if boss := l.BossRoom(); boss != nil {
		fmt.Fprintf(w, "boss_cell: %d,%d\n", boss.Coord.Row, boss.Coord.Col)
	} else {
		fmt.Fprintln(w, "boss_cell: none")
	}
	if item := l.ItemRoom(); item != nil {
		fmt.Fprintf(w, "item_cell: %d,%d\n", item.Coord.Row, item.Coord.Col)
	} else {
		fmt.Fprintln(w, "item_cell: none")
	}
	reachable := l.ReachableFromStart()
	fmt.Fprintf(w, "reachable_from_start: %d\n", reachable.Size())
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintln(w, "S = start  B = boss  I = item  . = normal room  # = empty cell")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Grid ---")
	for row := 0; row < l.Grid.Rows(); row++ {
		for col := 0; col < l.Grid.Cols(); col++ {
			fmt.Fprintf(w, "%c", roomSymbol(l.RoomAt(dungeon.Coord{Row: row, Col: col})))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Rooms (all with row,col, exits and world anchors) ---")
	l.Grid.ForEachRoom(func(r *dungeon.Room) {
		wantX, wantY := r.ExpectedAnchor(p.SpacingX, p.SpacingY)
		match := wantX == r.AnchorX && wantY == r.AnchorY
		fmt.Fprintf(w, "  row: %d col: %d category: %s exits: %s cleared: %v locked: %v expected_anchor: %d,%d actual_anchor: %d,%d anchor_match: %v\n",
			r.Coord.Row, r.Coord.Col, r.Category, exitString(r),
			r.Cleared, r.Locked, wantX, wantY, r.AnchorX, r.AnchorY, match)
	})
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "=== END LAYOUT DUMP ===")
	return nil
}

// DumpLayoutToFile writes the layout dump to layout.txt and returns the
// absolute path.
func DumpLayoutToFile(l *layout.Layout) (string, error) {
	absPath, err := filepath.Abs(layoutDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteLayoutDump(f, l); err != nil {
		return "", err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}

type roomDump struct {
	Row      int    `yaml:"row"`
	Col      int    `yaml:"col"`
	Category string `yaml:"category"`
	Exits    string `yaml:"exits"`
	Cleared  bool   `yaml:"cleared"`
	Locked   bool   `yaml:"locked"`
	AnchorX  int    `yaml:"anchor_x"`
	AnchorY  int    `yaml:"anchor_y"`
}

type layoutDump struct {
	Seed  int64      `yaml:"seed"`
	Rows  int        `yaml:"rows"`
	Cols  int        `yaml:"cols"`
	Rooms []roomDump `yaml:"rooms"`
}

// WriteLayoutYAML writes the layout as YAML, for machine-assisted diffing of
// two generations.
func WriteLayoutYAML(w io.Writer, l *layout.Layout) error {
	if l == nil || l.Grid == nil {
		return fmt.Errorf("no layout")
	}

	dump := layoutDump{
		Seed: l.Seed(),
		Rows: l.Grid.Rows(),
		Cols: l.Grid.Cols(),
	}
	l.Grid.ForEachRoom(func(r *dungeon.Room) {
		dump.Rooms = append(dump.Rooms, roomDump{
			Row:      r.Coord.Row,
			Col:      r.Coord.Col,
			Category: r.Category.String(),
			Exits:    exitString(r),
			Cleared:  r.Cleared,
			Locked:   r.Locked,
			AnchorX:  r.AnchorX,
			AnchorY:  r.AnchorY,
		})
	})

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(dump)
}
