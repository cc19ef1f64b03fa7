package devtools

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"

	"darkdepths/pkg/engine/dungeon"
	"darkdepths/pkg/game/layout"
)

const defaultTermWidth = 80

var (
	styleStart  = color.Style{color.FgGreen, color.OpBold}
	styleBoss   = color.Style{color.FgRed, color.OpBold}
	styleItem   = color.Style{color.FgYellow, color.OpBold}
	styleNormal = color.Style{color.FgBlue}
	styleEmpty  = color.Style{color.FgGray}
	styleLocked = color.Style{color.FgMagenta, color.OpBold}
)

func styleFor(r *dungeon.Room) color.Style {
	if r == nil {
		return styleEmpty
	}
	if r.Locked {
		return styleLocked
	}
	switch r.Category {
	case dungeon.CategoryStart:
		return styleStart
	case dungeon.CategoryBoss:
		return styleBoss
	case dungeon.CategoryItem:
		return styleItem
	default:
		return styleNormal
	}
}

// termWidth returns the current terminal width, falling back to a default
// when stdout is not a terminal.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return defaultTermWidth
	}
	return width
}

// PrintLayout renders the layout grid to stdout with per-category colors.
// Each cell takes two columns; grids wider than the terminal fall back to
// the compact one-column form.
func PrintLayout(l *layout.Layout) {
	if l == nil || l.Grid == nil {
		fmt.Println("no layout")
		return
	}

	cellWidth := 2
	if l.Grid.Cols()*cellWidth > termWidth() {
		cellWidth = 1
	}

	for row := 0; row < l.Grid.Rows(); row++ {
		for col := 0; col < l.Grid.Cols(); col++ {
			r := l.RoomAt(dungeon.Coord{Row: row, Col: col})
			symbol := string(roomSymbol(r))
			if cellWidth == 2 {
				symbol += " "
			}
			styleFor(r).Print(symbol)
		}
		fmt.Println()
	}
}
