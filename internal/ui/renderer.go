package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws a scene: remembered tiles, the entities in view, then a
// status line and the newest message below the map.
func (r *Renderer) Render(scene *game.Scene) {
	r.screen.Clear()

	for y := 0; y < scene.Height; y++ {
		for x := 0; x < scene.Width; x++ {
			cell := scene.TileAt(x, y)
			if !cell.Revealed {
				continue
			}
			r.screen.SetContent(x, y, cell.Tile.Rune(), tileStyle(cell))
		}
	}

	for _, e := range scene.Entities {
		style := tcell.StyleDefault.
			Foreground(toTcell(e.FG)).
			Background(toTcell(e.BG))
		if e.IsPlayer {
			style = style.Bold(true)
		}
		r.screen.SetContent(e.X, e.Y, e.Glyph, style)
	}

	r.RenderMessage(statusLine(scene), scene.Height)
	if n := len(scene.Log); n > 0 {
		r.RenderMessage(scene.Log[n-1], scene.Height+1)
	}

	r.screen.Show()
}

// tileStyle colors tiles in view and greys out remembered ones.
func tileStyle(cell game.SceneTile) tcell.Style {
	if !cell.Visible {
		return tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	}
	switch cell.Tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorTeal)
	default:
		return tcell.StyleDefault
	}
}

func statusLine(scene *game.Scene) string {
	if !scene.PlayerAlive {
		return fmt.Sprintf("You are dead. Turn %d. Press q to quit.", scene.Turn)
	}
	return fmt.Sprintf("HP: %d/%d  Turn: %d", scene.PlayerHP, scene.PlayerMaxHP, scene.Turn)
}

func toTcell(c entity.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// RenderMessage displays a message at the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
