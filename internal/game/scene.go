package game

import (
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// SceneLogLines is the number of recent messages copied into a scene.
const SceneLogLines = 5

// SceneTile is one map cell as the host should draw it.
type SceneTile struct {
	Tile     world.Tile
	Revealed bool
	Visible  bool
}

// SceneEntity is a drawable entity on a currently visible tile.
type SceneEntity struct {
	ID       entity.ID
	Name     string
	X, Y     int
	Glyph    rune
	FG, BG   entity.Color
	IsPlayer bool
}

// Scene is a read-only snapshot of everything the host renders.
type Scene struct {
	Width, Height int
	State         RunState
	Turn          int

	PlayerAlive bool
	PlayerHP    int
	PlayerMaxHP int

	Tiles    []SceneTile
	Entities []SceneEntity
	Log      []string
}

// TileAt returns the scene tile at a coordinate, which must be in bounds.
func (s *Scene) TileAt(x, y int) SceneTile {
	return s.Tiles[y*s.Width+x]
}

// Scene builds a snapshot of the current state.
func (g *Game) Scene() *Scene {
	m := g.world
	s := &Scene{
		Width:  m.Width,
		Height: m.Height,
		State:  g.state,
		Turn:   g.turn,
		Tiles:  make([]SceneTile, len(m.Tiles)),
	}

	for i, t := range m.Tiles {
		s.Tiles[i] = SceneTile{Tile: t, Revealed: m.Revealed[i], Visible: m.Visible[i]}
	}

	for _, id := range entity.Query(g.store.Positions, g.store.Renderables) {
		pos, _ := g.store.Positions.Get(id)
		if !m.InBounds(pos.X, pos.Y) || !m.Visible[m.IndexOf(*pos)] {
			continue
		}
		r, _ := g.store.Renderables.Get(id)
		s.Entities = append(s.Entities, SceneEntity{
			ID:       id,
			Name:     g.store.NameOf(id),
			X:        pos.X,
			Y:        pos.Y,
			Glyph:    r.Glyph,
			FG:       r.FG,
			BG:       r.BG,
			IsPlayer: g.store.Players.Has(id),
		})
	}

	if player, ok := g.store.Player(); ok {
		s.PlayerAlive = true
		if stats, ok := g.store.Stats.Get(player); ok {
			s.PlayerHP, s.PlayerMaxHP = stats.HP, stats.MaxHP
		}
	}

	for _, e := range g.log.Recent(SceneLogLines) {
		s.Log = append(s.Log, e.Text)
	}
	return s
}
