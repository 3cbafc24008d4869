package gamedata

import (
	"fmt"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
)

// ActorDef defines the player or a monster type loaded from JSON.
type ActorDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "goblin")
	Name        string `json:"name"`        // Display name (e.g., "Goblin")
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "g")
	FG          string `json:"fg"`          // Foreground hex color (e.g., "#FF0000")
	BG          string `json:"bg"`          // Background hex color
	HP          int    `json:"hp"`          // Maximum hit points
	Defense     int    `json:"defense"`     // Subtracted from incoming melee power
	Power       int    `json:"power"`       // Melee attack strength
	Sight       int    `json:"sight"`       // Viewshed range in tiles
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (monsters only)
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *ActorDef) GlyphRune() rune {
	for _, r := range a.Glyph {
		return r
	}
	return '?'
}

// Renderable builds the render component for this actor.
// Unparseable colors fall back to white on black.
func (a *ActorDef) Renderable() entity.Renderable {
	fg, err := ParseHexColor(a.FG)
	if err != nil {
		fg = entity.Color{R: 255, G: 255, B: 255}
	}
	bg, err := ParseHexColor(a.BG)
	if err != nil {
		bg = entity.Color{}
	}
	return entity.Renderable{Glyph: a.GlyphRune(), FG: fg, BG: bg}
}

// CombatStats builds a full-health stats component for this actor.
func (a *ActorDef) CombatStats() entity.CombatStats {
	return entity.CombatStats{
		MaxHP:   a.HP,
		HP:      a.HP,
		Defense: a.Defense,
		Power:   a.Power,
	}
}

// Validate checks the fields every actor needs.
func (a *ActorDef) Validate() error {
	switch {
	case a.ID == "":
		return fmt.Errorf("actor %q: missing id", a.Name)
	case a.HP <= 0:
		return fmt.Errorf("actor %s: hp must be positive, got %d", a.ID, a.HP)
	case a.Sight < 0:
		return fmt.Errorf("actor %s: negative sight %d", a.ID, a.Sight)
	case a.Defense < 0 || a.Power < 0:
		return fmt.Errorf("actor %s: negative combat stats", a.ID)
	}
	return nil
}

// ActorsFile represents the structure of actors.json.
type ActorsFile struct {
	Player   ActorDef   `json:"player"`
	Monsters []ActorDef `json:"monsters"`
}

// LoadActors loads and validates actor definitions from the embedded actors.json file.
func LoadActors() (*ActorsFile, error) {
	file, err := Load[ActorsFile]("actors.json")
	if err != nil {
		return nil, err
	}
	if err := file.Player.Validate(); err != nil {
		return nil, fmt.Errorf("player definition: %w", err)
	}
	for i := range file.Monsters {
		if err := file.Monsters[i].Validate(); err != nil {
			return nil, fmt.Errorf("monster definition %d: %w", i, err)
		}
	}
	return &file, nil
}
