package entity

import "github.com/zyedidia/generic/mapset"

// Position is a grid coordinate. Each positioned entity occupies one tile.
type Position struct {
	X, Y int
}

// Color is a 24-bit RGB color. Rendering layers translate it to their own type.
type Color struct {
	R, G, B uint8
}

// Renderable describes how an entity is drawn. Immutable after creation.
type Renderable struct {
	Glyph rune
	FG    Color
	BG    Color
}

// Viewshed is the set of tiles an entity can currently see.
// Dirty is set whenever the entity moves and cleared by the visibility
// system once VisibleTiles has been recomputed.
type Viewshed struct {
	VisibleTiles mapset.Set[Position]
	Range        int
	Dirty        bool
}

// NewViewshed creates a dirty viewshed so the first visibility pass fills it.
func NewViewshed(rng int) Viewshed {
	return Viewshed{
		VisibleTiles: mapset.New[Position](),
		Range:        rng,
		Dirty:        true,
	}
}

// CanSee reports whether the given tile was visible at the last recompute.
func (v *Viewshed) CanSee(p Position) bool {
	return v.VisibleTiles.Has(p)
}

// CombatStats holds an entity's fighting numbers.
type CombatStats struct {
	MaxHP   int
	HP      int
	Defense int
	Power   int
}

// IsAlive returns true while HP is above zero.
func (c *CombatStats) IsAlive() bool {
	return c.HP > 0
}

// WantsToMelee is a one-tick intent to attack Target.
type WantsToMelee struct {
	Target ID
}

// SufferDamage accumulates hits landed on an entity during one combat pass.
type SufferDamage struct {
	Amounts []int
}

// Total returns the sum of all pending damage.
func (s *SufferDamage) Total() int {
	total := 0
	for _, a := range s.Amounts {
		total += a
	}
	return total
}

// Name is the entity's display and log identity.
type Name struct {
	Name string
}

// Tag is an empty marker component.
type Tag struct{}
