package world

import "github.com/samdwyer/dungeoncrawl/internal/entity"

// Point is a grid coordinate. It is the same type as an entity's Position so
// viewsheds and map queries share one coordinate vocabulary.
type Point = entity.Position

// Rect is a rectangular room. The carved floor is the interior
// X1+1..X2 by Y1+1..Y2; the X1/Y1 edge stays wall.
type Rect struct {
	X1, Y1 int // Top-left corner (wall line)
	X2, Y2 int // Bottom-right corner (last floor column/row)
}

// NewRect creates a room from a top-left corner and a size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X1: x, Y1: y, X2: x + width, Y2: y + height}
}

// Center returns the center coordinates of the room.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Contains returns true if the point lies on the room's carved floor.
func (r Rect) Contains(p Point) bool {
	return p.X > r.X1 && p.X <= r.X2 && p.Y > r.Y1 && p.Y <= r.Y2
}

// Intersects returns true if this room overlaps with another room.
// Touching edges count as overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 &&
		r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 &&
		r.Y2 >= other.Y1
}
