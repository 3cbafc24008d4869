package world

import (
	"fmt"
	"math"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/pathfind"
)

const (
	// cardinalCost is the pathing cost of a horizontal or vertical step.
	cardinalCost = 1.0
	// diagonalCost is the pathing cost of a diagonal step.
	diagonalCost = 1.45
)

// Map is the dungeon grid plus its per-tile derived state.
// Tiles and Rooms are fixed after generation; Visible, Blocked and Occupants
// are recomputed every tick, Revealed only ever flips to true.
type Map struct {
	Width  int
	Height int
	Tiles  []Tile
	Rooms  []Rect

	Revealed  []bool
	Visible   []bool
	Blocked   []bool
	Occupants [][]entity.ID
}

// NewMap creates a map filled with walls.
func NewMap(width, height int) *Map {
	size := width * height
	tiles := make([]Tile, size)
	for i := range tiles {
		tiles[i] = TileWall
	}
	return &Map{
		Width:     width,
		Height:    height,
		Tiles:     tiles,
		Rooms:     make([]Rect, 0),
		Revealed:  make([]bool, size),
		Visible:   make([]bool, size),
		Blocked:   make([]bool, size),
		Occupants: make([][]entity.ID, size),
	}
}

// InBounds returns true if the coordinate lies on the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Index converts a coordinate to a flat tile index.
// Out-of-bounds coordinates are a caller bug and panic.
func (m *Map) Index(x, y int) int {
	if !m.InBounds(x, y) {
		panic(fmt.Sprintf("world: index (%d,%d) outside %dx%d map", x, y, m.Width, m.Height))
	}
	return y*m.Width + x
}

// IndexOf converts a point to a flat tile index.
func (m *Map) IndexOf(p Point) int {
	return m.Index(p.X, p.Y)
}

// PointAt converts a flat tile index back to a coordinate.
func (m *Map) PointAt(idx int) Point {
	if idx < 0 || idx >= len(m.Tiles) {
		panic(fmt.Sprintf("world: tile index %d outside map of %d tiles", idx, len(m.Tiles)))
	}
	return Point{X: idx % m.Width, Y: idx / m.Width}
}

// TileAt returns the tile at the given position. Off-map reads as wall.
func (m *Map) TileAt(x, y int) Tile {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[y*m.Width+x]
}

// IsOpaque returns true if the position blocks sight. Off-map is opaque.
func (m *Map) IsOpaque(x, y int) bool {
	return m.TileAt(x, y).IsOpaque()
}

// IsBlocked returns true if the position cannot be entered this tick.
func (m *Map) IsBlocked(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Blocked[y*m.Width+x]
}

// SetBlocked overrides the blocked flag of a single tile.
func (m *Map) SetBlocked(p Point, blocked bool) {
	m.Blocked[m.IndexOf(p)] = blocked
}

// PopulateBlocked resets Blocked to the structural state: every impassable tile.
func (m *Map) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.Blocked[i] = !t.IsPassable()
	}
}

// ClearOccupants empties every tile's occupant list.
func (m *Map) ClearOccupants() {
	for i := range m.Occupants {
		m.Occupants[i] = m.Occupants[i][:0]
	}
}

// OccupantsAt returns the entities standing on a tile.
func (m *Map) OccupantsAt(p Point) []entity.ID {
	if !m.InBounds(p.X, p.Y) {
		return nil
	}
	return m.Occupants[m.IndexOf(p)]
}

// ClearVisible marks every tile as not currently visible.
func (m *Map) ClearVisible() {
	for i := range m.Visible {
		m.Visible[i] = false
	}
}

// Reveal marks a tile as visible now and revealed forever.
func (m *Map) Reveal(p Point) {
	idx := m.IndexOf(p)
	m.Visible[idx] = true
	m.Revealed[idx] = true
}

// neighbor offsets: four cardinals first, then diagonals.
var exitOffsets = [8]struct {
	dx, dy int
	cost   float64
}{
	{-1, 0, cardinalCost},
	{1, 0, cardinalCost},
	{0, -1, cardinalCost},
	{0, 1, cardinalCost},
	{-1, -1, diagonalCost},
	{1, -1, diagonalCost},
	{-1, 1, diagonalCost},
	{1, 1, diagonalCost},
}

// AvailableExits lists the enterable neighbors of a tile with their step cost.
// Only the destination tile is checked; diagonal moves between two walls are allowed.
func (m *Map) AvailableExits(idx int) []pathfind.Exit {
	p := m.PointAt(idx)
	exits := make([]pathfind.Exit, 0, len(exitOffsets))
	for _, off := range exitOffsets {
		x, y := p.X+off.dx, p.Y+off.dy
		if m.IsBlocked(x, y) {
			continue
		}
		exits = append(exits, pathfind.Exit{Index: y*m.Width + x, Cost: off.cost})
	}
	return exits
}

// PathingDistance is the straight-line distance between two tiles.
func (m *Map) PathingDistance(a, b int) float64 {
	return Distance(m.PointAt(a), m.PointAt(b))
}

// Distance returns the Pythagorean distance between two points.
func Distance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
