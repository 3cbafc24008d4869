// Package fov computes field of view on a tile grid with recursive shadowcasting.
package fov

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Opacity is the grid view the algorithm needs.
type Opacity interface {
	InBounds(x, y int) bool
	IsOpaque(x, y int) bool
}

// octant transforms: worldX = cx + dx*xx + dy*xy, worldY = cy + dx*yx + dy*yy.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Compute returns every in-bounds tile within radius of origin that has an
// unobstructed line of sight from it. Opaque tiles are visible themselves but
// hide what lies behind them. The origin is always visible.
func Compute(origin world.Point, radius int, grid Opacity) mapset.Set[world.Point] {
	visible := mapset.New[world.Point]()
	if radius < 0 || !grid.InBounds(origin.X, origin.Y) {
		return visible
	}
	visible.Put(origin)

	for _, m := range octants {
		castLight(grid, origin.X, origin.Y, 1, 1.0, 0.0, radius, m[0], m[1], m[2], m[3], visible)
	}
	return visible
}

// castLight scans one octant row by row, recursing when a wall splits the
// light cone.
func castLight(grid Opacity, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, visible mapset.Set[world.Point]) {
	if start < end {
		return
	}

	radiusSq := radius * radius
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			x := cx + dx*xx + dy*xy
			y := cy + dx*yx + dy*yy

			if dx*dx+dy*dy <= radiusSq && grid.InBounds(x, y) {
				visible.Put(world.Point{X: x, Y: y})
			}

			opaque := !grid.InBounds(x, y) || grid.IsOpaque(x, y)
			if blocked {
				if opaque {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque && j < radius {
				blocked = true
				castLight(grid, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}

		if blocked {
			break
		}
	}
}
