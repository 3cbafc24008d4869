package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 80
	DefaultHeight = 50

	// Room placement parameters
	DefaultMaxRooms    = 30 // Placement attempts
	DefaultMinRoomSize = 6  // Inclusive
	DefaultMaxRoomSize = 10 // Exclusive
)

// ErrInvalidOptions is returned when generation options cannot produce a map.
var ErrInvalidOptions = errors.New("invalid dungeon options")

// GenOptions controls dungeon generation.
type GenOptions struct {
	Width    int
	Height   int
	MaxRooms int
	MinSize  int
	MaxSize  int
}

// DefaultOptions returns the standard 80x50 rooms-and-corridors settings.
func DefaultOptions() GenOptions {
	return GenOptions{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		MaxRooms: DefaultMaxRooms,
		MinSize:  DefaultMinRoomSize,
		MaxSize:  DefaultMaxRoomSize,
	}
}

// Validate checks that a room of the largest size still fits inside the border.
func (o GenOptions) Validate() error {
	switch {
	case o.MinSize < 1:
		return fmt.Errorf("%w: min room size %d must be positive", ErrInvalidOptions, o.MinSize)
	case o.MaxSize <= o.MinSize:
		return fmt.Errorf("%w: max room size %d must exceed min %d", ErrInvalidOptions, o.MaxSize, o.MinSize)
	case o.Width < o.MaxSize+2 || o.Height < o.MaxSize+2:
		return fmt.Errorf("%w: %dx%d map too small for rooms up to %d", ErrInvalidOptions, o.Width, o.Height, o.MaxSize)
	case o.MaxRooms < 0:
		return fmt.Errorf("%w: negative room attempts %d", ErrInvalidOptions, o.MaxRooms)
	}
	return nil
}

// NewDungeon generates a map with default options from a seed.
func NewDungeon(ctx context.Context, seed int64) *Map {
	return Generate(ctx, DefaultOptions(), rand.New(rand.NewSource(seed)))
}

// Generate builds a rooms-and-corridors map. Options must have passed Validate.
//
// Each attempt samples a room and keeps it only if it overlaps no earlier room.
// Every kept room after the first is joined to the previous one by an L-shaped
// corridor between their centers. The same rng stream yields the same map.
func Generate(ctx context.Context, opts GenOptions, rng *rand.Rand) *Map {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()
	m := NewMap(opts.Width, opts.Height)

	for i := 0; i < opts.MaxRooms; i++ {
		w := opts.MinSize + rng.Intn(opts.MaxSize-opts.MinSize)
		h := opts.MinSize + rng.Intn(opts.MaxSize-opts.MinSize)
		x := rng.Intn(m.Width - 1 - w)
		y := rng.Intn(m.Height - 1 - h)

		room := NewRect(x, y, w, h)
		if m.overlapsRoom(room) {
			continue
		}

		m.carveRoom(room)
		if len(m.Rooms) > 0 {
			m.carveCorridor(m.Rooms[len(m.Rooms)-1].Center(), room.Center(), rng)
		}
		m.Rooms = append(m.Rooms, room)
	}

	span.SetAttributes(
		attribute.Int("dungeon.width", m.Width),
		attribute.Int("dungeon.height", m.Height),
		attribute.Int("dungeon.room_attempts", opts.MaxRooms),
		attribute.Int("dungeon.room_count", len(m.Rooms)),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return m
}

// RoomIndexAt returns the index of the room whose floor contains the point, or -1.
func (m *Map) RoomIndexAt(p Point) int {
	for i, room := range m.Rooms {
		if room.Contains(p) {
			return i
		}
	}
	return -1
}

func (m *Map) overlapsRoom(room Rect) bool {
	for _, other := range m.Rooms {
		if room.Intersects(other) {
			return true
		}
	}
	return false
}

// carveRoom sets the room's interior to floor.
func (m *Map) carveRoom(room Rect) {
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			m.carve(x, y)
		}
	}
}

// carveCorridor joins two points with one horizontal and one vertical run,
// choosing which comes first by coin flip.
func (m *Map) carveCorridor(from, to Point, rng *rand.Rand) {
	if rng.Intn(2) == 1 {
		m.carveHorizontalTunnel(from.X, to.X, from.Y)
		m.carveVerticalTunnel(from.Y, to.Y, to.X)
	} else {
		m.carveVerticalTunnel(from.Y, to.Y, from.X)
		m.carveHorizontalTunnel(from.X, to.X, to.Y)
	}
}

func (m *Map) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		m.carve(x, y)
	}
}

func (m *Map) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		m.carve(x, y)
	}
}

// carve turns one tile to floor. The outer border is never touched.
func (m *Map) carve(x, y int) {
	if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
		m.Tiles[y*m.Width+x] = TileFloor
	}
}
