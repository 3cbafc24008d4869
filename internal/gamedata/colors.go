package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to an entity.Color.
func ParseHexColor(hex string) (entity.Color, error) {
	// Remove leading # if present
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return entity.Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return entity.Color{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return entity.Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
