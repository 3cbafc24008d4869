package game

import (
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/systems"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// TryMovePlayer applies a movement command. Stepping into a creature queues a
// melee attack instead; walls, blocked tiles and the map edge are a no-op.
// Returns true if the player moved or attacked.
func (g *Game) TryMovePlayer(dx, dy int) bool {
	player, ok := g.store.Player()
	if !ok {
		return false
	}
	pos, ok := g.store.Positions.Get(player)
	if !ok {
		return false
	}
	dest := world.Point{X: pos.X + dx, Y: pos.Y + dy}
	if !g.world.InBounds(dest.X, dest.Y) {
		return false
	}

	// Monsters moved and died since the last rebuild.
	systems.IndexMap(g.world, g.store)

	for _, target := range g.world.OccupantsAt(dest) {
		if target == player || !g.store.Stats.Has(target) {
			continue
		}
		if g.store.AddWantsToMelee(player, target) {
			logger.Log.WithFields(logrus.Fields{
				"component": "game",
				"target":    g.store.NameOf(target),
			}).Debug("Player attacks.")
			return true
		}
	}

	if g.world.IsBlocked(dest.X, dest.Y) {
		return false
	}

	pos.X, pos.Y = dest.X, dest.Y
	if vs, ok := g.store.Viewsheds.Get(player); ok {
		vs.Dirty = true
	}
	return true
}
