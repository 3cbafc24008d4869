package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/fov"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Visibility recomputes dirty viewsheds. Only the player's viewshed touches
// the map's Visible and Revealed flags.
type Visibility struct {
	// Recomputations counts field-of-view calculations since creation.
	Recomputations int
}

// Run recomputes every dirty viewshed and clears its dirty flag.
func (v *Visibility) Run(m *world.Map, store *entity.Store) {
	for _, id := range entity.Query(store.Viewsheds, store.Positions) {
		vs, _ := store.Viewsheds.Get(id)
		if !vs.Dirty {
			continue
		}
		pos, _ := store.Positions.Get(id)

		vs.VisibleTiles = fov.Compute(*pos, vs.Range, m)
		vs.Dirty = false
		v.Recomputations++

		if store.Players.Has(id) {
			m.ClearVisible()
			vs.VisibleTiles.Each(m.Reveal)
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "visibility",
			"entity":    store.NameOf(id),
			"x":         pos.X,
			"y":         pos.Y,
			"visible":   vs.VisibleTiles.Size(),
		}).Debug("Viewshed recomputed.")
	}
}
