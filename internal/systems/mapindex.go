package systems

import (
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// IndexMap rebuilds the map's blocked flags and occupant lists from scratch:
// walls block, and so does every tile holding a BlocksTile entity.
func IndexMap(m *world.Map, store *entity.Store) {
	m.PopulateBlocked()
	m.ClearOccupants()

	for _, id := range store.Positions.IDs() {
		pos, _ := store.Positions.Get(id)
		idx := m.IndexOf(*pos)

		if store.Blockers.Has(id) {
			m.Blocked[idx] = true
		}
		m.Occupants[idx] = append(m.Occupants[idx], id)
	}
}
