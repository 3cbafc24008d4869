package gamedata

import (
	"errors"
	"math/rand"
)

// ErrNoMonsters is returned when no spawnable monster definitions are available.
var ErrNoMonsters = errors.New("no spawnable monsters defined")

// MonsterRegistry holds loaded monster definitions and provides spawning utilities.
type MonsterRegistry struct {
	monsters    []ActorDef
	totalWeight int
}

// NewMonsterRegistry creates a registry from loaded monster definitions.
func NewMonsterRegistry(monsters []ActorDef) (*MonsterRegistry, error) {
	totalWeight := 0
	for _, m := range monsters {
		totalWeight += m.SpawnWeight
	}
	if len(monsters) == 0 || totalWeight <= 0 {
		return nil, ErrNoMonsters
	}
	return &MonsterRegistry{
		monsters:    monsters,
		totalWeight: totalWeight,
	}, nil
}

// SpawnRandom selects a random monster definition using weighted probability.
// Monsters with higher spawnWeight are more likely to be selected.
func (r *MonsterRegistry) SpawnRandom(rng *rand.Rand) *ActorDef {
	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.monsters {
		cumulative += r.monsters[i].SpawnWeight
		if roll < cumulative {
			return &r.monsters[i]
		}
	}

	return &r.monsters[len(r.monsters)-1]
}

// Count returns the number of monster types in the registry.
func (r *MonsterRegistry) Count() int {
	return len(r.monsters)
}
