package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamelog"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/pathfind"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// MeleeRange is the distance under which a monster attacks instead of moving.
// 1.5 covers all eight neighbors.
const MeleeRange = 1.5

// MonsterAI decides each monster's action for the monster turn.
type MonsterAI struct {
	Log *gamelog.Log

	alerted map[entity.ID]bool
}

// NewMonsterAI creates the monster behavior system.
func NewMonsterAI(log *gamelog.Log) *MonsterAI {
	return &MonsterAI{Log: log, alerted: make(map[entity.ID]bool)}
}

// Run lets every monster that can see the player close in or attack.
// Monsters that cannot see the player do nothing.
func (ai *MonsterAI) Run(m *world.Map, store *entity.Store) {
	player, ok := store.Player()
	if !ok {
		return
	}
	playerPos, ok := store.PlayerPosition()
	if !ok {
		return
	}

	for _, id := range entity.Query(store.Monsters, store.Viewsheds, store.Positions) {
		vs, _ := store.Viewsheds.Get(id)
		pos, _ := store.Positions.Get(id)
		name := store.NameOf(id)
		distance := world.Distance(*pos, playerPos)

		aiLogger := logger.Log.WithFields(logrus.Fields{
			"component": "monster_ai",
			"monster":   name,
			"x":         pos.X,
			"y":         pos.Y,
			"distance":  distance,
		})

		if distance < MeleeRange {
			if store.AddWantsToMelee(id, player) {
				aiLogger.Debug("Player adjacent. Action: ATTACK")
			}
			continue
		}

		if !vs.CanSee(playerPos) {
			if ai.alerted[id] {
				delete(ai.alerted, id)
				aiLogger.Debug("Lost sight of player.")
			}
			continue
		}

		if !ai.alerted[id] {
			ai.alerted[id] = true
			if ai.Log != nil {
				ai.Log.Add(gamelog.KindSpeech, "%s shouts insults", name)
			}
		}

		if ai.stepToward(m, pos, playerPos) {
			vs.Dirty = true
			aiLogger.WithFields(logrus.Fields{"to_x": pos.X, "to_y": pos.Y}).Debug("Action: MOVE")
		} else {
			aiLogger.Debug("No path to player. Action: WAIT")
		}
	}
}

// stepToward moves pos one step along the shortest path to goal. The mover's
// own tile is unblocked for the search and the tile it ends on is re-blocked.
func (ai *MonsterAI) stepToward(m *world.Map, pos *entity.Position, goal world.Point) bool {
	start := m.IndexOf(*pos)
	wasBlocked := m.Blocked[start]
	m.Blocked[start] = false

	path := pathfind.FindPath(m, start, m.IndexOf(goal))
	if !path.Success || len(path.Steps) < 2 {
		m.Blocked[start] = wasBlocked
		return false
	}

	next := m.PointAt(path.Steps[1])
	pos.X, pos.Y = next.X, next.Y
	m.SetBlocked(next, true)
	return true
}

// Forget drops any per-monster state kept for a destroyed entity.
func (ai *MonsterAI) Forget(id entity.ID) {
	delete(ai.alerted, id)
}
