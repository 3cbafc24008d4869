package systems

import (
	"strings"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamelog"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// openMap returns a walled rectangle with a floor interior.
func openMap(w, h int) *world.Map {
	m := world.NewMap(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			m.Tiles[m.Index(x, y)] = world.TileFloor
		}
	}
	m.PopulateBlocked()
	return m
}

func spawnPlayer(s *entity.Store, x, y int) entity.ID {
	id := s.Create()
	s.Positions.Set(id, entity.Position{X: x, Y: y})
	s.Players.Set(id, entity.Tag{})
	s.Names.Set(id, entity.Name{Name: "Player"})
	s.Viewsheds.Set(id, entity.NewViewshed(8))
	s.Stats.Set(id, entity.CombatStats{MaxHP: 30, HP: 30, Defense: 2, Power: 5})
	return id
}

func spawnMonster(s *entity.Store, name string, x, y int) entity.ID {
	id := s.Create()
	s.Positions.Set(id, entity.Position{X: x, Y: y})
	s.Monsters.Set(id, entity.Tag{})
	s.Blockers.Set(id, entity.Tag{})
	s.Names.Set(id, entity.Name{Name: name})
	s.Viewsheds.Set(id, entity.NewViewshed(8))
	s.Stats.Set(id, entity.CombatStats{MaxHP: 16, HP: 16, Defense: 1, Power: 4})
	return id
}

func TestIndexMap(t *testing.T) {
	m := openMap(10, 6)
	s := entity.NewStore()
	player := spawnPlayer(s, 2, 2)
	orc := spawnMonster(s, "Orc", 5, 3)

	IndexMap(m, s)

	if m.IsBlocked(2, 2) {
		t.Error("player tile should not be blocked")
	}
	if !m.IsBlocked(5, 3) {
		t.Error("monster tile should be blocked")
	}
	if !m.IsBlocked(0, 0) {
		t.Error("wall should be blocked")
	}
	if got := m.OccupantsAt(entity.Position{X: 2, Y: 2}); len(got) != 1 || got[0] != player {
		t.Errorf("occupants at player tile = %v", got)
	}

	// Moving the monster and rebuilding must leave no trace at the old tile.
	pos, _ := s.Positions.Get(orc)
	pos.X = 6
	IndexMap(m, s)

	if m.IsBlocked(5, 3) {
		t.Error("stale blocked flag after rebuild")
	}
	if len(m.OccupantsAt(entity.Position{X: 5, Y: 3})) != 0 {
		t.Error("stale occupant after rebuild")
	}
	if got := m.OccupantsAt(entity.Position{X: 6, Y: 3}); len(got) != 1 || got[0] != orc {
		t.Errorf("occupants at new tile = %v", got)
	}
}

func TestVisibilityRecomputesOnlyDirty(t *testing.T) {
	logger.Discard()
	m := openMap(20, 10)
	s := entity.NewStore()
	player := spawnPlayer(s, 3, 3)
	spawnMonster(s, "Goblin", 15, 7)

	var vis Visibility
	vis.Run(m, s)

	if vis.Recomputations != 2 {
		t.Fatalf("Recomputations = %d, want 2", vis.Recomputations)
	}

	vis.Run(m, s)
	if vis.Recomputations != 2 {
		t.Errorf("clean viewsheds were recomputed: %d", vis.Recomputations)
	}

	vs, _ := s.Viewsheds.Get(player)
	vs.Dirty = true
	vis.Run(m, s)
	if vis.Recomputations != 3 {
		t.Errorf("Recomputations = %d, want 3", vis.Recomputations)
	}
}

func TestVisibilityPlayerUpdatesMap(t *testing.T) {
	logger.Discard()
	m := openMap(40, 10)
	s := entity.NewStore()
	player := spawnPlayer(s, 2, 5)
	spawnMonster(s, "Goblin", 30, 5)

	var vis Visibility
	vis.Run(m, s)

	if !m.Visible[m.Index(3, 5)] || !m.Revealed[m.Index(3, 5)] {
		t.Error("tile next to player should be visible and revealed")
	}
	// Tiles only the monster sees stay dark.
	if m.Visible[m.Index(30, 5)] || m.Revealed[m.Index(29, 5)] {
		t.Error("monster viewshed must not touch the map")
	}

	pos, _ := s.Positions.Get(player)
	pos.X = 20
	vs, _ := s.Viewsheds.Get(player)
	vs.Dirty = true
	vis.Run(m, s)

	if m.Visible[m.Index(3, 5)] {
		t.Error("tile out of range should no longer be visible")
	}
	if !m.Revealed[m.Index(3, 5)] {
		t.Error("revealed tiles must stay revealed")
	}
}

func TestMonsterAdjacentAttacks(t *testing.T) {
	logger.Discard()
	m := openMap(10, 10)
	s := entity.NewStore()
	player := spawnPlayer(s, 4, 4)
	orc := spawnMonster(s, "Orc", 5, 5)

	IndexMap(m, s)
	var vis Visibility
	vis.Run(m, s)
	NewMonsterAI(gamelog.New(10)).Run(m, s)

	intent, ok := s.Melee.Get(orc)
	if !ok {
		t.Fatal("adjacent monster should want to melee")
	}
	if intent.Target != player {
		t.Errorf("target = %v, want %v", intent.Target, player)
	}
	pos, _ := s.Positions.Get(orc)
	if pos.X != 5 || pos.Y != 5 {
		t.Errorf("attacking monster moved to %v", *pos)
	}
}

func TestMonsterStepsTowardVisiblePlayer(t *testing.T) {
	logger.Discard()
	m := openMap(20, 10)
	s := entity.NewStore()
	spawnPlayer(s, 2, 5)
	orc := spawnMonster(s, "Orc", 8, 5)
	log := gamelog.New(10)

	IndexMap(m, s)
	var vis Visibility
	vis.Run(m, s)
	NewMonsterAI(log).Run(m, s)

	pos, _ := s.Positions.Get(orc)
	if pos.X != 7 || pos.Y != 5 {
		t.Errorf("monster at %v, want (7,5)", *pos)
	}
	if m.IsBlocked(8, 5) {
		t.Error("vacated tile should be unblocked")
	}
	if !m.IsBlocked(7, 5) {
		t.Error("new tile should be blocked")
	}
	vs, _ := s.Viewsheds.Get(orc)
	if !vs.Dirty {
		t.Error("moving monster's viewshed should be dirty")
	}
	if s.Melee.Has(orc) {
		t.Error("distant monster should not melee")
	}

	entries := log.Recent(10)
	if len(entries) != 1 || !strings.Contains(entries[0].Text, "Orc shouts insults") {
		t.Errorf("log = %+v", entries)
	}
}

func TestMonsterShoutsOnlyOnFirstSighting(t *testing.T) {
	logger.Discard()
	m := openMap(30, 10)
	s := entity.NewStore()
	spawnPlayer(s, 2, 5)
	spawnMonster(s, "Goblin", 9, 5)
	log := gamelog.New(10)
	ai := NewMonsterAI(log)
	var vis Visibility

	for range 3 {
		IndexMap(m, s)
		vis.Run(m, s)
		ai.Run(m, s)
	}

	if log.Len() != 1 {
		t.Errorf("log has %d entries, want 1", log.Len())
	}
}

func TestMonsterIdleWhenPlayerHidden(t *testing.T) {
	logger.Discard()
	m := openMap(20, 10)
	for y := 0; y < 10; y++ {
		m.Tiles[m.Index(10, y)] = world.TileWall
	}
	m.PopulateBlocked()

	s := entity.NewStore()
	spawnPlayer(s, 5, 5)
	orc := spawnMonster(s, "Orc", 15, 5)
	log := gamelog.New(10)

	IndexMap(m, s)
	var vis Visibility
	vis.Run(m, s)
	NewMonsterAI(log).Run(m, s)

	pos, _ := s.Positions.Get(orc)
	if pos.X != 15 || pos.Y != 5 {
		t.Errorf("hidden monster moved to %v", *pos)
	}
	if log.Len() != 0 {
		t.Errorf("hidden monster should not shout, log = %+v", log.Recent(5))
	}
}

func TestMonsterWaitsBehindBlockerInCorridor(t *testing.T) {
	logger.Discard()
	// A one-tile-wide corridor along y=1.
	m := openMap(12, 3)
	s := entity.NewStore()
	spawnPlayer(s, 1, 1)
	first := spawnMonster(s, "Goblin", 4, 1)
	second := spawnMonster(s, "Orc", 5, 1)

	IndexMap(m, s)
	var vis Visibility
	vis.Run(m, s)
	NewMonsterAI(gamelog.New(10)).Run(m, s)

	p1, _ := s.Positions.Get(first)
	p2, _ := s.Positions.Get(second)
	if p1.X != 3 {
		t.Errorf("first monster at x=%d, want 3", p1.X)
	}
	// The goblin now holds the only way through, so the orc has no path.
	if p2.X != 5 {
		t.Errorf("second monster at x=%d, want 5", p2.X)
	}
	if !m.IsBlocked(3, 1) || !m.IsBlocked(5, 1) {
		t.Error("both occupied corridor tiles should stay blocked")
	}
	if m.IsBlocked(4, 1) {
		t.Error("vacated corridor tile should be unblocked")
	}
	vs, _ := s.Viewsheds.Get(second)
	if vs.Dirty {
		t.Error("waiting monster's viewshed should stay clean")
	}
}

func TestMonstersQueueInWideCorridor(t *testing.T) {
	logger.Discard()
	// A two-tile-wide corridor along y=1 and y=2.
	m := openMap(12, 4)
	s := entity.NewStore()
	spawnPlayer(s, 1, 1)
	first := spawnMonster(s, "Goblin", 4, 1)
	second := spawnMonster(s, "Orc", 5, 1)

	IndexMap(m, s)
	var vis Visibility
	vis.Run(m, s)
	NewMonsterAI(gamelog.New(10)).Run(m, s)

	p1, _ := s.Positions.Get(first)
	p2, _ := s.Positions.Get(second)
	if p1.X != 3 || p1.Y != 1 {
		t.Errorf("first monster at %v, want (3,1)", *p1)
	}
	if p2.X != 4 {
		t.Errorf("second monster at x=%d, want 4", p2.X)
	}
	if *p1 == *p2 {
		t.Error("monsters share a tile")
	}
}

func TestMonsterChasesUntilAdjacent(t *testing.T) {
	logger.Discard()
	m := openMap(20, 12)
	s := entity.NewStore()
	player := spawnPlayer(s, 3, 3)
	orc := spawnMonster(s, "Orc", 9, 8)
	ai := NewMonsterAI(gamelog.New(10))
	var vis Visibility
	playerPos, _ := s.PlayerPosition()

	for tick := 0; tick < 20; tick++ {
		IndexMap(m, s)
		vis.Run(m, s)
		ai.Run(m, s)

		pos, _ := s.Positions.Get(orc)
		if *pos == playerPos {
			t.Fatalf("tick %d: monster stepped onto the player", tick)
		}
		if intent, ok := s.Melee.Get(orc); ok {
			if intent.Target != player {
				t.Errorf("target = %v, want player", intent.Target)
			}
			if world.Distance(*pos, playerPos) >= MeleeRange {
				t.Errorf("melee declared from distance %.2f", world.Distance(*pos, playerPos))
			}
			return
		}
	}
	t.Fatal("monster never reached the player")
}

func TestMonsterAINoPlayer(t *testing.T) {
	m := openMap(10, 10)
	s := entity.NewStore()
	orc := spawnMonster(s, "Orc", 5, 5)

	NewMonsterAI(nil).Run(m, s)

	if s.Melee.Has(orc) {
		t.Error("no player, no intents")
	}
}
