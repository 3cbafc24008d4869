package combat

import (
	"context"
	"strings"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamelog"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
)

func newFighter(s *entity.Store, name string, hp, defense, power int) entity.ID {
	id := s.Create()
	s.Names.Set(id, entity.Name{Name: name})
	s.Stats.Set(id, entity.CombatStats{MaxHP: hp, HP: hp, Defense: defense, Power: power})
	return id
}

func hpOf(t *testing.T, s *entity.Store, id entity.ID) int {
	t.Helper()
	stats, ok := s.Stats.Get(id)
	if !ok {
		t.Fatalf("entity %v has no stats", id)
	}
	return stats.HP
}

func TestResolveMeleeDamage(t *testing.T) {
	logger.Discard()
	s := entity.NewStore()
	// Power 5 against defense 2: 3 damage.
	player := newFighter(s, "Player", 30, 2, 5)
	goblin := newFighter(s, "Goblin", 16, 2, 4)
	s.AddWantsToMelee(player, goblin)
	log := gamelog.New(10)

	report := NewResolver(log).Resolve(context.Background(), s)

	if len(report.Hits) != 1 || report.Hits[0].Damage != 3 {
		t.Fatalf("Expected one hit for 3, got %+v", report.Hits)
	}
	if got := hpOf(t, s, goblin); got != 13 {
		t.Errorf("Expected goblin HP 13, got %d", got)
	}
	if s.Melee.Len() != 0 || s.Damage.Len() != 0 {
		t.Error("Expected intents and damage to be consumed")
	}
	if msg := log.Recent(1)[0].Text; msg != "Player hits Goblin, for 3 hp." {
		t.Errorf("Unexpected log message %q", msg)
	}
}

func TestResolveMeleeNoDamage(t *testing.T) {
	logger.Discard()
	s := entity.NewStore()
	// Power 5 against defense 7: no damage, no healing.
	attacker := newFighter(s, "Player", 30, 2, 5)
	tank := newFighter(s, "Orc", 16, 7, 4)
	s.AddWantsToMelee(attacker, tank)
	log := gamelog.New(10)

	report := NewResolver(log).Resolve(context.Background(), s)

	if report.Hits[0].Damage != 0 {
		t.Errorf("Expected 0 damage, got %d", report.Hits[0].Damage)
	}
	if got := hpOf(t, s, tank); got != 16 {
		t.Errorf("Expected HP unchanged at 16, got %d", got)
	}
	if msg := log.Recent(1)[0].Text; msg != "Player is unable to hurt Orc." {
		t.Errorf("Unexpected log message %q", msg)
	}
}

func TestResolveTwoLethalAttackers(t *testing.T) {
	logger.Discard()
	s := entity.NewStore()
	victim := newFighter(s, "Goblin", 4, 0, 1)
	a := newFighter(s, "Orc", 10, 0, 5)
	b := newFighter(s, "Troll", 10, 0, 5)
	s.AddWantsToMelee(a, victim)
	s.AddWantsToMelee(b, victim)
	log := gamelog.New(10)

	report := NewResolver(log).Resolve(context.Background(), s)

	if len(report.Hits) != 2 {
		t.Fatalf("Expected both hits to land, got %d", len(report.Hits))
	}
	if len(report.Deaths) != 1 || report.Deaths[0].ID != victim {
		t.Fatalf("Expected a single death, got %+v", report.Deaths)
	}
	if s.Alive(victim) {
		t.Error("Expected victim to be destroyed")
	}
	dead := 0
	for _, e := range log.Recent(10) {
		if strings.HasSuffix(e.Text, "is dead.") {
			dead++
		}
	}
	if dead != 1 {
		t.Errorf("Expected one death message, got %d", dead)
	}
}

func TestResolveAccumulatesDamage(t *testing.T) {
	logger.Discard()
	s := entity.NewStore()
	victim := newFighter(s, "Player", 30, 1, 5)
	a := newFighter(s, "Goblin", 16, 1, 4)
	b := newFighter(s, "Orc", 16, 1, 4)
	s.AddWantsToMelee(a, victim)
	s.AddWantsToMelee(b, victim)

	NewResolver(nil).Resolve(context.Background(), s)

	if got := hpOf(t, s, victim); got != 24 {
		t.Errorf("Expected HP 24 after two hits of 3, got %d", got)
	}
}

func TestResolveSkipsMissingParticipants(t *testing.T) {
	logger.Discard()
	s := entity.NewStore()
	attacker := newFighter(s, "Orc", 16, 1, 4)
	target := newFighter(s, "Goblin", 16, 1, 4)
	s.AddWantsToMelee(attacker, target)
	s.Destroy(target)

	// An intent from an entity without stats is also ignored.
	ghost := s.Create()
	other := newFighter(s, "Player", 30, 2, 5)
	s.Melee.Set(ghost, entity.WantsToMelee{Target: other})

	report := NewResolver(nil).Resolve(context.Background(), s)

	if len(report.Hits) != 0 {
		t.Errorf("Expected no hits, got %+v", report.Hits)
	}
	if got := hpOf(t, s, other); got != 30 {
		t.Errorf("Expected HP 30, got %d", got)
	}
	if s.Melee.Len() != 0 {
		t.Error("Expected stale intents to be consumed")
	}
}

func TestResolvePlayerDeath(t *testing.T) {
	logger.Discard()
	s := entity.NewStore()
	player := newFighter(s, "Player", 2, 0, 5)
	s.Players.Set(player, entity.Tag{})
	orc := newFighter(s, "Orc", 16, 1, 4)
	s.AddWantsToMelee(orc, player)

	report := NewResolver(gamelog.New(5)).Resolve(context.Background(), s)

	if !report.PlayerDied {
		t.Error("Expected PlayerDied")
	}
	if _, ok := s.Player(); ok {
		t.Error("Expected player entity to be removed")
	}
}

func TestResolveSweepsPreexistingDead(t *testing.T) {
	logger.Discard()
	s := entity.NewStore()
	corpse := newFighter(s, "Goblin", 16, 1, 4)
	stats, _ := s.Stats.Get(corpse)
	stats.HP = 0

	report := NewResolver(nil).Resolve(context.Background(), s)

	if len(report.Deaths) != 1 || s.Alive(corpse) {
		t.Errorf("Expected zero-HP entity to be swept, got %+v", report.Deaths)
	}
}

func TestCalculateDamage(t *testing.T) {
	tests := []struct {
		power, defense, want int
	}{
		{5, 2, 3},
		{4, 4, 0},
		{5, 7, 0},
		{10, 0, 10},
	}
	for _, tt := range tests {
		got := CalculateDamage(
			&entity.CombatStats{Power: tt.power},
			&entity.CombatStats{Defense: tt.defense},
		)
		if got != tt.want {
			t.Errorf("CalculateDamage(%d vs %d) = %d, want %d", tt.power, tt.defense, got, tt.want)
		}
	}
}
