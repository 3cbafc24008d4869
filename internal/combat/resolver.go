// Package combat resolves queued melee intents into damage and removes the dead.
package combat

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamelog"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

// Hit is one resolved melee exchange.
type Hit struct {
	Attacker entity.ID
	Target   entity.ID
	Damage   int
}

// Death records an entity removed by the death sweep.
type Death struct {
	ID       entity.ID
	Name     string
	IsPlayer bool
}

// Report summarizes one resolver pass.
type Report struct {
	Hits       []Hit
	Deaths     []Death
	PlayerDied bool
}

// Resolver runs the melee, damage and death phases in that order.
type Resolver struct {
	log *gamelog.Log
}

// NewResolver creates a resolver that writes combat messages to log.
// A nil log is allowed.
func NewResolver(log *gamelog.Log) *Resolver {
	return &Resolver{log: log}
}

// Resolve consumes every WantsToMelee and SufferDamage component in the store.
// Attacks are processed in ascending attacker ID order. An intent whose
// attacker or target is missing, statless or already dead is dropped silently.
func (r *Resolver) Resolve(ctx context.Context, store *entity.Store) Report {
	_, span := telemetry.Tracer("combat").Start(ctx, "combat.resolve")
	defer span.End()

	var report Report
	r.resolveMelee(store, &report)
	applied := r.applyDamage(store)
	r.sweepDead(store, &report)

	span.SetAttributes(
		attribute.Int("combat.hits", len(report.Hits)),
		attribute.Int("combat.damaged", applied),
		attribute.Int("combat.deaths", len(report.Deaths)),
		attribute.Bool("combat.player_died", report.PlayerDied),
	)
	return report
}

// resolveMelee turns attack intents into pending damage.
func (r *Resolver) resolveMelee(store *entity.Store, report *Report) {
	for _, id := range store.Melee.IDs() {
		intent, _ := store.Melee.Get(id)
		target := intent.Target
		store.Melee.Remove(id)

		attacker, ok := store.Stats.Get(id)
		if !ok || !attacker.IsAlive() {
			continue
		}
		defender, ok := store.Stats.Get(target)
		if !ok || !defender.IsAlive() {
			continue
		}

		damage := CalculateDamage(attacker, defender)
		store.AddDamage(target, damage)
		report.Hits = append(report.Hits, Hit{Attacker: id, Target: target, Damage: damage})

		attackerName, targetName := store.NameOf(id), store.NameOf(target)
		logger.Log.WithFields(logrus.Fields{
			"component": "combat",
			"attacker":  attackerName,
			"target":    targetName,
			"power":     attacker.Power,
			"defense":   defender.Defense,
			"damage":    damage,
		}).Debug("Melee resolved.")

		if damage == 0 {
			r.message("%s is unable to hurt %s.", attackerName, targetName)
		} else {
			r.message("%s hits %s, for %d hp.", attackerName, targetName, damage)
		}
	}
}

// applyDamage subtracts every accumulated amount and clears the accumulators.
func (r *Resolver) applyDamage(store *entity.Store) int {
	ids := store.Damage.IDs()
	for _, id := range ids {
		pending, _ := store.Damage.Get(id)
		if stats, ok := store.Stats.Get(id); ok {
			stats.HP -= pending.Total()
		}
		store.Damage.Remove(id)
	}
	return len(ids)
}

// sweepDead destroys every entity at or below zero hit points.
func (r *Resolver) sweepDead(store *entity.Store, report *Report) {
	for _, id := range store.Stats.IDs() {
		stats, _ := store.Stats.Get(id)
		if stats.IsAlive() {
			continue
		}

		death := Death{ID: id, Name: store.NameOf(id), IsPlayer: store.Players.Has(id)}
		if !store.Destroy(id) {
			continue
		}
		report.Deaths = append(report.Deaths, death)

		logger.Log.WithFields(logrus.Fields{
			"component": "combat",
			"entity":    death.Name,
			"hp":        stats.HP,
			"player":    death.IsPlayer,
		}).Info("Entity died.")

		if death.IsPlayer {
			report.PlayerDied = true
			r.message("You are dead!")
		} else {
			r.message("%s is dead.", death.Name)
		}
	}
}

func (r *Resolver) message(format string, args ...any) {
	if r.log != nil {
		r.log.Add(gamelog.KindCombat, format, args...)
	}
}

// CalculateDamage returns the damage one melee hit would deal, never negative.
func CalculateDamage(attacker, defender *entity.CombatStats) int {
	return max(0, attacker.Power-defender.Defense)
}
