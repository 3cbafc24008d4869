package game

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamelog"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/systems"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// ErrNoRooms is returned when the generated map has nowhere to place the player.
var ErrNoRooms = errors.New("dungeon has no rooms")

// Game holds the entire game state.
type Game struct {
	world *world.Map
	store *entity.Store
	log   *gamelog.Log

	visibility systems.Visibility
	monsters   *systems.MonsterAI
	combat     *combat.Resolver

	tracer trace.Tracer
	state  RunState
	turn   int
	seed   int64
}

// Option customizes a Game.
type Option func(*Game)

// WithTracer replaces the default tracer.
func WithTracer(t trace.Tracer) Option {
	return func(g *Game) { g.tracer = t }
}

// newGame wires the systems around an existing map and store.
func newGame(m *world.Map, store *entity.Store, log *gamelog.Log, opts ...Option) *Game {
	g := &Game{
		world:    m,
		store:    store,
		log:      log,
		monsters: systems.NewMonsterAI(log),
		combat:   combat.NewResolver(log),
		tracer:   telemetry.Tracer("game"),
		state:    StatePreRun,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns the current run state.
func (g *Game) State() RunState { return g.state }

// Turn returns the number of player actions taken.
func (g *Game) Turn() int { return g.turn }

// Seed returns the seed the dungeon was generated from.
func (g *Game) Seed() int64 { return g.seed }

// Map returns the dungeon map.
func (g *Game) Map() *world.Map { return g.world }

// Store returns the entity store.
func (g *Game) Store() *entity.Store { return g.store }

// Log returns the message log.
func (g *Game) Log() *gamelog.Log { return g.log }

// PlayerAlive reports whether the player entity still exists.
func (g *Game) PlayerAlive() bool {
	_, ok := g.store.Player()
	return ok
}

// Tick performs exactly one state transition and returns the resulting scene.
// A nil input source behaves like one with nothing pending.
func (g *Game) Tick(ctx context.Context, in InputSource) *Scene {
	from := g.state
	ctx, span := g.tracer.Start(ctx, "game.tick")
	defer span.End()

	switch g.state {
	case StatePreRun:
		g.runIndex(ctx)
		g.runVisibility(ctx)
		g.state = StateAwaitingInput

	case StateAwaitingInput:
		if in == nil || !g.PlayerAlive() {
			break
		}
		cmd := in.Poll()
		dx, dy, ok := cmd.Delta()
		if !ok {
			break
		}
		g.turn++
		g.log.SetTurn(g.turn)
		moved := g.TryMovePlayer(dx, dy)
		span.SetAttributes(
			attribute.String("game.command", cmd.String()),
			attribute.Bool("game.player_acted", moved),
		)
		g.state = StatePlayerTurn

	case StatePlayerTurn:
		g.runIndex(ctx)
		g.runVisibility(ctx)
		g.runCombat(ctx)
		g.state = StateMonsterTurn

	case StateMonsterTurn:
		g.runIndex(ctx)
		g.runVisibility(ctx)
		g.runMonsters(ctx)
		g.runCombat(ctx)
		g.state = StateAwaitingInput
	}

	span.SetAttributes(
		attribute.String("game.state.from", from.String()),
		attribute.String("game.state.to", g.state.String()),
		attribute.Int("game.turn", g.turn),
	)
	return g.Scene()
}

func (g *Game) runIndex(ctx context.Context) {
	_, span := g.tracer.Start(ctx, "systems.index")
	defer span.End()
	systems.IndexMap(g.world, g.store)
}

func (g *Game) runVisibility(ctx context.Context) {
	_, span := g.tracer.Start(ctx, "systems.visibility")
	defer span.End()
	before := g.visibility.Recomputations
	g.visibility.Run(g.world, g.store)
	span.SetAttributes(attribute.Int("fov.recomputed", g.visibility.Recomputations-before))
}

func (g *Game) runMonsters(ctx context.Context) {
	_, span := g.tracer.Start(ctx, "systems.monster_ai")
	defer span.End()
	g.monsters.Run(g.world, g.store)
	span.SetAttributes(attribute.Int("monster.intents", g.store.Melee.Len()))
}

func (g *Game) runCombat(ctx context.Context) {
	report := g.combat.Resolve(ctx, g.store)
	for _, d := range report.Deaths {
		g.monsters.Forget(d.ID)
	}
	if report.PlayerDied {
		logger.Log.WithFields(logrus.Fields{
			"component": "game",
			"turn":      g.turn,
			"seed":      g.seed,
		}).Warn("Player died.")
	}
}
