package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/config"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/gamelog"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// New generates a dungeon from the configured seed and populates it: the
// player at the center of the first room, one random monster at the center
// of every other room.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	actors, err := gamedata.LoadActors()
	if err != nil {
		return nil, fmt.Errorf("load actors: %w", err)
	}
	registry, err := gamedata.NewMonsterRegistry(actors.Monsters)
	if err != nil {
		return nil, err
	}

	seed := cfg.ResolveSeed()
	rng := rand.New(rand.NewSource(seed))
	m := world.Generate(ctx, cfg.GenOptions(), rng)
	if len(m.Rooms) == 0 {
		return nil, fmt.Errorf("seed %d: %w", seed, ErrNoRooms)
	}

	g := newGame(m, entity.NewStore(), gamelog.New(cfg.Game.LogCapacity), opts...)
	g.seed = seed

	_, span := g.tracer.Start(ctx, "game.init")
	defer span.End()

	start := m.Rooms[0].Center()
	g.spawnPlayer(&actors.Player, start)
	for i := 1; i < len(m.Rooms); i++ {
		def := registry.SpawnRandom(rng)
		g.spawnMonster(def, m.Rooms[i].Center(), fmt.Sprintf("%s #%d", def.Name, i))
	}

	span.SetAttributes(
		attribute.Int64("game.seed", seed),
		attribute.Int("dungeon.rooms", len(m.Rooms)),
		attribute.Int("game.monsters", g.store.Monsters.Len()),
		attribute.Int("player.start_x", start.X),
		attribute.Int("player.start_y", start.Y),
	)
	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"seed":      seed,
		"rooms":     len(m.Rooms),
		"monsters":  g.store.Monsters.Len(),
		"kinds":     registry.Count(),
	}).Info("Game initialized.")

	g.log.Add(gamelog.KindInfo, "Welcome to the dungeon!")
	return g, nil
}

// spawnPlayer creates the player entity. The player does not block its tile.
func (g *Game) spawnPlayer(def *gamedata.ActorDef, at world.Point) entity.ID {
	id := g.store.Create()
	g.store.Positions.Set(id, at)
	g.store.Renderables.Set(id, def.Renderable())
	g.store.Viewsheds.Set(id, entity.NewViewshed(def.Sight))
	g.store.Stats.Set(id, def.CombatStats())
	g.store.Names.Set(id, entity.Name{Name: def.Name})
	g.store.Players.Set(id, entity.Tag{})
	return id
}

// spawnMonster creates a blocking monster entity.
func (g *Game) spawnMonster(def *gamedata.ActorDef, at world.Point, name string) entity.ID {
	id := g.store.Create()
	g.store.Positions.Set(id, at)
	g.store.Renderables.Set(id, def.Renderable())
	g.store.Viewsheds.Set(id, entity.NewViewshed(def.Sight))
	g.store.Stats.Set(id, def.CombatStats())
	g.store.Names.Set(id, entity.Name{Name: name})
	g.store.Monsters.Set(id, entity.Tag{})
	g.store.Blockers.Set(id, entity.Tag{})

	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"monster":   name,
		"kind":      def.ID,
		"room":      g.world.RoomIndexAt(at),
		"x":         at.X,
		"y":         at.Y,
	}).Debug("Monster spawned.")
	return id
}
