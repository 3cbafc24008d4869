// Package entity provides entity identifiers and a columnar component store.
//
// Entities have no type hierarchy: an entity is whatever set of components is
// attached to its ID. Systems select entities by intersecting columns.
package entity

import "fmt"

// ID identifies an entity. The zero ID is never issued.
type ID uint32

// String returns a compact log form of the ID.
func (id ID) String() string {
	return fmt.Sprintf("#%d", uint32(id))
}

// Queryable is the type-erased view of a Column used by Destroy and Query.
type Queryable interface {
	Has(id ID) bool
	Remove(id ID)
	Len() int
	IDs() []ID
}

// Store owns every entity and all attached components.
type Store struct {
	next  ID
	alive map[ID]struct{}

	Positions   *Column[Position]
	Renderables *Column[Renderable]
	Viewsheds   *Column[Viewshed]
	Stats       *Column[CombatStats]
	Melee       *Column[WantsToMelee]
	Damage      *Column[SufferDamage]
	Names       *Column[Name]
	Players     *Column[Tag]
	Monsters    *Column[Tag]
	Blockers    *Column[Tag]

	columns []Queryable
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{
		alive:       make(map[ID]struct{}),
		Positions:   newColumn[Position](),
		Renderables: newColumn[Renderable](),
		Viewsheds:   newColumn[Viewshed](),
		Stats:       newColumn[CombatStats](),
		Melee:       newColumn[WantsToMelee](),
		Damage:      newColumn[SufferDamage](),
		Names:       newColumn[Name](),
		Players:     newColumn[Tag](),
		Monsters:    newColumn[Tag](),
		Blockers:    newColumn[Tag](),
	}
	s.columns = []Queryable{
		s.Positions, s.Renderables, s.Viewsheds, s.Stats, s.Melee,
		s.Damage, s.Names, s.Players, s.Monsters, s.Blockers,
	}
	return s
}

// Create allocates a new entity with no components.
func (s *Store) Create() ID {
	s.next++
	s.alive[s.next] = struct{}{}
	return s.next
}

// Alive reports whether the entity exists.
func (s *Store) Alive(id ID) bool {
	_, ok := s.alive[id]
	return ok
}

// Count returns the number of live entities.
func (s *Store) Count() int {
	return len(s.alive)
}

// Destroy removes an entity and every component attached to it.
// Returns false if the entity was already gone.
func (s *Store) Destroy(id ID) bool {
	if !s.Alive(id) {
		return false
	}
	for _, c := range s.columns {
		c.Remove(id)
	}
	delete(s.alive, id)
	return true
}

// Player returns the entity tagged as the player.
func (s *Store) Player() (ID, bool) {
	ids := s.Players.IDs()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// PlayerPosition returns the position of the player entity. There is no
// separately stored copy; the player's Position component is the only source.
func (s *Store) PlayerPosition() (Position, bool) {
	id, ok := s.Player()
	if !ok {
		return Position{}, false
	}
	pos, ok := s.Positions.Get(id)
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// NameOf returns the entity's name, or its ID when it has none.
func (s *Store) NameOf(id ID) string {
	if n, ok := s.Names.Get(id); ok {
		return n.Name
	}
	return id.String()
}

// AddWantsToMelee records an attack intent. Intents naming an attacker or a
// target that no longer exists are dropped and false is returned.
func (s *Store) AddWantsToMelee(attacker, target ID) bool {
	if !s.Alive(attacker) || !s.Alive(target) {
		return false
	}
	s.Melee.Set(attacker, WantsToMelee{Target: target})
	return true
}

// AddDamage appends a pending damage amount to the victim's accumulator.
// Multiple attackers in one pass all land; nothing is overwritten.
func (s *Store) AddDamage(victim ID, amount int) bool {
	if !s.Alive(victim) {
		return false
	}
	if d, ok := s.Damage.Get(victim); ok {
		d.Amounts = append(d.Amounts, amount)
		return true
	}
	s.Damage.Set(victim, SufferDamage{Amounts: []int{amount}})
	return true
}
