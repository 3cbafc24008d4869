// Package game provides the turn coordinator: it owns the map, the entity
// store and the run state, and decides which systems run on each tick.
package game

// RunState is the coordinator's position in the turn cycle.
type RunState int

const (
	// StatePreRun computes the initial index and field of view.
	StatePreRun RunState = iota
	// StateAwaitingInput waits for a player command.
	StateAwaitingInput
	// StatePlayerTurn resolves the consequences of the player's action.
	StatePlayerTurn
	// StateMonsterTurn lets monsters act and resolves their attacks.
	StateMonsterTurn
)

// String returns a human-readable state name.
func (s RunState) String() string {
	switch s {
	case StatePreRun:
		return "pre_run"
	case StateAwaitingInput:
		return "awaiting_input"
	case StatePlayerTurn:
		return "player_turn"
	case StateMonsterTurn:
		return "monster_turn"
	default:
		return "unknown"
	}
}
