package game

// Command is an abstract player action decoded by the host.
type Command int

const (
	CommandNone Command = iota
	CommandMoveN
	CommandMoveS
	CommandMoveE
	CommandMoveW
	CommandMoveNE
	CommandMoveNW
	CommandMoveSE
	CommandMoveSW
)

var commandDeltas = map[Command][2]int{
	CommandMoveN:  {0, -1},
	CommandMoveS:  {0, 1},
	CommandMoveE:  {1, 0},
	CommandMoveW:  {-1, 0},
	CommandMoveNE: {1, -1},
	CommandMoveNW: {-1, -1},
	CommandMoveSE: {1, 1},
	CommandMoveSW: {-1, 1},
}

var commandNames = map[Command]string{
	CommandNone:   "none",
	CommandMoveN:  "move_n",
	CommandMoveS:  "move_s",
	CommandMoveE:  "move_e",
	CommandMoveW:  "move_w",
	CommandMoveNE: "move_ne",
	CommandMoveNW: "move_nw",
	CommandMoveSE: "move_se",
	CommandMoveSW: "move_sw",
}

// Delta returns the movement offset. ok is false for anything that is not a move.
func (c Command) Delta() (dx, dy int, ok bool) {
	d, ok := commandDeltas[c]
	return d[0], d[1], ok
}

// String returns a human-readable command name.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// InputSource supplies at most one command per call and never blocks.
// CommandNone means nothing is pending.
type InputSource interface {
	Poll() Command
}
