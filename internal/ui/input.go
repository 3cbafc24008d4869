package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/game"
)

// inputBuffer bounds the number of commands queued between ticks.
const inputBuffer = 16

var runeCommands = map[rune]game.Command{
	// vi-keys
	'k': game.CommandMoveN,
	'j': game.CommandMoveS,
	'l': game.CommandMoveE,
	'h': game.CommandMoveW,
	'u': game.CommandMoveNE,
	'y': game.CommandMoveNW,
	'n': game.CommandMoveSE,
	'b': game.CommandMoveSW,
	// numpad
	'8': game.CommandMoveN,
	'2': game.CommandMoveS,
	'6': game.CommandMoveE,
	'4': game.CommandMoveW,
	'9': game.CommandMoveNE,
	'7': game.CommandMoveNW,
	'3': game.CommandMoveSE,
	'1': game.CommandMoveSW,
}

var keyCommands = map[tcell.Key]game.Command{
	tcell.KeyUp:    game.CommandMoveN,
	tcell.KeyDown:  game.CommandMoveS,
	tcell.KeyRight: game.CommandMoveE,
	tcell.KeyLeft:  game.CommandMoveW,
	tcell.KeyPgUp:  game.CommandMoveNE,
	tcell.KeyHome:  game.CommandMoveNW,
	tcell.KeyPgDn:  game.CommandMoveSE,
	tcell.KeyEnd:   game.CommandMoveSW,
}

// TranslateKey maps a key event to a game command. quit is true for Esc,
// Ctrl-C and q.
func TranslateKey(ev *tcell.EventKey) (cmd game.Command, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CommandNone, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return game.CommandNone, true
		}
		return runeCommands[ev.Rune()], false
	}
	return keyCommands[ev.Key()], false
}

// Input reads terminal events on its own goroutine and queues decoded
// commands. It implements game.InputSource.
type Input struct {
	commands chan game.Command
	quit     chan struct{}
	once     sync.Once
}

// NewInput starts reading events from the screen. The reader goroutine exits
// when the screen is closed.
func NewInput(screen *Screen) *Input {
	in := newInput()
	go in.run(screen)
	return in
}

func newInput() *Input {
	return &Input{
		commands: make(chan game.Command, inputBuffer),
		quit:     make(chan struct{}),
	}
}

func (in *Input) run(screen *Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			in.handleKey(ev)
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func (in *Input) handleKey(ev *tcell.EventKey) {
	cmd, quit := TranslateKey(ev)
	if quit {
		in.once.Do(func() { close(in.quit) })
		return
	}
	if cmd == game.CommandNone {
		return
	}
	select {
	case in.commands <- cmd:
	default:
		// Buffer full; drop the keypress.
	}
}

// Poll returns the next queued command, or CommandNone without blocking.
func (in *Input) Poll() game.Command {
	select {
	case cmd := <-in.commands:
		return cmd
	default:
		return game.CommandNone
	}
}

// Quit is closed once the player asks to leave.
func (in *Input) Quit() <-chan struct{} {
	return in.quit
}
