package input

import (
	"github.com/eiannone/keyboard"

	"github.com/trytobebee/gridsnake/pkg/game"
)

// Action is what a key or client message asks the driver to do.
type Action int

const (
	ActionNone Action = iota
	ActionTurn
	ActionPause
	ActionRestart
	ActionQuit
)

// Command is a decoded input event. Dir is set for ActionTurn only.
type Command struct {
	Action Action
	Dir    game.Point
}

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// KeyboardHandler reads raw terminal keys in the background.
type KeyboardHandler struct {
	inputChan chan KeyInput
	done      chan struct{}
}

func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan KeyInput),
		done:      make(chan struct{}),
	}
}

// Start puts the terminal in raw mode and begins forwarding keys.
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case h.inputChan <- KeyInput{Char: char, Key: key}:
			case <-h.done:
				return
			}
		}
	}()
	return nil
}

// Stop restores the terminal.
func (h *KeyboardHandler) Stop() {
	close(h.done)
	_ = keyboard.Close()
}

// Keys returns the key channel.
func (h *KeyboardHandler) Keys() <-chan KeyInput {
	return h.inputChan
}

// Decode maps a key to a command. Arrows and WASD turn; P or space pauses;
// R restarts; Q, Esc and Ctrl-C quit. Anything else is ActionNone.
func Decode(in KeyInput) Command {
	switch in.Key {
	case keyboard.KeyArrowUp:
		return turn(game.Up)
	case keyboard.KeyArrowDown:
		return turn(game.Down)
	case keyboard.KeyArrowLeft:
		return turn(game.Left)
	case keyboard.KeyArrowRight:
		return turn(game.Right)
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Command{Action: ActionQuit}
	case keyboard.KeySpace:
		return Command{Action: ActionPause}
	}

	switch in.Char {
	case 'w', 'W':
		return turn(game.Up)
	case 's', 'S':
		return turn(game.Down)
	case 'a', 'A':
		return turn(game.Left)
	case 'd', 'D':
		return turn(game.Right)
	case 'p', 'P', ' ':
		return Command{Action: ActionPause}
	case 'r', 'R':
		return Command{Action: ActionRestart}
	case 'q', 'Q':
		return Command{Action: ActionQuit}
	}
	return Command{}
}

// DecodeName maps a client action name ("up", "pause", ...) to a command.
func DecodeName(name string) Command {
	if dir, ok := game.DirectionByName(name); ok {
		return turn(dir)
	}
	switch name {
	case "pause":
		return Command{Action: ActionPause}
	case "restart":
		return Command{Action: ActionRestart}
	}
	return Command{}
}

func turn(d game.Point) Command {
	return Command{Action: ActionTurn, Dir: d}
}

// Apply feeds a command to a session. Restart is only honoured once the game
// is over. It reports whether the session changed in a way worth redrawing.
func Apply(s *game.Session, cmd Command) bool {
	switch cmd.Action {
	case ActionTurn:
		return s.Propose(cmd.Dir)
	case ActionPause:
		if s.IsOver() {
			return false
		}
		s.TogglePause()
		return true
	case ActionRestart:
		if !s.IsOver() {
			return false
		}
		s.Restart()
		return true
	}
	return false
}
