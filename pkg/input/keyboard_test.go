package input

import (
	"testing"

	"github.com/eiannone/keyboard"

	"github.com/trytobebee/gridsnake/pkg/game"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   KeyInput
		want Command
	}{
		{"arrow up", KeyInput{Key: keyboard.KeyArrowUp}, Command{Action: ActionTurn, Dir: game.Up}},
		{"arrow right", KeyInput{Key: keyboard.KeyArrowRight}, Command{Action: ActionTurn, Dir: game.Right}},
		{"wasd s", KeyInput{Char: 's'}, Command{Action: ActionTurn, Dir: game.Down}},
		{"wasd A", KeyInput{Char: 'A'}, Command{Action: ActionTurn, Dir: game.Left}},
		{"space", KeyInput{Key: keyboard.KeySpace}, Command{Action: ActionPause}},
		{"p", KeyInput{Char: 'p'}, Command{Action: ActionPause}},
		{"r", KeyInput{Char: 'R'}, Command{Action: ActionRestart}},
		{"q", KeyInput{Char: 'q'}, Command{Action: ActionQuit}},
		{"esc", KeyInput{Key: keyboard.KeyEsc}, Command{Action: ActionQuit}},
		{"other", KeyInput{Char: 'x'}, Command{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.in); got != tt.want {
				t.Errorf("Decode(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeName(t *testing.T) {
	if got := DecodeName("left"); got != (Command{Action: ActionTurn, Dir: game.Left}) {
		t.Errorf("left = %+v", got)
	}
	if got := DecodeName("restart"); got.Action != ActionRestart {
		t.Errorf("restart = %+v", got)
	}
	if got := DecodeName("fire"); got.Action != ActionNone {
		t.Errorf("unknown action decoded as %+v", got)
	}
}

func TestApply(t *testing.T) {
	s, err := game.NewSession(game.DefaultSettings(game.ModeGrid), game.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	if Apply(s, DecodeName("left")) {
		t.Error("reversal accepted")
	}
	if !Apply(s, DecodeName("up")) {
		t.Error("turn rejected")
	}
	if Apply(s, DecodeName("restart")) {
		t.Error("restart honoured while running")
	}
	if !Apply(s, DecodeName("pause")) || !s.Paused() {
		t.Error("pause not applied")
	}
	Apply(s, DecodeName("pause"))

	for i := 0; i < 100 && !s.IsOver(); i++ {
		s.Tick(0)
	}
	if !s.IsOver() {
		t.Fatal("setup: expected the snake to reach a wall")
	}
	if !Apply(s, DecodeName("restart")) || s.IsOver() {
		t.Error("restart not applied after game over")
	}
}
