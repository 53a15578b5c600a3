package game

import (
	"errors"
	"math"
	"testing"
	"time"
)

func newGridSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(DefaultSettings(ModeGrid), WithSeed(7))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// TestWallCollisionEndsGame drives the head off the right edge of a 20 grid.
func TestWallCollisionEndsGame(t *testing.T) {
	s := newGridSession(t)
	s.body = NewBody([]Point{{X: 19, Y: 5}, {X: 18, Y: 5}, {X: 17, Y: 5}})
	s.food = Point{X: 0, Y: 0}

	if hit := s.Tick(0); hit != CollisionWall {
		t.Fatalf("expected wall collision, got %v", hit)
	}
	if s.State() != GameOver {
		t.Fatalf("expected GameOver, got %v", s.State())
	}
	if s.Score() != 0 {
		t.Errorf("score changed on wall hit: %d", s.Score())
	}
	snap := s.Snapshot()
	if snap.Cause != CauseWall || snap.CrashPoint == nil || *snap.CrashPoint != (Vec{X: 20, Y: 5}) {
		t.Errorf("unexpected crash report: cause=%q point=%v", snap.Cause, snap.CrashPoint)
	}
}

// TestWallBeatsFood puts food on the out-of-bounds cell the head moves into.
func TestWallBeatsFood(t *testing.T) {
	s := newGridSession(t)
	s.body = NewBody([]Point{{X: 19, Y: 5}})
	s.food = Point{X: 20, Y: 5}

	s.Tick(0)
	if !s.IsOver() {
		t.Fatal("expected game over")
	}
	if s.Score() != 0 || s.body.Len() != 1 {
		t.Errorf("food was consumed: score=%d len=%d", s.Score(), s.body.Len())
	}
}

func TestEatFoodScoresAndGrows(t *testing.T) {
	s := newGridSession(t)
	s.body = NewBody([]Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}})
	s.food = Point{X: 6, Y: 5}

	if hit := s.Tick(0); hit != CollisionFood {
		t.Fatalf("expected food, got %v", hit)
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
	if s.body.Len() != 4 {
		t.Errorf("len = %d, want 4", s.body.Len())
	}
	if s.body.Occupies(s.food) {
		t.Errorf("new food %v spawned on the snake", s.food)
	}

	s.food = Point{X: 0, Y: 0}
	s.Tick(0)
	if s.body.Len() != 4 {
		t.Errorf("len after move = %d, want 4", s.body.Len())
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	s := newGridSession(t)
	// A hook: moving up from (5,5) lands on (5,4), which is part of the body.
	s.body = NewBody([]Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 4}, {X: 5, Y: 4}, {X: 4, Y: 4}})
	s.dir = NewDirectionController(Left)
	s.food = Point{X: 0, Y: 0}

	s.Propose(Up)
	if hit := s.Tick(0); hit != CollisionSelf {
		t.Fatalf("expected self collision, got %v", hit)
	}
	if s.Snapshot().Cause != CauseSelf {
		t.Errorf("cause = %q", s.Snapshot().Cause)
	}
}

func TestGameOverFreezesUntilRestart(t *testing.T) {
	s := newGridSession(t)
	s.body = NewBody([]Point{{X: 19, Y: 5}})
	s.Tick(0)
	if !s.IsOver() {
		t.Fatal("expected game over")
	}

	before := s.Snapshot()
	if s.Propose(Up) {
		t.Error("proposal accepted after game over")
	}
	s.TogglePause()
	s.Tick(0)
	after := s.Snapshot()
	if after.Tick != before.Tick || after.Paused {
		t.Errorf("state changed while over: %+v", after)
	}
}

func TestRestartRestoresInitialLayout(t *testing.T) {
	s := newGridSession(t)
	initial := s.Snapshot().Snake

	s.food = s.body.Head().Add(Right)
	s.Tick(0)
	for !s.IsOver() {
		s.Tick(0)
	}
	if s.Score() == 0 {
		t.Fatal("setup: expected a non-zero score before restart")
	}

	s.Restart()
	snap := s.Snapshot()
	if snap.GameOver || s.State() != Running {
		t.Error("restart did not return to Running")
	}
	if snap.Score != 0 || snap.FoodEaten != 0 || snap.Cause != "" || snap.CrashPoint != nil {
		t.Errorf("restart left stale state: %+v", snap)
	}
	if len(snap.Snake) != len(initial) {
		t.Fatalf("len = %d, want %d", len(snap.Snake), len(initial))
	}
	for i := range initial {
		if snap.Snake[i] != initial[i] {
			t.Errorf("segment %d = %v, want %v", i, snap.Snake[i], initial[i])
		}
	}
	if snap.Direction != Right {
		t.Errorf("direction = %v, want %v", snap.Direction, Right)
	}
}

func TestPauseSkipsTicks(t *testing.T) {
	s := newGridSession(t)
	head := s.body.Head()

	s.TogglePause()
	s.Tick(0)
	if s.body.Head() != head {
		t.Error("snake moved while paused")
	}

	s.TogglePause()
	s.Tick(0)
	if s.body.Head() == head {
		t.Error("snake did not move after resume")
	}
}

func TestBoardFullWins(t *testing.T) {
	settings := DefaultSettings(ModeGrid)
	settings.GridSize = 4
	settings.InitialLength = 1
	s, err := NewSession(settings, WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	// A serpentine over all 16 cells except (0,3), with the tail doubled up
	// from the previous growth. Eating (0,3) leaves no free cell.
	var path []Point
	for y := 0; y < 4; y++ {
		for i := 0; i < 4; i++ {
			x := i
			if y%2 == 1 {
				x = 3 - i
			}
			path = append(path, Point{X: x, Y: y})
		}
	}
	body := make([]Point, 0, 16)
	for i := len(path) - 2; i >= 0; i-- {
		body = append(body, path[i])
	}
	body = append(body, path[0])
	s.body = NewBody(body)
	s.dir = NewDirectionController(Left)
	s.food = Point{X: 0, Y: 3}

	if hit := s.Tick(0); hit != CollisionFood {
		t.Fatalf("expected food, got %v", hit)
	}
	snap := s.Snapshot()
	if !snap.GameOver || !snap.Won || snap.Cause != CauseBoardFull {
		t.Errorf("expected a won game, got %+v", snap)
	}
}

func TestNewSessionValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"unknown mode", func(s *Settings) { s.Mode = "hex" }},
		{"tiny grid", func(s *Settings) { s.GridSize = 3 }},
		{"zero cell", func(s *Settings) { s.CellSize = 0 }},
		{"no segments", func(s *Settings) { s.InitialLength = 0 }},
		{"diagonal heading", func(s *Settings) { s.Heading = Point{X: 1, Y: 1} }},
		{"zero score", func(s *Settings) { s.FoodScore = 0 }},
		{"snake longer than board", func(s *Settings) { s.InitialLength = 15 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings(ModeGrid)
			tt.modify(&settings)
			_, err := NewSession(settings)
			if !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestSmoothSessionValidation(t *testing.T) {
	settings := DefaultSettings(ModeSmooth)
	settings.InitialLength = 1
	if _, err := NewSession(settings); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("single segment smooth snake: expected ErrInvalidSettings, got %v", err)
	}

	settings = DefaultSettings(ModeSmooth)
	settings.Speed = 0
	if _, err := NewSession(settings); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("zero speed: expected ErrInvalidSettings, got %v", err)
	}

	settings = DefaultSettings(ModeSmooth)
	settings.MaxFrame = 0
	if _, err := NewSession(settings); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("zero max frame: expected ErrInvalidSettings, got %v", err)
	}
}

func TestSmoothSessionSurvivesTurns(t *testing.T) {
	tests := []struct {
		name  string
		cell  float64
		speed float64
	}{
		{"half cell", 0.5, 7},
		{"unit cell", 1, 7},
		{"double cell", 2, 7},
		{"fast", 1, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings(ModeSmooth)
			settings.CellSize = tt.cell
			settings.Speed = tt.speed
			s, err := NewSession(settings, WithSeed(5))
			if err != nil {
				t.Fatal(err)
			}
			s.foodPos = Vec{X: -9, Y: 9}

			// Right, then a staircase of up and right turns.
			turns := map[int]Point{1: Up, 6: Right}
			for i := 0; i < 10; i++ {
				if d, ok := turns[i]; ok {
					s.Propose(d)
				}
				if hit := s.Tick(32 * time.Millisecond); hit != CollisionNone {
					t.Fatalf("tick %d: hit %v, cause %q", i, hit, s.Snapshot().Cause)
				}
				seg := s.smooth.Segments()
				if gap := seg[0].Dist(seg[1]); gap < selfHitFactor*tt.cell {
					t.Fatalf("tick %d: neck %.4f from head, below %.4f", i, gap, selfHitFactor*tt.cell)
				}
			}
		})
	}
}

func TestSmoothTickCapsFrame(t *testing.T) {
	settings := DefaultSettings(ModeSmooth)
	settings.CellSize = 0.5
	s, err := NewSession(settings, WithSeed(6))
	if err != nil {
		t.Fatal(err)
	}
	s.foodPos = Vec{X: -4, Y: 4}
	start := s.smooth.Head()

	s.Tick(time.Second)
	// 7 cells/s over the 32ms cap with half-size cells.
	want := 7 * 0.032 * 0.5
	if got := s.smooth.Head().X - start.X; math.Abs(got-want) > 1e-9 {
		t.Errorf("head moved %v, want %v", got, want)
	}
}

func TestSmoothSessionEatsAndHitsWall(t *testing.T) {
	s, err := NewSession(DefaultSettings(ModeSmooth), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	s.foodPos = Vec{X: -1.5}

	// 7 cells/s for 32ms moves 0.224 per tick; the head starts at x=-2.
	if hit := s.Tick(32 * time.Millisecond); hit != CollisionFood {
		t.Fatalf("expected food, got %v", hit)
	}
	if s.Score() != 1 || s.smooth.Len() != 4 {
		t.Fatalf("score=%d len=%d after eating", s.Score(), s.smooth.Len())
	}

	s.foodPos = Vec{X: -9, Y: -9}
	for i := 0; i < 1000 && !s.IsOver(); i++ {
		s.Tick(32 * time.Millisecond)
	}
	snap := s.Snapshot()
	if snap.Cause != CauseWall {
		t.Fatalf("cause = %q, want wall", snap.Cause)
	}
	if snap.CrashPoint.X <= 9.5 {
		t.Errorf("crash at %v, expected past the 9.5 limit", snap.CrashPoint)
	}
	if snap.Score != 1 {
		t.Errorf("score = %d, want 1", snap.Score)
	}
}

func TestSeededSessionsAgree(t *testing.T) {
	a, _ := NewSession(DefaultSettings(ModeGrid), WithSeed(42))
	b, _ := NewSession(DefaultSettings(ModeGrid), WithSeed(42))

	turns := map[int]Point{3: Down, 6: Left, 9: Down, 12: Right}
	for i := 0; i < 20; i++ {
		if d, ok := turns[i]; ok {
			a.Propose(d)
			b.Propose(d)
		}
		a.Tick(0)
		b.Tick(0)
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Food != sb.Food || sa.Score != sb.Score || sa.GameOver != sb.GameOver {
		t.Errorf("seeded sessions diverged: %+v vs %+v", sa, sb)
	}
}
