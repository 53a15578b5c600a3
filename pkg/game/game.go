package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidSettings is wrapped by every settings validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings describes a session. Zero fields are not defaulted; start from
// DefaultSettings.
type Settings struct {
	Mode          Mode
	GridSize      int     // cells per side (grid) or board width in world units (smooth)
	CellSize      float64 // smooth only; grid cells are always 1
	InitialLength int
	Heading       Point
	Speed         float64       // smooth only, cells per second
	MaxFrame      time.Duration // smooth only, longest delta a single tick may carry
	FoodScore     int
}

// DefaultSettings returns the stock settings for mode.
func DefaultSettings(mode Mode) Settings {
	return Settings{
		Mode:          mode,
		GridSize:      20,
		CellSize:      1,
		InitialLength: 3,
		Heading:       Right,
		Speed:         7,
		MaxFrame:      32 * time.Millisecond,
		FoodScore:     1,
	}
}

func (s Settings) validate() error {
	switch {
	case s.Mode != ModeGrid && s.Mode != ModeSmooth:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s.Mode)
	case s.GridSize < 4:
		return fmt.Errorf("%w: grid size %d below 4", ErrInvalidSettings, s.GridSize)
	case s.CellSize <= 0:
		return fmt.Errorf("%w: cell size %v must be positive", ErrInvalidSettings, s.CellSize)
	case s.InitialLength < 1:
		return fmt.Errorf("%w: initial length %d below 1", ErrInvalidSettings, s.InitialLength)
	case s.InitialLength >= s.GridSize*s.GridSize:
		return fmt.Errorf("%w: initial length %d leaves no room for food", ErrInvalidSettings, s.InitialLength)
	case !s.Heading.IsUnit():
		return fmt.Errorf("%w: heading %v is not a unit direction", ErrInvalidSettings, s.Heading)
	case s.FoodScore < 1:
		return fmt.Errorf("%w: food score %d below 1", ErrInvalidSettings, s.FoodScore)
	}
	if s.Mode == ModeSmooth {
		if s.Speed <= 0 {
			return fmt.Errorf("%w: speed %v must be positive", ErrInvalidSettings, s.Speed)
		}
		// A single segment would collide with its own growth on the next frame.
		if s.InitialLength < 2 {
			return fmt.Errorf("%w: smooth snakes start with at least 2 segments", ErrInvalidSettings)
		}
		if s.MaxFrame <= 0 {
			return fmt.Errorf("%w: max frame %v must be positive", ErrInvalidSettings, s.MaxFrame)
		}
		if float64(s.GridSize)/2 <= s.CellSize {
			return fmt.Errorf("%w: board %d too small for cell size %v", ErrInvalidSettings, s.GridSize, s.CellSize)
		}
	}
	return nil
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithSeed seeds the food spawner so a session is reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

// Session owns one game: the body, the heading, food, and the score. It is
// not safe for concurrent use; a driver serialises input and ticks.
type Session struct {
	settings Settings
	log      *zap.Logger
	seed     uint64

	dir     *DirectionController
	judge   *CollisionJudge
	spawner *FoodSpawner

	body    *Body
	food    Point
	smooth  *SmoothBody
	foodPos Vec

	state  State
	paused bool
	won    bool
	cause  string
	crash  *Vec
	score  int
	eaten  int
	tick   int64
}

// NewSession validates settings and starts a Running session.
func NewSession(settings Settings, opts ...Option) (*Session, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}

	s := &Session{
		settings: settings,
		log:      zap.NewNop(),
		seed:     uint64(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.dir = NewDirectionController(settings.Heading)
	s.judge = NewCollisionJudge(settings.GridSize, settings.CellSize)
	s.spawner = NewFoodSpawner(s.seed)

	switch settings.Mode {
	case ModeSmooth:
		head := Vec{X: -2 * settings.CellSize}
		layout := SmoothLayout(head, settings.Heading, settings.InitialLength, settings.CellSize)
		for _, v := range layout {
			if s.judge.HitsWallSmooth(v) {
				return nil, fmt.Errorf("%w: initial snake does not fit the board", ErrInvalidSettings)
			}
		}
		s.smooth = NewSmoothBody(layout, settings.CellSize)
	default:
		head := Point{X: settings.GridSize / 2, Y: settings.GridSize / 2}
		layout := GridLayout(head, settings.Heading, settings.InitialLength)
		for _, p := range layout {
			if s.judge.HitsWall(p) {
				return nil, fmt.Errorf("%w: initial snake does not fit the board", ErrInvalidSettings)
			}
		}
		s.body = NewBody(layout)
	}
	s.spawnFood()

	s.log.Debug("session started",
		zap.String("mode", string(settings.Mode)),
		zap.Int("grid", settings.GridSize),
		zap.Uint64("seed", s.seed),
	)
	return s, nil
}

// Propose forwards a heading request to the direction controller. Requests
// are ignored once the game is over.
func (s *Session) Propose(d Point) bool {
	if s.state == GameOver {
		return false
	}
	return s.dir.Propose(d)
}

// Tick advances the session by one step. dt is only used by smooth sessions.
// It returns what the step collided with.
func (s *Session) Tick(dt time.Duration) Collision {
	if s.state == GameOver || s.paused {
		return CollisionNone
	}
	s.tick++
	s.dir.Consume()
	heading := s.dir.Current()

	var hit Collision
	switch s.settings.Mode {
	case ModeSmooth:
		hit = s.moveSmooth(heading, dt)
	default:
		s.body.MoveDiscrete(heading)
		hit = s.judge.Judge(s.body, s.food)
	}

	switch hit {
	case CollisionWall:
		s.end(CauseWall)
	case CollisionSelf:
		s.end(CauseSelf)
	case CollisionFood:
		s.eat()
	}
	return hit
}

// moveSmooth moves the smooth body for dt, capped at MaxFrame, in steps of at
// most maxStep cells and judges after each step.
func (s *Session) moveSmooth(heading Point, dt time.Duration) Collision {
	if dt > s.settings.MaxFrame {
		dt = s.settings.MaxFrame
	}
	cells := s.settings.Speed * dt.Seconds()
	steps := max(int(math.Ceil(cells/maxStep)), 1)
	step := cells / float64(steps) * s.settings.CellSize

	for i := 0; i < steps; i++ {
		s.smooth.MoveContinuous(heading, step)
		if hit := s.judge.JudgeSmooth(s.smooth, s.foodPos); hit != CollisionNone {
			return hit
		}
	}
	return CollisionNone
}

func (s *Session) eat() {
	s.score += s.settings.FoodScore
	s.eaten++

	if s.settings.Mode == ModeSmooth {
		s.smooth.Grow()
		s.spawnFood()
		return
	}

	s.body.Grow()
	// After Grow the tail is doubled up, so Len()-1 cells are taken.
	if s.body.Len()-1 >= s.settings.GridSize*s.settings.GridSize {
		s.won = true
		s.end(CauseBoardFull)
		return
	}
	s.spawnFood()
}

func (s *Session) spawnFood() {
	if s.settings.Mode == ModeSmooth {
		s.foodPos = s.spawner.SpawnSmooth(float64(s.settings.GridSize), s.settings.CellSize, s.smooth)
		return
	}
	s.food = s.spawner.Spawn(s.settings.GridSize, s.body)
}

func (s *Session) end(cause string) {
	s.state = GameOver
	s.cause = cause
	head := s.headVec()
	s.crash = &head
	s.log.Info("game over",
		zap.String("cause", cause),
		zap.Int("score", s.score),
		zap.Int64("tick", s.tick),
	)
}

func (s *Session) headVec() Vec {
	if s.settings.Mode == ModeSmooth {
		return s.smooth.Head()
	}
	return s.body.Head().Vec()
}

// Restart puts the session back to its initial layout with a fresh food and
// a zero score.
func (s *Session) Restart() {
	if s.settings.Mode == ModeSmooth {
		s.smooth.Reset()
	} else {
		s.body.Reset()
	}
	s.dir.Reset()
	s.state = Running
	s.paused = false
	s.won = false
	s.cause = ""
	s.crash = nil
	s.score = 0
	s.eaten = 0
	s.tick = 0
	s.spawnFood()
	s.log.Debug("session restarted")
}

// TogglePause pauses or resumes a running session.
func (s *Session) TogglePause() {
	if s.state == GameOver {
		return
	}
	s.paused = !s.paused
}

func (s *Session) State() State { return s.state }

func (s *Session) IsOver() bool { return s.state == GameOver }

func (s *Session) Paused() bool { return s.paused }

func (s *Session) Score() int { return s.score }

func (s *Session) Settings() Settings { return s.settings }

// Direction returns the heading applied on the last tick.
func (s *Session) Direction() Point { return s.dir.Current() }

// Snapshot copies the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:      s.settings.Mode,
		GridSize:  s.settings.GridSize,
		CellSize:  s.settings.CellSize,
		Direction: s.dir.Current(),
		Score:     s.score,
		FoodEaten: s.eaten,
		Tick:      s.tick,
		GameOver:  s.state == GameOver,
		Paused:    s.paused,
		Won:       s.won,
		Cause:     s.cause,
	}
	if s.crash != nil {
		c := *s.crash
		snap.CrashPoint = &c
	}
	if s.settings.Mode == ModeSmooth {
		snap.Segments = s.smooth.Segments()
		snap.FoodPos = s.foodPos
	} else {
		snap.Snake = s.body.Segments()
		snap.Food = s.food
	}
	return snap
}
