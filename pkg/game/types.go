package game

import (
	"fmt"
	"math"
)

// Point represents a cell on the game board, or a unit heading.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Headings. Y grows downward, so Up is negative Y.
var (
	Up    = Point{X: 0, Y: -1}
	Down  = Point{X: 0, Y: 1}
	Left  = Point{X: -1, Y: 0}
	Right = Point{X: 1, Y: 0}
)

// Add returns p offset by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Neg returns the component-wise negation of p.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// IsUnit reports whether p is one of the four headings.
func (p Point) IsUnit() bool {
	return p == Up || p == Down || p == Left || p == Right
}

// Vec returns p as a continuous position.
func (p Point) Vec() Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// DirectionByName maps an input name to a heading.
func DirectionByName(name string) (Point, bool) {
	switch name {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Point{}, false
}

// Vec is a position on the continuous board plane. The board is centred on
// the origin; Y is the plane's depth axis.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec) Scale(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }

// Len returns the euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return v.Scale(1 / l)
}

// Mode selects the movement model of a session.
type Mode string

const (
	ModeGrid   Mode = "grid"   // one cell per tick, exact cell equality
	ModeSmooth Mode = "smooth" // fractional movement, distance thresholds
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGrid, ModeSmooth:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Collision is the outcome of judging one tick.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
	CollisionFood
)

func (c Collision) String() string {
	switch c {
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	case CollisionFood:
		return "food"
	default:
		return "none"
	}
}

// State is the session state machine.
type State int

const (
	Running State = iota
	GameOver
)

func (s State) String() string {
	if s == GameOver {
		return "game_over"
	}
	return "running"
}

// Game over causes reported in snapshots.
const (
	CauseWall      = "wall"
	CauseSelf      = "self"
	CauseBoardFull = "board-full"
)

// Snapshot is a read-only copy of a session for renderers and UI.
// Grid sessions fill Snake/Food; smooth sessions fill Segments/FoodPos.
type Snapshot struct {
	Mode       Mode    `json:"mode"`
	GridSize   int     `json:"gridSize"`
	CellSize   float64 `json:"cellSize"`
	Snake      []Point `json:"snake,omitempty"`
	Food       Point   `json:"food"`
	Segments   []Vec   `json:"segments,omitempty"`
	FoodPos    Vec     `json:"foodPos"`
	Direction  Point   `json:"direction"`
	Score      int     `json:"score"`
	FoodEaten  int     `json:"foodEaten"`
	Tick       int64   `json:"tick"`
	GameOver   bool    `json:"gameOver"`
	Paused     bool    `json:"paused"`
	Won        bool    `json:"won"`
	Cause      string  `json:"cause,omitempty"`
	CrashPoint *Vec    `json:"crashPoint,omitempty"`
}
