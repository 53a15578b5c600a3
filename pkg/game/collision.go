package game

import "math"

// CollisionJudge evaluates a tick in a fixed order: wall, then self, then
// food. A wall or self hit is returned before food is looked at, so dying on
// the boundary never also scores.
type CollisionJudge struct {
	gridSize int
	cellSize float64
}

// NewCollisionJudge creates a judge for a board gridSize cells wide.
func NewCollisionJudge(gridSize int, cellSize float64) *CollisionJudge {
	return &CollisionJudge{gridSize: gridSize, cellSize: cellSize}
}

// Judge evaluates a grid body against the board and the food cell.
func (j *CollisionJudge) Judge(body *Body, food Point) Collision {
	switch {
	case j.HitsWall(body.Head()):
		return CollisionWall
	case body.CheckSelfCollision():
		return CollisionSelf
	case body.Head() == food:
		return CollisionFood
	}
	return CollisionNone
}

// JudgeSmooth evaluates a continuous body against the board and the food position.
func (j *CollisionJudge) JudgeSmooth(body *SmoothBody, food Vec) Collision {
	switch {
	case j.HitsWallSmooth(body.Head()):
		return CollisionWall
	case body.CheckSelfCollision(body.SelfThreshold()):
		return CollisionSelf
	case body.Head().Dist(food) < j.cellSize:
		return CollisionFood
	}
	return CollisionNone
}

// HitsWall reports whether p lies outside [0, gridSize) on either axis.
func (j *CollisionJudge) HitsWall(p Point) bool {
	return p.X < 0 || p.X >= j.gridSize || p.Y < 0 || p.Y >= j.gridSize
}

// HitsWallSmooth reports whether the leading edge of a segment centred on p
// clips the boundary of a board centred on the origin.
func (j *CollisionJudge) HitsWallSmooth(p Vec) bool {
	limit := float64(j.gridSize)/2 - j.cellSize/2
	return math.Abs(p.X) > limit || math.Abs(p.Y) > limit
}
