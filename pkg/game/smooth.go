package game

// selfHitFactor scales the cell size into the self collision radius; smaller
// than one cell so interpolation noise between neighbours does not count.
const selfHitFactor = 0.8

// maxStep is the longest single move, in cells. After a turn the neck settles
// anywhere between 1-d and 1 cells behind a head moving d per step, so d must
// stay under 1-selfHitFactor.
const maxStep = 0.9 * (1 - selfHitFactor)

// SmoothBody is a continuously moving snake. Trailing segments follow their
// predecessor on a leash one cell long instead of replaying the head's path.
type SmoothBody struct {
	cellSize float64
	initial  []Vec
	segments []Vec
}

// NewSmoothBody creates a body from a head-first layout.
func NewSmoothBody(layout []Vec, cellSize float64) *SmoothBody {
	b := &SmoothBody{
		cellSize: cellSize,
		initial:  append([]Vec(nil), layout...),
	}
	b.Reset()
	return b
}

func (b *SmoothBody) Head() Vec {
	return b.segments[0]
}

func (b *SmoothBody) Len() int {
	return len(b.segments)
}

// Segments returns a copy of the segments, head first.
func (b *SmoothBody) Segments() []Vec {
	return append([]Vec(nil), b.segments...)
}

// MoveContinuous moves the head distance along dir. Each trailing segment then
// moves distance toward its (already moved) predecessor, but only while the
// gap between them is longer than one cell.
func (b *SmoothBody) MoveContinuous(dir Point, distance float64) Vec {
	b.segments[0] = b.segments[0].Add(dir.Vec().Scale(distance))
	for i := 1; i < len(b.segments); i++ {
		toAhead := b.segments[i-1].Sub(b.segments[i])
		if toAhead.Len() > b.cellSize {
			b.segments[i] = b.segments[i].Add(toAhead.Normalize().Scale(distance))
		}
	}
	return b.segments[0]
}

// Grow appends a segment at the tail's position.
func (b *SmoothBody) Grow() {
	b.segments = append(b.segments, b.segments[len(b.segments)-1])
}

// CheckSelfCollision reports whether the head is closer than threshold to any
// other segment.
func (b *SmoothBody) CheckSelfCollision(threshold float64) bool {
	head := b.segments[0]
	for _, s := range b.segments[1:] {
		if head.Dist(s) < threshold {
			return true
		}
	}
	return false
}

// SelfThreshold is the default self collision radius for this body.
func (b *SmoothBody) SelfThreshold() float64 {
	return b.cellSize * selfHitFactor
}

// Reset restores the initial layout.
func (b *SmoothBody) Reset() {
	b.segments = append(b.segments[:0], b.initial...)
}

// SmoothLayout lays out length segments one cell apart, head first, trailing
// away from heading.
func SmoothLayout(head Vec, heading Point, length int, cellSize float64) []Vec {
	layout := make([]Vec, length)
	back := heading.Neg().Vec().Scale(cellSize)
	p := head
	for i := range layout {
		layout[i] = p
		p = p.Add(back)
	}
	return layout
}
