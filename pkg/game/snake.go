package game

// Body is a grid snake: cells ordered head first.
type Body struct {
	initial  []Point
	segments []Point
}

// NewBody creates a body from a head-first layout. The layout must not be empty.
func NewBody(layout []Point) *Body {
	b := &Body{initial: append([]Point(nil), layout...)}
	b.Reset()
	return b
}

// Head returns the head cell.
func (b *Body) Head() Point {
	return b.segments[0]
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return len(b.segments)
}

// Segments returns a copy of the segments, head first.
func (b *Body) Segments() []Point {
	return append([]Point(nil), b.segments...)
}

// Occupies reports whether any segment sits on p.
func (b *Body) Occupies(p Point) bool {
	for _, s := range b.segments {
		if s == p {
			return true
		}
	}
	return false
}

// MoveDiscrete shifts the head one cell along dir; every other segment takes
// the cell its predecessor held. The length is unchanged.
func (b *Body) MoveDiscrete(dir Point) Point {
	for i := len(b.segments) - 1; i > 0; i-- {
		b.segments[i] = b.segments[i-1]
	}
	b.segments[0] = b.segments[0].Add(dir)
	return b.segments[0]
}

// Grow appends a segment on top of the current tail. The next move pulls the
// rest of the body forward and leaves the new segment behind.
func (b *Body) Grow() {
	b.segments = append(b.segments, b.segments[len(b.segments)-1])
}

// CheckSelfCollision reports whether the head shares a cell with any other segment.
func (b *Body) CheckSelfCollision() bool {
	head := b.segments[0]
	for _, s := range b.segments[1:] {
		if s == head {
			return true
		}
	}
	return false
}

// Reset restores the initial layout.
func (b *Body) Reset() {
	b.segments = append(b.segments[:0], b.initial...)
}

// GridLayout lays out length cells head first at head, trailing away from heading.
func GridLayout(head, heading Point, length int) []Point {
	layout := make([]Point, length)
	back := heading.Neg()
	p := head
	for i := range layout {
		layout[i] = p
		p = p.Add(back)
	}
	return layout
}
