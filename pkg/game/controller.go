package game

// DirectionController buffers the next heading requested by an input source.
// Only one request is held; a later request replaces an earlier one, so at
// most one turn is applied per tick.
type DirectionController struct {
	initial   Point
	current   Point
	queued    Point
	hasQueued bool
}

// NewDirectionController creates a controller heading in initial.
func NewDirectionController(initial Point) *DirectionController {
	return &DirectionController{initial: initial, current: initial}
}

// Propose queues d unless it is not a heading or reverses the current one.
// It reports whether d was queued.
func (c *DirectionController) Propose(d Point) bool {
	if !d.IsUnit() || d == c.current.Neg() {
		return false
	}
	c.queued = d
	c.hasQueued = true
	return true
}

// Consume takes the queued heading, if any, and makes it current.
func (c *DirectionController) Consume() (Point, bool) {
	if !c.hasQueued {
		return Point{}, false
	}
	d := c.queued
	c.queued = Point{}
	c.hasQueued = false
	c.current = d
	return d, true
}

// Current returns the heading applied on the last tick.
func (c *DirectionController) Current() Point {
	return c.current
}

// Queued returns the pending heading without consuming it.
func (c *DirectionController) Queued() (Point, bool) {
	return c.queued, c.hasQueued
}

// Reset restores the initial heading and drops any queued request.
func (c *DirectionController) Reset() {
	c.current = c.initial
	c.queued = Point{}
	c.hasQueued = false
}
