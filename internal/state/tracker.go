package state

// Tracker holds the cursor position and the stroke log of one overlay.
// It is not safe for concurrent use; the owning overlay serializes access.
type Tracker struct {
	cursor Point
	points []Point
	ovals  []Oval
}

func NewTracker() *Tracker {
	return &Tracker{
		points: make([]Point, 0),
		ovals:  make([]Oval, 0),
	}
}

// SetPosition overwrites the cursor. Any coordinates are accepted,
// including ones outside the surface.
func (t *Tracker) SetPosition(x, y float32) {
	t.cursor = Point{X: x, Y: y}
}

func (t *Tracker) Cursor() Point {
	return t.cursor
}

// RecordPoint appends the current cursor to the stroke log and returns it.
// Every call appends; there is no de-duplication or throttling.
func (t *Tracker) RecordPoint() Point {
	p := t.cursor
	t.points = append(t.points, p)
	return p
}

// RecordOval remembers an oval. Ovals never enter the stroke log.
func (t *Tracker) RecordOval(o Oval) {
	t.ovals = append(t.ovals, o)
}

// Points returns a copy of the stroke log in insertion order.
func (t *Tracker) Points() []Point {
	points := make([]Point, len(t.points))
	copy(points, t.points)
	return points
}

// Ovals returns a copy of the recorded ovals in drawing order.
func (t *Tracker) Ovals() []Oval {
	ovals := make([]Oval, len(t.ovals))
	copy(ovals, t.ovals)
	return ovals
}

func (t *Tracker) Len() int {
	return len(t.points)
}

// Reset drops the log, the ovals and the cursor.
func (t *Tracker) Reset() {
	t.cursor = Point{}
	t.points = make([]Point, 0)
	t.ovals = make([]Oval, 0)
}
