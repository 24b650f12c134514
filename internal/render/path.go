package render

import (
	"github.com/gogpu/gg"

	"DoodleBoard/internal/state"
)

// OpKind identifies a path command.
type OpKind int

const (
	OpMove OpKind = iota
	OpLine
	OpCubic
	OpClose
)

var opNames = [...]string{"move", "line", "cubic", "close"}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "unknown"
}

// PathOp is one path command. Move and Line use Pts[0]; Cubic uses
// Pts[0] and Pts[1] as control points and Pts[2] as the end point.
type PathOp struct {
	Kind OpKind
	Pts  [3]state.Point
}

// Path is a sequence of commands in canvas order.
type Path struct {
	Ops []PathOp
}

func (p *Path) MoveTo(pt state.Point) {
	p.Ops = append(p.Ops, PathOp{Kind: OpMove, Pts: [3]state.Point{pt}})
}

func (p *Path) LineTo(pt state.Point) {
	p.Ops = append(p.Ops, PathOp{Kind: OpLine, Pts: [3]state.Point{pt}})
}

func (p *Path) CubicTo(c1, c2, end state.Point) {
	p.Ops = append(p.Ops, PathOp{Kind: OpCubic, Pts: [3]state.Point{c1, c2, end}})
}

func (p *Path) Close() {
	p.Ops = append(p.Ops, PathOp{Kind: OpClose})
}

// SegmentPath is a straight line from one point to another.
func SegmentPath(from, to state.Point) Path {
	var p Path
	p.MoveTo(from)
	p.LineTo(to)
	return p
}

// OvalPath approximates an ellipse with two symmetric cubic curves whose
// control polygon spans the box with corners a and c.
func OvalPath(a, c state.Point) Path {
	midY := a.Y + (c.Y-a.Y)/2
	var p Path
	p.MoveTo(state.Point{X: a.X, Y: midY})
	p.CubicTo(a, state.Point{X: c.X, Y: a.Y}, state.Point{X: c.X, Y: midY})
	p.CubicTo(c, state.Point{X: a.X, Y: c.Y}, state.Point{X: a.X, Y: midY})
	p.Close()
	return p
}

// Flatten converts the path into polylines, splitting every cubic into
// steps straight pieces. Each move starts a new polyline.
func (p Path) Flatten(steps int) [][]state.Point {
	if steps < 1 {
		steps = 1
	}
	var (
		lines   [][]state.Point
		current []state.Point
		start   state.Point
	)
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, current)
		}
		current = nil
	}
	for _, op := range p.Ops {
		switch op.Kind {
		case OpMove:
			flush()
			start = op.Pts[0]
			current = []state.Point{start}
		case OpLine:
			current = append(current, op.Pts[0])
		case OpCubic:
			if len(current) == 0 {
				current = []state.Point{start}
			}
			c := cubic(current[len(current)-1], op)
			for i := 1; i <= steps; i++ {
				current = append(current, state.PointOf(c.Eval(float64(i)/float64(steps))))
			}
		case OpClose:
			if len(current) > 0 && current[len(current)-1] != start {
				current = append(current, start)
			}
		}
	}
	flush()
	return lines
}

// Bounds returns the tight box around the drawn outline. Cubic control
// points only count where the curve reaches them. ok is false for an
// empty path.
func (p Path) Bounds() (state.Bounds, bool) {
	var (
		box   state.Bounds
		ok    bool
		last  state.Point
		start state.Point
	)
	add := func(b state.Bounds) {
		if !ok {
			box, ok = b, true
			return
		}
		box = box.Union(b)
	}
	for _, op := range p.Ops {
		switch op.Kind {
		case OpMove:
			start, last = op.Pts[0], op.Pts[0]
			add(state.BoundsOf(last, last))
		case OpLine:
			add(state.BoundsOf(last, op.Pts[0]))
			last = op.Pts[0]
		case OpCubic:
			add(state.Bounds{Rect: cubic(last, op).BoundingBox()})
			last = op.Pts[2]
		case OpClose:
			last = start
		}
	}
	return box, ok
}

func cubic(from state.Point, op PathOp) gg.CubicBez {
	return gg.NewCubicBez(from.Vec(), op.Pts[0].Vec(), op.Pts[1].Vec(), op.Pts[2].Vec())
}
