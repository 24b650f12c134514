package state

import "github.com/gogpu/gg"

// Bounds is an axis-aligned box in surface coordinates.
type Bounds struct {
	gg.Rect
}

// Vec converts p to gg's float64 point.
func (p Point) Vec() gg.Point {
	return gg.Pt(float64(p.X), float64(p.Y))
}

// PointOf converts a gg point back to surface coordinates.
func PointOf(v gg.Point) Point {
	return Point{X: float32(v.X), Y: float32(v.Y)}
}

// BoundsOf returns the box whose opposite corners are a and b.
func BoundsOf(a, b Point) Bounds {
	return Bounds{gg.NewRect(a.Vec(), b.Vec())}
}

// BoundsOfPoints returns the bounding box of points. ok is false when
// points is empty.
func BoundsOfPoints(points []Point) (r Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	r = BoundsOf(points[0], points[0])
	for _, p := range points[1:] {
		r = r.Extend(p)
	}
	return r, true
}

// Extend grows the box to include p.
func (r Bounds) Extend(p Point) Bounds {
	return r.Union(BoundsOf(p, p))
}

func (r Bounds) Union(o Bounds) Bounds {
	return Bounds{r.Rect.Union(o.Rect)}
}

// Pad grows the box by padding on every side.
func (r Bounds) Pad(padding float64) Bounds {
	d := gg.Pt(padding, padding)
	return Bounds{gg.Rect{Min: r.Min.Sub(d), Max: r.Max.Add(d)}}
}

// Contains reports whether p lies inside r, edges included.
func (r Bounds) Contains(p Point) bool {
	return r.Rect.Contains(p.Vec())
}
