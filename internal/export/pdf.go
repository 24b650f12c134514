// Package export writes the stroke log of an overlay as a PDF document.
package export

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/jung-kurt/gofpdf"

	"DoodleBoard/internal/render"
	"DoodleBoard/internal/state"
)

const (
	margin = 10.0 // mm
	// Surface pixels per millimetre at most; small drawings are not blown up.
	maxScale = 1.0 / 3
)

// WritePDF draws points as connected segments and ovals as bezier outlines
// on a single landscape A4 page, scaled to fit.
func WritePDF(w io.Writer, st render.Style, points []state.Point, ovals []state.Oval) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("DoodleBoard drawing", true)
	pdf.SetCreator("DoodleBoard", true)
	pdf.AddPage()
	pdf.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
	pdf.SetLineCapStyle(st.Cap.String())

	pageW, pageH := pdf.GetPageSize()
	tf := fit(points, ovals, pageW-2*margin, pageH-2*margin)
	pdf.SetLineWidth(math.Max(float64(st.Width)*tf.scale, 0.1))

	for i := 1; i < len(points); i++ {
		x1, y1 := tf.apply(points[i-1])
		x2, y2 := tf.apply(points[i])
		pdf.Line(x1, y1, x2, y2)
	}
	for _, o := range ovals {
		path := render.OvalPath(o.Anchor, o.Corner)
		start := path.Ops[0].Pts[0]
		for _, op := range path.Ops[1:] {
			if op.Kind != render.OpCubic {
				continue
			}
			x0, y0 := tf.apply(start)
			c1x, c1y := tf.apply(op.Pts[0])
			c2x, c2y := tf.apply(op.Pts[1])
			x1, y1 := tf.apply(op.Pts[2])
			pdf.CurveBezierCubic(x0, y0, c1x, c1y, c2x, c2y, x1, y1, "D")
			start = op.Pts[2]
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("could not write pdf: %w", err)
	}
	log.Printf("[EXPORT] Wrote PDF with %d points and %d ovals", len(points), len(ovals))
	return nil
}

type transform struct {
	scale  float64
	dx, dy float64
}

func (t transform) apply(p state.Point) (float64, float64) {
	return float64(p.X)*t.scale + t.dx, float64(p.Y)*t.scale + t.dy
}

// fit maps the drawing's bounding box into a w x h area at the page margin.
func fit(points []state.Point, ovals []state.Oval, w, h float64) transform {
	box, ok := state.BoundsOfPoints(points)
	for _, o := range ovals {
		ob, _ := render.OvalPath(o.Anchor, o.Corner).Bounds()
		if !ok {
			box, ok = ob, true
			continue
		}
		box = box.Union(ob)
	}
	if !ok {
		return transform{scale: maxScale, dx: margin, dy: margin}
	}

	scale := maxScale
	if bw := box.Width(); bw > 0 {
		scale = math.Min(scale, w/bw)
	}
	if bh := box.Height(); bh > 0 {
		scale = math.Min(scale, h/bh)
	}
	return transform{
		scale: scale,
		dx:    margin - box.Min.X*scale,
		dy:    margin - box.Min.Y*scale,
	}
}
