// Package raster draws overlay paths into an in-memory image with gg.
package raster

import (
	"fmt"
	"image"
	"io"
	"log"
	"sync"

	"github.com/gogpu/gg"

	"DoodleBoard/internal/render"
	"DoodleBoard/internal/state"
)

// Surface is a render.Surface backed by a gg drawing context. The
// background is transparent.
type Surface struct {
	mu sync.Mutex
	dc *gg.Context
}

var _ render.Surface = (*Surface)(nil)

func NewSurface(width, height int) *Surface {
	return &Surface{dc: gg.NewContext(width, height)}
}

// SetSize replaces the context with a blank one of the new size.
func (s *Surface) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dc.Width() == width && s.dc.Height() == height {
		s.dc.Clear()
		return
	}
	report("close", s.dc.Close())
	s.dc = gg.NewContext(width, height)
}

func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dc.Clear()
}

func (s *Surface) StrokePath(p render.Path, st render.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dc.ClearPath()
	for _, op := range p.Ops {
		switch op.Kind {
		case render.OpMove:
			s.dc.MoveTo(f64(op.Pts[0]))
		case render.OpLine:
			s.dc.LineTo(f64(op.Pts[0]))
		case render.OpCubic:
			c1x, c1y := f64(op.Pts[0])
			c2x, c2y := f64(op.Pts[1])
			x, y := f64(op.Pts[2])
			s.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case render.OpClose:
			s.dc.ClosePath()
		}
	}
	s.dc.SetLineWidth(float64(st.Width))
	s.dc.SetLineCap(lineCap(st.Cap))
	s.dc.SetColor(st.Color)
	report("stroke", s.dc.Stroke())
}

// report logs a failed gg call. Surface methods have no error result.
func report(op string, err error) {
	if err != nil {
		log.Printf("[RASTER] %s failed: %v", op, err)
	}
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dc.Width(), s.dc.Height()
}

// Image returns the current pixels.
func (s *Surface) Image() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dc.Image()
}

// EncodePNG writes the current pixels as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("could not encode png: %w", err)
	}
	return nil
}

func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dc.Close()
}

// Snapshot replays points and ovals onto a fresh width x height surface
// and writes it to w as PNG.
func Snapshot(w io.Writer, width, height int, replay render.Style, points []state.Point, ovals []state.Oval) error {
	s := NewSurface(width, height)
	defer func() { report("close", s.Close()) }()
	render.NewRenderer(s, replay, replay).Replay(points, ovals)
	return s.EncodePNG(w)
}

func f64(p state.Point) (float64, float64) {
	return float64(p.X), float64(p.Y)
}

func lineCap(c render.Cap) gg.LineCap {
	if c == render.CapRound {
		return gg.LineCapRound
	}
	return gg.LineCapButt
}
