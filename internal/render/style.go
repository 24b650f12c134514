package render

import (
	"fmt"
	"image/color"
)

// Cap is the shape drawn at the ends of a stroked path.
type Cap int

const (
	CapButt Cap = iota
	CapRound
)

func (c Cap) String() string {
	if c == CapRound {
		return "round"
	}
	return "butt"
}

// Style is the stroke style applied to a path.
type Style struct {
	Width float32
	Cap   Cap
	Color color.NRGBA
}

// Hex returns the style color as #rrggbb.
func (s Style) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", s.Color.R, s.Color.G, s.Color.B)
}
