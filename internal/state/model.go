package state

// Point is one recorded pointer sample in surface coordinates.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Oval is a bezier oval drawn in oval mode. Anchor and Corner are the
// opposite corners of its bounding box.
type Oval struct {
	Anchor Point `json:"anchor"`
	Corner Point `json:"corner"`
}

// Bounds returns the bounding box of the oval.
func (o Oval) Bounds() Bounds {
	return BoundsOf(o.Anchor, o.Corner)
}
