package render

// Surface is the drawing target an overlay paints on. Implementations are
// the desktop board widget, the websocket session and the raster surface.
//
// SetSize is destructive: existing content is discarded.
type Surface interface {
	SetSize(width, height int)
	Clear()
	StrokePath(p Path, s Style)
}
