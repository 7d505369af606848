package export

// Placement is where the raster lands on the page, in page units.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Fit scales a raster of w×h pixels onto a page keeping its aspect ratio.
// The image is first fitted to the available width; if that overflows the
// available height it is fitted to the height instead. It is centred
// horizontally and pinned to the top margin.
func Fit(w, h int, pageW, pageH, margin float64) Placement {
	maxW := pageW - 2*margin
	maxH := pageH - 2*margin

	renderW := maxW
	renderH := float64(h) * renderW / float64(w)
	if renderH > maxH {
		renderH = maxH
		renderW = float64(w) * renderH / float64(h)
	}
	return Placement{
		X:      (pageW - renderW) / 2,
		Y:      margin,
		Width:  renderW,
		Height: renderH,
	}
}
