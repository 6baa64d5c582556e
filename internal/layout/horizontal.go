package layout

// Horizontal splits the area into side-by-side columns sized in proportion
// to each client's weight.
type Horizontal struct{}

func (Horizontal) Name() string { return "horizontal" }

func (Horizontal) Generate(area Rect, weights []uint32, borderWidth, windowGap uint32) []Rect {
	var total uint32
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return nil
	}

	totalBorder := borderWidth + windowGap
	innerH := pad(area.H, totalBorder)
	partition := area.W / total

	rects := make([]Rect, 0, len(weights))
	var cumulative uint32
	for _, weight := range weights {
		cell := area.W * weight / total
		x := cumulative*partition + windowGap
		cumulative += weight
		rects = append(rects, Rect{
			X: int32(x),
			Y: int32(windowGap),
			W: pad(cell, totalBorder),
			H: innerH,
		})
	}
	return rects
}
