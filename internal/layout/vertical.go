package layout

// Vertical partitions the area the same way Horizontal does but is kept as
// an independently selectable entry in the cycle order.
type Vertical struct{}

func (Vertical) Name() string { return "vertical" }

func (Vertical) Generate(area Rect, weights []uint32, borderWidth, windowGap uint32) []Rect {
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
