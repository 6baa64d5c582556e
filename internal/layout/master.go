package layout

// Master gives the last client the remaining space after alternately
// halving the area: even indices take the left half, odd indices the top
// half. The result is a large master region with a column of half-height
// stacks on the right.
type Master struct{}

func (Master) Name() string { return "master" }

func (Master) Generate(area Rect, weights []uint32, borderWidth, windowGap uint32) []Rect {
	totalBorder := borderWidth + windowGap/2

	prevX := windowGap
	prevY := windowGap
	prevW := area.W - windowGap
	prevH := area.H - windowGap

	rects := make([]Rect, 0, len(weights))
	for i := range weights {
		switch {
		case i == len(weights)-1:
			rects = append(rects, Rect{
				X: int32(prevX),
				Y: int32(prevY),
				W: pad(prevW, totalBorder),
				H: pad(prevH, totalBorder),
			})
		case i%2 == 0:
			innerW := prevW / 2
			rects = append(rects, Rect{
				X: int32(prevX),
				Y: int32(prevY),
				W: pad(innerW, totalBorder),
				H: pad(prevH, totalBorder),
			})
			prevX += innerW
			prevW = innerW
		default:
			innerH := prevH / 2
			rects = append(rects, Rect{
				X: int32(prevX),
				Y: int32(prevY),
				W: pad(prevW, totalBorder),
				H: pad(innerH, totalBorder),
			})
			prevY += innerH
			prevH = innerH
		}
	}
	return rects
}
