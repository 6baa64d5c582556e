package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHorizontalFormula(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 1200, H: 800}
	rects := Horizontal{}.Generate(area, []uint32{1, 2, 1}, 3, 5)

	// total weight 4, partition 300, totalBorder 8
	expected := []Rect{
		{X: 5, Y: 5, W: 300 - 16, H: 800 - 16},
		{X: 305, Y: 5, W: 600 - 16, H: 800 - 16},
		{X: 905, Y: 5, W: 300 - 16, H: 800 - 16},
	}
	assert.Equal(t, expected, rects)
}

func TestHorizontalEqualWeights(t *testing.T) {
	area := Rect{W: 1000, H: 600}
	rects := Horizontal{}.Generate(area, []uint32{1, 1, 1, 1}, 0, 0)

	require.Len(t, rects, 4)
	for i, r := range rects {
		assert.Equal(t, int32(i*250), r.X)
		assert.Equal(t, uint32(250), r.W)
		assert.Equal(t, uint32(600), r.H)
	}
}

func TestHorizontalColumnOffsetsFollowFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(8)
		weights := make([]uint32, n)
		for i := range weights {
			weights[i] = 1 + uint32(rng.Intn(4))
		}
		border := uint32(rng.Intn(11))
		gap := uint32(rng.Intn(11))
		area := Rect{W: 100 + uint32(rng.Intn(2000)), H: 100 + uint32(rng.Intn(2000))}

		rects := Horizontal{}.Generate(area, weights, border, gap)
		require.Len(t, rects, n)

		var total uint32
		for _, w := range weights {
			total += w
		}
		partition := area.W / total
		var cumulative uint32
		for i, r := range rects {
			assert.GreaterOrEqual(t, r.W, uint32(1))
			assert.GreaterOrEqual(t, r.H, uint32(1))
			assert.Equal(t, int32(cumulative*partition+gap), r.X)
			assert.Equal(t, int32(gap), r.Y)
			cumulative += weights[i]
		}
	}
}

func TestLayoutTotality(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	strategies := []Layout{Horizontal{}, Master{}, Vertical{}}

	for trial := 0; trial < 300; trial++ {
		n := 1 + rng.Intn(10)
		weights := make([]uint32, n)
		for i := range weights {
			weights[i] = 1 + uint32(rng.Intn(5))
		}
		border := uint32(rng.Intn(11))
		gap := uint32(rng.Intn(11))
		area := Rect{
			W: 2*(border+gap) + 2 + uint32(rng.Intn(3000)),
			H: 2*(border+gap) + 2 + uint32(rng.Intn(3000)),
		}

		for _, strategy := range strategies {
			rects := strategy.Generate(area, weights, border, gap)
			require.Len(t, rects, n, "strategy %s", strategy.Name())
			for _, r := range rects {
				assert.GreaterOrEqual(t, r.W, uint32(1))
				assert.GreaterOrEqual(t, r.H, uint32(1))
			}
		}
	}
}

func TestMasterLastWindowGetsRemainder(t *testing.T) {
	area := Rect{W: 1000, H: 800}
	rects := Master{}.Generate(area, []uint32{1, 1, 1}, 0, 0)

	require.Len(t, rects, 3)
	// first window: left half
	assert.Equal(t, Rect{X: 0, Y: 0, W: 500, H: 800}, rects[0])
	// second window: top half of the right column
	assert.Equal(t, Rect{X: 500, Y: 0, W: 500, H: 400}, rects[1])
	// last window: the remainder
	assert.Equal(t, Rect{X: 500, Y: 400, W: 500, H: 400}, rects[2])
}

func TestMasterSingleWindowFillsArea(t *testing.T) {
	area := Rect{W: 1920, H: 1080}
	rects := Master{}.Generate(area, []uint32{1}, 2, 0)

	require.Len(t, rects, 1)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 1920 - 4, H: 1080 - 4}, rects[0])
}

func TestManagerCycleWraps(t *testing.T) {
	m := NewManager("horizontal")
	assert.Equal(t, "horizontal", m.CurrentName())

	m.Cycle()
	assert.Equal(t, "master", m.CurrentName())
	m.Cycle()
	assert.Equal(t, "vertical", m.CurrentName())
	m.Cycle()
	assert.Equal(t, "horizontal", m.CurrentName())
}

func TestManagerSetUnknownIsNoop(t *testing.T) {
	m := NewManager("master")
	m.Set("spiral")
	assert.Equal(t, "master", m.CurrentName())

	m.Set("vertical")
	assert.Equal(t, "vertical", m.CurrentName())
}

func TestManagerUnknownDefaultFallsBack(t *testing.T) {
	m := NewManager("nope")
	assert.Equal(t, "horizontal", m.CurrentName())
}
