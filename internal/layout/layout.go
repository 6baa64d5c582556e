// Package layout computes window geometries for a workspace. Every strategy
// is a pure function from the usable screen area and per-client weights to a
// list of rectangles; no strategy performs I/O.
package layout

// Rect is a screen rectangle in pixels. X and Y may be negative (off-screen
// placement), width and height are always at least 1.
type Rect struct {
	X int32
	Y int32
	W uint32
	H uint32
}

// Layout generates one rectangle per weight. The returned slice always has
// len(weights) entries and every rectangle fits inside area after borders
// and gaps are subtracted.
type Layout interface {
	Name() string
	Generate(area Rect, weights []uint32, borderWidth, windowGap uint32) []Rect
}

// pad shrinks a dimension by a border on both sides, clamping to 1 so a
// crowded layout never produces an empty rectangle.
func pad(dim, border uint32) uint32 {
	if dim <= 2*border {
		return 1
	}
	return dim - 2*border
}

// Manager holds the registered strategies in registration order and the
// currently selected one.
type Manager struct {
	order   []string
	layouts map[string]Layout
	current string
}

// NewManager registers the built-in strategies. If defaultName does not name
// a registered strategy the first registered one is selected.
func NewManager(defaultName string) *Manager {
	m := &Manager{layouts: make(map[string]Layout)}
	for _, l := range []Layout{Horizontal{}, Master{}, Vertical{}} {
		m.order = append(m.order, l.Name())
		m.layouts[l.Name()] = l
	}
	m.current = m.order[0]
	if _, ok := m.layouts[defaultName]; ok {
		m.current = defaultName
	}
	return m
}

// Current returns the selected strategy.
func (m *Manager) Current() Layout {
	return m.layouts[m.current]
}

// CurrentName returns the name of the selected strategy.
func (m *Manager) CurrentName() string {
	return m.current
}

// Set selects a strategy by name. Unknown names are ignored.
func (m *Manager) Set(name string) {
	if _, ok := m.layouts[name]; ok {
		m.current = name
	}
}

// Cycle advances the selection to the next registered strategy, wrapping.
func (m *Manager) Cycle() {
	for i, name := range m.order {
		if name == m.current {
			m.current = m.order[(i+1)%len(m.order)]
			return
		}
	}
}
