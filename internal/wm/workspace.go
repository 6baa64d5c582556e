package wm

import "github.com/BurntSushi/xgb/xproto"

// Workspace is one virtual desktop: an insertion-ordered set of clients, a
// focus cursor and an optional fullscreen mark. Insertion order defines
// both tiling order and cycling order.
//
// Invariants maintained after every mutation:
//   - focus, when present, indexes an existing client
//   - fullscreen, when present, names an existing client and holds focus
//   - the client set is free of duplicates
type Workspace struct {
	order      []xproto.Window
	clients    map[xproto.Window]*Client
	focus      int           // index into order, -1 when absent
	fullscreen xproto.Window // 0 when absent
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		clients: make(map[xproto.Window]*Client),
		focus:   -1,
	}
}

// Len returns the number of clients.
func (ws *Workspace) Len() int { return len(ws.order) }

// Windows returns the window identifiers in insertion order.
func (ws *Workspace) Windows() []xproto.Window {
	out := make([]xproto.Window, len(ws.order))
	copy(out, ws.order)
	return out
}

// Clients returns the clients in insertion order.
func (ws *Workspace) Clients() []*Client {
	out := make([]*Client, 0, len(ws.order))
	for _, w := range ws.order {
		out = append(out, ws.clients[w])
	}
	return out
}

// Client returns the client for a window, or nil.
func (ws *Workspace) Client(window xproto.Window) *Client {
	return ws.clients[window]
}

// IndexOf returns a window's position in insertion order.
func (ws *Workspace) IndexOf(window xproto.Window) (int, bool) {
	for i, w := range ws.order {
		if w == window {
			return i, true
		}
	}
	return 0, false
}

// IsWindowMapped reports whether the window exists here and is mapped.
func (ws *Workspace) IsWindowMapped(window xproto.Window) bool {
	c := ws.clients[window]
	return c != nil && c.IsMapped()
}

// PushWindow appends a new client with weight 1, mapped. Duplicates are
// rejected silently. If no client held focus, the new one takes it.
func (ws *Workspace) PushWindow(window xproto.Window) {
	if _, exists := ws.clients[window]; exists {
		return
	}
	ws.order = append(ws.order, window)
	ws.clients[window] = newClient(window)
	if ws.focus < 0 {
		ws.focus = len(ws.order) - 1
	}
}

// RemoveClient deletes a client and returns it, repairing the fullscreen
// mark and focus. Returns nil when the window is not here.
func (ws *Workspace) RemoveClient(window xproto.Window) *Client {
	c, exists := ws.clients[window]
	if !exists {
		return nil
	}
	idx, _ := ws.IndexOf(window)
	ws.order = append(ws.order[:idx], ws.order[idx+1:]...)
	delete(ws.clients, window)
	if idx < ws.focus {
		ws.focus--
	}
	if ws.fullscreen == window {
		ws.fullscreen = 0
	}
	ws.repairFocus()
	return c
}

// RemoveFocusedWindow removes the focused client and returns its window.
func (ws *Workspace) RemoveFocusedWindow() (xproto.Window, bool) {
	window, ok := ws.FocusedWindow()
	if !ok {
		return 0, false
	}
	ws.RemoveClient(window)
	return window, true
}

// FocusedWindow returns the focused window, if any.
func (ws *Workspace) FocusedWindow() (xproto.Window, bool) {
	if ws.focus < 0 || ws.focus >= len(ws.order) {
		return 0, false
	}
	return ws.order[ws.focus], true
}

// FocusedClient returns the focused client, or nil.
func (ws *Workspace) FocusedClient() *Client {
	window, ok := ws.FocusedWindow()
	if !ok {
		return nil
	}
	return ws.clients[window]
}

// SetFocus moves focus to a window iff it exists here and is mapped.
func (ws *Workspace) SetFocus(window xproto.Window) bool {
	if !ws.IsWindowMapped(window) {
		return false
	}
	idx, _ := ws.IndexOf(window)
	ws.focus = idx
	return true
}

// NextMappedWindow steps through insertion order from the focus by
// direction (±1), wrapping, and returns the first mapped window other than
// the focused one.
func (ws *Workspace) NextMappedWindow(direction int) (xproto.Window, bool) {
	n := len(ws.order)
	if n == 0 || ws.focus < 0 {
		return 0, false
	}
	for step := 1; step < n; step++ {
		idx := ((ws.focus+direction*step)%n + n) % n
		if ws.IsWindowMapped(ws.order[idx]) {
			return ws.order[idx], true
		}
	}
	return 0, false
}

// SwapWindows exchanges two windows' positions in the insertion order.
func (ws *Workspace) SwapWindows(a, b xproto.Window) {
	i, okA := ws.IndexOf(a)
	j, okB := ws.IndexOf(b)
	if !okA || !okB {
		return
	}
	ws.order[i], ws.order[j] = ws.order[j], ws.order[i]
	ws.repairFocus()
}

// FullscreenWindow returns the fullscreen mark, if set.
func (ws *Workspace) FullscreenWindow() (xproto.Window, bool) {
	if ws.fullscreen == 0 {
		return 0, false
	}
	return ws.fullscreen, true
}

// SetFullscreen marks a window fullscreen iff it exists here; the window
// takes focus.
func (ws *Workspace) SetFullscreen(window xproto.Window) bool {
	if _, exists := ws.clients[window]; !exists {
		return false
	}
	ws.fullscreen = window
	ws.repairFocus()
	return true
}

// ClearFullscreen unsets the fullscreen mark.
func (ws *Workspace) ClearFullscreen() {
	ws.fullscreen = 0
}

// SetClientMapped updates a client's mapped flag and repairs focus.
func (ws *Workspace) SetClientMapped(window xproto.Window, mapped bool) {
	c, exists := ws.clients[window]
	if !exists {
		return
	}
	c.SetMapped(mapped)
	ws.repairFocus()
}

// repairFocus restores the focus invariants after a structural mutation:
// a fullscreen mark pins focus; an empty workspace has none; a still-valid
// mapped focus is kept. After the focused client is removed the focus index
// names its successor (or the new last client), which is kept if mapped;
// otherwise the first mapped client in insertion order wins, falling back
// to the last client so navigation keeps a starting point even when nothing
// is mapped.
func (ws *Workspace) repairFocus() {
	if ws.fullscreen != 0 {
		if idx, ok := ws.IndexOf(ws.fullscreen); ok {
			ws.focus = idx
			return
		}
		ws.fullscreen = 0
	}
	if len(ws.order) == 0 {
		ws.focus = -1
		return
	}
	if ws.focus >= len(ws.order) {
		ws.focus = len(ws.order) - 1
	}
	if ws.focus >= 0 && ws.clients[ws.order[ws.focus]].IsMapped() {
		return
	}
	for i, w := range ws.order {
		if ws.clients[w].IsMapped() {
			ws.focus = i
			return
		}
	}
	ws.focus = len(ws.order) - 1
}
