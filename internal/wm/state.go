package wm

import (
	"sort"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/benlellouch/rdwm/internal/layout"
)

// ScreenConfig describes the output the manager tiles onto.
type ScreenConfig struct {
	Width              uint32
	Height             uint32
	FocusedBorderPixel uint32
	NormalBorderPixel  uint32
}

// StateConfig carries the tiling knobs State starts with.
type StateConfig struct {
	NumWorkspaces int
	BorderWidth   uint32
	WindowGap     uint32
	DockHeight    uint32
	DefaultLayout string
}

// State is the decision layer: the in-memory model of all workspaces,
// docks and knobs. Every mutating operation returns the effects needed to
// bring the X server in line with the new model; State itself never
// performs I/O.
type State struct {
	logger *logrus.Logger

	layouts *layout.Manager

	workspaces        []*Workspace
	windowToWorkspace map[xproto.Window]int
	currentWorkspace  int

	screen      ScreenConfig
	borderWidth uint32
	windowGap   uint32

	dockWindows []xproto.Window
	dockHeight  uint32
}

// NewState builds a State with cfg.NumWorkspaces empty workspaces.
func NewState(logger *logrus.Logger, screen ScreenConfig, cfg StateConfig) *State {
	workspaces := make([]*Workspace, cfg.NumWorkspaces)
	for i := range workspaces {
		workspaces[i] = NewWorkspace()
	}
	return &State{
		logger:            logger,
		layouts:           layout.NewManager(cfg.DefaultLayout),
		workspaces:        workspaces,
		windowToWorkspace: make(map[xproto.Window]int),
		currentWorkspace:  0,
		screen:            screen,
		borderWidth:       cfg.BorderWidth,
		windowGap:         cfg.WindowGap,
		dockHeight:        cfg.DockHeight,
	}
}

// Screen returns the screen configuration.
func (s *State) Screen() ScreenConfig { return s.screen }

// NumWorkspaces returns the number of virtual desktops.
func (s *State) NumWorkspaces() int { return len(s.workspaces) }

// CurrentWorkspaceID returns the active workspace index.
func (s *State) CurrentWorkspaceID() int { return s.currentWorkspace }

// FocusedWindow returns the focused window on the active workspace.
func (s *State) FocusedWindow() (xproto.Window, bool) {
	return s.current().FocusedWindow()
}

// WindowWorkspace resolves a managed window to its workspace.
func (s *State) WindowWorkspace(window xproto.Window) (int, bool) {
	id, ok := s.windowToWorkspace[window]
	return id, ok
}

// IsWindowFullscreen reports whether any workspace marks the window
// fullscreen.
func (s *State) IsWindowFullscreen(window xproto.Window) bool {
	for _, ws := range s.workspaces {
		if fs, ok := ws.FullscreenWindow(); ok && fs == window {
			return true
		}
	}
	return false
}

// UsableScreenHeight is the screen height minus the dock strip when any
// dock is present.
func (s *State) UsableScreenHeight() uint32 {
	if len(s.dockWindows) > 0 && s.screen.Height > s.dockHeight {
		return s.screen.Height - s.dockHeight
	}
	return s.screen.Height
}

// ManagedWindowsSorted returns all managed windows ordered by
// (workspace, window identifier).
func (s *State) ManagedWindowsSorted() []xproto.Window {
	type entry struct {
		workspace int
		window    xproto.Window
	}
	entries := make([]entry, 0, len(s.windowToWorkspace))
	for w, ws := range s.windowToWorkspace {
		entries = append(entries, entry{ws, w})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].workspace != entries[j].workspace {
			return entries[i].workspace < entries[j].workspace
		}
		return entries[i].window < entries[j].window
	})
	out := make([]xproto.Window, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.window)
	}
	return out
}

// ClientListWindows returns the EWMH client list: managed windows sorted
// by (workspace, identifier) followed by docks sorted by identifier.
func (s *State) ClientListWindows() []xproto.Window {
	out := s.ManagedWindowsSorted()
	docks := make([]xproto.Window, len(s.dockWindows))
	copy(docks, s.dockWindows)
	sort.Slice(docks, func(i, j int) bool { return docks[i] < docks[j] })
	return append(out, docks...)
}

func (s *State) current() *Workspace {
	return s.workspaces[s.currentWorkspace]
}

func (s *State) workspace(id int) *Workspace {
	if id < 0 || id >= len(s.workspaces) {
		return nil
	}
	return s.workspaces[id]
}

func (s *State) trackedWindowType(window xproto.Window) WindowType {
	for _, dock := range s.dockWindows {
		if dock == window {
			return Dock
		}
	}
	if _, ok := s.windowToWorkspace[window]; ok {
		return Managed
	}
	return Unmanaged
}

// ConfigureWindows lays out a workspace's mapped clients. A mapped
// fullscreen client short-circuits to one whole-screen borderless
// configure plus a raise.
func (s *State) ConfigureWindows(workspaceID int) []Effect {
	ws := s.workspace(workspaceID)
	if ws == nil {
		return nil
	}

	if fs, ok := ws.FullscreenWindow(); ok && ws.IsWindowMapped(fs) {
		return []Effect{
			Configure{
				Window: fs,
				X:      0,
				Y:      0,
				W:      s.screen.Width,
				H:      s.screen.Height,
				Border: 0,
			},
			Raise{Window: fs},
		}
	}

	var clients []*Client
	for _, c := range ws.Clients() {
		if c.IsMapped() {
			clients = append(clients, c)
		}
	}
	if len(clients) == 0 {
		return nil
	}

	weights := make([]uint32, len(clients))
	for i, c := range clients {
		weights[i] = c.Weight()
	}
	area := layout.Rect{X: 0, Y: 0, W: s.screen.Width, H: s.UsableScreenHeight()}
	rects := s.layouts.Current().Generate(area, weights, s.borderWidth, s.windowGap)

	effects := make([]Effect, 0, len(clients))
	for i, c := range clients {
		effects = append(effects, Configure{
			Window: c.Window(),
			X:      rects[i].X,
			Y:      rects[i].Y,
			W:      rects[i].W,
			H:      rects[i].H,
			Border: s.borderWidth,
		})
	}
	return effects
}

// ConfigureDockWindows pins every dock to the bottom strip.
func (s *State) ConfigureDockWindows() []Effect {
	effects := make([]Effect, 0, len(s.dockWindows))
	dockY := int32(s.screen.Height) - int32(s.dockHeight)
	for _, dock := range s.dockWindows {
		effects = append(effects, ConfigurePositionSize{
			Window: dock,
			X:      0,
			Y:      dockY,
			W:      s.screen.Width,
			H:      s.dockHeight,
		})
	}
	return effects
}

// SetFocus moves focus to a window on the active workspace. A mapped
// fullscreen client pins focus: requests for any other window are ignored.
func (s *State) SetFocus(window xproto.Window) []Effect {
	ws := s.current()

	fs, hasFullscreen := ws.FullscreenWindow()
	if hasFullscreen && ws.IsWindowMapped(fs) && window != fs {
		return nil
	}
	if !ws.IsWindowMapped(window) {
		return nil
	}

	borderFor := func(w xproto.Window) uint32 {
		if hasFullscreen && w == fs {
			return 0
		}
		return s.borderWidth
	}

	var effects []Effect
	if old, ok := ws.FocusedWindow(); ok {
		effects = append(effects, SetBorder{
			Window: old,
			Pixel:  s.screen.NormalBorderPixel,
			Width:  borderFor(old),
		})
	}

	ws.SetFocus(window)

	effects = append(effects,
		SetBorder{
			Window: window,
			Pixel:  s.screen.FocusedBorderPixel,
			Width:  borderFor(window),
		},
		Focus{Window: window},
	)
	if hasFullscreen && window == fs {
		effects = append(effects, Raise{Window: window})
	}
	return effects
}

// ToggleFullscreen toggles the fullscreen mark on the focused window.
func (s *State) ToggleFullscreen() []Effect {
	ws := s.current()
	focused, ok := ws.FocusedWindow()
	if !ok {
		return nil
	}

	fs, hasFullscreen := ws.FullscreenWindow()
	toggleOff := hasFullscreen && fs == focused

	var effects []Effect
	if toggleOff {
		ws.ClearFullscreen()
	} else {
		ws.SetFullscreen(focused)
		effects = append(effects, Raise{Window: focused})
	}

	effects = append(effects, s.ConfigureWindows(s.currentWorkspace)...)
	effects = append(effects, s.SetFocus(focused)...)
	return effects
}

// FocusWindow focuses a window wherever it lives, switching workspaces if
// needed. desktopHint covers windows not tracked locally (EWMH
// _NET_ACTIVE_WINDOW requests carrying _NET_WM_DESKTOP). Ignored while a
// fullscreen mark is active on the current workspace.
func (s *State) FocusWindow(window xproto.Window, desktopHint *int) []Effect {
	if _, ok := s.current().FullscreenWindow(); ok {
		return nil
	}

	workspaceID, tracked := s.windowToWorkspace[window]
	if !tracked {
		if desktopHint == nil {
			return nil
		}
		workspaceID = *desktopHint
	}

	var effects []Effect
	if workspaceID >= 0 && workspaceID < len(s.workspaces) && workspaceID != s.currentWorkspace {
		effects = append(effects, s.switchWorkspace(workspaceID, false)...)
	}
	effects = append(effects, s.SetFocus(window)...)
	return effects
}

// GoToWorkspace switches the active workspace. Switching to the current
// workspace or out of range is a no-op.
func (s *State) GoToWorkspace(workspaceID int) []Effect {
	return s.switchWorkspace(workspaceID, false)
}

// switchWorkspace unmaps the outgoing workspace, then maps and lays out
// the incoming one. The outgoing unmaps always precede the incoming maps.
// force rebuilds the target workspace even when it is already current,
// which is what startup reassembly needs.
func (s *State) switchWorkspace(workspaceID int, force bool) []Effect {
	if workspaceID < 0 || workspaceID >= len(s.workspaces) {
		return nil
	}
	if workspaceID == s.currentWorkspace && !force {
		return nil
	}

	var effects []Effect

	if workspaceID != s.currentWorkspace {
		outgoing := s.current()
		for _, window := range outgoing.Windows() {
			outgoing.SetClientMapped(window, false)
			effects = append(effects, Unmap{Window: window})
		}
	}

	s.currentWorkspace = workspaceID

	incoming := s.current()
	for _, window := range incoming.Windows() {
		incoming.SetClientMapped(window, true)
		effects = append(effects, Map{Window: window})
	}

	effects = append(effects, s.ConfigureWindows(s.currentWorkspace)...)
	if focused, ok := incoming.FocusedWindow(); ok {
		effects = append(effects, s.SetFocus(focused)...)
	}
	return effects
}

// SendToWorkspace moves the focused client to another workspace, unmapped,
// and repairs the current workspace.
func (s *State) SendToWorkspace(workspaceID int) []Effect {
	target := s.workspace(workspaceID)
	if target == nil {
		return nil
	}

	window, ok := s.current().RemoveFocusedWindow()
	if !ok {
		return nil
	}

	target.PushWindow(window)
	target.SetClientMapped(window, false)
	s.windowToWorkspace[window] = workspaceID

	effects := []Effect{
		Unmap{Window: window},
		SetBorder{
			Window: window,
			Pixel:  s.screen.NormalBorderPixel,
			Width:  s.borderWidth,
		},
	}
	effects = append(effects, s.ConfigureWindows(s.currentWorkspace)...)
	effects = append(effects, s.ConfigureWindows(workspaceID)...)
	if focused, ok := s.current().FocusedWindow(); ok {
		effects = append(effects, s.SetFocus(focused)...)
	}
	return effects
}

// IncreaseWindowWeight grows the focused client's layout share.
func (s *State) IncreaseWindowWeight(amount uint32) []Effect {
	c := s.current().FocusedClient()
	if c == nil {
		return nil
	}
	c.IncreaseWeight(amount)
	return s.ConfigureWindows(s.currentWorkspace)
}

// DecreaseWindowWeight shrinks the focused client's layout share.
func (s *State) DecreaseWindowWeight(amount uint32) []Effect {
	c := s.current().FocusedClient()
	if c == nil {
		return nil
	}
	c.DecreaseWeight(amount)
	return s.ConfigureWindows(s.currentWorkspace)
}

// IncreaseWindowGap widens the gap and relayouts.
func (s *State) IncreaseWindowGap(amount uint32) []Effect {
	s.windowGap += amount
	return s.ConfigureWindows(s.currentWorkspace)
}

// DecreaseWindowGap narrows the gap, saturating at zero. An unchanged gap
// produces no effects.
func (s *State) DecreaseWindowGap(amount uint32) []Effect {
	newGap := uint32(0)
	if s.windowGap > amount {
		newGap = s.windowGap - amount
	}
	if newGap == s.windowGap {
		return nil
	}
	s.windowGap = newGap
	return s.ConfigureWindows(s.currentWorkspace)
}

// ShiftFocus moves focus to the next mapped window in the given direction.
func (s *State) ShiftFocus(direction int) []Effect {
	next, ok := s.current().NextMappedWindow(direction)
	if !ok {
		return nil
	}
	return s.SetFocus(next)
}

// SwapWindow exchanges the focused window with the next mapped one.
// Disabled while a fullscreen mark is active.
func (s *State) SwapWindow(direction int) []Effect {
	ws := s.current()
	if _, ok := ws.FullscreenWindow(); ok {
		return nil
	}
	focused, ok := ws.FocusedWindow()
	if !ok {
		return nil
	}
	next, ok := ws.NextMappedWindow(direction)
	if !ok {
		return nil
	}

	ws.SwapWindows(focused, next)

	effects := s.SetFocus(focused)
	effects = append(effects, s.ConfigureWindows(s.currentWorkspace)...)
	return effects
}

// CycleLayout selects the next layout strategy and relayouts.
func (s *State) CycleLayout() []Effect {
	s.layouts.Cycle()
	s.logger.WithField("layout", s.layouts.CurrentName()).Debug("layout cycled")
	return s.ConfigureWindows(s.currentWorkspace)
}

// OnMapRequest handles a MapRequest for a window of the given kind.
func (s *State) OnMapRequest(window xproto.Window, kind WindowType) []Effect {
	switch kind {
	case Dock:
		return s.mapRequestDock(window)
	case Managed:
		return s.mapRequestManaged(window)
	default:
		return []Effect{Map{Window: window}}
	}
}

func (s *State) mapRequestDock(window xproto.Window) []Effect {
	tracked := false
	for _, dock := range s.dockWindows {
		if dock == window {
			tracked = true
			break
		}
	}
	if !tracked {
		s.dockWindows = append(s.dockWindows, window)
	}

	effects := []Effect{Map{Window: window}}
	effects = append(effects, s.ConfigureDockWindows()...)
	effects = append(effects, s.ConfigureWindows(s.currentWorkspace)...)
	return effects
}

func (s *State) mapRequestManaged(window xproto.Window) []Effect {
	ws := s.current()
	if c := ws.Client(window); c != nil {
		ws.SetClientMapped(window, true)
	} else {
		ws.PushWindow(window)
		s.windowToWorkspace[window] = s.currentWorkspace
	}

	effects := []Effect{Map{Window: window}}

	if fs, ok := ws.FullscreenWindow(); ok && ws.IsWindowMapped(fs) {
		// No focus stealing: the fullscreen client keeps the screen.
		effects = append(effects, s.ConfigureWindows(s.currentWorkspace)...)
		effects = append(effects, s.SetFocus(fs)...)
		return effects
	}

	effects = append(effects, s.SetFocus(window)...)
	effects = append(effects, s.ConfigureWindows(s.currentWorkspace)...)
	return effects
}

// OnDestroy handles a DestroyNotify for any window.
func (s *State) OnDestroy(window xproto.Window) []Effect {
	switch s.trackedWindowType(window) {
	case Dock:
		return s.destroyDock(window)
	case Managed:
		return s.destroyManaged(window)
	default:
		return nil
	}
}

func (s *State) destroyDock(window xproto.Window) []Effect {
	docks := s.dockWindows[:0]
	for _, dock := range s.dockWindows {
		if dock != window {
			docks = append(docks, dock)
		}
	}
	s.dockWindows = docks

	var effects []Effect
	if len(s.dockWindows) > 0 {
		effects = append(effects, s.ConfigureDockWindows()...)
	}
	effects = append(effects, s.ConfigureWindows(s.currentWorkspace)...)
	return effects
}

func (s *State) destroyManaged(window xproto.Window) []Effect {
	if workspaceID, ok := s.windowToWorkspace[window]; ok {
		delete(s.windowToWorkspace, window)
		if ws := s.workspace(workspaceID); ws != nil {
			ws.RemoveClient(window)
		}
	}

	effects := s.ConfigureWindows(s.currentWorkspace)
	if focused, ok := s.current().FocusedWindow(); ok {
		effects = append(effects, s.SetFocus(focused)...)
	}
	return effects
}

// OnUnmap handles an UnmapNotify. Only managed windows are modelled; a
// window on a background workspace updates silently.
func (s *State) OnUnmap(window xproto.Window) []Effect {
	if s.trackedWindowType(window) != Managed {
		return nil
	}
	workspaceID, ok := s.windowToWorkspace[window]
	if !ok {
		return nil
	}

	ws := s.workspace(workspaceID)
	if ws == nil || !ws.IsWindowMapped(window) {
		return nil
	}
	ws.SetClientMapped(window, false)

	if workspaceID != s.currentWorkspace {
		return nil
	}
	return s.ConfigureWindows(s.currentWorkspace)
}

// ApplyAction interprets a bound action. Spawn and Kill are the loop's
// business and produce nothing here.
func (s *State) ApplyAction(action Action) []Effect {
	switch a := action.(type) {
	case NextWindow:
		return s.ShiftFocus(1)
	case PrevWindow:
		return s.ShiftFocus(-1)
	case SwapLeft:
		return s.SwapWindow(-1)
	case SwapRight:
		return s.SwapWindow(1)
	case IncreaseWindowWeight:
		return s.IncreaseWindowWeight(a.Amount)
	case DecreaseWindowWeight:
		return s.DecreaseWindowWeight(a.Amount)
	case IncreaseWindowGap:
		return s.IncreaseWindowGap(a.Amount)
	case DecreaseWindowGap:
		return s.DecreaseWindowGap(a.Amount)
	case GoToWorkspace:
		return s.GoToWorkspace(a.Workspace)
	case SendToWorkspace:
		return s.SendToWorkspace(a.Workspace)
	case ToggleFullscreen:
		return s.ToggleFullscreen()
	case CycleLayout:
		return s.CycleLayout()
	default:
		return nil
	}
}

// TrackStartupDock records a dock found during startup reassembly.
func (s *State) TrackStartupDock(window xproto.Window) {
	for _, dock := range s.dockWindows {
		if dock == window {
			return
		}
	}
	s.dockWindows = append(s.dockWindows, window)
}

// TrackStartupManaged records a pre-existing managed window on the
// workspace its _NET_WM_DESKTOP named.
func (s *State) TrackStartupManaged(window xproto.Window, workspaceID int) {
	ws := s.workspace(workspaceID)
	if ws == nil {
		return
	}
	ws.PushWindow(window)
	s.windowToWorkspace[window] = workspaceID
}

// StartupFinalize positions any rediscovered docks and force-switches to
// the workspace a previous manager left current.
func (s *State) StartupFinalize(currentDesktop *int) []Effect {
	var effects []Effect
	if len(s.dockWindows) > 0 {
		effects = append(effects, s.ConfigureDockWindows()...)
	}
	if currentDesktop != nil {
		effects = append(effects, s.switchWorkspace(*currentDesktop, true)...)
	}
	return effects
}
