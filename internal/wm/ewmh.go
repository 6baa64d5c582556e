package wm

import (
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// PropertyReader is the read side of the root-window property protocol.
// internal/x11 implements it; tests substitute a map.
type PropertyReader interface {
	GetCardinal32(window xproto.Window, prop xproto.Atom) (uint32, bool)
}

// EwmhManager produces the effects that keep the EWMH properties on the
// root window (and the check window) in line with the model. Like State it
// never touches the connection; reads go through the PropertyReader.
type EwmhManager struct {
	reader PropertyReader
	atoms  *Atoms
	root   xproto.Window
	check  xproto.Window
	wmName string
	pid    uint32
}

// NewEwmhManager wires the manager to the interned atoms and the check
// window created at startup.
func NewEwmhManager(reader PropertyReader, atoms *Atoms, root, check xproto.Window, wmName string, pid uint32) *EwmhManager {
	return &EwmhManager{
		reader: reader,
		atoms:  atoms,
		root:   root,
		check:  check,
		wmName: wmName,
		pid:    pid,
	}
}

// PublishHints is the startup property set: the supporting-check
// self-reference loop, the supported atom list, and the initial desktop
// bookkeeping.
func (e *EwmhManager) PublishHints(numWorkspaces int) []Effect {
	names := make([]string, numWorkspaces)
	for i := range names {
		names[i] = strconv.Itoa(i + 1)
	}
	// EWMH encodes the name list as NUL-terminated UTF8 strings.
	desktopNames := strings.Join(names, "\x00") + "\x00"

	viewport := make([]uint32, 2*numWorkspaces)

	return []Effect{
		SetWindowProperty{Window: e.root, Atom: e.atoms.SupportingWmCheck, Values: []xproto.Window{e.check}},
		SetWindowProperty{Window: e.check, Atom: e.atoms.SupportingWmCheck, Values: []xproto.Window{e.check}},
		SetUtf8String{Window: e.check, Atom: e.atoms.WmName, Value: e.wmName},
		SetCardinal32{Window: e.check, Atom: e.atoms.WmPid, Value: e.pid},
		SetAtomList{Window: e.root, Atom: e.atoms.Supported, Values: e.atoms.SupportedList()},
		SetCardinal32{Window: e.root, Atom: e.atoms.NumberOfDesktops, Value: uint32(numWorkspaces)},
		SetCardinal32{Window: e.root, Atom: e.atoms.CurrentDesktop, Value: 0},
		SetCardinal32{Window: e.root, Atom: e.atoms.ShowingDesktop, Value: 0},
		SetCardinal32List{Window: e.root, Atom: e.atoms.DesktopViewport, Values: viewport},
		SetUtf8String{Window: e.root, Atom: e.atoms.DesktopNames, Value: desktopNames},
		SetWindowProperty{Window: e.root, Atom: e.atoms.ClientList, Values: []xproto.Window{}},
		SetWindowProperty{Window: e.root, Atom: e.atoms.ClientListStacking, Values: []xproto.Window{}},
		SetWindowProperty{Window: e.root, Atom: e.atoms.ActiveWindow, Values: []xproto.Window{0}},
	}
}

// Sync re-publishes everything that can drift during an event turn: client
// lists, current desktop, active window, workarea and the per-window
// desktop and state properties. Appended after the decision effects of
// every turn.
func (e *EwmhManager) Sync(st *State) []Effect {
	clientList := st.ClientListWindows()

	active := xproto.Window(0)
	if focused, ok := st.FocusedWindow(); ok {
		active = focused
	}

	workarea := make([]uint32, 0, 4*st.NumWorkspaces())
	usableHeight := st.UsableScreenHeight()
	for i := 0; i < st.NumWorkspaces(); i++ {
		workarea = append(workarea, 0, 0, st.Screen().Width, usableHeight)
	}

	effects := []Effect{
		SetWindowProperty{Window: e.root, Atom: e.atoms.ClientList, Values: clientList},
		SetWindowProperty{Window: e.root, Atom: e.atoms.ClientListStacking, Values: clientList},
		SetCardinal32{Window: e.root, Atom: e.atoms.CurrentDesktop, Value: uint32(st.CurrentWorkspaceID())},
		SetWindowProperty{Window: e.root, Atom: e.atoms.ActiveWindow, Values: []xproto.Window{active}},
		SetCardinal32List{Window: e.root, Atom: e.atoms.Workarea, Values: workarea},
	}

	for _, window := range st.ManagedWindowsSorted() {
		workspaceID, _ := st.WindowWorkspace(window)
		effects = append(effects, SetCardinal32{
			Window: window,
			Atom:   e.atoms.WmDesktop,
			Value:  uint32(workspaceID),
		})

		state := []xproto.Atom{}
		if st.IsWindowFullscreen(window) {
			state = append(state, e.atoms.WmStateFullscreen)
		}
		effects = append(effects, SetAtomList{
			Window: window,
			Atom:   e.atoms.WmState,
			Values: state,
		})
	}

	return effects
}

// WindowDesktop reads _NET_WM_DESKTOP from a window.
func (e *EwmhManager) WindowDesktop(window xproto.Window) (int, bool) {
	v, ok := e.reader.GetCardinal32(window, e.atoms.WmDesktop)
	return int(v), ok
}

// CurrentDesktop reads _NET_CURRENT_DESKTOP from the root window.
func (e *EwmhManager) CurrentDesktop() (int, bool) {
	v, ok := e.reader.GetCardinal32(e.root, e.atoms.CurrentDesktop)
	return int(v), ok
}
