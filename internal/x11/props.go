package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/benlellouch/rdwm/internal/wm"
)

// GetRootWindowChildren lists the current children of the root window,
// used for startup reassembly.
func (c *Conn) GetRootWindowChildren() ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(c.conn, c.root).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

// ClassifyWindow decides how a window should be handled: override-redirect
// windows pass through unmanaged, windows advertising
// _NET_WM_WINDOW_TYPE_DOCK become docks, everything else is managed.
// Failed reads degrade to "property absent".
func (c *Conn) ClassifyWindow(window xproto.Window) wm.WindowType {
	if window == c.check {
		return wm.Unmanaged
	}

	attrs, err := xproto.GetWindowAttributes(c.conn, window).Reply()
	if err == nil && attrs.OverrideRedirect {
		return wm.Unmanaged
	}

	reply, err := xproto.GetProperty(c.conn, false, window,
		c.atoms.WmWindowType, xproto.AtomAtom, 0, 32).Reply()
	if err == nil && reply.Format == 32 {
		for i := 0; i < int(reply.ValueLen); i++ {
			if xproto.Atom(xgb.Get32(reply.Value[i*4:])) == c.atoms.WmWindowTypeDock {
				return wm.Dock
			}
		}
	}
	return wm.Managed
}

// SupportsWmDelete reports whether a window lists WM_DELETE_WINDOW in its
// WM_PROTOCOLS, i.e. whether it can be closed gracefully.
func (c *Conn) SupportsWmDelete(window xproto.Window) (bool, error) {
	reply, err := xproto.GetProperty(c.conn, false, window,
		c.atoms.WmProtocols, xproto.AtomAtom, 0, 1024).Reply()
	if err != nil {
		return false, err
	}
	if reply.Format != 32 {
		return false, nil
	}
	for i := 0; i < int(reply.ValueLen); i++ {
		if xproto.Atom(xgb.Get32(reply.Value[i*4:])) == c.atoms.WmDeleteWindow {
			return true, nil
		}
	}
	return false, nil
}

// GetCardinal32 reads the first 32-bit value of a CARDINAL property.
// Absent properties and failed reads both report false. Satisfies
// wm.PropertyReader.
func (c *Conn) GetCardinal32(window xproto.Window, prop xproto.Atom) (uint32, bool) {
	reply, err := xproto.GetProperty(c.conn, false, window,
		prop, xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || reply.Format != 32 || reply.ValueLen == 0 {
		return 0, false
	}
	return xgb.Get32(reply.Value), true
}
