package wm

import "github.com/BurntSushi/xgb/xproto"

// Effect is a declarative description of one X-server-visible action. The
// decision layer emits effects; internal/x11 is the only code that turns
// them into protocol requests. The set of variants is closed: consumers
// dispatch with a type switch.
type Effect interface {
	isEffect()
}

// Map shows a window.
type Map struct {
	Window xproto.Window
}

// Unmap hides a window.
type Unmap struct {
	Window xproto.Window
}

// Configure moves and resizes a window and writes its border width.
type Configure struct {
	Window xproto.Window
	X      int32
	Y      int32
	W      uint32
	H      uint32
	Border uint32
}

// ConfigurePositionSize moves and resizes a window without touching the
// border width.
type ConfigurePositionSize struct {
	Window xproto.Window
	X      int32
	Y      int32
	W      uint32
	H      uint32
}

// Focus gives a window the input focus.
type Focus struct {
	Window xproto.Window
}

// Raise moves a window to the top of the stacking order.
type Raise struct {
	Window xproto.Window
}

// SetBorder writes a window's border pixel and border width.
type SetBorder struct {
	Window xproto.Window
	Pixel  uint32
	Width  uint32
}

// SetCardinal32 replaces a CARDINAL property with a single value.
type SetCardinal32 struct {
	Window xproto.Window
	Atom   xproto.Atom
	Value  uint32
}

// SetCardinal32List replaces a CARDINAL property with a list of values.
type SetCardinal32List struct {
	Window xproto.Window
	Atom   xproto.Atom
	Values []uint32
}

// SetAtomList replaces an ATOM property with a list of atoms.
type SetAtomList struct {
	Window xproto.Window
	Atom   xproto.Atom
	Values []xproto.Atom
}

// SetUtf8String replaces a UTF8_STRING property.
type SetUtf8String struct {
	Window xproto.Window
	Atom   xproto.Atom
	Value  string
}

// SetWindowProperty replaces a WINDOW-typed property with a list of window
// identifiers.
type SetWindowProperty struct {
	Window xproto.Window
	Atom   xproto.Atom
	Values []xproto.Window
}

// KillClient forcefully disconnects a window's client.
type KillClient struct {
	Window xproto.Window
}

// SendWmDelete asks a window to close itself via WM_DELETE_WINDOW.
type SendWmDelete struct {
	Window xproto.Window
}

// GrabKey registers a passive key grab on a window.
type GrabKey struct {
	Keycode    xproto.Keycode
	Modifiers  uint16
	GrabWindow xproto.Window
}

func (Map) isEffect()                   {}
func (Unmap) isEffect()                 {}
func (Configure) isEffect()             {}
func (ConfigurePositionSize) isEffect() {}
func (Focus) isEffect()                 {}
func (Raise) isEffect()                 {}
func (SetBorder) isEffect()             {}
func (SetCardinal32) isEffect()         {}
func (SetCardinal32List) isEffect()     {}
func (SetAtomList) isEffect()           {}
func (SetUtf8String) isEffect()         {}
func (SetWindowProperty) isEffect()     {}
func (KillClient) isEffect()            {}
func (SendWmDelete) isEffect()          {}
func (GrabKey) isEffect()               {}
