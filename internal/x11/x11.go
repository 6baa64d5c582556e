// Package x11 owns the X connection. It translates Effect values into
// protocol requests and exposes the handful of synchronous reads the rest
// of the manager needs. No other package speaks to the server.
package x11

import (
	"context"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/benlellouch/rdwm/internal/wm"
)

// Conn wraps the xgb connection together with the data derived from it at
// startup: the root window, the interned atom table, the EWMH check window
// and the keyboard mapping.
type Conn struct {
	logger *logrus.Logger
	tracer trace.Tracer

	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	root   xproto.Window
	atoms  *wm.Atoms
	check  xproto.Window

	minKeycode        xproto.Keycode
	keysyms           []xproto.Keysym
	keysymsPerKeycode int
}

// checker is satisfied by every checked request cookie.
type checker interface {
	Check() error
}

// Connect opens the display, interns the atom table, creates the EWMH
// check window and loads the keyboard mapping. Any failure here is fatal
// to the caller.
func Connect(logger *logrus.Logger) (*Conn, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connecting to display: %w", err)
	}

	setup := xproto.Setup(conn)
	if setup == nil || len(setup.Roots) == 0 {
		conn.Close()
		return nil, fmt.Errorf("no screens in connection setup")
	}
	screen := setup.DefaultScreen(conn)

	c := &Conn{
		logger: logger,
		tracer: otel.Tracer("rdwm-x11"),
		conn:   conn,
		screen: screen,
		root:   screen.Root,
	}

	if err := c.internAtoms(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := c.createCheckWindow(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := c.loadKeyboardMapping(setup); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Close shuts the connection down.
func (c *Conn) Close() {
	c.conn.Close()
}

// Root returns the root window.
func (c *Conn) Root() xproto.Window { return c.root }

// CheckWindow returns the EWMH supporting check window.
func (c *Conn) CheckWindow() xproto.Window { return c.check }

// Atoms returns the interned atom table.
func (c *Conn) Atoms() *wm.Atoms { return c.atoms }

// ScreenSize returns the root dimensions in pixels.
func (c *Conn) ScreenSize() (width, height uint32) {
	return uint32(c.screen.WidthInPixels), uint32(c.screen.HeightInPixels)
}

func (c *Conn) internAtoms() error {
	cookies := make([]xproto.InternAtomCookie, len(wm.AtomNames))
	for i, name := range wm.AtomNames {
		cookies[i] = xproto.InternAtom(c.conn, false, uint16(len(name)), name)
	}
	values := make([]xproto.Atom, len(cookies))
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return fmt.Errorf("interning atom %s: %w", wm.AtomNames[i], err)
		}
		values[i] = reply.Atom
	}
	c.atoms = &wm.Atoms{}
	c.atoms.Fill(values)
	return nil
}

// createCheckWindow creates the 1x1 off-screen, override-redirect,
// input-only window that signals EWMH conformance.
func (c *Conn) createCheckWindow() error {
	wid, err := xproto.NewWindowId(c.conn)
	if err != nil {
		return fmt.Errorf("allocating check window id: %w", err)
	}
	err = xproto.CreateWindowChecked(
		c.conn,
		0, // depth, from parent for InputOnly
		wid,
		c.root,
		-1, -1, 1, 1,
		0,
		xproto.WindowClassInputOnly,
		c.screen.RootVisual,
		xproto.CwOverrideRedirect,
		[]uint32{1},
	).Check()
	if err != nil {
		return fmt.Errorf("creating check window: %w", err)
	}
	c.check = wid
	return nil
}

// SetRootEventMask subscribes the root window to substructure redirection
// and key presses. Exactly one client may hold this mask; the server
// rejects a second window manager here.
func (c *Conn) SetRootEventMask() error {
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskKeyPress)
	err := xproto.ChangeWindowAttributesChecked(
		c.conn, c.root, xproto.CwEventMask, []uint32{mask},
	).Check()
	if err != nil {
		return fmt.Errorf("installing root event mask (is another WM running?): %w", err)
	}
	return nil
}

// WaitForEvent blocks until the next event or connection error.
func (c *Conn) WaitForEvent() (xgb.Event, xgb.Error) {
	return c.conn.WaitForEvent()
}

// ApplyEffectsUnchecked sends each effect fire-and-forget. Protocol errors
// surface asynchronously in the event loop and are logged there.
func (c *Conn) ApplyEffectsUnchecked(ctx context.Context, effects []wm.Effect) {
	_, span := c.tracer.Start(ctx, "x11.ApplyEffectsUnchecked")
	defer span.End()

	for _, effect := range effects {
		c.sendEffectUnchecked(effect)
	}
}

// ApplyEffectsChecked issues every request with a checked cookie, then
// awaits each reply and logs failures against the effect that caused
// them. Used for startup work (grabs, hint publication) where errors are
// diagnostic.
func (c *Conn) ApplyEffectsChecked(ctx context.Context, effects []wm.Effect) {
	_, span := c.tracer.Start(ctx, "x11.ApplyEffectsChecked")
	defer span.End()

	type pending struct {
		cookie checker
		desc   string
	}
	var checks []pending
	for _, effect := range effects {
		desc := fmt.Sprintf("%#v", effect)
		for _, cookie := range c.sendEffectChecked(effect) {
			checks = append(checks, pending{cookie, desc})
		}
	}
	for _, p := range checks {
		if err := p.cookie.Check(); err != nil {
			c.logger.WithError(err).WithField("effect", p.desc).Error("X error applying effect")
		}
	}
}

func (c *Conn) sendEffectUnchecked(effect wm.Effect) {
	switch e := effect.(type) {
	case wm.Map:
		xproto.MapWindow(c.conn, e.Window)
	case wm.Unmap:
		xproto.UnmapWindow(c.conn, e.Window)
	case wm.Configure:
		xproto.ConfigureWindow(c.conn, e.Window, configureMask, configureValues(e))
	case wm.ConfigurePositionSize:
		xproto.ConfigureWindow(c.conn, e.Window, positionSizeMask, positionSizeValues(e))
	case wm.Focus:
		xproto.SetInputFocus(c.conn, xproto.InputFocusPointerRoot, e.Window, xproto.TimeCurrentTime)
	case wm.Raise:
		xproto.ConfigureWindow(c.conn, e.Window, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	case wm.SetBorder:
		xproto.ChangeWindowAttributes(c.conn, e.Window, xproto.CwBorderPixel, []uint32{e.Pixel})
		xproto.ConfigureWindow(c.conn, e.Window, xproto.ConfigWindowBorderWidth, []uint32{e.Width})
	case wm.SetCardinal32:
		c.changeProperty(e.Window, e.Atom, xproto.AtomCardinal, packUint32(e.Value))
	case wm.SetCardinal32List:
		c.changeProperty(e.Window, e.Atom, xproto.AtomCardinal, packUint32(e.Values...))
	case wm.SetAtomList:
		c.changeProperty(e.Window, e.Atom, xproto.AtomAtom, packAtoms(e.Values))
	case wm.SetUtf8String:
		c.changePropertyRaw(e.Window, e.Atom, c.atoms.Utf8String, 8, uint32(len(e.Value)), []byte(e.Value))
	case wm.SetWindowProperty:
		c.changeProperty(e.Window, e.Atom, xproto.AtomWindow, packWindows(e.Values))
	case wm.KillClient:
		xproto.KillClient(c.conn, uint32(e.Window))
	case wm.SendWmDelete:
		ev := c.wmDeleteMessage(e.Window)
		xproto.SendEvent(c.conn, false, e.Window, xproto.EventMaskNoEvent, string(ev.Bytes()))
	case wm.GrabKey:
		xproto.GrabKey(c.conn, false, e.GrabWindow, e.Modifiers, e.Keycode,
			xproto.GrabModeAsync, xproto.GrabModeAsync)
	}
}

func (c *Conn) sendEffectChecked(effect wm.Effect) []checker {
	switch e := effect.(type) {
	case wm.Map:
		return []checker{xproto.MapWindowChecked(c.conn, e.Window)}
	case wm.Unmap:
		return []checker{xproto.UnmapWindowChecked(c.conn, e.Window)}
	case wm.Configure:
		return []checker{xproto.ConfigureWindowChecked(c.conn, e.Window, configureMask, configureValues(e))}
	case wm.ConfigurePositionSize:
		return []checker{xproto.ConfigureWindowChecked(c.conn, e.Window, positionSizeMask, positionSizeValues(e))}
	case wm.Focus:
		return []checker{xproto.SetInputFocusChecked(c.conn, xproto.InputFocusPointerRoot, e.Window, xproto.TimeCurrentTime)}
	case wm.Raise:
		return []checker{xproto.ConfigureWindowChecked(c.conn, e.Window, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})}
	case wm.SetBorder:
		return []checker{
			xproto.ChangeWindowAttributesChecked(c.conn, e.Window, xproto.CwBorderPixel, []uint32{e.Pixel}),
			xproto.ConfigureWindowChecked(c.conn, e.Window, xproto.ConfigWindowBorderWidth, []uint32{e.Width}),
		}
	case wm.SetCardinal32:
		return []checker{c.changePropertyChecked(e.Window, e.Atom, xproto.AtomCardinal, packUint32(e.Value))}
	case wm.SetCardinal32List:
		return []checker{c.changePropertyChecked(e.Window, e.Atom, xproto.AtomCardinal, packUint32(e.Values...))}
	case wm.SetAtomList:
		return []checker{c.changePropertyChecked(e.Window, e.Atom, xproto.AtomAtom, packAtoms(e.Values))}
	case wm.SetUtf8String:
		return []checker{xproto.ChangePropertyChecked(c.conn, xproto.PropModeReplace, e.Window, e.Atom,
			c.atoms.Utf8String, 8, uint32(len(e.Value)), []byte(e.Value))}
	case wm.SetWindowProperty:
		return []checker{c.changePropertyChecked(e.Window, e.Atom, xproto.AtomWindow, packWindows(e.Values))}
	case wm.KillClient:
		return []checker{xproto.KillClientChecked(c.conn, uint32(e.Window))}
	case wm.SendWmDelete:
		ev := c.wmDeleteMessage(e.Window)
		return []checker{xproto.SendEventChecked(c.conn, false, e.Window, xproto.EventMaskNoEvent, string(ev.Bytes()))}
	case wm.GrabKey:
		return []checker{xproto.GrabKeyChecked(c.conn, false, e.GrabWindow, e.Modifiers, e.Keycode,
			xproto.GrabModeAsync, xproto.GrabModeAsync)}
	}
	return nil
}

const configureMask = xproto.ConfigWindowX | xproto.ConfigWindowY |
	xproto.ConfigWindowWidth | xproto.ConfigWindowHeight | xproto.ConfigWindowBorderWidth

const positionSizeMask = xproto.ConfigWindowX | xproto.ConfigWindowY |
	xproto.ConfigWindowWidth | xproto.ConfigWindowHeight

func configureValues(e wm.Configure) []uint32 {
	return []uint32{uint32(e.X), uint32(e.Y), e.W, e.H, e.Border}
}

func positionSizeValues(e wm.ConfigurePositionSize) []uint32 {
	return []uint32{uint32(e.X), uint32(e.Y), e.W, e.H}
}

func (c *Conn) changeProperty(window xproto.Window, prop, typ xproto.Atom, data []byte) {
	c.changePropertyRaw(window, prop, typ, 32, uint32(len(data)/4), data)
}

func (c *Conn) changePropertyRaw(window xproto.Window, prop, typ xproto.Atom, format byte, dataLen uint32, data []byte) {
	xproto.ChangeProperty(c.conn, xproto.PropModeReplace, window, prop, typ, format, dataLen, data)
}

func (c *Conn) changePropertyChecked(window xproto.Window, prop, typ xproto.Atom, data []byte) checker {
	return xproto.ChangePropertyChecked(c.conn, xproto.PropModeReplace, window, prop, typ, 32, uint32(len(data)/4), data)
}

func (c *Conn) wmDeleteMessage(window xproto.Window) xproto.ClientMessageEvent {
	return xproto.ClientMessageEvent{
		Format: 32,
		Window: window,
		Type:   c.atoms.WmProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(c.atoms.WmDeleteWindow),
			uint32(xproto.TimeCurrentTime),
			0, 0, 0,
		}),
	}
}

func packUint32(values ...uint32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		xgb.Put32(buf[i*4:], v)
	}
	return buf
}

func packAtoms(values []xproto.Atom) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		xgb.Put32(buf[i*4:], uint32(v))
	}
	return buf
}

func packWindows(values []xproto.Window) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		xgb.Put32(buf[i*4:], uint32(v))
	}
	return buf
}
