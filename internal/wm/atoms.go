package wm

import "github.com/BurntSushi/xgb/xproto"

// AtomNames is the exhaustive list of atom names the manager interns at
// startup, in the order they fill Atoms.
var AtomNames = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_CURRENT_DESKTOP",
	"_NET_DESKTOP_NAMES",
	"_NET_DESKTOP_VIEWPORT",
	"_NET_DESKTOP_GEOMETRY",
	"_NET_WORKAREA",
	"_NET_SHOWING_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_WM_NAME",
	"_NET_WM_PID",
	"UTF8_STRING",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_STRUT_PARTIAL",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_CLOSE_WINDOW",
	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",
	"_NET_WM_DESKTOP",
}

// Atoms is the interned atom table. internal/x11 fills it once at startup;
// afterwards it is read-only shared data.
type Atoms struct {
	Supported          xproto.Atom
	SupportingWmCheck  xproto.Atom
	NumberOfDesktops   xproto.Atom
	CurrentDesktop     xproto.Atom
	DesktopNames       xproto.Atom
	DesktopViewport    xproto.Atom
	DesktopGeometry    xproto.Atom
	Workarea           xproto.Atom
	ShowingDesktop     xproto.Atom
	ActiveWindow       xproto.Atom
	ClientList         xproto.Atom
	ClientListStacking xproto.Atom
	WmName             xproto.Atom
	WmPid              xproto.Atom
	Utf8String         xproto.Atom
	WmWindowType       xproto.Atom
	WmWindowTypeDock   xproto.Atom
	WmStrutPartial     xproto.Atom
	WmState            xproto.Atom
	WmStateFullscreen  xproto.Atom
	CloseWindow        xproto.Atom
	WmProtocols        xproto.Atom
	WmDeleteWindow     xproto.Atom
	WmDesktop          xproto.Atom
}

// Fill assigns interned values in AtomNames order.
func (a *Atoms) Fill(values []xproto.Atom) {
	fields := []*xproto.Atom{
		&a.Supported,
		&a.SupportingWmCheck,
		&a.NumberOfDesktops,
		&a.CurrentDesktop,
		&a.DesktopNames,
		&a.DesktopViewport,
		&a.DesktopGeometry,
		&a.Workarea,
		&a.ShowingDesktop,
		&a.ActiveWindow,
		&a.ClientList,
		&a.ClientListStacking,
		&a.WmName,
		&a.WmPid,
		&a.Utf8String,
		&a.WmWindowType,
		&a.WmWindowTypeDock,
		&a.WmStrutPartial,
		&a.WmState,
		&a.WmStateFullscreen,
		&a.CloseWindow,
		&a.WmProtocols,
		&a.WmDeleteWindow,
		&a.WmDesktop,
	}
	for i, f := range fields {
		*f = values[i]
	}
}

// SupportedList is the value of _NET_SUPPORTED.
func (a *Atoms) SupportedList() []xproto.Atom {
	return []xproto.Atom{
		a.Supported,
		a.SupportingWmCheck,
		a.NumberOfDesktops,
		a.CurrentDesktop,
		a.DesktopNames,
		a.DesktopViewport,
		a.DesktopGeometry,
		a.Workarea,
		a.ShowingDesktop,
		a.ActiveWindow,
		a.ClientList,
		a.ClientListStacking,
		a.WmName,
		a.WmPid,
		a.WmWindowType,
		a.WmWindowTypeDock,
		a.WmStrutPartial,
		a.WmState,
		a.WmStateFullscreen,
		a.CloseWindow,
		a.WmDesktop,
	}
}
