// Package keysym holds the X11 keysym values referenced by the default
// binding table. Values are taken from X11/keysymdef.h.
package keysym

import "github.com/BurntSushi/xgb/xproto"

const (
	XKSpace  xproto.Keysym = 0x0020
	XKComma  xproto.Keysym = 0x002c
	XKMinus  xproto.Keysym = 0x002d
	XKPeriod xproto.Keysym = 0x002e

	XK0 xproto.Keysym = 0x0030
	XK1 xproto.Keysym = 0x0031
	XK2 xproto.Keysym = 0x0032
	XK3 xproto.Keysym = 0x0033
	XK4 xproto.Keysym = 0x0034
	XK5 xproto.Keysym = 0x0035
	XK6 xproto.Keysym = 0x0036
	XK7 xproto.Keysym = 0x0037
	XK8 xproto.Keysym = 0x0038
	XK9 xproto.Keysym = 0x0039

	XKEqual xproto.Keysym = 0x003d

	XKd xproto.Keysym = 0x0064
	XKf xproto.Keysym = 0x0066
	XKh xproto.Keysym = 0x0068
	XKj xproto.Keysym = 0x006a
	XKk xproto.Keysym = 0x006b
	XKl xproto.Keysym = 0x006c
	XKq xproto.Keysym = 0x0071

	XKReturn xproto.Keysym = 0xff0d
)
