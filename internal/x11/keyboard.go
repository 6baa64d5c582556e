package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// loadKeyboardMapping fetches the server's keycode→keysym table once at
// startup. Columns per keycode depend on the layout; KeycodeForKeysym
// scans them all.
func (c *Conn) loadKeyboardMapping(setup *xproto.SetupInfo) error {
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(c.conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return fmt.Errorf("loading keyboard mapping: %w", err)
	}
	c.minKeycode = setup.MinKeycode
	c.keysyms = reply.Keysyms
	c.keysymsPerKeycode = int(reply.KeysymsPerKeycode)
	return nil
}

// KeycodeForKeysym returns the first keycode whose keysym columns contain
// the given keysym.
func (c *Conn) KeycodeForKeysym(sym xproto.Keysym) (xproto.Keycode, bool) {
	if c.keysymsPerKeycode == 0 {
		return 0, false
	}
	for i := 0; i*c.keysymsPerKeycode < len(c.keysyms); i++ {
		row := c.keysyms[i*c.keysymsPerKeycode : (i+1)*c.keysymsPerKeycode]
		for _, s := range row {
			if s == sym {
				return c.minKeycode + xproto.Keycode(i), true
			}
		}
	}
	return 0, false
}
