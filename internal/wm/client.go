package wm

import "github.com/BurntSushi/xgb/xproto"

// WindowType classifies a top-level window for management purposes.
type WindowType int

const (
	// Unmanaged windows are mapped untouched and never tracked.
	Unmanaged WindowType = iota
	// Managed windows are tiled inside a workspace.
	Managed
	// Dock windows live in the reserved bottom strip.
	Dock
)

func (t WindowType) String() string {
	switch t {
	case Dock:
		return "dock"
	case Managed:
		return "managed"
	default:
		return "unmanaged"
	}
}

// Client is one managed top-level window. The mapped flag is the manager's
// best estimate of whether the server currently shows the window.
type Client struct {
	window xproto.Window
	weight uint32
	mapped bool
}

func newClient(window xproto.Window) *Client {
	return &Client{window: window, weight: 1, mapped: true}
}

// Window returns the underlying window identifier.
func (c *Client) Window() xproto.Window { return c.window }

// Weight returns the client's share in the layout.
func (c *Client) Weight() uint32 { return c.weight }

// IsMapped reports whether the manager believes the window is shown.
func (c *Client) IsMapped() bool { return c.mapped }

// SetMapped updates the mapped flag.
func (c *Client) SetMapped(mapped bool) { c.mapped = mapped }

// IncreaseWeight grows the layout share.
func (c *Client) IncreaseWeight(amount uint32) {
	c.weight += amount
}

// DecreaseWeight shrinks the layout share, never below 1.
func (c *Client) DecreaseWeight(amount uint32) {
	if c.weight <= amount+1 {
		c.weight = 1
		return
	}
	c.weight -= amount
}
