// Package config holds the manager's tunables and the static key-binding
// table. Values come from defaults, an optional YAML file and command-line
// flags, resolved through viper.
package config

import (
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/spf13/viper"

	"github.com/benlellouch/rdwm/internal/keysym"
	"github.com/benlellouch/rdwm/internal/wm"
)

// Config is the resolved configuration.
type Config struct {
	Workspaces  int    `mapstructure:"workspaces"`
	BorderWidth uint32 `mapstructure:"border_width"`
	WindowGap   uint32 `mapstructure:"window_gap"`
	DockHeight  uint32 `mapstructure:"dock_height"`

	FocusedBorderColor uint32 `mapstructure:"focused_border_color"`
	NormalBorderColor  uint32 `mapstructure:"normal_border_color"`

	Terminal      string `mapstructure:"terminal"`
	Launcher      string `mapstructure:"launcher"`
	DefaultLayout string `mapstructure:"default_layout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workspaces:         10,
		BorderWidth:        3,
		WindowGap:          0,
		DockHeight:         30,
		FocusedBorderColor: 0x005577,
		NormalBorderColor:  0x444444,
		Terminal:           "st",
		Launcher:           "dmenu_run",
		DefaultLayout:      "horizontal",
	}
}

// SetDefaults registers the built-in values on a viper instance so a
// partial config file only overrides what it names.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("workspaces", d.Workspaces)
	v.SetDefault("border_width", d.BorderWidth)
	v.SetDefault("window_gap", d.WindowGap)
	v.SetDefault("dock_height", d.DockHeight)
	v.SetDefault("focused_border_color", d.FocusedBorderColor)
	v.SetDefault("normal_border_color", d.NormalBorderColor)
	v.SetDefault("terminal", d.Terminal)
	v.SetDefault("launcher", d.Launcher)
	v.SetDefault("default_layout", d.DefaultLayout)
}

// Load unmarshals the resolved settings.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// KeyBinding associates a keysym+modifier chord with an action. Keysyms
// are resolved to keycodes against the server's keyboard mapping at grab
// time.
type KeyBinding struct {
	Keysym    xproto.Keysym
	Modifiers uint16
	Action    wm.Action
}

// Modifier returns the primary modifier: Super, or Alt when WM_TESTING is
// set so a nested test session does not fight the outer compositor for
// the Super chords.
func Modifier() uint16 {
	if _, testing := os.LookupEnv("WM_TESTING"); testing {
		return xproto.ModMask1
	}
	return xproto.ModMask4
}

// KeyBindings builds the static binding table.
func (c Config) KeyBindings() []KeyBinding {
	mod := Modifier()
	shift := uint16(xproto.ModMaskShift)

	bindings := []KeyBinding{
		{keysym.XKReturn, mod, wm.Spawn{Command: c.Terminal}},
		{keysym.XKd, mod, wm.Spawn{Command: c.Launcher}},
		{keysym.XKq, mod, wm.Kill{}},
		{keysym.XKf, mod, wm.ToggleFullscreen{}},
		{keysym.XKj, mod, wm.NextWindow{}},
		{keysym.XKk, mod, wm.PrevWindow{}},
		{keysym.XKh, mod, wm.SwapLeft{}},
		{keysym.XKl, mod, wm.SwapRight{}},
		{keysym.XKPeriod, mod, wm.IncreaseWindowWeight{Amount: 1}},
		{keysym.XKComma, mod, wm.DecreaseWindowWeight{Amount: 1}},
		{keysym.XKEqual, mod, wm.IncreaseWindowGap{Amount: 5}},
		{keysym.XKMinus, mod, wm.DecreaseWindowGap{Amount: 5}},
		{keysym.XKSpace, mod, wm.CycleLayout{}},
	}

	digits := []xproto.Keysym{
		keysym.XK1, keysym.XK2, keysym.XK3, keysym.XK4, keysym.XK5,
		keysym.XK6, keysym.XK7, keysym.XK8, keysym.XK9, keysym.XK0,
	}
	for i, d := range digits {
		if i >= c.Workspaces {
			break
		}
		bindings = append(bindings,
			KeyBinding{d, mod, wm.GoToWorkspace{Workspace: i}},
			KeyBinding{d, mod | shift, wm.SendToWorkspace{Workspace: i}},
		)
	}
	return bindings
}
