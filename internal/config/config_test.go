package config

import (
	"os"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benlellouch/rdwm/internal/wm"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10, cfg.Workspaces)
	assert.Equal(t, uint32(3), cfg.BorderWidth)
	assert.Equal(t, uint32(0), cfg.WindowGap)
	assert.Equal(t, uint32(30), cfg.DockHeight)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("border_width", 5)
	v.Set("terminal", "alacritty")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, uint32(5), cfg.BorderWidth)
	assert.Equal(t, "alacritty", cfg.Terminal)
	// untouched keys keep their defaults
	assert.Equal(t, 10, cfg.Workspaces)
}

func TestModifierHonorsTestingEnv(t *testing.T) {
	t.Setenv("WM_TESTING", "1")
	assert.Equal(t, uint16(xproto.ModMask1), Modifier())

	os.Unsetenv("WM_TESTING")
	assert.Equal(t, uint16(xproto.ModMask4), Modifier())
}

func TestKeyBindingsCoverWorkspaces(t *testing.T) {
	os.Unsetenv("WM_TESTING")
	cfg := Default()

	bindings := cfg.KeyBindings()

	var goTo, sendTo int
	for _, b := range bindings {
		switch b.Action.(type) {
		case wm.GoToWorkspace:
			goTo++
			assert.Equal(t, uint16(xproto.ModMask4), b.Modifiers)
		case wm.SendToWorkspace:
			sendTo++
			assert.Equal(t, uint16(xproto.ModMask4|xproto.ModMaskShift), b.Modifiers)
		}
	}
	assert.Equal(t, cfg.Workspaces, goTo)
	assert.Equal(t, cfg.Workspaces, sendTo)
}

func TestKeyBindingsSpawnCommands(t *testing.T) {
	cfg := Default()
	cfg.Terminal = "st"
	cfg.Launcher = "dmenu_run"

	var spawns []string
	for _, b := range cfg.KeyBindings() {
		if spawn, ok := b.Action.(wm.Spawn); ok {
			spawns = append(spawns, spawn.Command)
		}
	}
	assert.ElementsMatch(t, []string{"st", "dmenu_run"}, spawns)
}
