package wm

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushWindowFirstTakesFocus(t *testing.T) {
	ws := NewWorkspace()
	ws.PushWindow(1)

	focused, ok := ws.FocusedWindow()
	require.True(t, ok)
	assert.Equal(t, xproto.Window(1), focused)

	// later pushes do not move focus
	ws.PushWindow(2)
	focused, _ = ws.FocusedWindow()
	assert.Equal(t, xproto.Window(1), focused)
}

func TestPushWindowRejectsDuplicates(t *testing.T) {
	ws := NewWorkspace()
	ws.PushWindow(1)
	ws.PushWindow(1)

	assert.Equal(t, 1, ws.Len())
}

func TestRemoveClientElectsSuccessor(t *testing.T) {
	ws := NewWorkspace()
	for w := xproto.Window(1); w <= 5; w++ {
		ws.PushWindow(w)
	}
	require.True(t, ws.SetFocus(3))

	removed := ws.RemoveClient(3)
	require.NotNil(t, removed)
	assert.Equal(t, xproto.Window(3), removed.Window())

	focused, ok := ws.FocusedWindow()
	require.True(t, ok)
	assert.Equal(t, xproto.Window(4), focused)
}

func TestRemoveLastClientClearsFocus(t *testing.T) {
	ws := NewWorkspace()
	ws.PushWindow(1)
	ws.RemoveClient(1)

	_, ok := ws.FocusedWindow()
	assert.False(t, ok)
	assert.Equal(t, 0, ws.Len())
}

func TestRemoveFullscreenClearsMark(t *testing.T) {
	ws := NewWorkspace()
	ws.PushWindow(1)
	ws.PushWindow(2)
	require.True(t, ws.SetFullscreen(2))

	ws.RemoveClient(2)

	_, ok := ws.FullscreenWindow()
	assert.False(t, ok)
}

func TestSetFullscreenTakesFocus(t *testing.T) {
	ws := NewWorkspace()
	ws.PushWindow(1)
	ws.PushWindow(2)
	require.True(t, ws.SetFocus(1))

	require.True(t, ws.SetFullscreen(2))

	focused, _ := ws.FocusedWindow()
	assert.Equal(t, xproto.Window(2), focused)
}

func TestSetFocusRejectsUnmappedAndUnknown(t *testing.T) {
	ws := NewWorkspace()
	ws.PushWindow(1)
	ws.PushWindow(2)
	ws.Client(2).SetMapped(false)

	assert.False(t, ws.SetFocus(2))
	assert.False(t, ws.SetFocus(99))
	assert.True(t, ws.SetFocus(1))
}

func TestNextMappedWindowSkipsUnmapped(t *testing.T) {
	ws := NewWorkspace()
	for w := xproto.Window(1); w <= 4; w++ {
		ws.PushWindow(w)
	}
	ws.Client(2).SetMapped(false)
	require.True(t, ws.SetFocus(1))

	next, ok := ws.NextMappedWindow(1)
	require.True(t, ok)
	assert.Equal(t, xproto.Window(3), next)

	prev, ok := ws.NextMappedWindow(-1)
	require.True(t, ok)
	assert.Equal(t, xproto.Window(4), prev)
}

func TestNextMappedWindowNoneWhenOnlyFocusMapped(t *testing.T) {
	ws := NewWorkspace()
	for w := xproto.Window(1); w <= 3; w++ {
		ws.PushWindow(w)
	}
	ws.Client(2).SetMapped(false)
	ws.Client(3).SetMapped(false)
	require.True(t, ws.SetFocus(1))

	_, ok := ws.NextMappedWindow(1)
	assert.False(t, ok)
}

func TestSwapWindowsExchangesOrder(t *testing.T) {
	ws := NewWorkspace()
	ws.PushWindow(1)
	ws.PushWindow(2)
	ws.PushWindow(3)

	ws.SwapWindows(1, 3)

	assert.Equal(t, []xproto.Window{3, 2, 1}, ws.Windows())
}

func TestUnmapFocusRepairPrefersFirstMapped(t *testing.T) {
	ws := NewWorkspace()
	for w := xproto.Window(1); w <= 3; w++ {
		ws.PushWindow(w)
	}
	require.True(t, ws.SetFocus(2))

	ws.SetClientMapped(2, false)

	focused, ok := ws.FocusedWindow()
	require.True(t, ok)
	assert.Equal(t, xproto.Window(1), focused)
}

func TestFocusFallsBackToLastWhenNothingMapped(t *testing.T) {
	ws := NewWorkspace()
	for w := xproto.Window(1); w <= 3; w++ {
		ws.PushWindow(w)
	}
	for w := xproto.Window(1); w <= 3; w++ {
		ws.SetClientMapped(w, false)
	}

	focused, ok := ws.FocusedWindow()
	require.True(t, ok)
	assert.Equal(t, xproto.Window(3), focused)
}
