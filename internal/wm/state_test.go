package wm

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWidth         = 1920
	testHeight        = 1080
	testFocusedPixel  = 0x005577
	testNormalPixel   = 0x444444
	testBorder        = 3
	testDockHeight    = 30
	testNumWorkspaces = 10
)

func newTestState() *State {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewState(logger, ScreenConfig{
		Width:              testWidth,
		Height:             testHeight,
		FocusedBorderPixel: testFocusedPixel,
		NormalBorderPixel:  testNormalPixel,
	}, StateConfig{
		NumWorkspaces: testNumWorkspaces,
		BorderWidth:   testBorder,
		WindowGap:     0,
		DockHeight:    testDockHeight,
		DefaultLayout: "horizontal",
	})
}

// mapClients map-requests n managed windows 100, 101, … and puts focus on
// the first one.
func mapClients(s *State, n int) []xproto.Window {
	return mapClientsAt(s, 100, n)
}

func mapClientsAt(s *State, base xproto.Window, n int) []xproto.Window {
	windows := make([]xproto.Window, n)
	for i := range windows {
		windows[i] = base + xproto.Window(i)
		s.OnMapRequest(windows[i], Managed)
	}
	s.SetFocus(windows[0])
	return windows
}

func configureCount(effects []Effect) int {
	n := 0
	for _, e := range effects {
		if _, ok := e.(Configure); ok {
			n++
		}
	}
	return n
}

func TestSetFocusEmitsBorderEffects(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 10)

	effects := s.SetFocus(w[6])

	expected := []Effect{
		SetBorder{Window: w[0], Pixel: testNormalPixel, Width: testBorder},
		SetBorder{Window: w[6], Pixel: testFocusedPixel, Width: testBorder},
		Focus{Window: w[6]},
	}
	assert.Equal(t, expected, effects)

	focused, ok := s.FocusedWindow()
	require.True(t, ok)
	assert.Equal(t, w[6], focused)
}

func TestToggleFullscreenOnAndOff(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 10)
	s.SetFocus(w[6])

	effects := s.ToggleFullscreen()

	assert.Contains(t, effects, Configure{
		Window: w[6], X: 0, Y: 0, W: testWidth, H: testHeight, Border: 0,
	})
	assert.Contains(t, effects, Raise{Window: w[6]})
	assert.Contains(t, effects, Focus{Window: w[6]})
	assert.True(t, s.IsWindowFullscreen(w[6]))

	effects = s.ToggleFullscreen()

	assert.False(t, s.IsWindowFullscreen(w[6]))
	assert.Contains(t, effects, Focus{Window: w[6]})
	assert.Equal(t, 10, configureCount(effects))
}

func TestFullscreenInvolutionKeepsMark(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 3)
	s.SetFocus(w[1])

	assert.False(t, s.IsWindowFullscreen(w[1]))
	s.ToggleFullscreen()
	s.ToggleFullscreen()
	assert.False(t, s.IsWindowFullscreen(w[1]))

	focused, _ := s.FocusedWindow()
	assert.Equal(t, w[1], focused)
}

func TestFullscreenIsFocusSticky(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 10)
	s.SetFocus(w[6])
	s.ToggleFullscreen()

	effects := s.SetFocus(w[2])

	assert.Empty(t, effects)
	focused, _ := s.FocusedWindow()
	assert.Equal(t, w[6], focused)
}

func TestDestroyFullscreenElectsNeighbor(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 10)
	s.SetFocus(w[6])
	s.ToggleFullscreen()

	effects := s.OnDestroy(w[6])

	assert.False(t, s.IsWindowFullscreen(w[6]))
	focused, ok := s.FocusedWindow()
	require.True(t, ok)
	assert.Equal(t, w[7], focused)
	assert.Contains(t, effects, Focus{Window: w[7]})
	assert.Equal(t, 9, configureCount(effects))

	_, tracked := s.WindowWorkspace(w[6])
	assert.False(t, tracked)
}

func TestSendFullscreenToAnotherWorkspace(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 10)
	s.SetFocus(w[6])
	s.ToggleFullscreen()

	effects := s.SendToWorkspace(1)

	workspace, tracked := s.WindowWorkspace(w[6])
	require.True(t, tracked)
	assert.Equal(t, 1, workspace)
	assert.False(t, s.IsWindowFullscreen(w[6]))

	focused, _ := s.FocusedWindow()
	assert.Equal(t, w[7], focused)
	assert.Contains(t, effects, Unmap{Window: w[6]})
	assert.Contains(t, effects, Focus{Window: w[7]})
	assert.Equal(t, 9, configureCount(effects))
}

func TestMapRequestDoesNotStealFromFullscreen(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 2)
	s.SetFocus(w[1])
	s.ToggleFullscreen()

	newWindow := xproto.Window(500)
	effects := s.OnMapRequest(newWindow, Managed)

	assert.Contains(t, effects, Map{Window: newWindow})
	assert.NotContains(t, effects, Focus{Window: newWindow})

	focused, _ := s.FocusedWindow()
	assert.Equal(t, w[1], focused)

	workspace, tracked := s.WindowWorkspace(newWindow)
	require.True(t, tracked)
	assert.Equal(t, 0, workspace)
}

func TestGoToWorkspaceIdempotence(t *testing.T) {
	s := newTestState()
	mapClients(s, 3)

	assert.Empty(t, s.GoToWorkspace(0))
	assert.Empty(t, s.GoToWorkspace(testNumWorkspaces))
	assert.Empty(t, s.GoToWorkspace(-1))
}

func TestGoToWorkspaceUnmapsBeforeMaps(t *testing.T) {
	s := newTestState()
	first := mapClients(s, 2)
	s.GoToWorkspace(1)
	second := mapClientsAt(s, 200, 3)

	effects := s.GoToWorkspace(0)

	lastUnmap, firstMap := -1, len(effects)
	unmaps, maps := 0, 0
	for i, e := range effects {
		switch e.(type) {
		case Unmap:
			unmaps++
			lastUnmap = i
		case Map:
			maps++
			if i < firstMap {
				firstMap = i
			}
		}
	}
	assert.Equal(t, len(second), unmaps)
	assert.Equal(t, len(first), maps)
	assert.Less(t, lastUnmap, firstMap, "all unmaps must precede the first map")
}

func TestGoToWorkspaceReassertsFocus(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 2)
	s.GoToWorkspace(3)
	effects := s.GoToWorkspace(0)

	assert.Contains(t, effects, Focus{Window: w[0]})
	assert.Equal(t, 0, s.CurrentWorkspaceID())
}

func TestGapSaturation(t *testing.T) {
	s := newTestState()
	mapClients(s, 2)

	assert.Empty(t, s.DecreaseWindowGap(5))

	require.NotEmpty(t, s.IncreaseWindowGap(4))
	// decreasing past zero saturates but still changes the gap
	assert.NotEmpty(t, s.DecreaseWindowGap(10))
	assert.Empty(t, s.DecreaseWindowGap(1))
}

func TestWeightFloor(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 2)
	s.SetFocus(w[0])

	s.IncreaseWindowWeight(2)
	for i := 0; i < 10; i++ {
		s.DecreaseWindowWeight(1)
	}

	assert.Equal(t, uint32(1), s.current().FocusedClient().Weight())
}

func TestShiftFocusCyclesMapped(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 3)

	effects := s.ShiftFocus(1)
	assert.Contains(t, effects, Focus{Window: w[1]})

	effects = s.ShiftFocus(-1)
	assert.Contains(t, effects, Focus{Window: w[0]})

	effects = s.ShiftFocus(-1)
	assert.Contains(t, effects, Focus{Window: w[2]})
}

func TestSwapWindowRelayouts(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 3)
	s.SetFocus(w[0])

	effects := s.SwapWindow(1)

	assert.Equal(t, []xproto.Window{w[1], w[0], w[2]}, s.current().Windows())
	assert.Equal(t, 3, configureCount(effects))

	focused, _ := s.FocusedWindow()
	assert.Equal(t, w[0], focused)
}

func TestSwapDisabledDuringFullscreen(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 3)
	s.SetFocus(w[0])
	s.ToggleFullscreen()

	assert.Empty(t, s.SwapWindow(1))
	assert.Equal(t, []xproto.Window{w[0], w[1], w[2]}, s.current().Windows())
}

func TestDockMapRequestReservesStrip(t *testing.T) {
	s := newTestState()
	mapClients(s, 2)
	dock := xproto.Window(900)

	effects := s.OnMapRequest(dock, Dock)

	assert.Contains(t, effects, Map{Window: dock})
	assert.Contains(t, effects, ConfigurePositionSize{
		Window: dock,
		X:      0,
		Y:      testHeight - testDockHeight,
		W:      testWidth,
		H:      testDockHeight,
	})
	assert.Equal(t, uint32(testHeight-testDockHeight), s.UsableScreenHeight())

	// duplicate map requests do not duplicate the dock
	s.OnMapRequest(dock, Dock)
	assert.Len(t, s.dockWindows, 1)

	s.OnDestroy(dock)
	assert.Equal(t, uint32(testHeight), s.UsableScreenHeight())
}

func TestUnmanagedMapRequestOnlyMaps(t *testing.T) {
	s := newTestState()
	effects := s.OnMapRequest(42, Unmanaged)

	assert.Equal(t, []Effect{Map{Window: 42}}, effects)
	_, tracked := s.WindowWorkspace(42)
	assert.False(t, tracked)
}

func TestUnmapOnCurrentWorkspaceRelayouts(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 2)

	effects := s.OnUnmap(w[0])

	assert.Equal(t, 1, configureCount(effects))
	assert.False(t, s.current().IsWindowMapped(w[0]))

	// a second unmap for the same window changes nothing
	assert.Empty(t, s.OnUnmap(w[0]))
}

func TestUnmapOnBackgroundWorkspaceIsSilent(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 2)
	s.SetFocus(w[1])
	s.SendToWorkspace(4)

	// the sent window sits unmapped on workspace 4 already
	assert.Empty(t, s.OnUnmap(w[1]))
}

func TestFocusWindowSwitchesWorkspace(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 2)
	s.SetFocus(w[1])
	s.SendToWorkspace(5)

	effects := s.FocusWindow(w[1], nil)

	assert.Equal(t, 5, s.CurrentWorkspaceID())
	focused, ok := s.FocusedWindow()
	require.True(t, ok)
	assert.Equal(t, w[1], focused)
	assert.Contains(t, effects, Map{Window: w[1]})
}

func TestFocusWindowIgnoredDuringFullscreen(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 3)
	s.SetFocus(w[0])
	s.ToggleFullscreen()

	assert.Empty(t, s.FocusWindow(w[2], nil))
}

func TestFocusWindowUntrackedNeedsHint(t *testing.T) {
	s := newTestState()
	mapClients(s, 1)

	assert.Empty(t, s.FocusWindow(777, nil))

	hint := 2
	effects := s.FocusWindow(777, &hint)
	assert.Equal(t, 2, s.CurrentWorkspaceID())
	// the window is not tracked there, so no focus effect is produced
	assert.NotContains(t, effects, Focus{Window: xproto.Window(777)})
}

func TestStartupFinalizeForcesRebuild(t *testing.T) {
	s := newTestState()
	w := xproto.Window(300)
	s.TrackStartupManaged(w, 0)

	current := 0
	effects := s.StartupFinalize(&current)

	// even though workspace 0 is already current, force mode rebuilds it
	assert.Contains(t, effects, Map{Window: w})
	assert.Equal(t, 1, configureCount(effects))
	assert.Equal(t, 0, s.CurrentWorkspaceID())
}

func TestStartupFinalizeSwitchesToHint(t *testing.T) {
	s := newTestState()
	a := xproto.Window(300)
	b := xproto.Window(301)
	s.TrackStartupManaged(a, 2)
	s.TrackStartupManaged(b, 2)
	s.TrackStartupDock(xproto.Window(900))

	current := 2
	effects := s.StartupFinalize(&current)

	assert.Equal(t, 2, s.CurrentWorkspaceID())
	assert.Contains(t, effects, Map{Window: a})
	assert.Contains(t, effects, Map{Window: b})
	assert.Contains(t, effects, ConfigurePositionSize{
		Window: 900,
		X:      0,
		Y:      testHeight - testDockHeight,
		W:      testWidth,
		H:      testDockHeight,
	})
}

func TestCycleLayoutRelayouts(t *testing.T) {
	s := newTestState()
	mapClients(s, 3)

	effects := s.CycleLayout()
	assert.Equal(t, 3, configureCount(effects))
}

func TestClientListOrdering(t *testing.T) {
	s := newTestState()
	s.TrackStartupManaged(205, 1)
	s.TrackStartupManaged(201, 1)
	s.TrackStartupManaged(300, 0)
	s.TrackStartupDock(950)
	s.TrackStartupDock(910)

	expected := []xproto.Window{300, 201, 205, 910, 950}
	assert.Equal(t, expected, s.ClientListWindows())
}

func TestReverseIndexBijective(t *testing.T) {
	s := newTestState()
	w := mapClients(s, 4)
	s.SetFocus(w[2])
	s.SendToWorkspace(3)

	for _, window := range w {
		workspaceID, ok := s.WindowWorkspace(window)
		require.True(t, ok)
		ws := s.workspace(workspaceID)
		assert.NotNil(t, ws.Client(window))
	}

	s.OnDestroy(w[0])
	_, ok := s.WindowWorkspace(w[0])
	assert.False(t, ok)
	assert.Nil(t, s.workspace(0).Client(w[0]))
}
