// Package manager runs the window manager: it initializes the connection,
// the decision layer and the EWMH publisher, grabs the bound keys and then
// drives the input→decision→effect cycle, one X event per turn.
package manager

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/benlellouch/rdwm/internal/config"
	"github.com/benlellouch/rdwm/internal/wm"
	"github.com/benlellouch/rdwm/internal/x11"
)

type keyChord struct {
	keycode   xproto.Keycode
	modifiers uint16
}

// relevantModifiers masks out lock-state bits (NumLock, CapsLock) when
// matching key presses against the binding table.
const relevantModifiers = xproto.ModMaskShift | xproto.ModMaskControl |
	xproto.ModMask1 | xproto.ModMask4

// Manager owns the event loop.
type Manager struct {
	logger *logrus.Logger
	tracer trace.Tracer
	cfg    config.Config

	x        *x11.Conn
	state    *wm.State
	ewmh     *wm.EwmhManager
	bindings map[keyChord]wm.Action
}

// New connects to the display and assembles the components. The returned
// manager has not claimed the root window yet; Run does that.
func New(logger *logrus.Logger, cfg config.Config) (*Manager, error) {
	conn, err := x11.Connect(logger)
	if err != nil {
		return nil, err
	}

	width, height := conn.ScreenSize()
	state := wm.NewState(logger, wm.ScreenConfig{
		Width:              width,
		Height:             height,
		FocusedBorderPixel: cfg.FocusedBorderColor,
		NormalBorderPixel:  cfg.NormalBorderColor,
	}, wm.StateConfig{
		NumWorkspaces: cfg.Workspaces,
		BorderWidth:   cfg.BorderWidth,
		WindowGap:     cfg.WindowGap,
		DockHeight:    cfg.DockHeight,
		DefaultLayout: cfg.DefaultLayout,
	})

	ewmh := wm.NewEwmhManager(conn, conn.Atoms(), conn.Root(), conn.CheckWindow(),
		"rdwm", uint32(os.Getpid()))

	return &Manager{
		logger:   logger,
		tracer:   otel.Tracer("rdwm-manager"),
		cfg:      cfg,
		x:        conn,
		state:    state,
		ewmh:     ewmh,
		bindings: make(map[keyChord]wm.Action),
	}, nil
}

// Run claims the root window, publishes the EWMH hints, reassembles any
// pre-existing windows and then blocks in the event loop until the
// connection dies.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.x.SetRootEventMask(); err != nil {
		return err
	}

	m.grabKeys(ctx)
	m.applyChecked(ctx, m.ewmh.PublishHints(m.state.NumWorkspaces()))
	m.reassembleWindows(ctx)
	m.spawnAutostart()

	m.logger.Info("entering event loop")
	for {
		event, xerr := m.x.WaitForEvent()
		if event == nil && xerr == nil {
			return fmt.Errorf("X connection closed")
		}
		if xerr != nil {
			xErrorsTotal.Inc()
			m.logger.WithField("error", xerr.Error()).Error("X protocol error")
			continue
		}
		m.handleEvent(ctx, event)
	}
}

// grabKeys resolves every binding's keysym against the keyboard mapping
// and registers the grabs, checked so misconfigured chords surface in the
// log.
func (m *Manager) grabKeys(ctx context.Context) {
	var effects []wm.Effect
	for _, binding := range m.cfg.KeyBindings() {
		keycode, ok := m.x.KeycodeForKeysym(binding.Keysym)
		if !ok {
			m.logger.WithField("keysym", fmt.Sprintf("%#x", binding.Keysym)).
				Warn("keysym not present in keyboard mapping")
			continue
		}
		m.bindings[keyChord{keycode, binding.Modifiers}] = binding.Action
		effects = append(effects, wm.GrabKey{
			Keycode:    keycode,
			Modifiers:  binding.Modifiers,
			GrabWindow: m.x.Root(),
		})
	}
	m.applyChecked(ctx, effects)
}

// reassembleWindows rehydrates the model from windows that survived a
// manager restart: docks are re-adopted, managed windows return to the
// workspace their _NET_WM_DESKTOP names, and the previously current
// desktop is restored.
func (m *Manager) reassembleWindows(ctx context.Context) {
	children, err := m.x.GetRootWindowChildren()
	if err != nil {
		m.logger.WithError(err).Error("querying root children; starting empty")
		children = nil
	}

	for _, child := range children {
		switch m.x.ClassifyWindow(child) {
		case wm.Dock:
			m.state.TrackStartupDock(child)
		case wm.Managed:
			desktop, ok := m.ewmh.WindowDesktop(child)
			if !ok {
				m.logger.WithField("window", child).
					Debug("no _NET_WM_DESKTOP; leaving unmanaged until it maps")
				continue
			}
			m.state.TrackStartupManaged(child, desktop)
		}
	}

	var hint *int
	if desktop, ok := m.ewmh.CurrentDesktop(); ok {
		hint = &desktop
	}
	effects := m.state.StartupFinalize(hint)
	effects = append(effects, m.ewmh.Sync(m.state)...)
	m.applyUnchecked(ctx, effects)
}

func (m *Manager) handleEvent(ctx context.Context, event xgb.Event) {
	eventType := fmt.Sprintf("%T", event)
	eventsTotal.WithLabelValues(eventType).Inc()

	ctx, span := m.tracer.Start(ctx, "manager.handleEvent")
	defer span.End()

	switch e := event.(type) {
	case xproto.KeyPressEvent:
		m.handleKeyPress(ctx, e)
	case xproto.MapRequestEvent:
		kind := m.x.ClassifyWindow(e.Window)
		m.logger.WithFields(logrus.Fields{"window": e.Window, "kind": kind.String()}).
			Debug("map request")
		m.dispatch(ctx, m.state.OnMapRequest(e.Window, kind))
	case xproto.DestroyNotifyEvent:
		m.dispatch(ctx, m.state.OnDestroy(e.Window))
	case xproto.UnmapNotifyEvent:
		m.dispatch(ctx, m.state.OnUnmap(e.Window))
	case xproto.ClientMessageEvent:
		m.handleClientMessage(ctx, e)
	default:
		m.logger.WithField("event", event.String()).Debug("unhandled event")
	}
}

func (m *Manager) handleKeyPress(ctx context.Context, e xproto.KeyPressEvent) {
	chord := keyChord{e.Detail, e.State & relevantModifiers}
	action, bound := m.bindings[chord]
	if !bound {
		return
	}

	var effects []wm.Effect
	switch a := action.(type) {
	case wm.Spawn:
		m.spawn(a.Command)
	case wm.Kill:
		if focused, ok := m.state.FocusedWindow(); ok {
			m.closeWindow(ctx, focused)
		}
	default:
		effects = m.state.ApplyAction(action)
	}
	// every key press ends with the EWMH sync pass, whatever the branch
	m.dispatch(ctx, effects)
}

// handleClientMessage honors the EWMH requests pagers and utilities send.
func (m *Manager) handleClientMessage(ctx context.Context, e xproto.ClientMessageEvent) {
	atoms := m.x.Atoms()
	switch e.Type {
	case atoms.CurrentDesktop:
		m.dispatch(ctx, m.state.GoToWorkspace(int(e.Data.Data32[0])))
	case atoms.ActiveWindow:
		var hint *int
		if _, tracked := m.state.WindowWorkspace(e.Window); !tracked {
			if desktop, ok := m.ewmh.WindowDesktop(e.Window); ok {
				hint = &desktop
			}
		}
		m.dispatch(ctx, m.state.FocusWindow(e.Window, hint))
	case atoms.CloseWindow:
		m.closeWindow(ctx, e.Window)
	default:
		m.logger.WithField("type", e.Type).Debug("unhandled client message")
	}
}

// closeWindow follows ICCCM: ask nicely via WM_DELETE_WINDOW when the
// client advertises it, force-kill otherwise (or when the query fails).
func (m *Manager) closeWindow(ctx context.Context, window xproto.Window) {
	supports, err := m.x.SupportsWmDelete(window)
	if err != nil {
		m.logger.WithError(err).WithField("window", window).
			Warn("WM_PROTOCOLS query failed; force-killing")
		supports = false
	}
	var effect wm.Effect = wm.KillClient{Window: window}
	if supports {
		effect = wm.SendWmDelete{Window: window}
	}
	m.applyUnchecked(ctx, []wm.Effect{effect})
}

// dispatch applies a turn's decision effects followed by the EWMH sync
// pass.
func (m *Manager) dispatch(ctx context.Context, effects []wm.Effect) {
	effects = append(effects, m.ewmh.Sync(m.state)...)
	m.applyUnchecked(ctx, effects)
}

func (m *Manager) applyUnchecked(ctx context.Context, effects []wm.Effect) {
	effectsTotal.WithLabelValues("false").Add(float64(len(effects)))
	m.x.ApplyEffectsUnchecked(ctx, effects)
}

func (m *Manager) applyChecked(ctx context.Context, effects []wm.Effect) {
	effectsTotal.WithLabelValues("true").Add(float64(len(effects)))
	m.x.ApplyEffectsChecked(ctx, effects)
}

// spawn launches a user command as a detached child. The manager never
// waits on it.
func (m *Manager) spawn(command string) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}
	cmd := exec.Command(parts[0], parts[1:]...)
	if err := cmd.Start(); err != nil {
		m.logger.WithError(err).WithField("command", command).Error("spawn failed")
		return
	}
	go func() { _ = cmd.Wait() }()
}

// spawnAutostart runs the user's autostart hook once, with stdio on
// /dev/null. Failure is logged and ignored.
func (m *Manager) spawnAutostart() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.WithError(err).Warn("no home directory; skipping autostart")
		return
	}
	script := filepath.Join(home, ".config", "rdwm", "autostart.sh")
	cmd := exec.Command("/bin/sh", "-c", "exec "+script)
	if err := cmd.Start(); err != nil {
		m.logger.WithError(err).Warn("autostart failed")
		return
	}
	go func() { _ = cmd.Wait() }()
}
