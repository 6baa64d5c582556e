package wm

// Action is a user intent resolved from a key binding.
// Like Effect it is a closed sum type dispatched by type switch. Spawn and
// Kill are handled by the manager loop; everything else is interpreted by
// State.ApplyAction.
type Action interface {
	isAction()
}

// Spawn launches a command.
type Spawn struct {
	Command string
}

// Kill closes the focused window.
type Kill struct{}

// ToggleFullscreen toggles the fullscreen mark on the focused window.
type ToggleFullscreen struct{}

// NextWindow moves focus forward in tiling order.
type NextWindow struct{}

// PrevWindow moves focus backward in tiling order.
type PrevWindow struct{}

// SwapLeft exchanges the focused window with its predecessor.
type SwapLeft struct{}

// SwapRight exchanges the focused window with its successor.
type SwapRight struct{}

// IncreaseWindowWeight grows the focused client's layout share.
type IncreaseWindowWeight struct {
	Amount uint32
}

// DecreaseWindowWeight shrinks the focused client's layout share.
type DecreaseWindowWeight struct {
	Amount uint32
}

// IncreaseWindowGap widens the gap between tiles.
type IncreaseWindowGap struct {
	Amount uint32
}

// DecreaseWindowGap narrows the gap between tiles.
type DecreaseWindowGap struct {
	Amount uint32
}

// GoToWorkspace switches to a workspace.
type GoToWorkspace struct {
	Workspace int
}

// SendToWorkspace moves the focused window to a workspace.
type SendToWorkspace struct {
	Workspace int
}

// CycleLayout selects the next layout strategy.
type CycleLayout struct{}

func (Spawn) isAction()                {}
func (Kill) isAction()                 {}
func (ToggleFullscreen) isAction()     {}
func (NextWindow) isAction()           {}
func (PrevWindow) isAction()           {}
func (SwapLeft) isAction()             {}
func (SwapRight) isAction()            {}
func (IncreaseWindowWeight) isAction() {}
func (DecreaseWindowWeight) isAction() {}
func (IncreaseWindowGap) isAction()    {}
func (DecreaseWindowGap) isAction()    {}
func (GoToWorkspace) isAction()        {}
func (SendToWorkspace) isAction()      {}
func (CycleLayout) isAction()          {}
