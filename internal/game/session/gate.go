package session

import "go.uber.org/zap"

// CallOrigin tells the bot protection where the current call comes from.
type CallOrigin interface {
	// InScriptCallback reports whether a script is on the current call path.
	InScriptCallback() bool
	// InInputEvent reports whether the host is handling genuine user input.
	InInputEvent() bool
}

// CallTracker is a CallOrigin maintained by scoping calls with Input and Script.
// It is only used on the session loop.
type CallTracker struct {
	input  int
	script int
}

// NewCallTracker creates a CallTracker outside any scope.
func NewCallTracker() *CallTracker {
	return &CallTracker{}
}

// Input runs fn inside an input event window.
func (t *CallTracker) Input(fn func()) {
	t.input++
	defer func() { t.input-- }()
	fn()
}

// Script runs fn as called from a script.
func (t *CallTracker) Script(fn func()) {
	t.script++
	defer func() { t.script-- }()
	fn()
}

func (t *CallTracker) InInputEvent() bool     { return t.input > 0 }
func (t *CallTracker) InScriptCallback() bool { return t.script > 0 }

// canPerformAction is the gate evaluated before every player intent.
func (g *Game) canPerformAction() bool {
	return g.state.Online &&
		g.player != nil &&
		!g.state.Dead &&
		g.transport != nil &&
		g.transport.IsConnected() &&
		g.checkBotProtection()
}

// checkBotProtection rejects calls made by scripts on their own while bot calls
// are denied. Calls made while the host processes user input are accepted.
func (g *Game) checkBotProtection() bool {
	if !g.botProtection || g.origin == nil {
		return true
	}
	if g.denyBotCall && g.origin.InScriptCallback() && !g.origin.InInputEvent() {
		g.logger.Error("caught a script call to a bot protected game function, the call was cancelled",
			zap.Stack("trace"))
		return false
	}
	return true
}

// withBotCall runs fn with bot calls allowed, restoring the previous setting.
func (g *Game) withBotCall(fn func()) {
	prev := g.denyBotCall
	g.denyBotCall = false
	defer func() { g.denyBotCall = prev }()
	fn()
}
