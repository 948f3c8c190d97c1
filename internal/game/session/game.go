// Package session implements the game session state machine: the connection
// lifecycle with a remote world, the session state built from inbound protocol
// events, and the gated translation of player intents into outbound commands.
//
// A Game is confined to one loop goroutine. Every exported method must be called
// on that loop; inbound transport traffic is posted to it by the Game itself.
package session

import (
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/otsession/internal/game/container"
	"github.com/cory-johannsen/otsession/internal/game/feature"
	"github.com/cory-johannsen/otsession/internal/game/loop"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// Game is one client session with a game world.
type Game struct {
	base   *zap.Logger
	logger *zap.Logger
	sink   EventSink
	sched  Scheduler
	dialer Dialer

	botProtection bool
	origin        CallOrigin
	denyBotCall   bool

	version  int
	features feature.Set

	state      State
	containers *container.Registry
	creatures  *world.Creatures
	player     *world.LocalPlayer

	transport  Transport
	generation uint64
	sessionID  uuid.UUID
	pingTask   loop.Task
}

// New creates an idle Game with no protocol version set.
//
// Precondition: logger, sink, sched and dialer must be non-nil.
// Postcondition: Phase() is PhaseIdle; bot protection is off until EnableBotProtection.
func New(logger *zap.Logger, sink EventSink, sched Scheduler, dialer Dialer) *Game {
	g := &Game{
		base:      logger,
		logger:    logger,
		sink:      sink,
		sched:     sched,
		dialer:    dialer,
		state:     newState(),
		creatures: world.NewCreatures(),
	}
	g.containers = container.NewRegistry(containerEvents{g})
	return g
}

// EnableBotProtection turns on the bot protection check of the action gate.
//
// Precondition: origin must be non-nil.
func (g *Game) EnableBotProtection(origin CallOrigin) {
	g.botProtection = true
	g.origin = origin
}

// Phase reports the connection lifecycle stage.
func (g *Game) Phase() Phase {
	switch {
	case g.state.Online:
		return PhaseActive
	case g.transport != nil:
		return PhaseLoggingIn
	}
	return PhaseIdle
}

// State returns a snapshot of the session facts. The Vips map is shared.
func (g *Game) State() State { return g.state }

func (g *Game) IsOnline() bool        { return g.state.Online }
func (g *Game) IsDead() bool          { return g.state.Dead }
func (g *Game) IsAttacking() bool     { return g.state.AttackingTarget != 0 }
func (g *Game) IsFollowing() bool     { return g.state.FollowingTarget != 0 }
func (g *Game) Seq() uint32           { return g.state.Seq }
func (g *Game) PingRoundTrip() int    { return g.state.Ping }
func (g *Game) ProtocolVersion() int  { return g.version }
func (g *Game) Features() feature.Set { return g.features }

// SessionID identifies the current login attempt, or is uuid.Nil before the first.
func (g *Game) SessionID() uuid.UUID { return g.sessionID }

// LocalPlayer returns the controlled character, or nil outside a login.
func (g *Game) LocalPlayer() *world.LocalPlayer { return g.player }

// Creatures returns the registry of creatures known to the session.
func (g *Game) Creatures() *world.Creatures { return g.creatures }

// Containers returns the open container registry.
func (g *Game) Containers() *container.Registry { return g.containers }

// AttackingCreature resolves the attack target. It reports false when there is
// no target or the target has despawned.
func (g *Game) AttackingCreature() (*world.Creature, bool) {
	return g.creatures.Get(g.state.AttackingTarget)
}

// FollowingCreature resolves the follow target like AttackingCreature.
func (g *Game) FollowingCreature() (*world.Creature, bool) {
	return g.creatures.Get(g.state.FollowingTarget)
}

// FormatCreatureName capitalizes the first letter of name when the negotiated
// protocol formats creature names.
func (g *Game) FormatCreatureName(name string) string {
	if !g.features.Has(feature.FormatCreatureName) || name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// send hands cmd to the transport. Sends are fire-and-forget: a failure is
// logged and the transport reports breakage through its Receiver. Every command
// passes bot protection here, so only withBotCall lets a script reach the server
// while bot calls are denied.
func (g *Game) send(cmd protocol.Command) {
	if g.transport == nil || !g.checkBotProtection() {
		return
	}
	if err := g.transport.Send(cmd); err != nil {
		g.logger.Warn("sending command", zap.String("command", cmd.CommandName()), zap.Error(err))
	}
}

// containerEvents forwards registry notifications to the sink. Scripts may close
// or reopen containers from the open notification, so bot calls are allowed there.
type containerEvents struct{ g *Game }

func (o containerEvents) ContainerOpened(c, previous *container.Container) {
	o.g.withBotCall(func() { o.g.sink.OnContainerOpen(c, previous) })
}

func (o containerEvents) ContainerClosed(c *container.Container) {
	o.g.sink.OnContainerClose(c)
}

func (o containerEvents) ContainerItemAdded(c *container.Container, slot int, item protocol.Item) {
	o.g.sink.OnContainerAddItem(c, slot, item)
}

func (o containerEvents) ContainerItemUpdated(c *container.Container, slot int, item, old protocol.Item) {
	o.g.sink.OnContainerUpdateItem(c, slot, item, old)
}

func (o containerEvents) ContainerItemRemoved(c *container.Container, slot int, item protocol.Item) {
	o.g.sink.OnContainerRemoveItem(c, slot, item)
}
