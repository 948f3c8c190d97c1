// Package console is the interactive terminal front end of the client: it reads
// command lines, turns them into session intents, and renders session
// notifications.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/otsession/internal/game/command"
	"github.com/cory-johannsen/otsession/internal/game/container"
	"github.com/cory-johannsen/otsession/internal/game/feature"
	"github.com/cory-johannsen/otsession/internal/game/session"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// Game is the part of the session the console drives. *session.Game satisfies it.
type Game interface {
	Phase() session.Phase
	State() session.State
	ProtocolVersion() int
	Features() feature.Set
	Containers() *container.Registry
	AttackingCreature() (*world.Creature, bool)
	FollowingCreature() (*world.Creature, bool)

	Walk(dir protocol.Direction)
	AutoWalk(path []protocol.Direction)
	Turn(dir protocol.Direction)
	Stop()
	SetAttackTarget(id world.CreatureID)
	SetFollowTarget(id world.CreatureID)
	CancelAttackAndFollow()
	SetFightMode(mode protocol.FightMode)
	SetChaseMode(mode protocol.ChaseMode)
	SetSafeFight(on bool)
	Talk(message string)
	TalkChannel(mode protocol.MessageMode, channelID int, message string)
	TalkPrivate(mode protocol.MessageMode, receiver, message string)
	RequestChannels()
	JoinChannel(channelID int)
	LeaveChannel(channelID int)
	AddVip(name string)
	RemoveVip(id uint32)
	Open(item protocol.Thing, previous *container.Container)
	OpenParent(containerID int)
	CloseContainer(containerID int)
	Ping()
	SafeLogout()
	ForceLogout()
}

// Scheduler runs work on the session loop.
type Scheduler interface {
	Post(fn func()) bool
}

// InputScope marks calls caused by user input. *session.CallTracker satisfies it.
type InputScope interface {
	Input(fn func())
}

// Console executes command lines against a Game.
type Console struct {
	game     Game
	sched    Scheduler
	scope    InputScope
	registry *command.Registry
	out      *Output
	logger   *zap.Logger

	quit     chan struct{}
	quitOnce sync.Once
}

// New creates a Console.
//
// Precondition: every argument must be non-nil.
func New(game Game, sched Scheduler, scope InputScope, out *Output, logger *zap.Logger) *Console {
	return &Console{
		game:     game,
		sched:    sched,
		scope:    scope,
		registry: command.DefaultRegistry(),
		out:      out,
		logger:   logger,
		quit:     make(chan struct{}),
	}
}

// Run reads lines from in and posts each to the session loop until in is
// exhausted, the quit command runs, or ctx is cancelled.
//
// Postcondition: Returns nil on EOF or quit, ctx.Err() on cancellation, or the
// read error.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			case <-c.quit:
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.quit:
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("reading console input: %w", err)
			}
			return nil
		case line := <-lines:
			if !c.sched.Post(func() { c.scope.Input(func() { c.Execute(line) }) }) {
				return nil
			}
			select {
			case <-c.quit:
				return nil
			default:
			}
		}
	}
}

// Done is closed once the quit command has run.
func (c *Console) Done() <-chan struct{} { return c.quit }

// Execute runs one command line. Must be called on the session loop, inside an
// input scope when bot protection is on.
func (c *Console) Execute(line string) {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return
	}
	cmd, ok := c.registry.Resolve(parsed.Command)
	if !ok {
		c.out.Line(Colorf(Dim, "You don't know how to '%s'. Type help.", parsed.Command))
		return
	}
	handler, ok := handlers[cmd.Handler]
	if !ok {
		c.logger.Error("command has no handler", zap.String("command", cmd.Name), zap.String("handler", cmd.Handler))
		return
	}
	if err := handler(c, cmd, parsed); err != nil {
		c.out.Error(err.Error())
	}
}

func (c *Console) stop() {
	c.quitOnce.Do(func() { close(c.quit) })
}
