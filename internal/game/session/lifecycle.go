package session

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/otsession/internal/game/feature"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/observability"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// KeepalivePeriod is the interval of client pings on protocols that expect them.
const KeepalivePeriod = time.Second

// World identifies the game world a character lives on.
type World struct {
	Name string
	Host string
	Port int
}

// Login starts a login attempt for character on w.
//
// Precondition: the session holds no transport, is not online and has a protocol version.
// Postcondition: On success Phase() is PhaseLoggingIn with all session state reset
// except the fight, chase and safe-fight settings; otherwise a *PreconditionError
// is returned and nothing changed.
func (g *Game) Login(account, password string, w World, character string) error {
	if g.transport != nil || g.state.Online {
		return &PreconditionError{Op: "login", Reason: "already online or logging in"}
	}
	if g.version == 0 {
		return &PreconditionError{Op: "login", Reason: "protocol version not set"}
	}

	fight, chase, safe := g.state.FightMode, g.state.ChaseMode, g.state.SafeFight
	g.reset()
	g.state.FightMode, g.state.ChaseMode, g.state.SafeFight = fight, chase, safe

	g.sessionID = uuid.New()
	g.logger = observability.SessionLogger(g.base, g.sessionID)
	g.player = world.NewLocalPlayer(character)
	g.state.WorldName = w.Name
	g.state.CharacterName = character

	g.generation++
	g.transport = g.dialer.Dial(&receiver{g: g, generation: g.generation})
	g.logger.Info("logging in",
		zap.String("world", w.Name),
		zap.String("character", character),
		zap.Int("protocol_version", g.version),
	)
	g.transport.Open(protocol.Credentials{
		Account:         account,
		Password:        password,
		WorldName:       w.Name,
		WorldHost:       w.Host,
		WorldPort:       w.Port,
		CharacterName:   character,
		ProtocolVersion: g.version,
	})
	return nil
}

// CancelLogin abandons the login attempt or session. A logout is sent first so
// the character does not linger on the server.
func (g *Game) CancelLogin() {
	if g.transport != nil {
		g.send(protocol.Logout{})
	}
	g.processDisconnect()
}

// ForceLogout sends a logout and disconnects at once. No-op unless online.
func (g *Game) ForceLogout() {
	if !g.state.Online {
		return
	}
	g.send(protocol.Logout{})
	g.processDisconnect()
}

// SafeLogout asks the server to log out and leaves the disconnect to it. No-op
// unless online.
func (g *Game) SafeLogout() {
	if !g.state.Online {
		return
	}
	g.send(protocol.Logout{})
}

// processConnectionError tears the session down after a transport failure. A
// clean end of stream is not reported to the sink.
func (g *Game) processConnectionError(err error) {
	if g.transport == nil {
		return
	}
	if !protocol.IsEndOfStream(err) {
		msg, code := protocol.ErrorDetails(err)
		g.logger.Warn("connection error", zap.Error(err), zap.Int("code", code))
		g.sink.OnConnectionError(msg, code)
	} else {
		g.logger.Info("connection closed by server")
	}
	g.processDisconnect()
}

// processDisconnect ends the game if online, then releases the transport.
func (g *Game) processDisconnect() {
	if g.state.Online {
		g.processGameEnd()
	}
	if g.transport != nil {
		t := g.transport
		g.transport = nil
		g.generation++
		t.Close()
	}
}

func (g *Game) processGameStart() {
	if g.transport == nil || g.state.Online {
		g.logger.Warn("unexpected game start", zap.Stringer("phase", g.Phase()))
		return
	}
	g.state.Online = true
	g.logger.Info("game started", zap.Stringer("features", g.features))

	// modes chosen before the game started
	g.sendFightModes()

	// the world is not known yet, scripts may act here
	g.withBotCall(g.sink.OnGameStart)
	g.denyBotCall = true

	if g.features.Has(feature.ClientPing) {
		g.pingTask = g.sched.Cycle(KeepalivePeriod, g.keepalive)
	}
}

func (g *Game) keepalive() {
	if g.transport == nil || !g.transport.IsConnected() {
		return
	}
	g.withBotCall(func() { g.send(protocol.PingRequest{}) })
}

func (g *Game) processGameEnd() {
	g.sink.OnGameEnd()
	g.reset()
	g.state.WorldName = ""
	g.state.CharacterName = ""
	g.creatures.Clear()
	g.logger.Info("game ended")
}

// reset returns the session to idle defaults. The keepalive task is cancelled
// before anything else so it can never fire against a released transport.
func (g *Game) reset() {
	if g.pingTask != nil {
		g.pingTask.Cancel()
		g.pingTask = nil
	}
	g.state = g.state.resetKeepingIdentity()
	g.denyBotCall = false
	g.player = nil
	g.containers.CloseAll()
}
