package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/otsession/internal/game/container"
	"github.com/cory-johannsen/otsession/internal/game/loop"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

type fakeTransport struct {
	r         protocol.Receiver
	creds     *protocol.Credentials
	sent      []protocol.Command
	connected bool
	closed    bool
	sendErr   error
}

func (t *fakeTransport) Open(creds protocol.Credentials) {
	t.creds = &creds
	t.connected = true
}

func (t *fakeTransport) Send(cmd protocol.Command) error {
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, cmd)
	return nil
}

func (t *fakeTransport) IsConnected() bool { return t.connected && !t.closed }

func (t *fakeTransport) Close() {
	t.closed = true
	t.connected = false
}

type fakeDialer struct {
	dialed []*fakeTransport
}

func (d *fakeDialer) Dial(r protocol.Receiver) Transport {
	t := &fakeTransport{r: r}
	d.dialed = append(d.dialed, t)
	return t
}

// manualScheduler runs posted work inline and fires cycles only when told to.
type manualScheduler struct {
	cycles []*manualTask
}

func (s *manualScheduler) Post(fn func()) bool {
	fn()
	return true
}

func (s *manualScheduler) Cycle(period time.Duration, fn func()) loop.Task {
	t := &manualTask{period: period, fn: fn}
	s.cycles = append(s.cycles, t)
	return t
}

type manualTask struct {
	period    time.Duration
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel()         { t.cancelled = true }
func (t *manualTask) Cancelled() bool { return t.cancelled }

func (t *manualTask) fire() {
	if !t.cancelled {
		t.fn()
	}
}

type recordingSink struct {
	NopSink
	events []string

	onGameStart func()
	onGameEnd   func()
	lastMount   *protocol.Outfit
	lastOutfit  protocol.Outfit
}

func (s *recordingSink) record(format string, args ...any) {
	s.events = append(s.events, fmt.Sprintf(format, args...))
}

func (s *recordingSink) OnConnectionError(message string, code int) {
	s.record("connection_error:%s:%d", message, code)
}

func (s *recordingSink) OnLoginError(message string) { s.record("login_error:%s", message) }

func (s *recordingSink) OnGameStart() {
	s.record("game_start")
	if s.onGameStart != nil {
		s.onGameStart()
	}
}

func (s *recordingSink) OnGameEnd() {
	s.record("game_end")
	if s.onGameEnd != nil {
		s.onGameEnd()
	}
}

func (s *recordingSink) OnDeath(penalty int)      { s.record("death:%d", penalty) }
func (s *recordingSink) OnPingBack(elapsedMs int) { s.record("ping_back:%d", elapsedMs) }

func (s *recordingSink) OnContainerOpen(c, previous *container.Container) {
	if previous != nil {
		s.record("container_open:%d:%s:prev=%s", c.ID(), c.Name(), previous.Name())
		return
	}
	s.record("container_open:%d:%s", c.ID(), c.Name())
}

func (s *recordingSink) OnContainerClose(c *container.Container) {
	s.record("container_close:%d:%s", c.ID(), c.Name())
}

func (s *recordingSink) OnInventoryChange(slot int, item *protocol.Item) {
	s.record("inventory:%d", slot)
}

func (s *recordingSink) OnVipStateChange(id uint32, online bool) {
	s.record("vip_state:%d:%t", id, online)
}

func (s *recordingSink) OnOutfitWindow(outfit protocol.Outfit, _ []protocol.OutfitOption, mount *protocol.Outfit, _ []protocol.MountOption) {
	s.lastOutfit = outfit
	s.lastMount = mount
	s.record("outfit_window")
}

func (s *recordingSink) OnWalkCancel(dir protocol.Direction) { s.record("walk_cancel:%s", dir) }

func (s *recordingSink) OnAttackingCreatureChange(target, old world.CreatureID) {
	s.record("attacking:%d:%d", target, old)
}

func (s *recordingSink) OnFollowingCreatureChange(target, old world.CreatureID) {
	s.record("following:%d:%d", target, old)
}

func (s *recordingSink) OnFightModeChange(mode protocol.FightMode) { s.record("fight_mode:%s", mode) }
func (s *recordingSink) OnChaseModeChange(mode protocol.ChaseMode) { s.record("chase_mode:%s", mode) }
func (s *recordingSink) OnSafeFightChange(on bool)                 { s.record("safe_fight:%t", on) }
func (s *recordingSink) OnProtocolVersionChange(version int)       { s.record("version:%d", version) }
func (s *recordingSink) OnWalk(dir protocol.Direction)             { s.record("walk:%s", dir) }
func (s *recordingSink) OnForceWalk(dir protocol.Direction)        { s.record("force_walk:%s", dir) }

func (s *recordingSink) OnAutoWalk(path []protocol.Direction) {
	s.record("auto_walk:%d", len(path))
}

func (s *recordingSink) count(event string) int {
	n := 0
	for _, e := range s.events {
		if e == event {
			n++
		}
	}
	return n
}

type harness struct {
	g      *Game
	sink   *recordingSink
	sched  *manualScheduler
	dialer *fakeDialer
	logs   *observer.ObservedLogs
}

const localPlayerID = world.CreatureID(1000)

func newHarness(t *testing.T, version int) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	h := &harness{
		sink:   &recordingSink{},
		sched:  &manualScheduler{},
		dialer: &fakeDialer{},
		logs:   logs,
	}
	h.g = New(zap.New(core), h.sink, h.sched, h.dialer)
	if version != 0 {
		require.NoError(t, h.g.SetProtocolVersion(version))
	}
	h.sink.events = nil
	return h
}

func (h *harness) login(t *testing.T) *fakeTransport {
	t.Helper()
	require.NoError(t, h.g.Login("acc", "secret", World{Name: "Antica", Host: "127.0.0.1", Port: 7172}, "knight"))
	return h.dialer.dialed[len(h.dialer.dialed)-1]
}

// startGame logs in and completes the handshake, then clears what was recorded.
func (h *harness) startGame(t *testing.T) *fakeTransport {
	t.Helper()
	tr := h.login(t)
	tr.r.Deliver(protocol.PlayerLogin{CreatureID: uint32(localPlayerID), ServerBeat: 50})
	tr.r.Deliver(protocol.GameStart{})
	require.Equal(t, PhaseActive, h.g.Phase())
	tr.sent = nil
	h.sink.events = nil
	return tr
}
