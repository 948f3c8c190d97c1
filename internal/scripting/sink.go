package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/otsession/internal/game/container"
	"github.com/cory-johannsen/otsession/internal/game/session"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// Sink forwards session notifications to the Lua hooks of the same name
// (on_game_start, on_talk, ...). Notifications without a hook are ignored.
type Sink struct {
	session.NopSink
	m *Manager
}

var _ session.EventSink = (*Sink)(nil)

// NewSink creates a Sink calling hooks on m.
func NewSink(m *Manager) *Sink {
	return &Sink{m: m}
}

func (s *Sink) call(hook string, args ...lua.LValue) {
	if !s.m.HasHook(hook) {
		return
	}
	_, _ = s.m.CallHook(hook, args...)
}

func (s *Sink) OnGameStart() { s.call("on_game_start") }
func (s *Sink) OnGameEnd()   { s.call("on_game_end") }

func (s *Sink) OnDeath(penalty int) { s.call("on_death", lua.LNumber(penalty)) }

func (s *Sink) OnConnectionError(message string, code int) {
	s.call("on_connection_error", lua.LString(message), lua.LNumber(code))
}

func (s *Sink) OnLoginError(message string) { s.call("on_login_error", lua.LString(message)) }

func (s *Sink) OnTextMessage(mode protocol.MessageMode, text string) {
	s.call("on_text_message", lua.LNumber(mode), lua.LString(text))
}

func (s *Sink) OnTalk(name string, level int, mode protocol.MessageMode, text string, channelID int, pos protocol.Position) {
	s.call("on_talk",
		lua.LString(name), lua.LNumber(level), lua.LNumber(mode), lua.LString(text),
		lua.LNumber(channelID), s.position(pos))
}

func (s *Sink) OnPingBack(elapsedMs int) { s.call("on_ping_back", lua.LNumber(elapsedMs)) }

// OnContainerOpen passes the previous container's id, or nil.
func (s *Sink) OnContainerOpen(c, previous *container.Container) {
	prev := lua.LValue(lua.LNil)
	if previous != nil {
		prev = lua.LNumber(previous.ID())
	}
	s.call("on_container_open", lua.LNumber(c.ID()), lua.LString(c.Name()), prev)
}

func (s *Sink) OnContainerClose(c *container.Container) {
	s.call("on_container_close", lua.LNumber(c.ID()))
}

// OnInventoryChange passes a nil item id for an emptied slot.
func (s *Sink) OnInventoryChange(slot int, item *protocol.Item) {
	id := lua.LValue(lua.LNil)
	if item != nil {
		id = lua.LNumber(item.ID)
	}
	s.call("on_inventory_change", lua.LNumber(slot), id)
}

func (s *Sink) OnOpenChannel(channelID int, name string) {
	s.call("on_open_channel", lua.LNumber(channelID), lua.LString(name))
}

func (s *Sink) OnVipStateChange(id uint32, online bool) {
	s.call("on_vip_state_change", lua.LNumber(id), lua.LBool(online))
}

func (s *Sink) OnWalkCancel(dir protocol.Direction) {
	s.call("on_walk_cancel", lua.LString(dir.String()))
}

func (s *Sink) OnAttackingCreatureChange(target, old world.CreatureID) {
	s.call("on_attacking_creature_change", lua.LNumber(target), lua.LNumber(old))
}

func (s *Sink) OnFollowingCreatureChange(target, old world.CreatureID) {
	s.call("on_following_creature_change", lua.LNumber(target), lua.LNumber(old))
}

func (s *Sink) OnProtocolVersionChange(version int) {
	s.call("on_protocol_version_change", lua.LNumber(version))
}

func (s *Sink) position(pos protocol.Position) *lua.LTable {
	t := s.m.L.NewTable()
	t.RawSetString("x", lua.LNumber(pos.X))
	t.RawSetString("y", lua.LNumber(pos.Y))
	t.RawSetString("z", lua.LNumber(pos.Z))
	return t
}
