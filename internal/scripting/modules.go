package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/otsession/internal/game/feature"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// Game is the part of the session scripts may query and drive. *session.Game
// satisfies it.
type Game interface {
	IsOnline() bool
	IsDead() bool
	IsAttacking() bool
	IsFollowing() bool
	Seq() uint32
	PingRoundTrip() int
	ProtocolVersion() int
	Features() feature.Set

	SetAttackTarget(id world.CreatureID)
	SetFollowTarget(id world.CreatureID)
	CancelAttackAndFollow()
	Walk(dir protocol.Direction)
	Turn(dir protocol.Direction)
	Stop()
	Talk(message string)
	TalkPrivate(mode protocol.MessageMode, receiver, message string)
	SetFightMode(mode protocol.FightMode)
	SetChaseMode(mode protocol.ChaseMode)
	SetSafeFight(on bool)
	Ping()
	SafeLogout()
}

var fightModes = map[string]protocol.FightMode{
	"offensive": protocol.FightOffensive,
	"balanced":  protocol.FightBalanced,
	"defensive": protocol.FightDefensive,
}

var chaseModes = map[string]protocol.ChaseMode{
	"stand": protocol.DontChase,
	"chase": protocol.ChaseOpponent,
}

// RegisterModules registers the game and log Lua tables.
//
// Postcondition: game and log globals are defined in m.L.
func (m *Manager) RegisterModules(game Game) {
	L := m.L

	L.SetGlobal("game", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"is_online":        func(L *lua.LState) int { L.Push(lua.LBool(game.IsOnline())); return 1 },
		"is_dead":          func(L *lua.LState) int { L.Push(lua.LBool(game.IsDead())); return 1 },
		"is_attacking":     func(L *lua.LState) int { L.Push(lua.LBool(game.IsAttacking())); return 1 },
		"is_following":     func(L *lua.LState) int { L.Push(lua.LBool(game.IsFollowing())); return 1 },
		"seq":              func(L *lua.LState) int { L.Push(lua.LNumber(game.Seq())); return 1 },
		"ping_round_trip":  func(L *lua.LState) int { L.Push(lua.LNumber(game.PingRoundTrip())); return 1 },
		"protocol_version": func(L *lua.LState) int { L.Push(lua.LNumber(game.ProtocolVersion())); return 1 },
		"has_feature": func(L *lua.LState) int {
			name := L.CheckString(1)
			for _, f := range game.Features().Features() {
				if f.String() == name {
					L.Push(lua.LTrue)
					return 1
				}
			}
			L.Push(lua.LFalse)
			return 1
		},

		"attack": func(L *lua.LState) int {
			game.SetAttackTarget(world.CreatureID(L.CheckInt64(1)))
			return 0
		},
		"follow": func(L *lua.LState) int {
			game.SetFollowTarget(world.CreatureID(L.CheckInt64(1)))
			return 0
		},
		"cancel_attack_and_follow": func(L *lua.LState) int {
			game.CancelAttackAndFollow()
			return 0
		},
		"walk": func(L *lua.LState) int {
			game.Walk(checkDirection(L, 1))
			return 0
		},
		"turn": func(L *lua.LState) int {
			game.Turn(checkDirection(L, 1))
			return 0
		},
		"stop": func(L *lua.LState) int {
			game.Stop()
			return 0
		},
		"talk": func(L *lua.LState) int {
			game.Talk(L.CheckString(1))
			return 0
		},
		"talk_private": func(L *lua.LState) int {
			game.TalkPrivate(protocol.MessagePrivateTo, L.CheckString(1), L.CheckString(2))
			return 0
		},
		"set_fight_mode": func(L *lua.LState) int {
			mode, ok := fightModes[L.CheckString(1)]
			if !ok {
				L.ArgError(1, "expected offensive, balanced or defensive")
			}
			game.SetFightMode(mode)
			return 0
		},
		"set_chase_mode": func(L *lua.LState) int {
			mode, ok := chaseModes[L.CheckString(1)]
			if !ok {
				L.ArgError(1, "expected stand or chase")
			}
			game.SetChaseMode(mode)
			return 0
		},
		"set_safe_fight": func(L *lua.LState) int {
			game.SetSafeFight(L.CheckBool(1))
			return 0
		},
		"ping": func(L *lua.LState) int {
			game.Ping()
			return 0
		},
		"logout": func(L *lua.LState) int {
			game.SafeLogout()
			return 0
		},
	}))

	logFn := func(write func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			write(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	L.SetGlobal("log", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"debug": logFn(m.logger.Debug),
		"info":  logFn(m.logger.Info),
		"warn":  logFn(m.logger.Warn),
		"error": logFn(m.logger.Error),
	}))
}

func checkDirection(L *lua.LState, n int) protocol.Direction {
	dir, ok := protocol.ParseDirection(L.CheckString(n))
	if !ok {
		L.ArgError(n, "expected a direction")
	}
	return dir
}
