package session

import (
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// Phase is the connection lifecycle stage of a Game.
type Phase int

const (
	// PhaseIdle holds no transport.
	PhaseIdle Phase = iota
	// PhaseLoggingIn holds a transport but the server has not confirmed game start.
	PhaseLoggingIn
	// PhaseActive is online.
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseLoggingIn:
		return "logging-in"
	case PhaseActive:
		return "active"
	}
	return "idle"
}

// DefaultServerBeat is the server tick in milliseconds assumed until the server
// announces its own.
const DefaultServerBeat = 50

// VipEntry is a remembered player on the VIP list.
type VipEntry struct {
	Name   string
	Online bool
}

// State holds the mutable facts of one session. The zero value is not ready;
// use newState.
type State struct {
	WorldName     string
	CharacterName string

	Online bool
	Dead   bool

	ServerBeat    int
	CanReportBugs bool
	// Ping is the last measured round trip in milliseconds, -1 when unknown.
	Ping int

	FightMode protocol.FightMode
	ChaseMode protocol.ChaseMode
	SafeFight bool

	// AttackingTarget and FollowingTarget are never both non-zero.
	AttackingTarget world.CreatureID
	FollowingTarget world.CreatureID
	// Seq numbers attack and follow commands.
	Seq uint32

	Vips      map[uint32]VipEntry
	GMActions []uint8
}

func newState() State {
	return State{
		ServerBeat: DefaultServerBeat,
		Ping:       -1,
		FightMode:  protocol.FightBalanced,
		ChaseMode:  protocol.DontChase,
		SafeFight:  true,
		Vips:       make(map[uint32]VipEntry),
	}
}

// resetKeepingIdentity returns session defaults with world and character names
// carried over; they are only cleared when a game ends.
func (s State) resetKeepingIdentity() State {
	next := newState()
	next.WorldName = s.WorldName
	next.CharacterName = s.CharacterName
	return next
}
