package session

import (
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// SetAttackTarget attacks the creature with id. Attacking the current target
// again, or passing 0, stops attacking. A new target cancels following first.
//
// Postcondition: when the gate passes, Seq() has grown by one for the attack
// command and, if following was cancelled, by one more before it.
func (g *Game) SetAttackTarget(id world.CreatureID) {
	if !g.canPerformAction() || g.isLocalPlayer(id) {
		return
	}
	if id != 0 && id == g.state.AttackingTarget {
		id = 0
	}
	if id != 0 && g.IsFollowing() {
		g.CancelFollow()
	}
	g.setAttackingCreature(id)
	g.state.Seq++
	g.send(protocol.Attack{CreatureID: uint32(id), Seq: g.state.Seq})
}

// SetFollowTarget mirrors SetAttackTarget for following.
func (g *Game) SetFollowTarget(id world.CreatureID) {
	if !g.canPerformAction() || g.isLocalPlayer(id) {
		return
	}
	if id != 0 && id == g.state.FollowingTarget {
		id = 0
	}
	if id != 0 && g.IsAttacking() {
		g.CancelAttack()
	}
	g.setFollowingCreature(id)
	g.state.Seq++
	g.send(protocol.Follow{CreatureID: uint32(id), Seq: g.state.Seq})
}

func (g *Game) CancelAttack() { g.SetAttackTarget(0) }
func (g *Game) CancelFollow() { g.SetFollowTarget(0) }

// CancelAttackAndFollow asks the server to drop both targets. The local targets
// are cleared when the server confirms with an attack cancel.
func (g *Game) CancelAttackAndFollow() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.CancelAttackAndFollow{})
}

func (g *Game) setAttackingCreature(id world.CreatureID) {
	old := g.state.AttackingTarget
	g.state.AttackingTarget = id
	g.sink.OnAttackingCreatureChange(id, old)
}

func (g *Game) setFollowingCreature(id world.CreatureID) {
	old := g.state.FollowingTarget
	g.state.FollowingTarget = id
	g.sink.OnFollowingCreatureChange(id, old)
}

func (g *Game) isLocalPlayer(id world.CreatureID) bool {
	return id != 0 && g.player != nil && g.player.ID == id
}

// SetFightMode changes the fight mode. Online, the change is gated and sent with
// the chase and safe-fight settings; before the game starts it is only stored
// and sent when it does.
func (g *Game) SetFightMode(mode protocol.FightMode) {
	if !g.canChangeFightModes() || g.state.FightMode == mode {
		return
	}
	g.state.FightMode = mode
	g.syncFightModes()
	g.sink.OnFightModeChange(mode)
}

// SetChaseMode changes the chase mode like SetFightMode.
func (g *Game) SetChaseMode(mode protocol.ChaseMode) {
	if !g.canChangeFightModes() || g.state.ChaseMode == mode {
		return
	}
	g.state.ChaseMode = mode
	g.syncFightModes()
	g.sink.OnChaseModeChange(mode)
}

// SetSafeFight changes the safe-fight setting like SetFightMode.
func (g *Game) SetSafeFight(on bool) {
	if !g.canChangeFightModes() || g.state.SafeFight == on {
		return
	}
	g.state.SafeFight = on
	g.syncFightModes()
	g.sink.OnSafeFightChange(on)
}

func (g *Game) canChangeFightModes() bool {
	return !g.state.Online || g.canPerformAction()
}

func (g *Game) syncFightModes() {
	if g.state.Online {
		g.sendFightModes()
	}
}

// sendFightModes pushes all three settings; the server never takes a partial update.
func (g *Game) sendFightModes() {
	g.send(protocol.ChangeFightModes{
		FightMode: g.state.FightMode,
		ChaseMode: g.state.ChaseMode,
		SafeFight: g.state.SafeFight,
	})
}
