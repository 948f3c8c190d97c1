package session

import (
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/otsession/internal/game/container"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// MaxAutoWalkSteps bounds auto-walk paths. The protocol carries up to 255 steps;
// the client keeps to 127.
const MaxAutoWalkSteps = 127

// ParentContainerZ is the z coordinate that addresses the parent of a container.
const ParentContainerZ = 254

// Walk steps the local player towards dir. Following is cancelled first; an
// auto-walk in progress is stopped instead of stepping.
func (g *Game) Walk(dir protocol.Direction) {
	if !g.canPerformAction() {
		return
	}
	if g.IsFollowing() {
		g.CancelFollow()
	}
	if g.player.IsAutoWalking() {
		g.send(protocol.Stop{})
		return
	}
	if !g.player.CanWalk(dir) {
		return
	}
	g.player.PreWalk(dir)
	g.sink.OnWalk(dir)
	g.ForceWalk(dir)
}

// ForceWalk sends a step without the local walk checks.
func (g *Game) ForceWalk(dir protocol.Direction) {
	if !g.canPerformAction() {
		return
	}
	if dir.Valid() {
		g.send(protocol.Walk{Direction: dir})
	}
	g.sink.OnForceWalk(dir)
}

// AutoWalk sends a walk path. Empty paths are ignored and paths longer than
// MaxAutoWalkSteps are rejected.
func (g *Game) AutoWalk(path []protocol.Direction) {
	if !g.canPerformAction() {
		return
	}
	if len(path) > MaxAutoWalkSteps {
		g.logger.Error("auto walk path too long",
			zap.Int("steps", len(path)),
			zap.Int("max_steps", MaxAutoWalkSteps),
		)
		return
	}
	if len(path) == 0 {
		return
	}
	if g.IsFollowing() {
		g.CancelFollow()
	}
	if first := path[0]; g.player.CanWalk(first) && !g.player.IsAutoWalking() {
		g.player.PreWalk(first)
	}
	path = slices.Clone(path)
	g.player.StartAutoWalk()
	g.sink.OnAutoWalk(path)
	g.send(protocol.AutoWalk{Path: path})
}

// Turn faces the local player towards a cardinal direction.
func (g *Game) Turn(dir protocol.Direction) {
	if !g.canPerformAction() || !dir.Cardinal() {
		return
	}
	g.send(protocol.Turn{Direction: dir})
}

// Stop cancels following and any walk in progress.
func (g *Game) Stop() {
	if !g.canPerformAction() {
		return
	}
	if g.IsFollowing() {
		g.CancelFollow()
	}
	g.send(protocol.Stop{})
}

func (g *Game) Look(thing protocol.Thing) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.LookAt{Position: thing.Position, ThingID: thing.ID, StackPos: thing.StackPos})
}

// Move moves count units of thing to to. Moving a thing onto its own position
// is dropped.
func (g *Game) Move(thing protocol.Thing, to protocol.Position, count int) {
	if count <= 0 {
		count = 1
	}
	if !g.canPerformAction() || thing.Position == to {
		return
	}
	id := thing.ID
	if thing.Creature {
		id = protocol.CreatureThingID
	}
	g.send(protocol.Move{From: thing.Position, ThingID: id, StackPos: thing.StackPos, To: to, Count: count})
}

// MoveToParentContainer moves thing out of its container into the parent one.
func (g *Game) MoveToParentContainer(thing protocol.Thing, count int) {
	if !g.canPerformAction() || count <= 0 {
		return
	}
	pos := thing.Position
	g.Move(thing, protocol.Position{X: pos.X, Y: pos.Y, Z: ParentContainerZ}, count)
}

func (g *Game) Rotate(thing protocol.Thing) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RotateItem{Position: thing.Position, ThingID: thing.ID, StackPos: thing.StackPos})
}

// Use uses thing. Things without a map or container position are used from the
// inventory. Anything that opens is opened into the lowest free container id.
func (g *Game) Use(thing protocol.Thing) {
	if !g.canPerformAction() {
		return
	}
	pos := thing.Position
	if !pos.IsValid() {
		pos = protocol.InventoryPosition
	}
	g.send(protocol.UseItem{Position: pos, ItemID: thing.ID, StackPos: thing.StackPos, Index: g.containers.FreeID()})
}

// UseInventoryItem uses an item type from anywhere in the inventory.
func (g *Game) UseInventoryItem(itemID int) {
	if !g.canPerformAction() || itemID < protocol.MinItemID {
		return
	}
	g.send(protocol.UseItem{Position: protocol.InventoryPosition, ItemID: uint32(itemID)})
}

// UseWith uses item on target, which may be a creature.
func (g *Game) UseWith(item, target protocol.Thing) {
	if !g.canPerformAction() {
		return
	}
	pos := item.Position
	if !pos.IsValid() {
		pos = protocol.InventoryPosition
	}
	g.useWith(pos, item.ID, item.StackPos, target)
}

// UseInventoryItemWith uses an item type from the inventory on target.
func (g *Game) UseInventoryItemWith(itemID int, target protocol.Thing) {
	if !g.canPerformAction() || itemID < protocol.MinItemID {
		return
	}
	g.useWith(protocol.InventoryPosition, uint32(itemID), 0, target)
}

func (g *Game) useWith(pos protocol.Position, itemID uint32, stackPos int, target protocol.Thing) {
	if target.Creature {
		g.send(protocol.UseOnCreature{Position: pos, ItemID: itemID, StackPos: stackPos, CreatureID: target.ID})
		return
	}
	g.send(protocol.UseItemWith{
		From:         pos,
		ItemID:       itemID,
		FromStackPos: stackPos,
		To:           target.Position,
		ToThingID:    target.ID,
		ToStackPos:   target.StackPos,
	})
}

// Open opens a container item into previous, or into the lowest free id when
// previous is nil.
func (g *Game) Open(item protocol.Thing, previous *container.Container) {
	if !g.canPerformAction() {
		return
	}
	id := g.containers.FreeID()
	if previous != nil {
		id = previous.ID()
	}
	g.send(protocol.UseItem{Position: item.Position, ItemID: item.ID, StackPos: item.StackPos, Index: id})
}

// OpenParent replaces the open container with its parent.
func (g *Game) OpenParent(containerID int) {
	if !g.canPerformAction() || !g.containerOpen(containerID) {
		return
	}
	g.send(protocol.UpContainer{ContainerID: containerID})
}

// CloseContainer asks the server to close an open container.
func (g *Game) CloseContainer(containerID int) {
	if !g.canPerformAction() || !g.containerOpen(containerID) {
		return
	}
	g.send(protocol.CloseContainerRequest{ContainerID: containerID})
}

func (g *Game) containerOpen(id int) bool {
	if _, ok := g.containers.Get(id); ok {
		return true
	}
	g.logger.Error("container not found", zap.Int("container_id", id), zap.Error(container.ErrNotFound))
	return false
}

func (g *Game) RefreshContainer() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RefreshContainer{})
}

// Talk says message on the default channel.
func (g *Game) Talk(message string) {
	g.TalkChannel(protocol.MessageSay, 0, message)
}

func (g *Game) TalkChannel(mode protocol.MessageMode, channelID int, message string) {
	if !g.canPerformAction() || message == "" {
		return
	}
	g.send(protocol.Say{Mode: mode, ChannelID: channelID, Message: message})
}

func (g *Game) TalkPrivate(mode protocol.MessageMode, receiver, message string) {
	if !g.canPerformAction() || receiver == "" || message == "" {
		return
	}
	g.send(protocol.Say{Mode: mode, Receiver: receiver, Message: message})
}

func (g *Game) OpenPrivateChannel(receiver string) {
	if !g.canPerformAction() || receiver == "" {
		return
	}
	g.send(protocol.OpenPrivateChannelRequest{Receiver: receiver})
}

func (g *Game) RequestChannels() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RequestChannels{})
}

func (g *Game) JoinChannel(channelID int) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.JoinChannel{ChannelID: channelID})
}

func (g *Game) LeaveChannel(channelID int) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.LeaveChannel{ChannelID: channelID})
}

func (g *Game) CloseNpcChannel() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.CloseNpcChannel{})
}

func (g *Game) OpenOwnChannel() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.OpenOwnChannel{})
}

func (g *Game) InviteToOwnChannel(name string) {
	if !g.canPerformAction() || name == "" {
		return
	}
	g.send(protocol.InviteToOwnChannel{Name: name})
}

func (g *Game) ExcludeFromOwnChannel(name string) {
	if !g.canPerformAction() || name == "" {
		return
	}
	g.send(protocol.ExcludeFromOwnChannel{Name: name})
}

func (g *Game) PartyInvite(creatureID uint32) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.PartyInvite{CreatureID: creatureID})
}

func (g *Game) PartyJoin(creatureID uint32) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.PartyJoin{CreatureID: creatureID})
}

func (g *Game) PartyRevokeInvitation(creatureID uint32) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.PartyRevokeInvitation{CreatureID: creatureID})
}

func (g *Game) PartyPassLeadership(creatureID uint32) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.PartyPassLeadership{CreatureID: creatureID})
}

func (g *Game) PartyLeave() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.PartyLeave{})
}

func (g *Game) PartyShareExperience(active bool) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.PartyShareExperience{Active: active})
}

func (g *Game) RequestOutfit() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RequestOutfit{})
}

func (g *Game) ChangeOutfit(outfit protocol.Outfit) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.ChangeOutfit{Outfit: outfit})
}

func (g *Game) AddVip(name string) {
	if !g.canPerformAction() || name == "" {
		return
	}
	g.send(protocol.AddVip{Name: name})
}

func (g *Game) RemoveVip(id uint32) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RemoveVip{ID: id})
}

func (g *Game) InspectNpcTrade(item protocol.Item) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.InspectNpcTrade{ItemID: item.ID, Count: item.CountOrSubType})
}

func (g *Game) BuyItem(item protocol.Item, amount int, ignoreCapacity, buyWithBackpack bool) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.BuyItem{
		ItemID:          item.ID,
		SubType:         item.CountOrSubType,
		Amount:          amount,
		IgnoreCapacity:  ignoreCapacity,
		BuyWithBackpack: buyWithBackpack,
	})
}

func (g *Game) SellItem(item protocol.Item, amount int, ignoreEquipped bool) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.SellItem{ItemID: item.ID, SubType: item.CountOrSubType, Amount: amount, IgnoreEquipped: ignoreEquipped})
}

func (g *Game) CloseNpcTrade() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.CloseNpcTradeRequest{})
}

// RequestTrade offers item to the creature with creatureID.
func (g *Game) RequestTrade(item protocol.Thing, creatureID uint32) {
	if !g.canPerformAction() || creatureID == 0 {
		return
	}
	g.send(protocol.RequestTrade{Position: item.Position, ItemID: item.ID, StackPos: item.StackPos, CreatureID: creatureID})
}

func (g *Game) InspectTrade(counterOffer bool, index int) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.InspectTrade{CounterOffer: counterOffer, Index: index})
}

func (g *Game) AcceptTrade() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.AcceptTrade{})
}

func (g *Game) RejectTrade() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RejectTrade{})
}

func (g *Game) EditText(id uint32, text string) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.EditTextRequest{ID: id, Text: text})
}

func (g *Game) EditList(id uint32, doorID int, text string) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.EditListRequest{ID: id, DoorID: doorID, Text: text})
}

func (g *Game) ReportBug(comment string) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.BugReport{Comment: comment})
}

func (g *Game) ReportRuleViolation(target string, reason, action int, comment, statement string, statementID int, ipBanishment bool) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RuleViolationReport{
		Target:       target,
		Reason:       reason,
		Action:       action,
		Comment:      comment,
		Statement:    statement,
		StatementID:  statementID,
		IPBanishment: ipBanishment,
	})
}

// DebugReport sends a client crash report. It is not gated so it can be sent
// from any state in which a transport exists.
func (g *Game) DebugReport(a, b, c, d string) {
	g.send(protocol.DebugReport{A: a, B: b, C: c, D: d})
}

func (g *Game) RequestQuestLog() {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RequestQuestLog{})
}

func (g *Game) RequestQuestLine(questID int) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RequestQuestLine{QuestID: questID})
}

func (g *Game) EquipItem(item protocol.Item) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.EquipItem{ItemID: item.ID, CountOrSubType: item.CountOrSubType})
}

func (g *Game) Mount(mounted bool) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.MountStatus{Mounted: mounted})
}

func (g *Game) RequestItemInfo(item protocol.Item, index int) {
	if !g.canPerformAction() {
		return
	}
	g.send(protocol.RequestItemInfo{ItemID: item.ID, SubType: item.CountOrSubType, Index: index})
}

// Ping measures latency. It only needs a connected transport and is exempt from
// bot protection.
func (g *Game) Ping() {
	if g.transport == nil || !g.transport.IsConnected() {
		return
	}
	g.withBotCall(func() { g.send(protocol.PingRequest{}) })
}
