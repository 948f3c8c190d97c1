package session

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/otsession/internal/game/feature"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// HandleEvent applies one decoded inbound event to the session and notifies the
// sink. Transports deliver through the Receiver bound at Login; HandleEvent is
// exported for hosts that decode events themselves.
func (g *Game) HandleEvent(ev protocol.Event) {
	switch e := ev.(type) {
	case protocol.LoginError:
		g.logger.Info("login refused", zap.String("message", e.Message))
		g.sink.OnLoginError(e.Message)
	case protocol.LoginAdvice:
		g.sink.OnLoginAdvice(e.Message)
	case protocol.LoginWait:
		g.sink.OnLoginWait(e.Message, e.Seconds)
	case protocol.PlayerLogin:
		g.processPlayerLogin(e)
	case protocol.GameStart:
		g.processGameStart()
	case protocol.GameEnd:
		if g.state.Online {
			g.processGameEnd()
		}
	case protocol.Death:
		g.processDeath(e.Penalty)
	case protocol.GMActions:
		g.state.GMActions = append([]uint8(nil), e.Actions...)
		g.sink.OnGMActions(g.state.GMActions)
	case protocol.Ping:
		g.sink.OnPing()
	case protocol.PingBack:
		g.state.Ping = e.ElapsedMs
		g.sink.OnPingBack(e.ElapsedMs)
	case protocol.TextMessage:
		g.sink.OnTextMessage(e.Mode, e.Text)
	case protocol.Talk:
		g.sink.OnTalk(e.Name, e.Level, e.Mode, e.Text, e.ChannelID, e.Position)
	case protocol.CreatureAppear:
		g.creatures.Put(&world.Creature{ID: world.CreatureID(e.CreatureID), Name: g.FormatCreatureName(e.Name)})
	case protocol.CreatureDisappear:
		g.creatures.Remove(world.CreatureID(e.CreatureID))

	case protocol.OpenContainer:
		if e.ContainerID < 0 {
			g.logger.Error("dropping container with invalid id", zap.Int("container_id", e.ContainerID))
			return
		}
		g.containers.Open(e.ContainerID, e.Item, e.Name, e.Capacity, e.HasParent, e.Items)
	case protocol.CloseContainer:
		g.dropIfMissing(g.containers.Close(e.ContainerID), e.ContainerID)
	case protocol.ContainerAddItem:
		g.dropIfMissing(g.containers.AddItem(e.ContainerID, e.Item), e.ContainerID)
	case protocol.ContainerUpdateItem:
		g.dropIfMissing(g.containers.UpdateItem(e.ContainerID, e.Slot, e.Item), e.ContainerID)
	case protocol.ContainerRemoveItem:
		g.dropIfMissing(g.containers.RemoveItem(e.ContainerID, e.Slot), e.ContainerID)
	case protocol.InventoryChange:
		g.processInventoryChange(e.Slot, e.Item)

	case protocol.ChannelList:
		g.sink.OnChannelList(e.Channels)
	case protocol.OpenChannel:
		g.sink.OnOpenChannel(e.ChannelID, e.Name)
	case protocol.OpenPrivateChannel:
		g.sink.OnOpenPrivateChannel(e.Name)
	case protocol.OpenOwnPrivateChannel:
		g.sink.OnOpenOwnPrivateChannel(e.ChannelID, e.Name)
	case protocol.CloseChannel:
		g.sink.OnCloseChannel(e.ChannelID)
	case protocol.RuleViolationChannel:
		g.sink.OnRuleViolationChannel(e.ChannelID)
	case protocol.RuleViolationRemove:
		g.sink.OnRuleViolationRemove(e.Name)
	case protocol.RuleViolationCancel:
		g.sink.OnRuleViolationCancel(e.Name)
	case protocol.RuleViolationLock:
		g.sink.OnRuleViolationLock()

	case protocol.VipAdd:
		g.state.Vips[e.ID] = VipEntry{Name: e.Name, Online: e.Online}
		g.sink.OnVipAdd(e.ID, e.Name, e.Online)
	case protocol.VipStateChange:
		entry := g.state.Vips[e.ID]
		entry.Online = e.Online
		g.state.Vips[e.ID] = entry
		g.sink.OnVipStateChange(e.ID, e.Online)
	case protocol.TutorialHint:
		g.sink.OnTutorialHint(e.ID)
	case protocol.AutomapFlag:
		g.sink.OnAutomapFlag(e.Position, e.Icon, e.Message)
	case protocol.OutfitWindow:
		g.processOutfitWindow(e)

	case protocol.OpenNpcTrade:
		g.sink.OnOpenNpcTrade(e.Items)
	case protocol.PlayerGoods:
		g.sink.OnPlayerGoods(e.Money, e.Goods)
	case protocol.CloseNpcTrade:
		g.sink.OnCloseNpcTrade()
	case protocol.OwnTrade:
		g.sink.OnOwnTrade(e.Name, e.Items)
	case protocol.CounterTrade:
		g.sink.OnCounterTrade(e.Name, e.Items)
	case protocol.CloseTrade:
		g.sink.OnCloseTrade()
	case protocol.EditText:
		g.sink.OnEditText(e.ID, e.ItemID, e.MaxLength, e.Text, e.Writer, e.Date)
	case protocol.EditList:
		g.sink.OnEditList(e.ID, e.DoorID, e.Text)
	case protocol.QuestLog:
		g.sink.OnQuestLog(e.Quests)
	case protocol.QuestLine:
		g.sink.OnQuestLine(e.QuestID, e.Missions)

	case protocol.AttackCancel:
		g.processAttackCancel(e.Seq)
	case protocol.WalkCancel:
		g.processWalkCancel(e.Direction)
	default:
		g.logger.Warn("unhandled event", zap.String("event", ev.EventName()))
	}
}

// dropIfMissing logs a container operation that referenced a container or slot
// that is not open. Servers close containers redundantly, so this is not fatal.
func (g *Game) dropIfMissing(err error, containerID int) {
	if err == nil {
		return
	}
	g.logger.Error("container not found", zap.Int("container_id", containerID), zap.Error(err))
}

func (g *Game) processPlayerLogin(e protocol.PlayerLogin) {
	if g.player != nil {
		g.player.ID = world.CreatureID(e.CreatureID)
		g.creatures.Put(&world.Creature{ID: g.player.ID, Name: g.player.Name})
	}
	if e.ServerBeat > 0 {
		g.state.ServerBeat = e.ServerBeat
	}
	g.state.CanReportBugs = e.CanReportBugs
}

func (g *Game) processDeath(penalty int) {
	g.state.Dead = true
	if g.player != nil {
		g.player.StopWalk()
	}
	g.sink.OnDeath(penalty)
}

func (g *Game) processInventoryChange(slot int, item *protocol.Item) {
	if g.player == nil {
		g.logger.Warn("inventory change without a local player", zap.Int("slot", slot))
		return
	}
	if item != nil {
		placed := *item
		placed.Position = protocol.InventorySlotPosition(slot)
		item = &placed
	}
	g.player.SetInventoryItem(slot, item)
	g.sink.OnInventoryChange(slot, item)
}

func (g *Game) processOutfitWindow(e protocol.OutfitWindow) {
	outfit := e.Current
	outfit.Mount = 0

	var mount *protocol.Outfit
	if g.features.Has(feature.PlayerMounts) {
		mount = &protocol.Outfit{}
		if e.Current.Mount > 0 {
			mount.ID = e.Current.Mount
		}
	}
	g.sink.OnOutfitWindow(outfit, e.Outfits, mount, e.Mounts)
}

// processAttackCancel drops the attack the server could not carry out. Seq 0
// cancels any attack; another seq only cancels the attack it acknowledges.
func (g *Game) processAttackCancel(seq uint32) {
	if g.IsAttacking() && (seq == 0 || seq == g.state.Seq) {
		g.CancelAttack()
	}
}

func (g *Game) processWalkCancel(dir protocol.Direction) {
	if g.player == nil {
		return
	}
	if g.player.IsAutoWalking() {
		g.send(protocol.Stop{})
	}
	g.player.CancelWalk(dir)
	g.sink.OnWalkCancel(dir)
}
