package session

import (
	"github.com/cory-johannsen/otsession/internal/game/container"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// MultiSink forwards every notification to each sink in order.
type MultiSink []EventSink

var _ EventSink = MultiSink(nil)

func (m MultiSink) OnConnectionError(message string, code int) {
	for _, s := range m {
		s.OnConnectionError(message, code)
	}
}

func (m MultiSink) OnLoginError(message string) {
	for _, s := range m {
		s.OnLoginError(message)
	}
}

func (m MultiSink) OnLoginAdvice(message string) {
	for _, s := range m {
		s.OnLoginAdvice(message)
	}
}

func (m MultiSink) OnLoginWait(message string, seconds int) {
	for _, s := range m {
		s.OnLoginWait(message, seconds)
	}
}

func (m MultiSink) OnGameStart() {
	for _, s := range m {
		s.OnGameStart()
	}
}

func (m MultiSink) OnGameEnd() {
	for _, s := range m {
		s.OnGameEnd()
	}
}

func (m MultiSink) OnDeath(penalty int) {
	for _, s := range m {
		s.OnDeath(penalty)
	}
}

func (m MultiSink) OnGMActions(actions []uint8) {
	for _, s := range m {
		s.OnGMActions(actions)
	}
}

func (m MultiSink) OnPing() {
	for _, s := range m {
		s.OnPing()
	}
}

func (m MultiSink) OnPingBack(elapsedMs int) {
	for _, s := range m {
		s.OnPingBack(elapsedMs)
	}
}

func (m MultiSink) OnTextMessage(mode protocol.MessageMode, text string) {
	for _, s := range m {
		s.OnTextMessage(mode, text)
	}
}

func (m MultiSink) OnTalk(name string, level int, mode protocol.MessageMode, text string, channelID int, pos protocol.Position) {
	for _, s := range m {
		s.OnTalk(name, level, mode, text, channelID, pos)
	}
}

func (m MultiSink) OnContainerOpen(c, previous *container.Container) {
	for _, s := range m {
		s.OnContainerOpen(c, previous)
	}
}

func (m MultiSink) OnContainerClose(c *container.Container) {
	for _, s := range m {
		s.OnContainerClose(c)
	}
}

func (m MultiSink) OnContainerAddItem(c *container.Container, slot int, item protocol.Item) {
	for _, s := range m {
		s.OnContainerAddItem(c, slot, item)
	}
}

func (m MultiSink) OnContainerUpdateItem(c *container.Container, slot int, item, old protocol.Item) {
	for _, s := range m {
		s.OnContainerUpdateItem(c, slot, item, old)
	}
}

func (m MultiSink) OnContainerRemoveItem(c *container.Container, slot int, item protocol.Item) {
	for _, s := range m {
		s.OnContainerRemoveItem(c, slot, item)
	}
}

func (m MultiSink) OnInventoryChange(slot int, item *protocol.Item) {
	for _, s := range m {
		s.OnInventoryChange(slot, item)
	}
}

func (m MultiSink) OnChannelList(channels []protocol.Channel) {
	for _, s := range m {
		s.OnChannelList(channels)
	}
}

func (m MultiSink) OnOpenChannel(channelID int, name string) {
	for _, s := range m {
		s.OnOpenChannel(channelID, name)
	}
}

func (m MultiSink) OnOpenPrivateChannel(name string) {
	for _, s := range m {
		s.OnOpenPrivateChannel(name)
	}
}

func (m MultiSink) OnOpenOwnPrivateChannel(channelID int, name string) {
	for _, s := range m {
		s.OnOpenOwnPrivateChannel(channelID, name)
	}
}

func (m MultiSink) OnCloseChannel(channelID int) {
	for _, s := range m {
		s.OnCloseChannel(channelID)
	}
}

func (m MultiSink) OnRuleViolationChannel(channelID int) {
	for _, s := range m {
		s.OnRuleViolationChannel(channelID)
	}
}

func (m MultiSink) OnRuleViolationRemove(name string) {
	for _, s := range m {
		s.OnRuleViolationRemove(name)
	}
}

func (m MultiSink) OnRuleViolationCancel(name string) {
	for _, s := range m {
		s.OnRuleViolationCancel(name)
	}
}

func (m MultiSink) OnRuleViolationLock() {
	for _, s := range m {
		s.OnRuleViolationLock()
	}
}

func (m MultiSink) OnVipAdd(id uint32, name string, online bool) {
	for _, s := range m {
		s.OnVipAdd(id, name, online)
	}
}

func (m MultiSink) OnVipStateChange(id uint32, online bool) {
	for _, s := range m {
		s.OnVipStateChange(id, online)
	}
}

func (m MultiSink) OnTutorialHint(id int) {
	for _, s := range m {
		s.OnTutorialHint(id)
	}
}

func (m MultiSink) OnAutomapFlag(pos protocol.Position, icon int, message string) {
	for _, s := range m {
		s.OnAutomapFlag(pos, icon, message)
	}
}

func (m MultiSink) OnOutfitWindow(outfit protocol.Outfit, outfits []protocol.OutfitOption, mount *protocol.Outfit, mounts []protocol.MountOption) {
	for _, s := range m {
		s.OnOutfitWindow(outfit, outfits, mount, mounts)
	}
}

func (m MultiSink) OnOpenNpcTrade(items []protocol.TradeItem) {
	for _, s := range m {
		s.OnOpenNpcTrade(items)
	}
}

func (m MultiSink) OnPlayerGoods(money int, goods []protocol.Good) {
	for _, s := range m {
		s.OnPlayerGoods(money, goods)
	}
}

func (m MultiSink) OnCloseNpcTrade() {
	for _, s := range m {
		s.OnCloseNpcTrade()
	}
}

func (m MultiSink) OnOwnTrade(name string, items []protocol.Item) {
	for _, s := range m {
		s.OnOwnTrade(name, items)
	}
}

func (m MultiSink) OnCounterTrade(name string, items []protocol.Item) {
	for _, s := range m {
		s.OnCounterTrade(name, items)
	}
}

func (m MultiSink) OnCloseTrade() {
	for _, s := range m {
		s.OnCloseTrade()
	}
}

func (m MultiSink) OnEditText(id uint32, itemID, maxLength int, text, writer, date string) {
	for _, s := range m {
		s.OnEditText(id, itemID, maxLength, text, writer, date)
	}
}

func (m MultiSink) OnEditList(id uint32, doorID int, text string) {
	for _, s := range m {
		s.OnEditList(id, doorID, text)
	}
}

func (m MultiSink) OnQuestLog(quests []protocol.Quest) {
	for _, s := range m {
		s.OnQuestLog(quests)
	}
}

func (m MultiSink) OnQuestLine(questID int, missions []protocol.QuestMission) {
	for _, s := range m {
		s.OnQuestLine(questID, missions)
	}
}

func (m MultiSink) OnWalkCancel(dir protocol.Direction) {
	for _, s := range m {
		s.OnWalkCancel(dir)
	}
}

func (m MultiSink) OnAttackingCreatureChange(target, old world.CreatureID) {
	for _, s := range m {
		s.OnAttackingCreatureChange(target, old)
	}
}

func (m MultiSink) OnFollowingCreatureChange(target, old world.CreatureID) {
	for _, s := range m {
		s.OnFollowingCreatureChange(target, old)
	}
}

func (m MultiSink) OnFightModeChange(mode protocol.FightMode) {
	for _, s := range m {
		s.OnFightModeChange(mode)
	}
}

func (m MultiSink) OnChaseModeChange(mode protocol.ChaseMode) {
	for _, s := range m {
		s.OnChaseModeChange(mode)
	}
}

func (m MultiSink) OnSafeFightChange(on bool) {
	for _, s := range m {
		s.OnSafeFightChange(on)
	}
}

func (m MultiSink) OnProtocolVersionChange(version int) {
	for _, s := range m {
		s.OnProtocolVersionChange(version)
	}
}

func (m MultiSink) OnWalk(dir protocol.Direction) {
	for _, s := range m {
		s.OnWalk(dir)
	}
}

func (m MultiSink) OnAutoWalk(path []protocol.Direction) {
	for _, s := range m {
		s.OnAutoWalk(path)
	}
}

func (m MultiSink) OnForceWalk(dir protocol.Direction) {
	for _, s := range m {
		s.OnForceWalk(dir)
	}
}
