package session

import (
	"github.com/cory-johannsen/otsession/internal/game/container"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// EventSink receives every session notification. Calls are made on the session
// loop, after the state change they describe has been applied.
type EventSink interface {
	OnConnectionError(message string, code int)
	OnLoginError(message string)
	OnLoginAdvice(message string)
	OnLoginWait(message string, seconds int)
	OnGameStart()
	OnGameEnd()
	OnDeath(penalty int)
	OnGMActions(actions []uint8)
	OnPing()
	OnPingBack(elapsedMs int)
	OnTextMessage(mode protocol.MessageMode, text string)
	OnTalk(name string, level int, mode protocol.MessageMode, text string, channelID int, pos protocol.Position)

	// OnContainerOpen fires before previous, if any, is closed.
	OnContainerOpen(c, previous *container.Container)
	OnContainerClose(c *container.Container)
	OnContainerAddItem(c *container.Container, slot int, item protocol.Item)
	OnContainerUpdateItem(c *container.Container, slot int, item, old protocol.Item)
	OnContainerRemoveItem(c *container.Container, slot int, item protocol.Item)
	// OnInventoryChange reports a nil item for an emptied slot.
	OnInventoryChange(slot int, item *protocol.Item)

	OnChannelList(channels []protocol.Channel)
	OnOpenChannel(channelID int, name string)
	OnOpenPrivateChannel(name string)
	OnOpenOwnPrivateChannel(channelID int, name string)
	OnCloseChannel(channelID int)
	OnRuleViolationChannel(channelID int)
	OnRuleViolationRemove(name string)
	OnRuleViolationCancel(name string)
	OnRuleViolationLock()

	OnVipAdd(id uint32, name string, online bool)
	OnVipStateChange(id uint32, online bool)
	OnTutorialHint(id int)
	OnAutomapFlag(pos protocol.Position, icon int, message string)
	// OnOutfitWindow receives mount as nil when the protocol has no mounts.
	OnOutfitWindow(outfit protocol.Outfit, outfits []protocol.OutfitOption, mount *protocol.Outfit, mounts []protocol.MountOption)

	OnOpenNpcTrade(items []protocol.TradeItem)
	OnPlayerGoods(money int, goods []protocol.Good)
	OnCloseNpcTrade()
	OnOwnTrade(name string, items []protocol.Item)
	OnCounterTrade(name string, items []protocol.Item)
	OnCloseTrade()
	OnEditText(id uint32, itemID, maxLength int, text, writer, date string)
	OnEditList(id uint32, doorID int, text string)
	OnQuestLog(quests []protocol.Quest)
	OnQuestLine(questID int, missions []protocol.QuestMission)
	OnWalkCancel(dir protocol.Direction)

	OnAttackingCreatureChange(target, old world.CreatureID)
	OnFollowingCreatureChange(target, old world.CreatureID)
	OnFightModeChange(mode protocol.FightMode)
	OnChaseModeChange(mode protocol.ChaseMode)
	OnSafeFightChange(on bool)
	OnProtocolVersionChange(version int)
	OnWalk(dir protocol.Direction)
	OnAutoWalk(path []protocol.Direction)
	OnForceWalk(dir protocol.Direction)
}

// NopSink ignores every notification. Embed it to implement only the callbacks
// of interest.
type NopSink struct{}

var _ EventSink = NopSink{}

func (NopSink) OnConnectionError(string, int)                                                 {}
func (NopSink) OnLoginError(string)                                                           {}
func (NopSink) OnLoginAdvice(string)                                                          {}
func (NopSink) OnLoginWait(string, int)                                                       {}
func (NopSink) OnGameStart()                                                                  {}
func (NopSink) OnGameEnd()                                                                    {}
func (NopSink) OnDeath(int)                                                                   {}
func (NopSink) OnGMActions([]uint8)                                                           {}
func (NopSink) OnPing()                                                                       {}
func (NopSink) OnPingBack(int)                                                                {}
func (NopSink) OnTextMessage(protocol.MessageMode, string)                                    {}
func (NopSink) OnTalk(string, int, protocol.MessageMode, string, int, protocol.Position)      {}
func (NopSink) OnContainerOpen(_, _ *container.Container)                                     {}
func (NopSink) OnContainerClose(*container.Container)                                         {}
func (NopSink) OnContainerAddItem(*container.Container, int, protocol.Item)                   {}
func (NopSink) OnContainerUpdateItem(*container.Container, int, protocol.Item, protocol.Item) {}
func (NopSink) OnContainerRemoveItem(*container.Container, int, protocol.Item)                {}
func (NopSink) OnInventoryChange(int, *protocol.Item)                                         {}
func (NopSink) OnChannelList([]protocol.Channel)                                              {}
func (NopSink) OnOpenChannel(int, string)                                                     {}
func (NopSink) OnOpenPrivateChannel(string)                                                   {}
func (NopSink) OnOpenOwnPrivateChannel(int, string)                                           {}
func (NopSink) OnCloseChannel(int)                                                            {}
func (NopSink) OnRuleViolationChannel(int)                                                    {}
func (NopSink) OnRuleViolationRemove(string)                                                  {}
func (NopSink) OnRuleViolationCancel(string)                                                  {}
func (NopSink) OnRuleViolationLock()                                                          {}
func (NopSink) OnVipAdd(uint32, string, bool)                                                 {}
func (NopSink) OnVipStateChange(uint32, bool)                                                 {}
func (NopSink) OnTutorialHint(int)                                                            {}
func (NopSink) OnAutomapFlag(protocol.Position, int, string)                                  {}
func (NopSink) OnOutfitWindow(protocol.Outfit, []protocol.OutfitOption, *protocol.Outfit, []protocol.MountOption) {
}
func (NopSink) OnOpenNpcTrade([]protocol.TradeItem)                          {}
func (NopSink) OnPlayerGoods(int, []protocol.Good)                           {}
func (NopSink) OnCloseNpcTrade()                                             {}
func (NopSink) OnOwnTrade(string, []protocol.Item)                           {}
func (NopSink) OnCounterTrade(string, []protocol.Item)                       {}
func (NopSink) OnCloseTrade()                                                {}
func (NopSink) OnEditText(uint32, int, int, string, string, string)          {}
func (NopSink) OnEditList(uint32, int, string)                               {}
func (NopSink) OnQuestLog([]protocol.Quest)                                  {}
func (NopSink) OnQuestLine(int, []protocol.QuestMission)                     {}
func (NopSink) OnWalkCancel(protocol.Direction)                              {}
func (NopSink) OnAttackingCreatureChange(world.CreatureID, world.CreatureID) {}
func (NopSink) OnFollowingCreatureChange(world.CreatureID, world.CreatureID) {}
func (NopSink) OnFightModeChange(protocol.FightMode)                         {}
func (NopSink) OnChaseModeChange(protocol.ChaseMode)                         {}
func (NopSink) OnSafeFightChange(bool)                                       {}
func (NopSink) OnProtocolVersionChange(int)                                  {}
func (NopSink) OnWalk(protocol.Direction)                                    {}
func (NopSink) OnAutoWalk([]protocol.Direction)                              {}
func (NopSink) OnForceWalk(protocol.Direction)                               {}
