package console

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/otsession/internal/game/container"
	"github.com/cory-johannsen/otsession/internal/game/session"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// Renderer prints session notifications as colored terminal lines.
type Renderer struct {
	session.NopSink
	out       *Output
	creatures *world.Creatures
}

var _ session.EventSink = (*Renderer)(nil)

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out *Output) *Renderer {
	return &Renderer{out: out}
}

// SetCreatures lets the renderer show creature names instead of ids. Call it
// before the session starts delivering events.
func (r *Renderer) SetCreatures(c *world.Creatures) {
	r.creatures = c
}

func (r *Renderer) creature(id world.CreatureID) string {
	if r.creatures != nil {
		if c, ok := r.creatures.Get(id); ok {
			return fmt.Sprintf("%s (%d)", c.Name, id)
		}
	}
	return fmt.Sprintf("#%d", id)
}

func (r *Renderer) OnConnectionError(message string, code int) {
	r.out.Line(Colorf(BrightRed, "Connection error %d: %s", code, message))
}

func (r *Renderer) OnLoginError(message string) {
	r.out.Line(Colorf(BrightRed, "Login failed: %s", message))
}

func (r *Renderer) OnLoginAdvice(message string) {
	r.out.Line(Colorize(Yellow, message))
}

func (r *Renderer) OnLoginWait(message string, seconds int) {
	r.out.Line(Colorf(Yellow, "%s (retry in %ds)", message, seconds))
}

func (r *Renderer) OnGameStart() {
	r.out.Line(Colorize(BrightGreen, "You are online."))
}

func (r *Renderer) OnGameEnd() {
	r.out.Line(Colorize(Cyan, "You are offline."))
}

func (r *Renderer) OnDeath(penalty int) {
	r.out.Line(Colorf(BrightRed, "You are dead. Penalty: %d%%", penalty))
}

func (r *Renderer) OnPingBack(elapsedMs int) {
	r.out.Line(Colorf(Dim, "pong %dms", elapsedMs))
}

func (r *Renderer) OnTextMessage(mode protocol.MessageMode, text string) {
	color := White
	switch mode {
	case protocol.MessageWarning, protocol.MessageFailure:
		color = Red
	case protocol.MessageLogin, protocol.MessageGame:
		color = BrightWhite
	case protocol.MessageLoot, protocol.MessageLook:
		color = Green
	}
	r.out.Line(Colorize(color, text))
}

func (r *Renderer) OnTalk(name string, level int, mode protocol.MessageMode, text string, channelID int, _ protocol.Position) {
	who := name
	if level > 0 {
		who = fmt.Sprintf("%s [%d]", name, level)
	}
	switch mode {
	case protocol.MessageWhisper:
		r.out.Line(Colorf(White, "%s whispers: %s", who, text))
	case protocol.MessageYell:
		r.out.Line(Colorf(BrightYellow, "%s yells: %s", who, strings.ToUpper(text)))
	case protocol.MessagePrivateFrom, protocol.MessageGamemasterPrivateFrom:
		r.out.Line(Colorf(Magenta, "%s tells you: %s", who, text))
	case protocol.MessageChannel, protocol.MessageChannelHighlight, protocol.MessageGamemasterChannel:
		r.out.Line(Colorf(Cyan, "[%d] %s: %s", channelID, who, text))
	case protocol.MessageNpcFrom:
		r.out.Line(Colorf(BrightCyan, "%s: %s", name, text))
	case protocol.MessageGamemasterBroadcast:
		r.out.Line(Colorf(BrightRed, "%s broadcasts: %s", name, text))
	default:
		r.out.Line(Colorf(BrightWhite, "%s says: %s", who, text))
	}
}

func (r *Renderer) OnContainerOpen(c, previous *container.Container) {
	r.out.Line(Colorf(BrightYellow, "[%d] %s (%d/%d)", c.ID(), c.Name(), c.Len(), c.Capacity()))
	for slot, it := range c.Items() {
		r.out.Line(fmt.Sprintf("  %2d: %s", slot, itemLabel(it)))
	}
}

func (r *Renderer) OnContainerClose(c *container.Container) {
	r.out.Line(Colorf(Dim, "[%d] %s closed", c.ID(), c.Name()))
}

func (r *Renderer) OnContainerAddItem(c *container.Container, slot int, item protocol.Item) {
	r.out.Line(Colorf(Green, "[%d] + %s", c.ID(), itemLabel(item)))
}

func (r *Renderer) OnContainerRemoveItem(c *container.Container, slot int, item protocol.Item) {
	r.out.Line(Colorf(Dim, "[%d] - %s", c.ID(), itemLabel(item)))
}

func (r *Renderer) OnInventoryChange(slot int, item *protocol.Item) {
	if item == nil {
		r.out.Line(Colorf(Dim, "slot %d emptied", slot))
		return
	}
	r.out.Line(Colorf(Green, "slot %d: %s", slot, itemLabel(*item)))
}

func (r *Renderer) OnChannelList(channels []protocol.Channel) {
	r.out.Line(Colorize(BrightWhite, "Channels:"))
	for _, ch := range channels {
		r.out.Line(fmt.Sprintf("  %4d  %s", ch.ID, ch.Name))
	}
}

func (r *Renderer) OnOpenChannel(channelID int, name string) {
	r.out.Line(Colorf(Cyan, "Joined [%d] %s", channelID, name))
}

func (r *Renderer) OnOpenPrivateChannel(name string) {
	r.out.Line(Colorf(Magenta, "Private conversation with %s", name))
}

func (r *Renderer) OnCloseChannel(channelID int) {
	r.out.Line(Colorf(Dim, "Left [%d]", channelID))
}

func (r *Renderer) OnVipAdd(id uint32, name string, online bool) {
	r.out.Line(Colorf(Cyan, "VIP %s (%d) %s", name, id, onlineLabel(online)))
}

func (r *Renderer) OnVipStateChange(id uint32, online bool) {
	r.out.Line(Colorf(Cyan, "VIP %d is now %s", id, onlineLabel(online)))
}

func (r *Renderer) OnTutorialHint(id int) {
	r.out.Line(Colorf(Dim, "hint %d", id))
}

func (r *Renderer) OnOwnTrade(name string, items []protocol.Item) {
	r.out.Line(Colorf(Yellow, "You offer %s %d item(s)", name, len(items)))
}

func (r *Renderer) OnCounterTrade(name string, items []protocol.Item) {
	r.out.Line(Colorf(Yellow, "%s offers %d item(s)", name, len(items)))
}

func (r *Renderer) OnCloseTrade() {
	r.out.Line(Colorize(Dim, "Trade closed"))
}

func (r *Renderer) OnQuestLog(quests []protocol.Quest) {
	r.out.Line(Colorize(BrightWhite, "Quests:"))
	for _, q := range quests {
		mark := " "
		if q.Completed {
			mark = "x"
		}
		r.out.Line(fmt.Sprintf("  [%s] %s", mark, q.Name))
	}
}

func (r *Renderer) OnWalkCancel(dir protocol.Direction) {
	r.out.Line(Colorf(Red, "You cannot go %s.", dir))
}

func (r *Renderer) OnAttackingCreatureChange(target, old world.CreatureID) {
	if target == 0 {
		r.out.Line(Colorf(Dim, "You stop attacking %s.", r.creature(old)))
		return
	}
	r.out.Line(Colorf(BrightRed, "You attack %s.", r.creature(target)))
}

func (r *Renderer) OnFollowingCreatureChange(target, old world.CreatureID) {
	if target == 0 {
		r.out.Line(Colorf(Dim, "You stop following %s.", r.creature(old)))
		return
	}
	r.out.Line(Colorf(Cyan, "You follow %s.", r.creature(target)))
}

func (r *Renderer) OnFightModeChange(mode protocol.FightMode) {
	r.out.Line(Colorf(Dim, "fight mode: %s", mode))
}

func (r *Renderer) OnChaseModeChange(mode protocol.ChaseMode) {
	r.out.Line(Colorf(Dim, "chase mode: %s", mode))
}

func (r *Renderer) OnSafeFightChange(on bool) {
	r.out.Line(Colorf(Dim, "secure mode: %s", onOff(on)))
}

func (r *Renderer) OnProtocolVersionChange(version int) {
	r.out.Line(Colorf(Dim, "protocol %d", version))
}

func itemLabel(it protocol.Item) string {
	if it.CountOrSubType > 1 {
		return fmt.Sprintf("%dx item %d", it.CountOrSubType, it.ID)
	}
	return fmt.Sprintf("item %d", it.ID)
}

func onlineLabel(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
