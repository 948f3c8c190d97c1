package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cory-johannsen/otsession/internal/game/command"
	"github.com/cory-johannsen/otsession/internal/game/session"
	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// handlerFunc runs a resolved command. A returned error is a message for the user.
type handlerFunc func(c *Console, cmd *command.Command, p command.ParseResult) error

// Handlers returns the map from Handler constant to handler.
func Handlers() map[string]handlerFunc {
	return handlers
}

// handlers is the single source of truth for console dispatch. A new command
// needs a Handler constant in package command and an entry here.
var handlers = map[string]handlerFunc{
	command.HandlerWalk:         handleWalk,
	command.HandlerAutoWalk:     handleAutoWalk,
	command.HandlerTurn:         handleTurn,
	command.HandlerStop:         handleStop,
	command.HandlerAttack:       handleAttack,
	command.HandlerFollow:       handleFollow,
	command.HandlerUnattack:     handleUnattack,
	command.HandlerFight:        handleFight,
	command.HandlerChase:        handleChase,
	command.HandlerSafe:         handleSafe,
	command.HandlerSay:          handleSay,
	command.HandlerWhisper:      handleSay,
	command.HandlerYell:         handleSay,
	command.HandlerTell:         handleTell,
	command.HandlerChannels:     handleChannels,
	command.HandlerJoin:         handleJoin,
	command.HandlerLeave:        handleLeave,
	command.HandlerChannel:      handleChannel,
	command.HandlerVip:          handleVip,
	command.HandlerOpen:         handleOpen,
	command.HandlerClose:        handleClose,
	command.HandlerUpContainer:  handleUpContainer,
	command.HandlerContainers:   handleContainers,
	command.HandlerPing:         handlePing,
	command.HandlerStatus:       handleStatus,
	command.HandlerProtocolInfo: handleProtocolInfo,
	command.HandlerLogout:       handleLogout,
	command.HandlerQuit:         handleQuit,
	command.HandlerHelp:         handleHelp,
}

func handleStop(c *Console, _ *command.Command, _ command.ParseResult) error {
	c.game.Stop()
	return nil
}

func handleUnattack(c *Console, _ *command.Command, _ command.ParseResult) error {
	c.game.CancelAttackAndFollow()
	return nil
}

func handleChannels(c *Console, _ *command.Command, _ command.ParseResult) error {
	c.game.RequestChannels()
	return nil
}

func handlePing(c *Console, _ *command.Command, _ command.ParseResult) error {
	c.game.Ping()
	return nil
}

// message is a reply for the user rather than a failure.
type message string

func (m message) Error() string { return string(m) }

func messagef(format string, args ...any) error {
	return message(fmt.Sprintf(format, args...))
}

const errNotOnline = message("You are not online.")

func usage(cmd *command.Command) error {
	return messagef("Usage: %s %s", cmd.Name, cmd.Usage)
}

func handleWalk(c *Console, cmd *command.Command, _ command.ParseResult) error {
	dir, ok := protocol.ParseDirection(cmd.Name)
	if !ok {
		return messagef("%s is not a direction", cmd.Name)
	}
	c.game.Walk(dir)
	return nil
}

func handleAutoWalk(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) == 0 {
		return usage(cmd)
	}
	path := make([]protocol.Direction, 0, len(p.Args))
	for _, arg := range p.Args {
		dir, ok := protocol.ParseDirection(arg)
		if !ok {
			return messagef("%q is not a direction", arg)
		}
		path = append(path, dir)
	}
	c.game.AutoWalk(path)
	return nil
}

func handleTurn(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) != 1 {
		return usage(cmd)
	}
	dir, ok := protocol.ParseDirection(p.Args[0])
	if !ok || !dir.Cardinal() {
		return usage(cmd)
	}
	c.game.Turn(dir)
	return nil
}

func creatureArg(cmd *command.Command, p command.ParseResult) (world.CreatureID, error) {
	if len(p.Args) != 1 {
		return 0, usage(cmd)
	}
	id, err := strconv.ParseUint(p.Args[0], 10, 32)
	if err != nil || id == 0 {
		return 0, usage(cmd)
	}
	return world.CreatureID(id), nil
}

func handleAttack(c *Console, cmd *command.Command, p command.ParseResult) error {
	id, err := creatureArg(cmd, p)
	if err != nil {
		return err
	}
	c.game.SetAttackTarget(id)
	return nil
}

func handleFollow(c *Console, cmd *command.Command, p command.ParseResult) error {
	id, err := creatureArg(cmd, p)
	if err != nil {
		return err
	}
	c.game.SetFollowTarget(id)
	return nil
}

func handleFight(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) != 1 {
		return usage(cmd)
	}
	switch strings.ToLower(p.Args[0]) {
	case "offensive", "off":
		c.game.SetFightMode(protocol.FightOffensive)
	case "balanced", "bal":
		c.game.SetFightMode(protocol.FightBalanced)
	case "defensive", "def":
		c.game.SetFightMode(protocol.FightDefensive)
	default:
		return usage(cmd)
	}
	return nil
}

func handleChase(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) != 1 {
		return usage(cmd)
	}
	switch strings.ToLower(p.Args[0]) {
	case "chase":
		c.game.SetChaseMode(protocol.ChaseOpponent)
	case "stand":
		c.game.SetChaseMode(protocol.DontChase)
	default:
		return usage(cmd)
	}
	return nil
}

func handleSafe(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) != 1 {
		return usage(cmd)
	}
	switch strings.ToLower(p.Args[0]) {
	case "on":
		c.game.SetSafeFight(true)
	case "off":
		c.game.SetSafeFight(false)
	default:
		return usage(cmd)
	}
	return nil
}

func handleSay(c *Console, cmd *command.Command, p command.ParseResult) error {
	if p.RawArgs == "" {
		return usage(cmd)
	}
	switch cmd.Handler {
	case command.HandlerWhisper:
		c.game.TalkChannel(protocol.MessageWhisper, 0, p.RawArgs)
	case command.HandlerYell:
		c.game.TalkChannel(protocol.MessageYell, 0, p.RawArgs)
	default:
		c.game.Talk(p.RawArgs)
	}
	return nil
}

func handleTell(c *Console, cmd *command.Command, p command.ParseResult) error {
	msg := p.Tail(1)
	if len(p.Args) < 2 || msg == "" {
		return usage(cmd)
	}
	c.game.TalkPrivate(protocol.MessagePrivateTo, p.Args[0], msg)
	c.out.Line(Colorf(Magenta, "You tell %s: %s", p.Args[0], msg))
	return nil
}

func intArg(cmd *command.Command, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, usage(cmd)
	}
	return n, nil
}

func handleJoin(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) != 1 {
		return usage(cmd)
	}
	id, err := intArg(cmd, p.Args[0])
	if err != nil {
		return err
	}
	c.game.JoinChannel(id)
	return nil
}

func handleLeave(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) != 1 {
		return usage(cmd)
	}
	id, err := intArg(cmd, p.Args[0])
	if err != nil {
		return err
	}
	c.game.LeaveChannel(id)
	return nil
}

func handleChannel(c *Console, cmd *command.Command, p command.ParseResult) error {
	msg := p.Tail(1)
	if len(p.Args) < 2 || msg == "" {
		return usage(cmd)
	}
	id, err := intArg(cmd, p.Args[0])
	if err != nil {
		return err
	}
	c.game.TalkChannel(protocol.MessageChannel, id, msg)
	return nil
}

func handleVip(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) != 2 {
		return usage(cmd)
	}
	switch strings.ToLower(p.Args[0]) {
	case "add":
		c.game.AddVip(p.Args[1])
	case "remove", "rm":
		id, err := strconv.ParseUint(p.Args[1], 10, 32)
		if err != nil {
			return usage(cmd)
		}
		c.game.RemoveVip(uint32(id))
	default:
		return usage(cmd)
	}
	return nil
}

func handleOpen(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) < 2 || len(p.Args) > 3 {
		return usage(cmd)
	}
	id, err := intArg(cmd, p.Args[0])
	if err != nil {
		return err
	}
	slot, err := intArg(cmd, p.Args[1])
	if err != nil {
		return err
	}
	reuse := len(p.Args) == 3
	if reuse && strings.ToLower(p.Args[2]) != "here" {
		return usage(cmd)
	}

	parent, ok := c.game.Containers().Get(id)
	if !ok {
		return messagef("Container %d is not open.", id)
	}
	item, ok := parent.Item(slot)
	if !ok {
		return messagef("Container %d has no slot %d.", id, slot)
	}
	thing := protocol.ThingFromItem(item, slot)
	if reuse {
		c.game.Open(thing, parent)
	} else {
		c.game.Open(thing, nil)
	}
	return nil
}

func handleClose(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) != 1 {
		return usage(cmd)
	}
	id, err := intArg(cmd, p.Args[0])
	if err != nil {
		return err
	}
	c.game.CloseContainer(id)
	return nil
}

func handleUpContainer(c *Console, cmd *command.Command, p command.ParseResult) error {
	if len(p.Args) != 1 {
		return usage(cmd)
	}
	id, err := intArg(cmd, p.Args[0])
	if err != nil {
		return err
	}
	c.game.OpenParent(id)
	return nil
}

func handleContainers(c *Console, _ *command.Command, _ command.ParseResult) error {
	open := c.game.Containers().Containers()
	if len(open) == 0 {
		c.out.Line(Colorize(Dim, "No containers open."))
		return nil
	}
	for _, ct := range open {
		c.out.Line(Colorf(BrightYellow, "[%d] %s (%d/%d)", ct.ID(), ct.Name(), ct.Len(), ct.Capacity()))
		for slot, it := range ct.Items() {
			c.out.Line(fmt.Sprintf("  %2d: %s", slot, itemLabel(it)))
		}
	}
	return nil
}

func handleStatus(c *Console, _ *command.Command, _ command.ParseResult) error {
	st := c.game.State()
	c.out.Line(Colorf(BrightWhite, "%s on %s: %s", orDash(st.CharacterName), orDash(st.WorldName), c.game.Phase()))
	if st.Dead {
		c.out.Line(Colorize(BrightRed, "  dead"))
	}
	ping := "unknown"
	if st.Ping >= 0 {
		ping = fmt.Sprintf("%dms", st.Ping)
	}
	c.out.Line(fmt.Sprintf("  ping %s, server beat %dms", ping, st.ServerBeat))
	c.out.Line(fmt.Sprintf("  fight %s, chase %s, secure %s", st.FightMode, st.ChaseMode, onOff(st.SafeFight)))
	if cr, ok := c.game.AttackingCreature(); ok {
		c.out.Line(fmt.Sprintf("  attacking %s (%d)", cr.Name, cr.ID))
	} else if st.AttackingTarget != 0 {
		c.out.Line(fmt.Sprintf("  attacking #%d (not in view)", st.AttackingTarget))
	}
	if cr, ok := c.game.FollowingCreature(); ok {
		c.out.Line(fmt.Sprintf("  following %s (%d)", cr.Name, cr.ID))
	} else if st.FollowingTarget != 0 {
		c.out.Line(fmt.Sprintf("  following #%d (not in view)", st.FollowingTarget))
	}
	if len(st.Vips) > 0 {
		ids := make([]uint32, 0, len(st.Vips))
		for id := range st.Vips {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		c.out.Line("  VIPs:")
		for _, id := range ids {
			v := st.Vips[id]
			c.out.Line(fmt.Sprintf("    %d %s %s", id, orDash(v.Name), onlineLabel(v.Online)))
		}
	}
	return nil
}

func handleProtocolInfo(c *Console, _ *command.Command, _ command.ParseResult) error {
	v := c.game.ProtocolVersion()
	if v == 0 {
		c.out.Line(Colorize(Dim, "No protocol version set."))
		return nil
	}
	c.out.Line(Colorf(BrightWhite, "Protocol %d", v))
	for _, f := range c.game.Features().Features() {
		c.out.Line("  " + f.String())
	}
	return nil
}

func handleLogout(c *Console, _ *command.Command, _ command.ParseResult) error {
	if c.game.Phase() != session.PhaseActive {
		return errNotOnline
	}
	c.game.SafeLogout()
	return nil
}

func handleQuit(c *Console, _ *command.Command, _ command.ParseResult) error {
	c.game.ForceLogout()
	c.out.Line(Colorize(Cyan, "Goodbye."))
	c.stop()
	return nil
}

func handleHelp(c *Console, _ *command.Command, _ command.ParseResult) error {
	c.out.Line(Colorize(BrightWhite, "Available commands:"))

	categories := []struct {
		name  string
		label string
	}{
		{command.CategoryMovement, "Movement"},
		{command.CategoryCombat, "Combat"},
		{command.CategoryCommunication, "Communication"},
		{command.CategoryContainers, "Containers"},
		{command.CategorySystem, "System"},
	}

	byCategory := c.registry.CommandsByCategory()
	for _, cat := range categories {
		cmds := byCategory[cat.name]
		if len(cmds) == 0 {
			continue
		}
		c.out.Line(Colorf(BrightYellow, "  %s:", cat.label))
		for _, cmd := range cmds {
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			c.out.Line(Colorf(Green, "    %-12s", strings.TrimSpace(cmd.Name+" "+cmd.Usage)) + aliases + ": " + cmd.Help)
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
