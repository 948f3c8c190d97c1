package main

import (
	"sort"

	"github.com/cory-johannsen/otsession/internal/protocol"
)

// Item ids of the scripted world.
const (
	backpackID = 1988
	bagID      = 1987
	ropeID     = 3003
	goldID     = 3031
)

// backpackSlot is the equipment slot holding the starting backpack.
const backpackSlot = 3

// defaultServerBeat is the tick announced at login, in milliseconds.
const defaultServerBeat = 50

// fakeWorld is the scripted game state of one stream. It turns client commands
// into the events a real server would answer with. It is confined to the
// stream's reader goroutine.
type fakeWorld struct {
	character string
	playerID  uint32
	latencyMs int

	creatures  map[uint32]string
	channels   map[int]string
	containers map[int]string
	facing     protocol.Direction
	nextVip    uint32
}

func newFakeWorld(character string, playerID uint32, latencyMs int) *fakeWorld {
	return &fakeWorld{
		character: character,
		playerID:  playerID,
		latencyMs: latencyMs,
		creatures: map[uint32]string{
			playerID + 1: "rat",
			playerID + 2: "cave rat",
		},
		channels: map[int]string{
			0: "Guild",
			5: "Trade",
			7: "Help",
		},
		containers: make(map[int]string),
		facing:     protocol.South,
	}
}

// login returns the events that bring the client online.
func (w *fakeWorld) login() []protocol.Event {
	events := []protocol.Event{
		protocol.PlayerLogin{CreatureID: w.playerID, ServerBeat: defaultServerBeat, CanReportBugs: true},
		protocol.GameStart{},
	}
	ids := make([]uint32, 0, len(w.creatures))
	for id := range w.creatures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		events = append(events, protocol.CreatureAppear{CreatureID: id, Name: w.creatures[id]})
	}
	return append(events,
		protocol.InventoryChange{Slot: backpackSlot, Item: &protocol.Item{ID: backpackID}},
		protocol.TextMessage{Mode: protocol.MessageLogin, Text: "Welcome to Devland."},
	)
}

// handle returns the events answering cmd. Logout is handled by the caller.
func (w *fakeWorld) handle(cmd protocol.Command) []protocol.Event {
	switch c := cmd.(type) {
	case protocol.Walk:
		w.facing = c.Direction
	case protocol.AutoWalk:
		if n := len(c.Path); n > 0 {
			w.facing = c.Path[n-1]
		}
	case protocol.Turn:
		w.facing = c.Direction
	case protocol.Stop:
		return []protocol.Event{protocol.WalkCancel{Direction: w.facing}}

	case protocol.Attack:
		if c.CreatureID != 0 && w.creatures[c.CreatureID] == "" {
			return []protocol.Event{
				protocol.AttackCancel{Seq: c.Seq},
				failure("You may not attack this creature."),
			}
		}
	case protocol.Follow:
		if c.CreatureID != 0 && w.creatures[c.CreatureID] == "" {
			return []protocol.Event{failure("Target lost.")}
		}
	case protocol.CancelAttackAndFollow:
		return []protocol.Event{protocol.AttackCancel{Seq: 0}}
	case protocol.ChangeFightModes:

	case protocol.Say:
		return w.say(c)
	case protocol.RequestChannels:
		return []protocol.Event{protocol.ChannelList{Channels: w.channelList()}}
	case protocol.JoinChannel:
		name, ok := w.channels[c.ChannelID]
		if !ok {
			return []protocol.Event{failure("This channel does not exist.")}
		}
		return []protocol.Event{protocol.OpenChannel{ChannelID: c.ChannelID, Name: name}}
	case protocol.LeaveChannel:
		return []protocol.Event{protocol.CloseChannel{ChannelID: c.ChannelID}}
	case protocol.AddVip:
		w.nextVip++
		return []protocol.Event{protocol.VipAdd{ID: w.nextVip, Name: c.Name}}
	case protocol.RemoveVip:

	case protocol.UseItem:
		return w.useItem(c)
	case protocol.UpContainer:
		if w.containers[c.ContainerID] != "bag" {
			return []protocol.Event{failure("Sorry, not possible.")}
		}
		return []protocol.Event{w.openBackpack(c.ContainerID)}
	case protocol.CloseContainerRequest:
		if _, ok := w.containers[c.ContainerID]; !ok {
			return nil
		}
		delete(w.containers, c.ContainerID)
		return []protocol.Event{protocol.CloseContainer{ContainerID: c.ContainerID}}

	case protocol.PingRequest:
		return []protocol.Event{protocol.PingBack{ElapsedMs: w.latencyMs}}
	default:
		return []protocol.Event{failure("Sorry, not possible.")}
	}
	return nil
}

func (w *fakeWorld) say(c protocol.Say) []protocol.Event {
	switch c.Mode {
	case protocol.MessagePrivateTo:
		return []protocol.Event{failure("A player with this name is not online.")}
	case protocol.MessageChannel:
		if _, ok := w.channels[c.ChannelID]; !ok {
			return []protocol.Event{failure("You are not in this channel.")}
		}
	}
	return []protocol.Event{protocol.Talk{
		Name:      w.character,
		Level:     1,
		Mode:      c.Mode,
		Text:      c.Message,
		ChannelID: c.ChannelID,
	}}
}

func (w *fakeWorld) channelList() []protocol.Channel {
	out := make([]protocol.Channel, 0, len(w.channels))
	for id, name := range w.channels {
		out = append(out, protocol.Channel{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// useItem opens the equipped backpack, or the bag in its first slot.
func (w *fakeWorld) useItem(c protocol.UseItem) []protocol.Event {
	equipped := protocol.Position{X: 0xFFFF, Y: backpackSlot, Z: 0}
	switch {
	case c.Position == equipped && c.ItemID == backpackID:
		return []protocol.Event{w.openBackpack(c.Index)}
	case c.ItemID == bagID && c.Position.X == 0xFFFF && c.Position.Y&0x40 != 0:
		if w.containers[c.Position.Y&^0x40] != "backpack" {
			return []protocol.Event{failure("Sorry, not possible.")}
		}
		w.containers[c.Index] = "bag"
		return []protocol.Event{protocol.OpenContainer{
			ContainerID: c.Index,
			Item:        protocol.Item{ID: bagID},
			Name:        "bag",
			Capacity:    8,
			HasParent:   true,
			Items:       []protocol.Item{{ID: ropeID}},
		}}
	}
	return []protocol.Event{failure("You cannot use this object.")}
}

func (w *fakeWorld) openBackpack(id int) protocol.Event {
	w.containers[id] = "backpack"
	return protocol.OpenContainer{
		ContainerID: id,
		Item:        protocol.Item{ID: backpackID},
		Name:        "backpack",
		Capacity:    20,
		Items:       []protocol.Item{{ID: bagID}, {ID: goldID, CountOrSubType: 100}},
	}
}

func failure(text string) protocol.Event {
	return protocol.TextMessage{Mode: protocol.MessageFailure, Text: text}
}
