package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/otsession/internal/protocol"
)

func gatedIntents() map[string]func(g *Game) {
	bag := protocol.Thing{ID: 1988, Position: protocol.Position{X: 100, Y: 100, Z: 7}}
	return map[string]func(g *Game){
		"walk":            func(g *Game) { g.Walk(protocol.North) },
		"force walk":      func(g *Game) { g.ForceWalk(protocol.North) },
		"auto walk":       func(g *Game) { g.AutoWalk([]protocol.Direction{protocol.North}) },
		"turn":            func(g *Game) { g.Turn(protocol.East) },
		"stop":            func(g *Game) { g.Stop() },
		"look":            func(g *Game) { g.Look(bag) },
		"move":            func(g *Game) { g.Move(bag, protocol.Position{X: 101, Y: 100, Z: 7}, 1) },
		"use":             func(g *Game) { g.Use(bag) },
		"open":            func(g *Game) { g.Open(bag, nil) },
		"attack":          func(g *Game) { g.SetAttackTarget(7) },
		"follow":          func(g *Game) { g.SetFollowTarget(7) },
		"cancel both":     func(g *Game) { g.CancelAttackAndFollow() },
		"talk":            func(g *Game) { g.Talk("hi") },
		"request channel": func(g *Game) { g.RequestChannels() },
		"party invite":    func(g *Game) { g.PartyInvite(7) },
		"add vip":         func(g *Game) { g.AddVip("Bubble") },
		"accept trade":    func(g *Game) { g.AcceptTrade() },
		"quest log":       func(g *Game) { g.RequestQuestLog() },
		"mount":           func(g *Game) { g.Mount(true) },
		"fight mode":      func(g *Game) { g.SetFightMode(protocol.FightOffensive) },
	}
}

func TestIntents_DroppedWhileLoggingIn(t *testing.T) {
	for name, intent := range gatedIntents() {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, 860)
			tr := h.login(t)

			intent(h.g)

			assert.Empty(t, tr.sent)
		})
	}
}

func TestIntents_DroppedWhenDead(t *testing.T) {
	for name, intent := range gatedIntents() {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, 860)
			tr := h.startGame(t)
			h.g.HandleEvent(protocol.Death{})

			intent(h.g)

			assert.Empty(t, tr.sent)
		})
	}
}

func TestIntents_DroppedWhenTransportDisconnected(t *testing.T) {
	for name, intent := range gatedIntents() {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, 860)
			tr := h.startGame(t)
			tr.connected = false

			intent(h.g)

			assert.Empty(t, tr.sent)
		})
	}
}

func TestIntents_SentWhenActive(t *testing.T) {
	for name, intent := range gatedIntents() {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, 860)
			tr := h.startGame(t)

			intent(h.g)

			assert.NotEmpty(t, tr.sent)
		})
	}
}

func TestWalk_NotifiesAndSends(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)

	h.g.Walk(protocol.North)

	assert.Equal(t, []protocol.Command{protocol.Walk{Direction: protocol.North}}, tr.sent)
	assert.Equal(t, []string{"walk:north", "force_walk:north"}, h.sink.events)
	dir, pre := h.g.LocalPlayer().PreWalking()
	assert.True(t, pre)
	assert.Equal(t, protocol.North, dir)
}

func TestWalk_CancelsFollow(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	h.g.SetFollowTarget(5)

	h.g.Walk(protocol.South)

	assert.False(t, h.g.IsFollowing())
	assert.Equal(t, []protocol.Command{
		protocol.Follow{CreatureID: 5, Seq: 1},
		protocol.Follow{CreatureID: 0, Seq: 2},
		protocol.Walk{Direction: protocol.South},
	}, tr.sent)
}

func TestWalk_WhileAutoWalkingStopsInstead(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	h.g.AutoWalk([]protocol.Direction{protocol.North})
	tr.sent = nil

	h.g.Walk(protocol.East)

	assert.Equal(t, []protocol.Command{protocol.Stop{}}, tr.sent)
}

func TestForceWalk_InvalidDirectionNotSent(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)

	h.g.ForceWalk(protocol.InvalidDirection)

	assert.Empty(t, tr.sent)
}

func TestAutoWalk_PathLength(t *testing.T) {
	path := func(n int) []protocol.Direction {
		p := make([]protocol.Direction, n)
		for i := range p {
			p[i] = protocol.Direction(i % 4)
		}
		return p
	}

	t.Run("empty", func(t *testing.T) {
		h := newHarness(t, 860)
		tr := h.startGame(t)
		h.g.AutoWalk(nil)
		assert.Empty(t, tr.sent)
		assert.False(t, h.g.LocalPlayer().IsAutoWalking())
	})

	t.Run("longest allowed", func(t *testing.T) {
		h := newHarness(t, 860)
		tr := h.startGame(t)
		h.g.AutoWalk(path(MaxAutoWalkSteps))
		require.Len(t, tr.sent, 1)
		assert.Len(t, tr.sent[0].(protocol.AutoWalk).Path, MaxAutoWalkSteps)
		assert.Equal(t, []string{"auto_walk:127"}, h.sink.events)
		assert.True(t, h.g.LocalPlayer().IsAutoWalking())
	})

	t.Run("too long", func(t *testing.T) {
		h := newHarness(t, 860)
		tr := h.startGame(t)
		h.g.AutoWalk(path(MaxAutoWalkSteps + 1))
		assert.Empty(t, tr.sent)
		assert.Equal(t, 1, h.logs.FilterMessage("auto walk path too long").Len())
	})
}

func TestAutoWalk_PathIsCopied(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	p := []protocol.Direction{protocol.North, protocol.East}

	h.g.AutoWalk(p)
	p[0] = protocol.West

	assert.Equal(t, protocol.North, tr.sent[0].(protocol.AutoWalk).Path[0])
}

func TestTurn_OnlyCardinal(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)

	h.g.Turn(protocol.NorthEast)
	h.g.Turn(protocol.West)

	assert.Equal(t, []protocol.Command{protocol.Turn{Direction: protocol.West}}, tr.sent)
}

func TestMove(t *testing.T) {
	from := protocol.Position{X: 100, Y: 100, Z: 7}
	to := protocol.Position{X: 101, Y: 100, Z: 7}

	tests := []struct {
		name  string
		thing protocol.Thing
		to    protocol.Position
		count int
		want  []protocol.Command
	}{
		{
			name:  "item",
			thing: protocol.Thing{ID: 2148, Position: from, StackPos: 1},
			to:    to,
			count: 5,
			want:  []protocol.Command{protocol.Move{From: from, ThingID: 2148, StackPos: 1, To: to, Count: 5}},
		},
		{
			name:  "creature",
			thing: protocol.Thing{ID: 7, Position: from, StackPos: 2, Creature: true},
			to:    to,
			count: 1,
			want:  []protocol.Command{protocol.Move{From: from, ThingID: protocol.CreatureThingID, StackPos: 2, To: to, Count: 1}},
		},
		{
			name:  "zero count moves one",
			thing: protocol.Thing{ID: 2148, Position: from},
			to:    to,
			count: 0,
			want:  []protocol.Command{protocol.Move{From: from, ThingID: 2148, To: to, Count: 1}},
		},
		{
			name:  "same position",
			thing: protocol.Thing{ID: 2148, Position: from},
			to:    from,
			count: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 860)
			tr := h.startGame(t)

			h.g.Move(tt.thing, tt.to, tt.count)

			assert.Equal(t, tt.want, tr.sent)
		})
	}
}

func TestMoveToParentContainer(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	slot := protocol.ContainerSlotPosition(1, 3)

	h.g.MoveToParentContainer(protocol.Thing{ID: 2148, Position: slot, StackPos: 3}, 2)
	h.g.MoveToParentContainer(protocol.Thing{ID: 2148, Position: slot, StackPos: 3}, 0)

	require.Len(t, tr.sent, 1)
	mv := tr.sent[0].(protocol.Move)
	assert.Equal(t, protocol.Position{X: slot.X, Y: slot.Y, Z: ParentContainerZ}, mv.To)
	assert.Equal(t, 2, mv.Count)
}

func TestUse_InventoryPositionAndFreeIndex(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	h.g.HandleEvent(protocol.OpenContainer{ContainerID: 0, Name: "bag"})

	h.g.Use(protocol.Thing{ID: 1988, Position: protocol.InvalidPosition})

	assert.Equal(t, []protocol.Command{
		protocol.UseItem{Position: protocol.InventoryPosition, ItemID: 1988, Index: 1},
	}, tr.sent)
}

func TestUseInventoryItem_RejectsInvalidItemIDs(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)

	h.g.UseInventoryItem(protocol.MinItemID - 1)
	h.g.UseInventoryItemWith(0, protocol.Thing{ID: 7, Creature: true})
	h.g.UseInventoryItem(2273)

	assert.Equal(t, []protocol.Command{
		protocol.UseItem{Position: protocol.InventoryPosition, ItemID: 2273},
	}, tr.sent)
}

func TestUseWith(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	runeItem := protocol.Thing{ID: 2268, Position: protocol.ContainerSlotPosition(0, 1), StackPos: 1}
	ground := protocol.Position{X: 100, Y: 100, Z: 7}

	h.g.UseWith(runeItem, protocol.Thing{ID: 7, Position: ground, Creature: true})
	h.g.UseWith(runeItem, protocol.Thing{ID: 1285, Position: ground, StackPos: 2})

	assert.Equal(t, []protocol.Command{
		protocol.UseOnCreature{Position: runeItem.Position, ItemID: 2268, StackPos: 1, CreatureID: 7},
		protocol.UseItemWith{From: runeItem.Position, ItemID: 2268, FromStackPos: 1, To: ground, ToThingID: 1285, ToStackPos: 2},
	}, tr.sent)
}

func TestOpen_IntoPreviousContainer(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	h.g.HandleEvent(protocol.OpenContainer{ContainerID: 0, Name: "bag"})
	h.g.HandleEvent(protocol.OpenContainer{ContainerID: 1, Name: "backpack"})
	previous, ok := h.g.Containers().Get(1)
	require.True(t, ok)
	item := protocol.Thing{ID: 1987, Position: protocol.ContainerSlotPosition(1, 0)}

	h.g.Open(item, previous)
	h.g.Open(item, nil)

	require.Len(t, tr.sent, 2)
	assert.Equal(t, 1, tr.sent[0].(protocol.UseItem).Index)
	assert.Equal(t, 2, tr.sent[1].(protocol.UseItem).Index)
}

func TestContainerRequests_RequireOpenContainer(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)

	h.g.CloseContainer(4)
	h.g.OpenParent(4)
	assert.Empty(t, tr.sent)
	assert.Equal(t, 2, h.logs.FilterMessage("container not found").Len())

	h.g.HandleEvent(protocol.OpenContainer{ContainerID: 4, Name: "bag", HasParent: true})
	h.g.OpenParent(4)
	h.g.CloseContainer(4)

	assert.Equal(t, []protocol.Command{
		protocol.UpContainer{ContainerID: 4},
		protocol.CloseContainerRequest{ContainerID: 4},
	}, tr.sent)
}

func TestTalk_EmptyDropped(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)

	h.g.Talk("")
	h.g.TalkPrivate(protocol.MessagePrivateTo, "", "hi")
	h.g.TalkPrivate(protocol.MessagePrivateTo, "Bubble", "hi")

	assert.Equal(t, []protocol.Command{
		protocol.Say{Mode: protocol.MessagePrivateTo, Receiver: "Bubble", Message: "hi"},
	}, tr.sent)
}

func TestRequestTrade_NeedsCreature(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	item := protocol.Thing{ID: 2160, Position: protocol.InventorySlotPosition(5)}

	h.g.RequestTrade(item, 0)
	h.g.RequestTrade(item, 7)

	assert.Equal(t, []protocol.Command{
		protocol.RequestTrade{Position: item.Position, ItemID: 2160, CreatureID: 7},
	}, tr.sent)
}

func TestDebugReport_NotGated(t *testing.T) {
	h := newHarness(t, 860)
	h.g.DebugReport("a", "b", "c", "d")

	tr := h.login(t)
	h.g.DebugReport("a", "b", "c", "d")

	assert.Equal(t, []protocol.Command{protocol.DebugReport{A: "a", B: "b", C: "c", D: "d"}}, tr.sent)
}

func TestSend_FailureLogged(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	tr.sendErr = assert.AnError

	h.g.Talk("hi")

	entries := h.logs.FilterMessage("sending command").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "talk", entries[0].ContextMap()["command"])
}
