package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/otsession/internal/game/world"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

func TestPlayerLogin_RegistersLocalPlayer(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.login(t)

	tr.r.Deliver(protocol.PlayerLogin{CreatureID: 42, ServerBeat: 100, CanReportBugs: true})

	require.NotNil(t, h.g.LocalPlayer())
	assert.Equal(t, world.CreatureID(42), h.g.LocalPlayer().ID)
	c, ok := h.g.Creatures().Get(42)
	require.True(t, ok)
	assert.Equal(t, "knight", c.Name)
	assert.Equal(t, 100, h.g.State().ServerBeat)
	assert.True(t, h.g.State().CanReportBugs)
}

func TestPlayerLogin_ZeroBeatKeepsDefault(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.login(t)

	tr.r.Deliver(protocol.PlayerLogin{CreatureID: 42})

	assert.Equal(t, DefaultServerBeat, h.g.State().ServerBeat)
}

func TestContainerReopen_NotifiesOpenThenClose(t *testing.T) {
	h := newHarness(t, 860)
	h.startGame(t)

	h.g.HandleEvent(protocol.OpenContainer{ContainerID: 0, Name: "bag", Capacity: 8})
	h.g.HandleEvent(protocol.OpenContainer{ContainerID: 0, Name: "backpack", Capacity: 20})

	assert.Equal(t, []string{
		"container_open:0:bag",
		"container_open:0:backpack:prev=bag",
		"container_close:0:bag",
	}, h.sink.events)
	c, ok := h.g.Containers().Get(0)
	require.True(t, ok)
	assert.Equal(t, "backpack", c.Name())
}

func TestContainerOpen_NegativeIDIsDropped(t *testing.T) {
	h := newHarness(t, 860)
	h.startGame(t)

	h.g.HandleEvent(protocol.OpenContainer{ContainerID: 0, Name: "bag"})
	h.g.HandleEvent(protocol.OpenContainer{ContainerID: -1, Name: "backpack"})
	h.g.HandleEvent(protocol.OpenContainer{ContainerID: -7, Name: "chest"})

	assert.Equal(t, []string{"container_open:0:bag"}, h.sink.events)
	assert.Equal(t, 1, h.g.Containers().Len())
	entries := h.logs.FilterMessage("dropping container with invalid id").All()
	require.Len(t, entries, 2)
	assert.EqualValues(t, -1, entries[0].ContextMap()["container_id"])
	assert.Equal(t, PhaseActive, h.g.Phase())
}

func TestContainerClose_UnknownIsLoggedAndDropped(t *testing.T) {
	h := newHarness(t, 860)
	h.startGame(t)

	h.g.HandleEvent(protocol.CloseContainer{ContainerID: 3})
	h.g.HandleEvent(protocol.ContainerAddItem{ContainerID: 4, Item: protocol.Item{ID: 2148}})

	assert.Empty(t, h.sink.events)
	entries := h.logs.FilterMessage("container not found").All()
	require.Len(t, entries, 2)
	assert.EqualValues(t, 3, entries[0].ContextMap()["container_id"])
	assert.Equal(t, PhaseActive, h.g.Phase(), "a missing container does not end the session")
}

func TestContainerItems_Flow(t *testing.T) {
	h := newHarness(t, 860)
	h.startGame(t)
	h.g.HandleEvent(protocol.OpenContainer{ContainerID: 2, Name: "bag", Capacity: 8, Items: []protocol.Item{{ID: 2148, CountOrSubType: 5}}})

	h.g.HandleEvent(protocol.ContainerAddItem{ContainerID: 2, Item: protocol.Item{ID: 2160}})
	h.g.HandleEvent(protocol.ContainerUpdateItem{ContainerID: 2, Slot: 1, Item: protocol.Item{ID: 2148, CountOrSubType: 7}})
	h.g.HandleEvent(protocol.ContainerRemoveItem{ContainerID: 2, Slot: 0})

	c, ok := h.g.Containers().Get(2)
	require.True(t, ok)
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].CountOrSubType)
	assert.Equal(t, protocol.ContainerSlotPosition(2, 0), items[0].Position)
}

func TestInventoryChange_PlacesItemInSlot(t *testing.T) {
	h := newHarness(t, 860)
	h.startGame(t)

	h.g.HandleEvent(protocol.InventoryChange{Slot: 3, Item: &protocol.Item{ID: 2463}})

	it, ok := h.g.LocalPlayer().InventoryItem(3)
	require.True(t, ok)
	assert.Equal(t, protocol.InventorySlotPosition(3), it.Position)
	assert.Equal(t, []string{"inventory:3"}, h.sink.events)

	h.g.HandleEvent(protocol.InventoryChange{Slot: 3})
	_, ok = h.g.LocalPlayer().InventoryItem(3)
	assert.False(t, ok)
}

func TestVipStateChange_CreatesUnknownEntry(t *testing.T) {
	h := newHarness(t, 860)
	h.startGame(t)

	h.g.HandleEvent(protocol.VipAdd{ID: 1, Name: "Bubble", Online: false})
	h.g.HandleEvent(protocol.VipStateChange{ID: 1, Online: true})
	h.g.HandleEvent(protocol.VipStateChange{ID: 2, Online: true})

	vips := h.g.State().Vips
	assert.Equal(t, VipEntry{Name: "Bubble", Online: true}, vips[1])
	assert.Equal(t, VipEntry{Online: true}, vips[2])
	assert.Equal(t, 2, h.sink.count("vip_state:1:true")+h.sink.count("vip_state:2:true"))
}

func TestOutfitWindow_MountDependsOnProtocol(t *testing.T) {
	current := protocol.Outfit{ID: 128, Head: 78, Mount: 368}

	t.Run("without mounts", func(t *testing.T) {
		h := newHarness(t, 860)
		h.startGame(t)

		h.g.HandleEvent(protocol.OutfitWindow{Current: current})

		assert.Nil(t, h.sink.lastMount)
		assert.Zero(t, h.sink.lastOutfit.Mount)
		assert.Equal(t, 78, h.sink.lastOutfit.Head)
	})

	t.Run("with mounts", func(t *testing.T) {
		h := newHarness(t, 870)
		h.startGame(t)

		h.g.HandleEvent(protocol.OutfitWindow{Current: current})

		require.NotNil(t, h.sink.lastMount)
		assert.Equal(t, 368, h.sink.lastMount.ID)
		assert.Zero(t, h.sink.lastOutfit.Mount)
	})
}

func TestDeath_MarksDeadAndGatesIntents(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)

	h.g.HandleEvent(protocol.Death{Penalty: 10})
	h.g.Walk(protocol.North)
	h.g.Talk("help")

	assert.True(t, h.g.IsDead())
	assert.Equal(t, []string{"death:10"}, h.sink.events)
	assert.Empty(t, tr.sent)
}

func TestWalkCancel(t *testing.T) {
	h := newHarness(t, 860)
	tr := h.startGame(t)
	h.g.AutoWalk([]protocol.Direction{protocol.North, protocol.East})
	tr.sent = nil
	h.sink.events = nil

	h.g.HandleEvent(protocol.WalkCancel{Direction: protocol.West})

	assert.Equal(t, []protocol.Command{protocol.Stop{}}, tr.sent)
	assert.Equal(t, []string{"walk_cancel:west"}, h.sink.events)
	assert.False(t, h.g.LocalPlayer().IsAutoWalking())

	tr.sent = nil
	h.g.HandleEvent(protocol.WalkCancel{Direction: protocol.West})
	assert.Empty(t, tr.sent, "no stop without an auto-walk")
}

func TestPingBack_RecordsRoundTrip(t *testing.T) {
	h := newHarness(t, 860)
	h.startGame(t)
	assert.Equal(t, -1, h.g.PingRoundTrip())

	h.g.HandleEvent(protocol.PingBack{ElapsedMs: 37})

	assert.Equal(t, 37, h.g.PingRoundTrip())
	assert.Equal(t, []string{"ping_back:37"}, h.sink.events)
}

func TestCreatureAppear_FormatsName(t *testing.T) {
	h := newHarness(t, 860)
	h.startGame(t)

	h.g.HandleEvent(protocol.CreatureAppear{CreatureID: 7, Name: "cave rat"})
	c, ok := h.g.Creatures().Get(7)
	require.True(t, ok)
	assert.Equal(t, "Cave rat", c.Name)

	h.g.HandleEvent(protocol.CreatureDisappear{CreatureID: 7})
	_, ok = h.g.Creatures().Get(7)
	assert.False(t, ok)
}

func TestGMActions_Copied(t *testing.T) {
	h := newHarness(t, 860)
	h.startGame(t)
	actions := []uint8{1, 0, 1}

	h.g.HandleEvent(protocol.GMActions{Actions: actions})
	actions[0] = 9

	assert.Equal(t, []uint8{1, 0, 1}, h.g.State().GMActions)
}

type unknownEvent struct{}

func (unknownEvent) EventName() string { return "unknown" }

func TestHandleEvent_UnknownIsLogged(t *testing.T) {
	h := newHarness(t, 860)

	h.g.HandleEvent(unknownEvent{})

	entries := h.logs.FilterMessage("unhandled event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unknown", entries[0].ContextMap()["event"])
}
