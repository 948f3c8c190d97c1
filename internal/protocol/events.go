package protocol

// Event is a decoded inbound message handed to the session by the codec layer.
type Event interface {
	EventName() string
}

// Receiver accepts inbound traffic from a transport. Implementations must be safe
// to call from the transport's own goroutines.
type Receiver interface {
	// Deliver hands over one decoded event.
	Deliver(ev Event)
	// Fail reports that the transport is unusable. io.EOF (possibly wrapped)
	// marks a clean end of stream.
	Fail(err error)
}

type LoginError struct {
	Message string `json:"message"`
}

type LoginAdvice struct {
	Message string `json:"message"`
}

type LoginWait struct {
	Message string `json:"message"`
	Seconds int    `json:"seconds"`
}

// PlayerLogin carries the local player's identity, sent before GameStart.
type PlayerLogin struct {
	CreatureID    uint32 `json:"creature_id"`
	ServerBeat    int    `json:"server_beat"`
	CanReportBugs bool   `json:"can_report_bugs"`
}

type GameStart struct{}

type GameEnd struct{}

type Death struct {
	Penalty int `json:"penalty"`
}

type GMActions struct {
	Actions []uint8 `json:"actions"`
}

type Ping struct{}

type PingBack struct {
	ElapsedMs int `json:"elapsed_ms"`
}

type TextMessage struct {
	Mode MessageMode `json:"mode"`
	Text string      `json:"text"`
}

type Talk struct {
	Name      string      `json:"name"`
	Level     int         `json:"level"`
	Mode      MessageMode `json:"mode"`
	Text      string      `json:"text"`
	ChannelID int         `json:"channel_id"`
	Position  Position    `json:"position"`
}

type CreatureAppear struct {
	CreatureID uint32 `json:"creature_id"`
	Name       string `json:"name"`
}

type CreatureDisappear struct {
	CreatureID uint32 `json:"creature_id"`
}

type OpenContainer struct {
	ContainerID int    `json:"container_id"`
	Item        Item   `json:"item"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	HasParent   bool   `json:"has_parent"`
	Items       []Item `json:"items"`
}

type CloseContainer struct {
	ContainerID int `json:"container_id"`
}

type ContainerAddItem struct {
	ContainerID int  `json:"container_id"`
	Item        Item `json:"item"`
}

type ContainerUpdateItem struct {
	ContainerID int  `json:"container_id"`
	Slot        int  `json:"slot"`
	Item        Item `json:"item"`
}

type ContainerRemoveItem struct {
	ContainerID int `json:"container_id"`
	Slot        int `json:"slot"`
}

// InventoryChange sets or clears (nil Item) an equipment slot.
type InventoryChange struct {
	Slot int   `json:"slot"`
	Item *Item `json:"item,omitempty"`
}

type ChannelList struct {
	Channels []Channel `json:"channels"`
}

type OpenChannel struct {
	ChannelID int    `json:"channel_id"`
	Name      string `json:"name"`
}

type OpenPrivateChannel struct {
	Name string `json:"name"`
}

type OpenOwnPrivateChannel struct {
	ChannelID int    `json:"channel_id"`
	Name      string `json:"name"`
}

type CloseChannel struct {
	ChannelID int `json:"channel_id"`
}

type RuleViolationChannel struct {
	ChannelID int `json:"channel_id"`
}

type RuleViolationRemove struct {
	Name string `json:"name"`
}

type RuleViolationCancel struct {
	Name string `json:"name"`
}

type RuleViolationLock struct{}

type VipAdd struct {
	ID     uint32 `json:"id"`
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

type VipStateChange struct {
	ID     uint32 `json:"id"`
	Online bool   `json:"online"`
}

type TutorialHint struct {
	ID int `json:"id"`
}

type AutomapFlag struct {
	Position Position `json:"position"`
	Icon     int      `json:"icon"`
	Message  string   `json:"message"`
}

type OutfitWindow struct {
	Current Outfit         `json:"current"`
	Outfits []OutfitOption `json:"outfits"`
	Mounts  []MountOption  `json:"mounts"`
}

type OpenNpcTrade struct {
	Items []TradeItem `json:"items"`
}

type PlayerGoods struct {
	Money int    `json:"money"`
	Goods []Good `json:"goods"`
}

type CloseNpcTrade struct{}

type OwnTrade struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

type CounterTrade struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

type CloseTrade struct{}

type EditText struct {
	ID        uint32 `json:"id"`
	ItemID    int    `json:"item_id"`
	MaxLength int    `json:"max_length"`
	Text      string `json:"text"`
	Writer    string `json:"writer"`
	Date      string `json:"date"`
}

type EditList struct {
	ID     uint32 `json:"id"`
	DoorID int    `json:"door_id"`
	Text   string `json:"text"`
}

type QuestLog struct {
	Quests []Quest `json:"quests"`
}

type QuestLine struct {
	QuestID  int            `json:"quest_id"`
	Missions []QuestMission `json:"missions"`
}

// AttackCancel cancels the attack acknowledged with Seq. Seq 0 cancels any attack.
type AttackCancel struct {
	Seq uint32 `json:"seq"`
}

type WalkCancel struct {
	Direction Direction `json:"direction"`
}

func (LoginError) EventName() string            { return "login_error" }
func (LoginAdvice) EventName() string           { return "login_advice" }
func (LoginWait) EventName() string             { return "login_wait" }
func (PlayerLogin) EventName() string           { return "player_login" }
func (GameStart) EventName() string             { return "game_start" }
func (GameEnd) EventName() string               { return "game_end" }
func (Death) EventName() string                 { return "death" }
func (GMActions) EventName() string             { return "gm_actions" }
func (Ping) EventName() string                  { return "ping" }
func (PingBack) EventName() string              { return "ping_back" }
func (TextMessage) EventName() string           { return "text_message" }
func (Talk) EventName() string                  { return "talk" }
func (CreatureAppear) EventName() string        { return "creature_appear" }
func (CreatureDisappear) EventName() string     { return "creature_disappear" }
func (OpenContainer) EventName() string         { return "open_container" }
func (CloseContainer) EventName() string        { return "close_container" }
func (ContainerAddItem) EventName() string      { return "container_add_item" }
func (ContainerUpdateItem) EventName() string   { return "container_update_item" }
func (ContainerRemoveItem) EventName() string   { return "container_remove_item" }
func (InventoryChange) EventName() string       { return "inventory_change" }
func (ChannelList) EventName() string           { return "channel_list" }
func (OpenChannel) EventName() string           { return "open_channel" }
func (OpenPrivateChannel) EventName() string    { return "open_private_channel" }
func (OpenOwnPrivateChannel) EventName() string { return "open_own_private_channel" }
func (CloseChannel) EventName() string          { return "close_channel" }
func (RuleViolationChannel) EventName() string  { return "rule_violation_channel" }
func (RuleViolationRemove) EventName() string   { return "rule_violation_remove" }
func (RuleViolationCancel) EventName() string   { return "rule_violation_cancel" }
func (RuleViolationLock) EventName() string     { return "rule_violation_lock" }
func (VipAdd) EventName() string                { return "vip_add" }
func (VipStateChange) EventName() string        { return "vip_state_change" }
func (TutorialHint) EventName() string          { return "tutorial_hint" }
func (AutomapFlag) EventName() string           { return "automap_flag" }
func (OutfitWindow) EventName() string          { return "outfit_window" }
func (OpenNpcTrade) EventName() string          { return "open_npc_trade" }
func (PlayerGoods) EventName() string           { return "player_goods" }
func (CloseNpcTrade) EventName() string         { return "close_npc_trade" }
func (OwnTrade) EventName() string              { return "own_trade" }
func (CounterTrade) EventName() string          { return "counter_trade" }
func (CloseTrade) EventName() string            { return "close_trade" }
func (EditText) EventName() string              { return "edit_text" }
func (EditList) EventName() string              { return "edit_list" }
func (QuestLog) EventName() string              { return "quest_log" }
func (QuestLine) EventName() string             { return "quest_line" }
func (AttackCancel) EventName() string          { return "attack_cancel" }
func (WalkCancel) EventName() string            { return "walk_cancel" }

var eventFactories = map[string]func() Event{}

func registerEvent(f func() Event) {
	eventFactories[f().EventName()] = f
}

func init() {
	for _, f := range []func() Event{
		func() Event { return &LoginError{} },
		func() Event { return &LoginAdvice{} },
		func() Event { return &LoginWait{} },
		func() Event { return &PlayerLogin{} },
		func() Event { return &GameStart{} },
		func() Event { return &GameEnd{} },
		func() Event { return &Death{} },
		func() Event { return &GMActions{} },
		func() Event { return &Ping{} },
		func() Event { return &PingBack{} },
		func() Event { return &TextMessage{} },
		func() Event { return &Talk{} },
		func() Event { return &CreatureAppear{} },
		func() Event { return &CreatureDisappear{} },
		func() Event { return &OpenContainer{} },
		func() Event { return &CloseContainer{} },
		func() Event { return &ContainerAddItem{} },
		func() Event { return &ContainerUpdateItem{} },
		func() Event { return &ContainerRemoveItem{} },
		func() Event { return &InventoryChange{} },
		func() Event { return &ChannelList{} },
		func() Event { return &OpenChannel{} },
		func() Event { return &OpenPrivateChannel{} },
		func() Event { return &OpenOwnPrivateChannel{} },
		func() Event { return &CloseChannel{} },
		func() Event { return &RuleViolationChannel{} },
		func() Event { return &RuleViolationRemove{} },
		func() Event { return &RuleViolationCancel{} },
		func() Event { return &RuleViolationLock{} },
		func() Event { return &VipAdd{} },
		func() Event { return &VipStateChange{} },
		func() Event { return &TutorialHint{} },
		func() Event { return &AutomapFlag{} },
		func() Event { return &OutfitWindow{} },
		func() Event { return &OpenNpcTrade{} },
		func() Event { return &PlayerGoods{} },
		func() Event { return &CloseNpcTrade{} },
		func() Event { return &OwnTrade{} },
		func() Event { return &CounterTrade{} },
		func() Event { return &CloseTrade{} },
		func() Event { return &EditText{} },
		func() Event { return &EditList{} },
		func() Event { return &QuestLog{} },
		func() Event { return &QuestLine{} },
		func() Event { return &AttackCancel{} },
		func() Event { return &WalkCancel{} },
	} {
		registerEvent(f)
	}
}
