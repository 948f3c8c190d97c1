package protocol

// Command is a structured outbound message handed to the codec layer.
type Command interface {
	CommandName() string
}

// Credentials open a game session on a world.
type Credentials struct {
	Account       string `json:"account"`
	Password      string `json:"password"`
	WorldName     string `json:"world_name"`
	WorldHost     string `json:"world_host"`
	WorldPort     int    `json:"world_port"`
	CharacterName string `json:"character_name"`
	// ProtocolVersion lets the gateway pick the byte-level codec.
	ProtocolVersion int `json:"protocol_version"`
}

type Logout struct{}

// Walk is a single step; the codec maps each Direction to its own opcode.
type Walk struct {
	Direction Direction `json:"direction"`
}

type AutoWalk struct {
	Path []Direction `json:"path"`
}

type Turn struct {
	Direction Direction `json:"direction"`
}

type Stop struct{}

type LookAt struct {
	Position Position `json:"position"`
	ThingID  uint32   `json:"thing_id"`
	StackPos int      `json:"stackpos"`
}

type Move struct {
	From     Position `json:"from"`
	ThingID  uint32   `json:"thing_id"`
	StackPos int      `json:"stackpos"`
	To       Position `json:"to"`
	Count    int      `json:"count"`
}

type RotateItem struct {
	Position Position `json:"position"`
	ThingID  uint32   `json:"thing_id"`
	StackPos int      `json:"stackpos"`
}

// UseItem uses a thing; Index is the container id to open it into.
type UseItem struct {
	Position Position `json:"position"`
	ItemID   uint32   `json:"item_id"`
	StackPos int      `json:"stackpos"`
	Index    int      `json:"index"`
}

type UseItemWith struct {
	From         Position `json:"from"`
	ItemID       uint32   `json:"item_id"`
	FromStackPos int      `json:"from_stackpos"`
	To           Position `json:"to"`
	ToThingID    uint32   `json:"to_thing_id"`
	ToStackPos   int      `json:"to_stackpos"`
}

type UseOnCreature struct {
	Position   Position `json:"position"`
	ItemID     uint32   `json:"item_id"`
	StackPos   int      `json:"stackpos"`
	CreatureID uint32   `json:"creature_id"`
}

type UpContainer struct {
	ContainerID int `json:"container_id"`
}

type CloseContainerRequest struct {
	ContainerID int `json:"container_id"`
}

type RefreshContainer struct{}

type Attack struct {
	CreatureID uint32 `json:"creature_id"`
	Seq        uint32 `json:"seq"`
}

type Follow struct {
	CreatureID uint32 `json:"creature_id"`
	Seq        uint32 `json:"seq"`
}

type CancelAttackAndFollow struct{}

type Say struct {
	Mode      MessageMode `json:"mode"`
	ChannelID int         `json:"channel_id"`
	Receiver  string      `json:"receiver,omitempty"`
	Message   string      `json:"message"`
}

type OpenPrivateChannelRequest struct {
	Receiver string `json:"receiver"`
}

type RequestChannels struct{}

type JoinChannel struct {
	ChannelID int `json:"channel_id"`
}

type LeaveChannel struct {
	ChannelID int `json:"channel_id"`
}

type CloseNpcChannel struct{}

type OpenOwnChannel struct{}

type InviteToOwnChannel struct {
	Name string `json:"name"`
}

type ExcludeFromOwnChannel struct {
	Name string `json:"name"`
}

type PartyInvite struct {
	CreatureID uint32 `json:"creature_id"`
}

type PartyJoin struct {
	CreatureID uint32 `json:"creature_id"`
}

type PartyRevokeInvitation struct {
	CreatureID uint32 `json:"creature_id"`
}

type PartyPassLeadership struct {
	CreatureID uint32 `json:"creature_id"`
}

type PartyLeave struct{}

type PartyShareExperience struct {
	Active bool `json:"active"`
}

type RequestOutfit struct{}

type ChangeOutfit struct {
	Outfit Outfit `json:"outfit"`
}

type AddVip struct {
	Name string `json:"name"`
}

type RemoveVip struct {
	ID uint32 `json:"id"`
}

// ChangeFightModes always carries all three settings; the server never accepts a partial update.
type ChangeFightModes struct {
	FightMode FightMode `json:"fight_mode"`
	ChaseMode ChaseMode `json:"chase_mode"`
	SafeFight bool      `json:"safe_fight"`
}

type InspectNpcTrade struct {
	ItemID int `json:"item_id"`
	Count  int `json:"count"`
}

type BuyItem struct {
	ItemID          int  `json:"item_id"`
	SubType         int  `json:"sub_type"`
	Amount          int  `json:"amount"`
	IgnoreCapacity  bool `json:"ignore_capacity"`
	BuyWithBackpack bool `json:"buy_with_backpack"`
}

type SellItem struct {
	ItemID         int  `json:"item_id"`
	SubType        int  `json:"sub_type"`
	Amount         int  `json:"amount"`
	IgnoreEquipped bool `json:"ignore_equipped"`
}

type CloseNpcTradeRequest struct{}

type RequestTrade struct {
	Position   Position `json:"position"`
	ItemID     uint32   `json:"item_id"`
	StackPos   int      `json:"stackpos"`
	CreatureID uint32   `json:"creature_id"`
}

type InspectTrade struct {
	CounterOffer bool `json:"counter_offer"`
	Index        int  `json:"index"`
}

type AcceptTrade struct{}

type RejectTrade struct{}

type EditTextRequest struct {
	ID   uint32 `json:"id"`
	Text string `json:"text"`
}

type EditListRequest struct {
	ID     uint32 `json:"id"`
	DoorID int    `json:"door_id"`
	Text   string `json:"text"`
}

type BugReport struct {
	Comment string `json:"comment"`
}

type RuleViolationReport struct {
	Target       string `json:"target"`
	Reason       int    `json:"reason"`
	Action       int    `json:"action"`
	Comment      string `json:"comment"`
	Statement    string `json:"statement"`
	StatementID  int    `json:"statement_id"`
	IPBanishment bool   `json:"ip_banishment"`
}

type DebugReport struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
}

type RequestQuestLog struct{}

type RequestQuestLine struct {
	QuestID int `json:"quest_id"`
}

type EquipItem struct {
	ItemID         int `json:"item_id"`
	CountOrSubType int `json:"count"`
}

type MountStatus struct {
	Mounted bool `json:"mounted"`
}

type RequestItemInfo struct {
	ItemID  int `json:"item_id"`
	SubType int `json:"sub_type"`
	Index   int `json:"index"`
}

type PingRequest struct{}

func (Credentials) CommandName() string               { return "login" }
func (Logout) CommandName() string                    { return "logout" }
func (Walk) CommandName() string                      { return "walk" }
func (AutoWalk) CommandName() string                  { return "auto_walk" }
func (Turn) CommandName() string                      { return "turn" }
func (Stop) CommandName() string                      { return "stop" }
func (LookAt) CommandName() string                    { return "look" }
func (Move) CommandName() string                      { return "move" }
func (RotateItem) CommandName() string                { return "rotate_item" }
func (UseItem) CommandName() string                   { return "use_item" }
func (UseItemWith) CommandName() string               { return "use_item_with" }
func (UseOnCreature) CommandName() string             { return "use_on_creature" }
func (UpContainer) CommandName() string               { return "up_container" }
func (CloseContainerRequest) CommandName() string     { return "close_container" }
func (RefreshContainer) CommandName() string          { return "refresh_container" }
func (Attack) CommandName() string                    { return "attack" }
func (Follow) CommandName() string                    { return "follow" }
func (CancelAttackAndFollow) CommandName() string     { return "cancel_attack_and_follow" }
func (Say) CommandName() string                       { return "talk" }
func (OpenPrivateChannelRequest) CommandName() string { return "open_private_channel" }
func (RequestChannels) CommandName() string           { return "request_channels" }
func (JoinChannel) CommandName() string               { return "join_channel" }
func (LeaveChannel) CommandName() string              { return "leave_channel" }
func (CloseNpcChannel) CommandName() string           { return "close_npc_channel" }
func (OpenOwnChannel) CommandName() string            { return "open_own_channel" }
func (InviteToOwnChannel) CommandName() string        { return "invite_to_own_channel" }
func (ExcludeFromOwnChannel) CommandName() string     { return "exclude_from_own_channel" }
func (PartyInvite) CommandName() string               { return "party_invite" }
func (PartyJoin) CommandName() string                 { return "party_join" }
func (PartyRevokeInvitation) CommandName() string     { return "party_revoke_invitation" }
func (PartyPassLeadership) CommandName() string       { return "party_pass_leadership" }
func (PartyLeave) CommandName() string                { return "party_leave" }
func (PartyShareExperience) CommandName() string      { return "party_share_experience" }
func (RequestOutfit) CommandName() string             { return "request_outfit" }
func (ChangeOutfit) CommandName() string              { return "change_outfit" }
func (AddVip) CommandName() string                    { return "add_vip" }
func (RemoveVip) CommandName() string                 { return "remove_vip" }
func (ChangeFightModes) CommandName() string          { return "change_fight_modes" }
func (InspectNpcTrade) CommandName() string           { return "inspect_npc_trade" }
func (BuyItem) CommandName() string                   { return "buy_item" }
func (SellItem) CommandName() string                  { return "sell_item" }
func (CloseNpcTradeRequest) CommandName() string      { return "close_npc_trade" }
func (RequestTrade) CommandName() string              { return "request_trade" }
func (InspectTrade) CommandName() string              { return "inspect_trade" }
func (AcceptTrade) CommandName() string               { return "accept_trade" }
func (RejectTrade) CommandName() string               { return "reject_trade" }
func (EditTextRequest) CommandName() string           { return "edit_text" }
func (EditListRequest) CommandName() string           { return "edit_list" }
func (BugReport) CommandName() string                 { return "bug_report" }
func (RuleViolationReport) CommandName() string       { return "rule_violation" }
func (DebugReport) CommandName() string               { return "debug_report" }
func (RequestQuestLog) CommandName() string           { return "request_quest_log" }
func (RequestQuestLine) CommandName() string          { return "request_quest_line" }
func (EquipItem) CommandName() string                 { return "equip_item" }
func (MountStatus) CommandName() string               { return "mount" }
func (RequestItemInfo) CommandName() string           { return "request_item_info" }
func (PingRequest) CommandName() string               { return "ping" }

var commandFactories = map[string]func() Command{}

func init() {
	for _, f := range []func() Command{
		func() Command { return &Credentials{} },
		func() Command { return &Logout{} },
		func() Command { return &Walk{} },
		func() Command { return &AutoWalk{} },
		func() Command { return &Turn{} },
		func() Command { return &Stop{} },
		func() Command { return &LookAt{} },
		func() Command { return &Move{} },
		func() Command { return &RotateItem{} },
		func() Command { return &UseItem{} },
		func() Command { return &UseItemWith{} },
		func() Command { return &UseOnCreature{} },
		func() Command { return &UpContainer{} },
		func() Command { return &CloseContainerRequest{} },
		func() Command { return &RefreshContainer{} },
		func() Command { return &Attack{} },
		func() Command { return &Follow{} },
		func() Command { return &CancelAttackAndFollow{} },
		func() Command { return &Say{} },
		func() Command { return &OpenPrivateChannelRequest{} },
		func() Command { return &RequestChannels{} },
		func() Command { return &JoinChannel{} },
		func() Command { return &LeaveChannel{} },
		func() Command { return &CloseNpcChannel{} },
		func() Command { return &OpenOwnChannel{} },
		func() Command { return &InviteToOwnChannel{} },
		func() Command { return &ExcludeFromOwnChannel{} },
		func() Command { return &PartyInvite{} },
		func() Command { return &PartyJoin{} },
		func() Command { return &PartyRevokeInvitation{} },
		func() Command { return &PartyPassLeadership{} },
		func() Command { return &PartyLeave{} },
		func() Command { return &PartyShareExperience{} },
		func() Command { return &RequestOutfit{} },
		func() Command { return &ChangeOutfit{} },
		func() Command { return &AddVip{} },
		func() Command { return &RemoveVip{} },
		func() Command { return &ChangeFightModes{} },
		func() Command { return &InspectNpcTrade{} },
		func() Command { return &BuyItem{} },
		func() Command { return &SellItem{} },
		func() Command { return &CloseNpcTradeRequest{} },
		func() Command { return &RequestTrade{} },
		func() Command { return &InspectTrade{} },
		func() Command { return &AcceptTrade{} },
		func() Command { return &RejectTrade{} },
		func() Command { return &EditTextRequest{} },
		func() Command { return &EditListRequest{} },
		func() Command { return &BugReport{} },
		func() Command { return &RuleViolationReport{} },
		func() Command { return &DebugReport{} },
		func() Command { return &RequestQuestLog{} },
		func() Command { return &RequestQuestLine{} },
		func() Command { return &EquipItem{} },
		func() Command { return &MountStatus{} },
		func() Command { return &RequestItemInfo{} },
		func() Command { return &PingRequest{} },
	} {
		commandFactories[f().CommandName()] = f
	}
}
