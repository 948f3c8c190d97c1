// Package protocol defines the structured boundary between the session core and
// the codec layer: decoded inbound events, outbound commands, and the value types
// they carry. Byte-level encoding of the game protocol lives in the gateway.
package protocol

import (
	"fmt"
	"strings"
)

// Direction is a compass direction used by walk, turn and walk-cancel messages.
type Direction int

// Directions in wire order.
const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
	InvalidDirection
)

var directionNames = [...]string{"north", "east", "south", "west", "northeast", "southeast", "southwest", "northwest"}

// Valid reports whether d is one of the eight compass directions.
func (d Direction) Valid() bool {
	return d >= North && d < InvalidDirection
}

// Cardinal reports whether d is north, east, south or west.
func (d Direction) Cardinal() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection resolves a full or abbreviated direction name.
//
// Postcondition: Returns (direction, true) on match, or (InvalidDirection, false).
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	short := map[string]Direction{"n": North, "e": East, "s": South, "w": West, "ne": NorthEast, "se": SouthEast, "sw": SouthWest, "nw": NorthWest}
	if d, ok := short[s]; ok {
		return d, true
	}
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return InvalidDirection, false
}

// Position is a map coordinate. X 0xFFFF marks inventory and container slots.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// InvalidPosition is the position of things that are not placed anywhere.
var InvalidPosition = Position{X: 0xFFFF, Y: 0xFFFF, Z: 0xFF}

// InventoryPosition addresses "an item the player carries" when using by item id.
var InventoryPosition = Position{X: 0xFFFF, Y: 0, Z: 0}

// IsValid reports whether p differs from InvalidPosition.
func (p Position) IsValid() bool {
	return p != InvalidPosition
}

// ContainerSlotPosition returns the position of slot inside the container with the given id.
func ContainerSlotPosition(containerID, slot int) Position {
	return Position{X: 0xFFFF, Y: containerID | 0x40, Z: slot}
}

// InventorySlotPosition returns the position of an equipment slot.
func InventorySlotPosition(slot int) Position {
	return Position{X: 0xFFFF, Y: slot, Z: 0}
}

// CreatureThingID is the thing id the server expects when moving a creature.
const CreatureThingID = 99

// MinItemID is the lowest valid item type id.
const MinItemID = 100

// Item is an item instance as decoded by the codec.
type Item struct {
	ID             int      `json:"id"`
	CountOrSubType int      `json:"count,omitempty"`
	Position       Position `json:"position"`
}

// Thing references something on the map or in a container: an item or a creature.
type Thing struct {
	// ID is the item type id, or the creature id when Creature is set.
	ID       uint32   `json:"id"`
	Position Position `json:"position"`
	StackPos int      `json:"stackpos"`
	Creature bool     `json:"creature,omitempty"`
	// CountOrSubType is only meaningful for items.
	CountOrSubType int `json:"count,omitempty"`
}

// ThingFromItem builds a Thing reference for an item.
func ThingFromItem(it Item, stackPos int) Thing {
	return Thing{ID: uint32(it.ID), Position: it.Position, StackPos: stackPos, CountOrSubType: it.CountOrSubType}
}

// Outfit is the appearance of a creature.
type Outfit struct {
	ID     int `json:"id"`
	Head   int `json:"head,omitempty"`
	Body   int `json:"body,omitempty"`
	Legs   int `json:"legs,omitempty"`
	Feet   int `json:"feet,omitempty"`
	Addons int `json:"addons,omitempty"`
	Mount  int `json:"mount,omitempty"`
}

// FightMode controls how aggressively the character attacks.
type FightMode int

const (
	FightOffensive FightMode = 1
	FightBalanced  FightMode = 2
	FightDefensive FightMode = 3
)

func (m FightMode) String() string {
	switch m {
	case FightOffensive:
		return "offensive"
	case FightBalanced:
		return "balanced"
	case FightDefensive:
		return "defensive"
	}
	return fmt.Sprintf("fightmode(%d)", int(m))
}

// ChaseMode controls whether the character chases its target.
type ChaseMode int

const (
	DontChase     ChaseMode = 0
	ChaseOpponent ChaseMode = 1
)

func (m ChaseMode) String() string {
	if m == ChaseOpponent {
		return "chase"
	}
	return "stand"
}

// MessageMode classifies talk and text messages.
type MessageMode int

const (
	MessageNone MessageMode = iota
	MessageSay
	MessageWhisper
	MessageYell
	MessagePrivateFrom
	MessagePrivateTo
	MessageChannelManagement
	MessageChannel
	MessageChannelHighlight
	MessageSpell
	MessageNpcFrom
	MessageNpcTo
	MessageGamemasterBroadcast
	MessageGamemasterChannel
	MessageGamemasterPrivateFrom
	MessageGamemasterPrivateTo
	MessageLogin
	MessageWarning
	MessageGame
	MessageFailure
	MessageLook
	MessageStatus
	MessageLoot
)

// Channel is an entry of the channel list.
type Channel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// OutfitOption is a selectable outfit in the outfit window.
type OutfitOption struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Addons int    `json:"addons"`
}

// MountOption is a selectable mount in the outfit window.
type MountOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TradeItem is an entry of an NPC trade offer.
type TradeItem struct {
	Item      Item   `json:"item"`
	Name      string `json:"name"`
	Weight    int    `json:"weight"`
	BuyPrice  int    `json:"buy_price"`
	SellPrice int    `json:"sell_price"`
}

// Good is an item the player owns that an NPC would buy.
type Good struct {
	Item   Item `json:"item"`
	Amount int  `json:"amount"`
}

// Quest is an entry of the quest log.
type Quest struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// QuestMission is a step of a quest line.
type QuestMission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
