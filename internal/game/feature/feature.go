// Package feature derives the protocol feature flags a game session runs with
// from the negotiated protocol version.
package feature

import (
	"fmt"
	"strings"
)

// Feature is a single protocol capability.
type Feature uint8

const (
	FormatCreatureName Feature = iota
	ChargeableItems
	ProtocolChecksum
	AccountNames
	ChallengeOnLogin
	DoubleFreeCapacity
	CreatureEmblems
	PenaltyOnDeath
	DoubleExperience
	PlayerMounts
	SpellList
	NameOnNpcTrade
	TotalCapacity
	SkillsBase
	PlayerRegenerationTime
	ChannelPlayerList
	EnvironmentEffect
	ItemAnimationPhase
	PlayerMarket
	PurseSlot
	ClientPing
	SpritesU32
	OfflineTrainingTime

	featureCount
)

var featureNames = [featureCount]string{
	"creature-name-formatting",
	"chargeable-items",
	"protocol-checksum",
	"account-names",
	"challenge-on-login",
	"double-free-capacity",
	"creature-emblems",
	"penalty-on-death",
	"double-experience",
	"player-mounts",
	"spell-list",
	"name-on-npc-trade",
	"total-capacity",
	"skills-base",
	"player-regen-time",
	"channel-player-list",
	"environment-effect",
	"item-animation-phase",
	"player-market",
	"purse-slot",
	"client-ping",
	"sprites-u32",
	"offline-training-time",
}

func (f Feature) String() string {
	if f >= featureCount {
		return fmt.Sprintf("feature(%d)", uint8(f))
	}
	return featureNames[f]
}

// Set is an immutable-by-convention bitset of features.
type Set uint64

// Has reports whether f is enabled.
func (s Set) Has(f Feature) bool {
	return s&(1<<f) != 0
}

// With returns a copy of s with every feature in fs enabled.
func (s Set) With(fs ...Feature) Set {
	for _, f := range fs {
		s |= 1 << f
	}
	return s
}

// Features lists the enabled features in declaration order.
func (s Set) Features() []Feature {
	var out []Feature
	for f := Feature(0); f < featureCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s Set) String() string {
	fs := s.Features()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}
