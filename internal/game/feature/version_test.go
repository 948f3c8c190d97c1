package feature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var after854 = []Feature{ProtocolChecksum, AccountNames, ChallengeOnLogin, DoubleFreeCapacity, CreatureEmblems,
	PenaltyOnDeath, DoubleExperience, PlayerMounts, SpellList, NameOnNpcTrade, TotalCapacity, SkillsBase,
	PlayerRegenerationTime, ChannelPlayerList, EnvironmentEffect, ItemAnimationPhase, PlayerMarket,
	PurseSlot, ClientPing, SpritesU32, OfflineTrainingTime}

func TestForVersion_809(t *testing.T) {
	s := ForVersion(809)
	assert.True(t, s.Has(FormatCreatureName))
	assert.True(t, s.Has(ChargeableItems))
	for _, f := range after854 {
		assert.False(t, s.Has(f), "%s must not be enabled for 809", f)
	}
}

func TestForVersion_960(t *testing.T) {
	s := ForVersion(960)
	assert.False(t, s.Has(ChargeableItems))
	for _, f := range after854 {
		assert.True(t, s.Has(f), "%s must be enabled for 960", f)
	}
}

func TestForVersion_Thresholds(t *testing.T) {
	cases := []struct {
		version int
		on      []Feature
		off     []Feature
	}{
		{810, []Feature{ChargeableItems}, []Feature{ProtocolChecksum}},
		{853, nil, []Feature{ChargeableItems, ProtocolChecksum}},
		{854, []Feature{ProtocolChecksum, CreatureEmblems}, []Feature{PenaltyOnDeath}},
		{862, []Feature{PenaltyOnDeath}, []Feature{PlayerMounts}},
		{870, []Feature{PlayerMounts, SpellList, DoubleExperience}, []Feature{TotalCapacity}},
		{910, []Feature{TotalCapacity, ItemAnimationPhase}, []Feature{PlayerMarket}},
		{940, []Feature{PlayerMarket}, []Feature{ClientPing}},
		{953, []Feature{ClientPing, PurseSlot}, []Feature{SpritesU32}},
		{961, []Feature{SpritesU32, OfflineTrainingTime}, nil},
	}
	for _, tc := range cases {
		s := ForVersion(tc.version)
		for _, f := range tc.on {
			assert.True(t, s.Has(f), "version %d: %s should be on", tc.version, f)
		}
		for _, f := range tc.off {
			assert.False(t, s.Has(f), "version %d: %s should be off", tc.version, f)
		}
	}
}

func TestNegotiate_RejectsOutOfRange(t *testing.T) {
	for _, v := range []int{500, 809, 962, -1} {
		_, err := Negotiate(v)
		var uve *UnsupportedVersionError
		require.True(t, errors.As(err, &uve), "version %d", v)
		assert.Equal(t, v, uve.Version)
	}
}

func TestNegotiate_ZeroIsUnset(t *testing.T) {
	s, err := Negotiate(0)
	require.NoError(t, err)
	assert.True(t, s.Has(FormatCreatureName))
}

func TestPropertyThresholdsAreMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(MinVersion, MaxVersion).Draw(t, "a")
		b := rapid.IntRange(a, MaxVersion).Draw(t, "b")
		lo, hi := ForVersion(a), ForVersion(b)
		for _, f := range after854 {
			if lo.Has(f) && !hi.Has(f) {
				t.Fatalf("%s enabled at %d but disabled at %d", f, a, b)
			}
		}
		if !hi.Has(FormatCreatureName) {
			t.Fatalf("baseline missing at %d", b)
		}
	})
}

func TestSetString(t *testing.T) {
	assert.Equal(t, "[creature-name-formatting chargeable-items]", ForVersion(810).String())
}
