package feature

import "fmt"

// Supported protocol version bounds. Version 0 means "not set".
const (
	MinVersion = 810
	MaxVersion = 961
)

// UnsupportedVersionError rejects a protocol version outside [MinVersion, MaxVersion].
type UnsupportedVersionError struct {
	Version int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("protocol version %d not supported", e.Version)
}

// Baseline is enabled regardless of version.
var Baseline = Set(0).With(FormatCreatureName)

// threshold enables features for every version >= minVersion.
type threshold struct {
	minVersion int
	features   []Feature
}

var thresholds = []threshold{
	{854, []Feature{ProtocolChecksum, AccountNames, ChallengeOnLogin, DoubleFreeCapacity, CreatureEmblems}},
	{862, []Feature{PenaltyOnDeath}},
	{870, []Feature{DoubleExperience, PlayerMounts, SpellList}},
	{910, []Feature{NameOnNpcTrade, TotalCapacity, SkillsBase, PlayerRegenerationTime, ChannelPlayerList, EnvironmentEffect, ItemAnimationPhase}},
	{940, []Feature{PlayerMarket}},
	{953, []Feature{PurseSlot, ClientPing}},
	{960, []Feature{SpritesU32, OfflineTrainingTime}},
}

// lastChargeableVersion is the newest version whose items carry charges.
const lastChargeableVersion = 810

// ValidateVersion checks v against the supported range.
//
// Postcondition: Returns nil for 0 and [MinVersion, MaxVersion], otherwise *UnsupportedVersionError.
func ValidateVersion(v int) error {
	if v != 0 && (v < MinVersion || v > MaxVersion) {
		return &UnsupportedVersionError{Version: v}
	}
	return nil
}

// ForVersion derives the feature set of protocol version v. It does not validate v.
//
// Postcondition: The result always contains Baseline; thresholds are cumulative and
// a higher version never loses a threshold feature.
func ForVersion(v int) Set {
	s := Baseline
	if v <= lastChargeableVersion {
		s = s.With(ChargeableItems)
	}
	for _, t := range thresholds {
		if v >= t.minVersion {
			s = s.With(t.features...)
		}
	}
	return s
}

// Negotiate validates v and derives its feature set.
//
// Postcondition: Returns (features, nil) on success or (0, *UnsupportedVersionError).
func Negotiate(v int) (Set, error) {
	if err := ValidateVersion(v); err != nil {
		return 0, err
	}
	return ForVersion(v), nil
}
