package session

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/otsession/internal/game/feature"
)

// SetProtocolVersion selects the protocol version and derives its feature set.
// Setting the current version again does nothing.
//
// Precondition: the session is idle; v is 0 or within the supported range.
// Postcondition: On success ProtocolVersion() == v and Features() is the set for v;
// the sink is told about the change. A *PreconditionError or
// *feature.UnsupportedVersionError leaves the session unchanged.
func (g *Game) SetProtocolVersion(v int) error {
	if g.state.Online || g.transport != nil {
		return &PreconditionError{Op: "set protocol version", Reason: "session is " + g.Phase().String()}
	}
	if v == g.version {
		return nil
	}
	features, err := feature.Negotiate(v)
	if err != nil {
		return err
	}
	g.version = v
	g.features = features
	g.logger.Info("protocol version changed", zap.Int("version", v), zap.Stringer("features", features))
	g.sink.OnProtocolVersionChange(v)
	return nil
}
