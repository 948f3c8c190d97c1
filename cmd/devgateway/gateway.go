package main

import (
	"errors"
	"io"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cory-johannsen/otsession/internal/protocol"
	"github.com/cory-johannsen/otsession/internal/transport/grpcbridge"
)

const eventBuffer = 64

// gateway serves session streams against a scripted world.
type gateway struct {
	logger    *zap.Logger
	latencyMs int
	// nextPlayer hands out creature ids, leaving room for each world's creatures.
	nextPlayer atomic.Uint32
}

var _ grpcbridge.GatewayServer = (*gateway)(nil)

// newGateway creates a gateway answering pings with latencyMs.
//
// Precondition: logger must be non-nil.
func newGateway(logger *zap.Logger, latencyMs int) *gateway {
	g := &gateway{logger: logger, latencyMs: latencyMs}
	g.nextPlayer.Store(0x10000000)
	return g
}

// Session logs the character in and answers its commands until logout or until
// the client goes away.
func (g *gateway) Session(stream *grpcbridge.GatewayStream) error {
	first, err := stream.RecvCommand()
	if err != nil {
		return err
	}
	creds, ok := first.(protocol.Credentials)
	if !ok {
		return status.Errorf(codes.InvalidArgument, "expected login, got %s", first.CommandName())
	}
	logger := g.logger.With(
		zap.String("stream_id", stream.StreamID()),
		zap.String("account", creds.Account),
		zap.String("character", creds.CharacterName),
	)
	if creds.Account == "" || creds.CharacterName == "" {
		logger.Info("login refused")
		return stream.SendEvent(protocol.LoginError{Message: "Account name or password is not correct."})
	}
	logger.Info("login", zap.Int("protocol_version", creds.ProtocolVersion), zap.String("world", creds.WorldName))

	world := newFakeWorld(creds.CharacterName, g.nextPlayer.Add(16), g.latencyMs)
	out := make(chan protocol.Event, eventBuffer)

	eg, ctx := errgroup.WithContext(stream.Context())
	eg.Go(func() error {
		for ev := range out {
			if err := stream.SendEvent(ev); err != nil {
				return err
			}
		}
		return nil
	})
	eg.Go(func() error {
		defer close(out)
		emit := func(events []protocol.Event) error {
			for _, ev := range events {
				select {
				case out <- ev:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		}
		if err := emit(world.login()); err != nil {
			return err
		}
		for {
			cmd, err := stream.RecvCommand()
			if errors.Is(err, io.EOF) {
				logger.Info("client closed the stream")
				return nil
			}
			if err != nil {
				return err
			}
			if _, ok := cmd.(protocol.Logout); ok {
				logger.Info("logout")
				return nil
			}
			logger.Debug("command", zap.String("command", cmd.CommandName()))
			if err := emit(world.handle(cmd)); err != nil {
				return err
			}
		}
	})
	return eg.Wait()
}
