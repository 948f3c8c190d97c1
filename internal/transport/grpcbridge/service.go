// Package grpcbridge connects a session to a protocol gateway over a gRPC
// bidirectional stream. Each message is a structpb.Struct holding one envelope:
// {"type": <name>, "payload": <object>}.
package grpcbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/otsession/internal/protocol"
)

// SessionMethod is the full method name of the session stream.
const SessionMethod = "/otsession.bridge.v1.Gateway/Session"

// StreamIDHeader is the metadata key carrying the id the client assigned to a stream.
const StreamIDHeader = "x-stream-id"

// GatewayServer is implemented by protocol gateways serving the session stream.
type GatewayServer interface {
	// Session serves one login attempt. The first message received is the login
	// command; returning nil ends the stream cleanly.
	Session(stream *GatewayStream) error
}

// GatewayServiceDesc registers a GatewayServer on a grpc.Server.
var GatewayServiceDesc = grpc.ServiceDesc{
	ServiceName: "otsession.bridge.v1.Gateway",
	HandlerType: (*GatewayServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Session",
			Handler:       sessionHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "otsession/bridge/v1/gateway.proto",
}

func sessionHandler(srv any, stream grpc.ServerStream) error {
	return srv.(GatewayServer).Session(&GatewayStream{ServerStream: stream})
}

// RegisterGatewayServer registers srv with s.
func RegisterGatewayServer(s grpc.ServiceRegistrar, srv GatewayServer) {
	s.RegisterService(&GatewayServiceDesc, srv)
}

// GatewayStream is the server side of a session stream.
type GatewayStream struct {
	grpc.ServerStream
}

// RecvCommand blocks for the next command from the client.
//
// Postcondition: Returns io.EOF when the client closed its side.
func (s *GatewayStream) RecvCommand() (protocol.Command, error) {
	msg := new(structpb.Struct)
	if err := s.RecvMsg(msg); err != nil {
		return nil, err
	}
	env, err := DecodeEnvelope(msg)
	if err != nil {
		return nil, err
	}
	return protocol.DecodeCommand(env)
}

// SendEvent sends ev to the client.
func (s *GatewayStream) SendEvent(ev protocol.Event) error {
	env, err := protocol.EncodeEvent(ev)
	if err != nil {
		return err
	}
	msg, err := EncodeEnvelope(env)
	if err != nil {
		return err
	}
	return s.SendMsg(msg)
}

// StreamID returns the id the client attached to the stream, or "".
func (s *GatewayStream) StreamID() string {
	return StreamIDFromContext(s.Context())
}

// StreamIDFromContext reads StreamIDHeader from incoming metadata.
func StreamIDFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(StreamIDHeader); len(v) > 0 {
		return v[0]
	}
	return ""
}

// EncodeEnvelope converts env to its wire message.
//
// Postcondition: Returns a Struct with a string "type" field and a "payload"
// field holding the decoded JSON payload (null when absent), or an error.
func EncodeEnvelope(env protocol.Envelope) (*structpb.Struct, error) {
	var payload any
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", env.Type, err)
		}
	}
	msg, err := structpb.NewStruct(map[string]any{
		"type":    env.Type,
		"payload": payload,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding %s envelope: %w", env.Type, err)
	}
	return msg, nil
}

// DecodeEnvelope converts a wire message back to an envelope.
//
// Postcondition: Returns an error when the message has no string "type" field.
func DecodeEnvelope(msg *structpb.Struct) (protocol.Envelope, error) {
	fields := msg.AsMap()
	typ, ok := fields["type"].(string)
	if !ok || typ == "" {
		return protocol.Envelope{}, fmt.Errorf("envelope without type")
	}
	env := protocol.Envelope{Type: typ}
	if p := fields["payload"]; p != nil {
		raw, err := json.Marshal(p)
		if err != nil {
			return protocol.Envelope{}, fmt.Errorf("decoding %s payload: %w", typ, err)
		}
		env.Payload = raw
	}
	return env, nil
}
