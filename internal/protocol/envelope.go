package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// Envelope is the transport-neutral framing of one event or command.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EncodeEvent wraps ev in an Envelope.
//
// Postcondition: Returns an Envelope whose Type is ev.EventName(), or an error.
func EncodeEvent(ev Event) (Envelope, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return Envelope{}, fmt.Errorf("encoding event %s: %w", ev.EventName(), err)
	}
	return Envelope{Type: ev.EventName(), Payload: payload}, nil
}

// EncodeCommand wraps cmd in an Envelope.
//
// Postcondition: Returns an Envelope whose Type is cmd.CommandName(), or an error.
func EncodeCommand(cmd Command) (Envelope, error) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return Envelope{}, fmt.Errorf("encoding command %s: %w", cmd.CommandName(), err)
	}
	return Envelope{Type: cmd.CommandName(), Payload: payload}, nil
}

// DecodeEvent resolves env.Type against the known events and decodes the payload.
//
// Postcondition: Returns a non-pointer Event value, or an error for unknown types
// and malformed payloads.
func DecodeEvent(env Envelope) (Event, error) {
	f, ok := eventFactories[env.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", env.Type)
	}
	ptr := f()
	if err := decodePayload(env.Payload, ptr); err != nil {
		return nil, fmt.Errorf("decoding event %s: %w", env.Type, err)
	}
	return reflect.ValueOf(ptr).Elem().Interface().(Event), nil
}

// DecodeCommand resolves env.Type against the known commands and decodes the payload.
//
// Postcondition: Returns a non-pointer Command value, or an error.
func DecodeCommand(env Envelope) (Command, error) {
	f, ok := commandFactories[env.Type]
	if !ok {
		return nil, fmt.Errorf("unknown command type %q", env.Type)
	}
	ptr := f()
	if err := decodePayload(env.Payload, ptr); err != nil {
		return nil, fmt.Errorf("decoding command %s: %w", env.Type, err)
	}
	return reflect.ValueOf(ptr).Elem().Interface().(Command), nil
}

func decodePayload(raw json.RawMessage, into any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, into)
}

// TransportError is a failed transport as reported to the session.
type TransportError struct {
	Message string
	Code    int
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error %d: %s", e.Code, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsEndOfStream reports whether err marks a clean remote close.
func IsEndOfStream(err error) bool {
	return errors.Is(err, io.EOF)
}

// ErrorDetails extracts the message and code surfaced to the user for err.
func ErrorDetails(err error) (string, int) {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Message, te.Code
	}
	return err.Error(), -1
}
