package grpcbridge

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/cory-johannsen/otsession/internal/protocol"
)

const waitFor = 2 * time.Second

type chanReceiver struct {
	events chan protocol.Event
	fails  chan error
}

func newChanReceiver() *chanReceiver {
	return &chanReceiver{events: make(chan protocol.Event, 16), fails: make(chan error, 4)}
}

func (r *chanReceiver) Deliver(ev protocol.Event) { r.events <- ev }
func (r *chanReceiver) Fail(err error)            { r.fails <- err }

func (r *chanReceiver) nextEvent(t *testing.T) protocol.Event {
	t.Helper()
	select {
	case ev := <-r.events:
		return ev
	case <-time.After(waitFor):
		t.Fatal("no event delivered")
		return nil
	}
}

func (r *chanReceiver) nextFail(t *testing.T) error {
	t.Helper()
	select {
	case err := <-r.fails:
		return err
	case <-time.After(waitFor):
		t.Fatal("no failure reported")
		return nil
	}
}

// gatewayFunc adapts a function to GatewayServer.
type gatewayFunc func(stream *GatewayStream) error

func (f gatewayFunc) Session(stream *GatewayStream) error { return f(stream) }

func startGateway(t *testing.T, srv GatewayServer) *Dialer {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterGatewayServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	return NewDialer("passthrough:///bufnet", waitFor, zaptest.NewLogger(t),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
}

func TestTransport_LoginThenEvents(t *testing.T) {
	logins := make(chan protocol.Credentials, 1)
	streamIDs := make(chan string, 1)
	d := startGateway(t, gatewayFunc(func(stream *GatewayStream) error {
		cmd, err := stream.RecvCommand()
		if err != nil {
			return err
		}
		logins <- cmd.(protocol.Credentials)
		streamIDs <- stream.StreamID()
		if err := stream.SendEvent(protocol.PlayerLogin{CreatureID: 1000, ServerBeat: 50}); err != nil {
			return err
		}
		if err := stream.SendEvent(protocol.GameStart{}); err != nil {
			return err
		}
		<-stream.Context().Done()
		return nil
	}))
	r := newChanReceiver()
	tr := New(d, r)
	defer tr.Close()

	tr.Open(protocol.Credentials{Account: "acc", CharacterName: "knight", ProtocolVersion: 860})

	select {
	case creds := <-logins:
		assert.Equal(t, "acc", creds.Account)
		assert.Equal(t, 860, creds.ProtocolVersion)
	case <-time.After(waitFor):
		t.Fatal("gateway received no login")
	}
	assert.Equal(t, tr.streamID, <-streamIDs)
	assert.Equal(t, protocol.PlayerLogin{CreatureID: 1000, ServerBeat: 50}, r.nextEvent(t))
	assert.Equal(t, protocol.GameStart{}, r.nextEvent(t))
	assert.True(t, tr.IsConnected())
}

func TestTransport_SendReachesGateway(t *testing.T) {
	received := make(chan protocol.Command, 4)
	d := startGateway(t, gatewayFunc(func(stream *GatewayStream) error {
		for {
			cmd, err := stream.RecvCommand()
			if err != nil {
				return nil
			}
			received <- cmd
		}
	}))
	tr := New(d, newChanReceiver())
	defer tr.Close()

	tr.Open(protocol.Credentials{Account: "acc"})
	require.NoError(t, tr.Send(protocol.Attack{CreatureID: 7, Seq: 1}))

	var got []protocol.Command
	for len(got) < 2 {
		select {
		case cmd := <-received:
			got = append(got, cmd)
		case <-time.After(waitFor):
			t.Fatalf("gateway received %v", got)
		}
	}
	assert.IsType(t, protocol.Credentials{}, got[0])
	assert.Equal(t, protocol.Attack{CreatureID: 7, Seq: 1}, got[1])
}

func TestTransport_CleanEndIsEndOfStream(t *testing.T) {
	d := startGateway(t, gatewayFunc(func(stream *GatewayStream) error {
		_, err := stream.RecvCommand()
		return err
	}))
	r := newChanReceiver()
	tr := New(d, r)
	defer tr.Close()

	tr.Open(protocol.Credentials{})

	assert.True(t, protocol.IsEndOfStream(r.nextFail(t)))
	assert.False(t, tr.IsConnected())
}

func TestTransport_StatusBecomesTransportError(t *testing.T) {
	d := startGateway(t, gatewayFunc(func(stream *GatewayStream) error {
		if _, err := stream.RecvCommand(); err != nil {
			return err
		}
		return status.Error(codes.PermissionDenied, "account banished")
	}))
	r := newChanReceiver()
	tr := New(d, r)
	defer tr.Close()

	tr.Open(protocol.Credentials{})

	err := r.nextFail(t)
	var te *protocol.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "account banished", te.Message)
	assert.Equal(t, int(codes.PermissionDenied), te.Code)
}

func TestTransport_CloseIsSilent(t *testing.T) {
	d := startGateway(t, gatewayFunc(func(stream *GatewayStream) error {
		<-stream.Context().Done()
		return nil
	}))
	r := newChanReceiver()
	tr := New(d, r)

	tr.Open(protocol.Credentials{})
	require.Eventually(t, tr.IsConnected, waitFor, 10*time.Millisecond)
	tr.Close()
	tr.Close()

	select {
	case <-tr.Done():
	case <-time.After(waitFor):
		t.Fatal("transport goroutines did not exit")
	}
	assert.Empty(t, r.fails)
	assert.ErrorIs(t, tr.Send(protocol.Stop{}), ErrClosed)
}

func TestTransport_CloseDeliversQueuedLogout(t *testing.T) {
	logouts := make(chan struct{}, 8)
	d := startGateway(t, gatewayFunc(func(stream *GatewayStream) error {
		for {
			cmd, err := stream.RecvCommand()
			if err != nil {
				return nil
			}
			if _, ok := cmd.(protocol.Logout); ok {
				logouts <- struct{}{}
				return nil
			}
		}
	}))

	for i := 0; i < 5; i++ {
		r := newChanReceiver()
		tr := New(d, r)
		tr.Open(protocol.Credentials{Account: "acc"})
		require.Eventually(t, tr.IsConnected, waitFor, 10*time.Millisecond)

		require.NoError(t, tr.Send(protocol.Logout{}))
		tr.Close()

		select {
		case <-logouts:
		case <-time.After(waitFor):
			t.Fatalf("logout %d never reached the gateway", i)
		}
		select {
		case <-tr.Done():
		case <-time.After(waitFor):
			t.Fatal("transport goroutines did not exit")
		}
		assert.Empty(t, r.fails)
	}
}

func TestTransport_CloseWhileConnectingSendsNothing(t *testing.T) {
	opened := make(chan struct{}, 1)
	d := startGateway(t, gatewayFunc(func(stream *GatewayStream) error {
		opened <- struct{}{}
		return nil
	}))
	r := newChanReceiver()
	tr := New(d, r)

	tr.Close()
	tr.Open(protocol.Credentials{Account: "acc"})

	select {
	case <-tr.Done():
	case <-time.After(waitFor):
		t.Fatal("transport goroutines did not exit")
	}
	assert.Empty(t, opened)
	assert.Empty(t, r.fails)
}

func TestTransport_UnreachableGateway(t *testing.T) {
	lis := bufconn.Listen(1024)
	require.NoError(t, lis.Close())
	d := NewDialer("passthrough:///bufnet", 100*time.Millisecond, zaptest.NewLogger(t),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	r := newChanReceiver()
	tr := New(d, r)
	defer tr.Close()

	tr.Open(protocol.Credentials{})

	var te *protocol.TransportError
	require.ErrorAs(t, r.nextFail(t), &te)
	assert.Equal(t, int(codes.Unavailable), te.Code)
	assert.False(t, protocol.IsEndOfStream(te))
}

func TestTransport_SendBufferFull(t *testing.T) {
	tr := New(NewDialer("passthrough:///unused", time.Second, zaptest.NewLogger(t)), newChanReceiver())
	defer tr.Close()

	for i := 0; i < sendBuffer; i++ {
		require.NoError(t, tr.Send(protocol.Stop{}))
	}
	err := tr.Send(protocol.Stop{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffer full")
}

func TestEnvelope_StructRoundTrip(t *testing.T) {
	env, err := protocol.EncodeEvent(protocol.OpenContainer{
		ContainerID: 2,
		Name:        "bag",
		Capacity:    8,
		Items:       []protocol.Item{{ID: 2148, CountOrSubType: 5}},
	})
	require.NoError(t, err)

	msg, err := EncodeEnvelope(env)
	require.NoError(t, err)
	back, err := DecodeEnvelope(msg)
	require.NoError(t, err)
	ev, err := protocol.DecodeEvent(back)
	require.NoError(t, err)

	oc := ev.(protocol.OpenContainer)
	assert.Equal(t, "bag", oc.Name)
	assert.Equal(t, 5, oc.Items[0].CountOrSubType)
}

func TestDecodeEnvelope_RequiresType(t *testing.T) {
	msg, err := EncodeEnvelope(protocol.Envelope{})
	require.NoError(t, err)

	_, err = DecodeEnvelope(msg)
	assert.Error(t, err)
}

func TestTransportError_Mapping(t *testing.T) {
	plain := errors.New("boom")
	var te *protocol.TransportError
	require.ErrorAs(t, transportError(plain), &te)
	assert.Equal(t, int(codes.Unknown), te.Code)
	assert.ErrorIs(t, transportError(plain), plain)
	assert.Nil(t, transportError(nil))
}
