package grpcbridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/otsession/internal/game/session"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("grpc bridge closed")

const sendBuffer = 64

// closeGrace bounds how long Close waits for queued commands to reach the
// gateway before the stream is cancelled.
var closeGrace = time.Second

var sessionStreamDesc = &GatewayServiceDesc.Streams[0]

// Dialer creates Transports to one gateway.
type Dialer struct {
	addr        string
	dialTimeout time.Duration
	logger      *zap.Logger
	opts        []grpc.DialOption
}

// NewDialer creates a Dialer for the gateway at addr. Extra options are appended
// to the insecure transport credentials.
//
// Precondition: addr must be a valid gRPC target; dialTimeout > 0; logger non-nil.
func NewDialer(addr string, dialTimeout time.Duration, logger *zap.Logger, opts ...grpc.DialOption) *Dialer {
	return &Dialer{addr: addr, dialTimeout: dialTimeout, logger: logger, opts: opts}
}

// Dial returns an unopened Transport reporting to r.
func (d *Dialer) Dial(r protocol.Receiver) session.Transport {
	return New(d, r)
}

// Transport is one session stream. It connects in the background on Open; all
// outcomes are reported through the Receiver.
type Transport struct {
	dialer   *Dialer
	r        protocol.Receiver
	streamID string
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	// closing is cancelled by Close and by cancel.
	closing    context.Context
	beginClose context.CancelFunc
	out        chan *structpb.Struct

	connected atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
}

// New creates a Transport for d reporting to r.
//
// Postcondition: Returns a Transport that does nothing until Open.
func New(d *Dialer, r protocol.Receiver) *Transport {
	ctx, cancel := context.WithCancel(context.Background())
	closing, beginClose := context.WithCancel(ctx)
	id := uuid.NewString()
	return &Transport{
		dialer:     d,
		r:          r,
		streamID:   id,
		logger:     d.logger.With(zap.String("stream_id", id)),
		ctx:        ctx,
		cancel:     cancel,
		closing:    closing,
		beginClose: beginClose,
		out:        make(chan *structpb.Struct, sendBuffer),
		done:       make(chan struct{}),
	}
}

// Open connects and sends creds as the first message of the stream.
func (t *Transport) Open(creds protocol.Credentials) {
	go func() {
		defer close(t.done)
		if err := t.run(creds); err != nil {
			t.fail(err)
		}
	}()
}

func (t *Transport) run(creds protocol.Credentials) error {
	if t.closed.Load() {
		return nil
	}
	conn, err := grpc.NewClient(t.dialer.addr,
		append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, t.dialer.opts...)...,
	)
	if err != nil {
		return &protocol.TransportError{Message: "invalid gateway address", Code: int(codes.InvalidArgument), Err: err}
	}
	defer conn.Close()

	if err := waitReady(t.closing, conn, t.dialer.dialTimeout); err != nil {
		if t.closed.Load() {
			return nil
		}
		return &protocol.TransportError{Message: "could not reach the gateway", Code: int(codes.Unavailable), Err: err}
	}

	// a failing pump cancels the stream, which unblocks the other one
	g, ctx := errgroup.WithContext(metadata.AppendToOutgoingContext(t.ctx, StreamIDHeader, t.streamID))
	stream, err := conn.NewStream(ctx, sessionStreamDesc, SessionMethod)
	if err != nil {
		return transportError(err)
	}

	login, err := encodeCommand(creds)
	if err != nil {
		return err
	}
	if err := stream.SendMsg(login); err != nil {
		return transportError(err)
	}
	t.connected.Store(true)
	t.logger.Debug("gateway stream open", zap.String("addr", t.dialer.addr))

	g.Go(func() error { return t.writePump(ctx, stream) })
	g.Go(func() error { return t.readPump(stream) })
	return transportError(g.Wait())
}

func (t *Transport) writePump(ctx context.Context, stream grpc.ClientStream) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.closing.Done():
			if err := ctx.Err(); err != nil {
				return err
			}
			return t.flush(stream)
		case msg := <-t.out:
			if err := sendMsg(stream, msg); err != nil {
				return err
			}
		}
	}
}

// flush sends what is still queued, then half-closes the stream. The gateway
// ends the stream once it has read everything.
func (t *Transport) flush(stream grpc.ClientStream) error {
	for {
		select {
		case msg := <-t.out:
			if err := sendMsg(stream, msg); err != nil {
				return err
			}
		default:
			t.logger.Debug("flushed outgoing commands")
			return stream.CloseSend()
		}
	}
}

func sendMsg(stream grpc.ClientStream, msg *structpb.Struct) error {
	err := stream.SendMsg(msg)
	if errors.Is(err, io.EOF) {
		// the real status is reported by RecvMsg
		return nil
	}
	return err
}

func (t *Transport) readPump(stream grpc.ClientStream) error {
	for {
		msg := new(structpb.Struct)
		if err := stream.RecvMsg(msg); err != nil {
			return err
		}
		env, err := DecodeEnvelope(msg)
		if err != nil {
			t.logger.Warn("dropping malformed envelope", zap.Error(err))
			continue
		}
		ev, err := protocol.DecodeEvent(env)
		if err != nil {
			t.logger.Warn("dropping undecodable event", zap.String("type", env.Type), zap.Error(err))
			continue
		}
		if !t.closed.Load() {
			t.r.Deliver(ev)
		}
	}
}

// Send queues cmd.
//
// Postcondition: Returns ErrClosed after Close, an error when the send buffer is
// full or cmd cannot be encoded; nil otherwise.
func (t *Transport) Send(cmd protocol.Command) error {
	if t.closed.Load() {
		return ErrClosed
	}
	msg, err := encodeCommand(cmd)
	if err != nil {
		return err
	}
	select {
	case t.out <- msg:
		return nil
	default:
		return fmt.Errorf("sending %s: buffer full", cmd.CommandName())
	}
}

func (t *Transport) IsConnected() bool {
	return t.connected.Load() && !t.closed.Load()
}

// Close stops accepting commands and lets the stream deliver what was already
// queued. The stream is cancelled once the gateway ends it or after closeGrace.
// Close does not wait for the background goroutines.
func (t *Transport) Close() {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		t.connected.Store(false)
		t.beginClose()
		time.AfterFunc(closeGrace, t.cancel)
	})
}

// Done is closed once the background goroutines have exited.
func (t *Transport) Done() <-chan struct{} { return t.done }

func (t *Transport) fail(err error) {
	t.connected.Store(false)
	if t.closed.Load() {
		return
	}
	if protocol.IsEndOfStream(err) {
		t.logger.Debug("gateway closed the stream")
	}
	t.r.Fail(err)
}

func encodeCommand(cmd protocol.Command) (*structpb.Struct, error) {
	env, err := protocol.EncodeCommand(cmd)
	if err != nil {
		return nil, err
	}
	return EncodeEnvelope(env)
}

// waitReady connects conn and waits until it is ready or timeout passes.
func waitReady(ctx context.Context, conn *grpc.ClientConn, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn.Connect()
	for {
		s := conn.GetState()
		if s == connectivity.Ready {
			return nil
		}
		if !conn.WaitForStateChange(ctx, s) {
			return ctx.Err()
		}
	}
}

// transportError maps stream errors to what the session reports. io.EOF passes
// through as a clean end of stream.
func transportError(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	var te *protocol.TransportError
	if errors.As(err, &te) {
		return err
	}
	if st, ok := status.FromError(err); ok {
		return &protocol.TransportError{Message: st.Message(), Code: int(st.Code()), Err: err}
	}
	return &protocol.TransportError{Message: err.Error(), Code: int(codes.Unknown), Err: err}
}
