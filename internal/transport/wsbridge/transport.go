// Package wsbridge connects a session to a protocol gateway over a WebSocket.
// Each text message carries one JSON envelope {"type": ..., "payload": ...}.
package wsbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/otsession/internal/game/session"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// StreamIDHeader is the handshake header carrying the id the client assigned to
// the connection.
const StreamIDHeader = "X-Stream-Id"

const (
	sendBuffer   = 64
	closeTimeout = time.Second
)

// Dialer creates Transports to one gateway URL.
type Dialer struct {
	url         string
	dialTimeout time.Duration
	logger      *zap.Logger
}

// NewDialer creates a Dialer for the gateway at url (ws:// or wss://).
//
// Precondition: dialTimeout > 0; logger must be non-nil.
func NewDialer(url string, dialTimeout time.Duration, logger *zap.Logger) *Dialer {
	return &Dialer{url: url, dialTimeout: dialTimeout, logger: logger}
}

// Dial returns an unopened Transport reporting to r.
func (d *Dialer) Dial(r protocol.Receiver) session.Transport {
	return New(d, r)
}

// Transport is one WebSocket connection to the gateway.
type Transport struct {
	dialer   *Dialer
	r        protocol.Receiver
	streamID string
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	out    *outbox

	connected atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
}

// New creates a Transport for d reporting to r.
func New(d *Dialer, r protocol.Receiver) *Transport {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	return &Transport{
		dialer:   d,
		r:        r,
		streamID: id,
		logger:   d.logger.With(zap.String("stream_id", id)),
		ctx:      ctx,
		cancel:   cancel,
		out:      newOutbox(sendBuffer),
		done:     make(chan struct{}),
	}
}

// Open connects in the background and sends creds as the first message.
func (t *Transport) Open(creds protocol.Credentials) {
	go func() {
		defer close(t.done)
		if err := t.run(creds); err != nil {
			t.fail(err)
		}
	}()
}

func (t *Transport) run(creds protocol.Credentials) error {
	wsd := websocket.Dialer{HandshakeTimeout: t.dialer.dialTimeout}
	header := http.Header{}
	header.Set(StreamIDHeader, t.streamID)

	conn, resp, err := wsd.DialContext(t.ctx, t.dialer.url, header)
	if err != nil {
		code := -1
		if resp != nil {
			code = resp.StatusCode
		}
		return &protocol.TransportError{Message: "could not reach the gateway", Code: code, Err: err}
	}
	defer conn.Close()

	login, err := encodeCommand(creds)
	if err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, login); err != nil {
		return transportError(err)
	}
	t.connected.Store(true)
	t.logger.Debug("gateway connection open", zap.String("url", t.dialer.url))

	g, ctx := errgroup.WithContext(t.ctx)
	g.Go(func() error {
		err := t.writePump(ctx, conn)
		// unblocks the read pump
		_ = conn.Close()
		return err
	})
	g.Go(func() error { return t.readPump(conn) })
	return transportError(g.Wait())
}

func (t *Transport) writePump(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			t.sendClose(conn)
			return ctx.Err()
		case data, ok := <-t.out.messages():
			if !ok {
				t.sendClose(conn)
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}
		}
	}
}

// sendClose tells the gateway the client is leaving. Only done on Close.
func (t *Transport) sendClose(conn *websocket.Conn) {
	if !t.closed.Load() {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeTimeout))
}

func (t *Transport) readPump(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
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

// Send queues cmd for the write pump.
//
// Postcondition: Returns ErrClosed after Close, an error when the send buffer is
// full or cmd cannot be encoded; nil otherwise.
func (t *Transport) Send(cmd protocol.Command) error {
	data, err := encodeCommand(cmd)
	if err != nil {
		return err
	}
	if err := t.out.push(data); err != nil {
		return fmt.Errorf("sending %s: %w", cmd.CommandName(), err)
	}
	return nil
}

func (t *Transport) IsConnected() bool {
	return t.connected.Load() && !t.closed.Load()
}

// Close sends a normal close frame if connected and releases the connection in
// the background.
func (t *Transport) Close() {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		t.connected.Store(false)
		t.cancel()
		t.out.close()
	})
}

// Done is closed once the background goroutines have exited.
func (t *Transport) Done() <-chan struct{} { return t.done }

func (t *Transport) fail(err error) {
	t.connected.Store(false)
	if t.closed.Load() {
		return
	}
	t.r.Fail(err)
}

func encodeCommand(cmd protocol.Command) ([]byte, error) {
	env, err := protocol.EncodeCommand(cmd)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// transportError maps connection errors to what the session reports. A normal
// close from the gateway is a clean end of stream.
func transportError(err error) error {
	if err == nil {
		return nil
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return fmt.Errorf("gateway closed the connection: %w", io.EOF)
	}
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return &protocol.TransportError{Message: ce.Text, Code: ce.Code, Err: err}
	}
	return &protocol.TransportError{Message: err.Error(), Code: -1, Err: err}
}
