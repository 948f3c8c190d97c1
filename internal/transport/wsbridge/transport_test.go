package wsbridge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

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

var upgrader = websocket.Upgrader{}

// startGateway serves handle on a WebSocket endpoint and returns a dialer for it.
func startGateway(t *testing.T, handle func(conn *websocket.Conn, r *http.Request)) *Dialer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn, r)
	}))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/session"
	return NewDialer(url, waitFor, zaptest.NewLogger(t))
}

func readCommand(t *testing.T, conn *websocket.Conn) (protocol.Command, error) {
	t.Helper()
	var env protocol.Envelope
	if err := conn.ReadJSON(&env); err != nil {
		return nil, err
	}
	return protocol.DecodeCommand(env)
}

func writeEvent(conn *websocket.Conn, ev protocol.Event) error {
	env, err := protocol.EncodeEvent(ev)
	if err != nil {
		return err
	}
	return conn.WriteJSON(env)
}

func closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(time.Second))
}

func TestTransport_LoginThenEvents(t *testing.T) {
	logins := make(chan protocol.Credentials, 1)
	headers := make(chan string, 1)
	d := startGateway(t, func(conn *websocket.Conn, r *http.Request) {
		headers <- r.Header.Get(StreamIDHeader)
		cmd, err := readCommand(t, conn)
		if err != nil {
			return
		}
		logins <- cmd.(protocol.Credentials)
		_ = writeEvent(conn, protocol.PlayerLogin{CreatureID: 1000})
		_ = writeEvent(conn, protocol.GameStart{})
		_, _, _ = conn.ReadMessage()
	})
	r := newChanReceiver()
	tr := New(d, r)
	defer tr.Close()

	tr.Open(protocol.Credentials{Account: "acc", ProtocolVersion: 860})

	select {
	case creds := <-logins:
		assert.Equal(t, "acc", creds.Account)
	case <-time.After(waitFor):
		t.Fatal("gateway received no login")
	}
	assert.Equal(t, tr.streamID, <-headers)
	assert.Equal(t, protocol.PlayerLogin{CreatureID: 1000}, r.nextEvent(t))
	assert.Equal(t, protocol.GameStart{}, r.nextEvent(t))
	assert.True(t, tr.IsConnected())
}

func TestTransport_SendReachesGateway(t *testing.T) {
	received := make(chan protocol.Command, 4)
	d := startGateway(t, func(conn *websocket.Conn, _ *http.Request) {
		for {
			cmd, err := readCommand(t, conn)
			if err != nil {
				return
			}
			received <- cmd
		}
	})
	tr := New(d, newChanReceiver())
	defer tr.Close()

	tr.Open(protocol.Credentials{})
	require.NoError(t, tr.Send(protocol.Say{Mode: protocol.MessageSay, Message: "hi"}))

	var got []protocol.Command
	for len(got) < 2 {
		select {
		case cmd := <-received:
			got = append(got, cmd)
		case <-time.After(waitFor):
			t.Fatalf("gateway received %v", got)
		}
	}
	assert.Equal(t, protocol.Say{Mode: protocol.MessageSay, Message: "hi"}, got[1])
}

func TestTransport_NormalCloseIsEndOfStream(t *testing.T) {
	d := startGateway(t, func(conn *websocket.Conn, _ *http.Request) {
		_, _ = readCommand(t, conn)
		closeWith(conn, websocket.CloseNormalClosure, "")
	})
	r := newChanReceiver()
	tr := New(d, r)
	defer tr.Close()

	tr.Open(protocol.Credentials{})

	assert.True(t, protocol.IsEndOfStream(r.nextFail(t)))
}

func TestTransport_AbnormalCloseBecomesTransportError(t *testing.T) {
	d := startGateway(t, func(conn *websocket.Conn, _ *http.Request) {
		_, _ = readCommand(t, conn)
		closeWith(conn, 4001, "account banished")
	})
	r := newChanReceiver()
	tr := New(d, r)
	defer tr.Close()

	tr.Open(protocol.Credentials{})

	var te *protocol.TransportError
	require.ErrorAs(t, r.nextFail(t), &te)
	assert.Equal(t, 4001, te.Code)
	assert.Equal(t, "account banished", te.Message)
}

func TestTransport_MalformedMessagesDropped(t *testing.T) {
	d := startGateway(t, func(conn *websocket.Conn, _ *http.Request) {
		_, _ = readCommand(t, conn)
		_ = conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		_ = conn.WriteJSON(protocol.Envelope{Type: "no_such_event"})
		_ = writeEvent(conn, protocol.PingBack{ElapsedMs: 12})
		_, _, _ = conn.ReadMessage()
	})
	r := newChanReceiver()
	tr := New(d, r)
	defer tr.Close()

	tr.Open(protocol.Credentials{})

	assert.Equal(t, protocol.PingBack{ElapsedMs: 12}, r.nextEvent(t))
}

func TestTransport_CloseSendsNormalClosure(t *testing.T) {
	closes := make(chan int, 1)
	d := startGateway(t, func(conn *websocket.Conn, _ *http.Request) {
		_, _ = readCommand(t, conn)
		_, _, err := conn.ReadMessage()
		if ce, ok := err.(*websocket.CloseError); ok {
			closes <- ce.Code
		}
	})
	r := newChanReceiver()
	tr := New(d, r)

	tr.Open(protocol.Credentials{})
	require.Eventually(t, tr.IsConnected, waitFor, 10*time.Millisecond)
	tr.Close()

	select {
	case code := <-closes:
		assert.Equal(t, websocket.CloseNormalClosure, code)
	case <-time.After(waitFor):
		t.Fatal("gateway saw no close frame")
	}
	select {
	case <-tr.Done():
	case <-time.After(waitFor):
		t.Fatal("transport goroutines did not exit")
	}
	assert.Empty(t, r.fails)
	assert.ErrorIs(t, tr.Send(protocol.Stop{}), ErrClosed)
}

func TestTransport_HandshakeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no", http.StatusForbidden)
	}))
	defer srv.Close()
	r := newChanReceiver()
	tr := New(NewDialer("ws"+strings.TrimPrefix(srv.URL, "http"), waitFor, zaptest.NewLogger(t)), r)
	defer tr.Close()

	tr.Open(protocol.Credentials{})

	var te *protocol.TransportError
	require.ErrorAs(t, r.nextFail(t), &te)
	assert.Equal(t, http.StatusForbidden, te.Code)
}

func TestOutbox(t *testing.T) {
	o := newOutbox(2)
	require.NoError(t, o.push([]byte("a")))
	require.NoError(t, o.push([]byte("b")))
	assert.ErrorIs(t, o.push([]byte("c")), errBufferFull)

	o.close()
	o.close()
	assert.ErrorIs(t, o.push([]byte("d")), ErrClosed)

	var drained []string
	for data := range o.messages() {
		drained = append(drained, string(data))
	}
	assert.Equal(t, []string{"a", "b"}, drained)
}

func TestEncodeCommand_Envelope(t *testing.T) {
	data, err := encodeCommand(protocol.Attack{CreatureID: 7, Seq: 3})
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, "attack", env["type"])
	assert.Equal(t, map[string]any{"creature_id": float64(7), "seq": float64(3)}, env["payload"])
}
