package session

import (
	"time"

	"github.com/cory-johannsen/otsession/internal/game/loop"
	"github.com/cory-johannsen/otsession/internal/protocol"
)

// Transport is a live link to the codec layer for one login attempt. Every method
// returns without waiting on the network; failures arrive through the Receiver
// the transport was dialed with.
type Transport interface {
	// Open starts connecting and sends creds once connected.
	Open(creds protocol.Credentials)
	// Send queues cmd for delivery.
	Send(cmd protocol.Command) error
	IsConnected() bool
	// Close releases the link. Traffic still in flight when Close returns is
	// discarded by the session.
	Close()
}

// Dialer creates a Transport that reports inbound traffic to r.
type Dialer interface {
	Dial(r protocol.Receiver) Transport
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(r protocol.Receiver) Transport

// Dial calls f(r).
func (f DialerFunc) Dial(r protocol.Receiver) Transport { return f(r) }

// Scheduler serializes work onto the session loop. *loop.Dispatcher satisfies it.
type Scheduler interface {
	Post(fn func()) bool
	Cycle(period time.Duration, fn func()) loop.Task
}

// receiver binds inbound traffic to the login attempt that dialed it. Traffic from
// a transport the session has since released is dropped on the loop.
type receiver struct {
	g          *Game
	generation uint64
}

func (r *receiver) Deliver(ev protocol.Event) {
	r.g.sched.Post(func() {
		if r.generation != r.g.generation {
			return
		}
		r.g.HandleEvent(ev)
	})
}

func (r *receiver) Fail(err error) {
	r.g.sched.Post(func() {
		if r.generation != r.g.generation {
			return
		}
		r.g.processConnectionError(err)
	})
}
