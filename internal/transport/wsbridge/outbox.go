package wsbridge

import (
	"errors"
	"sync"
)

// ErrClosed is returned when sending on a closed transport.
var ErrClosed = errors.New("websocket bridge closed")

// outbox buffers encoded envelopes between Send and the write pump.
type outbox struct {
	mu     sync.Mutex
	queue  chan []byte
	closed bool
}

func newOutbox(size int) *outbox {
	if size <= 0 {
		size = 64
	}
	return &outbox{queue: make(chan []byte, size)}
}

// push enqueues data without blocking.
//
// Postcondition: Returns ErrClosed after close, errBufferFull when the queue is full.
func (o *outbox) push(data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}
	select {
	case o.queue <- data:
		return nil
	default:
		return errBufferFull
	}
}

var errBufferFull = errors.New("send buffer full")

// messages is drained by the write pump; it is closed by close.
func (o *outbox) messages() <-chan []byte {
	return o.queue
}

func (o *outbox) close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.closed {
		o.closed = true
		close(o.queue)
	}
}
