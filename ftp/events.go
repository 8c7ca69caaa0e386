package ftp

import (
	"fmt"
	"runtime/debug"
)

// Event names a point in the control connection lifecycle.
type Event string

const (
	// EventGreeting fires after the server's 220 greeting has been read.
	EventGreeting Event = "greeting"

	// EventReady fires after the login has been accepted. Commands may be
	// issued from this point on.
	EventReady Event = "ready"

	// EventEnd fires the first time the server is seen closing the control
	// connection (EOF while reading a reply).
	EventEnd Event = "end"

	// EventClose fires once when the control connection is closed locally.
	EventClose Event = "close"
)

// On registers fn to be called when event fires. Handlers run synchronously
// on the goroutine that triggered the event, in registration order, and
// must not block. A panicking handler is logged and does not affect the
// connection or the remaining handlers.
func (c *Client) On(event Event, fn func()) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.handlers[event] = append(c.handlers[event], fn)
}

func (c *Client) emit(event Event) {
	c.handlersMu.RLock()
	handlers := make([]func(), len(c.handlers[event]))
	copy(handlers, c.handlers[event])
	c.handlersMu.RUnlock()

	for _, fn := range handlers {
		c.safeCall(event, fn)
	}
}

func (c *Client) safeCall(event Event, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("ftp event handler panicked",
				"event", string(event), "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()
	fn()
}
