// Package signal provides the synchronous observer hub used to deliver
// document change notifications. One hub per payload type per document;
// no process-wide state.
package signal

// Subscription identifies a registered handler so it can be removed.
type Subscription int

// Hub fans a payload out to registered handlers. Delivery is
// synchronous, on the calling goroutine, in registration order, once
// per notification. Hub is not safe for concurrent use.
type Hub[T any] struct {
	handlers []func(T)
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{}
}

// Subscribe registers fn and returns its subscription handle.
func (h *Hub[T]) Subscribe(fn func(T)) Subscription {
	h.handlers = append(h.handlers, fn)
	return Subscription(len(h.handlers) - 1)
}

// Unsubscribe removes the handler registered under sub. Remaining
// handlers keep their registration order.
func (h *Hub[T]) Unsubscribe(sub Subscription) {
	i := int(sub)
	if i < 0 || i >= len(h.handlers) {
		return
	}
	h.handlers[i] = nil
}

// Notify delivers v to every registered handler in registration order.
func (h *Hub[T]) Notify(v T) {
	for _, fn := range h.handlers {
		if fn != nil {
			fn(v)
		}
	}
}

// Len returns the number of live handlers.
func (h *Hub[T]) Len() int {
	n := 0
	for _, fn := range h.handlers {
		if fn != nil {
			n++
		}
	}
	return n
}
