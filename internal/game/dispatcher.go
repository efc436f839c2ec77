package game

import "sync"

// InboundHandler consumes one qualifying inbound message.
type InboundHandler func(in Inbound)

// Dispatcher routes the transport's inbound-message stream to the session
// holding the outstanding question for that chat. At most one subscription is
// live per group; arming a new question replaces the previous handle, and a
// per-question generation tag keeps already-queued deliveries from a detached
// handle from being misapplied.
type Dispatcher struct {
	mu   sync.RWMutex
	subs map[int64]*subscription
}

type subscription struct {
	generation uint64
	handler    InboundHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[int64]*subscription)}
}

// Attach registers the handler for the group's current question, detaching
// any prior subscription.
func (d *Dispatcher) Attach(chatID int64, generation uint64, handler InboundHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs[chatID] = &subscription{generation: generation, handler: handler}
}

// Detach removes the group's subscription if it still belongs to the given
// generation. A detach racing a newer Attach is a no-op.
func (d *Dispatcher) Detach(chatID int64, generation uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sub, ok := d.subs[chatID]; ok && sub.generation == generation {
		delete(d.subs, chatID)
	}
}

// DetachAll removes the group's subscription regardless of generation. Used
// when a session is torn down.
func (d *Dispatcher) DetachAll(chatID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.subs, chatID)
}

// Dispatch forwards an inbound message to the group's live subscription, if
// any. Returns true when a handler consumed the event.
func (d *Dispatcher) Dispatch(in Inbound) bool {
	d.mu.RLock()
	sub, ok := d.subs[in.ChatID]
	d.mu.RUnlock()
	if !ok {
		return false
	}
	sub.handler(in)
	return true
}
